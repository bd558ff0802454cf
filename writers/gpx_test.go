package writers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPXWriteIncludesTrackAndPoints(t *testing.T) {
	hr := 140.0
	power := 200.0

	points := []GPXPoint{
		{TimestampMs: 0, Lat: 47.6, Lon: -122.3, Alt: 10, HR: &hr},
		{TimestampMs: 1000, Lat: 47.601, Lon: -122.3, Alt: 11, Power: &power},
	}

	var sb strings.Builder
	err := (GPX{}).Write(&sb, "Morning Run", "Running", points)
	require.NoError(t, err)

	out := sb.String()
	assert.Contains(t, out, "<name>Morning Run</name>")
	assert.Contains(t, out, "<type>Running</type>")
	assert.Contains(t, out, "1970-01-01T00:00:00.000Z")
	assert.Contains(t, out, "<gpxtpx:hr>140</gpxtpx:hr>")
	assert.Contains(t, out, "<power>200</power>")
	assert.Contains(t, out, "</gpx>")
}

func TestGPXWriteNoPointsOmitsStartTime(t *testing.T) {
	var sb strings.Builder
	err := (GPX{}).Write(&sb, "Empty", "Running", nil)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), "<time></time>")
}

func TestXMLEscape(t *testing.T) {
	assert.Equal(t, "a &amp; b &lt;tag&gt;", xmlEscape("a & b <tag>"))
}
