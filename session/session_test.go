package session

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1">
  <trk>
    <name>Morning Run</name>
    <type>Running</type>
    <trkseg>
      <trkpt lat="47.6062" lon="-122.3321">
        <ele>10.0</ele>
        <time>2024-01-01T08:00:00.000Z</time>
      </trkpt>
      <trkpt lat="47.6070" lon="-122.3321">
        <ele>11.0</ele>
        <time>2024-01-01T08:00:05.000Z</time>
      </trkpt>
      <trkpt lat="47.6080" lon="-122.3325">
        <ele>12.0</ele>
        <time>2024-01-01T08:00:10.000Z</time>
      </trkpt>
    </trkseg>
  </trk>
</gpx>`

func TestIngestGPXAppendsContextAndReturnsReport(t *testing.T) {
	s := New()

	rep, err := s.IngestGPX([]byte(sampleGPX), "morning run")
	require.NoError(t, err)

	require.Len(t, rep.Times, 3)
	require.Len(t, s.Contexts(), 1)
}

func TestIngestGPXInvalidDocumentReturnsErrorAndNoContext(t *testing.T) {
	s := New()

	_, err := s.IngestGPX([]byte("not xml"), "bad")
	assert.Error(t, err)
	assert.Empty(t, s.Contexts())
}

func TestExportUnknownContextReturnsError(t *testing.T) {
	s := New()

	_, err := s.Export(uuid.New(), "gpx", 0, 0)
	assert.Error(t, err)
}

func TestExportKnownContextProducesGPX(t *testing.T) {
	s := New()

	_, err := s.IngestGPX([]byte(sampleGPX), "morning run")
	require.NoError(t, err)

	ctxs := s.Contexts()
	require.Len(t, ctxs, 1)

	out, err := s.Export(ctxs[0].ID, "gpx", 0, 0)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "<trkpt"))
}

func TestMergeFewerThanTwoContextsReturnsError(t *testing.T) {
	s := New()

	_, err := s.IngestGPX([]byte(sampleGPX), "only one")
	require.NoError(t, err)

	ctxs := s.Contexts()
	_, _, err = s.Merge(ctxs[0].ID, ctxs[0].ID, "gpx")
	assert.Error(t, err)
}

func TestMergeUnknownIDReturnsError(t *testing.T) {
	s := New()

	_, err := s.IngestGPX([]byte(sampleGPX), "a")
	require.NoError(t, err)
	_, err = s.IngestGPX([]byte(sampleGPX), "b")
	require.NoError(t, err)

	_, _, err = s.Merge(uuid.New(), uuid.New(), "gpx")
	assert.Error(t, err)
}

func TestMergeTwoKnownContextsAppendsMergedContext(t *testing.T) {
	s := New()

	_, err := s.IngestGPX([]byte(sampleGPX), "a")
	require.NoError(t, err)
	_, err = s.IngestGPX([]byte(sampleGPX), "b")
	require.NoError(t, err)

	ctxs := s.Contexts()
	require.Len(t, ctxs, 2)

	out, warnings, err := s.Merge(ctxs[0].ID, ctxs[1].ID, "gpx")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.NotEmpty(t, out)
	assert.Len(t, s.Contexts(), 3)
}

func TestGreetReturnsHandshakeString(t *testing.T) {
	s := New()
	assert.NotEmpty(t, s.Greet())
}
