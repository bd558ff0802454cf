package writers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTCXWriteIncludesLapAndTrackpoints(t *testing.T) {
	hr := 155.0
	cadence := 90.0

	points := []TCXPoint{
		{TimestampMs: 0, Lat: 45.0, Lon: -122.0, Alt: 5, DistanceMeters: 0, HR: &hr},
		{TimestampMs: 1000, Lat: 45.001, Lon: -122.0, Alt: 6, DistanceMeters: 100, Cadence: &cadence},
	}
	agg := LapAggregates{TotalTimeSeconds: 1, DistanceMeters: 100, Calories: 12, MaximumSpeed: 3.5}

	var sb strings.Builder
	err := (TCX{}).Write(&sb, "Biking", agg, points)
	require.NoError(t, err)

	out := sb.String()
	assert.Contains(t, out, `Sport="Biking"`)
	assert.Contains(t, out, "<Calories>12</Calories>")
	assert.Contains(t, out, "<HeartRateBpm><Value>155</Value></HeartRateBpm>")
	assert.Contains(t, out, "<Cadence>90</Cadence>")
	assert.Contains(t, out, "</TrainingCenterDatabase>")
}

func TestTCXWriteEmptyPointsProducesMinimalDoc(t *testing.T) {
	var sb strings.Builder
	err := (TCX{}).Write(&sb, "Running", LapAggregates{}, nil)
	require.NoError(t, err)

	out := sb.String()
	assert.Contains(t, out, `Sport="Running"`)
	assert.NotContains(t, out, "<Lap")
}

func TestTCXWriteEmitsPowerExtension(t *testing.T) {
	power := 210.0
	points := []TCXPoint{{TimestampMs: 0, Lat: 1, Lon: 1, Alt: 1, Power: &power}}

	var sb strings.Builder
	err := (TCX{}).Write(&sb, "Biking", LapAggregates{}, points)
	require.NoError(t, err)

	assert.Contains(t, sb.String(), "<Watts>210</Watts>")
}
