package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailmetrics/activity-analyzer/analyzer"
)

const sampleTCX = `<?xml version="1.0" encoding="UTF-8"?>
<TrainingCenterDatabase>
  <Activities>
    <Activity Sport="Biking">
      <Lap StartTime="2024-01-01T08:00:00.000Z">
        <Track>
          <Trackpoint>
            <Time>2024-01-01T08:00:00.000Z</Time>
            <Position>
              <LatitudeDegrees>47.6062</LatitudeDegrees>
              <LongitudeDegrees>-122.3321</LongitudeDegrees>
            </Position>
            <AltitudeMeters>10.0</AltitudeMeters>
            <HeartRateBpm><Value>120</Value></HeartRateBpm>
            <Cadence>80</Cadence>
            <Extensions><TPX><Watts>150</Watts></TPX></Extensions>
          </Trackpoint>
          <Trackpoint>
            <Time>2024-01-01T08:00:05.000Z</Time>
            <Position>
              <LatitudeDegrees>47.6070</LatitudeDegrees>
              <LongitudeDegrees>-122.3321</LongitudeDegrees>
            </Position>
            <AltitudeMeters>11.0</AltitudeMeters>
            <HeartRateBpm><Value>130</Value></HeartRateBpm>
            <Cadence>82</Cadence>
            <Extensions><TPX><Watts>160</Watts></TPX></Extensions>
          </Trackpoint>
        </Track>
      </Lap>
    </Activity>
  </Activities>
</TrainingCenterDatabase>`

func TestTCXParseHappyPath(t *testing.T) {
	ctx := analyzer.NewContext("sample", "Unknown")

	err := TCX{}.Parse(strings.NewReader(sampleTCX), ctx)
	require.NoError(t, err)

	assert.Equal(t, "Cycling", ctx.Location.ActivityType)
	assert.Equal(t, 7, ctx.Location.SpeedWindowSize)
	require.Len(t, ctx.Location.Times, 2)
	require.Len(t, ctx.Power.Readings, 2)
	assert.Equal(t, 150.0, ctx.Power.Readings[0])
	require.Len(t, ctx.Location.LapTimes, 1)
}

func TestTCXParseSkipsPointsMissingPositionOrAltitude(t *testing.T) {
	doc := `<TrainingCenterDatabase><Activities><Activity Sport="Running"><Lap StartTime="2024-01-01T08:00:00.000Z"><Track>
      <Trackpoint>
        <Time>2024-01-01T08:00:00.000Z</Time>
        <HeartRateBpm><Value>100</Value></HeartRateBpm>
      </Trackpoint>
      <Trackpoint>
        <Time>2024-01-01T08:00:01.000Z</Time>
        <Position><LatitudeDegrees>1</LatitudeDegrees><LongitudeDegrees>1</LongitudeDegrees></Position>
        <AltitudeMeters>5</AltitudeMeters>
        <HeartRateBpm><Value>110</Value></HeartRateBpm>
      </Trackpoint>
    </Track></Lap></Activity></Activities></TrainingCenterDatabase>`

	ctx := analyzer.NewContext("sample", "Unknown")
	err := TCX{}.Parse(strings.NewReader(doc), ctx)
	require.NoError(t, err)

	require.Len(t, ctx.Location.Times, 1)
	require.Len(t, ctx.HeartRate.Readings, 2)
}

func TestNormalizeSport(t *testing.T) {
	assert.Equal(t, "Cycling", normalizeSport("Biking"))
	assert.Equal(t, "Running", normalizeSport("Running"))
	assert.Equal(t, "Swimming", normalizeSport("Swimming"))
}
