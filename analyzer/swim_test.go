package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwimAnalyzerTotalDistance(t *testing.T) {
	s := &SwimAnalyzer{}
	s.SetPoolLength(2500, "cm")

	s.AppendSensorValue(0, 1)
	s.AppendSensorValue(30000, 1)
	s.AppendSensorValue(60000, 1)

	assert.InDelta(t, 75.0, s.TotalDistance(), 1e-9)
	assert.Equal(t, uint64(0), s.StartTimeMs())
	assert.Equal(t, uint64(60000), s.LastTimeMs())
}

func TestSwimAnalyzerEmptyTimes(t *testing.T) {
	s := &SwimAnalyzer{}
	assert.Equal(t, uint64(0), s.StartTimeMs())
	assert.Equal(t, uint64(0), s.LastTimeMs())
	assert.Equal(t, 0.0, s.TotalDistance())
}
