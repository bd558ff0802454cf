package analyzer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangleSeries(n, peakIdx int, base, height, slope float64) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v := base + height - slope*math.Abs(float64(i-peakIdx))
		if v < base {
			v = base
		}
		out[i] = v
	}

	return out
}

func uniformTimes(n int) []uint64 {
	times := make([]uint64, n)
	for i := range times {
		times[i] = uint64(i) * 1000
	}

	return times
}

func TestExtractIntervalCandidatesDetectsSinglePeak(t *testing.T) {
	n := 60
	values := triangleSeries(n, 30, 2, 8, 0.8)
	times := uniformTimes(n)

	var sum float64
	for _, v := range values {
		sum += v
	}
	avg := sum / float64(n)

	candidates := extractIntervalCandidates(times, values, avg, 0.5, 1.0)
	require.NotEmpty(t, candidates)

	c := candidates[0]
	assert.Greater(t, c.EndTime, c.StartTime)
	assert.GreaterOrEqual(t, c.EndTime-c.StartTime, uint64(minIntervalSeconds*1000))
	assert.Greater(t, c.AvgValue, 0.0)
}

func TestExtractIntervalCandidatesLowVarianceReturnsNil(t *testing.T) {
	n := 60
	values := make([]float64, n)
	for i := range values {
		values[i] = 5.0
	}
	times := uniformTimes(n)

	candidates := extractIntervalCandidates(times, values, 5.0, 0.25, 0.3)
	assert.Nil(t, candidates)
}

func TestClusterSignificantFewerThanTwoPoints(t *testing.T) {
	assert.Nil(t, clusterSignificant(nil))
}
