package analyzer

import (
	"github.com/trailmetrics/activity-analyzer/analyzer/geomath"
)

const (
	smoothHalfWidth    = 4
	minIntervalSeconds = 10
)

// intervalCandidate is a peak-bounded window over a time/value
// series, before k-means clustering decides which ones are
// "significant" rather than noise.
type intervalCandidate struct {
	StartTime uint64
	EndTime   uint64
	AvgValue  float64
}

// extractIntervalCandidates runs the shared interval-extraction steps:
// variance gate, centered smoothing, peak/trough detection, and
// per-peak window description. It does not perform the k-means
// clustering pass, since the two callers attach different
// per-candidate dimensions (distance vs. duration) before clustering.
func extractIntervalCandidates(times []uint64, values []float64, avg, varianceCutoff, prominence float64) []intervalCandidate {
	if geomath.Variance(values, avg) <= varianceCutoff {
		return nil
	}

	smoothed := geomath.SmoothCentered(values, smoothHalfWidth)
	if len(smoothed) <= 1 {
		return nil
	}

	peaks := geomath.PeaksWithProminence(smoothed, prominence)
	if len(peaks) == 0 {
		return nil
	}

	// Smoothing drops smoothHalfWidth samples from each edge, so a
	// smoothed-series index i corresponds to raw index i+smoothHalfWidth.
	var candidates []intervalCandidate

	for _, p := range peaks {
		leftRaw := p.LeftTrough + smoothHalfWidth
		rightRaw := p.RightTrough + smoothHalfWidth

		if leftRaw < 0 || rightRaw >= len(times) || leftRaw >= rightRaw {
			continue
		}

		start := times[leftRaw]
		end := times[rightRaw]

		if end <= start || (end-start) < minIntervalSeconds*1000 {
			continue
		}

		sum := 0.0
		count := 0

		for i := leftRaw; i <= rightRaw; i++ {
			sum += values[i]
			count++
		}

		candidates = append(candidates, intervalCandidate{
			StartTime: start,
			EndTime:   end,
			AvgValue:  sum / float64(count),
		})
	}

	return candidates
}

// clusterSignificant runs k-means with elbow selection over points
// (one per candidate, caller-supplied dimensions) and returns the
// indices of candidates whose cluster label is not the lowest-value
// cluster (cluster 0 by convention of equally-spaced centroid seeding).
func clusterSignificant(points []geomath.Point2D) []int {
	if len(points) < 2 {
		return nil
	}

	labels, _ := geomath.RunElbow(points)

	var significant []int

	for i, l := range labels {
		if l >= 1 {
			significant = append(significant, i)
		}
	}

	return significant
}
