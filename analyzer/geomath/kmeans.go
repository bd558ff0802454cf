package geomath

import "math"

const (
	maxKMeansIterations = 100
	convergenceEpsilon  = 1.0
	maxCandidateK       = 10
)

// Point2D is a single 2-dimensional observation fed to k-means: for
// the location analyzer (average speed, distance); for the power
// analyzer (average power, duration).
type Point2D struct {
	X, Y float64
}

// ClusterResult is the outcome of running k-means for one value of k.
type ClusterResult struct {
	K          int
	Labels     []int
	Distortion float64
}

// RunElbow sweeps k from 1 to min(maxCandidateK, len(points)) inclusive,
// runs k-means with equally-spaced initial centroids for each k, and
// selects the k whose elbow slope (the average of its own and its
// predecessor's distortion) is largest. Ties keep the
// first (smallest) k encountered. Returns the labels at the chosen k.
func RunElbow(points []Point2D) (labels []int, chosenK int) {
	n := len(points)
	if n < 2 {
		return nil, 0
	}

	maxK := n
	if maxK > maxCandidateK {
		maxK = maxCandidateK
	}

	results := make([]ClusterResult, 0, maxK)
	for k := 1; k <= maxK; k++ {
		results = append(results, runKMeans(points, k))
	}

	bestK := results[0].K
	bestSlope := math.Inf(-1)

	for i, r := range results {
		if r.K < 2 {
			continue
		}

		cur := r.Distortion
		prev := cur
		if i >= 1 {
			prev = results[i-1].Distortion
		}

		slope := (cur + prev) / 2

		if slope > bestSlope {
			bestSlope = slope
			bestK = r.K
		}
	}

	for _, r := range results {
		if r.K == bestK {
			return r.Labels, bestK
		}
	}

	return results[0].Labels, results[0].K
}

func runKMeans(points []Point2D, k int) ClusterResult {
	centroids := equallySpacedCentroids(points, k)
	labels := make([]int, len(points))

	for iter := 0; iter < maxKMeansIterations; iter++ {
		for i, p := range points {
			labels[i] = nearestCentroid(p, centroids)
		}

		newCentroids := recomputeCentroids(points, labels, centroids, k)

		movement := 0.0
		for i := range centroids {
			dx := newCentroids[i].X - centroids[i].X
			dy := newCentroids[i].Y - centroids[i].Y
			movement += math.Sqrt(dx*dx + dy*dy)
		}

		centroids = newCentroids

		if movement < convergenceEpsilon {
			break
		}
	}

	for i, p := range points {
		labels[i] = nearestCentroid(p, centroids)
	}

	return ClusterResult{K: k, Labels: labels, Distortion: totalDistortion(points, labels, centroids)}
}

func equallySpacedCentroids(points []Point2D, k int) []Point2D {
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y

	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	centroids := make([]Point2D, k)
	for i := 0; i < k; i++ {
		frac := 0.5
		if k > 1 {
			frac = float64(i) / float64(k-1)
		}

		centroids[i] = Point2D{
			X: minX + frac*(maxX-minX),
			Y: minY + frac*(maxY-minY),
		}
	}

	return centroids
}

func nearestCentroid(p Point2D, centroids []Point2D) int {
	best := 0
	bestDist := math.Inf(1)

	for i, c := range centroids {
		dx := p.X - c.X
		dy := p.Y - c.Y
		d := dx*dx + dy*dy

		if d < bestDist {
			bestDist = d
			best = i
		}
	}

	return best
}

func recomputeCentroids(points []Point2D, labels []int, fallback []Point2D, k int) []Point2D {
	sums := make([]Point2D, k)
	counts := make([]int, k)

	for i, p := range points {
		l := labels[i]
		sums[l].X += p.X
		sums[l].Y += p.Y
		counts[l]++
	}

	out := make([]Point2D, k)
	for i := 0; i < k; i++ {
		if counts[i] == 0 {
			out[i] = fallback[i]
			continue
		}

		out[i] = Point2D{X: sums[i].X / float64(counts[i]), Y: sums[i].Y / float64(counts[i])}
	}

	return out
}

func totalDistortion(points []Point2D, labels []int, centroids []Point2D) float64 {
	var total float64

	for i, p := range points {
		c := centroids[labels[i]]
		dx := p.X - c.X
		dy := p.Y - c.Y
		total += dx*dx + dy*dy
	}

	return total
}
