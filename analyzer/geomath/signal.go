package geomath

import "math"

// Variance returns the population variance of series around mean.
func Variance(series []float64, mean float64) float64 {
	if len(series) == 0 {
		return 0
	}

	var sumSq float64
	for _, v := range series {
		d := v - mean
		sumSq += d * d
	}

	return sumSq / float64(len(series))
}

// SmoothCentered applies a centered moving average with the given
// half-width (window size = 2*halfWidth+1). Points too close to
// either edge to fill a full window are dropped from the output
// rather than using a partial window.
func SmoothCentered(series []float64, halfWidth int) []float64 {
	n := len(series)
	window := 2*halfWidth + 1

	if n < window {
		return nil
	}

	out := make([]float64, 0, n-2*halfWidth)

	for i := halfWidth; i < n-halfWidth; i++ {
		var sum float64
		for j := i - halfWidth; j <= i+halfWidth; j++ {
			sum += series[j]
		}

		out = append(out, sum/float64(window))
	}

	return out
}

// Peak describes a local maximum together with the indices of the
// troughs that bound it, all expressed as indices into the smoothed
// series that PeaksWithProminence was called on.
type Peak struct {
	LeftTrough  int
	PeakIndex   int
	RightTrough int
}

// PeaksWithProminence finds local maxima in series whose prominence
// (height above the higher of its two bounding minima) exceeds
// minProminence, returning each with its bounding trough indices.
func PeaksWithProminence(series []float64, minProminence float64) []Peak {
	n := len(series)
	if n < 3 {
		return nil
	}

	var peaks []Peak

	for i := 1; i < n-1; i++ {
		if series[i] <= series[i-1] || series[i] <= series[i+1] {
			continue
		}

		left := i
		for left > 0 && series[left-1] <= series[left] {
			left--
		}

		leftTrough := left
		for j := left; j >= 0; j-- {
			if series[j] < series[leftTrough] {
				leftTrough = j
			}
			if j > 0 && series[j-1] > series[j] {
				break
			}
		}

		right := i
		for right < n-1 && series[right+1] <= series[right] {
			right++
		}

		rightTrough := right
		for j := right; j < n; j++ {
			if series[j] < series[rightTrough] {
				rightTrough = j
			}
			if j < n-1 && series[j+1] > series[j] {
				break
			}
		}

		bound := math.Max(series[leftTrough], series[rightTrough])
		prominence := series[i] - bound

		if prominence > minProminence {
			peaks = append(peaks, Peak{LeftTrough: leftTrough, PeakIndex: i, RightTrough: rightTrough})
		}
	}

	return peaks
}
