package features

import (
	"math"
)

// trailingMean returns the mean of the last window values strictly before
// index i. Window membership is a count of prior games, never a calendar
// span. The first position has no prior games and returns NaN.
func trailingMean(values []float64, i, window int) float64 {
	if i == 0 {
		return math.NaN()
	}
	start := i - window
	if start < 0 {
		start = 0
	}
	return mean(values[start:i])
}

// expandingMean returns the mean of all values strictly before index i
// within the slice's scope. NaN when there are no prior values.
func expandingMean(values []float64, i int) float64 {
	if i == 0 {
		return math.NaN()
	}
	return mean(values[:i])
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
