package metrics

import (
	"math"
	"sort"
)

// Mean computes the arithmetic mean of a float64 slice.
// Returns 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median computes the median of a float64 slice without mutating it.
// Returns 0 for empty input.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// SampleStdDev computes the sample standard deviation (Bessel's
// correction). Returns 0 when fewer than 2 data points are available.
func SampleStdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	m := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// Round4 rounds to four decimal places, the precision all confidence
// scores and ratios are reported at.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// Clamp01 clamps v into the [0, 1] range.
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
