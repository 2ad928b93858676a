// Package mathutil provides common mathematical utility functions.
package mathutil

import "math"

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// PopulationVariance returns Σ(x - mean)² / n. The denominator is the number of
// values, not n-1.
func PopulationVariance(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	var acc float64
	for _, v := range values {
		d := float64(v) - mean
		acc += d * d
	}
	return acc / float64(len(values))
}

// StdDev returns the population standard deviation of values.
func StdDev(values []int) float64 {
	return math.Sqrt(PopulationVariance(values))
}

// CoefficientOfVariation returns the population standard deviation divided by
// the mean. The result is NaN or infinite when the mean is zero; callers that
// cannot produce a zero mean should check Mean first.
func CoefficientOfVariation(values []int) float64 {
	return StdDev(values) / Mean(values)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// GCD returns the greatest common divisor of values, or 0 for an empty slice.
func GCD(values []int) int {
	g := 0
	for _, v := range values {
		if v < 0 {
			v = -v
		}
		for v != 0 {
			g, v = v, g%v
		}
	}
	return g
}
