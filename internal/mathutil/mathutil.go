package mathutil

import "math"

// EqualWithin reports whether two floats differ by at most tol.
func EqualWithin(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// SumFloat64 adds a slice of floats. Plain left-to-right summation;
// magnitudes here are stakes and probabilities, well inside float64
// precision.
func SumFloat64(vs []float64) float64 {
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum
}
