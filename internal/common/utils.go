package common

import "math"

// Round rounds v to the given number of decimal places, sending halves to
// the nearest even value (banker's rounding).
func Round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.RoundToEven(v*scale) / scale
}
