package math32

import "math"

func Sqrt(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

func Atan2(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

func Abs(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
