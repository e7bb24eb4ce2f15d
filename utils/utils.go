package utils

import "math"

func FormatFloat(f float64, round int32) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	scale := math.Pow10(int(round))
	return math.Round(f*scale) / scale
}

func IntMin(i1, i2 int) int {
	if i1 < i2 {
		return i1
	}
	return i2
}

func IntMax(i1, i2 int) int {
	if i1 > i2 {
		return i1
	}
	return i2
}
