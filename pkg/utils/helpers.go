package utils

import (
	"math"
	"strconv"
)

// Clamp limits a value between min and max
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// RoundTo rounds a float to specified decimal places
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

// FormatOptional renders v with one decimal, or placeholder when v is nil
func FormatOptional(v *float64, placeholder string) string {
	if v == nil || math.IsNaN(*v) {
		return placeholder
	}
	return strconv.FormatFloat(RoundTo(*v, 1), 'f', 1, 64)
}
