package model

import (
	"fmt"
	"math"
	"strconv"
)

// Clean drops float noise below 1e-9 so stepped values print and compare cleanly.
func Clean(v float64) float64 {
	r := math.Round(v*1e9) / 1e9
	if r == 0 {
		return 0
	}
	return r
}

func FormatNumber(v float64) string {
	return strconv.FormatFloat(Clean(v), 'f', -1, 64)
}

func FormatNumberAny(v interface{}) string {
	switch n := v.(type) {
	case float64:
		return FormatNumber(n)
	case float32:
		return FormatNumber(float64(n))
	case int:
		return strconv.Itoa(n)
	default:
		return fmt.Sprint(v)
	}
}
