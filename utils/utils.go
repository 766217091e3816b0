package utils

import (
	"math"
	"math/rand"
	"strings"
)

func Abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// Magnitude returns the length of the vector (x, y).
func Magnitude(x, y float64) float64 {
	return math.Sqrt(x*x + y*y)
}

// RandomOffset returns a uniform value in [-spread, spread].
func RandomOffset(spread float64) float64 {
	if spread <= 0 {
		return 0
	}
	return rand.Float64()*2*spread - spread
}

// RandomWithin returns a uniform value in [min, max].
func RandomWithin(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rand.Float64()*(max-min)
}

func NewRandomColor() [3]int {
	return [3]int{rand.Intn(255), rand.Intn(255), rand.Intn(255)}
}

// FoldName normalizes a player name for case-insensitive comparison.
func FoldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
