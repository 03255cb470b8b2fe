// Package zodiac holds the numeric primitives shared by every analysis pass:
// epsilon-tolerant angle comparisons, circular separation, sign and house
// lookup, and the element/modality tables.
package zodiac

import (
	"math"
	"slices"
)

// Epsilon is the tolerance used when comparing computed angles. It absorbs
// float64 noise from normalization and subtraction, not astrological slack.
const Epsilon = 1e-9

// Normalize maps any finite angle in degrees into [0, 360).
func Normalize(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	// math.Mod(-1e-17, 360)+360 rounds to exactly 360.
	if d >= 360 {
		d = 0
	}
	return d
}

// Separation returns the shorter arc between two longitudes, in [0, 180].
func Separation(a, b float64) float64 {
	d := math.Abs(Normalize(a) - Normalize(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// ApproxEqual reports whether a and b differ by no more than eps.
func ApproxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// WithinOrb reports whether value <= limit, tolerating Epsilon of float noise.
func WithinOrb(value, limit float64) bool {
	return value <= limit+Epsilon
}

// Round rounds x to the given number of decimal places.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// Arc returns the smallest span of the circle containing every longitude
// in lons. A single longitude (or none) spans zero degrees.
func Arc(lons []float64) float64 {
	if len(lons) < 2 {
		return 0
	}
	sorted := make([]float64, len(lons))
	for i, l := range lons {
		sorted[i] = Normalize(l)
	}
	slices.Sort(sorted)

	// The covering arc is the circle minus the widest gap between neighbours.
	widest := sorted[0] + 360 - sorted[len(sorted)-1]
	for i := 1; i < len(sorted); i++ {
		if gap := sorted[i] - sorted[i-1]; gap > widest {
			widest = gap
		}
	}
	return 360 - widest
}

