// Package aspect finds the tightest aspect between pairs of placements and
// classifies whether each aspect is applying, separating or exact.
package aspect

import "math"

// Canonical aspect names. The pattern detector matches on these.
const (
	Conjunction    = "conjunction"
	Semisextile    = "semisextile"
	Semisquare     = "semisquare"
	Sextile        = "sextile"
	Square         = "square"
	Trine          = "trine"
	Sesquiquadrate = "sesquiquadrate"
	Quincunx       = "quincunx"
	Opposition     = "opposition"
)

// canonicalSignSpan maps canonical aspects to the number of signs they span.
var canonicalSignSpan = map[string]int{
	Conjunction: 0,
	Semisextile: 1,
	Sextile:     2,
	Square:      3,
	Trine:       4,
	Quincunx:    5,
	Opposition:  6,
}

// Definition is a named aspect angle with its default maximum orb.
// Definitions are evaluated in slice order; order breaks orb ties.
type Definition struct {
	Name  string  `mapstructure:"name" json:"name"`
	Angle float64 `mapstructure:"angle" json:"angle"`
	Orb   float64 `mapstructure:"orb" json:"orb"`
}

// AspectName implements orb.Aspect.
func (d Definition) AspectName() string { return d.Name }

// DefaultOrb implements orb.Aspect.
func (d Definition) DefaultOrb() float64 { return d.Orb }

// SignSpan returns how many signs apart two points must be for this aspect
// to count as in-sign.
func (d Definition) SignSpan() int {
	if n, ok := canonicalSignSpan[d.Name]; ok {
		return n
	}
	return int(math.Round(d.Angle / 30))
}

// DefaultDefinitions returns the standard major and minor aspects.
func DefaultDefinitions() []Definition {
	return []Definition{
		{Name: Conjunction, Angle: 0, Orb: 8},
		{Name: Opposition, Angle: 180, Orb: 8},
		{Name: Trine, Angle: 120, Orb: 8},
		{Name: Square, Angle: 90, Orb: 7},
		{Name: Sextile, Angle: 60, Orb: 6},
		{Name: Quincunx, Angle: 150, Orb: 3},
		{Name: Semisextile, Angle: 30, Orb: 2},
		{Name: Semisquare, Angle: 45, Orb: 2},
		{Name: Sesquiquadrate, Angle: 135, Orb: 2},
	}
}
