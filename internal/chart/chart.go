// Package chart defines the input model of an analysis run: charts of named
// points at supplied longitudes, and the (point, origin chart) pairing that
// multi-chart passes carry around.
package chart

import (
	"fmt"

	"github.com/papapumpkin/constellate/internal/zodiac"
)

// Kind classifies a chart for tiering. Transit charts are compared against
// the fixed natal and event charts of the same run.
type Kind string

const (
	KindNatal   Kind = "natal"
	KindEvent   Kind = "event"
	KindTransit Kind = "transit"
)

// Valid reports whether k is one of the known chart kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindNatal, KindEvent, KindTransit:
		return true
	}
	return false
}

// Point is a named body or sensitive point at an ecliptic longitude. Speed is
// in signed degrees per day and is nil when the source did not supply one.
type Point struct {
	Name      string   `json:"name" toml:"name" yaml:"name"`
	Longitude float64  `json:"longitude" toml:"longitude" yaml:"longitude"`
	Speed     *float64 `json:"speed,omitempty" toml:"speed,omitempty" yaml:"speed,omitempty"`
}

// Sign returns the zodiac sign the point occupies.
func (p Point) Sign() zodiac.Sign {
	return zodiac.SignOf(p.Longitude)
}

// Chart is one set of positions: a birth, an event, or the current sky.
type Chart struct {
	Name      string    `json:"name" toml:"name" yaml:"name"`
	Kind      Kind      `json:"kind" toml:"kind" yaml:"kind"`
	Points    []Point   `json:"points" toml:"point" yaml:"points"`
	Ascendant *float64  `json:"ascendant,omitempty" toml:"ascendant,omitempty" yaml:"ascendant,omitempty"`
	Midheaven *float64  `json:"midheaven,omitempty" toml:"midheaven,omitempty" yaml:"midheaven,omitempty"`
	Cusps     []float64 `json:"cusps,omitempty" toml:"cusps,omitempty" yaml:"cusps,omitempty"`
}

// HasHouses reports whether the chart carries a full set of house cusps.
func (c *Chart) HasHouses() bool {
	return len(c.Cusps) == zodiac.HouseCount
}

// HouseOf returns the house a longitude falls in for this chart, or false
// when the chart has no cusps.
func (c *Chart) HouseOf(lon float64) (int, bool) {
	return zodiac.HouseOf(lon, c.Cusps)
}

// Placements pairs every point of the chart with the chart's name. The
// placements point into c.Points, so c must outlive them.
func (c *Chart) Placements() []Placement {
	out := make([]Placement, len(c.Points))
	for i := range c.Points {
		out[i] = Placement{Chart: c.Name, Point: &c.Points[i]}
	}
	return out
}

// Normalize maps every longitude, angle and cusp of the chart into [0, 360).
func (c *Chart) Normalize() {
	for i := range c.Points {
		c.Points[i].Longitude = zodiac.Normalize(c.Points[i].Longitude)
	}
	for i := range c.Cusps {
		c.Cusps[i] = zodiac.Normalize(c.Cusps[i])
	}
	if c.Ascendant != nil {
		v := zodiac.Normalize(*c.Ascendant)
		c.Ascendant = &v
	}
	if c.Midheaven != nil {
		v := zodiac.Normalize(*c.Midheaven)
		c.Midheaven = &v
	}
}

// Placement is a point together with the name of the chart it came from.
// It is a plain value; the Point pointer refers back into the input chart.
type Placement struct {
	Chart string `json:"chart"`
	Point *Point `json:"point"`
}

// Key identifies the placement within a run: chart names are unique and
// point names are unique within a chart.
func (p Placement) Key() string {
	return p.Chart + "\x00" + p.Point.Name
}

// String renders the placement as "Chart:Point".
func (p Placement) String() string {
	return fmt.Sprintf("%s:%s", p.Chart, p.Point.Name)
}

// Union concatenates the placements of every chart in input order.
func Union(charts []*Chart) []Placement {
	var out []Placement
	for _, c := range charts {
		out = append(out, c.Placements()...)
	}
	return out
}
