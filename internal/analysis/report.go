package analysis

import (
	"github.com/papapumpkin/constellate/internal/aspect"
	"github.com/papapumpkin/constellate/internal/chart"
	"github.com/papapumpkin/constellate/internal/dispositor"
	"github.com/papapumpkin/constellate/internal/pattern"
	"github.com/papapumpkin/constellate/internal/zodiac"
)

// Report is the tiered result of one run. Observations and patterns refer
// to the input charts' points; nothing is copied.
type Report struct {
	Charts        []ChartAnalysis   `json:"charts"`                   // Tier 1
	Pairs         []PairAnalysis    `json:"pairs,omitempty"`          // Tier 2
	Global        *GroupAnalysis    `json:"global,omitempty"`         // Tier 3
	Transits      []TransitAnalysis `json:"transits,omitempty"`       // Tier 4
	GlobalTransit *GroupAnalysis    `json:"global_transit,omitempty"` // Tier 5
}

// ChartAnalysis covers a single chart.
type ChartAnalysis struct {
	Chart        string               `json:"chart"`
	Kind         chart.Kind           `json:"kind"`
	Observations []aspect.Observation `json:"observations"`
	Patterns     []pattern.Pattern    `json:"patterns,omitempty"`
	Stelliums    []pattern.Stellium   `json:"stelliums,omitempty"`
	Dispositors  *dispositor.Analysis `json:"dispositors,omitempty"`
	Distribution *SignDistribution    `json:"distribution,omitempty"`
}

// PairAnalysis covers two non-transit charts compared with each other.
type PairAnalysis struct {
	Charts       [2]string            `json:"charts"`
	Observations []aspect.Observation `json:"observations"`
	Patterns     []pattern.Pattern    `json:"patterns,omitempty"`
	Overlays     []HouseOverlay       `json:"overlays,omitempty"`
}

// GroupAnalysis holds the patterns that span three or more charts.
type GroupAnalysis struct {
	Charts   []string          `json:"charts"`
	Patterns []pattern.Pattern `json:"patterns"`
}

// TransitAnalysis covers one non-transit chart against the transit chart.
type TransitAnalysis struct {
	Chart        string               `json:"chart"`
	Transit      string               `json:"transit"`
	Observations []aspect.Observation `json:"observations"`
	Patterns     []pattern.Pattern    `json:"patterns,omitempty"`
}

// SignDistribution counts a chart's points by element and modality.
type SignDistribution struct {
	Elements   map[zodiac.Element]int  `json:"elements"`
	Modalities map[zodiac.Modality]int `json:"modalities"`
}

// Distribute counts every point of c.
func Distribute(c *chart.Chart) *SignDistribution {
	d := &SignDistribution{
		Elements:   make(map[zodiac.Element]int, 4),
		Modalities: make(map[zodiac.Modality]int, 3),
	}
	for _, p := range c.Points {
		s := p.Sign()
		d.Elements[s.Element()]++
		d.Modalities[s.Modality()]++
	}
	return d
}

// ObservationCount totals the observations across every tier.
func (r *Report) ObservationCount() int {
	n := 0
	for _, c := range r.Charts {
		n += len(c.Observations)
	}
	for _, p := range r.Pairs {
		n += len(p.Observations)
	}
	for _, t := range r.Transits {
		n += len(t.Observations)
	}
	return n
}

// PatternCount totals the patterns across every tier, stelliums excluded.
func (r *Report) PatternCount() int {
	n := 0
	for _, c := range r.Charts {
		n += len(c.Patterns)
	}
	for _, p := range r.Pairs {
		n += len(p.Patterns)
	}
	for _, t := range r.Transits {
		n += len(t.Patterns)
	}
	if r.Global != nil {
		n += len(r.Global.Patterns)
	}
	if r.GlobalTransit != nil {
		n += len(r.GlobalTransit.Patterns)
	}
	return n
}
