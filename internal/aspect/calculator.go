package aspect

import (
	"math"

	"github.com/papapumpkin/constellate/internal/chart"
	"github.com/papapumpkin/constellate/internal/orb"
	"github.com/papapumpkin/constellate/internal/zodiac"
)

const (
	// ExactThreshold is the orb under which an aspect is reported exact
	// regardless of speed.
	ExactThreshold = 0.1
	// ProjectionDays is how far ahead positions are projected to decide
	// between applying and separating.
	ProjectionDays = 0.1
)

// ContextFunc chooses the orb context for a pair of chart names.
type ContextFunc func(chartA, chartB string) orb.PairKind

// Option configures a Calculator.
type Option func(*Calculator)

// WithSkipOutOfSign rejects aspects whose sign distance does not match the
// aspect's sign span.
func WithSkipOutOfSign(skip bool) Option {
	return func(c *Calculator) { c.skipOutOfSign = skip }
}

// WithContext sets how chart pairs map to orb contexts. The default treats
// every pair as natal.
func WithContext(fn ContextFunc) Option {
	return func(c *Calculator) { c.context = fn }
}

// Calculator finds aspects between placements. It holds no per-call state;
// the resolver it shares carries the only cache.
type Calculator struct {
	defs          []Definition
	resolver      *orb.Resolver
	skipOutOfSign bool
	context       ContextFunc
}

// NewCalculator creates a Calculator over the ordered definitions.
func NewCalculator(defs []Definition, resolver *orb.Resolver, opts ...Option) *Calculator {
	c := &Calculator{
		defs:     defs,
		resolver: resolver,
		context:  func(string, string) orb.PairKind { return orb.PairNatal },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithinChart returns the tightest aspect for every unordered pair of
// placements.
func (c *Calculator) WithinChart(ps []chart.Placement) []Observation {
	var out []Observation
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			if obs, ok := c.Pair(ps[i], ps[j]); ok {
				out = append(out, obs)
			}
		}
	}
	return out
}

// CrossChart returns the tightest aspect for every unordered pair of
// placements that come from different charts.
func (c *Calculator) CrossChart(ps []chart.Placement) []Observation {
	var out []Observation
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			if ps[i].Chart == ps[j].Chart {
				continue
			}
			if obs, ok := c.Pair(ps[i], ps[j]); ok {
				out = append(out, obs)
			}
		}
	}
	return out
}

// Pair returns the tightest aspect between a and b. Among definitions within
// their resolved orb the smallest orb wins, and equal orbs keep the earlier
// definition. It reports false when nothing matches.
func (c *Calculator) Pair(a, b chart.Placement) (Observation, bool) {
	sep := zodiac.Separation(a.Point.Longitude, b.Point.Longitude)
	signs := zodiac.SignDistance(a.Point.Longitude, b.Point.Longitude)
	kind := c.context(a.Chart, b.Chart)

	best := -1
	var bestOrb, bestMax float64
	for i, def := range c.defs {
		o := math.Abs(sep - def.Angle)
		if c.skipOutOfSign && signs != def.SignSpan() {
			continue
		}
		limit := c.resolver.Resolve(a.Point.Name, b.Point.Name, def, kind)
		if !zodiac.WithinOrb(o, limit) {
			continue
		}
		// Strictly smaller only, so the first definition keeps ties.
		if best < 0 || o < bestOrb-zodiac.Epsilon {
			best, bestOrb, bestMax = i, o, limit
		}
	}
	if best < 0 {
		return Observation{}, false
	}

	def := c.defs[best]
	return Observation{
		A:          a,
		B:          b,
		Aspect:     def.Name,
		Angle:      def.Angle,
		Separation: sep,
		Orb:        bestOrb,
		MaxOrb:     bestMax,
		Motion:     MotionOf(a.Point, b.Point, def.Angle),
	}, true
}

// MotionOf classifies an aspect of the given angle between two points by
// projecting both forward ProjectionDays at their speeds. Missing speeds,
// near-exact orbs and unchanged orbs all classify as Exact.
func MotionOf(a, b *chart.Point, angle float64) Motion {
	if a.Speed == nil || b.Speed == nil {
		return Exact
	}
	now := math.Abs(zodiac.Separation(a.Longitude, b.Longitude) - angle)
	if now <= ExactThreshold {
		return Exact
	}
	fa := zodiac.Normalize(a.Longitude + *a.Speed*ProjectionDays)
	fb := zodiac.Normalize(b.Longitude + *b.Speed*ProjectionDays)
	future := math.Abs(zodiac.Separation(fa, fb) - angle)

	switch {
	case zodiac.ApproxEqual(future, now, zodiac.Epsilon):
		return Exact
	case future < now:
		return Applying
	default:
		return Separating
	}
}
