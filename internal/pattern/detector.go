package pattern

import (
	"strings"

	"github.com/papapumpkin/constellate/internal/aspect"
	"github.com/papapumpkin/constellate/internal/chart"
)

// DefaultExcluded lists the angles and lunar nodes left out of pattern
// searches. Names are matched case-insensitively.
var DefaultExcluded = []string{
	"Ascendant", "Midheaven", "Descendant", "IC", "ASC", "MC", "DSC",
	"North Node", "South Node", "True Node", "Mean Node",
}

// DefaultStelliumMinimum is the smallest cluster reported as a stellium.
const DefaultStelliumMinimum = 3

// Detector searches a set of placements for aspect patterns. Searches are
// independent, so one configuration may be reported as several patterns
// (every Grand Cross also holds four T-Squares, every Kite a Grand Trine).
type Detector struct {
	excluded map[string]bool
}

// NewDetector creates a detector that skips the named points. With no names
// it uses DefaultExcluded.
func NewDetector(excluded ...string) *Detector {
	if len(excluded) == 0 {
		excluded = DefaultExcluded
	}
	d := &Detector{excluded: make(map[string]bool, len(excluded))}
	for _, name := range excluded {
		d.excluded[strings.ToLower(name)] = true
	}
	return d
}

// Excluded reports whether a point name is left out of pattern searches.
func (d *Detector) Excluded(name string) bool {
	return d.excluded[strings.ToLower(name)]
}

func (d *Detector) eligible(ps []chart.Placement) []chart.Placement {
	out := make([]chart.Placement, 0, len(ps))
	for _, p := range ps {
		if !d.Excluded(p.Point.Name) {
			out = append(out, p)
		}
	}
	return out
}

// Detect returns every T-Square, Grand Trine, Grand Cross, Yod, Mystic
// Rectangle and Kite formed by the placements, grouped in that order.
func (d *Detector) Detect(ps []chart.Placement, obs []aspect.Observation) []Pattern {
	pts := d.eligible(ps)
	ix := newIndex(obs)
	opps := pairsOf(pts, ix, aspect.Opposition)

	var out []Pattern
	for _, p := range tSquares(pts, opps, ix) {
		out = append(out, p)
	}
	trines := grandTrines(pts, ix)
	for _, p := range trines {
		out = append(out, p)
	}
	for _, p := range grandCrosses(opps, ix) {
		out = append(out, p)
	}
	for _, p := range yods(pts, pairsOf(pts, ix, aspect.Sextile), ix) {
		out = append(out, p)
	}
	for _, p := range mysticRectangles(opps, ix) {
		out = append(out, p)
	}
	for _, p := range kites(pts, trines, ix) {
		out = append(out, p)
	}
	return out
}

// pair is two eligible placements joined by a known aspect.
type pair struct {
	a, b chart.Placement
	orb  float64
}

// pairsOf lists, in placement order, every eligible pair joined by the
// named aspect.
func pairsOf(pts []chart.Placement, ix index, name string) []pair {
	var out []pair
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			if o, ok := ix.orb(pts[i], pts[j], name); ok {
				out = append(out, pair{pts[i], pts[j], o})
			}
		}
	}
	return out
}

func (p pair) has(x chart.Placement) bool {
	return p.a.Key() == x.Key() || p.b.Key() == x.Key()
}

func (p pair) disjoint(q pair) bool {
	return !p.has(q.a) && !p.has(q.b)
}

func mean(xs ...float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
