// Package dispositor follows sign rulership through a chart to find final
// dispositors and closed loops of mutual reception.
package dispositor

import (
	"github.com/papapumpkin/constellate/internal/chart"
)

// Termination describes how a dispositor chain ends.
type Termination string

const (
	// EndFinal means the chain reached a point ruling its own sign.
	EndFinal Termination = "final"
	// EndCycle means the chain returned to a point already on it.
	EndCycle Termination = "cycle"
	// EndNotInChart means the last point's rulers are all absent.
	EndNotInChart Termination = "not-in-chart"
)

// Chain is the walk from a point through its primary in-chart rulers.
type Chain struct {
	Start string      `json:"start"`
	Path  []string    `json:"path"`
	End   Termination `json:"end"`
}

// Analysis is the dispositor structure of one chart.
type Analysis struct {
	Rulers    map[string][]string `json:"rulers"`
	Dignities map[string]Dignity  `json:"dignities,omitempty"`
	Finals    []string            `json:"finals"`
	Cycles    [][]string          `json:"cycles"`
	Chains    []Chain             `json:"chains,omitempty"`
}

// Analyze builds the rulership graph of the points and derives final
// dispositors, rulership cycles (each reported once per member, so a
// mutual reception of A and B yields A→B→A and B→A→B) and per-point chains.
func Analyze(points []chart.Point) *Analysis {
	g := newGraph(points)
	a := &Analysis{
		Rulers:    make(map[string][]string, len(points)),
		Dignities: make(map[string]Dignity, len(points)),
	}
	for _, p := range points {
		a.Rulers[p.Name] = g.rulers[p.Name]
		a.Dignities[p.Name] = DignityOf(p.Name, p.Sign())
	}
	for _, id := range g.order {
		if g.final(id) {
			a.Finals = append(a.Finals, id)
		}
		a.Cycles = append(a.Cycles, g.cyclesThrough(id)...)
		a.Chains = append(a.Chains, g.chain(id))
	}
	return a
}

// FinalsOnly drops everything but the final dispositors and rulers.
func (a *Analysis) FinalsOnly() *Analysis {
	return &Analysis{Rulers: a.Rulers, Finals: a.Finals}
}

// chain walks from start along each point's first in-chart ruler.
func (g *graph) chain(start string) Chain {
	c := Chain{Start: start, Path: []string{start}}
	seen := map[string]bool{start: true}
	cur := start
	for {
		if g.selfRuled[cur] {
			c.End = EndFinal
			return c
		}
		next := g.adjacency[cur]
		if len(next) == 0 {
			c.End = EndNotInChart
			return c
		}
		cur = next[0]
		c.Path = append(c.Path, cur)
		if seen[cur] {
			c.End = EndCycle
			return c
		}
		seen[cur] = true
	}
}
