package dispositor

import (
	"github.com/papapumpkin/constellate/internal/chart"
)

// graph is the rulership graph of one chart. Edges point from a body to the
// rulers of the sign it occupies; only rulers present in the chart become
// edges, and self-rulership is recorded separately rather than as a loop.
type graph struct {
	order []string
	// rulers maps point → every ruler of its sign, present or not.
	rulers map[string][]string
	// adjacency maps point → rulers present in the chart, excluding itself.
	adjacency map[string][]string
	selfRuled map[string]bool
}

func newGraph(points []chart.Point) *graph {
	g := &graph{
		rulers:    make(map[string][]string, len(points)),
		adjacency: make(map[string][]string, len(points)),
		selfRuled: make(map[string]bool),
	}
	present := make(map[string]string, len(points))
	for _, p := range points {
		present[canonical(p.Name)] = p.Name
	}

	for _, p := range points {
		g.order = append(g.order, p.Name)
		rs := Rulers(p.Sign())
		g.rulers[p.Name] = rs
		for _, r := range rs {
			name, ok := present[r]
			if !ok {
				continue
			}
			if name == p.Name {
				g.selfRuled[p.Name] = true
				continue
			}
			g.adjacency[p.Name] = append(g.adjacency[p.Name], name)
		}
	}
	return g
}

// final reports whether id rules its own sign or none of its rulers are in
// the chart.
func (g *graph) final(id string) bool {
	return g.selfRuled[id] || len(g.adjacency[id]) == 0
}

// cyclesThrough enumerates every simple rulership loop that starts and ends
// at start, using an explicit stack instead of recursion. Loops that close
// on some other node of the active path are left for that node to report.
func (g *graph) cyclesThrough(start string) [][]string {
	type frame struct {
		id   string
		next int
	}

	var cycles [][]string
	stack := []frame{{id: start}}
	path := []string{start}
	onPath := map[string]bool{start: true}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		edges := g.adjacency[top.id]
		if top.next >= len(edges) {
			stack = stack[:len(stack)-1]
			delete(onPath, top.id)
			path = path[:len(path)-1]
			continue
		}
		w := edges[top.next]
		top.next++

		switch {
		case w == start:
			cycle := make([]string, len(path)+1)
			copy(cycle, path)
			cycle[len(path)] = start
			cycles = append(cycles, cycle)
		case onPath[w]:
			// Closes a loop that does not pass through start.
		default:
			stack = append(stack, frame{id: w})
			path = append(path, w)
			onPath[w] = true
		}
	}
	return cycles
}
