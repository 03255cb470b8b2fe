package analysis

import (
	"slices"

	"github.com/papapumpkin/constellate/internal/aspect"
	"github.com/papapumpkin/constellate/internal/chart"
	"github.com/papapumpkin/constellate/internal/config"
	"github.com/papapumpkin/constellate/internal/dispositor"
	"github.com/papapumpkin/constellate/internal/pattern"
)

// found is a detected pattern with its provenance computed once.
type found struct {
	pattern    pattern.Pattern
	provenance []string
}

// run holds the intermediate state of one Analyze call.
type run struct {
	all        []*chart.Chart
	nonTransit []*chart.Chart
	transit    *chart.Chart

	within map[string][]aspect.Observation
	cross  map[[2]string][]aspect.Observation
	obs    []aspect.Observation
	found  []found
}

// newRun partitions the charts by kind. More than one transit chart fails
// before any work is done.
func newRun(charts []chart.Chart) (*run, error) {
	if err := CheckTransits(charts); err != nil {
		return nil, err
	}
	r := &run{
		within: make(map[string][]aspect.Observation, len(charts)),
		cross:  make(map[[2]string][]aspect.Observation),
	}
	for i := range charts {
		c := &charts[i]
		r.all = append(r.all, c)
		if c.Kind == chart.KindTransit {
			r.transit = c
			continue
		}
		r.nonTransit = append(r.nonTransit, c)
	}
	return r, nil
}

// observe computes within-chart observations for every chart, transit
// included, and cross-chart observations for every unordered pair.
func (r *run) observe(calc *aspect.Calculator) {
	for _, c := range r.all {
		obs := calc.WithinChart(c.Placements())
		r.within[c.Name] = obs
		r.obs = append(r.obs, obs...)
	}
	for i, a := range r.all {
		for _, b := range r.all[i+1:] {
			ps := append(a.Placements(), b.Placements()...)
			obs := calc.CrossChart(ps)
			r.cross[[2]string{a.Name, b.Name}] = obs
			r.obs = append(r.obs, obs...)
		}
	}
}

// crossOf returns the observations between charts a and b in either order.
func (r *run) crossOf(a, b string) []aspect.Observation {
	if obs, ok := r.cross[[2]string{a, b}]; ok {
		return obs
	}
	return r.cross[[2]string{b, a}]
}

// detect runs the pattern detector once over every chart's points.
func (r *run) detect(d *pattern.Detector) {
	for _, p := range d.Detect(chart.Union(r.all), r.obs) {
		r.found = append(r.found, found{pattern: p, provenance: pattern.Provenance(p)})
	}
}

// patterns returns the detected patterns whose provenance satisfies keep.
func (r *run) patterns(keep func(prov []string) bool) []pattern.Pattern {
	var out []pattern.Pattern
	for _, f := range r.found {
		if keep(f.provenance) {
			out = append(out, f.pattern)
		}
	}
	return out
}

// exactly matches a provenance equal to the given chart names.
func exactly(names ...string) func([]string) bool {
	want := slices.Clone(names)
	slices.Sort(want)
	want = slices.Compact(want)
	return func(prov []string) bool { return slices.Equal(prov, want) }
}

func (r *run) chartTier(s config.Settings, d *pattern.Detector) []ChartAnalysis {
	out := make([]ChartAnalysis, 0, len(r.all))
	for _, c := range r.all {
		ca := ChartAnalysis{
			Chart:        c.Name,
			Kind:         c.Kind,
			Observations: r.within[c.Name],
			Patterns:     r.patterns(exactly(c.Name)),
			Stelliums:    d.Stelliums(c.Placements(), c.Cusps, s.StelliumMinimum),
		}
		if c.Kind != chart.KindTransit {
			switch s.IncludeDispositors {
			case config.DispositorsFull:
				ca.Dispositors = dispositor.Analyze(c.Points)
			case config.DispositorsFinalsOnly:
				ca.Dispositors = dispositor.Analyze(c.Points).FinalsOnly()
			}
		}
		if s.IncludeSignDistributions {
			ca.Distribution = Distribute(c)
		}
		out = append(out, ca)
	}
	return out
}

func (r *run) pairTier(overlays bool, h HouseOverlayer) []PairAnalysis {
	if len(r.nonTransit) < 2 {
		return nil
	}
	var out []PairAnalysis
	for i, a := range r.nonTransit {
		for _, b := range r.nonTransit[i+1:] {
			pa := PairAnalysis{
				Charts:       [2]string{a.Name, b.Name},
				Observations: r.crossOf(a.Name, b.Name),
				Patterns:     r.patterns(exactly(a.Name, b.Name)),
			}
			if overlays && h != nil {
				pa.Overlays = h.Overlay(a, b)
			}
			out = append(out, pa)
		}
	}
	return out
}

func (r *run) globalTier() *GroupAnalysis {
	if len(r.nonTransit) <= 2 {
		return nil
	}
	ps := r.patterns(func(prov []string) bool {
		return len(prov) >= 3 && (r.transit == nil || !slices.Contains(prov, r.transit.Name))
	})
	if len(ps) == 0 {
		return nil
	}
	return &GroupAnalysis{Charts: names(r.nonTransit), Patterns: ps}
}

func (r *run) transitTier() []TransitAnalysis {
	if r.transit == nil {
		return nil
	}
	t := r.transit.Name
	var out []TransitAnalysis
	for _, c := range r.nonTransit {
		out = append(out, TransitAnalysis{
			Chart:        c.Name,
			Transit:      t,
			Observations: r.crossOf(c.Name, t),
			Patterns:     r.patterns(exactly(c.Name, t)),
		})
	}
	return out
}

func (r *run) globalTransitTier() *GroupAnalysis {
	if r.transit == nil || len(r.nonTransit) == 0 {
		return nil
	}
	t := r.transit.Name
	ps := r.patterns(func(prov []string) bool {
		return len(prov) >= 3 && slices.Contains(prov, t)
	})
	if len(ps) == 0 {
		return nil
	}
	return &GroupAnalysis{Charts: names(r.all), Patterns: ps}
}

func names(charts []*chart.Chart) []string {
	out := make([]string, len(charts))
	for i, c := range charts {
		out[i] = c.Name
	}
	return out
}
