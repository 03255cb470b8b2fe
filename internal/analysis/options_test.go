package analysis

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/papapumpkin/constellate/internal/aspect"
	"github.com/papapumpkin/constellate/internal/chart"
	"github.com/papapumpkin/constellate/internal/config"
	"github.com/papapumpkin/constellate/internal/orb"
)

func TestToggles(t *testing.T) {
	t.Parallel()

	charts := func() []chart.Chart {
		return []chart.Chart{
			newChart("natal", chart.KindNatal,
				pt{"Sun", 0}, pt{"Moon", 180}, pt{"Saturn", 90}, pt{"Venus", 210}, pt{"Mars", 30}),
		}
	}

	t.Run("patterns off", func(t *testing.T) {
		t.Parallel()
		s := config.Defaults()
		s.IncludeAspectPatterns = false
		r, err := New(s).Analyze(charts())
		if err != nil {
			t.Fatal(err)
		}
		if len(r.Charts[0].Patterns) != 0 {
			t.Errorf("patterns = %v, want none", kindsOf(r.Charts[0].Patterns))
		}
		if len(r.Charts[0].Observations) == 0 {
			t.Error("observations dropped along with patterns")
		}
	})

	t.Run("dispositors off", func(t *testing.T) {
		t.Parallel()
		s := config.Defaults()
		s.IncludeDispositors = config.DispositorsOff
		r, err := New(s).Analyze(charts())
		if err != nil {
			t.Fatal(err)
		}
		if r.Charts[0].Dispositors != nil {
			t.Error("Dispositors present with dispositors off")
		}
	})

	t.Run("finals only", func(t *testing.T) {
		t.Parallel()
		s := config.Defaults()
		s.IncludeDispositors = config.DispositorsFinalsOnly
		r, err := New(s).Analyze(charts())
		if err != nil {
			t.Fatal(err)
		}
		d := r.Charts[0].Dispositors
		if d == nil {
			t.Fatal("Dispositors = nil")
		}
		if d.Cycles != nil || d.Chains != nil {
			t.Errorf("finals-only kept cycles or chains: %+v", d)
		}
	})

	t.Run("full dispositors", func(t *testing.T) {
		t.Parallel()
		r, err := New(config.Defaults()).Analyze(charts())
		if err != nil {
			t.Fatal(err)
		}
		want := [][]string{{"Venus", "Mars", "Venus"}, {"Mars", "Venus", "Mars"}}
		if diff := cmp.Diff(want, r.Charts[0].Dispositors.Cycles); diff != "" {
			t.Errorf("cycles (-want +got):\n%s", diff)
		}
	})

	t.Run("distributions off", func(t *testing.T) {
		t.Parallel()
		s := config.Defaults()
		s.IncludeSignDistributions = false
		r, err := New(s).Analyze(charts())
		if err != nil {
			t.Fatal(err)
		}
		if r.Charts[0].Distribution != nil {
			t.Error("Distribution present with distributions off")
		}
	})
}

func TestHouseOverlays(t *testing.T) {
	t.Parallel()

	a := newChart("a", chart.KindNatal, pt{"Sun", 15})
	for i := 0; i < 12; i++ {
		a.Cusps = append(a.Cusps, float64(i*30))
	}
	b := newChart("b", chart.KindNatal, pt{"Moon", 45})

	r, err := New(config.Defaults()).Analyze([]chart.Chart{a, b})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(r.Pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(r.Pairs))
	}
	ov := r.Pairs[0].Overlays
	if len(ov) != 1 {
		t.Fatalf("got %d overlays, want 1: %+v", len(ov), ov)
	}
	if ov[0].Point.String() != "b:Moon" || ov[0].Host != "a" || ov[0].House != 2 {
		t.Errorf("overlay = %s in %s house %d, want b:Moon in a house 2", ov[0].Point, ov[0].Host, ov[0].House)
	}

	s := config.Defaults()
	s.IncludeHouseOverlays = false
	r, err = New(s).Analyze([]chart.Chart{a, b})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r.Pairs[0].Overlays != nil {
		t.Errorf("Overlays = %+v, want nil when disabled", r.Pairs[0].Overlays)
	}
}

type recordingOverlayer struct{ calls [][2]string }

func (o *recordingOverlayer) Overlay(a, b *chart.Chart) []HouseOverlay {
	o.calls = append(o.calls, [2]string{a.Name, b.Name})
	return []HouseOverlay{{Point: a.Placements()[0], Host: b.Name, House: 7}}
}

func TestCustomHouseOverlayer(t *testing.T) {
	t.Parallel()

	rec := &recordingOverlayer{}
	charts := []chart.Chart{
		newChart("a", chart.KindNatal, pt{"Sun", 15}),
		newChart("b", chart.KindNatal, pt{"Moon", 45}),
		newChart("now", chart.KindTransit, pt{"Mars", 75}),
	}
	r, err := New(config.Defaults(), WithHouseOverlayer(rec)).Analyze(charts)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if diff := cmp.Diff([][2]string{{"a", "b"}}, rec.calls); diff != "" {
		t.Errorf("overlayer calls (-want +got):\n%s", diff)
	}
	if got := r.Pairs[0].Overlays[0].House; got != 7 {
		t.Errorf("House = %d, want 7", got)
	}
}

func TestReconfigureDropsOrbCache(t *testing.T) {
	t.Parallel()

	e := New(config.Defaults())
	charts := []chart.Chart{newChart("natal", chart.KindNatal, pt{"Sun", 0}, pt{"Moon", 92})}
	if _, err := e.Analyze(charts); err != nil {
		t.Fatal(err)
	}
	before := e.Resolver()
	cached := before.Len()
	if cached == 0 {
		t.Fatal("resolver cache empty after a run")
	}

	s := config.Defaults()
	s.Aspects = []aspect.Definition{{Name: aspect.Conjunction, Angle: 0, Orb: 5}}
	e.Reconfigure(s)
	if e.Resolver() == before {
		t.Fatal("Reconfigure kept the old resolver")
	}
	if n := e.Resolver().Len(); n != 0 {
		t.Errorf("resolver cache holds %d entries after Reconfigure, want 0", n)
	}

	r, err := e.Analyze(charts)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(r.Charts[0].Observations); n != 0 {
		t.Errorf("got %d observations with only conjunctions configured, want 0", n)
	}
	if got := len(e.Settings().Aspects); got != 1 {
		t.Errorf("Settings().Aspects has %d entries, want 1", got)
	}
}

func TestReconfigureLeavesEarlierResolverIntact(t *testing.T) {
	t.Parallel()

	defaults := config.Defaults()
	e := New(defaults)
	charts := []chart.Chart{newChart("natal", chart.KindNatal, pt{"Sun", 0}, pt{"Moon", 92})}
	if _, err := e.Analyze(charts); err != nil {
		t.Fatal(err)
	}
	held := e.Resolver()
	cached := held.Len()

	s := config.Defaults()
	s.Orbs = orb.Config{}
	e.Reconfigure(s)

	if n := held.Len(); n != cached {
		t.Errorf("earlier resolver cache = %d entries after Reconfigure, want %d", n, cached)
	}
	if diff := cmp.Diff(defaults.Orbs, held.Config()); diff != "" {
		t.Errorf("earlier resolver config changed (-want +got):\n%s", diff)
	}
}

func TestAnalyzeDuringReconfigure(t *testing.T) {
	t.Parallel()

	e := New(config.Defaults())
	charts := []chart.Chart{newChart("natal", chart.KindNatal, pt{"Sun", 0}, pt{"Moon", 92}, pt{"Mars", 180})}
	conjOnly := config.Defaults()
	conjOnly.Aspects = []aspect.Definition{{Name: aspect.Conjunction, Angle: 0, Orb: 5}}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				e.Reconfigure(conjOnly)
				e.Reconfigure(config.Defaults())
				return
			}
			if _, err := e.Analyze(charts); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if n := len(e.Settings().Aspects); n == 0 {
		t.Error("settings lost their aspects")
	}
}

func TestPairKind(t *testing.T) {
	t.Parallel()

	fn := pairKind(map[string]chart.Kind{
		"n1":  chart.KindNatal,
		"e":   chart.KindEvent,
		"now": chart.KindTransit,
	})
	tests := []struct {
		a, b string
		want orb.PairKind
	}{
		{"n1", "n1", orb.PairNatal},
		{"e", "e", orb.PairNatal},
		{"n1", "e", orb.PairSynastry},
		{"n1", "now", orb.PairTransit},
		{"now", "now", orb.PairTransit},
	}
	for _, tt := range tests {
		if got := fn(tt.a, tt.b); got != tt.want {
			t.Errorf("pairKind(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestReportJSON(t *testing.T) {
	t.Parallel()

	charts := []chart.Chart{
		newChart("a", chart.KindNatal, pt{"Sun", 0}),
		newChart("b", chart.KindNatal, pt{"Moon", 120}),
		newChart("c", chart.KindNatal, pt{"Mars", 240}),
	}
	r, err := New(config.Defaults()).Analyze(charts)
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, want := range []string{`"global"`, `"type":"grand-trine"`, `"elements"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("report JSON missing %s", want)
		}
	}
	if r.PatternCount() != 1 {
		t.Errorf("PatternCount() = %d, want 1", r.PatternCount())
	}
	if r.ObservationCount() != 3 {
		t.Errorf("ObservationCount() = %d, want 3", r.ObservationCount())
	}
}
