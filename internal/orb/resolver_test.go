package orb

import (
	"errors"
	"testing"
)

type testAspect struct {
	name string
	orb  float64
}

func (a testAspect) AspectName() string  { return a.name }
func (a testAspect) DefaultOrb() float64 { return a.orb }

var (
	square      = testAspect{"square", 7}
	sextile     = testAspect{"sextile", 5}
	conjunction = testAspect{"conjunction", 8}
)

func TestResolveHierarchy(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Categories = map[Category]CategoryOrbs{
		CatLuminaries: {Default: 10, Aspects: map[string]float64{"sextile": 6}},
		CatOuter:      {Default: 5},
	}
	cfg.Classifications = map[string]Classification{
		"major": {Aspects: []string{"square", "conjunction", "sextile"}, Multiplier: 1, Max: 9},
	}
	cfg.Contexts = map[PairKind]ContextMultiplier{
		PairSynastry: {Multiplier: 0.5, Aspects: map[string]float64{"conjunction": 0.8}},
		PairTransit:  {Multiplier: 0.25},
	}

	tests := []struct {
		name string
		a, b string
		asp  Aspect
		kind PairKind
		want float64
	}{
		{"wider body governs, clamped to max", "Sun", "Pluto", square, PairNatal, 9},
		{"category aspect override", "Moon", "Pluto", sextile, PairNatal, 6},
		{"unknown points use definition orb", "Vesta", "Juno", square, PairNatal, 7},
		{"general context multiplier", "Vesta", "Juno", square, PairSynastry, 3.5},
		{"aspect-specific context multiplier", "Vesta", "Juno", conjunction, PairSynastry, 6.4},
		{"outer category default", "Neptune", "Vesta", square, PairNatal, 7},
		{"rounded to one decimal", "Pluto", "Uranus", testAspect{"trine", 0}, PairTransit, 1.3},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := NewResolver(cfg)
			if got := r.Resolve(tt.a, tt.b, tt.asp, tt.kind); got != tt.want {
				t.Errorf("Resolve(%s, %s, %s, %s) = %v, want %v", tt.a, tt.b, tt.asp.AspectName(), tt.kind, got, tt.want)
			}
		})
	}
}

func TestResolveClampMinimum(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Classifications = map[string]Classification{
		"minor": {Aspects: []string{"semisextile"}, Multiplier: 0.5, Min: 1.5},
	}
	r := NewResolver(cfg)
	if got := r.Resolve("Sun", "Moon", testAspect{"semisextile", 2}, PairNatal); got != 1.5 {
		t.Errorf("Resolve = %v, want 1.5", got)
	}
}

func TestResolveFallback(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	r := NewResolver(cfg)
	if got := r.Resolve("Sun", "Moon", testAspect{"custom", 0}, PairNatal); got != DefaultFallback {
		t.Errorf("Resolve = %v, want fallback %v", got, DefaultFallback)
	}

	cfg.Fallback = 1.2
	r.SetConfig(cfg)
	if got := r.Resolve("Sun", "Moon", testAspect{"custom", 0}, PairNatal); got != 1.2 {
		t.Errorf("Resolve after SetConfig = %v, want 1.2", got)
	}
}

func TestResolveDeterministicAndIsolated(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Contexts = map[PairKind]ContextMultiplier{PairTransit: {Multiplier: 0.5}}
	r := NewResolver(cfg)

	natal := r.Resolve("Sun", "Moon", square, PairNatal)
	if again := r.Resolve("Sun", "Moon", square, PairNatal); again != natal {
		t.Errorf("second call = %v, want %v", again, natal)
	}
	if swapped := r.Resolve("Moon", "Sun", square, PairNatal); swapped != natal {
		t.Errorf("swapped points = %v, want %v", swapped, natal)
	}

	transit := r.Resolve("Sun", "Moon", square, PairTransit)
	if transit != 3.5 {
		t.Errorf("transit = %v, want 3.5", transit)
	}
	if after := r.Resolve("Sun", "Moon", square, PairNatal); after != natal {
		t.Errorf("natal entry changed to %v after resolving transit, want %v", after, natal)
	}
	if r.Len() != 2 {
		t.Errorf("cache holds %d entries, want 2", r.Len())
	}
}

func TestSetConfigDropsCache(t *testing.T) {
	t.Parallel()

	r := NewResolver(DefaultConfig())
	r.Resolve("Sun", "Moon", square, PairNatal)
	r.Resolve("Sun", "Mars", square, PairNatal)
	if r.Len() != 2 {
		t.Fatalf("cache holds %d entries, want 2", r.Len())
	}

	cfg := DefaultConfig()
	cfg.Classifications = map[string]Classification{"major": {Aspects: []string{"square"}, Multiplier: 2}}
	r.SetConfig(cfg)
	if r.Len() != 0 {
		t.Errorf("cache holds %d entries after SetConfig, want 0", r.Len())
	}
	if got := r.Resolve("Sun", "Moon", square, PairNatal); got != 14 {
		t.Errorf("Resolve with new config = %v, want 14", got)
	}
}

func TestCategoryOf(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	tests := map[string]Category{
		"Sun":    CatLuminaries,
		"venus":  CatPersonal,
		"SATURN": CatSocial,
		"MC":     CatAngles,
		"Chiron": CatUnknown,
	}
	for name, want := range tests {
		if got := cfg.CategoryOf(name); got != want {
			t.Errorf("CategoryOf(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	if errs := Validate(DefaultConfig()); len(errs) != 0 {
		t.Fatalf("default config has errors: %v", errs)
	}

	cfg := Config{
		Fallback: -1,
		Classifications: map[string]Classification{
			"minor": {Multiplier: -1, Min: 4, Max: 2},
		},
		Contexts: map[PairKind]ContextMultiplier{"lunar": {Multiplier: 1}},
	}
	errs := Validate(cfg)
	for _, want := range []error{ErrInvalidOrb, ErrInvalidMultiplier, ErrInvalidClamp, ErrUnknownPairKind} {
		found := false
		for i := range errs {
			if errors.Is(&errs[i], want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Validate did not report %v; got %v", want, errs)
		}
	}
}

func TestNormalizeCategories(t *testing.T) {
	t.Parallel()

	cfg := Config{
		PointCategories: map[string]Category{"sun": "luminaries", "chiron": "asteroids"},
		Categories:      map[Category]CategoryOrbs{"luminaries": {Default: 12}},
	}
	cfg.Normalize()
	if got := cfg.CategoryOf("Sun"); got != CatLuminaries {
		t.Errorf("CategoryOf(Sun) = %q, want %q", got, CatLuminaries)
	}
	if got := cfg.CategoryOf("chiron"); got != "asteroids" {
		t.Errorf("CategoryOf(chiron) = %q, want asteroids", got)
	}
	if got := NewResolver(cfg).Resolve("Sun", "Vesta", square, PairNatal); got != 12 {
		t.Errorf("Resolve = %v, want 12", got)
	}
}
