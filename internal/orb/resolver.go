package orb

import (
	"math"
	"sync"

	"github.com/papapumpkin/constellate/internal/zodiac"
)

// Aspect is what the resolver needs to know about an aspect definition.
type Aspect interface {
	AspectName() string
	DefaultOrb() float64
}

type cacheKey struct {
	a, b   string
	aspect string
	kind   PairKind
}

// Resolver computes and memoizes maximum orbs for one configuration. The
// cache is keyed by (point A, point B, aspect, pair kind) and is dropped as
// a whole when the configuration is replaced. A Resolver is safe for
// concurrent use.
type Resolver struct {
	mu    sync.Mutex
	cfg   Config
	cache map[cacheKey]float64
}

// NewResolver creates a resolver with an empty cache.
func NewResolver(cfg Config) *Resolver {
	return &Resolver{
		cfg:   cfg,
		cache: make(map[cacheKey]float64),
	}
}

// Config returns the active configuration.
func (r *Resolver) Config() Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg
}

// SetConfig replaces the configuration and discards every cached orb.
func (r *Resolver) SetConfig(cfg Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg = cfg
	r.cache = make(map[cacheKey]float64)
}

// Len returns the number of cached resolutions.
func (r *Resolver) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}

// Resolve returns the maximum orb, rounded to 0.1°, for points a and b
// forming the aspect in the given context.
func (r *Resolver) Resolve(a, b string, asp Aspect, kind PairKind) float64 {
	if b < a {
		a, b = b, a
	}
	key := cacheKey{a: a, b: b, aspect: asp.AspectName(), kind: kind}

	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.cache[key]; ok {
		return v
	}
	v := resolve(r.cfg, a, b, asp, kind)
	r.cache[key] = v
	return v
}

func resolve(cfg Config, a, b string, asp Aspect, kind PairKind) float64 {
	name := asp.AspectName()

	// The wider of the two bodies governs.
	orb := math.Max(
		categoryOrb(cfg, cfg.CategoryOf(a), asp),
		categoryOrb(cfg, cfg.CategoryOf(b), asp),
	)

	cls, classified := cfg.classificationOf(name)
	if classified && cls.Multiplier > 0 {
		orb *= cls.Multiplier
	}

	if ctx, ok := cfg.Contexts[kind]; ok {
		if m, ok := ctx.Aspects[name]; ok && m > 0 {
			orb *= m
		} else if ctx.Multiplier > 0 {
			orb *= ctx.Multiplier
		}
	}

	if classified {
		if cls.Min > 0 && orb < cls.Min {
			orb = cls.Min
		}
		if cls.Max > 0 && orb > cls.Max {
			orb = cls.Max
		}
	}

	if orb <= 0 {
		orb = cfg.Fallback
		if orb <= 0 {
			orb = DefaultFallback
		}
	}
	return zodiac.Round(orb, 1)
}

// categoryOrb picks the category's aspect-specific orb, then its default,
// then the aspect definition's own orb.
func categoryOrb(cfg Config, cat Category, asp Aspect) float64 {
	if co, ok := cfg.Categories[cat]; ok && cat != CatUnknown {
		if v, ok := co.Aspects[asp.AspectName()]; ok && v > 0 {
			return v
		}
		if co.Default > 0 {
			return co.Default
		}
	}
	return asp.DefaultOrb()
}
