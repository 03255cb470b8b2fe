// Package orb resolves the maximum orb allowed between two points for an
// aspect. The resolution is hierarchical: point categories set the base,
// aspect classifications and chart-pair contexts scale it, and a global
// fallback covers degenerate results.
package orb

import (
	"slices"
	"strings"
)

// Category groups points that share orb allowances.
type Category string

// Built-in point categories. CatUnknown selects the fallback orb.
const (
	CatLuminaries Category = "Luminaries"
	CatPersonal   Category = "Personal"
	CatSocial     Category = "Social"
	CatOuter      Category = "Outer"
	CatAngles     Category = "Angles"
	CatUnknown    Category = ""
)

// PairKind is the context two points are compared in.
type PairKind string

// Pair kinds with their own orb multiplier.
const (
	PairNatal     PairKind = "natal"
	PairSynastry  PairKind = "synastry"
	PairTransit   PairKind = "transit"
	PairComposite PairKind = "composite"
)

// Valid reports whether k is a known pair kind.
func (k PairKind) Valid() bool {
	switch k {
	case PairNatal, PairSynastry, PairTransit, PairComposite:
		return true
	}
	return false
}

// DefaultFallback is the orb substituted when resolution yields zero or less.
const DefaultFallback = 3.0

// CategoryOrbs holds the orbs for one point category: a default plus
// optional per-aspect overrides.
type CategoryOrbs struct {
	Default float64            `mapstructure:"default" json:"default"`
	Aspects map[string]float64 `mapstructure:"aspects" json:"aspects,omitempty"`
}

// Classification scales the orbs of a group of aspects (e.g. "major",
// "minor") and optionally clamps the result. Zero Multiplier, Min or Max
// means unset.
type Classification struct {
	Aspects    []string `mapstructure:"aspects" json:"aspects"`
	Multiplier float64  `mapstructure:"multiplier" json:"multiplier,omitempty"`
	Min        float64  `mapstructure:"min" json:"min,omitempty"`
	Max        float64  `mapstructure:"max" json:"max,omitempty"`
}

// ContextMultiplier scales orbs for one pair kind. An aspect-specific entry
// replaces the general multiplier for that aspect.
type ContextMultiplier struct {
	Multiplier float64            `mapstructure:"multiplier" json:"multiplier,omitempty"`
	Aspects    map[string]float64 `mapstructure:"aspects" json:"aspects,omitempty"`
}

// Config is the full orb configuration.
type Config struct {
	PointCategories map[string]Category            `mapstructure:"point_categories" json:"point_categories"`
	Categories      map[Category]CategoryOrbs      `mapstructure:"categories" json:"categories,omitempty"`
	Classifications map[string]Classification      `mapstructure:"classifications" json:"classifications,omitempty"`
	Contexts        map[PairKind]ContextMultiplier `mapstructure:"contexts" json:"contexts,omitempty"`
	Fallback        float64                        `mapstructure:"fallback" json:"fallback"`
}

// DefaultPointCategories maps the conventional bodies and angles to their
// categories.
func DefaultPointCategories() map[string]Category {
	return map[string]Category{
		"Sun":        CatLuminaries,
		"Moon":       CatLuminaries,
		"Mercury":    CatPersonal,
		"Venus":      CatPersonal,
		"Mars":       CatPersonal,
		"Jupiter":    CatSocial,
		"Saturn":     CatSocial,
		"Uranus":     CatOuter,
		"Neptune":    CatOuter,
		"Pluto":      CatOuter,
		"Ascendant":  CatAngles,
		"Midheaven":  CatAngles,
		"Descendant": CatAngles,
		"IC":         CatAngles,
		"ASC":        CatAngles,
		"MC":         CatAngles,
		"DSC":        CatAngles,
	}
}

// DefaultConfig categorizes the standard points and leaves every orb to the
// aspect definitions, with the standard 3° fallback.
func DefaultConfig() Config {
	return Config{
		PointCategories: DefaultPointCategories(),
		Fallback:        DefaultFallback,
	}
}

// CategoryOf returns the category configured for a point name. Names are
// matched exactly first, then case-insensitively; unlisted names are
// CatUnknown.
func (c Config) CategoryOf(name string) Category {
	if cat, ok := c.PointCategories[name]; ok {
		return cat
	}
	for k, cat := range c.PointCategories {
		if strings.EqualFold(k, name) {
			return cat
		}
	}
	return CatUnknown
}

// classificationOf returns the first classification, in key order, that
// lists the aspect.
func (c Config) classificationOf(aspect string) (Classification, bool) {
	for _, key := range sortedKeys(c.Classifications) {
		cls := c.Classifications[key]
		for _, a := range cls.Aspects {
			if a == aspect {
				return cls, true
			}
		}
	}
	return Classification{}, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ParseCategory matches s case-insensitively against the known categories.
func ParseCategory(s string) Category {
	for _, c := range []Category{CatLuminaries, CatPersonal, CatSocial, CatOuter, CatAngles} {
		if strings.EqualFold(string(c), s) {
			return c
		}
	}
	return Category(s)
}

// Normalize rewrites category names to their canonical spelling. Config
// loaders that lowercase map keys (viper does) produce "luminaries" where
// the resolver looks up "Luminaries".
func (c *Config) Normalize() {
	for name, cat := range c.PointCategories {
		c.PointCategories[name] = ParseCategory(string(cat))
	}
	if len(c.Categories) > 0 {
		cats := make(map[Category]CategoryOrbs, len(c.Categories))
		for cat, co := range c.Categories {
			cats[ParseCategory(string(cat))] = co
		}
		c.Categories = cats
	}
}
