// Package analysis composes the aspect calculator, pattern detector and
// dispositor analyzer into a tiered Report for one to many charts.
//
// Tiers:
//
//  1. every chart on its own
//  2. every pair of non-transit charts (synastry)
//  3. patterns spanning three or more non-transit charts
//  4. every non-transit chart against the transit chart
//  5. patterns spanning the transit chart and two or more others
package analysis

import (
	"log/slog"
	"sync"
	"time"

	"github.com/papapumpkin/constellate/internal/aspect"
	"github.com/papapumpkin/constellate/internal/chart"
	"github.com/papapumpkin/constellate/internal/config"
	"github.com/papapumpkin/constellate/internal/logging"
	"github.com/papapumpkin/constellate/internal/orb"
	"github.com/papapumpkin/constellate/internal/pattern"
)

// Engine runs analyses with one settings bundle. Runs share an orb cache
// until Reconfigure installs a fresh resolver; a run in flight keeps the
// settings and resolver it started with. An Engine is safe for concurrent use.
type Engine struct {
	mu        sync.RWMutex
	settings  config.Settings
	resolver  *orb.Resolver
	detector  *pattern.Detector
	overlayer HouseOverlayer
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for run summaries.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithHouseOverlayer replaces the default CuspOverlayer.
func WithHouseOverlayer(h HouseOverlayer) Option {
	return func(e *Engine) { e.overlayer = h }
}

// New creates an engine for the given settings.
func New(s config.Settings, opts ...Option) *Engine {
	e := &Engine{
		settings:  s,
		resolver:  orb.NewResolver(s.Orbs),
		detector:  pattern.NewDetector(s.ExcludedPoints...),
		overlayer: CuspOverlayer{},
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Settings returns the active settings.
func (e *Engine) Settings() config.Settings {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.settings
}

// Resolver returns the engine's orb resolver.
func (e *Engine) Resolver() *orb.Resolver {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.resolver
}

// Reconfigure swaps the settings and replaces the resolver, so later runs
// start with an empty orb cache.
func (e *Engine) Reconfigure(s config.Settings) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings = s
	e.resolver = orb.NewResolver(s.Orbs)
	e.detector = pattern.NewDetector(s.ExcludedPoints...)
	e.logger.Debug("engine reconfigured", "aspects", len(s.Aspects))
}

// Analyze builds the Report for a run. The charts must already have passed
// chart.Validate; the only error returned here is a *ConfigurationError
// wrapping ErrMultipleTransits.
func (e *Engine) Analyze(charts []chart.Chart) (*Report, error) {
	start := time.Now()

	e.mu.RLock()
	s := e.settings
	resolver := e.resolver
	detector := e.detector
	e.mu.RUnlock()

	r, err := newRun(charts)
	if err != nil {
		e.logger.Warn("analysis rejected", "error", err)
		return nil, err
	}

	kinds := make(map[string]chart.Kind, len(charts))
	for _, c := range r.all {
		kinds[c.Name] = c.Kind
	}
	calc := aspect.NewCalculator(s.Aspects, resolver,
		aspect.WithSkipOutOfSign(s.SkipOutOfSignAspects),
		aspect.WithContext(pairKind(kinds)),
	)

	r.observe(calc)
	if s.IncludeAspectPatterns {
		r.detect(detector)
	}

	report := &Report{}
	report.Charts = r.chartTier(s, detector)
	report.Pairs = r.pairTier(s.IncludeHouseOverlays, e.overlayer)
	report.Global = r.globalTier()
	report.Transits = r.transitTier()
	report.GlobalTransit = r.globalTransitTier()

	e.logger.Debug("analysis complete",
		"charts", len(charts),
		"observations", report.ObservationCount(),
		"patterns", report.PatternCount(),
		"elapsed", time.Since(start),
	)
	return report, nil
}

// pairKind chooses the orb context for two chart names: anything touching
// the transit chart is a transit, two different charts are synastry, and a
// chart with itself is natal.
func pairKind(kinds map[string]chart.Kind) aspect.ContextFunc {
	return func(a, b string) orb.PairKind {
		switch {
		case kinds[a] == chart.KindTransit || kinds[b] == chart.KindTransit:
			return orb.PairTransit
		case a != b:
			return orb.PairSynastry
		default:
			return orb.PairNatal
		}
	}
}
