package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/papapumpkin/constellate/internal/aspect"
	"github.com/papapumpkin/constellate/internal/orb"
	"github.com/papapumpkin/constellate/internal/pattern"
)

// DispositorMode selects how much dispositor analysis a run performs.
type DispositorMode string

const (
	DispositorsFull       DispositorMode = "full"        // chains, finals, cycles and dignities
	DispositorsOff        DispositorMode = "off"         // no dispositor analysis
	DispositorsFinalsOnly DispositorMode = "finals-only" // final dispositors only
)

// ErrInvalidDispositorMode is returned for include_dispositors values other
// than true, false or "finals-only".
var ErrInvalidDispositorMode = errors.New("include_dispositors must be true, false or \"finals-only\"")

// ParseDispositorMode accepts the boolean spellings as well as the mode names.
func ParseDispositorMode(s string) (DispositorMode, error) {
	switch m := DispositorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case DispositorsFull, DispositorsOff, DispositorsFinalsOnly:
		return m, nil
	}
	if b, err := strconv.ParseBool(s); err == nil {
		if b {
			return DispositorsFull, nil
		}
		return DispositorsOff, nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidDispositorMode, s)
}

// Settings is the resolved bundle the analysis engine runs with.
// Values are populated from .constellate.yaml, CONSTELLATE_* env vars and
// CLI flags.
type Settings struct {
	Aspects                  []aspect.Definition `mapstructure:"aspects" json:"aspects"`
	AspectCategories         map[string][]string `mapstructure:"aspect_categories" json:"aspect_categories"`
	Orbs                     orb.Config          `mapstructure:"orbs" json:"orbs"`
	IncludeAspectPatterns    bool                `mapstructure:"include_aspect_patterns" json:"include_aspect_patterns"`
	SkipOutOfSignAspects     bool                `mapstructure:"skip_out_of_sign_aspects" json:"skip_out_of_sign_aspects"`
	IncludeHouseOverlays     bool                `mapstructure:"include_house_overlays" json:"include_house_overlays"`
	IncludeDispositors       DispositorMode      `mapstructure:"include_dispositors" json:"include_dispositors"`
	IncludeSignDistributions bool                `mapstructure:"include_sign_distributions" json:"include_sign_distributions"`
	StelliumMinimum          int                 `mapstructure:"stellium_minimum" json:"stellium_minimum"`
	ExcludedPoints           []string            `mapstructure:"excluded_points" json:"excluded_points"`
	Verbose                  bool                `mapstructure:"verbose" json:"verbose"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Aspects: aspect.DefaultDefinitions(),
		AspectCategories: map[string][]string{
			"major": {aspect.Conjunction, aspect.Opposition, aspect.Trine, aspect.Square, aspect.Sextile},
			"minor": {aspect.Quincunx, aspect.Semisextile, aspect.Semisquare, aspect.Sesquiquadrate},
		},
		Orbs:                     orb.DefaultConfig(),
		IncludeAspectPatterns:    true,
		SkipOutOfSignAspects:     true,
		IncludeHouseOverlays:     true,
		IncludeDispositors:       DispositorsFull,
		IncludeSignDistributions: true,
		StelliumMinimum:          pattern.DefaultStelliumMinimum,
		ExcludedPoints:           append([]string(nil), pattern.DefaultExcluded...),
	}
}

// Load reads settings from viper, applying Defaults for any values not set
// by config file, environment, or flags.
func Load() (Settings, error) {
	if err := setDefaults(Defaults()); err != nil {
		return Settings{}, err
	}

	var s Settings
	if err := viper.Unmarshal(&s, viper.DecodeHook(decodeHook())); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	s.Orbs.Normalize()
	if s.IncludeDispositors == "" {
		s.IncludeDispositors = DispositorsFull
	}
	mode, err := ParseDispositorMode(string(s.IncludeDispositors))
	if err != nil {
		return Settings{}, err
	}
	s.IncludeDispositors = mode
	return s, nil
}

// setDefaults registers every top-level key of d with viper. The nested
// values go in as plain maps so that a config file overriding one leaf keeps
// the defaults of its siblings.
func setDefaults(d Settings) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encoding default settings: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("encoding default settings: %w", err)
	}
	for k, v := range m {
		viper.SetDefault(k, v)
	}
	return nil
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		dispositorModeHook,
		mapstructure.StringToSliceHookFunc(","),
	)
}

// dispositorModeHook lets include_dispositors be written as a YAML boolean.
// Strings pass through and are checked by Load.
func dispositorModeHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(DispositorMode("")) {
		return data, nil
	}
	switch v := data.(type) {
	case bool:
		if v {
			return DispositorsFull, nil
		}
		return DispositorsOff, nil
	}
	return data, nil
}

// ErrStelliumMinimum is returned for a stellium minimum below two.
var ErrStelliumMinimum = errors.New("stellium_minimum must be at least 2")

// Validate checks the aspect definitions, the orb configuration and the
// stellium minimum.
func (s Settings) Validate() []error {
	var errs []error
	aspErrs := aspect.Validate(s.Aspects)
	for i := range aspErrs {
		errs = append(errs, &aspErrs[i])
	}
	orbErrs := orb.Validate(s.Orbs)
	for i := range orbErrs {
		errs = append(errs, &orbErrs[i])
	}
	if s.StelliumMinimum != 0 && s.StelliumMinimum < 2 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrStelliumMinimum, s.StelliumMinimum))
	}
	return errs
}
