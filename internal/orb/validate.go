package orb

import (
	"errors"
	"fmt"
)

// Sentinel errors for orb configuration validation.
var (
	// ErrInvalidOrb indicates a negative orb value.
	ErrInvalidOrb = errors.New("orb must not be negative")
	// ErrInvalidMultiplier indicates a negative multiplier.
	ErrInvalidMultiplier = errors.New("multiplier must not be negative")
	// ErrInvalidClamp indicates a classification whose min exceeds its max.
	ErrInvalidClamp = errors.New("classification min exceeds max")
	// ErrUnknownPairKind indicates a context keyed by an unknown pair kind.
	ErrUnknownPairKind = errors.New("unknown pair kind")
)

// ValidationError records a problem at a configuration field path.
type ValidationError struct {
	Field string
	Err   error
}

// Error returns the field path and the underlying problem.
func (e *ValidationError) Error() string {
	return "orbs." + e.Field + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks that every orb and multiplier is non-negative, clamps are
// ordered, and contexts use known pair kinds.
func Validate(cfg Config) []ValidationError {
	var errs []ValidationError

	if cfg.Fallback < 0 {
		errs = append(errs, ValidationError{Field: "fallback", Err: fmt.Errorf("%w: %.2f", ErrInvalidOrb, cfg.Fallback)})
	}

	for cat, co := range cfg.Categories {
		if co.Default < 0 {
			errs = append(errs, ValidationError{
				Field: fmt.Sprintf("categories.%s.default", cat),
				Err:   fmt.Errorf("%w: %.2f", ErrInvalidOrb, co.Default),
			})
		}
		for asp, v := range co.Aspects {
			if v < 0 {
				errs = append(errs, ValidationError{
					Field: fmt.Sprintf("categories.%s.aspects.%s", cat, asp),
					Err:   fmt.Errorf("%w: %.2f", ErrInvalidOrb, v),
				})
			}
		}
	}

	for _, name := range sortedKeys(cfg.Classifications) {
		cls := cfg.Classifications[name]
		if cls.Multiplier < 0 {
			errs = append(errs, ValidationError{
				Field: fmt.Sprintf("classifications.%s.multiplier", name),
				Err:   fmt.Errorf("%w: %.2f", ErrInvalidMultiplier, cls.Multiplier),
			})
		}
		if cls.Min > 0 && cls.Max > 0 && cls.Min > cls.Max {
			errs = append(errs, ValidationError{
				Field: fmt.Sprintf("classifications.%s", name),
				Err:   fmt.Errorf("%w: min %.2f, max %.2f", ErrInvalidClamp, cls.Min, cls.Max),
			})
		}
	}

	for kind, ctx := range cfg.Contexts {
		if !kind.Valid() {
			errs = append(errs, ValidationError{
				Field: "contexts." + string(kind),
				Err:   fmt.Errorf("%w: %q", ErrUnknownPairKind, kind),
			})
		}
		if ctx.Multiplier < 0 {
			errs = append(errs, ValidationError{
				Field: fmt.Sprintf("contexts.%s.multiplier", kind),
				Err:   fmt.Errorf("%w: %.2f", ErrInvalidMultiplier, ctx.Multiplier),
			})
		}
		for asp, m := range ctx.Aspects {
			if m < 0 {
				errs = append(errs, ValidationError{
					Field: fmt.Sprintf("contexts.%s.aspects.%s", kind, asp),
					Err:   fmt.Errorf("%w: %.2f", ErrInvalidMultiplier, m),
				})
			}
		}
	}
	return errs
}
