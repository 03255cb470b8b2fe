package chart

import (
	"fmt"
	"math"
)

// Validate checks a run's charts for structural correctness: names present
// and unique, known kinds, twelve cusps or none, finite positions. It does
// not police the number of transit charts; that is a configuration error
// raised by the analysis engine.
func Validate(charts []Chart) []ValidationError {
	var errs []ValidationError

	seen := make(map[string]int)
	for i, c := range charts {
		field := fmt.Sprintf("charts[%d]", i)
		if c.Name == "" {
			errs = append(errs, ValidationError{
				Category: ValCatMissingField,
				Field:    field + ".name",
				Err:      fmt.Errorf("%w: name", ErrMissingField),
			})
		} else if prev, ok := seen[c.Name]; ok {
			errs = append(errs, ValidationError{
				Category: ValCatDuplicate,
				Chart:    c.Name,
				Field:    field + ".name",
				Err:      fmt.Errorf("%w: %q already used by charts[%d]", ErrDuplicateName, c.Name, prev),
			})
		} else {
			seen[c.Name] = i
		}

		if !c.Kind.Valid() {
			errs = append(errs, ValidationError{
				Category: ValCatUnknownKind,
				Chart:    c.Name,
				Field:    "kind",
				Err:      fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind),
			})
		}

		if n := len(c.Cusps); n != 0 && n != 12 {
			errs = append(errs, ValidationError{
				Category: ValCatCusps,
				Chart:    c.Name,
				Field:    "cusps",
				Err:      fmt.Errorf("%w, got %d", ErrCuspCount, n),
			})
		}
		for j, cusp := range c.Cusps {
			if !finite(cusp) {
				errs = append(errs, ValidationError{
					Category: ValCatNumeric,
					Chart:    c.Name,
					Field:    fmt.Sprintf("cusps[%d]", j),
					Err:      ErrBadLongitude,
				})
			}
		}

		errs = append(errs, validatePoints(c)...)
	}
	return errs
}

func validatePoints(c Chart) []ValidationError {
	var errs []ValidationError
	names := make(map[string]bool, len(c.Points))
	for j, p := range c.Points {
		field := fmt.Sprintf("points[%d]", j)
		if p.Name == "" {
			errs = append(errs, ValidationError{
				Category: ValCatMissingField,
				Chart:    c.Name,
				Field:    field + ".name",
				Err:      fmt.Errorf("%w: name", ErrMissingField),
			})
			continue
		}
		if names[p.Name] {
			errs = append(errs, ValidationError{
				Category: ValCatDuplicate,
				Chart:    c.Name,
				Field:    field + ".name",
				Err:      fmt.Errorf("%w: point %q", ErrDuplicateName, p.Name),
			})
		}
		names[p.Name] = true

		if !finite(p.Longitude) {
			errs = append(errs, ValidationError{
				Category: ValCatNumeric,
				Chart:    c.Name,
				Field:    field + ".longitude",
				Err:      fmt.Errorf("%w: %s", ErrBadLongitude, p.Name),
			})
		}
		if p.Speed != nil && !finite(*p.Speed) {
			errs = append(errs, ValidationError{
				Category: ValCatNumeric,
				Chart:    c.Name,
				Field:    field + ".speed",
				Err:      fmt.Errorf("speed of %s is not a finite number", p.Name),
			})
		}
	}
	return errs
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
