package aspect

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for aspect definition validation.
var (
	ErrMissingName    = errors.New("aspect name is required")
	ErrAngleRange     = errors.New("angle must be within [0, 180]")
	ErrNonPositiveOrb = errors.New("orb must be greater than zero")
	ErrDuplicateName  = errors.New("duplicate aspect name")
)

// ValidationError records a problem with one definition.
type ValidationError struct {
	Index int
	Name  string
	Err   error
}

// Error formats the error with the definition index and name.
func (e *ValidationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("aspects[%d]: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("aspects[%d] %s: %v", e.Index, e.Name, e.Err)
}

// Unwrap returns the sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks every definition for a name, an angle in [0, 180] and a
// positive orb. Names must be unique, ignoring case.
func Validate(defs []Definition) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(defs))
	for i, d := range defs {
		if d.Name == "" {
			errs = append(errs, ValidationError{Index: i, Err: ErrMissingName})
		} else {
			key := strings.ToLower(d.Name)
			if seen[key] {
				errs = append(errs, ValidationError{Index: i, Name: d.Name, Err: ErrDuplicateName})
			}
			seen[key] = true
		}
		if d.Angle < 0 || d.Angle > 180 {
			errs = append(errs, ValidationError{Index: i, Name: d.Name, Err: fmt.Errorf("%w: %.2f", ErrAngleRange, d.Angle)})
		}
		if d.Orb <= 0 {
			errs = append(errs, ValidationError{Index: i, Name: d.Name, Err: fmt.Errorf("%w: %.2f", ErrNonPositiveOrb, d.Orb)})
		}
	}
	return errs
}
