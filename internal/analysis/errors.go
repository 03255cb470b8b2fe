package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/papapumpkin/constellate/internal/chart"
)

// ErrMultipleTransits is returned when a run holds more than one transit chart.
var ErrMultipleTransits = errors.New("at most one transit chart may be analyzed per run")

// ConfigurationError reports a run whose set of charts cannot be analyzed as
// a whole. No partial report is produced.
type ConfigurationError struct {
	Charts []string // offending chart names
	Err    error
}

// Error formats the sentinel followed by the offending chart names.
func (e *ConfigurationError) Error() string {
	if len(e.Charts) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %s", e.Err, strings.Join(e.Charts, ", "))
}

// Unwrap returns the underlying sentinel error.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// CheckTransits returns a *ConfigurationError when more than one chart is a
// transit chart.
func CheckTransits(charts []chart.Chart) error {
	var transits []string
	for _, c := range charts {
		if c.Kind == chart.KindTransit {
			transits = append(transits, c.Name)
		}
	}
	if len(transits) > 1 {
		return &ConfigurationError{Charts: transits, Err: ErrMultipleTransits}
	}
	return nil
}
