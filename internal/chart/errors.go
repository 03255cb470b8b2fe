package chart

import "errors"

// Sentinel errors for chart validation and loading.
var (
	// ErrMissingField indicates a required field (chart or point name) is empty.
	ErrMissingField = errors.New("required field missing")
	// ErrDuplicateName indicates two charts, or two points of one chart, share a name.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrUnknownKind indicates a chart kind other than natal, event or transit.
	ErrUnknownKind = errors.New("unknown chart kind")
	// ErrCuspCount indicates a cusp list that is neither empty nor twelve long.
	ErrCuspCount = errors.New("cusps must hold exactly 12 values")
	// ErrBadLongitude indicates a NaN or infinite position.
	ErrBadLongitude = errors.New("longitude is not a finite number")
	// ErrUnsupportedFormat indicates a chart file extension with no loader.
	ErrUnsupportedFormat = errors.New("unsupported chart file format")
)

// ValidationCategory classifies a validation error for programmatic handling.
type ValidationCategory string

const (
	ValCatMissingField ValidationCategory = "missing_field"
	ValCatDuplicate    ValidationCategory = "duplicate_name"
	ValCatUnknownKind  ValidationCategory = "unknown_kind"
	ValCatCusps        ValidationCategory = "cusp_count"
	ValCatNumeric      ValidationCategory = "numeric"
)

// ValidationError records a validation problem with the chart and field it
// was found in.
type ValidationError struct {
	Category ValidationCategory
	Chart    string
	Field    string
	Err      error
}

// Error returns a human-readable string including chart context.
func (e *ValidationError) Error() string {
	if e.Chart != "" {
		return "chart " + e.Chart + ": " + e.Field + ": " + e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
