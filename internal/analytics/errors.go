package analytics

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when a window contains nothing to report on.
var ErrNoData = errors.New("no expenses found for the specified period")

// ValidationError reports input that breaks a contract of the engine, such as an
// inverted window or a negative amount. It is never recovered from by clamping.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
