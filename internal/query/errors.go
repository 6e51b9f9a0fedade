package query

import "fmt"

// ValidationError reports criteria that cannot be turned into a remote query.
// It is always raised before any network I/O.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid search criteria: " + e.Reason
	}
	return fmt.Sprintf("invalid search criteria: %s %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
