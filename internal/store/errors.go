package store

import "fmt"

// ValidationError reports a malformed input record. Records failing
// validation are rejected at ingestion, never silently coerced.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Message)
}
