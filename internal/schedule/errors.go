package schedule

import "fmt"

// ValidationError reports a malformed schedule or slot field.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Message)
}

// ConflictError reports a posting-time collision within one week.
// Conflicts are surfaced to the caller, never resolved silently.
type ConflictError struct {
	Day            string
	Hour           int
	ExistingPostID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot %s %02d:00 already taken by post %s", e.Day, e.Hour, e.ExistingPostID)
}
