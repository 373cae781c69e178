package clinic

import (
	"fmt"
	"time"
)

// ValidationError reports a malformed or missing field on a record.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("clinic: invalid %s: %s", e.Field, e.Message)
}

// ReferenceError reports an appointment pointing at a provider or patient
// that does not exist.
type ReferenceError struct {
	Entity string
	ID     string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("clinic: %s %q does not exist", e.Entity, e.ID)
}

// NotFoundError reports an operation on an id with no matching record.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("clinic: %s %q not found", e.Entity, e.ID)
}

// ConflictError reports a business-rule conflict: a scheduling overlap or a
// delete blocked by a future-dated appointment. For overlaps, Start and End
// carry the conflicting interval.
type ConflictError struct {
	Reason string
	Start  time.Time
	End    time.Time
}

func (e *ConflictError) Error() string {
	return "clinic: " + e.Reason
}
