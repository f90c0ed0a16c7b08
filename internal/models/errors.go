package models

import (
	"errors"
	"fmt"
)

// Rejection reasons, recorded per excluded record during ingestion.
// Rejections are data, not errors: they never abort a run.
const (
	ReasonDuplicate         = "duplicate"
	ReasonMissingField      = "missing_field"
	ReasonOutOfBounds       = "out_of_bounds"
	ReasonInvalidDuration   = "invalid_duration"
	ReasonInvalidPassengers = "invalid_passengers"
	ReasonUnrealisticSpeed  = "unrealistic_speed"
	ReasonZeroDistance      = "zero_distance"
)

// ErrDuplicateTrip is returned by the trip repository when inserting a trip
// whose identifier already exists in the store.
var ErrDuplicateTrip = errors.New("trip already exists")

// ErrStoreUnavailable marks a persistence-boundary failure. Callers may retry
// the unit of work; partially written vendor/zone state is rolled back.
var ErrStoreUnavailable = errors.New("store unavailable")

// ValidationError reports a malformed query parameter. It is surfaced to the
// caller directly and never coerced to a default.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a request field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
