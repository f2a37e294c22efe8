/*
errors.go - Centralized error types for the schedule core

PURPOSE:
  All domain error values in one place. Adapters and the API layer wrap
  these with transport-specific context; the core only ever returns them.

ERROR CATEGORIES:
  1. Rule errors - conflict violations, unknown labels
  2. Store errors - persistence failures surfaced unchanged

USAGE:
  if errors.Is(err, shift.ErrShiftConflict) {
      // refused addition, not fatal
  }
*/
package shift

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrShiftConflict is returned when a candidate shift cannot coexist
	// with the shifts already assigned on a date.
	ErrShiftConflict = errors.New("shift conflict")

	// ErrUnknownShiftLabel is returned when an external roster label has
	// no shift code mapping. The referencing operation must be rejected,
	// never guessed.
	ErrUnknownShiftLabel = errors.New("unknown shift label")

	// ErrInvalidDate is returned for calendar keys that fail ISO parsing.
	ErrInvalidDate = errors.New("invalid date")

	// ErrNotFound is returned by stores for missing records.
	ErrNotFound = errors.New("not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ConflictError reports which assignment a candidate collided with.
type ConflictError struct {
	Date      string
	Existing  Code
	Candidate Code
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("shift conflict on %s: %s cannot join %s", e.Date, e.Candidate, e.Existing)
}

func (e *ConflictError) Unwrap() error { return ErrShiftConflict }

// IsClientError reports whether err stems from invalid caller input
// rather than an infrastructure failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrShiftConflict) ||
		errors.Is(err, ErrUnknownShiftLabel) ||
		errors.Is(err, ErrInvalidDate)
}
