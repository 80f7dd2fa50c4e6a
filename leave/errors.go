/*
errors.go - Centralized error types for the leave domain

PURPOSE:
  All domain error types in one place. The API layer classifies these with
  the helpers below to pick HTTP status codes; nothing in this package knows
  about HTTP.

ERROR CATEGORIES:
  1. Policy errors   - year outside configured bounds
  2. Validation errors - malformed cycles and periods
  3. Store errors    - missing or duplicate records

USAGE:
  if errors.Is(err, leave.ErrInvalidYear) { ... }

SEE ALSO:
  - types.go: Validate methods returning these errors
  - ../fraction/calculator.go: raises InvalidYearError
*/
package leave

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidYear is returned when a computation is requested for a year
	// outside the configured policy bounds.
	ErrInvalidYear = errors.New("year outside configured bounds")

	// ErrInvalidPeriod is returned for a period whose end precedes its start.
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrInvalidHalfDay is returned for an unknown half-day boundary value.
	ErrInvalidHalfDay = errors.New("invalid half-day value")

	// ErrInvalidLeaveType is returned for an unknown leave type.
	ErrInvalidLeaveType = errors.New("invalid leave type")

	// ErrNotFound is returned when a referenced record doesn't exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique constraint would be violated,
	// e.g. a second cycle for the same (agent, year).
	ErrDuplicate = errors.New("record already exists")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidYearError reports a year outside the policy bounds.
type InvalidYearError struct {
	Year int
	Min  int
	Max  int
}

func (e *InvalidYearError) Error() string {
	return fmt.Sprintf("invalid year %d: must be between %d and %d", e.Year, e.Min, e.Max)
}

func (e *InvalidYearError) Unwrap() error { return ErrInvalidYear }

// InvalidCycleError reports a weekly-cycle field outside its contractual bounds.
type InvalidCycleError struct {
	Field string
	Value string
}

func (e *InvalidCycleError) Error() string {
	return fmt.Sprintf("invalid cycle: %s=%s out of bounds", e.Field, e.Value)
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError reports whether the error is due to invalid client input.
func IsClientError(err error) bool {
	var cycleErr *InvalidCycleError
	return errors.Is(err, ErrInvalidYear) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidHalfDay) ||
		errors.Is(err, ErrInvalidLeaveType) ||
		errors.Is(err, ErrDuplicate) ||
		errors.As(err, &cycleErr)
}

// IsNotFound reports whether the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
