package scheduling

import "fmt"

// Sub-reasons carried by InvalidTimeRangeError.
const (
	ReasonPast                = "past"
	ReasonInverted            = "inverted"
	ReasonOutsideAvailability = "outside-availability"
	ReasonConflict            = "conflict"
)

// InvalidTimeRangeError rejects a booking attempt. Callers map any reason
// to a user-facing "this slot is no longer available" message; the Reason
// field exists for diagnostics.
type InvalidTimeRangeError struct {
	Reason  string
	Message string
}

func (e *InvalidTimeRangeError) Error() string {
	return fmt.Sprintf("invalid time range (%s): %s", e.Reason, e.Message)
}

// TimezoneMismatchError signals an attempt to intersect availabilities
// defined in different timezones. It is always surfaced, never coerced.
type TimezoneMismatchError struct {
	A, B string
}

func (e *TimezoneMismatchError) Error() string {
	return fmt.Sprintf("unsupported timezone mismatch: %q vs %q", e.A, e.B)
}

// ConflictSourceUnavailableError marks a conflict source that errored or
// timed out. Validation fails closed on it: an unreachable source is never
// treated as "no conflict".
type ConflictSourceUnavailableError struct {
	SourceID string
	Err      error
}

func (e *ConflictSourceUnavailableError) Error() string {
	return fmt.Sprintf("conflict source %s unavailable: %v", e.SourceID, e.Err)
}

func (e *ConflictSourceUnavailableError) Unwrap() error { return e.Err }
