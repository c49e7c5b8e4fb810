package scheduling

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// RejectReason classifies why a booking request was turned down.
type RejectReason string

const (
	// ReasonOutsideAvailability: the proposed interval is not covered by any
	// availability window of the professional on that weekday.
	ReasonOutsideAvailability RejectReason = "outside_availability"
	// ReasonOverlap: the proposed interval collides with an active booking.
	ReasonOverlap RejectReason = "overlap"
	// ReasonResourceUnavailable: the professional or service is missing or
	// inactive.
	ReasonResourceUnavailable RejectReason = "resource_unavailable"
	// ReasonConflict: a concurrent writer won the slot; the decide-and-write
	// cycle was retried and still lost.
	ReasonConflict RejectReason = "conflict"
)

// RejectionError is the typed admit/reject outcome of the conflict checker.
// ConflictingBookingID is set only for ReasonOverlap.
type RejectionError struct {
	Reason               RejectReason
	ConflictingBookingID uuid.UUID
}

func (e *RejectionError) Error() string {
	return "booking rejected: " + string(e.Reason)
}
