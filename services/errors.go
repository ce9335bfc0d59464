package services

import "errors"

// Stable error codes surfaced to the presentation layer. These are business
// outcomes, never retried inside the core; anything without a code is an
// infrastructure failure and propagates as-is.
const (
	CodeInvalidRange     = "invalid_range"
	CodeCapacityExceeded = "capacity_exceeded"
	CodeDateConflict     = "date_conflict"
	CodeForbidden        = "forbidden"
	CodeNotFound         = "not_found"
	CodeStaleTransition  = "stale_transition"
)

type Error struct {
	Code    string `json:"error_code"`
	Message string `json:"error"`

	// Populated on date_conflict so the guest can pick different dates.
	ConflictingDates          []string `json:"conflicting_dates,omitempty"`
	ConflictingReservationIDs []string `json:"conflicting_reservation_ids,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// AsError unwraps err into a coded *Error, if it is one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsCode reports whether err is a coded error with the given code.
func IsCode(err error, code string) bool {
	if e, ok := AsError(err); ok {
		return e.Code == code
	}
	return false
}
