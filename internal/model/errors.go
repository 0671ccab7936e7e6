// Package model holds the seating-chart and booking domain types together
// with the pure functions that implement the seat state machine.  Nothing
// in this package performs I/O; the repository and service layers compose
// these values inside their transaction boundaries.
package model

import (
    "errors"
    "fmt"
)

// Sentinel reasons a seat cannot be reserved.  They are always surfaced
// wrapped in a SeatError so callers can both match the reason with
// errors.Is and recover the offending seat ID with errors.As.
var (
    // ErrSeatNotFound indicates the requested seat ID does not exist in
    // the event's chart.
    ErrSeatNotFound = errors.New("seat not found")
    // ErrSeatNotReservable indicates the ID names an aisle or filler cell
    // rather than a real seat.
    ErrSeatNotReservable = errors.New("seat not reservable")
    // ErrSeatUnavailable indicates the seat exists but is not currently
    // available (reserved, booked or blocked).
    ErrSeatUnavailable = errors.New("seat unavailable")
)

// SeatError carries the ID of the first seat that failed validation so the
// client can show a seat-level message and let the user deselect it.
type SeatError struct {
    SeatID string
    Err    error
}

func (e *SeatError) Error() string {
    return fmt.Sprintf("seat %s: %v", e.SeatID, e.Err)
}

// Unwrap exposes the underlying sentinel for errors.Is.
func (e *SeatError) Unwrap() error { return e.Err }

// InvalidStateError reports a booking lifecycle transition attempted from
// the wrong state, e.g. confirming a booking that is already cancelled.
type InvalidStateError struct {
    Expected BookingStatus
    Actual   BookingStatus
}

func (e *InvalidStateError) Error() string {
    return fmt.Sprintf("invalid booking state: expected %s, got %s", e.Expected, e.Actual)
}
