// Package repository implements persistence for events and bookings over
// database/sql.  The sentinel errors here let the service and handler
// layers distinguish failure scenarios without inspecting driver errors.
package repository

import "errors"

// ErrEventNotFound is returned when no event exists for the given ID.
// Handlers should translate this into an HTTP 404 response.
var ErrEventNotFound = errors.New("event not found")

// ErrBookingNotFound is returned when no booking exists for the given ID.
// Handlers should translate this into an HTTP 404 response.
var ErrBookingNotFound = errors.New("booking not found")

// ErrVersionConflict is returned by a chart write whose version stamp no
// longer matches the stored event, meaning a concurrent transaction
// committed between our read and write.  WithTx retries the whole
// transaction on this error; it should not normally escape to callers.
var ErrVersionConflict = errors.New("event version conflict")

// ErrContention is returned when a transaction kept conflicting until the
// retry budget was exhausted.  Handlers should translate this into an
// HTTP 503 response so the client can retry.
var ErrContention = errors.New("transaction retries exhausted")
