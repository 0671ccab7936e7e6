// Package service implements the reservation transaction engine, the
// booking lifecycle and the expiry sweep over a transactional store.  The
// store and payment-gateway dependencies are interfaces declared here so
// the services can be exercised against in-memory fakes in tests and the
// MySQL-backed repository in production.
package service

import (
    "context"
    "errors"
    "time"

    "github.com/alwasl/event-booking/internal/model"
    "github.com/alwasl/event-booking/internal/queue"
)

// Store is the persistence surface the services run against.  WithTx must
// execute the closure as one atomic, conflict-checked transaction and is
// responsible for retrying it when a concurrent writer invalidates the
// read; every chart mutation in this package happens inside it.
type Store interface {
    WithTx(ctx context.Context, fn func(ctx context.Context) error) error

    GetEvent(ctx context.Context, id string) (*model.Event, error)
    GetEventForUpdate(ctx context.Context, id string) (*model.Event, error)
    UpdateEventChart(ctx context.Context, ev *model.Event) error

    CreateBooking(ctx context.Context, b *model.Booking) error
    GetBooking(ctx context.Context, id string) (*model.Booking, error)
    UpdateBookingStatusFrom(ctx context.Context, id string, from, to model.BookingStatus) (bool, error)
    SetBookingGatewayCharge(ctx context.Context, id, chargeID string) error
    ListExpiredCashBookings(ctx context.Context, cutoff time.Time) ([]model.Booking, error)
}

// Charge is the slice of a gateway charge the booking flow consumes: the
// gateway's reference, whether the money was captured, and where to send
// the user to pay.
type Charge struct {
    ID         string
    Status     string
    Captured   bool
    PaymentURL string
}

// ChargeRequest carries what the gateway needs to create a charge.  The
// booking ID travels in the charge metadata so the callback can correlate.
type ChargeRequest struct {
    Amount      float64
    Currency    string
    Description string
    BookingID   string
    RedirectURL string
}

// PaymentGateway is the narrow interface over the external payment
// provider.  Its results are consumed only as captured / not captured;
// protocol details stay inside the implementation.
type PaymentGateway interface {
    CreateCharge(ctx context.Context, req ChargeRequest) (*Charge, error)
    GetCharge(ctx context.Context, chargeID string) (*Charge, error)
}

// timeLayout is the wire format for timestamps in broker events.
const timeLayout = time.RFC3339

// publishFunc sends a booking event to the message broker.  Publishing is
// best-effort: failures are logged by the caller and never fail the
// request that produced the event.
type publishFunc func(ctx context.Context, ev queue.BookingEvent) error

// Validation errors shared by the reservation flows.
var (
    // ErrNoSeatsRequested is returned when the request carries no usable
    // seat IDs after deduplication.
    ErrNoSeatsRequested = errors.New("no seats requested")
    // ErrAmountMismatch is returned when the client's total does not
    // match the server-side price times seat count.
    ErrAmountMismatch = errors.New("amount does not match seat price")
)
