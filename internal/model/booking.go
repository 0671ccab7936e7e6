package model

import "time"

// BookingStatus tracks the lifecycle of a booking.  A booking is created
// in one of the two pending states and ends in confirmed, failed or
// cancelled.  Transitions are driven by explicit confirmation actions and
// by the expiry sweep; see the service layer for the legal edges.
type BookingStatus string

const (
    BookingPendingCash    BookingStatus = "pending_cash"    // awaiting cash payment at the door
    BookingPendingPayment BookingStatus = "pending_payment" // awaiting gateway verification
    BookingConfirmed      BookingStatus = "confirmed"       // paid, seats booked
    BookingFailed         BookingStatus = "failed"          // gateway reported non-success
    BookingCancelled      BookingStatus = "cancelled"       // hold expired and was released
)

// Terminal reports whether the status is an end state.  Seats claimed by a
// booking in a terminal failed/cancelled state have been returned to the
// pool; confirmed bookings keep theirs as booked.
func (s BookingStatus) Terminal() bool {
    switch s {
    case BookingConfirmed, BookingFailed, BookingCancelled:
        return true
    }
    return false
}

// PaymentMethod distinguishes cash-at-the-door bookings from online
// gateway payments.
type PaymentMethod string

const (
    PayCash    PaymentMethod = "cash"
    PayGateway PaymentMethod = "gateway"
)

// Booking records one user's claim on a set of seats in one event.  The
// seat list is copied at creation and immutable afterwards; the event is
// referenced by ID only.  CreatedAt is a server timestamp and drives the
// cash-hold expiry.
//
// Fields:
//  ID              – booking identifier (generated UUID).
//  EventID         – referenced event.
//  UserID          – user who made the booking.
//  Seats           – seat IDs claimed in the event's chart.
//  Amount          – total price, recomputed server-side.
//  Status          – lifecycle status.
//  PaymentMethod   – cash or gateway.
//  GatewayChargeID – charge reference from the payment gateway, if any.
//  CreatedAt       – server creation timestamp (UTC).
type Booking struct {
    ID              string        `json:"id"`
    EventID         string        `json:"eventId"`
    UserID          string        `json:"userId"`
    Seats           []string      `json:"seats"`
    Amount          float64       `json:"amount"`
    Status          BookingStatus `json:"status"`
    PaymentMethod   PaymentMethod `json:"paymentMethod"`
    GatewayChargeID string        `json:"gatewayChargeId,omitempty"`
    CreatedAt       time.Time     `json:"createdAt"`
}
