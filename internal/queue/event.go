// Package queue defines message payloads exchanged over the message
// broker and the publisher/consumer that move them.
package queue

// Event types carried in BookingEvent.Type.
const (
    EventBookingCreated   = "booking.created"
    EventBookingConfirmed = "booking.confirmed"
    EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is published whenever a booking changes state.  It carries
// enough information for downstream consumers to log, notify or feed
// analytics without querying the primary database.
type BookingEvent struct {
    Type       string   `json:"type"`
    BookingID  string   `json:"booking_id"`
    EventID    string   `json:"event_id"`
    UserID     string   `json:"user_id"`
    Seats      []string `json:"seats"`
    Amount     float64  `json:"amount"`
    Status     string   `json:"status"`
    OccurredAt string   `json:"occurred_at"`
}
