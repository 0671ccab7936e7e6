package model

import "time"

// Venue identifies which theater an event takes place in.  The two
// theaters have different physical layouts, so the venue decides which
// chart generator seeds the event.
type Venue string

const (
    VenueBoysTheater  Venue = "boys-theater"
    VenueGirlsTheater Venue = "girls-theater"
)

// Event is the aggregate the whole reservation engine revolves around.
// The seating chart is embedded in the event record, not stored
// separately, so reserving, confirming and releasing seats are all
// read-modify-write cycles against this one document.  Version backs the
// compare-and-swap write that keeps those cycles atomic under contention.
//
// Fields:
//  ID              – event identifier (generated).
//  Name            – display name.
//  Date, Time      – scheduling info as shown to users.
//  Description     – short blurb for listings.
//  LongDescription – full text for the detail page.
//  Image           – poster image URL.
//  Venue           – which theater hosts the event.
//  Price           – price per seat; the server recomputes booking amounts
//                    from this, never trusting the client's total.
//  TotalSeats      – bookable seat count, fixed at creation.
//  SeatsAvailable  – counter decremented on confirmed bookings.
//  SeatingChart    – embedded layout and live seat status.
//  Version         – optimistic concurrency stamp for chart writes.
//  CreatedAt       – creation timestamp (UTC).
type Event struct {
    ID              string        `json:"id"`
    Name            string        `json:"name"`
    Date            string        `json:"date"`
    Time            string        `json:"time"`
    Description     string        `json:"description,omitempty"`
    LongDescription string        `json:"longDescription,omitempty"`
    Image           string        `json:"image,omitempty"`
    Venue           Venue         `json:"venue"`
    Price           float64       `json:"price"`
    TotalSeats      int           `json:"totalSeats"`
    SeatsAvailable  int           `json:"seatsAvailable"`
    SeatingChart    *SeatingChart `json:"seatingChart"`
    Version         uint64        `json:"-"`
    CreatedAt       time.Time     `json:"-"`
}
