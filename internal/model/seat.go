package model

// SeatStatus enumerates the lifecycle states of a bookable seat.
// A seat only ever moves forward through available -> reserved -> booked,
// or back from reserved to available when a hold is released.  Booked is
// terminal.  Unavailable marks seats that are permanently out of the pool
// (blocked by the venue); they never participate in reservations.
type SeatStatus string

const (
    SeatAvailable   SeatStatus = "available"   // free to reserve
    SeatReserved    SeatStatus = "reserved"    // held by a pending booking
    SeatBooked      SeatStatus = "booked"      // paid for, terminal
    SeatUnavailable SeatStatus = "unavailable" // permanently out of the pool
)

// NormalizeStatus maps legacy status spellings onto the canonical set.
// Older seed data uses "blocked" for permanently unavailable seats, and
// "selected" is a client-side UI state that must never be treated as a
// persisted status; both collapse to their server-side equivalents.
func NormalizeStatus(s SeatStatus) SeatStatus {
    switch s {
    case "blocked":
        return SeatUnavailable
    case "selected":
        return SeatAvailable
    }
    return s
}

// SeatType distinguishes real seats from layout filler.  Only TypeSeat
// participates in reservation logic; aisles and empty cells exist purely
// so the client can render the physical room.
type SeatType string

const (
    TypeSeat  SeatType = "seat"
    TypeAisle SeatType = "aisle"
    TypeEmpty SeatType = "empty"
)

// SeatSection is a display grouping with no business meaning.
type SeatSection string

const (
    SectionLeft   SeatSection = "left"
    SectionCenter SeatSection = "center"
    SectionRight  SeatSection = "right"
    SectionAisle  SeatSection = "aisle"
)

// Seat is a single cell in a seating chart.  The ID is unique across the
// whole chart and stable for the lifetime of the event; it encodes
// row/section/column for display only and is never parsed by the engine.
//
// Fields:
//  ID      – chart-wide unique identifier, e.g. "BL3".
//  Number  – display number within the row; empty for aisles and filler.
//  Status  – current lifecycle status; meaningful only when Type is seat.
//  Type    – seat, aisle or empty.
//  Section – display grouping (left, center, right, aisle).
type Seat struct {
    ID      string      `json:"id"`
    Number  string      `json:"number,omitempty"`
    Status  SeatStatus  `json:"status,omitempty"`
    Type    SeatType    `json:"type"`
    Section SeatSection `json:"section"`
}

// Reservable reports whether this cell is a real seat that can ever be
// reserved (it may still be unavailable or already taken).
func (s *Seat) Reservable() bool {
    return s.Type == TypeSeat
}
