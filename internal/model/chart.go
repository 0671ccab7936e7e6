package model

// SeatingRow is an ordered run of cells sharing a row identifier.  A row
// belongs to exactly one chart.
type SeatingRow struct {
    ID    string `json:"id"`
    Seats []Seat `json:"seats"`
}

// SeatingChart is the full seat layout and live status for one event.  It
// is embedded as a single JSON field inside the event record rather than
// stored as its own collection, so every mutation of it goes through the
// event's transaction discipline.  Seat IDs are unique across the chart.
type SeatingChart struct {
    Rows []SeatingRow `json:"rows"`
}

// FindSeat returns a pointer to the seat with the given ID, or nil when no
// such seat exists.  The scan is linear over rows and seats, which is fine
// for charts of tens of rows with a few dozen seats each.
func (c *SeatingChart) FindSeat(seatID string) *Seat {
    for ri := range c.Rows {
        for si := range c.Rows[ri].Seats {
            if c.Rows[ri].Seats[si].ID == seatID {
                return &c.Rows[ri].Seats[si]
            }
        }
    }
    return nil
}

// CountAvailable returns the number of real seats currently available.
func (c *SeatingChart) CountAvailable() int {
    n := 0
    for ri := range c.Rows {
        for si := range c.Rows[ri].Seats {
            s := &c.Rows[ri].Seats[si]
            if s.Type == TypeSeat && NormalizeStatus(s.Status) == SeatAvailable {
                n++
            }
        }
    }
    return n
}

// CountSeats returns the number of real (bookable) seats in the chart,
// regardless of status.  Used to populate an event's TotalSeats counter
// at creation time.
func (c *SeatingChart) CountSeats() int {
    n := 0
    for ri := range c.Rows {
        for si := range c.Rows[ri].Seats {
            if c.Rows[ri].Seats[si].Type == TypeSeat {
                n++
            }
        }
    }
    return n
}

// Clone returns a deep copy of the chart.  Mutation helpers operate on a
// clone so that the caller's snapshot stays untouched; the transaction
// layer relies on that when it retries with a fresh read.
func (c *SeatingChart) Clone() *SeatingChart {
    out := &SeatingChart{Rows: make([]SeatingRow, len(c.Rows))}
    for ri, row := range c.Rows {
        seats := make([]Seat, len(row.Seats))
        copy(seats, row.Seats)
        out.Rows[ri] = SeatingRow{ID: row.ID, Seats: seats}
    }
    return out
}

// WithSeatStatus returns a copy of the chart with exactly one seat's status
// replaced.  The input chart is never mutated.  When the seat does not
// exist the copy is returned unchanged.
func (c *SeatingChart) WithSeatStatus(seatID string, status SeatStatus) *SeatingChart {
    out := c.Clone()
    if s := out.FindSeat(seatID); s != nil {
        s.Status = status
    }
    return out
}
