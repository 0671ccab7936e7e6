package model

// ValidateAndReserve checks every requested seat against the chart and, if
// all of them pass, returns a new chart value with those seats marked
// reserved.  The batch is all-or-nothing: the first invalid seat aborts
// the whole request and the input chart is never mutated, so a buyer gets
// every seat they selected or none of them.  Validation follows the
// caller's order, which only decides which seat's error is reported first.
func ValidateAndReserve(chart *SeatingChart, seatIDs []string) (*SeatingChart, error) {
    next := chart.Clone()
    for _, id := range seatIDs {
        seat := next.FindSeat(id)
        if seat == nil {
            return nil, &SeatError{SeatID: id, Err: ErrSeatNotFound}
        }
        if !seat.Reservable() {
            return nil, &SeatError{SeatID: id, Err: ErrSeatNotReservable}
        }
        if NormalizeStatus(seat.Status) != SeatAvailable {
            return nil, &SeatError{SeatID: id, Err: ErrSeatUnavailable}
        }
        seat.Status = SeatReserved
    }
    return next, nil
}

// ReleaseSeats returns a chart with every listed seat whose status equals
// expected (normally reserved) set back to available.  Seats that have
// already moved on, e.g. booked by a confirmation that raced the release,
// are left untouched.  That makes release idempotent and safe to run
// after the fact.
func ReleaseSeats(chart *SeatingChart, seatIDs []string, expected SeatStatus) *SeatingChart {
    next := chart.Clone()
    for _, id := range seatIDs {
        if seat := next.FindSeat(id); seat != nil && seat.Status == expected {
            seat.Status = SeatAvailable
        }
    }
    return next
}

// ConfirmSeats returns a chart with every listed seat currently reserved
// promoted to booked.  Seats in any other state are left as-is, which
// defends against double confirmation.
func ConfirmSeats(chart *SeatingChart, seatIDs []string) *SeatingChart {
    next := chart.Clone()
    for _, id := range seatIDs {
        if seat := next.FindSeat(id); seat != nil && seat.Status == SeatReserved {
            seat.Status = SeatBooked
        }
    }
    return next
}
