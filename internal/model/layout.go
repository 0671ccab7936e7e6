package model

import "strconv"

// Chart generators for the two school theaters.  Layouts mirror the
// physical rooms: a left and right block separated from the center block
// by aisles, twenty rows lettered A through T.  Row A's center block is
// kept clear in both rooms (stage access), represented by non-seat filler
// cells so the client renders the gap correctly.
//
// Generated charts start with every seat available.  Seeding variants
// that randomize initial availability are a data concern; the engine
// treats whatever a chart was created with as authoritative.

var rowLetters = []string{
    "A", "B", "C", "D", "E", "F", "G", "H", "I", "J",
    "K", "L", "M", "N", "O", "P", "Q", "R", "S", "T",
}

// GenerateChart returns a fresh all-available chart for the venue.
func GenerateChart(v Venue) *SeatingChart {
    if v == VenueGirlsTheater {
        return generate(4, 8, 4)
    }
    return generate(7, 12, 7)
}

// generate builds a chart with the given section widths.  Left seats are
// numbered high-to-low so that seat 1 of every section sits next to the
// center aisle, matching the printed numbers on the physical seats.
func generate(left, center, right int) *SeatingChart {
    chart := &SeatingChart{Rows: make([]SeatingRow, 0, len(rowLetters))}
    for _, rowID := range rowLetters {
        row := SeatingRow{ID: rowID}

        for i := left; i >= 1; i-- {
            row.Seats = append(row.Seats, Seat{
                ID:      rowID + "L" + strconv.Itoa(i),
                Number:  strconv.Itoa(i),
                Status:  SeatAvailable,
                Type:    TypeSeat,
                Section: SectionLeft,
            })
        }
        row.Seats = append(row.Seats, Seat{ID: rowID + "A1", Type: TypeAisle, Section: SectionAisle})

        for i := 1; i <= center; i++ {
            if rowID == "A" {
                // Row A center stays clear; filler keeps column alignment.
                row.Seats = append(row.Seats, Seat{
                    ID:      rowID + "C_aisle_" + strconv.Itoa(i),
                    Type:    TypeEmpty,
                    Section: SectionCenter,
                })
                continue
            }
            row.Seats = append(row.Seats, Seat{
                ID:      rowID + "C" + strconv.Itoa(i),
                Number:  strconv.Itoa(i),
                Status:  SeatAvailable,
                Type:    TypeSeat,
                Section: SectionCenter,
            })
        }
        row.Seats = append(row.Seats, Seat{ID: rowID + "A2", Type: TypeAisle, Section: SectionAisle})

        for i := 1; i <= right; i++ {
            row.Seats = append(row.Seats, Seat{
                ID:      rowID + "R" + strconv.Itoa(i),
                Number:  strconv.Itoa(i),
                Status:  SeatAvailable,
                Type:    TypeSeat,
                Section: SectionRight,
            })
        }
        chart.Rows = append(chart.Rows, row)
    }
    return chart
}
