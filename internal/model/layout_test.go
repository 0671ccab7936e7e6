package model

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestGenerateChart_BoysTheater(t *testing.T) {
    chart := GenerateChart(VenueBoysTheater)

    require.Len(t, chart.Rows, 20)
    assert.Equal(t, "A", chart.Rows[0].ID)
    assert.Equal(t, "T", chart.Rows[19].ID)

    // 7+12+7 seats per row over 20 rows, minus the 12 cleared center
    // cells in row A.
    assert.Equal(t, 26*20-12, chart.CountSeats())
    assert.Equal(t, chart.CountSeats(), chart.CountAvailable())

    // Left block numbers run high-to-low so seat 1 touches the aisle.
    rowB := chart.Rows[1]
    assert.Equal(t, "BL7", rowB.Seats[0].ID)
    assert.Equal(t, "BL1", rowB.Seats[6].ID)
    assert.Equal(t, TypeAisle, rowB.Seats[7].Type)
    assert.Equal(t, "BC1", rowB.Seats[8].ID)
}

func TestGenerateChart_GirlsTheater(t *testing.T) {
    chart := GenerateChart(VenueGirlsTheater)

    require.Len(t, chart.Rows, 20)
    assert.Equal(t, 16*20-8, chart.CountSeats())

    // Each row is 4 left + aisle + 8 center + aisle + 4 right cells.
    for _, row := range chart.Rows {
        assert.Len(t, row.Seats, 18)
    }
}

func TestGenerateChart_RowACenterIsCleared(t *testing.T) {
    chart := GenerateChart(VenueBoysTheater)
    rowA := chart.Rows[0]

    for _, seat := range rowA.Seats {
        if seat.Section == SectionCenter {
            assert.Equal(t, TypeEmpty, seat.Type, "cell %s", seat.ID)
            assert.False(t, seat.Reservable())
        }
    }
    // The gap is layout filler; the side blocks of row A stay bookable.
    assert.NotNil(t, chart.FindSeat("AL1"))
    assert.Equal(t, TypeSeat, chart.FindSeat("AL1").Type)
    assert.Nil(t, chart.FindSeat("AC1"))
}

func TestGenerateChart_UniqueIDs(t *testing.T) {
    for _, venue := range []Venue{VenueBoysTheater, VenueGirlsTheater} {
        chart := GenerateChart(venue)
        seen := make(map[string]bool)
        for _, row := range chart.Rows {
            for _, seat := range row.Seats {
                assert.False(t, seen[seat.ID], "duplicate id %s in %s", seat.ID, venue)
                seen[seat.ID] = true
            }
        }
    }
}
