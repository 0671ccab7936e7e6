package service

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/alwasl/event-booking/internal/clock"
    "github.com/alwasl/event-booking/internal/model"
    "github.com/alwasl/event-booking/internal/queue"
)

// reserveAt places a cash hold with a back-dated creation time.
func reserveAt(t *testing.T, store *fakeStore, created time.Time, seats ...string) *model.Booking {
    t.Helper()
    svc := NewReservationService(store, nil, clock.NewFixed(created), nil, "https://example.test/verify", "KWD")
    b, err := svc.ReserveSeats(context.Background(), ReserveSeatsInput{
        EventID:       "ev-1",
        UserID:        "user-1",
        SeatIDs:       seats,
        Amount:        5 * float64(len(seats)),
        PaymentMethod: model.PayCash,
    })
    require.NoError(t, err)
    return b
}

func TestSweep_CancelsOnlyExpiredHolds(t *testing.T) {
    store := newFakeStore(newTestEvent("ev-1"))
    stale := reserveAt(t, store, testNow.Add(-49*time.Hour), "ML1", "ML2")
    fresh := reserveAt(t, store, testNow.Add(-47*time.Hour), "MC1")

    pub := &capturePublisher{}
    sweep := NewSweepService(store, clock.NewFixed(testNow), pub.publish, 48*time.Hour)
    ctx := context.Background()

    n, err := sweep.Run(ctx)
    require.NoError(t, err)
    assert.Equal(t, 1, n)

    cancelled, err := store.GetBooking(ctx, stale.ID)
    require.NoError(t, err)
    assert.Equal(t, model.BookingCancelled, cancelled.Status)
    assert.Equal(t, model.SeatAvailable, store.seatStatus("ev-1", "ML1"))
    assert.Equal(t, model.SeatAvailable, store.seatStatus("ev-1", "ML2"))

    kept, err := store.GetBooking(ctx, fresh.ID)
    require.NoError(t, err)
    assert.Equal(t, model.BookingPendingCash, kept.Status)
    assert.Equal(t, model.SeatReserved, store.seatStatus("ev-1", "MC1"))

    // Cash holds never held the counter, so nothing to restore there.
    ev, err := store.GetEvent(ctx, "ev-1")
    require.NoError(t, err)
    assert.Equal(t, ev.TotalSeats, ev.SeatsAvailable)
    assert.Equal(t, []string{queue.EventBookingCancelled}, pub.events)

    // A second pass finds nothing new.
    n, err = sweep.Run(ctx)
    require.NoError(t, err)
    assert.Equal(t, 0, n)
    assert.Len(t, pub.events, 1)
}

func TestSweep_ExactBoundaryExpires(t *testing.T) {
    store := newFakeStore(newTestEvent("ev-1"))
    b := reserveAt(t, store, testNow.Add(-48*time.Hour), "NL1")

    sweep := NewSweepService(store, clock.NewFixed(testNow), nil, 48*time.Hour)
    n, err := sweep.Run(context.Background())
    require.NoError(t, err)
    assert.Equal(t, 1, n)

    stored, err := store.GetBooking(context.Background(), b.ID)
    require.NoError(t, err)
    assert.Equal(t, model.BookingCancelled, stored.Status)
}

func TestSweep_SkipsConfirmedBookings(t *testing.T) {
    store := newFakeStore(newTestEvent("ev-1"))
    b := reserveAt(t, store, testNow.Add(-72*time.Hour), "OL1")

    bookings := NewBookingService(store, nil, clock.NewFixed(testNow), nil)
    require.NoError(t, bookings.ConfirmCashBooking(context.Background(), b.ID))

    sweep := NewSweepService(store, clock.NewFixed(testNow), nil, 48*time.Hour)
    n, err := sweep.Run(context.Background())
    require.NoError(t, err)
    assert.Equal(t, 0, n)
    assert.Equal(t, model.SeatBooked, store.seatStatus("ev-1", "OL1"))
}

func TestSweep_LeavesBookedSeatsAlone(t *testing.T) {
    // An expired booking whose seat was meanwhile booked by someone else
    // must not free that seat.  Simulate the race by flipping the seat
    // state under the hold.
    store := newFakeStore(newTestEvent("ev-1"))
    b := reserveAt(t, store, testNow.Add(-72*time.Hour), "PL1")

    store.mu.Lock()
    store.events["ev-1"].SeatingChart.FindSeat("PL1").Status = model.SeatBooked
    store.mu.Unlock()

    sweep := NewSweepService(store, clock.NewFixed(testNow), nil, 48*time.Hour)
    n, err := sweep.Run(context.Background())
    require.NoError(t, err)
    assert.Equal(t, 1, n)

    stored, err := store.GetBooking(context.Background(), b.ID)
    require.NoError(t, err)
    assert.Equal(t, model.BookingCancelled, stored.Status)
    assert.Equal(t, model.SeatBooked, store.seatStatus("ev-1", "PL1"))
}

func TestSweep_DefaultHoldWindow(t *testing.T) {
    sweep := NewSweepService(newFakeStore(), clock.NewFixed(testNow), nil, 0)
    assert.Equal(t, 48*time.Hour, sweep.holdWindow)
}
