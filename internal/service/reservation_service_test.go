package service

import (
    "context"
    "errors"
    "sync"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/alwasl/event-booking/internal/clock"
    "github.com/alwasl/event-booking/internal/model"
    "github.com/alwasl/event-booking/internal/queue"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestEvent(id string) *model.Event {
    chart := model.GenerateChart(model.VenueGirlsTheater)
    return &model.Event{
        ID:             id,
        Name:           "Test Event",
        Date:           "2025-04-01",
        Time:           "19:00",
        Venue:          model.VenueGirlsTheater,
        Price:          5,
        TotalSeats:     chart.CountSeats(),
        SeatsAvailable: chart.CountAvailable(),
        SeatingChart:   chart,
        CreatedAt:      testNow,
    }
}

func newReservationService(store Store, gw PaymentGateway, pub publishFunc) *ReservationService {
    return NewReservationService(store, gw, clock.NewFixed(testNow), pub, "https://example.test/verify", "KWD")
}

func TestReserveSeats_Cash(t *testing.T) {
    store := newFakeStore(newTestEvent("ev-1"))
    pub := &capturePublisher{}
    svc := newReservationService(store, nil, pub.publish)

    b, err := svc.ReserveSeats(context.Background(), ReserveSeatsInput{
        EventID:       "ev-1",
        UserID:        "user-1",
        SeatIDs:       []string{"BL1", "BC2"},
        Amount:        10,
        PaymentMethod: model.PayCash,
    })
    require.NoError(t, err)
    require.NotNil(t, b)

    assert.NotEmpty(t, b.ID)
    assert.Equal(t, model.BookingPendingCash, b.Status)
    assert.Equal(t, model.PayCash, b.PaymentMethod)
    assert.Equal(t, 10.0, b.Amount)
    assert.Equal(t, testNow, b.CreatedAt)
    assert.Equal(t, model.SeatReserved, store.seatStatus("ev-1", "BL1"))
    assert.Equal(t, model.SeatReserved, store.seatStatus("ev-1", "BC2"))
    assert.Equal(t, []string{queue.EventBookingCreated}, pub.events)

    // A pending cash hold must not touch the availability counter.
    ev, err := store.GetEvent(context.Background(), "ev-1")
    require.NoError(t, err)
    assert.Equal(t, ev.TotalSeats, ev.SeatsAvailable)
}

func TestReserveSeats_AmountMismatch(t *testing.T) {
    store := newFakeStore(newTestEvent("ev-1"))
    svc := newReservationService(store, nil, nil)

    _, err := svc.ReserveSeats(context.Background(), ReserveSeatsInput{
        EventID:       "ev-1",
        UserID:        "user-1",
        SeatIDs:       []string{"BL1"},
        Amount:        4, // price is 5
        PaymentMethod: model.PayCash,
    })
    require.ErrorIs(t, err, ErrAmountMismatch)
    assert.Equal(t, model.SeatAvailable, store.seatStatus("ev-1", "BL1"))
}

func TestReserveSeats_AllOrNothing(t *testing.T) {
    store := newFakeStore(newTestEvent("ev-1"))
    svc := newReservationService(store, nil, nil)
    ctx := context.Background()

    _, err := svc.ReserveSeats(ctx, ReserveSeatsInput{
        EventID: "ev-1", UserID: "user-1",
        SeatIDs: []string{"CC1"}, Amount: 5, PaymentMethod: model.PayCash,
    })
    require.NoError(t, err)

    // Second request wants a free seat plus the taken one; neither may
    // be granted.
    _, err = svc.ReserveSeats(ctx, ReserveSeatsInput{
        EventID: "ev-1", UserID: "user-2",
        SeatIDs: []string{"CC2", "CC1"}, Amount: 10, PaymentMethod: model.PayCash,
    })
    var seatErr *model.SeatError
    require.ErrorAs(t, err, &seatErr)
    assert.Equal(t, "CC1", seatErr.SeatID)
    assert.ErrorIs(t, err, model.ErrSeatUnavailable)
    assert.Equal(t, model.SeatAvailable, store.seatStatus("ev-1", "CC2"))
}

func TestReserveSeats_RejectsNonSeats(t *testing.T) {
    store := newFakeStore(newTestEvent("ev-1"))
    svc := newReservationService(store, nil, nil)
    ctx := context.Background()

    t.Run("unknown seat", func(t *testing.T) {
        _, err := svc.ReserveSeats(ctx, ReserveSeatsInput{
            EventID: "ev-1", UserID: "u", SeatIDs: []string{"ZZ9"}, Amount: 5, PaymentMethod: model.PayCash,
        })
        assert.ErrorIs(t, err, model.ErrSeatNotFound)
    })
    t.Run("aisle cell", func(t *testing.T) {
        _, err := svc.ReserveSeats(ctx, ReserveSeatsInput{
            EventID: "ev-1", UserID: "u", SeatIDs: []string{"BA1"}, Amount: 5, PaymentMethod: model.PayCash,
        })
        assert.ErrorIs(t, err, model.ErrSeatNotReservable)
    })
    t.Run("row A filler", func(t *testing.T) {
        _, err := svc.ReserveSeats(ctx, ReserveSeatsInput{
            EventID: "ev-1", UserID: "u", SeatIDs: []string{"AC_aisle_1"}, Amount: 5, PaymentMethod: model.PayCash,
        })
        assert.ErrorIs(t, err, model.ErrSeatNotReservable)
    })
    t.Run("no seats", func(t *testing.T) {
        _, err := svc.ReserveSeats(ctx, ReserveSeatsInput{
            EventID: "ev-1", UserID: "u", SeatIDs: []string{"", ""}, Amount: 0, PaymentMethod: model.PayCash,
        })
        assert.ErrorIs(t, err, ErrNoSeatsRequested)
    })
}

func TestReserveSeats_DeduplicatesSelection(t *testing.T) {
    store := newFakeStore(newTestEvent("ev-1"))
    svc := newReservationService(store, nil, nil)

    // The duplicate must not fail against its own first occurrence, and
    // the amount is checked against the deduplicated count.
    b, err := svc.ReserveSeats(context.Background(), ReserveSeatsInput{
        EventID: "ev-1", UserID: "u",
        SeatIDs: []string{"DL1", "DL1", "DL2"}, Amount: 10, PaymentMethod: model.PayCash,
    })
    require.NoError(t, err)
    assert.Equal(t, []string{"DL1", "DL2"}, b.Seats)
    assert.Equal(t, 10.0, b.Amount)
}

func TestReserveSeats_ConcurrentOverlap(t *testing.T) {
    store := newFakeStore(newTestEvent("ev-1"))
    svc := newReservationService(store, nil, nil)

    // Everyone races for the same two seats; exactly one buyer may win.
    const buyers = 16
    var wg sync.WaitGroup
    errs := make([]error, buyers)
    for i := 0; i < buyers; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            _, errs[i] = svc.ReserveSeats(context.Background(), ReserveSeatsInput{
                EventID: "ev-1", UserID: "u",
                SeatIDs: []string{"EC1", "EC2"}, Amount: 10, PaymentMethod: model.PayCash,
            })
        }(i)
    }
    wg.Wait()

    wins := 0
    for _, err := range errs {
        if err == nil {
            wins++
            continue
        }
        var seatErr *model.SeatError
        require.ErrorAs(t, err, &seatErr)
    }
    assert.Equal(t, 1, wins)
    assert.Equal(t, model.SeatReserved, store.seatStatus("ev-1", "EC1"))
    assert.Equal(t, model.SeatReserved, store.seatStatus("ev-1", "EC2"))
}

func TestCreateOnlinePaymentIntent(t *testing.T) {
    store := newFakeStore(newTestEvent("ev-1"))
    gw := &fakeGateway{createCharge: &Charge{ID: "chg_1", Status: "INITIATED", PaymentURL: "https://pay.example/chg_1"}}
    svc := newReservationService(store, gw, nil)

    intent, err := svc.CreateOnlinePaymentIntent(context.Background(), ReserveSeatsInput{
        EventID: "ev-1", UserID: "user-1",
        SeatIDs: []string{"FC1"}, Amount: 5,
    })
    require.NoError(t, err)

    assert.Equal(t, "https://pay.example/chg_1", intent.PaymentURL)
    assert.Equal(t, model.BookingPendingPayment, intent.Booking.Status)
    assert.Equal(t, "chg_1", intent.Booking.GatewayChargeID)
    assert.Equal(t, model.SeatReserved, store.seatStatus("ev-1", "FC1"))

    require.Len(t, gw.createCalls, 1)
    req := gw.createCalls[0]
    assert.Equal(t, 5.0, req.Amount)
    assert.Equal(t, "KWD", req.Currency)
    assert.Equal(t, intent.Booking.ID, req.BookingID)
    assert.Equal(t, "https://example.test/verify?booking_id="+intent.Booking.ID, req.RedirectURL)

    stored, err := store.GetBooking(context.Background(), intent.Booking.ID)
    require.NoError(t, err)
    assert.Equal(t, "chg_1", stored.GatewayChargeID)
}

func TestCreateOnlinePaymentIntent_GatewayFailureReleasesSeats(t *testing.T) {
    store := newFakeStore(newTestEvent("ev-1"))
    gw := &fakeGateway{createErr: errors.New("gateway down")}
    svc := newReservationService(store, gw, nil)

    _, err := svc.CreateOnlinePaymentIntent(context.Background(), ReserveSeatsInput{
        EventID: "ev-1", UserID: "user-1",
        SeatIDs: []string{"GC1", "GC2"}, Amount: 10,
    })
    require.Error(t, err)

    // The failed intent must not strand the seats or leave the booking
    // pending.
    assert.Equal(t, model.SeatAvailable, store.seatStatus("ev-1", "GC1"))
    assert.Equal(t, model.SeatAvailable, store.seatStatus("ev-1", "GC2"))
    for _, b := range store.bookings {
        assert.Equal(t, model.BookingFailed, b.Status)
    }
}
