package service

import (
    "context"
    "log"
    "math"

    "github.com/google/uuid"

    "github.com/alwasl/event-booking/internal/clock"
    "github.com/alwasl/event-booking/internal/model"
    "github.com/alwasl/event-booking/internal/queue"
)

// ReservationService owns the seat-reservation transaction: it takes a
// user's selected seat IDs, validates them against the event's live chart
// and atomically flips them to reserved while creating the booking
// record.  Two concurrent requests for overlapping seats serialize at the
// store; exactly one wins and the other surfaces the losing seat's ID.
type ReservationService struct {
    store   Store
    gateway PaymentGateway
    clock   clock.Clock
    publish publishFunc

    callbackURL string
    currency    string
}

// NewReservationService wires the engine.  gateway may be nil when online
// payments are disabled; publish may be nil to disable broker events.
func NewReservationService(store Store, gateway PaymentGateway, clk clock.Clock, publish publishFunc, callbackURL, currency string) *ReservationService {
    if store == nil || clk == nil {
        panic("nil store or clock passed to NewReservationService")
    }
    return &ReservationService{
        store:       store,
        gateway:     gateway,
        clock:       clk,
        publish:     publish,
        callbackURL: callbackURL,
        currency:    currency,
    }
}

// ReserveSeatsInput carries one reservation request.  Amount is the total
// the client displayed to the user; it is verified against the event's
// price, never trusted.
type ReserveSeatsInput struct {
    EventID       string
    UserID        string
    SeatIDs       []string
    Amount        float64
    PaymentMethod model.PaymentMethod
}

// ReserveSeats performs the atomic check-and-reserve.  On success the
// event's chart shows every requested seat as reserved and a booking in
// the matching pending state exists; on any failure nothing is persisted
// and the error names the first offending seat.  Conflicting concurrent
// writes are retried by the store; when retries run out the caller gets
// ErrContention.
func (s *ReservationService) ReserveSeats(ctx context.Context, in ReserveSeatsInput) (*model.Booking, error) {
    seatIDs := dedupeSeatIDs(in.SeatIDs)
    if len(seatIDs) == 0 {
        return nil, ErrNoSeatsRequested
    }

    status := model.BookingPendingCash
    if in.PaymentMethod == model.PayGateway {
        status = model.BookingPendingPayment
    }

    booking := &model.Booking{
        ID:            uuid.NewString(),
        EventID:       in.EventID,
        UserID:        in.UserID,
        Seats:         seatIDs,
        Status:        status,
        PaymentMethod: in.PaymentMethod,
        CreatedAt:     s.clock.Now(),
    }

    err := s.store.WithTx(ctx, func(txCtx context.Context) error {
        ev, err := s.store.GetEventForUpdate(txCtx, in.EventID)
        if err != nil {
            return err
        }

        // The client's total is recomputed from the event's price; a
        // mismatch means a stale or tampered page.
        expected := ev.Price * float64(len(seatIDs))
        if math.Abs(in.Amount-expected) > 0.001 {
            return ErrAmountMismatch
        }
        booking.Amount = expected

        chart, err := model.ValidateAndReserve(ev.SeatingChart, seatIDs)
        if err != nil {
            return err
        }
        ev.SeatingChart = chart

        if err := s.store.UpdateEventChart(txCtx, ev); err != nil {
            return err
        }
        return s.store.CreateBooking(txCtx, booking)
    })
    if err != nil {
        return nil, err
    }

    s.publishEvent(ctx, queue.EventBookingCreated, booking)
    return booking, nil
}

// PaymentIntent is the result of starting an online payment: the booking
// holding the seats and the gateway URL the user must be redirected to.
type PaymentIntent struct {
    Booking    *model.Booking
    PaymentURL string
}

// CreateOnlinePaymentIntent reserves the seats with a pending_payment
// booking, then asks the gateway for a charge whose redirect brings the
// user back to the verification callback.  If the gateway refuses the
// charge the reservation is rolled back: seats return to available and
// the booking is marked failed, so a gateway outage never strands seats.
func (s *ReservationService) CreateOnlinePaymentIntent(ctx context.Context, in ReserveSeatsInput) (*PaymentIntent, error) {
    in.PaymentMethod = model.PayGateway
    booking, err := s.ReserveSeats(ctx, in)
    if err != nil {
        return nil, err
    }

    charge, err := s.gateway.CreateCharge(ctx, ChargeRequest{
        Amount:      booking.Amount,
        Currency:    s.currency,
        Description: "Event booking " + booking.ID,
        BookingID:   booking.ID,
        RedirectURL: s.callbackURL + "?booking_id=" + booking.ID,
    })
    if err != nil {
        s.abandonReservation(ctx, booking)
        return nil, err
    }

    if err := s.store.SetBookingGatewayCharge(ctx, booking.ID, charge.ID); err != nil {
        return nil, err
    }
    booking.GatewayChargeID = charge.ID
    return &PaymentIntent{Booking: booking, PaymentURL: charge.PaymentURL}, nil
}

// abandonReservation releases a fresh reservation whose charge could not
// be created.  Best-effort: if the release itself fails the expiry sweep
// will not pick the booking up (it only watches pending_cash), so the
// failure is logged loudly.
func (s *ReservationService) abandonReservation(ctx context.Context, b *model.Booking) {
    err := s.store.WithTx(ctx, func(txCtx context.Context) error {
        ev, err := s.store.GetEventForUpdate(txCtx, b.EventID)
        if err != nil {
            return err
        }
        ev.SeatingChart = model.ReleaseSeats(ev.SeatingChart, b.Seats, model.SeatReserved)
        if err := s.store.UpdateEventChart(txCtx, ev); err != nil {
            return err
        }
        _, err = s.store.UpdateBookingStatusFrom(txCtx, b.ID, model.BookingPendingPayment, model.BookingFailed)
        return err
    })
    if err != nil {
        log.Printf("reservation: failed to release seats for abandoned booking %s: %v", b.ID, err)
    }
}

func (s *ReservationService) publishEvent(ctx context.Context, typ string, b *model.Booking) {
    if s.publish == nil {
        return
    }
    ev := queue.BookingEvent{
        Type:       typ,
        BookingID:  b.ID,
        EventID:    b.EventID,
        UserID:     b.UserID,
        Seats:      b.Seats,
        Amount:     b.Amount,
        Status:     string(b.Status),
        OccurredAt: s.clock.Now().Format(timeLayout),
    }
    if err := s.publish(ctx, ev); err != nil {
        log.Printf("reservation: publish %s for booking %s failed: %v", typ, b.ID, err)
    }
}

// dedupeSeatIDs drops empty and repeated IDs while keeping the caller's
// order, so a duplicated selection does not fail as "unavailable" against
// its own first occurrence.
func dedupeSeatIDs(ids []string) []string {
    out := make([]string, 0, len(ids))
    seen := make(map[string]struct{}, len(ids))
    for _, id := range ids {
        if id == "" {
            continue
        }
        if _, ok := seen[id]; ok {
            continue
        }
        seen[id] = struct{}{}
        out = append(out, id)
    }
    return out
}
