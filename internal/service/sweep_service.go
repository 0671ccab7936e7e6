package service

import (
    "context"
    "errors"
    "log"
    "time"

    "github.com/alwasl/event-booking/internal/clock"
    "github.com/alwasl/event-booking/internal/model"
    "github.com/alwasl/event-booking/internal/queue"
    "github.com/alwasl/event-booking/internal/repository"
)

// SweepService releases seats held by cash bookings whose hold window
// lapsed without payment.  It is a best-effort batch job: each expired
// booking is handled independently, failures are logged and left for the
// next run, and re-running over already-cancelled bookings is a no-op
// because the query filters on pending_cash.
type SweepService struct {
    store      Store
    clock      clock.Clock
    publish    publishFunc
    holdWindow time.Duration
}

// NewSweepService wires the sweep.  holdWindow is how long a cash booking
// keeps its seats reserved; values <= 0 fall back to the 48-hour default.
func NewSweepService(store Store, clk clock.Clock, publish publishFunc, holdWindow time.Duration) *SweepService {
    if store == nil || clk == nil {
        panic("nil store or clock passed to NewSweepService")
    }
    if holdWindow <= 0 {
        holdWindow = 48 * time.Hour
    }
    return &SweepService{store: store, clock: clk, publish: publish, holdWindow: holdWindow}
}

// Run scans for expired cash holds and cancels them, returning how many
// bookings were cancelled.  Seat release is transactional per event so it
// cannot race a concurrent new reservation for the same seats; the
// booking-status update is a separate idempotent write.
func (s *SweepService) Run(ctx context.Context) (int, error) {
    cutoff := s.clock.Now().Add(-s.holdWindow)
    expired, err := s.store.ListExpiredCashBookings(ctx, cutoff)
    if err != nil {
        return 0, err
    }
    if len(expired) == 0 {
        return 0, nil
    }

    cancelled := 0
    for i := range expired {
        b := &expired[i]
        if err := s.expireOne(ctx, b); err != nil {
            log.Printf("sweep: failed to clean up booking %s: %v", b.ID, err)
            continue
        }
        cancelled++
    }
    log.Printf("sweep: cancelled %d of %d expired bookings", cancelled, len(expired))
    return cancelled, nil
}

// expireOne releases one booking's seats and marks it cancelled.  A
// missing event means there is nothing left to release; the booking is
// still cancelled so it stops matching the sweep query.
func (s *SweepService) expireOne(ctx context.Context, b *model.Booking) error {
    err := s.store.WithTx(ctx, func(txCtx context.Context) error {
        ev, err := s.store.GetEventForUpdate(txCtx, b.EventID)
        if errors.Is(err, repository.ErrEventNotFound) {
            return nil
        }
        if err != nil {
            return err
        }
        // Only seats still reserved revert; anything a confirmation race
        // already booked stays booked.
        ev.SeatingChart = model.ReleaseSeats(ev.SeatingChart, b.Seats, model.SeatReserved)
        return s.store.UpdateEventChart(txCtx, ev)
    })
    if err != nil {
        return err
    }

    changed, err := s.store.UpdateBookingStatusFrom(ctx, b.ID, model.BookingPendingCash, model.BookingCancelled)
    if err != nil {
        return err
    }
    if changed {
        b.Status = model.BookingCancelled
        s.publishEvent(ctx, b)
    }
    return nil
}

func (s *SweepService) publishEvent(ctx context.Context, b *model.Booking) {
    if s.publish == nil {
        return
    }
    ev := queue.BookingEvent{
        Type:       queue.EventBookingCancelled,
        BookingID:  b.ID,
        EventID:    b.EventID,
        UserID:     b.UserID,
        Seats:      b.Seats,
        Amount:     b.Amount,
        Status:     string(b.Status),
        OccurredAt: s.clock.Now().Format(timeLayout),
    }
    if err := s.publish(ctx, ev); err != nil {
        log.Printf("sweep: publish cancel for booking %s failed: %v", b.ID, err)
    }
}
