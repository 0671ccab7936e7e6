package service

import (
    "context"
    "errors"
    "log"

    "github.com/alwasl/event-booking/internal/clock"
    "github.com/alwasl/event-booking/internal/model"
    "github.com/alwasl/event-booking/internal/queue"
    "github.com/alwasl/event-booking/internal/repository"
)

// BookingService drives the booking lifecycle after a reservation exists:
// admin cash confirmation and gateway payment verification.  Every
// transition is idempotent against repeated invocation so at-least-once
// delivery of confirmation calls is harmless.
type BookingService struct {
    store   Store
    gateway PaymentGateway
    clock   clock.Clock
    publish publishFunc
}

// NewBookingService wires the lifecycle service.  gateway may be nil when
// online payments are disabled; publish may be nil to disable broker
// events.
func NewBookingService(store Store, gateway PaymentGateway, clk clock.Clock, publish publishFunc) *BookingService {
    if store == nil || clk == nil {
        panic("nil store or clock passed to NewBookingService")
    }
    return &BookingService{store: store, gateway: gateway, clock: clk, publish: publish}
}

// ConfirmCashBooking moves a pending_cash booking to confirmed: the
// booking's seats flip from reserved to booked and the event's
// seats_available counter drops by the seat count, floored at zero.  Both
// writes share one transaction with the booking-status update.
// Re-confirming an already confirmed booking is a no-op success.
func (s *BookingService) ConfirmCashBooking(ctx context.Context, bookingID string) error {
    var confirmed *model.Booking
    err := s.store.WithTx(ctx, func(txCtx context.Context) error {
        b, err := s.store.GetBooking(txCtx, bookingID)
        if err != nil {
            return err
        }
        if b.Status == model.BookingConfirmed {
            return nil // already confirmed, idempotent
        }
        if b.Status != model.BookingPendingCash {
            return &model.InvalidStateError{Expected: model.BookingPendingCash, Actual: b.Status}
        }
        if err := s.confirmSeatsTx(txCtx, b); err != nil {
            return err
        }
        if _, err := s.store.UpdateBookingStatusFrom(txCtx, b.ID, model.BookingPendingCash, model.BookingConfirmed); err != nil {
            return err
        }
        b.Status = model.BookingConfirmed
        confirmed = b
        return nil
    })
    if err != nil {
        return err
    }
    if confirmed != nil {
        s.publishEvent(ctx, queue.EventBookingConfirmed, confirmed)
    }
    return nil
}

// VerifyResult is what the payment callback reports back to the client:
// whether the charge captured, with a user-facing message.
type VerifyResult struct {
    Success bool
    Message string
}

// VerifyOnlinePayment asks the gateway for the charge and drives the
// booking accordingly.  A captured charge confirms the booking exactly
// like a cash confirmation; anything else marks the booking failed and
// releases its seats back to available, so a failed payment never
// strands a reservation until the cash sweep would have caught it.
// Repeating the call after either outcome just reports that outcome.
func (s *BookingService) VerifyOnlinePayment(ctx context.Context, chargeID, bookingID string) (*VerifyResult, error) {
    b, err := s.store.GetBooking(ctx, bookingID)
    if err != nil {
        return nil, err
    }
    switch b.Status {
    case model.BookingConfirmed:
        return &VerifyResult{Success: true, Message: "Payment verified and booking confirmed."}, nil
    case model.BookingFailed:
        return &VerifyResult{Success: false, Message: "Payment was not successful."}, nil
    case model.BookingPendingPayment:
        // fall through to verification
    default:
        return nil, &model.InvalidStateError{Expected: model.BookingPendingPayment, Actual: b.Status}
    }

    charge, err := s.gateway.GetCharge(ctx, chargeID)
    if err != nil {
        return nil, err
    }

    if !charge.Captured {
        if err := s.failPayment(ctx, b); err != nil {
            return nil, err
        }
        return &VerifyResult{Success: false, Message: "Payment was not successful."}, nil
    }

    var confirmed *model.Booking
    err = s.store.WithTx(ctx, func(txCtx context.Context) error {
        // Re-read under the transaction; a concurrent verify may have won.
        fresh, err := s.store.GetBooking(txCtx, bookingID)
        if err != nil {
            return err
        }
        if fresh.Status != model.BookingPendingPayment {
            return nil
        }
        if err := s.confirmSeatsTx(txCtx, fresh); err != nil {
            return err
        }
        if err := s.store.SetBookingGatewayCharge(txCtx, fresh.ID, charge.ID); err != nil {
            return err
        }
        if _, err := s.store.UpdateBookingStatusFrom(txCtx, fresh.ID, model.BookingPendingPayment, model.BookingConfirmed); err != nil {
            return err
        }
        fresh.Status = model.BookingConfirmed
        fresh.GatewayChargeID = charge.ID
        confirmed = fresh
        return nil
    })
    if err != nil {
        return nil, err
    }
    if confirmed != nil {
        s.publishEvent(ctx, queue.EventBookingConfirmed, confirmed)
    }
    return &VerifyResult{Success: true, Message: "Payment verified and booking confirmed."}, nil
}

// confirmSeatsTx promotes a booking's reserved seats to booked and
// decrements the availability counter.  Seats that already moved on are
// untouched, so a second confirmation neither flips extra seats nor
// double-decrements the counter (the caller guards on booking status).
func (s *BookingService) confirmSeatsTx(txCtx context.Context, b *model.Booking) error {
    ev, err := s.store.GetEventForUpdate(txCtx, b.EventID)
    if err != nil {
        return err
    }
    ev.SeatingChart = model.ConfirmSeats(ev.SeatingChart, b.Seats)
    ev.SeatsAvailable -= len(b.Seats)
    if ev.SeatsAvailable < 0 {
        ev.SeatsAvailable = 0
    }
    return s.store.UpdateEventChart(txCtx, ev)
}

// failPayment releases a pending_payment booking's seats and marks it
// failed.  If the event has been deleted there is nothing to release and
// the booking is still failed.
func (s *BookingService) failPayment(ctx context.Context, b *model.Booking) error {
    return s.store.WithTx(ctx, func(txCtx context.Context) error {
        ev, err := s.store.GetEventForUpdate(txCtx, b.EventID)
        switch {
        case errors.Is(err, repository.ErrEventNotFound):
            // nothing to release
        case err != nil:
            return err
        default:
            ev.SeatingChart = model.ReleaseSeats(ev.SeatingChart, b.Seats, model.SeatReserved)
            if err := s.store.UpdateEventChart(txCtx, ev); err != nil {
                return err
            }
        }
        _, err = s.store.UpdateBookingStatusFrom(txCtx, b.ID, model.BookingPendingPayment, model.BookingFailed)
        return err
    })
}

func (s *BookingService) publishEvent(ctx context.Context, typ string, b *model.Booking) {
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
        log.Printf("booking: publish %s for booking %s failed: %v", typ, b.ID, err)
    }
}
