package repository

import (
    "context"
    "time"

    "github.com/alwasl/event-booking/internal/model"
)

// Flat delegates so that *Store satisfies the narrow store interface the
// service layer declares.  Services never touch the individual repos;
// everything they need goes through these methods and WithTx.

func (s *Store) GetEvent(ctx context.Context, id string) (*model.Event, error) {
    return s.Events.GetByID(ctx, id)
}

func (s *Store) GetEventForUpdate(ctx context.Context, id string) (*model.Event, error) {
    return s.Events.GetForUpdate(ctx, id)
}

func (s *Store) UpdateEventChart(ctx context.Context, ev *model.Event) error {
    return s.Events.UpdateChart(ctx, ev)
}

func (s *Store) ListEvents(ctx context.Context) ([]model.Event, error) {
    return s.Events.List(ctx)
}

func (s *Store) CreateBooking(ctx context.Context, b *model.Booking) error {
    return s.Bookings.Create(ctx, b)
}

func (s *Store) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
    return s.Bookings.GetByID(ctx, id)
}

func (s *Store) UpdateBookingStatusFrom(ctx context.Context, id string, from, to model.BookingStatus) (bool, error) {
    return s.Bookings.UpdateStatusFrom(ctx, id, from, to)
}

func (s *Store) SetBookingGatewayCharge(ctx context.Context, id, chargeID string) error {
    return s.Bookings.SetGatewayCharge(ctx, id, chargeID)
}

func (s *Store) ListExpiredCashBookings(ctx context.Context, cutoff time.Time) ([]model.Booking, error) {
    return s.Bookings.ListExpiredCash(ctx, cutoff)
}

func (s *Store) ListBookingsByUser(ctx context.Context, userID string) ([]model.Booking, error) {
    return s.Bookings.ListByUser(ctx, userID)
}

func (s *Store) ListAllBookings(ctx context.Context) ([]model.Booking, error) {
    return s.Bookings.ListAll(ctx)
}
