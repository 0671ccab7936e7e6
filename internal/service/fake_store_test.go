package service

// In-memory Store used by the service tests.  It mirrors the MySQL
// store's observable behavior: transactional closures roll back on error,
// chart writes are version-checked, reads hand out copies so nothing
// leaks shared state, and a single mutex serializes transactions the way
// row locks do.

import (
    "context"
    "sync"
    "time"

    "github.com/alwasl/event-booking/internal/model"
    "github.com/alwasl/event-booking/internal/queue"
    "github.com/alwasl/event-booking/internal/repository"
)

type fakeTxKey struct{}

type fakeStore struct {
    mu       sync.Mutex
    events   map[string]*model.Event
    bookings map[string]*model.Booking
}

func newFakeStore(events ...*model.Event) *fakeStore {
    f := &fakeStore{
        events:   make(map[string]*model.Event),
        bookings: make(map[string]*model.Booking),
    }
    for _, ev := range events {
        f.events[ev.ID] = copyEvent(ev)
    }
    return f
}

// lock takes the store mutex unless the context already runs inside a
// transaction, which holds it for its whole duration.
func (f *fakeStore) lock(ctx context.Context) func() {
    if ctx.Value(fakeTxKey{}) != nil {
        return func() {}
    }
    f.mu.Lock()
    return f.mu.Unlock
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
    if ctx.Value(fakeTxKey{}) != nil {
        return fn(ctx)
    }
    f.mu.Lock()
    defer f.mu.Unlock()

    evSnap := make(map[string]*model.Event, len(f.events))
    for id, ev := range f.events {
        evSnap[id] = copyEvent(ev)
    }
    bkSnap := make(map[string]*model.Booking, len(f.bookings))
    for id, b := range f.bookings {
        bkSnap[id] = copyBooking(b)
    }

    if err := fn(context.WithValue(ctx, fakeTxKey{}, struct{}{})); err != nil {
        f.events = evSnap
        f.bookings = bkSnap
        return err
    }
    return nil
}

func (f *fakeStore) GetEvent(ctx context.Context, id string) (*model.Event, error) {
    defer f.lock(ctx)()
    ev, ok := f.events[id]
    if !ok {
        return nil, repository.ErrEventNotFound
    }
    return copyEvent(ev), nil
}

func (f *fakeStore) GetEventForUpdate(ctx context.Context, id string) (*model.Event, error) {
    return f.GetEvent(ctx, id)
}

func (f *fakeStore) UpdateEventChart(ctx context.Context, ev *model.Event) error {
    defer f.lock(ctx)()
    cur, ok := f.events[ev.ID]
    if !ok {
        return repository.ErrEventNotFound
    }
    if cur.Version != ev.Version {
        return repository.ErrVersionConflict
    }
    next := copyEvent(ev)
    next.Version++
    f.events[ev.ID] = next
    ev.Version++
    return nil
}

func (f *fakeStore) CreateBooking(ctx context.Context, b *model.Booking) error {
    defer f.lock(ctx)()
    f.bookings[b.ID] = copyBooking(b)
    return nil
}

func (f *fakeStore) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
    defer f.lock(ctx)()
    b, ok := f.bookings[id]
    if !ok {
        return nil, repository.ErrBookingNotFound
    }
    return copyBooking(b), nil
}

func (f *fakeStore) UpdateBookingStatusFrom(ctx context.Context, id string, from, to model.BookingStatus) (bool, error) {
    defer f.lock(ctx)()
    b, ok := f.bookings[id]
    if !ok || b.Status != from {
        return false, nil
    }
    b.Status = to
    return true, nil
}

func (f *fakeStore) SetBookingGatewayCharge(ctx context.Context, id, chargeID string) error {
    defer f.lock(ctx)()
    b, ok := f.bookings[id]
    if !ok {
        return repository.ErrBookingNotFound
    }
    b.GatewayChargeID = chargeID
    return nil
}

func (f *fakeStore) ListExpiredCashBookings(ctx context.Context, cutoff time.Time) ([]model.Booking, error) {
    defer f.lock(ctx)()
    var out []model.Booking
    for _, b := range f.bookings {
        if b.Status == model.BookingPendingCash && !b.CreatedAt.After(cutoff) {
            out = append(out, *copyBooking(b))
        }
    }
    return out, nil
}

// seatStatus reads a seat's current status straight from the stored chart.
func (f *fakeStore) seatStatus(eventID, seatID string) model.SeatStatus {
    f.mu.Lock()
    defer f.mu.Unlock()
    seat := f.events[eventID].SeatingChart.FindSeat(seatID)
    if seat == nil {
        return ""
    }
    return seat.Status
}

func copyEvent(ev *model.Event) *model.Event {
    out := *ev
    out.SeatingChart = ev.SeatingChart.Clone()
    return &out
}

func copyBooking(b *model.Booking) *model.Booking {
    out := *b
    out.Seats = append([]string(nil), b.Seats...)
    return &out
}

// fakeGateway returns scripted charges.
type fakeGateway struct {
    createCharge *Charge
    createErr    error
    getCharge    *Charge
    getErr       error

    mu          sync.Mutex
    createCalls []ChargeRequest
    getCalls    []string
}

func (g *fakeGateway) CreateCharge(_ context.Context, req ChargeRequest) (*Charge, error) {
    g.mu.Lock()
    g.createCalls = append(g.createCalls, req)
    g.mu.Unlock()
    if g.createErr != nil {
        return nil, g.createErr
    }
    return g.createCharge, nil
}

func (g *fakeGateway) GetCharge(_ context.Context, chargeID string) (*Charge, error) {
    g.mu.Lock()
    g.getCalls = append(g.getCalls, chargeID)
    g.mu.Unlock()
    if g.getErr != nil {
        return nil, g.getErr
    }
    return g.getCharge, nil
}

// capturePublisher records broker events handed to the services.
type capturePublisher struct {
    mu     sync.Mutex
    events []string
}

func (p *capturePublisher) publish(_ context.Context, ev queue.BookingEvent) error {
    p.mu.Lock()
    defer p.mu.Unlock()
    p.events = append(p.events, ev.Type)
    return nil
}
