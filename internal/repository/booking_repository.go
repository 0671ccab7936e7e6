package repository

import (
    "context"
    "database/sql"
    "encoding/json"
    "time"

    "github.com/alwasl/event-booking/internal/model"
)

// BookingRepo provides data access to the bookings table.  A booking's
// seat list is copied into the row as JSON at creation time and never
// modified afterwards; only the status and the gateway charge reference
// change over a booking's life.  All timestamps are UTC.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, event_id, user_id, seats, amount, status,
        payment_method, gateway_charge_id, created_at`

// Create inserts a new booking.  It is normally called inside the same
// transaction that reserved the booking's seats, so either both the chart
// update and the booking land or neither does.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
    seats, err := json.Marshal(b.Seats)
    if err != nil {
        return err
    }
    const q = `INSERT INTO bookings
        (id, event_id, user_id, seats, amount, status, payment_method, gateway_charge_id, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
    charge := sql.NullString{String: b.GatewayChargeID, Valid: b.GatewayChargeID != ""}
    _, err = exec(ctx, r.db).ExecContext(ctx, q,
        b.ID, b.EventID, b.UserID, seats, b.Amount,
        string(b.Status), string(b.PaymentMethod), charge, b.CreatedAt.UTC())
    return err
}

// GetByID loads a booking, returning ErrBookingNotFound when absent.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (*model.Booking, error) {
    q := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    if txFromContext(ctx) != nil {
        q += ` FOR UPDATE`
    }
    b, err := scanBooking(exec(ctx, r.db).QueryRowContext(ctx, q, id))
    if err == sql.ErrNoRows {
        return nil, ErrBookingNotFound
    }
    return b, err
}

// UpdateStatusFrom transitions a booking's status only when it currently
// holds the expected value, and reports whether the transition happened.
// A false return with a nil error means some other actor moved the
// booking first; callers treat that as the idempotent no-op it is.
func (r *BookingRepo) UpdateStatusFrom(ctx context.Context, id string, from, to model.BookingStatus) (bool, error) {
    const q = `UPDATE bookings SET status = ? WHERE id = ? AND status = ?`
    res, err := exec(ctx, r.db).ExecContext(ctx, q, string(to), id, string(from))
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    return n > 0, err
}

// SetGatewayCharge records the payment gateway's charge reference on a
// booking once the charge has been created.
func (r *BookingRepo) SetGatewayCharge(ctx context.Context, id, chargeID string) error {
    const q = `UPDATE bookings SET gateway_charge_id = ? WHERE id = ?`
    _, err := exec(ctx, r.db).ExecContext(ctx, q, chargeID, id)
    return err
}

// ListExpiredCash returns bookings still pending cash payment whose hold
// window lapsed at or before the cutoff.  The expiry sweep consumes this;
// because the filter is on status, re-running the sweep over bookings it
// already cancelled is naturally a no-op.
func (r *BookingRepo) ListExpiredCash(ctx context.Context, cutoff time.Time) ([]model.Booking, error) {
    const q = `SELECT ` + bookingColumns + ` FROM bookings
        WHERE status = ? AND created_at <= ?
        ORDER BY created_at`
    return r.list(ctx, q, string(model.BookingPendingCash), cutoff.UTC())
}

// ListByUser returns a user's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
    const q = `SELECT ` + bookingColumns + ` FROM bookings
        WHERE user_id = ? ORDER BY created_at DESC`
    return r.list(ctx, q, userID)
}

// ListAll returns every booking, newest first, for the admin panel.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
    const q = `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`
    return r.list(ctx, q)
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
    rows, err := exec(ctx, r.db).QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Booking, 0)
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, *b)
    }
    return out, rows.Err()
}

func scanBooking(s rowScanner) (*model.Booking, error) {
    var b model.Booking
    var seats []byte
    var charge sql.NullString
    if err := s.Scan(
        &b.ID, &b.EventID, &b.UserID, &seats, &b.Amount,
        &b.Status, &b.PaymentMethod, &charge, &b.CreatedAt,
    ); err != nil {
        return nil, err
    }
    if charge.Valid {
        b.GatewayChargeID = charge.String
    }
    if err := json.Unmarshal(seats, &b.Seats); err != nil {
        return nil, err
    }
    return &b, nil
}
