package repository

import (
    "context"
    "database/sql"
    "encoding/json"
    "time"

    "github.com/alwasl/event-booking/internal/model"
)

// EventRepo provides data access to the events table.  The seating chart
// is stored as a single JSON document on the event row, mirroring the
// embedded-chart layout of the source data, so a chart write is one
// UPDATE guarded by the row's version stamp.  All timestamps are UTC.
type EventRepo struct {
    db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

const eventColumns = `id, name, event_date, event_time, description, long_description,
        image, venue, price, total_seats, seats_available, seating_chart, version, created_at`

// Create inserts a new event.  The caller supplies a freshly generated
// chart; TotalSeats and SeatsAvailable should already reflect it.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event) error {
    chart, err := json.Marshal(ev.SeatingChart)
    if err != nil {
        return err
    }
    const q = `INSERT INTO events
        (id, name, event_date, event_time, description, long_description,
         image, venue, price, total_seats, seats_available, seating_chart, version, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)`
    _, err = exec(ctx, r.db).ExecContext(ctx, q,
        ev.ID, ev.Name, ev.Date, ev.Time, ev.Description, ev.LongDescription,
        ev.Image, string(ev.Venue), ev.Price, ev.TotalSeats, ev.SeatsAvailable,
        chart, time.Now().UTC())
    return err
}

// GetByID loads an event including its embedded chart.  It returns
// ErrEventNotFound when no row exists.
func (r *EventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
    const q = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
    return r.scanOne(exec(ctx, r.db).QueryRowContext(ctx, q, id))
}

// GetForUpdate loads an event with a row lock when called inside a
// transaction.  Reserving, confirming and releasing seats all read
// through here so two concurrent writers to the same event serialize at
// the storage layer rather than clobbering each other's chart.
func (r *EventRepo) GetForUpdate(ctx context.Context, id string) (*model.Event, error) {
    q := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
    if txFromContext(ctx) != nil {
        q += ` FOR UPDATE`
    }
    return r.scanOne(exec(ctx, r.db).QueryRowContext(ctx, q, id))
}

// UpdateChart writes back an event's chart and seats_available counter,
// bumping the version stamp.  The write only lands when the stored
// version still matches the one the event was read at; otherwise a
// concurrent transaction got there first and ErrVersionConflict is
// returned so WithTx can retry with a fresh read.
func (r *EventRepo) UpdateChart(ctx context.Context, ev *model.Event) error {
    chart, err := json.Marshal(ev.SeatingChart)
    if err != nil {
        return err
    }
    const q = `UPDATE events
        SET seating_chart = ?, seats_available = ?, version = version + 1
        WHERE id = ? AND version = ?`
    res, err := exec(ctx, r.db).ExecContext(ctx, q, chart, ev.SeatsAvailable, ev.ID, ev.Version)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrVersionConflict
    }
    ev.Version++
    return nil
}

// List returns all events ordered by date for the public browse endpoint.
// Charts are included; the handler decides how much of them to expose.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
    const q = `SELECT ` + eventColumns + ` FROM events ORDER BY event_date, event_time`
    rows, err := exec(ctx, r.db).QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    events := make([]model.Event, 0)
    for rows.Next() {
        ev, err := scanEvent(rows)
        if err != nil {
            return nil, err
        }
        events = append(events, *ev)
    }
    return events, rows.Err()
}

type rowScanner interface {
    Scan(dest ...any) error
}

func (r *EventRepo) scanOne(row *sql.Row) (*model.Event, error) {
    ev, err := scanEvent(row)
    if err == sql.ErrNoRows {
        return nil, ErrEventNotFound
    }
    return ev, err
}

func scanEvent(s rowScanner) (*model.Event, error) {
    var ev model.Event
    var chart []byte
    var desc, longDesc, image sql.NullString
    if err := s.Scan(
        &ev.ID, &ev.Name, &ev.Date, &ev.Time, &desc, &longDesc,
        &image, &ev.Venue, &ev.Price, &ev.TotalSeats, &ev.SeatsAvailable,
        &chart, &ev.Version, &ev.CreatedAt,
    ); err != nil {
        return nil, err
    }
    ev.Description = desc.String
    ev.LongDescription = longDesc.String
    ev.Image = image.String
    ev.SeatingChart = &model.SeatingChart{}
    if err := json.Unmarshal(chart, ev.SeatingChart); err != nil {
        return nil, err
    }
    return &ev, nil
}
