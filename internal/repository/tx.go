package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/go-sql-driver/mysql"
)

// The transaction travels in the context so that repository methods can be
// called the same way inside and outside a transaction.  WithTx opens the
// transaction, runs the closure and commits; any error rolls back.
type txKey struct{}

func txFromContext(ctx context.Context) *sql.Tx {
    tx, _ := ctx.Value(txKey{}).(*sql.Tx)
    return tx
}

// execer is satisfied by both *sql.DB and *sql.Tx.  Repository methods
// resolve their executor through it so a method runs against the ambient
// transaction when one is present and the pool otherwise.
type execer interface {
    ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
    QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
    QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func exec(ctx context.Context, db *sql.DB) execer {
    if tx := txFromContext(ctx); tx != nil {
        return tx
    }
    return db
}

// Store bundles the repositories with the shared transaction runner.  One
// Store is constructed at startup and handed to the services.
type Store struct {
    db         *sql.DB
    maxRetries int

    Events   *EventRepo
    Bookings *BookingRepo
}

// NewStore builds a Store over the given pool.  maxRetries bounds how many
// times WithTx re-runs a conflicting transaction before giving up with
// ErrContention; values below 1 are clamped to 1.
func NewStore(db *sql.DB, maxRetries int) *Store {
    if maxRetries < 1 {
        maxRetries = 1
    }
    return &Store{
        db:         db,
        maxRetries: maxRetries,
        Events:     NewEventRepo(db),
        Bookings:   NewBookingRepo(db),
    }
}

// DB exposes the underlying pool for callers that manage their own
// statements (the seed binary).
func (s *Store) DB() *sql.DB { return s.db }

// WithTx runs fn inside a single database transaction and retries the
// whole closure when it fails with a version conflict or a storage-level
// lock error.  Every mutation of an event's chart must go through here;
// reading the event outside the transaction and writing inside it would
// reopen the lost-update window the version stamp exists to close.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
    if txFromContext(ctx) != nil {
        return fn(ctx) // already inside a transaction
    }

    var err error
    for attempt := 0; attempt < s.maxRetries; attempt++ {
        err = s.runOnce(ctx, fn)
        if err == nil || !retryable(err) {
            return err
        }
    }
    return ErrContention
}

func (s *Store) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
    tx, err := s.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
        _ = tx.Rollback()
        return err
    }
    return tx.Commit()
}

// retryable reports whether the error is a transient conflict worth
// re-running the transaction for: our own version check failing, or MySQL
// deadlock (1213) / lock wait timeout (1205).
func retryable(err error) bool {
    if errors.Is(err, ErrVersionConflict) {
        return true
    }
    var mysqlErr *mysql.MySQLError
    if errors.As(err, &mysqlErr) {
        return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
    }
    return false
}
