package database

import (
    "context"
    "database/sql"
)

// Migrate creates the events and bookings tables when they do not exist.
// The seating chart and the booking seat list are JSON documents on their
// owning rows; the events.version column backs the optimistic
// compare-and-swap that keeps chart writes atomic under contention.  The
// (status, created_at) index on bookings serves the expiry sweep's range
// query.
func Migrate(ctx context.Context, db *sql.DB) error {
    stmts := []string{
        `CREATE TABLE IF NOT EXISTS events (
            id               VARCHAR(36)  NOT NULL PRIMARY KEY,
            name             VARCHAR(255) NOT NULL,
            event_date       VARCHAR(32)  NOT NULL,
            event_time       VARCHAR(32)  NOT NULL,
            description      TEXT,
            long_description TEXT,
            image            VARCHAR(512),
            venue            VARCHAR(32)  NOT NULL,
            price            DOUBLE       NOT NULL DEFAULT 0,
            total_seats      INT          NOT NULL,
            seats_available  INT          NOT NULL,
            seating_chart    JSON         NOT NULL,
            version          BIGINT UNSIGNED NOT NULL DEFAULT 0,
            created_at       DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP
        ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
        `CREATE TABLE IF NOT EXISTS bookings (
            id                VARCHAR(36) NOT NULL PRIMARY KEY,
            event_id          VARCHAR(36) NOT NULL,
            user_id           VARCHAR(64) NOT NULL,
            seats             JSON        NOT NULL,
            amount            DOUBLE      NOT NULL,
            status            VARCHAR(24) NOT NULL,
            payment_method    VARCHAR(16) NOT NULL,
            gateway_charge_id VARCHAR(64),
            created_at        DATETIME    NOT NULL DEFAULT CURRENT_TIMESTAMP,
            KEY idx_bookings_status_created (status, created_at),
            KEY idx_bookings_user (user_id, created_at),
            KEY idx_bookings_event (event_id)
        ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
    }
    for _, stmt := range stmts {
        if _, err := db.ExecContext(ctx, stmt); err != nil {
            return err
        }
    }
    return nil
}
