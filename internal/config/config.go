package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations
// and retry counts.
type Config struct {
    Env                string // application environment (e.g. "dev", "prod")
    Port               string // HTTP port to listen on
    DBUser             string // database username
    DBPass             string // database password (optional)
    DBHost             string // database host address
    DBPort             string // database port number
    DBName             string // database name
    JWTSecret          string // secret used to verify JWTs
    HoldHours          int    // hours an unpaid cash booking may hold its seats
    ReserveMaxRetries  int    // attempts for a contended seat reservation before giving up
    SweepIntervalMin   int    // minutes between expiry sweep runs
    TapAPIBaseURL      string // payment gateway API base URL
    TapSecretKey       string // payment gateway secret key
    PaymentCallbackURL string // URL the gateway redirects the payer back to
    Currency           string // currency code charged for bookings
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Tunables with a
// sensible default use intOr so a minimal .env still boots.
func Load() Config {
    return Config{
        Env:                must("APP_ENV"),  // environment (dev/test/prod)
        Port:               must("APP_PORT"), // port to bind the HTTP server
        DBUser:             must("DB_USER"),  // database user
        DBPass:             os.Getenv("DB_PASS"),
        DBHost:             must("DB_HOST"),
        DBPort:             must("DB_PORT"),
        DBName:             must("DB_NAME"),
        JWTSecret:          must("JWT_SECRET"),
        HoldHours:          intOr("BOOKING_HOLD_HOURS", 48),
        ReserveMaxRetries:  intOr("RESERVE_MAX_RETRIES", 5),
        SweepIntervalMin:   intOr("SWEEP_INTERVAL_MIN", 60),
        TapAPIBaseURL:      must("TAP_API_BASE_URL"),
        TapSecretKey:       must("TAP_SECRET_KEY"),
        PaymentCallbackURL: must("PAYMENT_CALLBACK_URL"),
        Currency:           stringOr("CURRENCY", "KWD"),
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// stringOr returns the value of an environment variable or a default when
// the variable is unset or empty.
func stringOr(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

// intOr is like stringOr but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func intOr(key string, def int) int {
    s := os.Getenv(key)
    if s == "" {
        return def
    }
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
