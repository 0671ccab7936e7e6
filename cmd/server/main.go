package main // Entry point package

import (
    "context" // context for startup deadlines
    "log"     // Logging library
    "time"    // durations for config knobs

    "github.com/go-co-op/gocron/v2" // scheduler driving the expiry sweep
    "github.com/joho/godotenv"      // loads .env files in development
    "github.com/labstack/echo/v4"   // Echo web framework

    "github.com/alwasl/event-booking/internal/clock"
    "github.com/alwasl/event-booking/internal/config"
    "github.com/alwasl/event-booking/internal/database"
    "github.com/alwasl/event-booking/internal/handler"
    "github.com/alwasl/event-booking/internal/middleware"
    "github.com/alwasl/event-booking/internal/payment"
    "github.com/alwasl/event-booking/internal/queue"
    "github.com/alwasl/event-booking/internal/repository"
    "github.com/alwasl/event-booking/internal/router"
    "github.com/alwasl/event-booking/internal/service"
)

func main() {
    // .env is optional; in production the variables come from the
    // environment directly.
    _ = godotenv.Load()
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("open database: %v", err)
    }
    defer db.Close()

    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    if err := database.Migrate(ctx, db); err != nil {
        cancel()
        log.Fatalf("migrate: %v", err)
    }
    cancel()

    store := repository.NewStore(db, cfg.ReserveMaxRetries)
    gateway := payment.NewTapClient(cfg.TapAPIBaseURL, cfg.TapSecretKey)
    clk := clock.NewSystem()

    reservations := service.NewReservationService(store, gateway, clk, queue.Publish, cfg.PaymentCallbackURL, cfg.Currency)
    bookings := service.NewBookingService(store, gateway, clk, queue.Publish)
    sweep := service.NewSweepService(store, clk, queue.Publish, time.Duration(cfg.HoldHours)*time.Hour)

    // The consumer mirrors booking lifecycle events into the audit log.
    // It reconnects on broker failures; a missing broker only costs the
    // audit trail, not bookings.
    go func() {
        if err := queue.StartBookingConsumer(); err != nil {
            log.Printf("booking consumer stopped: %v", err)
        }
    }()

    startSweepScheduler(sweep, cfg.SweepIntervalMin)

    e := echo.New()
    e.HideBanner = true

    // Redis backs rate limiting and response caching.  When it is not
    // reachable the client is nil and both features quietly turn off.
    rdb := config.NewRedisClient()
    if rlCfg := config.LoadRateLimitConfig(); rlCfg.Enabled && rdb != nil {
        e.Use(middleware.NewTokenBucket(rlCfg, rdb))
    }
    var cacheMW echo.MiddlewareFunc
    if cacheCfg := config.LoadCacheConfig(); cacheCfg.Enabled && rdb != nil {
        cacheMW = middleware.NewRedisCache(cacheCfg, rdb)
    }

    events := handler.NewEventHandler(store)
    booking := handler.NewBookingHandler(reservations, bookings, store)
    admin := handler.NewAdminHandler(bookings, sweep, store)

    router.RegisterRoutes(e)
    router.RegisterPublic(e, events, booking, cacheMW)
    router.RegisterCustomer(e, booking, cfg.JWTSecret)
    router.RegisterAdmin(e, admin, cfg.JWTSecret)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}

// startSweepScheduler runs the expiry sweep every intervalMin minutes.
// The first run happens one interval after boot; operators can trigger an
// immediate pass through the admin endpoint.
func startSweepScheduler(sweep *service.SweepService, intervalMin int) {
    s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
    if err != nil {
        log.Fatalf("create scheduler: %v", err)
    }
    _, err = s.NewJob(
        gocron.DurationJob(time.Duration(intervalMin)*time.Minute),
        gocron.NewTask(func() {
            ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
            defer cancel()
            if _, err := sweep.Run(ctx); err != nil {
                log.Printf("scheduled sweep: %v", err)
            }
        }),
    )
    if err != nil {
        log.Fatalf("schedule sweep job: %v", err)
    }
    s.Start()
}
