package main

// Seeds the database with the two theaters' demo events so a fresh
// install has something to book against.  Safe to re-run: existing rows
// are cleared first.

import (
    "context"
    "log"
    "time"

    "github.com/google/uuid"
    "github.com/joho/godotenv"

    "github.com/alwasl/event-booking/internal/config"
    "github.com/alwasl/event-booking/internal/database"
    "github.com/alwasl/event-booking/internal/model"
    "github.com/alwasl/event-booking/internal/repository"
)

func main() {
    _ = godotenv.Load()
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatal("DB connection failed:", err)
    }
    defer db.Close()

    ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
    defer cancel()

    if err := database.Migrate(ctx, db); err != nil {
        log.Fatal("migrate failed:", err)
    }

    log.Println("Cleaning old data...")
    if _, err := db.ExecContext(ctx, "DELETE FROM bookings"); err != nil {
        log.Fatal("clear bookings:", err)
    }
    if _, err := db.ExecContext(ctx, "DELETE FROM events"); err != nil {
        log.Fatal("clear events:", err)
    }

    store := repository.NewStore(db, 1)
    now := time.Now().UTC()

    log.Println("Creating events...")
    for _, ev := range demoEvents(now) {
        if err := store.Events.Create(ctx, ev); err != nil {
            log.Fatalf("create event %q: %v", ev.Name, err)
        }
        log.Printf("created %s (%s) with %d seats", ev.Name, ev.Venue, ev.TotalSeats)
    }

    log.Println("Seed completed")
}

func demoEvents(now time.Time) []*model.Event {
    boysChart := model.GenerateChart(model.VenueBoysTheater)
    girlsChart := model.GenerateChart(model.VenueGirlsTheater)

    boys := &model.Event{
        ID:              uuid.NewString(),
        Name:            "Annual Talent Show",
        Date:            now.AddDate(0, 1, 0).Format("2006-01-02"),
        Time:            "19:00",
        Description:     "The yearly student talent show.",
        LongDescription: "An evening of music, theater and comedy performed by the students. Doors open half an hour before the show.",
        Venue:           model.VenueBoysTheater,
        Price:           5,
        TotalSeats:      boysChart.CountSeats(),
        SeatsAvailable:  boysChart.CountAvailable(),
        SeatingChart:    boysChart,
        CreatedAt:       now,
    }
    girls := &model.Event{
        ID:              uuid.NewString(),
        Name:            "Spring Concert",
        Date:            now.AddDate(0, 2, 0).Format("2006-01-02"),
        Time:            "18:30",
        Description:     "Choir and orchestra spring concert.",
        LongDescription: "The school choir and orchestra present their spring program. Families welcome.",
        Venue:           model.VenueGirlsTheater,
        Price:           3,
        TotalSeats:      girlsChart.CountSeats(),
        SeatsAvailable:  girlsChart.CountAvailable(),
        SeatingChart:    girlsChart,
        CreatedAt:       now,
    }
    return []*model.Event{boys, girls}
}
