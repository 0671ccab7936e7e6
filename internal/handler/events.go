// Package handler exposes HTTP handlers for both authenticated and public endpoints.
// This file defines handlers for the public browsing API.  These routes allow
// unauthenticated users to list events and inspect a seating chart without
// logging in; internal fields (version stamps) never leave the server.

package handler

import (
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/alwasl/event-booking/internal/model"
    "github.com/alwasl/event-booking/internal/repository"
)

// EventHandler serves the public event catalogue.
type EventHandler struct {
    Store *repository.Store // provides access to events and their charts
}

// NewEventHandler constructs an EventHandler.  The store must be non-nil.
func NewEventHandler(store *repository.Store) *EventHandler {
    if store == nil {
        panic("nil store passed to NewEventHandler")
    }
    return &EventHandler{Store: store}
}

// EventSummary is the list-view shape of an event.  The seating chart and
// long description are omitted; clients fetch those per event.
type EventSummary struct {
    ID             string      `json:"id"`
    Name           string      `json:"name"`
    Date           string      `json:"date"`
    Time           string      `json:"time"`
    Description    string      `json:"description,omitempty"`
    Image          string      `json:"image,omitempty"`
    Venue          model.Venue `json:"venue"`
    Price          float64     `json:"price"`
    TotalSeats     int         `json:"totalSeats"`
    SeatsAvailable int         `json:"seatsAvailable"`
}

// ListEvents handles GET /v1/events.  Events come back ordered by date and
// time, soonest first.
func (h *EventHandler) ListEvents(c echo.Context) error {
    ctx := c.Request().Context()
    events, err := h.Store.ListEvents(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]EventSummary, 0, len(events))
    for _, ev := range events {
        out = append(out, summarize(&ev))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetEvent handles GET /v1/events/:id.  The full record including the long
// description is returned; the chart lives behind /seats.
func (h *EventHandler) GetEvent(c echo.Context) error {
    ctx := c.Request().Context()
    id := strings.TrimSpace(c.Param("id"))
    if id == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
    }
    ev, err := h.Store.GetEvent(ctx, id)
    if err != nil {
        return domainError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "id":              ev.ID,
        "name":            ev.Name,
        "date":            ev.Date,
        "time":            ev.Time,
        "description":     ev.Description,
        "longDescription": ev.LongDescription,
        "image":           ev.Image,
        "venue":           ev.Venue,
        "price":           ev.Price,
        "totalSeats":      ev.TotalSeats,
        "seatsAvailable":  ev.SeatsAvailable,
        "createdAt":       ev.CreatedAt.UTC().Format(time.RFC3339),
    })
}

// GetEventSeats handles GET /v1/events/:id/seats.  It returns the current
// seating chart along with both availability figures: the stored counter and
// a recount from the chart itself, so clients can show a consistent picture
// even while bookings are in flight.
func (h *EventHandler) GetEventSeats(c echo.Context) error {
    ctx := c.Request().Context()
    id := strings.TrimSpace(c.Param("id"))
    if id == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
    }
    ev, err := h.Store.GetEvent(ctx, id)
    if err != nil {
        return domainError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "eventId":        ev.ID,
        "venue":          ev.Venue,
        "chart":          ev.SeatingChart,
        "seatsAvailable": ev.SeatsAvailable,
        "openSeats":      ev.SeatingChart.CountAvailable(),
    })
}

func summarize(ev *model.Event) EventSummary {
    return EventSummary{
        ID:             ev.ID,
        Name:           ev.Name,
        Date:           ev.Date,
        Time:           ev.Time,
        Description:    ev.Description,
        Image:          ev.Image,
        Venue:          ev.Venue,
        Price:          ev.Price,
        TotalSeats:     ev.TotalSeats,
        SeatsAvailable: ev.SeatsAvailable,
    }
}
