package handler

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/alwasl/event-booking/internal/model"
    "github.com/alwasl/event-booking/internal/repository"
    "github.com/alwasl/event-booking/internal/service"
)

// AdminHandler groups the back-office operations: confirming cash
// payments, browsing every booking and forcing an expiry sweep outside
// its schedule.  Routes using it must sit behind RequireRole("admin").
type AdminHandler struct {
    Bookings *service.BookingService // confirms cash bookings
    Sweep    *service.SweepService   // expires overdue cash holds
    Store    *repository.Store       // direct reads for listings
}

// NewAdminHandler constructs an AdminHandler.  All dependencies must be
// non-nil.
func NewAdminHandler(bookings *service.BookingService, sweep *service.SweepService, store *repository.Store) *AdminHandler {
    if bookings == nil || sweep == nil || store == nil {
        panic("nil dependency passed to NewAdminHandler")
    }
    return &AdminHandler{Bookings: bookings, Sweep: sweep, Store: store}
}

// ConfirmCashBooking handles POST /v1/admin/bookings/:id/confirm.  The
// admin records that the cash was received; the booking's seats move from
// reserved to booked and the booking becomes confirmed.  Confirming an
// already confirmed booking is a no-op 200.
func (h *AdminHandler) ConfirmCashBooking(c echo.Context) error {
    id := strings.TrimSpace(c.Param("id"))
    if id == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    if err := h.Bookings.ConfirmCashBooking(c.Request().Context(), id); err != nil {
        return domainError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"status": string(model.BookingConfirmed)})
}

// ListAllBookings handles GET /v1/admin/bookings.  It returns every
// booking in the system, newest first.
func (h *AdminHandler) ListAllBookings(c echo.Context) error {
    bookings, err := h.Store.ListAllBookings(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if bookings == nil {
        bookings = []model.Booking{}
    }
    return c.JSON(http.StatusOK, echo.Map{"items": bookings})
}

// RunSweep handles POST /v1/admin/sweep.  It runs one expiry pass
// immediately instead of waiting for the scheduled run, and reports how
// many overdue cash bookings were cancelled.
func (h *AdminHandler) RunSweep(c echo.Context) error {
    expired, err := h.Sweep.Run(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sweep failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"expired": expired})
}
