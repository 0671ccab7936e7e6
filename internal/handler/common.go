package handler // handler defines http handlers

import (
    "errors"   // errors provides As/Is comparisons against domain errors
    "fmt"      // fmt formats non-string token subjects
    "net/http" // net/http supplies status codes
    "strings"  // strings trims identifier values

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/alwasl/event-booking/internal/model"
    "github.com/alwasl/event-booking/internal/repository"
    "github.com/alwasl/event-booking/internal/service"
)

// getUserID extracts the authenticated user's identifier from echo.Context.
// JWTAuth stores the token subject under "user_id" as an untyped claim
// value, so the helper tolerates the common representations.
func getUserID(c echo.Context) (string, error) {
    switch t := c.Get("user_id").(type) {
    case string:
        if s := strings.TrimSpace(t); s != "" {
            return s, nil
        }
    case float64:
        // numeric subjects arrive as float64 after JSON decoding
        return fmt.Sprintf("%.0f", t), nil
    }
    return "", errors.New("invalid user_id in context")
}

// domainError maps service and repository errors onto HTTP responses.  Seat
// conflicts and booking state conflicts are 409 so clients can re-render the
// chart and retry; contention after exhausted retries is 503 because the
// request was valid and may succeed later.
func domainError(c echo.Context, err error) error {
    var seatErr *model.SeatError
    var stateErr *model.InvalidStateError
    switch {
    case errors.As(err, &seatErr):
        return c.JSON(http.StatusConflict, echo.Map{"error": seatErr.Error(), "seat": seatErr.SeatID})
    case errors.As(err, &stateErr):
        return c.JSON(http.StatusConflict, echo.Map{"error": stateErr.Error()})
    case errors.Is(err, repository.ErrEventNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
    case errors.Is(err, repository.ErrBookingNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
    case errors.Is(err, repository.ErrContention):
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "seats are being booked right now, please retry"})
    case errors.Is(err, service.ErrNoSeatsRequested):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats is required"})
    case errors.Is(err, service.ErrAmountMismatch):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount does not match seat prices"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
}
