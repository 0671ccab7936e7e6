package handler

import (
    "net/http" // HTTP status codes
    "strings"  // trimming path and query parameters

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/alwasl/event-booking/internal/model"
    "github.com/alwasl/event-booking/internal/repository"
    "github.com/alwasl/event-booking/internal/service"
)

// BookingHandler exposes seat reservation and payment endpoints for
// authenticated users.  All methods assume JWT authentication has already
// run; they return 401 when no user ID can be extracted from the context.
type BookingHandler struct {
    Reservations *service.ReservationService // reserves seats and opens payment intents
    Bookings     *service.BookingService     // verifies payments and confirms bookings
    Store        *repository.Store           // direct reads for listings
}

// NewBookingHandler constructs a BookingHandler with the provided services.
// All dependencies must be non-nil.
func NewBookingHandler(reservations *service.ReservationService, bookings *service.BookingService, store *repository.Store) *BookingHandler {
    if reservations == nil || bookings == nil || store == nil {
        panic("nil dependency passed to NewBookingHandler")
    }
    return &BookingHandler{Reservations: reservations, Bookings: bookings, Store: store}
}

// bookingRequest is the JSON body for both reservation endpoints.  Amount
// is what the client showed the user; the service recomputes and rejects
// mismatches.
type bookingRequest struct {
    Seats  []string `json:"seats"`
    Amount float64  `json:"amount"`
}

// CreateCashBooking handles POST /v1/events/:id/bookings/cash.  It reserves
// the requested seats and creates a pending_cash booking that an admin
// later confirms when the money is handed over.  Unpaid holds expire after
// the configured window.  Responds 201 with the booking on success.
func (h *BookingHandler) CreateCashBooking(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    eventID := strings.TrimSpace(c.Param("id"))
    if eventID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
    }
    var body bookingRequest
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if len(body.Seats) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats is required"})
    }
    booking, err := h.Reservations.ReserveSeats(c.Request().Context(), service.ReserveSeatsInput{
        EventID:       eventID,
        UserID:        userID,
        SeatIDs:       body.Seats,
        Amount:        body.Amount,
        PaymentMethod: model.PayCash,
    })
    if err != nil {
        return domainError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"booking": booking})
}

// CreateOnlineBooking handles POST /v1/events/:id/bookings/online.  It
// reserves the seats under a pending_payment booking and returns the
// gateway URL the client must redirect the user to.  If the gateway
// refuses the charge the reservation is rolled back before the error is
// reported.
func (h *BookingHandler) CreateOnlineBooking(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    eventID := strings.TrimSpace(c.Param("id"))
    if eventID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
    }
    var body bookingRequest
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if len(body.Seats) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats is required"})
    }
    intent, err := h.Reservations.CreateOnlinePaymentIntent(c.Request().Context(), service.ReserveSeatsInput{
        EventID: eventID,
        UserID:  userID,
        SeatIDs: body.Seats,
        Amount:  body.Amount,
    })
    if err != nil {
        return domainError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "booking":     intent.Booking,
        "payment_url": intent.PaymentURL,
    })
}

// VerifyPayment handles GET /v1/payments/verify.  The payment gateway
// redirects the payer here with tap_id and booking_id query parameters;
// the handler checks the charge with the gateway and confirms or fails
// the booking.  Calling it again after either outcome just repeats the
// outcome, so double redirects are harmless.
func (h *BookingHandler) VerifyPayment(c echo.Context) error {
    chargeID := strings.TrimSpace(c.QueryParam("tap_id"))
    bookingID := strings.TrimSpace(c.QueryParam("booking_id"))
    if chargeID == "" || bookingID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "tap_id and booking_id are required"})
    }
    res, err := h.Bookings.VerifyOnlinePayment(c.Request().Context(), chargeID, bookingID)
    if err != nil {
        return domainError(c, err)
    }
    status := http.StatusOK
    if !res.Success {
        status = http.StatusPaymentRequired
    }
    return c.JSON(status, echo.Map{
        "success": res.Success,
        "message": res.Message,
    })
}

// ListMyBookings handles GET /v1/my/bookings.  It returns the current
// user's bookings, newest first.  When none exist, the items array is
// empty rather than null.
func (h *BookingHandler) ListMyBookings(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    bookings, err := h.Store.ListBookingsByUser(c.Request().Context(), userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if bookings == nil {
        bookings = []model.Booking{}
    }
    return c.JSON(http.StatusOK, echo.Map{"items": bookings})
}
