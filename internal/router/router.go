package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/alwasl/event-booking/internal/handler"    // import the handlers that implement business logic
    "github.com/alwasl/event-booking/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Load balancers and monitoring probe this endpoint to verify the
    // service is up.
    e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated browse endpoints.  Guests can
// list events and inspect a seating chart before logging in to book, and
// the payment gateway's redirect callback also lands here because the
// returning browser carries no Authorization header.  The optional cacheMW
// is applied to the event listing only; seat charts change too often to
// cache usefully.
func RegisterPublic(e *echo.Echo, h *handler.EventHandler, b *handler.BookingHandler, cacheMW echo.MiddlewareFunc) {
    if cacheMW != nil {
        e.GET("/v1/events", h.ListEvents, cacheMW)
    } else {
        e.GET("/v1/events", h.ListEvents)
    }
    // Event detail and the live seating chart with availability counts.
    e.GET("/v1/events/:id", h.GetEvent)
    e.GET("/v1/events/:id/seats", h.GetEventSeats)
    // The gateway redirects the payer back here with tap_id and booking_id.
    e.GET("/v1/payments/verify", b.VerifyPayment)
}

// RegisterCustomer registers the booking endpoints under /v1.  All routes
// require a valid JWT; both regular users and admins may book seats.
func RegisterCustomer(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("user", "admin"),
    )
    // Reserve seats to be paid in cash at the school office.
    g.POST("/events/:id/bookings/cash", h.CreateCashBooking)
    // Reserve seats and open an online payment with the gateway.
    g.POST("/events/:id/bookings/online", h.CreateOnlineBooking)
    // List the caller's own bookings.
    g.GET("/my/bookings", h.ListMyBookings)
}

// RegisterAdmin registers the back-office endpoints.  All routes are
// mounted under /v1/admin and require a JWT carrying the admin role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
    g := e.Group(
        "/v1/admin",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("admin"),
    )
    // Record that the cash for a booking was received.
    g.POST("/bookings/:id/confirm", h.ConfirmCashBooking)
    // Browse every booking in the system.
    g.GET("/bookings", h.ListAllBookings)
    // Force an expiry sweep outside its schedule.
    g.POST("/sweep", h.RunSweep)
}
