package handler

import (
    "errors"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/alwasl/event-booking/internal/model"
    "github.com/alwasl/event-booking/internal/repository"
    "github.com/alwasl/event-booking/internal/service"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func TestGetUserID(t *testing.T) {
    t.Run("string subject", func(t *testing.T) {
        c, _ := newTestContext(t)
        c.Set("user_id", "user-42")
        id, err := getUserID(c)
        require.NoError(t, err)
        assert.Equal(t, "user-42", id)
    })

    t.Run("numeric subject", func(t *testing.T) {
        c, _ := newTestContext(t)
        c.Set("user_id", float64(42))
        id, err := getUserID(c)
        require.NoError(t, err)
        assert.Equal(t, "42", id)
    })

    t.Run("missing", func(t *testing.T) {
        c, _ := newTestContext(t)
        _, err := getUserID(c)
        assert.Error(t, err)
    })

    t.Run("blank", func(t *testing.T) {
        c, _ := newTestContext(t)
        c.Set("user_id", "   ")
        _, err := getUserID(c)
        assert.Error(t, err)
    })
}

func TestDomainError(t *testing.T) {
    cases := []struct {
        name string
        err  error
        code int
    }{
        {"seat conflict", &model.SeatError{SeatID: "BL1", Err: model.ErrSeatUnavailable}, http.StatusConflict},
        {"invalid state", &model.InvalidStateError{Expected: model.BookingPendingCash, Actual: model.BookingCancelled}, http.StatusConflict},
        {"event missing", repository.ErrEventNotFound, http.StatusNotFound},
        {"booking missing", repository.ErrBookingNotFound, http.StatusNotFound},
        {"contention", repository.ErrContention, http.StatusServiceUnavailable},
        {"no seats", service.ErrNoSeatsRequested, http.StatusBadRequest},
        {"amount mismatch", service.ErrAmountMismatch, http.StatusBadRequest},
        {"unknown", errors.New("boom"), http.StatusInternalServerError},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            c, rec := newTestContext(t)
            require.NoError(t, domainError(c, tc.err))
            assert.Equal(t, tc.code, rec.Code)
        })
    }
}

func TestDomainError_ReportsSeatID(t *testing.T) {
    c, rec := newTestContext(t)
    require.NoError(t, domainError(c, &model.SeatError{SeatID: "CC4", Err: model.ErrSeatUnavailable}))
    assert.Contains(t, rec.Body.String(), `"seat":"CC4"`)
}
