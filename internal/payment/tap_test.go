package payment

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/alwasl/event-booking/internal/service"
)

func TestTapClient_CreateCharge(t *testing.T) {
    var gotAuth string
    var gotBody chargePayload

    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        require.Equal(t, http.MethodPost, r.Method)
        require.Equal(t, "/charges", r.URL.Path)
        gotAuth = r.Header.Get("Authorization")
        require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

        w.Header().Set("Content-Type", "application/json")
        _, _ = w.Write([]byte(`{
            "id": "chg_123",
            "status": "INITIATED",
            "transaction": {"url": "https://pay.example/chg_123"}
        }`))
    }))
    defer srv.Close()

    client := NewTapClient(srv.URL, "sk_test_key")
    charge, err := client.CreateCharge(context.Background(), service.ChargeRequest{
        Amount:      15,
        Currency:    "KWD",
        Description: "Event booking b-1",
        BookingID:   "b-1",
        RedirectURL: "https://example.test/verify?booking_id=b-1",
    })
    require.NoError(t, err)

    assert.Equal(t, "Bearer sk_test_key", gotAuth)
    assert.Equal(t, 15.0, gotBody.Amount)
    assert.Equal(t, "KWD", gotBody.Currency)
    assert.Equal(t, "b-1", gotBody.Metadata["bookingId"])
    assert.Equal(t, "https://example.test/verify?booking_id=b-1", gotBody.Redirect["url"])

    assert.Equal(t, "chg_123", charge.ID)
    assert.False(t, charge.Captured)
    assert.Equal(t, "https://pay.example/chg_123", charge.PaymentURL)
}

func TestTapClient_GetCharge(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        require.Equal(t, http.MethodGet, r.Method)
        require.Equal(t, "/charges/chg_123", r.URL.Path)
        w.Header().Set("Content-Type", "application/json")
        _, _ = w.Write([]byte(`{"id": "chg_123", "status": "CAPTURED"}`))
    }))
    defer srv.Close()

    client := NewTapClient(srv.URL, "sk_test_key")
    charge, err := client.GetCharge(context.Background(), "chg_123")
    require.NoError(t, err)

    assert.True(t, charge.Captured)
    assert.Equal(t, "CAPTURED", charge.Status)
}

func TestTapClient_GetCharge_NotCaptured(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        _, _ = w.Write([]byte(`{"id": "chg_123", "status": "DECLINED"}`))
    }))
    defer srv.Close()

    client := NewTapClient(srv.URL, "sk")
    charge, err := client.GetCharge(context.Background(), "chg_123")
    require.NoError(t, err)
    assert.False(t, charge.Captured)
}

func TestTapClient_ErrorStatus(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        http.Error(w, `{"errors":[{"code":"401"}]}`, http.StatusUnauthorized)
    }))
    defer srv.Close()

    client := NewTapClient(srv.URL, "bad-key")
    _, err := client.GetCharge(context.Background(), "chg_123")
    require.Error(t, err)
    assert.Contains(t, err.Error(), "401")
}
