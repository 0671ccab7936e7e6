// Package payment implements the external payment-gateway collaborator.
// The service layer only consumes charges as captured / not captured; the
// provider protocol (a Tap-style charges REST API) stays inside this
// package.
package payment

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "time"

    "github.com/alwasl/event-booking/internal/service"
)

// statusCaptured is the gateway status meaning the money was collected.
const statusCaptured = "CAPTURED"

// TapClient talks to a Tap-style payments API: POST /charges creates a
// charge and returns a hosted payment page URL, GET /charges/{id} reports
// its status.  It implements service.PaymentGateway.
type TapClient struct {
    baseURL   string
    secretKey string
    http      *http.Client
}

// NewTapClient builds a client for the given API base URL and secret key.
func NewTapClient(baseURL, secretKey string) *TapClient {
    return &TapClient{
        baseURL:   baseURL,
        secretKey: secretKey,
        http:      &http.Client{Timeout: 15 * time.Second},
    }
}

// chargePayload mirrors the gateway's charge creation body.  The booking
// ID rides in the metadata so the redirect callback can correlate the
// charge back to our booking.
type chargePayload struct {
    Amount      float64           `json:"amount"`
    Currency    string            `json:"currency"`
    Description string            `json:"description,omitempty"`
    Source      map[string]string `json:"source"`
    Metadata    map[string]string `json:"metadata"`
    Redirect    map[string]string `json:"redirect"`
}

// chargeResponse is the subset of the gateway's charge object we consume.
type chargeResponse struct {
    ID          string `json:"id"`
    Status      string `json:"status"`
    Transaction struct {
        URL string `json:"url"`
    } `json:"transaction"`
}

// CreateCharge asks the gateway for a new charge and returns its ID and
// the URL the user must be redirected to in order to pay.
func (c *TapClient) CreateCharge(ctx context.Context, req service.ChargeRequest) (*service.Charge, error) {
    payload := chargePayload{
        Amount:      req.Amount,
        Currency:    req.Currency,
        Description: req.Description,
        Source:      map[string]string{"id": "src_all"},
        Metadata:    map[string]string{"bookingId": req.BookingID},
        Redirect:    map[string]string{"url": req.RedirectURL},
    }
    body, err := json.Marshal(payload)
    if err != nil {
        return nil, err
    }
    resp, err := c.do(ctx, http.MethodPost, c.baseURL+"/charges", bytes.NewReader(body))
    if err != nil {
        return nil, err
    }
    return toCharge(resp), nil
}

// GetCharge fetches the current state of a previously created charge.
func (c *TapClient) GetCharge(ctx context.Context, chargeID string) (*service.Charge, error) {
    resp, err := c.do(ctx, http.MethodGet, c.baseURL+"/charges/"+chargeID, nil)
    if err != nil {
        return nil, err
    }
    return toCharge(resp), nil
}

func (c *TapClient) do(ctx context.Context, method, url string, body io.Reader) (*chargeResponse, error) {
    req, err := http.NewRequestWithContext(ctx, method, url, body)
    if err != nil {
        return nil, err
    }
    req.Header.Set("Authorization", "Bearer "+c.secretKey)
    if body != nil {
        req.Header.Set("Content-Type", "application/json")
    }

    res, err := c.http.Do(req)
    if err != nil {
        return nil, err
    }
    defer res.Body.Close()

    if res.StatusCode < 200 || res.StatusCode >= 300 {
        msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
        return nil, fmt.Errorf("gateway: %s %s returned %d: %s", method, url, res.StatusCode, msg)
    }

    var out chargeResponse
    if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
        return nil, fmt.Errorf("gateway: decode response: %w", err)
    }
    return &out, nil
}

func toCharge(r *chargeResponse) *service.Charge {
    return &service.Charge{
        ID:         r.ID,
        Status:     r.Status,
        Captured:   r.Status == statusCaptured,
        PaymentURL: r.Transaction.URL,
    }
}
