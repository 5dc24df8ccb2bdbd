// Package cashfree provides the client for the Cashfree payment-links API.
//
// Cashfree authenticates with an x-client-id/x-client-secret header pair and
// pins the contract with an x-api-version header. The gateway only uses the
// hosted payment-link endpoint; the QR payload in the response is opaque and
// passed through verbatim.
package cashfree

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/stadiumstories/cricket-gateway/internal/metrics"
)

// Client is the HTTP client for the Cashfree payment-links endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiVersion string
	appID      string
	secretKey  string
}

// NewClient creates a Cashfree client against the configured environment
// (sandbox by default).
func NewClient(baseURL, apiVersion, appID, secretKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		baseURL:    baseURL,
		apiVersion: apiVersion,
		appID:      appID,
		secretKey:  secretKey,
	}
}

// ProviderError is a non-success answer from Cashfree. Body carries the raw
// provider response for diagnostics.
type ProviderError struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("cashfree returned %d: %s", e.StatusCode, string(e.Body))
}

// AsProviderError unwraps err into a *ProviderError when it carries one.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// customerDetails is the fixed sandbox customer submitted with every link.
// Caller-supplied customer fields are deliberately not forwarded; see the
// booking route notes in DESIGN.md.
type customerDetails struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

type linkRequest struct {
	LinkID          string          `json:"link_id"`
	LinkAmount      float64         `json:"link_amount"`
	LinkCurrency    string          `json:"link_currency"`
	LinkPurpose     string          `json:"link_purpose"`
	CustomerDetails customerDetails `json:"customer_details"`
}

// Link is the subset of the Cashfree link response the gateway forwards.
type Link struct {
	LinkID  string          `json:"link_id"`
	LinkURL string          `json:"link_url"`
	QRCode  json.RawMessage `json:"link_qrcode"`
}

// RoundAmount normalizes a payable amount to exactly 2 decimal places.
func RoundAmount(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// CreateTicketLink creates a hosted payment link + QR for a match ticket.
// amount must already be validated as finite and > 0 by the caller.
func (c *Client) CreateTicketLink(ctx context.Context, linkID string, amount float64) (*Link, error) {
	payload := linkRequest{
		LinkID:       linkID,
		LinkAmount:   RoundAmount(amount),
		LinkCurrency: "INR",
		LinkPurpose:  "RCB Match Ticket",
		CustomerDetails: customerDetails{
			CustomerName:  "RCB Fan",
			CustomerEmail: "fan@rcb.com",
			CustomerPhone: "9999999999",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode link request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/links", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-version", c.apiVersion)
	req.Header.Set("x-client-id", c.appID)
	req.Header.Set("x-client-secret", c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("cashfree", "links", metrics.OutcomeNetwork).Inc()
		return nil, fmt.Errorf("cashfree request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("cashfree", "links", metrics.OutcomeNetwork).Inc()
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequestsTotal.WithLabelValues("cashfree", "links", metrics.OutcomeUpstream).Inc()
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: respBody}
	}

	var link Link
	if err := json.Unmarshal(respBody, &link); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("cashfree", "links", metrics.OutcomeUpstream).Inc()
		return nil, fmt.Errorf("decode link response: %w", err)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("cashfree", "links", metrics.OutcomeSuccess).Inc()
	return &link, nil
}
