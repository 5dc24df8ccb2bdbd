// Package cricapi provides the HTTP client for the CricAPI cricket-data
// provider.
//
// CricAPI authenticates with an `apikey` query parameter and wraps every
// response in a {status, data, reason} envelope where status != "success"
// means the call failed even when HTTP says 200.
package cricapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/stadiumstories/cricket-gateway/internal/metrics"
)

// Client is the shared HTTP client for all CricAPI endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

// NewClient creates a CricAPI HTTP client.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// UpstreamError is a non-success answer from CricAPI: either a non-200 HTTP
// status or a "status" field other than "success" in the envelope.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Reason     string
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cricapi %s: %s", e.Endpoint, e.Reason)
	}
	return fmt.Sprintf("cricapi %s returned %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// IsUpstreamError reports whether err carries a provider-side failure, as
// opposed to a network-level one.
func IsUpstreamError(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// envelope is the common CricAPI response wrapper.
type envelope struct {
	Status string          `json:"status"`
	Reason string          `json:"reason"`
	Data   json.RawMessage `json:"data"`
}

// get performs a GET request to a CricAPI endpoint and unwraps the envelope,
// returning the raw data payload for pass-through to the frontend.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("apikey", c.apiKey)

	u := c.baseURL + "/" + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("cricapi", endpoint, metrics.OutcomeNetwork).Inc()
		return nil, fmt.Errorf("http request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("cricapi", endpoint, metrics.OutcomeNetwork).Inc()
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequestsTotal.WithLabelValues("cricapi", endpoint, metrics.OutcomeUpstream).Inc()
		return nil, &UpstreamError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       truncate(body, 200),
		}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("cricapi", endpoint, metrics.OutcomeUpstream).Inc()
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if env.Status != "success" {
		metrics.UpstreamRequestsTotal.WithLabelValues("cricapi", endpoint, metrics.OutcomeUpstream).Inc()
		return nil, &UpstreamError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Reason:     env.Reason,
		}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("cricapi", endpoint, metrics.OutcomeSuccess).Inc()
	return env.Data, nil
}

// --------------------------------------------------------------------------
// Endpoint wrappers
// --------------------------------------------------------------------------

// Players returns a page of players. search may be empty.
func (c *Client) Players(ctx context.Context, offset int, search string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	if search != "" {
		params.Set("search", search)
	}
	return c.get(ctx, "players", params)
}

// Matches returns a page of scheduled and recent matches.
func (c *Client) Matches(ctx context.Context, offset int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	return c.get(ctx, "matches", params)
}

// CurrentMatches returns matches currently in progress.
func (c *Client) CurrentMatches(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "currentMatches", nil)
}

// LiveScores returns the score-ticker feed.
func (c *Client) LiveScores(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "cricScore", nil)
}

// Series returns a page of series.
func (c *Client) Series(ctx context.Context, offset int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	return c.get(ctx, "series", params)
}

// SeriesMatches returns the match list of a single series.
func (c *Client) SeriesMatches(ctx context.Context, id string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("id", id)
	return c.get(ctx, "series_matches", params)
}

// PlayerInfo returns full detail for one player.
func (c *Client) PlayerInfo(ctx context.Context, id string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("id", id)
	return c.get(ctx, "players_info", params)
}

// MatchInfo returns full detail for one match.
func (c *Client) MatchInfo(ctx context.Context, id string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("id", id)
	return c.get(ctx, "match_info", params)
}

// SeriesInfo returns full detail for one series.
func (c *Client) SeriesInfo(ctx context.Context, id string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("id", id)
	return c.get(ctx, "series_info", params)
}

// Countries returns the country list used for flag lookups.
func (c *Client) Countries(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "countries", nil)
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
