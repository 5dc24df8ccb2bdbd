// Package handler provides HTTP handlers for all gateway endpoints.
// Content routes are thin pass-throughs: validate input, call the provider
// adapter, reshape through the cricket service, write JSON.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/stadiumstories/cricket-gateway/internal/api/respond"
	"github.com/stadiumstories/cricket-gateway/internal/auth"
	"github.com/stadiumstories/cricket-gateway/internal/config"
	"github.com/stadiumstories/cricket-gateway/internal/cricket"
	"github.com/stadiumstories/cricket-gateway/internal/external"
	"github.com/stadiumstories/cricket-gateway/internal/provider/cashfree"
	"github.com/stadiumstories/cricket-gateway/internal/user"
)

// CricketAPI is the full provider surface the handlers use. Satisfied by
// *cricapi.Client.
type CricketAPI interface {
	cricket.DataSource
	Series(ctx context.Context, offset int) (json.RawMessage, error)
	PlayerInfo(ctx context.Context, id string) (json.RawMessage, error)
	MatchInfo(ctx context.Context, id string) (json.RawMessage, error)
	SeriesInfo(ctx context.Context, id string) (json.RawMessage, error)
}

// NewsProvider is the news-adapter surface. Satisfied by *external.NewsService.
type NewsProvider interface {
	Configured() bool
	CricketNews(ctx context.Context) ([]external.Article, error)
}

// PaymentProvider is the payment-adapter surface. Satisfied by *cashfree.Client.
type PaymentProvider interface {
	CreateTicketLink(ctx context.Context, linkID string, amount float64) (*cashfree.Link, error)
}

// AccountStore is the user-store surface. Satisfied by *user.Store.
type AccountStore interface {
	Create(ctx context.Context, name, email, password string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	cfg      *config.Config
	logger   *slog.Logger
	cric     CricketAPI
	svc      *cricket.Service
	news     NewsProvider
	payments PaymentProvider
	users    AccountStore // nil when no account store is configured
	tokens   *auth.Tokens
}

// New creates a Handler with shared dependencies. users may be nil; the
// account routes then answer 503 while content routes keep working.
func New(cfg *config.Config, logger *slog.Logger, cric CricketAPI, news NewsProvider,
	payments PaymentProvider, users AccountStore, tokens *auth.Tokens) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cfg:      cfg,
		logger:   logger,
		cric:     cric,
		svc:      cricket.NewService(cric, logger),
		news:     news,
		payments: payments,
		users:    users,
		tokens:   tokens,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Stadium Stories API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckProviders reports which upstream credentials are configured.
// No outbound calls are made; this is configuration visibility only.
// @Summary Provider configuration health
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/providers [get]
func (h *Handler) HealthCheckProviders(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"providers": map[string]bool{
			"cricapi":  h.cfg.CricAPIKey != "",
			"newsapi":  h.cfg.NewsAPIKey != "",
			"cashfree": h.cfg.CashfreeAppID != "" && h.cfg.CashfreeSecretKey != "",
		},
		"accountStore": h.users != nil,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}
