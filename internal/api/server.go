package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/stadiumstories/cricket-gateway/internal/api/handler"
	"github.com/stadiumstories/cricket-gateway/internal/auth"
	"github.com/stadiumstories/cricket-gateway/internal/config"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(h *handler.Handler, tokens *auth.Tokens, users UserFinder, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Process-Time"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/providers", h.HealthCheckProviders)
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI over the hand-maintained OpenAPI document.
	r.Get("/docs/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(openAPISpec)
	})
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/openapi.json"),
	))

	// Gateway API
	r.Route("/api", func(r chi.Router) {
		// News
		r.Get("/news", h.GetStaticNews)
		r.Get("/cricket-news", h.GetCricketNews)

		// Cricket data pass-throughs
		r.Get("/players", h.GetPlayers)
		r.Get("/matches", h.GetMatches)
		r.Get("/current-matches", h.GetCurrentMatches)
		r.Get("/live-scores", h.GetLiveScores)
		r.Get("/series", h.GetSeries)
		r.Get("/countries", h.GetCountries)
		r.Get("/t20-world-cup-matches", h.GetWorldCupMatches)
		r.Get("/match-center", h.GetMatchCenter)

		// Detail lookups
		r.Get("/player-info", h.GetPlayerInfo)
		r.Get("/match-info", h.GetMatchInfo)
		r.Get("/series-info", h.GetSeriesInfo)

		// Booking / payment
		r.Post("/payment/create-qr", h.CreateQR)

		// Accounts
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)

			r.Group(func(r chi.Router) {
				r.Use(AuthMiddleware(tokens, users))
				r.Get("/me", h.Me)
			})
		})
	})

	return r
}
