// Command api is the Stadium Stories gateway server.
//
// Usage:
//
//	api
//	API_PORT=8080 api
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stadiumstories/cricket-gateway/internal/api"
	"github.com/stadiumstories/cricket-gateway/internal/api/handler"
	"github.com/stadiumstories/cricket-gateway/internal/auth"
	"github.com/stadiumstories/cricket-gateway/internal/config"
	"github.com/stadiumstories/cricket-gateway/internal/external"
	"github.com/stadiumstories/cricket-gateway/internal/provider/cashfree"
	"github.com/stadiumstories/cricket-gateway/internal/provider/cricapi"
	"github.com/stadiumstories/cricket-gateway/internal/user"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect the account store when configured. The gateway keeps serving
	// content routes without it; account routes answer 503.
	var users *user.Store
	if cfg.MongoURI != "" {
		connectCtx, connectCancel := context.WithTimeout(ctx, 10*time.Second)
		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
		if err == nil {
			err = client.Ping(connectCtx, nil)
		}
		connectCancel()
		if err != nil {
			logger.Warn("Account store unavailable, continuing without it", "error", err)
		} else {
			users = user.NewStore(client.Database(cfg.MongoDatabase))
			defer client.Disconnect(context.Background())
			logger.Info("Account store connected", "database", cfg.MongoDatabase)
		}
	} else {
		logger.Info("No MONGO_URI set, account routes disabled")
	}

	// Provider adapters
	cric := cricapi.NewClient(cfg.CricAPIBaseURL, cfg.CricAPIKey, logger)
	news := external.NewNewsService(cfg.NewsAPIBaseURL, cfg.NewsAPIKey)
	payments := cashfree.NewClient(cfg.CashfreeBaseURL, cfg.CashfreeAPIVersion, cfg.CashfreeAppID, cfg.CashfreeSecretKey)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)

	// Router. The handler treats a nil store as "accounts disabled", so the
	// interface must stay nil unless a store exists.
	var accountStore handler.AccountStore
	var userFinder api.UserFinder
	if users != nil {
		accountStore = users
		userFinder = users
	}
	h := handler.New(cfg, logger, cric, news, payments, accountStore, tokens)
	router := api.NewRouter(h, tokens, userFinder, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Stadium Stories API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
