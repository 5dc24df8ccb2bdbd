// Command providercheck smoke-tests the gateway's upstream credentials.
//
// Usage:
//
//	providercheck all
//	providercheck cricapi
//	providercheck newsapi
//	providercheck cashfree
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/stadiumstories/cricket-gateway/internal/config"
	"github.com/stadiumstories/cricket-gateway/internal/external"
	"github.com/stadiumstories/cricket-gateway/internal/provider/cricapi"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "providercheck",
		Short: "Smoke-test upstream provider credentials",
	}

	root.AddCommand(cricAPICmd())
	root.AddCommand(newsAPICmd())
	root.AddCommand(cashfreeCmd())
	root.AddCommand(allCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load()
}

// --------------------------------------------------------------------------
// Per-provider checks
// --------------------------------------------------------------------------

func checkCricAPI(ctx context.Context, cfg *config.Config) error {
	if cfg.CricAPIKey == "" {
		return fmt.Errorf("CRIC_API_KEY is not set")
	}
	client := cricapi.NewClient(cfg.CricAPIBaseURL, cfg.CricAPIKey, logger)

	start := time.Now()
	data, err := client.Countries(ctx)
	if err != nil {
		return fmt.Errorf("countries call failed: %w", err)
	}
	logger.Info("cricapi ok", "duration", time.Since(start).Round(time.Millisecond), "bytes", len(data))
	return nil
}

func checkNewsAPI(ctx context.Context, cfg *config.Config) error {
	if cfg.NewsAPIKey == "" {
		return fmt.Errorf("NEWS_API_KEY is not set")
	}
	svc := external.NewNewsService(cfg.NewsAPIBaseURL, cfg.NewsAPIKey)

	start := time.Now()
	articles, err := svc.CricketNews(ctx)
	if err != nil {
		return fmt.Errorf("cricket news call failed: %w", err)
	}
	logger.Info("newsapi ok", "duration", time.Since(start).Round(time.Millisecond), "articles", len(articles))
	return nil
}

// checkCashfree only verifies configuration; creating a real payment link
// from a smoke test would leave junk links in the merchant dashboard.
func checkCashfree(_ context.Context, cfg *config.Config) error {
	if cfg.CashfreeAppID == "" || cfg.CashfreeSecretKey == "" {
		return fmt.Errorf("CF_APP_ID and CF_SECRET_KEY must both be set")
	}
	logger.Info("cashfree configured", "base_url", cfg.CashfreeBaseURL, "api_version", cfg.CashfreeAPIVersion)
	return nil
}

// --------------------------------------------------------------------------
// Commands
// --------------------------------------------------------------------------

func runCheck(check func(context.Context, *config.Config) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return check(ctx, cfg)
}

func cricAPICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cricapi",
		Short: "Verify the CricAPI key with a countries call",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(checkCricAPI)
		},
	}
}

func newsAPICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "newsapi",
		Short: "Verify the NewsAPI key with a cricket headline call",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(checkNewsAPI)
		},
	}
}

func cashfreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cashfree",
		Short: "Verify the Cashfree credentials are configured",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(checkCashfree)
		},
	}
}

func allCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run every provider check",
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := []struct {
				name  string
				check func(context.Context, *config.Config) error
			}{
				{"cricapi", checkCricAPI},
				{"newsapi", checkNewsAPI},
				{"cashfree", checkCashfree},
			}

			failed := 0
			for _, c := range checks {
				if err := runCheck(c.check); err != nil {
					logger.Error("check failed", "provider", c.name, "error", err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d provider check(s) failed", failed)
			}
			return nil
		},
	}
}
