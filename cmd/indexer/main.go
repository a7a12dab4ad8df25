// Command indexer runs one strict index rebuild and exits non-zero on
// failure. Intended for CI/build-verification pipelines, where a broken
// upstream must fail the build instead of silently publishing an empty or
// stale catalog.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/robertg761/showcase/internal/catalog"
	"github.com/robertg761/showcase/internal/config"
	"github.com/robertg761/showcase/internal/events"
	"github.com/robertg761/showcase/internal/githubapi"
)

const buildTimeout = 10 * time.Minute

func main() {
	_ = godotenv.Load()
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo})))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	// The indexer always verifies; degraded fallbacks are for the server.
	cfg.Strict = true

	client := githubapi.NewClient(cfg.GitHubToken)

	var pub catalog.IndexPublisher
	if cfg.NATSUrl != "" {
		p, err := events.Connect(cfg.NATSUrl, cfg.NATSSubject)
		if err != nil {
			slog.Error("Failed to connect to NATS", "url", cfg.NATSUrl, "error", err)
			os.Exit(1)
		}
		defer p.Close()
		pub = p
	}

	svc := catalog.New(cfg, client, pub)

	ctx, cancel := context.WithTimeout(context.Background(), buildTimeout)
	defer cancel()

	res, err := svc.Refresh(ctx)
	if err != nil {
		slog.Error("Index build failed", "error", err)
		os.Exit(1)
	}

	for _, warning := range res.Warnings {
		slog.Warn("Index build warning", "warning", warning)
	}
	slog.Info("Index built", "owner", cfg.GitHubOwner, "projects", len(res.Projects), "cache", cfg.CacheFile)
}
