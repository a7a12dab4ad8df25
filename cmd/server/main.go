package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/robfig/cron/v3"

	"github.com/robertg761/showcase/internal/catalog"
	"github.com/robertg761/showcase/internal/config"
	"github.com/robertg761/showcase/internal/events"
	"github.com/robertg761/showcase/internal/githubapi"
	"github.com/robertg761/showcase/internal/server"
)

const refreshTimeout = 5 * time.Minute

func main() {
	_ = godotenv.Load()
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo})))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	client := githubapi.NewClient(cfg.GitHubToken)

	// NATS publishing is optional
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

	// Schedule background index refreshes
	c := cron.New()
	_, err = c.AddFunc(cfg.CronSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		if _, err := svc.Refresh(ctx); err != nil {
			slog.Error("Scheduled index refresh failed", "error", err)
		}
	})
	if err != nil {
		slog.Error("Failed to add cron job", "schedule", cfg.CronSchedule, "error", err)
		os.Exit(1)
	}
	c.Start()
	slog.Info("Refresh schedule started", "schedule", cfg.CronSchedule)

	// Warm the index on startup if configured
	if cfg.RunOnStartup {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
			defer cancel()

			if _, err := svc.Refresh(ctx); err != nil {
				slog.Error("Initial index refresh failed", "error", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.New(svc).Handler(),
	}

	go func() {
		slog.Info("HTTP server listening", "addr", cfg.HTTPAddr, "owner", cfg.GitHubOwner)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
	c.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err)
	}
}
