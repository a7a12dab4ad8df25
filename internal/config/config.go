package config

import (
	"fmt"
	"os"
)

// Config holds the application configuration
type Config struct {
	GitHubOwner  string
	GitHubToken  string
	HTTPAddr     string
	CacheFile    string
	CronSchedule string
	RunOnStartup bool
	// Strict mode: a failed index rebuild is fatal instead of degrading to
	// the cache or an empty listing. Enabled in CI so a broken upstream
	// cannot silently publish an empty catalog.
	Strict bool
	// NATS publishing is optional; an empty URL disables it.
	NATSUrl     string
	NATSSubject string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		GitHubOwner:  os.Getenv("GITHUB_OWNER"),
		GitHubToken:  os.Getenv("GITHUB_TOKEN"),
		HTTPAddr:     os.Getenv("HTTP_ADDR"),
		CacheFile:    os.Getenv("CACHE_FILE"),
		CronSchedule: os.Getenv("CRON_SCHEDULE"),
		NATSUrl:      os.Getenv("NATS_URL"),
		NATSSubject:  os.Getenv("NATS_SUBJECT"),
	}

	// Set defaults
	if cfg.GitHubOwner == "" {
		cfg.GitHubOwner = "Robertg761"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.CacheFile == "" {
		cfg.CacheFile = ".cache/projects.json"
	}
	if cfg.CronSchedule == "" {
		cfg.CronSchedule = "@every 30m"
	}
	if cfg.NATSSubject == "" {
		cfg.NATSSubject = "showcase.projects"
	}

	// Validate required fields. An absent GITHUB_TOKEN is allowed and means
	// unauthenticated (rate-limited) API access.
	if cfg.GitHubOwner == "" {
		return nil, fmt.Errorf("GITHUB_OWNER environment variable is required")
	}

	// Check if we should warm the index on startup (default: true)
	if os.Getenv("RUN_ON_STARTUP") == "false" {
		cfg.RunOnStartup = false
	} else {
		cfg.RunOnStartup = true
	}

	// Check for a build-verification context
	if os.Getenv("CI") == "true" || os.Getenv("STRICT_REFRESH") == "true" {
		cfg.Strict = true
	}

	return cfg, nil
}
