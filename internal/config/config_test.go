package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		wantErr     bool
		expectedCfg *Config
	}{
		{
			name: "valid config with all env vars",
			envVars: map[string]string{
				"GITHUB_OWNER":   "testowner",
				"GITHUB_TOKEN":   "token123",
				"HTTP_ADDR":      ":9090",
				"CACHE_FILE":     "/tmp/projects.json",
				"CRON_SCHEDULE":  "@every 5m",
				"NATS_URL":       "nats://test:4222",
				"NATS_SUBJECT":   "test.projects",
				"RUN_ON_STARTUP": "true",
			},
			wantErr: false,
			expectedCfg: &Config{
				GitHubOwner:  "testowner",
				GitHubToken:  "token123",
				HTTPAddr:     ":9090",
				CacheFile:    "/tmp/projects.json",
				CronSchedule: "@every 5m",
				NATSUrl:      "nats://test:4222",
				NATSSubject:  "test.projects",
				RunOnStartup: true,
			},
		},
		{
			name:    "defaults with no env vars",
			envVars: map[string]string{},
			wantErr: false,
			expectedCfg: &Config{
				GitHubOwner:  "Robertg761",
				GitHubToken:  "",
				HTTPAddr:     ":8080",
				CacheFile:    ".cache/projects.json",
				CronSchedule: "@every 30m",
				NATSSubject:  "showcase.projects",
				RunOnStartup: true,
			},
		},
		{
			name: "missing token is allowed",
			envVars: map[string]string{
				"GITHUB_OWNER": "testowner",
			},
			wantErr: false,
			expectedCfg: &Config{
				GitHubOwner:  "testowner",
				GitHubToken:  "",
				HTTPAddr:     ":8080",
				CacheFile:    ".cache/projects.json",
				CronSchedule: "@every 30m",
				NATSSubject:  "showcase.projects",
				RunOnStartup: true,
			},
		},
		{
			name: "run on startup disabled",
			envVars: map[string]string{
				"GITHUB_OWNER":   "testowner",
				"RUN_ON_STARTUP": "false",
			},
			wantErr: false,
			expectedCfg: &Config{
				GitHubOwner:  "testowner",
				HTTPAddr:     ":8080",
				CacheFile:    ".cache/projects.json",
				CronSchedule: "@every 30m",
				NATSSubject:  "showcase.projects",
				RunOnStartup: false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			clearEnv()

			// Set test environment variables
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}

			defer clearEnv()

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Load() unexpected error: %v", err)
				return
			}

			if cfg.GitHubOwner != tt.expectedCfg.GitHubOwner {
				t.Errorf("GitHubOwner = %v, want %v", cfg.GitHubOwner, tt.expectedCfg.GitHubOwner)
			}
			if cfg.GitHubToken != tt.expectedCfg.GitHubToken {
				t.Errorf("GitHubToken = %v, want %v", cfg.GitHubToken, tt.expectedCfg.GitHubToken)
			}
			if cfg.HTTPAddr != tt.expectedCfg.HTTPAddr {
				t.Errorf("HTTPAddr = %v, want %v", cfg.HTTPAddr, tt.expectedCfg.HTTPAddr)
			}
			if cfg.CacheFile != tt.expectedCfg.CacheFile {
				t.Errorf("CacheFile = %v, want %v", cfg.CacheFile, tt.expectedCfg.CacheFile)
			}
			if cfg.CronSchedule != tt.expectedCfg.CronSchedule {
				t.Errorf("CronSchedule = %v, want %v", cfg.CronSchedule, tt.expectedCfg.CronSchedule)
			}
			if cfg.NATSUrl != tt.expectedCfg.NATSUrl {
				t.Errorf("NATSUrl = %v, want %v", cfg.NATSUrl, tt.expectedCfg.NATSUrl)
			}
			if cfg.NATSSubject != tt.expectedCfg.NATSSubject {
				t.Errorf("NATSSubject = %v, want %v", cfg.NATSSubject, tt.expectedCfg.NATSSubject)
			}
			if cfg.RunOnStartup != tt.expectedCfg.RunOnStartup {
				t.Errorf("RunOnStartup = %v, want %v", cfg.RunOnStartup, tt.expectedCfg.RunOnStartup)
			}
		})
	}
}

func TestLoadStrictMode(t *testing.T) {
	tests := []struct {
		name       string
		envVars    map[string]string
		wantStrict bool
	}{
		{
			name:       "default is lenient",
			envVars:    map[string]string{"GITHUB_OWNER": "testowner"},
			wantStrict: false,
		},
		{
			name:       "CI enables strict mode",
			envVars:    map[string]string{"GITHUB_OWNER": "testowner", "CI": "true"},
			wantStrict: true,
		},
		{
			name:       "STRICT_REFRESH enables strict mode",
			envVars:    map[string]string{"GITHUB_OWNER": "testowner", "STRICT_REFRESH": "true"},
			wantStrict: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv()
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}
			defer clearEnv()

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if cfg.Strict != tt.wantStrict {
				t.Errorf("Strict = %v, want %v", cfg.Strict, tt.wantStrict)
			}
		})
	}
}

func clearEnv() {
	envVars := []string{
		"GITHUB_OWNER", "GITHUB_TOKEN", "HTTP_ADDR", "CACHE_FILE",
		"CRON_SCHEDULE", "NATS_URL", "NATS_SUBJECT", "RUN_ON_STARTUP",
		"CI", "STRICT_REFRESH",
	}
	for _, env := range envVars {
		os.Unsetenv(env)
	}
}
