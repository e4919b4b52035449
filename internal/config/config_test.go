// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

package config

import (
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults failed validation: %v", err)
	}
	if cfg.Server.Port != 3858 {
		t.Errorf("default port = %d, want 3858", cfg.Server.Port)
	}
	if cfg.Upload.MaxBytes != 32<<20 {
		t.Errorf("default upload limit = %d, want 32MB", cfg.Upload.MaxBytes)
	}
	if cfg.Insights.MinTrendCohorts != 6 {
		t.Errorf("default min trend cohorts = %d, want 6", cfg.Insights.MinTrendCohorts)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"timeout zero", func(c *Config) { c.Server.Timeout = 0 }},
		{"upload limit zero", func(c *Config) { c.Upload.MaxBytes = 0 }},
		{"ttl negative", func(c *Config) { c.Upload.TTL = -time.Second }},
		{"max stored zero", func(c *Config) { c.Upload.MaxStored = 0 }},
		{"rate limit reqs zero", func(c *Config) { c.Security.RateLimitReqs = 0 }},
		{"trend cohorts too low", func(c *Config) { c.Insights.MinTrendCohorts = 5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() accepted an invalid config")
			}
		})
	}
}

func TestValidateAllowsDisabledRateLimit(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Security.RateLimitDisabled = true
	cfg.Security.RateLimitReqs = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() rejected disabled rate limiting: %v", err)
	}
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"UPLOAD_MAX_BYTES", "upload.max_bytes"},
		{"UPLOAD_TTL", "upload.ttl"},
		{"RATE_LIMIT_REQUESTS", "security.rate_limit_reqs"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"LOG_LEVEL", "logging.level"},
		{"INSIGHTS_MIN_TREND_COHORTS", "insights.min_trend_cohorts"},
		{"HOME", ""},
		{"RANDOM_VAR", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%s) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "4000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("port = %d, want 4000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[0] != "https://a.example" {
		t.Errorf("cors origins = %v", cfg.Security.CORSOrigins)
	}
}
