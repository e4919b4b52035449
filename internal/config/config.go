// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

// Package config loads and validates application configuration from
// layered sources with clear precedence: environment variables over an
// optional YAML config file over built-in defaults.
package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/cohortpulse/internal/analytics"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig                `koanf:"server"`
	Upload   UploadConfig                `koanf:"upload"`
	Security SecurityConfig              `koanf:"security"`
	Logging  LoggingConfig               `koanf:"logging"`
	Insights analytics.InsightThresholds `koanf:"insights"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the listen address. Default: 0.0.0.0
	Host string `koanf:"host"`

	// Port is the listen port. Default: 3858
	Port int `koanf:"port"`

	// Timeout bounds request read and write. Default: 30s
	Timeout time.Duration `koanf:"timeout"`
}

// UploadConfig bounds uploaded datasets and their retention.
type UploadConfig struct {
	// MaxBytes is the maximum accepted upload size. Default: 32MB
	MaxBytes int64 `koanf:"max_bytes"`

	// TTL is how long a stored claims upload stays queryable before
	// the store evicts it. Default: 1h
	TTL time.Duration `koanf:"ttl"`

	// MaxStored caps the number of concurrently retained claims
	// uploads. Default: 64
	MaxStored int `koanf:"max_stored"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	// CORSOrigins lists allowed CORS origins. Default: ["*"]
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitReqs is the number of requests allowed per window per
	// client IP. Default: 100
	RateLimitReqs int `koanf:"rate_limit_reqs"`

	// RateLimitWindow is the rate limit window. Default: 1m
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// RateLimitDisabled turns off rate limiting entirely.
	RateLimitDisabled bool `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level. Default: info
	Level string `koanf:"level"`

	// Format is json or console. Default: json
	Format string `koanf:"format"`

	// Caller includes file and line in log entries.
	Caller bool `koanf:"caller"`
}

// Validate checks configuration invariants that would otherwise
// surface as confusing runtime failures.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be positive, got %d", c.Upload.MaxBytes)
	}
	if c.Upload.TTL <= 0 {
		return fmt.Errorf("upload.ttl must be positive, got %s", c.Upload.TTL)
	}
	if c.Upload.MaxStored <= 0 {
		return fmt.Errorf("upload.max_stored must be positive, got %d", c.Upload.MaxStored)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}
	if c.Insights.MinTrendCohorts < 6 {
		return fmt.Errorf("insights.min_trend_cohorts must be at least 6, got %d", c.Insights.MinTrendCohorts)
	}
	return nil
}
