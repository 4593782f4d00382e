// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"strings"
	"testing"
)

// clearEnv blanks every variable Load reads so tests see pure defaults.
// envOrDefault treats the empty string the same as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"APP_HOST", "APP_PORT", "APP_ENV",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD",
		"WRITE_RATE_LIMIT",
	}
	for _, key := range envVars {
		t.Setenv(key, "")
	}
}

// TestLoad_Defaults verifies that Load returns sensible development defaults
// when no environment variables are set.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.DBName != "talkpress" {
		t.Errorf("DBName = %q, want %q", cfg.DBName, "talkpress")
	}
	if cfg.WriteRateLimit != 30 {
		t.Errorf("WriteRateLimit = %d, want 30", cfg.WriteRateLimit)
	}
	if !cfg.IsDev() {
		t.Error("IsDev() = false, want true for default config")
	}
}

// TestLoad_ProductionRequiresPassword verifies that production mode refuses
// to start with the development placeholder password.
func TestLoad_ProductionRequiresPassword(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("Load() in production with default password should fail")
	}

	t.Setenv("POSTGRES_PASSWORD", "real-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with explicit password returned error: %v", err)
	}
	if cfg.IsDev() {
		t.Error("IsDev() = true in production mode")
	}
}

// TestLoad_EnvOverrides verifies environment variables take precedence.
func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9999")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("WRITE_RATE_LIMIT", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9999")
	}
	if cfg.WriteRateLimit != 5 {
		t.Errorf("WriteRateLimit = %d, want 5", cfg.WriteRateLimit)
	}
	if got := cfg.Addr(); !strings.HasSuffix(got, ":9999") {
		t.Errorf("Addr() = %q, want suffix %q", got, ":9999")
	}
	if got := cfg.DSN(); !strings.Contains(got, "db.internal") {
		t.Errorf("DSN() = %q, want it to contain %q", got, "db.internal")
	}
}

// TestLoad_InvalidRateLimit verifies the sanity check on the rate limit.
func TestLoad_InvalidRateLimit(t *testing.T) {
	clearEnv(t)
	t.Setenv("WRITE_RATE_LIMIT", "0")

	if _, err := Load(); err == nil {
		t.Fatal("Load() with WRITE_RATE_LIMIT=0 should fail")
	}
}
