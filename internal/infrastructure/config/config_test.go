package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iho/goextrato/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("OCR_ENABLED", "")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "" {
		t.Fatalf("expected database URL default to be empty, got %q", cfg.DatabaseURL)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.HistoryMonths != 12 || cfg.NameMatchThreshold != 0.6 {
		t.Fatalf("unexpected classification defaults: months=%d threshold=%v", cfg.HistoryMonths, cfg.NameMatchThreshold)
	}

	if cfg.IdempotencyTTL != 24*time.Hour {
		t.Fatalf("expected idempotency TTL 24h, got %s", cfg.IdempotencyTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("HISTORY_MONTHS", "6")
	t.Setenv("OCR_ENABLED", "true")
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if cfg.HistoryMonths != 6 || !cfg.OCREnabled || cfg.GeminiAPIKey != "key" {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	os.Unsetenv("HTTP_PORT")
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("HTTP_PORT=7070\nLOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("HTTP_PORT")
		os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.HTTPPort != "7070" || cfg.LogLevel != "debug" {
		t.Fatalf("expected values from .env, got port=%s level=%s", cfg.HTTPPort, cfg.LogLevel)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero history", "HISTORY_MONTHS", "0"},
		{"threshold above one", "NAME_MATCH_THRESHOLD", "1.5"},
		{"negative upload limit", "MAX_UPLOAD_BYTES", "-1"},
		{"ocr without key", "OCR_ENABLED", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", "")
			t.Setenv(tt.key, tt.value)

			if _, err := config.Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
