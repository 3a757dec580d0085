package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Database
	DatabaseURL      string        `env:"DATABASE_URL"       envDefault:""`
	DatabaseMaxConns int           `env:"DATABASE_MAX_CONNS" envDefault:"10"`
	DatabaseMinConns int           `env:"DATABASE_MIN_CONNS" envDefault:"1"`
	DatabaseTimeout  time.Duration `env:"DATABASE_TIMEOUT"   envDefault:"5s"`

	// Redis
	RedisURL      string `env:"REDIS_URL"       envDefault:""`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"0"`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"60s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"120s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxUploadBytes      int64         `env:"MAX_UPLOAD_BYTES"      envDefault:"20971520"`
	UploadsPerMinute    float64       `env:"UPLOADS_PER_MINUTE"    envDefault:"30"`
	UploadBurst         int           `env:"UPLOAD_BURST"          envDefault:"5"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Import idempotency and caching
	IdempotencyTTL      time.Duration `env:"IDEMPOTENCY_TTL"       envDefault:"24h"`
	CombinationCacheTTL time.Duration `env:"COMBINATION_CACHE_TTL" envDefault:"10m"`

	// Classification
	HistoryMonths      int     `env:"HISTORY_MONTHS"       envDefault:"12"`
	NameMatchThreshold float64 `env:"NAME_MATCH_THRESHOLD" envDefault:"0.6"`
	RulesFile          string  `env:"RULES_FILE"           envDefault:""`

	// OCR (optional - disabled unless enabled and a key is set)
	OCREnabled   bool   `env:"OCR_ENABLED"    envDefault:"false"`
	GeminiAPIKey string `env:"GEMINI_API_KEY" envDefault:""`
	GeminiModel  string `env:"GEMINI_MODEL"   envDefault:"gemini-2.5-flash"`
}

// Load reads .env files when present, then the environment.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c *Config) Validate() error {
	if c.HistoryMonths <= 0 {
		return fmt.Errorf("HISTORY_MONTHS must be positive, got %d", c.HistoryMonths)
	}
	if c.NameMatchThreshold <= 0 || c.NameMatchThreshold > 1 {
		return fmt.Errorf("NAME_MATCH_THRESHOLD must be in (0, 1], got %v", c.NameMatchThreshold)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	if c.OCREnabled && c.GeminiAPIKey == "" {
		return errors.New("OCR_ENABLED requires GEMINI_API_KEY")
	}
	return nil
}
