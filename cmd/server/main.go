package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/goextrato/internal/adapter/http"
	"github.com/iho/goextrato/internal/adapter/http/handler"
	"github.com/iho/goextrato/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/goextrato/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/goextrato/internal/adapter/repository/redis"
	"github.com/iho/goextrato/internal/extractor"
	"github.com/iho/goextrato/internal/infrastructure/config"
	"github.com/iho/goextrato/internal/infrastructure/logger"
	"github.com/iho/goextrato/internal/infrastructure/metrics"
	"github.com/iho/goextrato/internal/infrastructure/ocr"
	"github.com/iho/goextrato/internal/infrastructure/postgres"
	"github.com/iho/goextrato/internal/infrastructure/redis"
	"github.com/iho/goextrato/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

// deps holds the optional backing services.
type deps struct {
	pool  *pgxpool.Pool
	redis *goredis.Client
}

func (d deps) close() {
	if d.pool != nil {
		d.pool.Close()
	}
	if d.redis != nil {
		d.redis.Close()
	}
}

func connect(ctx context.Context, cfg *config.Config, log zerolog.Logger) (deps, error) {
	var d deps

	if cfg.DatabaseURL != "" {
		pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
			DatabaseURL:    cfg.DatabaseURL,
			MaxConns:       cfg.DatabaseMaxConns,
			MinConns:       cfg.DatabaseMinConns,
			ConnectTimeout: cfg.DatabaseTimeout,
		})
		if err != nil {
			return d, err
		}
		d.pool = pool
		log.Info().Msg("connected to postgres")
	} else {
		log.Warn().Msg("DATABASE_URL not set, classifying without collaborators")
	}

	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, redis.ClientConfig{
			URL:         cfg.RedisURL,
			PingTimeout: cfg.DatabaseTimeout,
			PoolSize:    cfg.RedisPoolSize,
		})
		if err != nil {
			d.close()
			return deps{}, err
		}
		d.redis = client
		log.Info().Msg("connected to redis")
	}

	return d, nil
}

func buildIngest(ctx context.Context, cfg *config.Config, d deps, m *metrics.Metrics, log zerolog.Logger) (*usecase.IngestUseCase, error) {
	var opts extractor.Options
	if cfg.OCREnabled {
		client, err := ocr.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		opts.OCR = ocr.NewGeminiEngine(client.Models, cfg.GeminiModel)
		log.Info().Str("model", cfg.GeminiModel).Msg("ocr enabled")
	}
	registry := extractor.NewDefaultRegistry(log, opts)

	var observer usecase.Observer = usecase.NopObserver{}
	var cacheObserver redisRepo.CacheObserver
	if m != nil {
		observer = m
		cacheObserver = m
	}

	rules := usecase.DefaultRuleSet()
	if cfg.RulesFile != "" {
		loaded, err := usecase.LoadRuleSet(cfg.RulesFile)
		if err != nil {
			return nil, err
		}
		rules = loaded
	}

	var collab usecase.Collaborators
	var retrier usecase.Retrier
	if d.pool != nil {
		collab = postgresRepo.NewCollaborators(d.pool)
		retrier = postgresRepo.NewRetrier(log)
	}

	var idempotency usecase.IdempotencyStore
	if d.redis != nil {
		idempotency = redisRepo.NewIdempotencyStore(d.redis)
		if collab.Combinations != nil {
			collab.Combinations = redisRepo.NewCachedCombinations(
				collab.Combinations, redisRepo.NewCache(d.redis), cfg.CombinationCacheTTL, cacheObserver, log,
			)
		}
	}

	classifier := usecase.NewCascadeClassifier(collab, rules, usecase.ClassifierOptions{
		HistoryMonths:      cfg.HistoryMonths,
		NameMatchThreshold: cfg.NameMatchThreshold,
		Retrier:            retrier,
		Observer:           observer,
	}, log)

	return usecase.NewIngestUseCase(
		registry,
		classifier,
		postgresRepo.NewULIDGenerator(),
		idempotency,
		cfg.IdempotencyTTL,
		observer,
		log,
	), nil
}

func healthDeps(d deps) map[string]handler.Pinger {
	checks := map[string]handler.Pinger{"postgres": nil, "redis": nil}
	if d.pool != nil {
		checks["postgres"] = d.pool
	}
	if d.redis != nil {
		client := d.redis
		checks["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}
	return checks
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	d, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer d.close()

	m := metrics.New()

	ingest, err := buildIngest(ctx, cfg, d, m, log)
	if err != nil {
		return err
	}

	limiter := middleware.NewUploadLimiter(cfg.UploadsPerMinute, cfg.UploadBurst)
	go pruneLimiter(ctx, limiter)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ImportHandler: handler.NewImportHandler(ingest, cfg.MaxUploadBytes, log),
		HealthHandler: handler.NewHealthHandler(healthDeps(d)),
		Metrics:       m,
		UploadLimiter: limiter,
		Logger:        log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

func pruneLimiter(ctx context.Context, limiter *middleware.UploadLimiter) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Prune()
		}
	}
}
