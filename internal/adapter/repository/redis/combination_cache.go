package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/goextrato/internal/domain"
	"github.com/iho/goextrato/internal/usecase"
)

// CacheObserver records cache hits and misses.
type CacheObserver interface {
	ObserveCache(cache string, hit bool)
}

const combinationCacheName = "combinations"

// CachedCombinations caches category-combination validity answers.
// Cache failures fall through to the wrapped repository.
type CachedCombinations struct {
	inner    usecase.CategoryCombinationRepository
	cache    usecase.Cache
	ttl      time.Duration
	observer CacheObserver
	logger   zerolog.Logger
}

// NewCachedCombinations wraps inner with cache. observer may be nil.
func NewCachedCombinations(
	inner usecase.CategoryCombinationRepository,
	cache usecase.Cache,
	ttl time.Duration,
	observer CacheObserver,
	logger zerolog.Logger,
) *CachedCombinations {
	return &CachedCombinations{
		inner:    inner,
		cache:    cache,
		ttl:      ttl,
		observer: observer,
		logger:   logger.With().Str("component", "combination_cache").Logger(),
	}
}

// IsValid answers from the cache when possible.
func (c *CachedCombinations) IsValid(ctx context.Context, group, subgroup, spendType string) (bool, error) {
	key := combinationKey(group, subgroup, spendType)

	cached, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		c.observe(true)
		return cached == "1", nil
	case !errors.Is(err, domain.ErrNotFound):
		c.logger.Warn().Err(err).Str("key", key).Msg("combination cache read failed")
	}
	c.observe(false)

	valid, err := c.inner.IsValid(ctx, group, subgroup, spendType)
	if err != nil {
		return false, err
	}

	value := "0"
	if valid {
		value = "1"
	}
	if err := c.cache.Set(ctx, key, value, c.ttl); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("combination cache write failed")
	}

	return valid, nil
}

func (c *CachedCombinations) observe(hit bool) {
	if c.observer != nil {
		c.observer.ObserveCache(combinationCacheName, hit)
	}
}

func combinationKey(group, subgroup, spendType string) string {
	return "combination:" + strings.Join([]string{group, subgroup, spendType}, "|")
}
