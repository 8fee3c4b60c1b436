package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Cache хранит найденные координаты по нормализованному адресу
type Cache interface {
	Get(ctx context.Context, address string) (Result, bool, error)
	Set(ctx context.Context, address string, result Result) error
}

// RedisCache - Cache поверх Redis с ограниченным сроком жизни
type RedisCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{redisClient: client, ttl: ttl}
}

func cacheKey(address string) string {
	return fmt.Sprintf("geocode:%s", strings.ToLower(strings.TrimSpace(address)))
}

func (c *RedisCache) Get(ctx context.Context, address string) (Result, bool, error) {
	val, err := c.redisClient.Get(ctx, cacheKey(address)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Result{}, false, nil
		}
		return Result{}, false, fmt.Errorf("failed to get geocode from cache: %w", err)
	}

	var result Result
	if err := json.Unmarshal(val, &result); err != nil {
		return Result{}, false, fmt.Errorf("failed to unmarshal geocode from cache: %w", err)
	}
	return result, true, nil
}

func (c *RedisCache) Set(ctx context.Context, address string, result Result) error {
	val, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal geocode for cache: %w", err)
	}
	if err := c.redisClient.Set(ctx, cacheKey(address), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set geocode in cache: %w", err)
	}
	return nil
}

// Cached - декоратор Geocoder с кешем. Ошибки кеша не мешают геокодированию.
// Попадание в кеш помечается в Result.Cached, исходы считает вызывающий.
type Cached struct {
	inner  Geocoder
	cache  Cache
	logger *logrus.Logger
}

func NewCached(inner Geocoder, cache Cache, logger *logrus.Logger) *Cached {
	return &Cached{inner: inner, cache: cache, logger: logger}
}

func (c *Cached) Geocode(ctx context.Context, address string) (Result, error) {
	log := c.logger.WithField("address", address)

	cached, ok, err := c.cache.Get(ctx, address)
	if err != nil {
		log.WithError(err).Warn("Geocode cache lookup failed")
	} else if ok {
		cached.Cached = true
		return cached, nil
	}

	result, err := c.inner.Geocode(ctx, address)
	if err != nil {
		return result, err
	}
	// Кешируем только найденное, чтобы "не найдено" можно было перепроверить позже
	if result.Found {
		if err := c.cache.Set(ctx, address, result); err != nil {
			log.WithError(err).Warn("Failed to store geocode in cache")
		}
	}
	return result, nil
}
