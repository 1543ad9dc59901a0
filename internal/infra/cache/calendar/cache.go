// Package calendar Redis-кеш собранных снимков календаря.
// Снимок хранится как сериализованный JSON ответа use case; инвалидация -
// по TTL и по событиям изменения бронирований (см. internal/infra/events).
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m0rven/STR-PropertyManager/pkg/metrics"
	"github.com/m0rven/STR-PropertyManager/pkg/types"
)

const cacheName = "calendar"

// ErrCacheMiss возвращается, когда снимка в кеше нет
var ErrCacheMiss = errors.New("calendar.cache: cache miss")

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// Cache кеш снимков календаря поверх Redis
type Cache struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
	log     Logger
}

// New создает кеш календаря. metrics может быть nil, если метрики выключены.
func New(client *redis.Client, ttl time.Duration, m *metrics.Metrics, log Logger) *Cache {
	return &Cache{
		client:  client,
		ttl:     ttl,
		metrics: m,
		log:     log,
	}
}

// Get возвращает сериализованный снимок календаря или ErrCacheMiss
func (c *Cache) Get(ctx context.Context, ownerID int64, from, to types.DateString, propertyID *int64) ([]byte, error) {
	payload, err := c.client.Get(ctx, key(ownerID, from, to, propertyID)).Bytes()
	if err == redis.Nil {
		c.observeMiss()
		return nil, ErrCacheMiss
	}
	if err != nil {
		// Деградируем до пересборки снимка, ошибку кеша наружу не поднимаем
		c.log.Warn("calendar cache: get failed: %v", err)
		c.observeMiss()
		return nil, ErrCacheMiss
	}

	c.observeHit()
	return payload, nil
}

// Set сохраняет сериализованный снимок календаря с TTL
func (c *Cache) Set(ctx context.Context, ownerID int64, from, to types.DateString, propertyID *int64, payload []byte) {
	if err := c.client.Set(ctx, key(ownerID, from, to, propertyID), payload, c.ttl).Err(); err != nil {
		c.log.Warn("calendar cache: set failed: %v", err)
	}
}

// InvalidateOwner удаляет все снимки календаря владельца.
// Вызывается консьюмером событий при любом изменении бронирований.
func (c *Cache) InvalidateOwner(ctx context.Context, ownerID int64) error {
	pattern := fmt.Sprintf("calendar:%d:*", ownerID)

	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("calendar.cache: scan failed: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("calendar.cache: del failed: %w", err)
	}

	c.log.Debug("calendar cache: invalidated %d keys for owner=%d", len(keys), ownerID)
	return nil
}

func (c *Cache) observeHit() {
	if c.metrics != nil {
		c.metrics.CacheHitsTotal.WithLabelValues(cacheName).Inc()
	}
}

func (c *Cache) observeMiss() {
	if c.metrics != nil {
		c.metrics.CacheMissesTotal.WithLabelValues(cacheName).Inc()
	}
}

func key(ownerID int64, from, to types.DateString, propertyID *int64) string {
	scope := "all"
	if propertyID != nil {
		scope = fmt.Sprintf("%d", *propertyID)
	}
	return fmt.Sprintf("calendar:%d:%s:%s:%s", ownerID, from, to, scope)
}
