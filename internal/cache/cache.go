// FilePath: internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"

	"github.com/Kraikuppp/webmeter-hub/internal/config"
	"github.com/Kraikuppp/webmeter-hub/internal/models"
)

// Cache holds short-lived copies of upstream query results so repeated
// loads and the realtime poller do not hammer the meter API. Every
// cache failure degrades to a miss with a warn log; the caller falls
// through to a direct fetch.
type Cache struct {
	rdb         *redis.Client
	readingsTTL time.Duration
	snapshotTTL time.Duration
}

// New connects to redis and returns the cache.
func New(cfg config.RedisConfig, readingsTTL, snapshotTTL time.Duration) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Cache{rdb: rdb, readingsTTL: readingsTTL, snapshotTTL: snapshotTTL}
}

// Ping verifies the redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the redis connection.
func (c *Cache) Close() error {
	return c.rdb.Close()
}

// GetReadings returns the cached result for a readings query, if any.
func (c *Cache) GetReadings(ctx context.Context, key string) ([]models.Reading, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		nuts.L.Warnf("[Cache] Readings lookup failed: %v", err)
		return nil, false
	}
	var readings []models.Reading
	if err := json.Unmarshal(raw, &readings); err != nil {
		nuts.L.Warnf("[Cache] Corrupt readings entry %s: %v", key, err)
		return nil, false
	}
	return readings, true
}

// SetReadings stores a readings query result.
func (c *Cache) SetReadings(ctx context.Context, key string, readings []models.Reading) {
	raw, err := json.Marshal(readings)
	if err != nil {
		nuts.L.Warnf("[Cache] Failed to marshal readings: %v", err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.readingsTTL).Err(); err != nil {
		nuts.L.Warnf("[Cache] Failed to store readings: %v", err)
	}
}

// GetSnapshot returns the cached realtime snapshot for a meter.
func (c *Cache) GetSnapshot(ctx context.Context, meterID string) (*models.Reading, bool) {
	raw, err := c.rdb.Get(ctx, snapshotKey(meterID)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		nuts.L.Warnf("[Cache] Snapshot lookup failed: %v", err)
		return nil, false
	}
	var reading models.Reading
	if err := json.Unmarshal(raw, &reading); err != nil {
		nuts.L.Warnf("[Cache] Corrupt snapshot entry for meter %s: %v", meterID, err)
		return nil, false
	}
	return &reading, true
}

// SetSnapshot stores the latest realtime reading of a meter.
func (c *Cache) SetSnapshot(ctx context.Context, meterID string, reading *models.Reading) {
	raw, err := json.Marshal(reading)
	if err != nil {
		nuts.L.Warnf("[Cache] Failed to marshal snapshot: %v", err)
		return
	}
	if err := c.rdb.Set(ctx, snapshotKey(meterID), raw, c.snapshotTTL).Err(); err != nil {
		nuts.L.Warnf("[Cache] Failed to store snapshot: %v", err)
	}
}

func snapshotKey(meterID string) string {
	return "snapshot:" + meterID
}
