// Package cache stores whole search results at the API layer. The
// extraction passes themselves never cache; a hit here skips the upstream
// round trips entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Weichen128/settour-tour-fare-scraper-data/internal/models"
)

type Cache interface {
	Get(ctx context.Context, req models.SearchRequest) ([]models.TripRecord, bool)
	Set(ctx context.Context, req models.SearchRequest, trips []models.TripRecord) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
		TTL:  10 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, req models.SearchRequest) ([]models.TripRecord, bool) {
	data, err := c.client.Get(ctx, generateKey(req)).Bytes()
	if err != nil {
		return nil, false
	}

	var trips []models.TripRecord
	if err := json.Unmarshal(data, &trips); err != nil {
		return nil, false
	}
	return trips, true
}

func (c *RedisCache) Set(ctx context.Context, req models.SearchRequest, trips []models.TripRecord) error {
	data, err := json.Marshal(trips)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, generateKey(req), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, req models.SearchRequest) ([]models.TripRecord, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, req models.SearchRequest, trips []models.TripRecord) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

// The key covers the route and both dates only; filters and sorting are
// applied after the cache.
func generateKey(req models.SearchRequest) string {
	keyData := struct {
		Origin        string
		Destination   string
		DepartureDate string
		ReturnDate    string
	}{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return "fare:" + hex.EncodeToString(hash[:])
}
