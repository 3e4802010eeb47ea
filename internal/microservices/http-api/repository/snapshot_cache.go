package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"bookplanner/internal/microservices/http-api/models"
)

const (
	booksSnapshotKey = "bookplanner:snapshot:books"
	goalsSnapshotKey = "bookplanner:snapshot:goals"
)

// SnapshotCache keeps the last successful read of books and goals in Redis
// so reads can still be answered when the database is unavailable. A nil
// cache, or one without a client, silently does nothing.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl}
}

// NewRedisClient connects to redisURL and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

func (c *SnapshotCache) SaveBooks(ctx context.Context, books []models.Book) error {
	return c.save(ctx, booksSnapshotKey, books)
}

// LoadBooks reports false when no snapshot exists.
func (c *SnapshotCache) LoadBooks(ctx context.Context) ([]models.Book, bool, error) {
	var books []models.Book
	ok, err := c.load(ctx, booksSnapshotKey, &books)
	return books, ok, err
}

func (c *SnapshotCache) SaveGoals(ctx context.Context, goals models.Goals) error {
	return c.save(ctx, goalsSnapshotKey, goals)
}

func (c *SnapshotCache) LoadGoals(ctx context.Context) (*models.Goals, bool, error) {
	var goals models.Goals
	ok, err := c.load(ctx, goalsSnapshotKey, &goals)
	if !ok {
		return nil, ok, err
	}
	return &goals, true, nil
}

func (c *SnapshotCache) Clear(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, booksSnapshotKey, goalsSnapshotKey).Err()
}

func (c *SnapshotCache) save(ctx context.Context, key string, v any) error {
	if c == nil || c.client == nil {
		return nil
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

func (c *SnapshotCache) load(ctx context.Context, key string, dst any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return false, fmt.Errorf("decode snapshot: %w", err)
	}
	return true, nil
}
