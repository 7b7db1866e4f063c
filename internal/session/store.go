// Package session owns authentication state for the catalog client: a single
// in-memory Session mirrored to one durable storage slot so it survives
// restarts. The slot holds the literal user record the account authenticated
// with, matching the backend's (insecure) credential model.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"catalog/internal/models"
)

var (
	// ErrInvalidStoreType is returned by NewStore for an unknown driver.
	ErrInvalidStoreType = errors.New("invalid session store type")
	// ErrInvalidConfig is returned when a driver is missing required options.
	ErrInvalidConfig = errors.New("invalid session store config")
)

// Store persists the single session slot across client restarts.
type Store interface {
	// Save writes the user record to the slot, replacing any previous value.
	Save(ctx context.Context, u models.User) error

	// Load reads the slot. An absent slot yields (nil, nil); a present but
	// malformed slot yields an error.
	Load(ctx context.Context) (*models.User, error)

	// Clear empties the slot. Clearing an already empty slot is not an error.
	Clear(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}

// StoreType selects a session store driver.
type StoreType string

const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeFile   StoreType = "file"
	StoreTypeRedis  StoreType = "redis"
)

// StoreOption is a functional option for configuring a session store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	filePath    string
	redisClient *redis.Client
	redisTTL    time.Duration
}

// WithFilePath sets the slot path for the file store.
func WithFilePath(path string) StoreOption {
	return func(c *storeConfig) {
		c.filePath = path
	}
}

// WithRedisClient sets the Redis client for the Redis store.
func WithRedisClient(client *redis.Client) StoreOption {
	return func(c *storeConfig) {
		c.redisClient = client
	}
}

// WithRedisTTL sets an expiry on the Redis slot. Zero means no expiry.
func WithRedisTTL(ttl time.Duration) StoreOption {
	return func(c *storeConfig) {
		c.redisTTL = ttl
	}
}

// NewStore creates a session store for the given driver type.
// The file driver requires WithFilePath; the Redis driver WithRedisClient.
func NewStore(storeType StoreType, opts ...StoreOption) (Store, error) {
	config := &storeConfig{}
	for _, opt := range opts {
		opt(config)
	}

	switch storeType {
	case StoreTypeMemory:
		return &memoryStore{}, nil

	case StoreTypeFile:
		if config.filePath == "" {
			return nil, ErrInvalidConfig
		}
		return &fileStore{path: config.filePath}, nil

	case StoreTypeRedis:
		if config.redisClient == nil {
			return nil, ErrInvalidConfig
		}
		return &redisStore{client: config.redisClient, ttl: config.redisTTL}, nil

	default:
		return nil, ErrInvalidStoreType
	}
}
