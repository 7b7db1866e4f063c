// Package app wires the catalog client together: configuration, logging, the
// resource clients for the two backend collections, the cache coordinator,
// id allocation and session management.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"catalog/internal/api"
	"catalog/internal/cache"
	"catalog/internal/config"
	"catalog/internal/ident"
	"catalog/internal/models"
	"catalog/internal/session"
)

const (
	resourceBooks = "books"
	resourceUsers = "users"
)

// App represents the catalog client
type App struct {
	config   *config.Config
	logger   *zap.Logger
	books    *api.Client[models.Book]
	users    *api.Client[models.User]
	cache    *cache.Coordinator
	alloc    *ident.Allocator
	sessions *session.Manager
	store    session.Store
}

// New creates and initializes a client instance from the environment. The
// persisted session, if any, is restored before New returns.
func New() (*App, error) {
	// Load .env file if it exists; system environment wins otherwise
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}

	return newApp(cfg, logger, store), nil
}

// newApp assembles the client from already-built dependencies. Tests use it
// directly with a memory store and a test backend.
func newApp(cfg *config.Config, logger *zap.Logger, store session.Store) *App {
	httpc := &http.Client{Timeout: cfg.HTTPTimeout}
	books := api.NewClient[models.Book](cfg.APIBaseURL, resourceBooks, httpc, logger)
	users := api.NewClient[models.User](cfg.APIBaseURL, resourceUsers, httpc, logger)

	a := &App{
		config:   cfg,
		logger:   logger,
		books:    books,
		users:    users,
		cache:    cache.New(logger),
		alloc:    ident.New(books, users),
		sessions: session.NewManager(users, store, session.PlainVerifier{}, logger),
		store:    store,
	}
	a.sessions.Restore(context.Background())
	return a
}

// Close releases held resources.
func (a *App) Close() error {
	_ = a.logger.Sync()
	if err := a.store.Close(); err != nil {
		return fmt.Errorf("failed to close session store: %w", err)
	}
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

func newSessionStore(cfg *config.Config) (session.Store, error) {
	switch cfg.SessionStore {
	case "memory":
		return session.NewStore(session.StoreTypeMemory)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return session.NewStore(session.StoreTypeRedis, session.WithRedisClient(client))
	default:
		return session.NewStore(session.StoreTypeFile, session.WithFilePath(cfg.SessionFile))
	}
}
