package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Store persists the set of processed route identifiers.
// Save replaces the whole persisted set with ids.
type Store interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, ids []string) error
	Ping(ctx context.Context) error
	Close() error
}

// Backend names a Store implementation.
type Backend string

const (
	// BackendFile keeps the ledger in a local JSON file.
	BackendFile Backend = "file"
	// BackendPostgres keeps the ledger in a PostgreSQL table.
	BackendPostgres Backend = "postgres"
	// BackendRedis keeps the ledger in a Redis set.
	BackendRedis Backend = "redis"
)

// ErrUnsupportedBackend is returned by NewStore for unknown backends.
var ErrUnsupportedBackend = errors.New("unsupported ledger backend")

// StoreConfig holds configuration for creating a ledger store.
type StoreConfig struct {
	Backend  Backend
	Path     string // JSON file path (file backend)
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   *slog.Logger
}

// PostgresConfig holds the connection details of the postgres backend.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// RedisConfig holds the connection details of the redis backend.
type RedisConfig struct {
	Addr string
	DB   int
	Key  string
}

// NewStore creates a ledger store based on the provided configuration.
func NewStore(ctx context.Context, config StoreConfig) (Store, error) {
	switch config.Backend {
	case BackendFile:
		return NewFileStore(config.Path), nil
	case BackendPostgres:
		pool, err := NewDatabase(ctx, config.Postgres)
		if err != nil {
			return nil, err
		}
		store := NewPostgresStore(pool, config.Logger)
		if err = store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil
	case BackendRedis:
		client, err := ConnectRedis(ctx, config.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, config.Redis.Key), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, config.Backend)
	}
}
