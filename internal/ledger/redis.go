package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultRedisKey is the Redis set holding processed route ids.
	DefaultRedisKey = "hermes:processed_routes"

	redisPingTimeout = 5 * time.Second
)

// RedisStore keeps the ledger in a Redis set.
type RedisStore struct {
	client *redis.Client
	key    string
}

// ConnectRedis initialises a Redis client and validates connectivity with a ping.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// NewRedisStore creates a RedisStore using key for the set.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}

	return &RedisStore{client: client, key: key}
}

// Load returns the members of the ledger set, sorted.
func (rs *RedisStore) Load(ctx context.Context) ([]string, error) {
	ids, err := rs.client.SMembers(ctx, rs.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load processed routes: %w", err)
	}

	sort.Strings(ids)

	return ids, nil
}

// Save replaces the ledger set atomically (MULTI/EXEC).
func (rs *RedisStore) Save(ctx context.Context, ids []string) error {
	_, err := rs.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, rs.key)
		if len(ids) > 0 {
			members := make([]any, len(ids))
			for i, id := range ids {
				members[i] = id
			}
			pipe.SAdd(ctx, rs.key, members...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save processed routes: %w", err)
	}

	return nil
}

// Ping checks the Redis connection.
func (rs *RedisStore) Ping(ctx context.Context) error {
	return rs.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
