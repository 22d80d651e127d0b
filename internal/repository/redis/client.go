package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/garnizeh/talentdesk/pkg/repository"
	goredis "github.com/redis/go-redis/v9"
)

// KVStore implements repository.KeyValueStore with plain Redis strings.
// Keys are used as given; wrap the store with storage.WithPrefix to share a
// server between portals.
type KVStore struct {
	rdb    *goredis.Client
	logger *slog.Logger
}

var _ repository.KeyValueStore = (*KVStore)(nil)

// NewClient parses a redis:// URL and verifies the server answers a PING.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return rdb, nil
}

func New(rdb *goredis.Client, logger *slog.Logger) *KVStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &KVStore{rdb: rdb, logger: logger}
}

func (s *KVStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return v, true, nil
}

func (s *KVStore) SetItem(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	s.logger.Debug("kv: set", slog.String("key", key), slog.Int("bytes", len(value)))
	return nil
}

func (s *KVStore) RemoveItem(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// Close closes the Redis connection
func (s *KVStore) Close() error {
	return s.rdb.Close()
}
