package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/garnizeh/talentdesk/internal/db"
	"github.com/garnizeh/talentdesk/pkg/repository"
)

// KVStore implements repository.KeyValueStore on the kv_entries table.
type KVStore struct {
	conn   *db.DB
	logger *slog.Logger
}

var _ repository.KeyValueStore = (*KVStore)(nil)

func New(conn *db.DB, logger *slog.Logger) *KVStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &KVStore{conn: conn, logger: logger}
}

func (r *KVStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.conn.QueryRow(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}

	return value, true, nil
}

func (r *KVStore) SetItem(ctx context.Context, key, value string) error {
	_, err := r.conn.Exec(ctx, `INSERT INTO kv_entries (key, value, updated) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated = excluded.updated`, key, value, now())
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}

	r.logger.Debug("kv: set", slog.String("key", key), slog.Int("bytes", len(value)))
	return nil
}

func (r *KVStore) RemoveItem(ctx context.Context, key string) error {
	if _, err := r.conn.Exec(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}
