package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/garnizeh/talentdesk/pkg/repository"
)

// ErrCorrupt marks a stored value that exists but cannot be decoded.
var ErrCorrupt = errors.New("corrupt persisted state")

// Load decodes the JSON value under key into dst. It reports found=false for
// a missing key, and an error wrapping ErrCorrupt when the value is not valid
// JSON for dst.
func Load(ctx context.Context, kv repository.KeyValueStore, key string, dst any) (bool, error) {
	raw, found, err := kv.GetItem(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !found {
		return false, nil
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return true, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}

	return true, nil
}

// Save replaces the value under key with the JSON encoding of v.
func Save(ctx context.Context, kv repository.KeyValueStore, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := kv.SetItem(ctx, key, string(b)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}

	return nil
}
