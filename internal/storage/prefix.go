package storage

import (
	"context"

	"github.com/garnizeh/talentdesk/pkg/repository"
)

type prefixed struct {
	kv     repository.KeyValueStore
	prefix string
}

// WithPrefix namespaces every key of kv under prefix + ":". An empty prefix
// returns kv unchanged.
func WithPrefix(kv repository.KeyValueStore, prefix string) repository.KeyValueStore {
	if prefix == "" {
		return kv
	}
	return &prefixed{kv: kv, prefix: prefix + ":"}
}

func (p *prefixed) GetItem(ctx context.Context, key string) (string, bool, error) {
	return p.kv.GetItem(ctx, p.prefix+key)
}

func (p *prefixed) SetItem(ctx context.Context, key, value string) error {
	return p.kv.SetItem(ctx, p.prefix+key, value)
}

func (p *prefixed) RemoveItem(ctx context.Context, key string) error {
	return p.kv.RemoveItem(ctx, p.prefix+key)
}
