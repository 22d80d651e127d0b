package mock

import (
	"context"
	"sync"

	"github.com/garnizeh/talentdesk/pkg/repository"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

// KVStore is an in-memory KeyValueStore for tests. Setting GetErr, SetErr or
// RemoveErr makes the matching operation fail.
type KVStore struct {
	mu        sync.Mutex
	items     map[string]string
	GetErr    error
	SetErr    error
	RemoveErr error
	Writes    int
}

func NewKVStore() *KVStore {
	return &KVStore{items: map[string]string{}}
}

func (m *KVStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *KVStore) SetItem(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.items[key] = value
	m.Writes++
	return nil
}

func (m *KVStore) RemoveItem(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	delete(m.items, key)
	return nil
}

// Put seeds a raw value without counting it as a write.
func (m *KVStore) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
}

// Raw returns the stored value for key.
func (m *KVStore) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok
}
