package repository

import "context"

// KeyValueStore is the durable, string-keyed storage the portal keeps all of
// its state in. Implementations must be synchronous: a successful SetItem is
// visible to the next GetItem. Concrete backends live under internal/.
type KeyValueStore interface {
	// GetItem returns the value stored under key. found is false when the
	// key does not exist; that is not an error.
	GetItem(ctx context.Context, key string) (value string, found bool, err error)
	SetItem(ctx context.Context, key, value string) error
	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error
}
