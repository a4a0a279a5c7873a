// Package credstore provides durable secret storage for the client: the
// auth token and the cached user profile. Values are encrypted at rest
// and survive process restarts; the backing files are created with owner
// only permissions.
package credstore

import "context"

// Logical keys used by the session layer and the request pipeline.
const (
	KeyAuthToken   = "auth_token"
	KeyUserProfile = "user_profile"
)

// Store is a key-value secret store. Multi-key operations are atomic:
// either every key is written (or deleted), or none is.
type Store interface {
	// Get returns the stored value for key. The second return is false
	// when the key is absent; absence is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// SetMany stores all entries in a single transaction.
	SetMany(ctx context.Context, entries map[string]string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// DeleteMany removes all keys in a single transaction.
	DeleteMany(ctx context.Context, keys ...string) error

	// Close releases the underlying resources.
	Close() error
}
