package metadata

import (
	"context"
)

// Repository is a small key/value store for local session state such as the
// signed-in email, the session id and the app-lock PIN hash.
type Repository interface {
	// Get returns (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// SetMany and DeleteMany apply all changes in one transaction.
	SetMany(ctx context.Context, pairs map[string][]byte) error
	DeleteMany(ctx context.Context, keys ...string) error
}
