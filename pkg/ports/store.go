package ports

import (
	"context"
)

// VerdictCache defines the interface for memoizing verdicts.
// Keys are opaque digests of (variant, description, word).
type VerdictCache interface {
	// Save persists the verdict for a key.
	Save(ctx context.Context, key string, accepted bool) error

	// Load retrieves the verdict for a key.
	// Returns domain.ErrVerdictNotFound if the key is unknown.
	Load(ctx context.Context, key string) (bool, error)

	// Delete removes the verdict for a key.
	Delete(ctx context.Context, key string) error

	// List returns the keys currently cached.
	List(ctx context.Context) ([]string, error)
}
