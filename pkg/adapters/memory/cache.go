package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/automata/pkg/domain"
)

// Cache implements ports.VerdictCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string]bool
	mu   sync.RWMutex
}

// NewCache creates a new in-memory verdict cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]bool),
	}
}

// Save stores the verdict.
func (c *Cache) Save(ctx context.Context, key string, accepted bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = accepted
	return nil
}

// Load retrieves the verdict.
func (c *Cache) Load(ctx context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	accepted, ok := c.data[key]
	if !ok {
		return false, domain.ErrVerdictNotFound
	}
	return accepted, nil
}

// Delete removes the verdict.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// List returns the cached keys in ascending order.
func (c *Cache) List(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Len is the number of cached verdicts.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
