package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/automata/pkg/domain"
)

// Cache implements ports.VerdictCache using the local filesystem.
// It stores one small JSON file per verdict in a configured directory.
type Cache struct {
	BasePath string
}

type record struct {
	Accepted bool      `json:"accepted"`
	SavedAt  time.Time `json:"saved_at"`
}

// New creates a new Cache with the given base path.
// If basePath is empty, it defaults to ".automata/verdicts".
func New(basePath string) *Cache {
	if basePath == "" {
		basePath = filepath.Join(".automata", "verdicts")
	}
	return &Cache{BasePath: basePath}
}

func (c *Cache) path(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("key cannot be empty")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid cache key %q", key)
	}
	return filepath.Join(c.BasePath, key+".json"), nil
}

// Save persists the verdict atomically.
// It writes to a temporary file first, syncs it, and then renames it to the destination.
func (c *Cache) Save(ctx context.Context, key string, accepted bool) error {
	destPath, err := c.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure cache directory: %w", err)
	}

	data, err := json.Marshal(record{Accepted: accepted, SavedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}

	// Same directory, so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(c.BasePath, "tmp-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing verdict for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load retrieves the verdict from its JSON file.
func (c *Cache) Load(ctx context.Context, key string) (bool, error) {
	filePath, err := c.path(key)
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, domain.ErrVerdictNotFound
		}
		return false, fmt.Errorf("failed to read verdict file: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return false, fmt.Errorf("failed to unmarshal verdict: %w", err)
	}
	return rec.Accepted, nil
}

// Delete removes the verdict file.
func (c *Cache) Delete(ctx context.Context, key string) error {
	filePath, err := c.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete verdict file: %w", err)
	}
	return nil
}

// List returns all cached keys.
func (c *Cache) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(c.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list verdicts: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || strings.HasPrefix(name, "tmp-") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(keys)
	return keys, nil
}
