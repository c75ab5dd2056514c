package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/automata/pkg/domain"
)

// Loader implements ports.SuiteLoader using an in-memory map.
type Loader struct {
	suites map[string]*domain.Suite
}

// NewFromSuites creates a new Loader from domain objects.
func NewFromSuites(suites ...*domain.Suite) (*Loader, error) {
	data := make(map[string]*domain.Suite, len(suites))
	for _, s := range suites {
		if s == nil || s.ID == "" {
			return nil, fmt.Errorf("suite missing ID")
		}
		if _, dup := data[s.ID]; dup {
			return nil, fmt.Errorf("duplicate suite ID: %s", s.ID)
		}
		data[s.ID] = s
	}
	return &Loader{suites: data}, nil
}

// GetSuite retrieves a suite by ID.
func (l *Loader) GetSuite(ctx context.Context, id string) (*domain.Suite, error) {
	s, ok := l.suites[id]
	if !ok {
		return nil, fmt.Errorf("suite not found: %s", id)
	}
	return s, nil
}

// ListSuites returns all available suite IDs.
func (l *Loader) ListSuites(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(l.suites))
	for k := range l.suites {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
