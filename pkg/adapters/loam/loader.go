package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// Loader adapts the Loam library to the SuiteLoader interface.
type Loader struct {
	Repo *loam.TypedRepository[SuiteMetadata]
}

var _ ports.SuiteLoader = (*Loader)(nil)

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[SuiteMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes an unversioned Loam repository rooted at dir.
func Open(dir string) (*Loader, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve suite directory: %w", err)
	}
	repo, err := loam.Init(abs, loam.WithVersioning(false))
	if err != nil {
		return nil, fmt.Errorf("failed to open suite directory %s: %w", abs, err)
	}
	return New(loam.NewTypedRepository[SuiteMetadata](repo)), nil
}

// GetSuite loads a suite. Loam resolves the ID with or without the file extension.
func (l *Loader) GetSuite(ctx context.Context, id string) (*domain.Suite, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}
	if doc.Data.AutomataType == "" {
		return nil, fmt.Errorf("document %s is not a suite: missing automata_type", id)
	}

	suiteID := doc.Data.ID
	if suiteID == "" {
		suiteID = doc.ID
	}
	suite, err := doc.Data.Request(strings.TrimSpace(doc.Content)).Suite(trimExtension(suiteID))
	if err != nil {
		return nil, fmt.Errorf("suite %s: %w", id, err)
	}
	return suite, nil
}

// ListSuites lists the suite IDs in the repository, sorted. Documents
// without an automata_type are skipped.
func (l *Loader) ListSuites(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
		if doc.Data.AutomataType == "" {
			continue
		}
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: suite '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Save writes a suite document. The language description becomes the body.
func (l *Loader) Save(ctx context.Context, id string, meta SuiteMetadata) error {
	language := meta.Language
	meta.Language = ""
	return l.Repo.Save(ctx, &loam.DocumentModel[SuiteMetadata]{
		ID:      id,
		Content: language,
		Data:    meta,
	})
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
