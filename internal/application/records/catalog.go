package records

import (
	"context"
	"sync"

	"github.com/quangxuan98765/data-processing-api/internal/application/ports"
	"github.com/quangxuan98765/data-processing-api/internal/domain"
)

// SourceCatalog is a read-through cache over the financial source tables,
// keyed per record kind. It replaces the process-global name→id maps the
// legacy services kept: the cache is owned by the service instance, populated
// lazily on first use, and refreshed explicitly.
type SourceCatalog struct {
	repo ports.FinancialRepository

	mu     sync.RWMutex
	byName map[domain.RecordKind]map[string]int
	byID   map[domain.RecordKind]map[int]string
}

func NewSourceCatalog(repo ports.FinancialRepository) *SourceCatalog {
	return &SourceCatalog{
		repo:   repo,
		byName: make(map[domain.RecordKind]map[string]int),
		byID:   make(map[domain.RecordKind]map[int]string),
	}
}

// IDByName resolves a source name to its id. ok is false for unknown names.
func (c *SourceCatalog) IDByName(ctx context.Context, kind domain.RecordKind, name string) (id int, ok bool, err error) {
	if err := c.ensure(ctx, kind); err != nil {
		return 0, false, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok = c.byName[kind][name]
	return id, ok, nil
}

// NameByID resolves a source id to its display name; empty for unknown ids.
func (c *SourceCatalog) NameByID(ctx context.Context, kind domain.RecordKind, id int) (string, error) {
	if err := c.ensure(ctx, kind); err != nil {
		return "", err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byID[kind][id], nil
}

// Refresh reloads the catalog for kind from the store.
func (c *SourceCatalog) Refresh(ctx context.Context, kind domain.RecordKind) error {
	sources, err := c.repo.ListSources(ctx, kind)
	if err != nil {
		return err
	}
	names := make(map[string]int, len(sources))
	ids := make(map[int]string, len(sources))
	for _, s := range sources {
		names[s.Name] = s.ID
		ids[s.ID] = s.Name
	}
	c.mu.Lock()
	c.byName[kind] = names
	c.byID[kind] = ids
	c.mu.Unlock()
	return nil
}

func (c *SourceCatalog) ensure(ctx context.Context, kind domain.RecordKind) error {
	c.mu.RLock()
	_, loaded := c.byName[kind]
	c.mu.RUnlock()
	if loaded {
		return nil
	}
	return c.Refresh(ctx, kind)
}
