package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/melodika/melodika-sync/internal/models"
)

// Memory implements Store in process memory. Used for tests and DSN-less
// runs where operators want to inspect a sync without a database.
type Memory struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{products: make(map[string]models.Product)}
}

func (m *Memory) Upsert(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = clone(*p)
	return nil
}

func (m *Memory) Create(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; ok {
		return fmt.Errorf("create product %s: %w", p.ID, ErrExists)
	}
	m.products[p.ID] = clone(*p)
	return nil
}

func (m *Memory) Update(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; !ok {
		return fmt.Errorf("update product %s: %w", p.ID, ErrNotFound)
	}
	m.products[p.ID] = clone(*p)
	return nil
}

func (m *Memory) FindUnique(_ context.Context, id string) (*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	p = clone(p)
	return &p, nil
}

func (m *Memory) FindMany(_ context.Context, limit int) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) Close() error { return nil }

// Len reports the number of stored records.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.products)
}

// clone deep-copies the slice fields so callers can't mutate stored state.
func clone(p models.Product) models.Product {
	p.Categories = append([]string(nil), p.Categories...)
	p.Images = append([]string(nil), p.Images...)
	if p.DiscountedPrice != nil {
		v := *p.DiscountedPrice
		p.DiscountedPrice = &v
	}
	return p
}
