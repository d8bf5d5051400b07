// Package store persists canonical product records keyed by id.
package store

import (
	"context"
	"errors"
	"strings"

	"github.com/melodika/melodika-sync/internal/models"
)

// ErrNotFound is returned by FindUnique when no record matches.
var ErrNotFound = errors.New("product not found")

// ErrExists is returned by Create when the id is already taken.
var ErrExists = errors.New("product already exists")

// Store is the record-store boundary consumed by the pipeline and the read
// surfaces. Upsert is idempotent per id; concurrent upserts for different
// ids must not interfere.
type Store interface {
	Upsert(ctx context.Context, p *models.Product) error
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	FindUnique(ctx context.Context, id string) (*models.Product, error)
	FindMany(ctx context.Context, limit int) ([]models.Product, error)
	Close() error
}

// Open returns a store for the given DSN: "memory" (or empty) selects the
// in-memory store, anything else is treated as a Postgres DSN.
func Open(dsn string) (Store, error) {
	if dsn == "" || strings.EqualFold(dsn, "memory") {
		return NewMemory(), nil
	}
	return OpenPostgres(dsn)
}
