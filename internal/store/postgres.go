package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/melodika/melodika-sync/internal/models"
)

const productColumns = `id, name, description, price, discounted_price, stock,
	brand, categories, images, currency, url`

// Postgres implements Store on a PostgreSQL database.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects to the database and ensures the products table
// exists.
func OpenPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &Postgres{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Postgres) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id               text PRIMARY KEY,
			name             text NOT NULL,
			description      text NOT NULL DEFAULT '',
			price            double precision NOT NULL DEFAULT 0,
			discounted_price double precision,
			stock            integer NOT NULL DEFAULT 0,
			brand            text NOT NULL DEFAULT '',
			categories       text[] NOT NULL DEFAULT '{}',
			images           text[] NOT NULL DEFAULT '{}',
			currency         text NOT NULL DEFAULT 'TRY',
			url              text NOT NULL DEFAULT '',
			updated_at       timestamptz NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure products table: %w", err)
	}
	return nil
}

// Upsert writes the record, overwriting every canonical field when the id
// already exists.
func (s *Postgres) Upsert(ctx context.Context, p *models.Product) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			discounted_price = EXCLUDED.discounted_price,
			stock = EXCLUDED.stock,
			brand = EXCLUDED.brand,
			categories = EXCLUDED.categories,
			images = EXCLUDED.images,
			currency = EXCLUDED.currency,
			url = EXCLUDED.url,
			updated_at = now()`,
		p.ID, p.Name, p.Description, p.Price, p.DiscountedPrice, p.Stock,
		p.Brand, pq.Array(p.Categories), pq.Array(p.Images), p.Currency, p.URL,
	)
	if err != nil {
		return fmt.Errorf("upsert product %s: %w", p.ID, err)
	}
	return nil
}

// Create inserts a new record, failing when the id already exists.
func (s *Postgres) Create(ctx context.Context, p *models.Product) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.Name, p.Description, p.Price, p.DiscountedPrice, p.Stock,
		p.Brand, pq.Array(p.Categories), pq.Array(p.Images), p.Currency, p.URL,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("create product %s: %w", p.ID, ErrExists)
		}
		return fmt.Errorf("create product %s: %w", p.ID, err)
	}
	return nil
}

// Update overwrites an existing record's fields.
func (s *Postgres) Update(ctx context.Context, p *models.Product) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE products SET
			name = $2, description = $3, price = $4, discounted_price = $5,
			stock = $6, brand = $7, categories = $8, images = $9,
			currency = $10, url = $11, updated_at = now()
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Price, p.DiscountedPrice, p.Stock,
		p.Brand, pq.Array(p.Categories), pq.Array(p.Images), p.Currency, p.URL,
	)
	if err != nil {
		return fmt.Errorf("update product %s: %w", p.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update product %s: %w", p.ID, ErrNotFound)
	}
	return nil
}

// FindUnique returns one record by id.
func (s *Postgres) FindUnique(ctx context.Context, id string) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.DiscountedPrice,
		&p.Stock, &p.Brand, pq.Array(&p.Categories), pq.Array(&p.Images),
		&p.Currency, &p.URL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}
	return &p, nil
}

// FindMany returns up to limit records ordered by name; limit <= 0 means no
// limit.
func (s *Postgres) FindMany(ctx context.Context, limit int) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price,
			&p.DiscountedPrice, &p.Stock, &p.Brand, pq.Array(&p.Categories),
			pq.Array(&p.Images), &p.Currency, &p.URL); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Postgres) Close() error {
	return s.db.Close()
}
