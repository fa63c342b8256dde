// Package catalog exposes the read-only product catalog contract used to
// seed quote line items. The quoting engine does not own catalog data.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voltquote/voltquote/internal/shared"
)

// Pricing carries the catalog's price points for a product.
type Pricing struct {
	RecommendedRetail float64 `json:"recommended_retail"`
	Cost              float64 `json:"cost"`
}

// Product is a catalog entry.
type Product struct {
	ID             string            `json:"id"`
	SKU            string            `json:"sku"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	Category       string            `json:"category"`
	Pricing        Pricing           `json:"pricing"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Supplier       string            `json:"supplier,omitempty"`
	IsActive       bool              `json:"is_active"`
}

// Repository looks up catalog products.
type Repository interface {
	Get(ctx context.Context, id string) (*Product, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Postgres-backed catalog lookup.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context, id string) (*Product, error) {
	var (
		p     Product
		specs []byte
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, sku, name, COALESCE(description, ''), category,
		       recommended_retail, cost, COALESCE(specifications, '{}'::jsonb),
		       COALESCE(supplier, ''), is_active
		FROM products
		WHERE id = $1
	`, id).Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category,
		&p.Pricing.RecommendedRetail, &p.Pricing.Cost, &specs,
		&p.Supplier, &p.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %s", shared.ErrNotFound, id)
		}
		return nil, fmt.Errorf("catalog: get product %s: %w", id, err)
	}
	if err := json.Unmarshal(specs, &p.Specifications); err != nil {
		return nil, fmt.Errorf("catalog: decode specifications: %w", err)
	}
	return &p, nil
}
