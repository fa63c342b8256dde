// Package templates manages reusable quote blueprints. Templates are
// immutable once saved; applying one to a quote copies its line items and
// bumps the usage counter.
package templates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voltquote/voltquote/internal/platform/db"
	"github.com/voltquote/voltquote/internal/quoting/quotes"
	"github.com/voltquote/voltquote/internal/shared"
)

// Repository persists quote templates. It satisfies quotes.TemplateSource.
type Repository interface {
	Get(ctx context.Context, id string) (*quotes.Template, error)
	GetDefault(ctx context.Context) (*quotes.Template, error)
	List(ctx context.Context) ([]quotes.Template, error)
	Put(ctx context.Context, tmpl quotes.Template) error
	Delete(ctx context.Context, id string) (bool, error)
	IncrementUsage(ctx context.Context, id string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Postgres-backed template repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context, id string) (*quotes.Template, error) {
	return r.getBy(ctx, `SELECT doc, usage_count FROM quote_templates WHERE id = $1`, id)
}

func (r *repository) GetDefault(ctx context.Context) (*quotes.Template, error) {
	return r.getBy(ctx, `SELECT doc, usage_count FROM quote_templates WHERE is_default ORDER BY updated_at DESC LIMIT $1`, 1)
}

func (r *repository) getBy(ctx context.Context, query string, arg any) (*quotes.Template, error) {
	var (
		doc        []byte
		usageCount int
	)
	err := r.pool.QueryRow(ctx, query, arg).Scan(&doc, &usageCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("templates: get: %w", err)
	}
	var tmpl quotes.Template
	if err := json.Unmarshal(doc, &tmpl); err != nil {
		return nil, fmt.Errorf("templates: decode: %w", err)
	}
	// The live counter is authoritative over the stored snapshot.
	tmpl.UsageCount = usageCount
	return &tmpl, nil
}

func (r *repository) List(ctx context.Context) ([]quotes.Template, error) {
	rows, err := r.pool.Query(ctx, `SELECT doc, usage_count FROM quote_templates ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("templates: list: %w", err)
	}
	defer rows.Close()

	var templates []quotes.Template
	for rows.Next() {
		var (
			doc        []byte
			usageCount int
		)
		if err := rows.Scan(&doc, &usageCount); err != nil {
			return nil, err
		}
		var tmpl quotes.Template
		if err := json.Unmarshal(doc, &tmpl); err != nil {
			return nil, fmt.Errorf("templates: decode: %w", err)
		}
		tmpl.UsageCount = usageCount
		templates = append(templates, tmpl)
	}
	return templates, rows.Err()
}

// Put upserts a template. Saving a default template clears the previous
// default in the same transaction, so at most one default exists.
func (r *repository) Put(ctx context.Context, tmpl quotes.Template) error {
	doc, err := json.Marshal(tmpl)
	if err != nil {
		return fmt.Errorf("templates: encode: %w", err)
	}
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if tmpl.IsDefault {
			if _, err := tx.Exec(ctx, `UPDATE quote_templates SET is_default = FALSE WHERE is_default AND id <> $1`, tmpl.ID); err != nil {
				return fmt.Errorf("templates: clear default: %w", err)
			}
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO quote_templates (id, name, is_default, usage_count, doc, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				is_default = EXCLUDED.is_default,
				doc = EXCLUDED.doc,
				updated_at = EXCLUDED.updated_at
		`, tmpl.ID, tmpl.Name, tmpl.IsDefault, tmpl.UsageCount, doc, tmpl.CreatedAt, tmpl.UpdatedAt)
		if err != nil {
			return fmt.Errorf("templates: put: %w", err)
		}
		return nil
	})
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quote_templates WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("templates: delete: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repository) IncrementUsage(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE quote_templates SET usage_count = usage_count + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("templates: increment usage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: template %s", shared.ErrNotFound, id)
	}
	return nil
}
