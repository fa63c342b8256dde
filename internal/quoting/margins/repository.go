package margins

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voltquote/voltquote/internal/shared"
)

// Repository persists the singleton MarginSettings record.
type Repository interface {
	Get(ctx context.Context) (*MarginSettings, error)
	Put(ctx context.Context, settings MarginSettings) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Postgres-backed settings repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context) (*MarginSettings, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, `SELECT doc FROM margin_settings WHERE id = 1`).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("margins: get settings: %w", err)
	}
	var settings MarginSettings
	if err := json.Unmarshal(doc, &settings); err != nil {
		return nil, fmt.Errorf("margins: decode settings: %w", err)
	}
	return &settings, nil
}

func (r *repository) Put(ctx context.Context, settings MarginSettings) error {
	doc, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("margins: encode settings: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO margin_settings (id, doc, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()
	`, doc)
	if err != nil {
		return fmt.Errorf("margins: put settings: %w", err)
	}
	return nil
}
