package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voltquote/voltquote/internal/shared"
)

// Repository persists full quote snapshots keyed by id. The engine never
// patches fields in storage; every write replaces the whole document.
type Repository interface {
	Get(ctx context.Context, id string) (*Quote, error)
	GetByNumber(ctx context.Context, quoteNumber string) (*Quote, error)
	List(ctx context.Context, req ListQuotesRequest) ([]Quote, int, error)
	Put(ctx context.Context, q Quote) error
	Delete(ctx context.Context, id string) (bool, error)
	ListExpirable(ctx context.Context, asOf time.Time) ([]Quote, error)
}

// TemplateSource is the template lookup the quote service depends on. The
// templates package provides the production implementation.
type TemplateSource interface {
	Get(ctx context.Context, id string) (*Template, error)
	GetDefault(ctx context.Context) (*Template, error)
	IncrementUsage(ctx context.Context, id string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Postgres-backed quote repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context, id string) (*Quote, error) {
	return r.getBy(ctx, `SELECT doc FROM quotes WHERE id = $1`, id)
}

func (r *repository) GetByNumber(ctx context.Context, quoteNumber string) (*Quote, error) {
	return r.getBy(ctx, `SELECT doc FROM quotes WHERE quote_number = $1`, quoteNumber)
}

func (r *repository) getBy(ctx context.Context, query string, arg any) (*Quote, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, query, arg).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("quotes: get: %w", err)
	}
	var q Quote
	if err := json.Unmarshal(doc, &q); err != nil {
		return nil, fmt.Errorf("quotes: decode snapshot: %w", err)
	}
	return &q, nil
}

func (r *repository) List(ctx context.Context, req ListQuotesRequest) ([]Quote, int, error) {
	conditions := "TRUE"
	args := []any{}
	argPos := 1

	if req.Status != nil {
		conditions = fmt.Sprintf("status = $%d", argPos)
		args = append(args, string(*req.Status))
		argPos++
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM quotes WHERE %s", conditions)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("quotes: count: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT doc FROM quotes
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, conditions, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("quotes: list: %w", err)
	}
	defer rows.Close()

	var quotes []Quote
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, 0, err
		}
		var q Quote
		if err := json.Unmarshal(doc, &q); err != nil {
			return nil, 0, fmt.Errorf("quotes: decode snapshot: %w", err)
		}
		quotes = append(quotes, q)
	}
	return quotes, total, rows.Err()
}

// Put upserts the snapshot. The version guard rejects stale writers: a
// snapshot whose version does not advance past the stored one is refused.
func (r *repository) Put(ctx context.Context, q Quote) error {
	doc, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("quotes: encode snapshot: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		INSERT INTO quotes (id, quote_number, status, version, valid_until, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			version = EXCLUDED.version,
			valid_until = EXCLUDED.valid_until,
			doc = EXCLUDED.doc,
			updated_at = EXCLUDED.updated_at
		WHERE quotes.version < EXCLUDED.version
	`, q.ID, q.QuoteNumber, string(q.Status), q.Version, q.ValidUntil, doc, q.CreatedAt, q.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: quote number %s", shared.ErrDuplicate, q.QuoteNumber)
		}
		return fmt.Errorf("quotes: put: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: quote %s version %d", shared.ErrVersionConflict, q.ID, q.Version)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("quotes: delete: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListExpirable returns outstanding quotes whose validity window has passed,
// for the background expiry sweep.
func (r *repository) ListExpirable(ctx context.Context, asOf time.Time) ([]Quote, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT doc FROM quotes
		WHERE status IN ('pending_review', 'sent', 'viewed') AND valid_until <= $1
		ORDER BY valid_until ASC
	`, asOf)
	if err != nil {
		return nil, fmt.Errorf("quotes: list expirable: %w", err)
	}
	defer rows.Close()

	var quotes []Quote
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var q Quote
		if err := json.Unmarshal(doc, &q); err != nil {
			return nil, fmt.Errorf("quotes: decode snapshot: %w", err)
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}
