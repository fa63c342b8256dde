package projects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voltquote/voltquote/internal/shared"
)

// Source is the read-only lookup contract for external project records.
type Source interface {
	GetProjectData(ctx context.Context, projectID string) (Record, error)
}

type pgSource struct {
	pool *pgxpool.Pool
}

// NewSource constructs a Postgres-backed project source reading the raw
// payload replicated from the upstream project system.
func NewSource(pool *pgxpool.Pool) Source {
	return &pgSource{pool: pool}
}

func (s *pgSource) GetProjectData(ctx context.Context, projectID string) (Record, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `SELECT payload FROM projects WHERE id = $1`, projectID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: project %s", shared.ErrNotFound, projectID)
		}
		return nil, fmt.Errorf("projects: get %s: %w", projectID, err)
	}
	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("projects: decode %s: %w", projectID, err)
	}
	return record, nil
}
