package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ParentLinkRepository handles the parent_children edge list.
type ParentLinkRepository struct {
	pool *pgxpool.Pool
}

// NewParentLinkRepository creates a new ParentLinkRepository.
func NewParentLinkRepository(pool *pgxpool.Pool) *ParentLinkRepository {
	return &ParentLinkRepository{pool: pool}
}

// Link adds the edge; linking twice is a no-op.
func (r *ParentLinkRepository) Link(ctx context.Context, parentID, childID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO parent_children (parent_id, child_id) VALUES ($1, $2)
		 ON CONFLICT (parent_id, child_id) DO NOTHING`,
		parentID, childID)
	return mapError(err)
}

// IsLinked reports whether the edge exists.
func (r *ParentLinkRepository) IsLinked(ctx context.Context, parentID, childID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM parent_children WHERE parent_id = $1 AND child_id = $2)`,
		parentID, childID).Scan(&exists)
	return exists, err
}

// ChildIDs lists the children linked to a parent.
func (r *ParentLinkRepository) ChildIDs(ctx context.Context, parentID uuid.UUID) ([]uuid.UUID, error) {
	return r.ids(ctx, `SELECT child_id FROM parent_children WHERE parent_id = $1 ORDER BY created_at`, parentID)
}

// ParentIDs lists the parents linked to a child.
func (r *ParentLinkRepository) ParentIDs(ctx context.Context, childID uuid.UUID) ([]uuid.UUID, error) {
	return r.ids(ctx, `SELECT parent_id FROM parent_children WHERE child_id = $1 ORDER BY created_at`, childID)
}

func (r *ParentLinkRepository) ids(ctx context.Context, sql string, arg uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, sql, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
