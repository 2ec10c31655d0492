package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educonnect/educonnect-backend/internal/model"
)

// classColumns includes the live roster size; student_count is not stored.
const classColumns = `c.id, c.name, c.academic_year, c.created_at, c.updated_at,
	(SELECT COUNT(*) FROM users u WHERE u.class_id = c.id AND u.role = 'student')::int AS student_count`

type ClassRepository struct {
	pool *pgxpool.Pool
}

func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

func (r *ClassRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Class, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+classColumns+` FROM classes c WHERE c.id = $1`, id)
	if err != nil {
		return nil, err
	}
	c, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Class])
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

// List orders the newest academic year first, then by name.
func (r *ClassRepository) List(ctx context.Context) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+classColumns+` FROM classes c ORDER BY c.academic_year DESC, c.name`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[model.Class])
}

// Create fails with ErrDuplicate when the name is taken.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	c.StudentCount = 0
	return mapError(r.pool.QueryRow(ctx,
		`INSERT INTO classes (name, academic_year) VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.AcademicYear,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt))
}
