package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educonnect/educonnect-backend/internal/model"
)

// FeeStructureRepository handles fee structure data access.
type FeeStructureRepository struct {
	pool *pgxpool.Pool
}

// NewFeeStructureRepository creates a new FeeStructureRepository.
func NewFeeStructureRepository(pool *pgxpool.Pool) *FeeStructureRepository {
	return &FeeStructureRepository{pool: pool}
}

// Create inserts a fee structure. (name, academic_year) is unique.
func (r *FeeStructureRepository) Create(ctx context.Context, f *model.FeeStructure) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO fee_structures (name, academic_year, description, amount)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		f.Name, f.AcademicYear, f.Description, f.Amount,
	).Scan(&f.ID, &f.CreatedAt)
	return mapError(err)
}

// GetByID retrieves a fee structure.
func (r *FeeStructureRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.FeeStructure, error) {
	f := &model.FeeStructure{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, academic_year, description, amount, created_at
		 FROM fee_structures WHERE id = $1`, id,
	).Scan(&f.ID, &f.Name, &f.AcademicYear, &f.Description, &f.Amount, &f.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return f, nil
}

// List returns every fee structure.
func (r *FeeStructureRepository) List(ctx context.Context) ([]model.FeeStructure, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, academic_year, description, amount, created_at
		 FROM fee_structures ORDER BY academic_year DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fees := make([]model.FeeStructure, 0)
	for rows.Next() {
		var f model.FeeStructure
		if err := rows.Scan(&f.ID, &f.Name, &f.AcademicYear, &f.Description, &f.Amount, &f.CreatedAt); err != nil {
			return nil, err
		}
		fees = append(fees, f)
	}
	return fees, rows.Err()
}
