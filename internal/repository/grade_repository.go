package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educonnect/educonnect-backend/internal/model"
)

// GradeRepository handles grade data access.
type GradeRepository struct {
	pool *pgxpool.Pool
}

// NewGradeRepository creates a new GradeRepository.
func NewGradeRepository(pool *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{pool: pool}
}

// Create inserts a grade.
func (r *GradeRepository) Create(ctx context.Context, g *model.Grade) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO grades (student_id, teacher_id, subject, assessment, score)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, recorded_at, updated_at`,
		g.StudentID, g.TeacherID, g.Subject, g.Assessment, g.Score,
	).Scan(&g.ID, &g.RecordedAt, &g.UpdatedAt)
	return mapError(err)
}

// GetByID retrieves a grade by ID.
func (r *GradeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Grade, error) {
	g := &model.Grade{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, teacher_id, subject, assessment, score, recorded_at, updated_at
		 FROM grades WHERE id = $1`, id,
	).Scan(&g.ID, &g.StudentID, &g.TeacherID, &g.Subject, &g.Assessment, &g.Score, &g.RecordedAt, &g.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return g, nil
}

// ListByStudent returns a student's grades, newest first.
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Grade, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, teacher_id, subject, assessment, score, recorded_at, updated_at
		 FROM grades WHERE student_id = $1 ORDER BY recorded_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grades := make([]model.Grade, 0)
	for rows.Next() {
		var g model.Grade
		if err := rows.Scan(&g.ID, &g.StudentID, &g.TeacherID, &g.Subject, &g.Assessment, &g.Score, &g.RecordedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

// Update writes subject, assessment and score.
func (r *GradeRepository) Update(ctx context.Context, g *model.Grade) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE grades SET subject = $1, assessment = $2, score = $3, updated_at = NOW()
		 WHERE id = $4 RETURNING updated_at`,
		g.Subject, g.Assessment, g.Score, g.ID,
	).Scan(&g.UpdatedAt)
	return mapError(err)
}

// Delete removes a grade.
func (r *GradeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return requireAffected(r.pool.Exec(ctx, `DELETE FROM grades WHERE id = $1`, id))
}
