package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educonnect/educonnect-backend/internal/model"
)

// AttendanceRepository handles attendance data access.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Upsert writes the row for (student_id, date), overwriting status and teacher.
func (r *AttendanceRepository) Upsert(ctx context.Context, a *model.Attendance) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO attendance (student_id, teacher_id, date, status)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (student_id, date) DO UPDATE
		 SET status = EXCLUDED.status, teacher_id = EXCLUDED.teacher_id, updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		a.StudentID, a.TeacherID, a.Date, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return mapError(err)
}

// ListByDate returns every row for a date across all classes.
func (r *AttendanceRepository) ListByDate(ctx context.Context, date model.Date) ([]model.Attendance, error) {
	return r.list(ctx,
		`SELECT id, student_id, teacher_id, date, status, created_at, updated_at
		 FROM attendance WHERE date = $1 ORDER BY created_at`, date)
}

// ListByStudent returns a student's history, newest first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Attendance, error) {
	return r.list(ctx,
		`SELECT id, student_id, teacher_id, date, status, created_at, updated_at
		 FROM attendance WHERE student_id = $1 ORDER BY date DESC`, studentID)
}

func (r *AttendanceRepository) list(ctx context.Context, sql string, arg any) ([]model.Attendance, error) {
	rows, err := r.pool.Query(ctx, sql, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]model.Attendance, 0)
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.ID, &a.StudentID, &a.TeacherID, &a.Date, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
