package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educonnect/educonnect-backend/internal/model"
)

const timetableColumns = `id, class_id, teacher_id, day_of_week,
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), subject, created_at`

// dayOrder sorts by weekday rather than alphabetically.
const dayOrder = `array_position(ARRAY['monday','tuesday','wednesday','thursday','friday','saturday','sunday'], day_of_week)`

// TimetableRepository handles timetable data access.
type TimetableRepository struct {
	pool *pgxpool.Pool
}

// NewTimetableRepository creates a new TimetableRepository.
func NewTimetableRepository(pool *pgxpool.Pool) *TimetableRepository {
	return &TimetableRepository{pool: pool}
}

// Create inserts an entry. Overlapping entries are accepted.
func (r *TimetableRepository) Create(ctx context.Context, e *model.TimetableEntry) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO timetable_entries (class_id, teacher_id, day_of_week, start_time, end_time, subject)
		 VALUES ($1, $2, $3, $4::text::time, $5::text::time, $6)
		 RETURNING id, created_at`,
		e.ClassID, e.TeacherID, e.DayOfWeek, e.StartTime, e.EndTime, e.Subject,
	).Scan(&e.ID, &e.CreatedAt)
	return mapError(err)
}

// ListByClass lists a class's weekly schedule.
func (r *TimetableRepository) ListByClass(ctx context.Context, classID uuid.UUID) ([]model.TimetableEntry, error) {
	return r.list(ctx, `SELECT `+timetableColumns+` FROM timetable_entries
		WHERE class_id = $1 ORDER BY `+dayOrder+`, start_time`, classID)
}

// ListByTeacher lists the lessons a teacher gives.
func (r *TimetableRepository) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]model.TimetableEntry, error) {
	return r.list(ctx, `SELECT `+timetableColumns+` FROM timetable_entries
		WHERE teacher_id = $1 ORDER BY `+dayOrder+`, start_time`, teacherID)
}

func (r *TimetableRepository) list(ctx context.Context, sql string, arg uuid.UUID) ([]model.TimetableEntry, error) {
	rows, err := r.pool.Query(ctx, sql, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]model.TimetableEntry, 0)
	for rows.Next() {
		var e model.TimetableEntry
		if err := rows.Scan(&e.ID, &e.ClassID, &e.TeacherID, &e.DayOfWeek,
			&e.StartTime, &e.EndTime, &e.Subject, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
