package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educonnect/educonnect-backend/internal/model"
)

// CalendarRepository handles calendar event data access.
type CalendarRepository struct {
	pool *pgxpool.Pool
}

// NewCalendarRepository creates a new CalendarRepository.
func NewCalendarRepository(pool *pgxpool.Pool) *CalendarRepository {
	return &CalendarRepository{pool: pool}
}

// Create inserts an event.
func (r *CalendarRepository) Create(ctx context.Context, e *model.CalendarEvent) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO calendar_events (title, description, start_date, end_date, type, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		e.Title, e.Description, e.StartDate, e.EndDate, e.Type, e.CreatedBy,
	).Scan(&e.ID, &e.CreatedAt)
	return mapError(err)
}

// ListRange returns events overlapping [from, to] ordered by start date.
func (r *CalendarRepository) ListRange(ctx context.Context, from, to *model.Date) ([]model.CalendarEvent, error) {
	var conds []string
	var args []interface{}
	if from != nil {
		args = append(args, *from)
		conds = append(conds, `end_date >= $`+strconv.Itoa(len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conds = append(conds, `start_date <= $`+strconv.Itoa(len(args)))
	}

	query := `SELECT id, title, description, start_date, end_date, type, created_by, created_at FROM calendar_events`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY start_date, title`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]model.CalendarEvent, 0)
	for rows.Next() {
		var e model.CalendarEvent
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.Type, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
