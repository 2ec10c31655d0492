package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educonnect/educonnect-backend/internal/model"
)

// DashboardRepository handles admin dashboard data access.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// Stats gathers the dashboard counters.
func (r *DashboardRepository) Stats(ctx context.Context) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{UsersByRole: make(map[model.Role]int)}

	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM classes),
			(SELECT COUNT(*) FROM invoices WHERE status = 'unpaid'),
			(SELECT COUNT(*) FROM invoices WHERE status = 'overdue'),
			(SELECT COUNT(*) FROM announcements WHERE status = 'pending'),
			(SELECT COALESCE(SUM(amount), 0)::float8 FROM transactions WHERE status = 'successful')`,
	).Scan(&stats.TotalClasses, &stats.UnpaidInvoices, &stats.OverdueInvoices,
		&stats.PendingAnnouncements, &stats.SuccessfulPaymentsSum)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for _, role := range model.AllRoles {
		stats.UsersByRole[role] = 0
	}
	for rows.Next() {
		var role model.Role
		var count int
		if err := rows.Scan(&role, &count); err != nil {
			return nil, err
		}
		stats.UsersByRole[role] = count
	}
	return stats, rows.Err()
}
