package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educonnect/educonnect-backend/internal/model"
)

const invoiceSelect = `SELECT i.id, i.student_id, i.fee_structure_id, f.name, f.amount, i.status,
		i.due_date, i.issued_at, i.paid_at, i.created_at
	FROM invoices i
	JOIN fee_structures f ON f.id = i.fee_structure_id`

// InvoiceRepository handles invoice data access.
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

func scanInvoice(row rowScanner) (*model.Invoice, error) {
	inv := &model.Invoice{}
	err := row.Scan(&inv.ID, &inv.StudentID, &inv.FeeStructureID, &inv.FeeName, &inv.Amount, &inv.Status,
		&inv.DueDate, &inv.IssuedAt, &inv.PaidAt, &inv.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return inv, nil
}

// Create inserts an invoice.
func (r *InvoiceRepository) Create(ctx context.Context, inv *model.Invoice) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO invoices (student_id, fee_structure_id, status, due_date, issued_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		inv.StudentID, inv.FeeStructureID, inv.Status, inv.DueDate, inv.IssuedAt,
	).Scan(&inv.ID, &inv.CreatedAt)
	return mapError(err)
}

// GetByID retrieves an invoice with its fee name and amount.
func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	return scanInvoice(r.pool.QueryRow(ctx, invoiceSelect+` WHERE i.id = $1`, id))
}

// List returns invoices matching the filter, most recently due first.
func (r *InvoiceRepository) List(ctx context.Context, filter model.InvoiceFilter) ([]model.Invoice, error) {
	var conds []string
	var args []interface{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, `i.status = $`+strconv.Itoa(len(args)))
	}
	if filter.StudentID != nil {
		args = append(args, *filter.StudentID)
		conds = append(conds, `i.student_id = $`+strconv.Itoa(len(args)))
	}

	query := invoiceSelect
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY i.due_date DESC, i.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := make([]model.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}

// MarkPaid sets status paid and stamps paid_at. Calling it again re-stamps paid_at.
func (r *InvoiceRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidAt model.Date) error {
	return requireAffected(r.pool.Exec(ctx,
		`UPDATE invoices SET status = $1, paid_at = $2 WHERE id = $3`,
		model.InvoicePaid, paidAt, id))
}

// MarkOverdue flips unpaid invoices due before today.
func (r *InvoiceRepository) MarkOverdue(ctx context.Context, today model.Date) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE invoices SET status = $1 WHERE status = $2 AND due_date < $3`,
		model.InvoiceOverdue, model.InvoiceUnpaid, today)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
