package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educonnect/educonnect-backend/internal/model"
)

// TransactionRepository handles payment transaction data access.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a transaction. References are unique.
func (r *TransactionRepository) Create(ctx context.Context, t *model.Transaction) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO transactions (invoice_id, payer_id, amount, reference, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		t.InvoiceID, t.PayerID, t.Amount, t.Reference, t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return mapError(err)
}

// GetByReference retrieves a transaction by its gateway reference.
func (r *TransactionRepository) GetByReference(ctx context.Context, reference string) (*model.Transaction, error) {
	t := &model.Transaction{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, invoice_id, payer_id, amount, reference, status, created_at, updated_at
		 FROM transactions WHERE reference = $1`, reference,
	).Scan(&t.ID, &t.InvoiceID, &t.PayerID, &t.Amount, &t.Reference, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

// UpdateStatus sets a transaction's status.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.TransactionStatus) error {
	return requireAffected(r.pool.Exec(ctx,
		`UPDATE transactions SET status = $1, updated_at = NOW() WHERE id = $2`, status, id))
}

// List returns every transaction, newest first.
func (r *TransactionRepository) List(ctx context.Context) ([]model.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, invoice_id, payer_id, amount, reference, status, created_at, updated_at
		 FROM transactions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := make([]model.Transaction, 0)
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.InvoiceID, &t.PayerID, &t.Amount, &t.Reference, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
