package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/repository"
)

// FeeStructureRepository is the in-memory fee structure store.
type FeeStructureRepository struct {
	db *db
}

func (r *FeeStructureRepository) Create(_ context.Context, f *model.FeeStructure) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.fees {
		if existing.Name == f.Name && existing.AcademicYear == f.AcademicYear {
			return repository.ErrDuplicate
		}
	}
	f.ID = uuid.New()
	f.CreatedAt = r.db.tick()
	stored := *f
	r.db.fees[f.ID] = &stored
	return nil
}

func (r *FeeStructureRepository) GetByID(_ context.Context, id uuid.UUID) (*model.FeeStructure, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	f, ok := r.db.fees[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *f
	return &out, nil
}

func (r *FeeStructureRepository) List(_ context.Context) ([]model.FeeStructure, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.FeeStructure, 0, len(r.db.fees))
	for _, f := range r.db.fees {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AcademicYear != out[j].AcademicYear {
			return out[i].AcademicYear > out[j].AcademicYear
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// InvoiceRepository is the in-memory invoice store. Reads join the fee structure.
type InvoiceRepository struct {
	db *db
}

// joined copies inv and fills fee name and amount. Callers hold the lock.
func (r *InvoiceRepository) joined(inv *model.Invoice) model.Invoice {
	out := *inv
	if inv.PaidAt != nil {
		d := *inv.PaidAt
		out.PaidAt = &d
	}
	if f, ok := r.db.fees[inv.FeeStructureID]; ok {
		out.FeeName = f.Name
		out.Amount = f.Amount
	}
	return out
}

func (r *InvoiceRepository) Create(_ context.Context, inv *model.Invoice) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[inv.StudentID]; !ok {
		return repository.ErrForeignKey
	}
	if _, ok := r.db.fees[inv.FeeStructureID]; !ok {
		return repository.ErrForeignKey
	}
	inv.ID = uuid.New()
	inv.CreatedAt = r.db.tick()
	stored := *inv
	r.db.invoices[inv.ID] = &stored
	return nil
}

func (r *InvoiceRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	inv, ok := r.db.invoices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := r.joined(inv)
	return &out, nil
}

func (r *InvoiceRepository) List(_ context.Context, filter model.InvoiceFilter) ([]model.Invoice, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.Invoice, 0)
	for _, inv := range r.db.invoices {
		if filter.Status != "" && inv.Status != filter.Status {
			continue
		}
		if filter.StudentID != nil && inv.StudentID != *filter.StudentID {
			continue
		}
		out = append(out, r.joined(inv))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.After(out[j].DueDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InvoiceRepository) MarkPaid(_ context.Context, id uuid.UUID, paidAt model.Date) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	inv, ok := r.db.invoices[id]
	if !ok {
		return repository.ErrNotFound
	}
	d := paidAt
	inv.Status = model.InvoicePaid
	inv.PaidAt = &d
	return nil
}

func (r *InvoiceRepository) MarkOverdue(_ context.Context, today model.Date) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var n int64
	for _, inv := range r.db.invoices {
		if inv.Status == model.InvoiceUnpaid && inv.DueDate.Before(today) {
			inv.Status = model.InvoiceOverdue
			n++
		}
	}
	return n, nil
}

// TransactionRepository is the in-memory transaction store.
type TransactionRepository struct {
	db *db
}

func (r *TransactionRepository) Create(_ context.Context, t *model.Transaction) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.transactions {
		if existing.Reference == t.Reference {
			return repository.ErrDuplicate
		}
	}
	if _, ok := r.db.invoices[t.InvoiceID]; !ok {
		return repository.ErrForeignKey
	}
	t.ID = uuid.New()
	t.CreatedAt = r.db.tick()
	t.UpdatedAt = t.CreatedAt
	stored := *t
	r.db.transactions[t.ID] = &stored
	return nil
}

func (r *TransactionRepository) GetByReference(_ context.Context, reference string) (*model.Transaction, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, t := range r.db.transactions {
		if t.Reference == reference {
			out := *t
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *TransactionRepository) UpdateStatus(_ context.Context, id uuid.UUID, status model.TransactionStatus) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	t, ok := r.db.transactions[id]
	if !ok {
		return repository.ErrNotFound
	}
	t.Status = status
	t.UpdatedAt = r.db.tick()
	return nil
}

func (r *TransactionRepository) List(_ context.Context) ([]model.Transaction, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]model.Transaction, 0, len(r.db.transactions))
	for _, t := range r.db.transactions {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
