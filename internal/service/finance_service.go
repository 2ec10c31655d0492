package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect-backend/internal/model"
)

// FinanceService handles fee structures and invoices.
type FinanceService struct {
	fees     FeeStructureStore
	invoices InvoiceStore
	users    UserStore
	log      zerolog.Logger
	now      func() time.Time
}

// NewFinanceService creates a new FinanceService.
func NewFinanceService(fees FeeStructureStore, invoices InvoiceStore, users UserStore, log zerolog.Logger) *FinanceService {
	return &FinanceService{
		fees:     fees,
		invoices: invoices,
		users:    users,
		log:      log.With().Str("component", "finance_service").Logger(),
		now:      time.Now,
	}
}

// CreateFeeStructure adds a billing item. A second (name, academicYear) pair
// yields repository.ErrDuplicate.
func (s *FinanceService) CreateFeeStructure(ctx context.Context, req model.CreateFeeStructureRequest) (*model.FeeStructure, error) {
	fee := &model.FeeStructure{
		Name:         strings.TrimSpace(req.Name),
		AcademicYear: strings.TrimSpace(req.AcademicYear),
		Description:  strings.TrimSpace(req.Description),
		Amount:       req.Amount,
	}
	if err := s.fees.Create(ctx, fee); err != nil {
		return nil, fmt.Errorf("create fee structure: %w", err)
	}
	return fee, nil
}

// ListFeeStructures returns every billing item.
func (s *FinanceService) ListFeeStructures(ctx context.Context) ([]model.FeeStructure, error) {
	return s.fees.List(ctx)
}

// CreateInvoice bills a student. New invoices are unpaid and issued today.
func (s *FinanceService) CreateInvoice(ctx context.Context, req model.CreateInvoiceRequest) (*model.Invoice, error) {
	due, err := model.ParseDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	if _, err := requireUserRole(ctx, s.users, req.StudentID, model.RoleStudent); err != nil {
		return nil, err
	}
	fee, err := s.fees.GetByID(ctx, req.FeeStructureID)
	if err != nil {
		return nil, fmt.Errorf("get fee structure: %w", err)
	}

	inv := &model.Invoice{
		StudentID:      req.StudentID,
		FeeStructureID: fee.ID,
		FeeName:        fee.Name,
		Amount:         fee.Amount,
		Status:         model.InvoiceUnpaid,
		DueDate:        due,
		IssuedAt:       model.NewDate(s.now()),
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return inv, nil
}

// ListInvoices returns invoices, optionally filtered by status.
func (s *FinanceService) ListInvoices(ctx context.Context, status model.InvoiceStatus) ([]model.Invoice, error) {
	return s.invoices.List(ctx, model.InvoiceFilter{Status: status})
}

// InvoicesForStudent returns one student's invoices.
func (s *FinanceService) InvoicesForStudent(ctx context.Context, studentID uuid.UUID) ([]model.Invoice, error) {
	return s.invoices.List(ctx, model.InvoiceFilter{StudentID: &studentID})
}

// SweepOverdue flips unpaid invoices past their due date to overdue.
func (s *FinanceService) SweepOverdue(ctx context.Context) (int64, error) {
	n, err := s.invoices.MarkOverdue(ctx, model.NewDate(s.now()))
	if err != nil {
		return 0, fmt.Errorf("mark overdue: %w", err)
	}
	if n > 0 {
		s.log.Info().Int64("count", n).Msg("invoices marked overdue")
	}
	return n, nil
}
