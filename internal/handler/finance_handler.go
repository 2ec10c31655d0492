package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/response"
	"github.com/educonnect/educonnect-backend/internal/service"
	"github.com/educonnect/educonnect-backend/internal/validator"
)

// FinanceHandler handles fee structures and invoices.
type FinanceHandler struct {
	financeService *service.FinanceService
}

// NewFinanceHandler creates a new FinanceHandler.
func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// CreateFeeStructure godoc
// POST /api/v1/finance/fee-structures
// A (name, academicYear) pair may exist once.
func (h *FinanceHandler) CreateFeeStructure(c *gin.Context) {
	var req model.CreateFeeStructureRequest
	if fields := validator.Bind(c, &req); fields != nil {
		invalid(c, fields)
		return
	}

	fee, err := h.financeService.CreateFeeStructure(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"feeStructure": fee})
}

// ListFeeStructures godoc
// GET /api/v1/finance/fee-structures
func (h *FinanceHandler) ListFeeStructures(c *gin.Context) {
	fees, err := h.financeService.ListFeeStructures(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"feeStructures": fees})
}

// CreateInvoice godoc
// POST /api/v1/finance/invoices
// Issues an unpaid invoice dated today.
func (h *FinanceHandler) CreateInvoice(c *gin.Context) {
	var req model.CreateInvoiceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		invalid(c, fields)
		return
	}

	invoice, err := h.financeService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"invoice": invoice})
}

// ListInvoices godoc
// GET /api/v1/finance/invoices?status=
func (h *FinanceHandler) ListInvoices(c *gin.Context) {
	var q model.ListInvoicesQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		invalid(c, fields)
		return
	}

	invoices, err := h.financeService.ListInvoices(c.Request.Context(), q.Status)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invoices": invoices})
}

// StudentInvoices godoc
// GET /api/v1/finance/invoices/student/:studentId
func (h *FinanceHandler) StudentInvoices(c *gin.Context) {
	studentID, ok := paramID(c, "studentId")
	if !ok {
		return
	}

	invoices, err := h.financeService.InvoicesForStudent(c.Request.Context(), studentID)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invoices": invoices})
}

// MyInvoices godoc
// GET /api/v1/finance/invoices/my
func (h *FinanceHandler) MyInvoices(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	invoices, err := h.financeService.InvoicesForStudent(c.Request.Context(), p.UserID)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invoices": invoices})
}
