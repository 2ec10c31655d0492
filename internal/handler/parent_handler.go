package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/educonnect/educonnect-backend/internal/response"
	"github.com/educonnect/educonnect-backend/internal/service"
)

// ParentHandler serves the parent portal: linked children and their records.
type ParentHandler struct {
	userService       *service.UserService
	attendanceService *service.AttendanceService
	gradeService      *service.GradeService
	financeService    *service.FinanceService
}

// NewParentHandler creates a new ParentHandler.
func NewParentHandler(
	userService *service.UserService,
	attendanceService *service.AttendanceService,
	gradeService *service.GradeService,
	financeService *service.FinanceService,
) *ParentHandler {
	return &ParentHandler{
		userService:       userService,
		attendanceService: attendanceService,
		gradeService:      gradeService,
		financeService:    financeService,
	}
}

// ListChildren godoc
// GET /api/v1/parent/children
func (h *ParentHandler) ListChildren(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	children, err := h.userService.Children(c.Request.Context(), p)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"children": children})
}

// ChildAttendance godoc
// GET /api/v1/parent/children/:childId/attendance
func (h *ParentHandler) ChildAttendance(c *gin.Context) {
	childID, ok := h.linkedChild(c)
	if !ok {
		return
	}

	records, err := h.attendanceService.ByStudent(c.Request.Context(), childID)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": records})
}

// ChildGrades godoc
// GET /api/v1/parent/children/:childId/grades
func (h *ParentHandler) ChildGrades(c *gin.Context) {
	childID, ok := h.linkedChild(c)
	if !ok {
		return
	}

	grades, err := h.gradeService.ByStudent(c.Request.Context(), childID)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"grades": grades})
}

// ChildInvoices godoc
// GET /api/v1/parent/children/:childId/invoices
func (h *ParentHandler) ChildInvoices(c *gin.Context) {
	childID, ok := h.linkedChild(c)
	if !ok {
		return
	}

	invoices, err := h.financeService.InvoicesForStudent(c.Request.Context(), childID)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invoices": invoices})
}

// linkedChild parses :childId and checks the caller is linked to it.
func (h *ParentHandler) linkedChild(c *gin.Context) (uuid.UUID, bool) {
	p, ok := principal(c)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := paramID(c, "childId")
	if !ok {
		return uuid.Nil, false
	}
	if err := h.userService.EnsureLinked(c.Request.Context(), p, id); err != nil {
		fail(c, err)
		return uuid.Nil, false
	}
	return id, true
}
