package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/response"
	"github.com/educonnect/educonnect-backend/internal/service"
	"github.com/educonnect/educonnect-backend/internal/validator"
)

// GradeHandler handles the gradebook. Only the recording teacher (or an
// admin) may change or remove a grade.
type GradeHandler struct {
	gradeService *service.GradeService
}

// NewGradeHandler creates a new GradeHandler.
func NewGradeHandler(gradeService *service.GradeService) *GradeHandler {
	return &GradeHandler{gradeService: gradeService}
}

// CreateGrade godoc
// POST /api/v1/grades
func (h *GradeHandler) CreateGrade(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req model.CreateGradeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		invalid(c, fields)
		return
	}

	grade, err := h.gradeService.Create(c.Request.Context(), p, req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"grade": grade})
}

// ByStudent godoc
// GET /api/v1/grades/student/:studentId
func (h *GradeHandler) ByStudent(c *gin.Context) {
	studentID, ok := paramID(c, "studentId")
	if !ok {
		return
	}

	grades, err := h.gradeService.ByStudent(c.Request.Context(), studentID)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"grades": grades})
}

// Mine godoc
// GET /api/v1/grades/my
func (h *GradeHandler) Mine(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	grades, err := h.gradeService.Mine(c.Request.Context(), p)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"grades": grades})
}

// UpdateGrade godoc
// PATCH /api/v1/grades/:id
func (h *GradeHandler) UpdateGrade(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateGradeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		invalid(c, fields)
		return
	}

	grade, err := h.gradeService.Update(c.Request.Context(), p, id, req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"grade": grade})
}

// DeleteGrade godoc
// DELETE /api/v1/grades/:id
func (h *GradeHandler) DeleteGrade(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.gradeService.Delete(c.Request.Context(), p, id); err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "grade deleted"})
}
