package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/response"
	"github.com/educonnect/educonnect-backend/internal/service"
	"github.com/educonnect/educonnect-backend/internal/validator"
)

// HealthRecordHandler handles student health records.
type HealthRecordHandler struct {
	healthService *service.HealthService
}

// NewHealthRecordHandler creates a new HealthRecordHandler.
func NewHealthRecordHandler(healthService *service.HealthService) *HealthRecordHandler {
	return &HealthRecordHandler{healthService: healthService}
}

// UpsertRecord godoc
// PUT /api/v1/health-records/student/:studentId
func (h *HealthRecordHandler) UpsertRecord(c *gin.Context) {
	studentID, ok := paramID(c, "studentId")
	if !ok {
		return
	}

	var req model.UpsertHealthRecordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		invalid(c, fields)
		return
	}

	rec, err := h.healthService.Upsert(c.Request.Context(), studentID, req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"healthRecord": rec})
}

// GetRecord godoc
// GET /api/v1/health-records/student/:studentId
// Parents may only read records of their linked children.
func (h *HealthRecordHandler) GetRecord(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	studentID, ok := paramID(c, "studentId")
	if !ok {
		return
	}

	rec, err := h.healthService.Get(c.Request.Context(), p, studentID)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"healthRecord": rec})
}

// MyRecord godoc
// GET /api/v1/health-records/my
func (h *HealthRecordHandler) MyRecord(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	rec, err := h.healthService.Mine(c.Request.Context(), p)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"healthRecord": rec})
}
