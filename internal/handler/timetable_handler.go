package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/response"
	"github.com/educonnect/educonnect-backend/internal/service"
	"github.com/educonnect/educonnect-backend/internal/validator"
)

type TimetableHandler struct {
	timetableService *service.TimetableService
}

func NewTimetableHandler(timetableService *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetableService: timetableService}
}

// CreateEntry godoc
// POST /api/v1/timetables
// Overlapping slots are not rejected.
func (h *TimetableHandler) CreateEntry(c *gin.Context) {
	var req model.CreateTimetableEntryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		invalid(c, fields)
		return
	}

	entry, err := h.timetableService.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"entry": entry})
}

// ListByClass godoc
// GET /api/v1/timetables/class/:classId
func (h *TimetableHandler) ListByClass(c *gin.Context) {
	classID, ok := paramID(c, "classId")
	if !ok {
		return
	}

	entries, err := h.timetableService.ListByClass(c.Request.Context(), classID)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"entries": entries})
}

// Mine godoc
// GET /api/v1/timetables/my
func (h *TimetableHandler) Mine(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	entries, err := h.timetableService.Mine(c.Request.Context(), p)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"entries": entries})
}
