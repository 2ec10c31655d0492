package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/response"
	"github.com/educonnect/educonnect-backend/internal/service"
	"github.com/educonnect/educonnect-backend/internal/validator"
)

// AttendanceHandler handles roll-calls and attendance history.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// RecordRollCall godoc
// POST /api/v1/attendance
// Upserts one row per (student, date). Rows written before a failing record
// are kept.
func (h *AttendanceHandler) RecordRollCall(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req model.RollCallRequest
	if fields := validator.Bind(c, &req); fields != nil {
		invalid(c, fields)
		return
	}

	records, err := h.attendanceService.RecordRollCall(c.Request.Context(), p, req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": records})
}

type attendanceDateQuery struct {
	Date string `form:"date" binding:"required,isodate"`
}

// ByDate godoc
// GET /api/v1/attendance?date=YYYY-MM-DD
func (h *AttendanceHandler) ByDate(c *gin.Context) {
	var q attendanceDateQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		invalid(c, fields)
		return
	}
	date, err := model.ParseDate(q.Date)
	if err != nil {
		invalid(c, map[string]string{"date": err.Error()})
		return
	}

	records, err := h.attendanceService.ByDate(c.Request.Context(), date)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": records})
}

// ByStudent godoc
// GET /api/v1/attendance/student/:studentId
func (h *AttendanceHandler) ByStudent(c *gin.Context) {
	studentID, ok := paramID(c, "studentId")
	if !ok {
		return
	}

	records, err := h.attendanceService.ByStudent(c.Request.Context(), studentID)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": records})
}

// Mine godoc
// GET /api/v1/attendance/my
func (h *AttendanceHandler) Mine(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	records, err := h.attendanceService.Mine(c.Request.Context(), p)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": records})
}
