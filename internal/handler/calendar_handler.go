package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/response"
	"github.com/educonnect/educonnect-backend/internal/service"
	"github.com/educonnect/educonnect-backend/internal/validator"
)

type CalendarHandler struct {
	calendarService *service.CalendarService
}

func NewCalendarHandler(calendarService *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// CreateEvent godoc
// POST /api/v1/calendar
func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req model.CreateCalendarEventRequest
	if fields := validator.Bind(c, &req); fields != nil {
		invalid(c, fields)
		return
	}

	event, err := h.calendarService.Create(c.Request.Context(), p, req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"event": event})
}

// ListEvents godoc
// GET /api/v1/calendar?from=&to=
// Returns events overlapping the window; both bounds are optional.
func (h *CalendarHandler) ListEvents(c *gin.Context) {
	var q model.CalendarRangeQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		invalid(c, fields)
		return
	}

	events, err := h.calendarService.List(c.Request.Context(), q)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"events": events})
}
