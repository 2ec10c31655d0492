package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/response"
	"github.com/educonnect/educonnect-backend/internal/service"
	"github.com/educonnect/educonnect-backend/internal/validator"
)

// AnnouncementHandler handles announcements and their approval.
type AnnouncementHandler struct {
	announcementService *service.AnnouncementService
}

// NewAnnouncementHandler creates a new AnnouncementHandler.
func NewAnnouncementHandler(announcementService *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// CreateAnnouncement godoc
// POST /api/v1/announcements
// New announcements always start as pending.
func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req model.CreateAnnouncementRequest
	if fields := validator.Bind(c, &req); fields != nil {
		invalid(c, fields)
		return
	}

	a, err := h.announcementService.Create(c.Request.Context(), p, req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"announcement": a})
}

// ListAnnouncements godoc
// GET /api/v1/announcements
func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	list, err := h.announcementService.Visible(c.Request.Context(), p)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"announcements": list})
}

// ListPending godoc
// GET /api/v1/announcements/pending
func (h *AnnouncementHandler) ListPending(c *gin.Context) {
	list, err := h.announcementService.Pending(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"announcements": list})
}

// ReviewAnnouncement godoc
// PATCH /api/v1/announcements/:id/status
// pending → approved | rejected. Any other move is 409 INVALID_TRANSITION.
func (h *AnnouncementHandler) ReviewAnnouncement(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.ReviewAnnouncementRequest
	if fields := validator.Bind(c, &req); fields != nil {
		invalid(c, fields)
		return
	}

	a, err := h.announcementService.Review(c.Request.Context(), p, id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"announcement": a})
}
