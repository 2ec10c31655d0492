package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/response"
	"github.com/educonnect/educonnect-backend/internal/service"
	"github.com/educonnect/educonnect-backend/internal/validator"
)

// AdminHandler handles admin-only directory operations and the dashboard.
type AdminHandler struct {
	userService      *service.UserService
	dashboardService *service.DashboardService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(userService *service.UserService, dashboardService *service.DashboardService) *AdminHandler {
	return &AdminHandler{
		userService:      userService,
		dashboardService: dashboardService,
	}
}

// LinkParent godoc
// POST /api/v1/admin/link-parent
// Links a parent account to a student. Linking twice is a no-op.
func (h *AdminHandler) LinkParent(c *gin.Context) {
	var req model.LinkParentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		invalid(c, fields)
		return
	}

	parent, err := h.userService.LinkParent(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"parent": parent})
}

// PromoteClass godoc
// POST /api/v1/admin/promote
// Moves every student of one class to another. Partial application is
// possible; failures are reported, not rolled back.
func (h *AdminHandler) PromoteClass(c *gin.Context) {
	var req model.PromoteRequest
	if fields := validator.Bind(c, &req); fields != nil {
		invalid(c, fields)
		return
	}

	result, err := h.userService.Promote(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetDashboardStats godoc
// GET /api/v1/admin/dashboard
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}
