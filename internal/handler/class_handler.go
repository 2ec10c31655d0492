package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/response"
	"github.com/educonnect/educonnect-backend/internal/service"
	"github.com/educonnect/educonnect-backend/internal/validator"
)

// ClassHandler handles class management and rosters.
type ClassHandler struct {
	classService *service.ClassService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// ListClasses godoc
// GET /api/v1/classes
// Lists all classes without pagination.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classService.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// CreateClass godoc
// POST /api/v1/classes
// Creates a new class. The academic year defaults to the school setting.
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		invalid(c, fields)
		return
	}

	class, err := h.classService.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"class": class})
}

// GetClass godoc
// GET /api/v1/classes/:id
func (h *ClassHandler) GetClass(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	class, err := h.classService.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// AssignUser godoc
// POST /api/v1/classes/:id/assign
// Overwrites the user's class reference.
func (h *ClassHandler) AssignUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.AssignClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		invalid(c, fields)
		return
	}

	user, err := h.classService.Assign(c.Request.Context(), id, req.UserID)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// Roster godoc
// GET /api/v1/classes/:id/roster
func (h *ClassHandler) Roster(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	students, err := h.classService.Roster(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"students": students})
}

// MyClass godoc
// GET /api/v1/classes/my-class
// Returns the caller's class, or null when unassigned.
func (h *ClassHandler) MyClass(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	class, err := h.classService.MyClass(c.Request.Context(), p)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// MyRoster godoc
// GET /api/v1/classes/my-roster
func (h *ClassHandler) MyRoster(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	students, err := h.classService.MyRoster(c.Request.Context(), p)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"students": students})
}
