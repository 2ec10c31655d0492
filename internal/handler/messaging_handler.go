package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/response"
	"github.com/educonnect/educonnect-backend/internal/service"
	"github.com/educonnect/educonnect-backend/internal/validator"
)

// MessagingHandler handles conversations over REST. Live delivery is served
// by WSHandler.
type MessagingHandler struct {
	messagingService *service.MessagingService
}

// NewMessagingHandler creates a new MessagingHandler.
func NewMessagingHandler(messagingService *service.MessagingService) *MessagingHandler {
	return &MessagingHandler{messagingService: messagingService}
}

// CreateConversation godoc
// POST /api/v1/messaging/conversations
func (h *MessagingHandler) CreateConversation(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req model.CreateConversationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		invalid(c, fields)
		return
	}

	conv, err := h.messagingService.CreateConversation(c.Request.Context(), p, req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"conversation": conv})
}

// ListConversations godoc
// GET /api/v1/messaging/conversations
func (h *MessagingHandler) ListConversations(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	convs, err := h.messagingService.List(c.Request.Context(), p)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"conversations": convs})
}

// SendMessage godoc
// POST /api/v1/messaging/conversations/:id/messages
func (h *MessagingHandler) SendMessage(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.SendMessageRequest
	if fields := validator.Bind(c, &req); fields != nil {
		invalid(c, fields)
		return
	}

	msg, err := h.messagingService.Send(c.Request.Context(), p, id, req)
	if err != nil {
		fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": msg})
}
