package handler

import (
	"github.com/gin-gonic/gin"
	orderingapp "github.com/orderflow/backend/internal/application/ordering"
)

// ChatHandler handles the per-order discussion thread
type ChatHandler struct {
	BaseHandler
	chatService *orderingapp.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService *orderingapp.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// Post appends a message to an order's thread and fans it out to
// connected stream clients.
func (h *ChatHandler) Post(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderingapp.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	message, err := h.chatService.Post(c.Request.Context(), getActor(c), orderID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, message)
}

// History returns all messages of an order's thread in chronological order
func (h *ChatHandler) History(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	messages, err := h.chatService.History(c.Request.Context(), getActor(c), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, messages)
}
