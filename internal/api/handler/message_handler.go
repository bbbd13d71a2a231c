package handler

import (
	"github.com/gin-gonic/gin"

	"mobilis/backend/internal/dto"
	"mobilis/backend/internal/service"
	"mobilis/backend/pkg/response"
)

// MessageHandler serves the mission discussion thread.
type MessageHandler struct {
	messages *service.MessageService
}

// Create handles POST /missions/:id/messages.
func (h *MessageHandler) Create(c *gin.Context) {
	var req dto.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	message, err := h.messages.Post(c.Request.Context(), currentActor(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, nil, err)
		return
	}
	response.Created(c, message)
}

// List handles GET /missions/:id/messages.
func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.messages.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, nil, err)
		return
	}
	response.OK(c, messages)
}
