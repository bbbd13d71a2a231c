package handler

import (
	"github.com/gin-gonic/gin"

	"mobilis/backend/internal/service"
	"mobilis/backend/pkg/response"
)

// UserHandler serves account lookups.
type UserHandler struct {
	users *service.UserService
}

// Me handles GET /users, the caller's own profile.
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), currentActor(c).ID)
	if err != nil {
		respondError(c, nil, err)
		return
	}
	response.OK(c, user)
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, nil, err)
		return
	}
	response.OK(c, user)
}
