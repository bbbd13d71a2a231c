package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mobilis/backend/internal/dto"
	"mobilis/backend/internal/service"
	"mobilis/backend/pkg/response"
)

// AuthHandler serves registration, login, and logout.
type AuthHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
}

// Register handles POST /users.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	if _, err := h.auth.Register(c.Request.Context(), &req); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.UnprocessableEntity(c, "The email has already been taken.")
			return
		}
		respondError(c, h.logger, err)
		return
	}

	response.CreatedMessage(c, "User created successfully")
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid credentials")
			return
		}
		respondError(c, h.logger, err)
		return
	}

	response.OK(c, resp)
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := currentClaims(c)
	if claims == nil {
		response.Unauthorized(c, "Invalid token")
		return
	}

	if err := h.auth.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, h.logger, err)
		return
	}

	response.Message(c, "Logged out successfully")
}
