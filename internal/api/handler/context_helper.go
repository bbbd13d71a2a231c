package handler

import (
	"github.com/gin-gonic/gin"

	"mobilis/backend/internal/api/middleware"
	"mobilis/backend/internal/policy"
	"mobilis/backend/pkg/jwt"
)

// currentActor reads the authenticated identity set by the auth middleware.
// Routes using it always sit behind JWTAuth, so the values are present.
func currentActor(c *gin.Context) policy.Actor {
	return policy.Actor{
		ID:   c.GetString(middleware.ContextUserID),
		Role: c.GetString(middleware.ContextRole),
	}
}

// currentClaims returns the full token claims, used by logout.
func currentClaims(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(middleware.ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}
