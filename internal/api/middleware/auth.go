package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mobilis/backend/pkg/jwt"
	"mobilis/backend/pkg/redis"
	"mobilis/backend/pkg/response"
)

// Context keys set by JWTAuth.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextClaims = "claims"
)

// JWTAuth verifies the Bearer token and rejects blacklisted ones. On success
// the user ID, role, and full claims are stored on the gin context.
// redisClient may be nil; the blacklist check is then skipped.
func JWTAuth(manager *jwt.Manager, redisClient *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "Authorization header missing")
			c.Abort()
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			response.Unauthorized(c, "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := manager.ParseToken(tokenString)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				response.Unauthorized(c, "Token expired")
			} else {
				response.Unauthorized(c, "Invalid token")
			}
			c.Abort()
			return
		}

		if redisClient != nil {
			blacklisted, err := redisClient.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Redis being down should not lock every user out
				logger.Error("blacklist check failed", zap.Error(err))
			} else if blacklisted {
				response.Unauthorized(c, "Token revoked")
				c.Abort()
				return
			}
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// RequireRole gates a route group to one role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != role {
			response.Forbidden(c, "Unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}
