// Package router assembles the gin engine: middleware chain plus every route.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mobilis/backend/config"
	"mobilis/backend/internal/api/handler"
	"mobilis/backend/internal/api/middleware"
	"mobilis/backend/internal/model"
	"mobilis/backend/pkg/jwt"
	"mobilis/backend/pkg/redis"
)

// Setup builds the HTTP router. redisClient may be nil.
func Setup(
	cfg *config.Config,
	handlers *handler.Handlers,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// public
	r.POST("/users", handlers.Auth.Register)
	r.POST("/login", handlers.Auth.Login)

	// authenticated
	auth := r.Group("/", middleware.JWTAuth(jwtManager, redisClient, logger))
	{
		auth.POST("/logout", handlers.Auth.Logout)
		auth.GET("/users", handlers.User.Me)
		auth.GET("/users/:id", handlers.User.Get)

		auth.GET("/missions", handlers.Mission.List)
		auth.GET("/missions/my/missions", handlers.Mission.My)
		auth.GET("/missions/my/calendar", handlers.Export.Calendar)
		auth.POST("/missions", handlers.Mission.Create)
		auth.GET("/missions/:id", handlers.Mission.Get)
		auth.PATCH("/missions/:id/publish", handlers.Mission.Publish)
		auth.PATCH("/missions/:id/accept", handlers.Mission.Review)
		auth.PATCH("/missions/:id/close", handlers.Mission.Close)
		auth.DELETE("/missions/:id", handlers.Mission.Delete)

		auth.POST("/missions/:id/proposals", handlers.Proposal.Create)
		auth.GET("/missions/:id/proposals", handlers.Proposal.ListByMission)
		auth.GET("/proposals/:id", handlers.Proposal.Get)
		auth.PATCH("/proposals/:id/accept", handlers.Proposal.Accept)
		auth.PATCH("/proposals/:id/reject", handlers.Proposal.Reject)

		auth.POST("/missions/:id/messages", handlers.Message.Create)
		auth.GET("/missions/:id/messages", handlers.Message.List)

		operator := auth.Group("/", middleware.RequireRole(model.RoleOperator))
		{
			operator.GET("/operator/pended", handlers.Mission.Pended)
			operator.GET("/export/missions", handlers.Export.Missions)
		}
	}

	return r
}
