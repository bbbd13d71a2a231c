package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mobilis/backend/internal/dto"
	"mobilis/backend/internal/service"
	"mobilis/backend/pkg/response"
)

// MissionHandler serves the mission lifecycle endpoints.
type MissionHandler struct {
	missions *service.MissionService
	logger   *zap.Logger
}

// List handles GET /missions, the public marketplace view.
func (h *MissionHandler) List(c *gin.Context) {
	missions, err := h.missions.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, missions)
}

// My handles GET /missions/my/missions.
func (h *MissionHandler) My(c *gin.Context) {
	missions, err := h.missions.MyMissions(c.Request.Context(), currentActor(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, missions)
}

// Pended handles GET /operator/pended, the review backlog.
func (h *MissionHandler) Pended(c *gin.Context) {
	missions, err := h.missions.ListPended(c.Request.Context(), currentActor(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, missions)
}

// Create handles POST /missions.
func (h *MissionHandler) Create(c *gin.Context) {
	var req dto.CreateMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	mission, err := h.missions.Create(c.Request.Context(), currentActor(c), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Created(c, mission)
}

// Get handles GET /missions/:id.
func (h *MissionHandler) Get(c *gin.Context) {
	mission, err := h.missions.Get(c.Request.Context(), currentActor(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, mission)
}

// Publish handles PATCH /missions/:id/publish.
func (h *MissionHandler) Publish(c *gin.Context) {
	mission, err := h.missions.Publish(c.Request.Context(), currentActor(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, mission)
}

// Review handles PATCH /missions/:id/accept, the operator decision. The body
// is optional; a reason rejects the mission.
func (h *MissionHandler) Review(c *gin.Context) {
	var req dto.ReviewMissionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.UnprocessableEntity(c, err.Error())
			return
		}
	}

	mission, err := h.missions.Review(c.Request.Context(), currentActor(c), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, mission)
}

// Close handles PATCH /missions/:id/close.
func (h *MissionHandler) Close(c *gin.Context) {
	mission, err := h.missions.Close(c.Request.Context(), currentActor(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, mission)
}

// Delete handles DELETE /missions/:id.
func (h *MissionHandler) Delete(c *gin.Context) {
	if err := h.missions.Delete(c.Request.Context(), currentActor(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.NoContent(c)
}
