package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mobilis/backend/internal/dto"
	"mobilis/backend/internal/service"
	"mobilis/backend/pkg/response"
)

// ProposalHandler serves bidding and the accept/reject decision.
type ProposalHandler struct {
	proposals *service.ProposalService
	logger    *zap.Logger
}

// Create handles POST /missions/:id/proposals.
func (h *ProposalHandler) Create(c *gin.Context) {
	var req dto.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	proposal, err := h.proposals.Create(c.Request.Context(), currentActor(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Created(c, proposal)
}

// Get handles GET /proposals/:id.
func (h *ProposalHandler) Get(c *gin.Context) {
	proposal, err := h.proposals.Get(c.Request.Context(), currentActor(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, proposal)
}

// ListByMission handles GET /missions/:id/proposals.
func (h *ProposalHandler) ListByMission(c *gin.Context) {
	proposals, err := h.proposals.ListByMission(c.Request.Context(), currentActor(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.OK(c, proposals)
}

// Accept handles PATCH /proposals/:id/accept.
func (h *ProposalHandler) Accept(c *gin.Context) {
	if err := h.proposals.Accept(c.Request.Context(), currentActor(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Message(c, "Proposal accepted and mission assigned.")
}

// Reject handles PATCH /proposals/:id/reject.
func (h *ProposalHandler) Reject(c *gin.Context) {
	if err := h.proposals.Reject(c.Request.Context(), currentActor(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Message(c, "Proposal rejected.")
}
