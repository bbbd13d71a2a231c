// Package handler contains the gin handlers. They bind and validate input,
// call the services, and translate service errors to the wire contract.
package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mobilis/backend/internal/service"
	"mobilis/backend/pkg/response"
)

// Handlers aggregates every handler behind one constructor.
type Handlers struct {
	Auth     *AuthHandler
	User     *UserHandler
	Mission  *MissionHandler
	Proposal *ProposalHandler
	Message  *MessageHandler
	Export   *ExportHandler
}

// New wires the handlers.
func New(services *service.Services, logger *zap.Logger) *Handlers {
	return &Handlers{
		Auth:     &AuthHandler{auth: services.Auth, logger: logger},
		User:     &UserHandler{users: services.User},
		Mission:  &MissionHandler{missions: services.Mission, logger: logger},
		Proposal: &ProposalHandler{proposals: services.Proposal, logger: logger},
		Message:  &MessageHandler{messages: services.Message},
		Export:   &ExportHandler{exports: services.Export, logger: logger},
	}
}

// respondError maps service sentinel errors onto the HTTP contract. Anything
// unmapped becomes a 500 with the detail kept in the log, not the body.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, "Unauthorized")
	case errors.Is(err, service.ErrMissionNotFound):
		response.NotFound(c, "Mission not found")
	case errors.Is(err, service.ErrProposalNotFound):
		response.NotFound(c, "Proposal not found")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, "User not found")
	case errors.Is(err, service.ErrMissionNotAvailable):
		response.BadRequest(c, "Mission not available for acceptance")
	case errors.Is(err, service.ErrProposalDecided):
		response.BadRequest(c, "Proposal already decided")
	case errors.Is(err, service.ErrExportEmpty):
		response.NotFound(c, "No missions to export")
	default:
		if logger != nil {
			logger.Error("request failed", zap.Error(err))
		}
		_ = c.Error(err)
		response.InternalError(c, "Internal server error")
	}
}
