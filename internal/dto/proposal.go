package dto

import (
	"time"

	"mobilis/backend/internal/model"
)

// CreateProposalRequest is the POST /missions/{id}/proposals payload.
type CreateProposalRequest struct {
	Message       string  `json:"message"`
	ProposedPrice float64 `json:"proposed_price" binding:"required,gt=0"`
}

// ProposalResponse is the API view of a proposal.
type ProposalResponse struct {
	ID            string        `json:"id"`
	MissionID     string        `json:"mission_id"`
	UserID        string        `json:"user_id"`
	Message       string        `json:"message"`
	ProposedPrice float64       `json:"proposed_price"`
	Status        string        `json:"status"`
	User          *UserResponse `json:"user,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// NewProposalResponse converts a model into its API shape.
func NewProposalResponse(p *model.Proposal) ProposalResponse {
	resp := ProposalResponse{
		ID:            p.ID,
		MissionID:     p.MissionID,
		UserID:        p.UserID,
		Message:       p.Message,
		ProposedPrice: p.ProposedPrice,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
	}
	if p.User != nil {
		user := NewUserResponse(p.User)
		resp.User = &user
	}
	return resp
}

// NewProposalResponseList converts a slice of models.
func NewProposalResponseList(proposals []model.Proposal) []ProposalResponse {
	out := make([]ProposalResponse, 0, len(proposals))
	for i := range proposals {
		out = append(out, NewProposalResponse(&proposals[i]))
	}
	return out
}
