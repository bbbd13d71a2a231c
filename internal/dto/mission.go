package dto

import (
	"fmt"
	"time"

	"mobilis/backend/internal/model"
)

const dateLayout = "2006-01-02"

// CreateMissionRequest is the POST /missions payload. The date arrives as
// "YYYY-MM-DD", matching what the dashboard sends.
type CreateMissionRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	From        string  `json:"from" binding:"required"`
	To          string  `json:"to" binding:"required"`
	When        string  `json:"when" binding:"required"`
	Distance    float64 `json:"distance" binding:"required,gt=0"`
}

// ParseWhen validates and parses the mission date.
func (r *CreateMissionRequest) ParseWhen() (time.Time, error) {
	t, err := time.Parse(dateLayout, r.When)
	if err != nil {
		return time.Time{}, fmt.Errorf("when must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

// ReviewMissionRequest is the PATCH /missions/{id}/accept payload. An empty
// or absent reason publishes the mission, a non-empty one rejects it.
type ReviewMissionRequest struct {
	Reason string `json:"reason"`
}

// MissionResponse is the API view of a mission.
type MissionResponse struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	From            string        `json:"from"`
	To              string        `json:"to"`
	When            string        `json:"when"`
	Distance        float64       `json:"distance"`
	Status          string        `json:"status"`
	RejectionReason *string       `json:"rejection_reason,omitempty"`
	CreatedBy       string        `json:"created_by"`
	AssignedTo      *string       `json:"assigned_to,omitempty"`
	Creator         *UserResponse `json:"creator,omitempty"`
	Assignee        *UserResponse `json:"assignee,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// NewMissionResponse converts a model into its API shape, flattening the
// preloaded associations when present.
func NewMissionResponse(m *model.Mission) MissionResponse {
	resp := MissionResponse{
		ID:              m.ID,
		Title:           m.Title,
		Description:     m.Description,
		From:            m.From,
		To:              m.To,
		When:            m.When.Format(dateLayout),
		Distance:        m.Distance,
		Status:          string(m.Status),
		RejectionReason: m.RejectionReason,
		CreatedBy:       m.CreatedByID,
		AssignedTo:      m.AssignedToID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.CreatedBy != nil {
		creator := NewUserResponse(m.CreatedBy)
		resp.Creator = &creator
	}
	if m.AssignedTo != nil {
		assignee := NewUserResponse(m.AssignedTo)
		resp.Assignee = &assignee
	}
	return resp
}

// NewMissionResponseList converts a slice of models.
func NewMissionResponseList(missions []model.Mission) []MissionResponse {
	out := make([]MissionResponse, 0, len(missions))
	for i := range missions {
		out = append(out, NewMissionResponse(&missions[i]))
	}
	return out
}
