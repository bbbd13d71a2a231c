package dto

import (
	"time"

	"mobilis/backend/internal/model"
)

// CreateMessageRequest is the POST /missions/{id}/messages payload.
type CreateMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// MessageResponse is the API view of a thread message.
type MessageResponse struct {
	ID        string        `json:"id"`
	MissionID string        `json:"mission_id"`
	UserID    string        `json:"user_id"`
	Content   string        `json:"content"`
	User      *UserResponse `json:"user,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewMessageResponse converts a model into its API shape.
func NewMessageResponse(m *model.Message) MessageResponse {
	resp := MessageResponse{
		ID:        m.ID,
		MissionID: m.MissionID,
		UserID:    m.UserID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
	if m.User != nil {
		user := NewUserResponse(m.User)
		resp.User = &user
	}
	return resp
}

// NewMessageResponseList converts a slice of models.
func NewMessageResponseList(messages []model.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, NewMessageResponse(&messages[i]))
	}
	return out
}
