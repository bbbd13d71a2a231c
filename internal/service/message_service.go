package service

import (
	"context"
	"errors"
	"fmt"

	"mobilis/backend/internal/dto"
	"mobilis/backend/internal/event"
	"mobilis/backend/internal/model"
	"mobilis/backend/internal/policy"
	"mobilis/backend/internal/repository"
)

// MessageService implements the mission discussion thread. Any authenticated
// user may read and post; the fan-out keeps the conversation's participants
// informed.
type MessageService struct {
	repo       *repository.Repository
	dispatcher *Dispatcher
}

// NewMessageService creates the message service.
func NewMessageService(repo *repository.Repository, dispatcher *Dispatcher) *MessageService {
	return &MessageService{repo: repo, dispatcher: dispatcher}
}

// Post adds a message to the mission thread and notifies the participants.
func (s *MessageService) Post(ctx context.Context, actor policy.Actor, missionID string, req *dto.CreateMessageRequest) (*dto.MessageResponse, error) {
	mission, err := s.repo.Mission.GetByID(ctx, missionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMissionNotFound
		}
		return nil, fmt.Errorf("get mission: %w", err)
	}

	message := &model.Message{
		MissionID: mission.ID,
		UserID:    actor.ID,
		Content:   req.Content,
	}
	if err := s.repo.Message.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	ev := event.New(event.NewMessage, mission.ID)
	ev.MessageID = message.ID
	s.dispatcher.Dispatch(ctx, ev)

	resp := dto.NewMessageResponse(message)
	return &resp, nil
}

// List returns the mission thread in chronological order.
func (s *MessageService) List(ctx context.Context, missionID string) ([]dto.MessageResponse, error) {
	if _, err := s.repo.Mission.GetByID(ctx, missionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMissionNotFound
		}
		return nil, fmt.Errorf("get mission: %w", err)
	}

	messages, err := s.repo.Message.ListByMission(ctx, missionID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return dto.NewMessageResponseList(messages), nil
}
