package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"mobilis/backend/internal/dto"
	"mobilis/backend/internal/event"
	"mobilis/backend/internal/lifecycle"
	"mobilis/backend/internal/model"
	"mobilis/backend/internal/policy"
	"mobilis/backend/internal/repository"
)

var (
	// ErrMissionNotFound is returned when the mission does not exist.
	ErrMissionNotFound = errors.New("mission not found")
	// ErrMissionNotAvailable is returned when a review is requested on a
	// mission that is not pending.
	ErrMissionNotAvailable = errors.New("mission not available for acceptance")
)

// MissionService implements the mission lifecycle.
type MissionService struct {
	repo       *repository.Repository
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewMissionService creates the mission service.
func NewMissionService(repo *repository.Repository, dispatcher *Dispatcher, logger *zap.Logger) *MissionService {
	return &MissionService{repo: repo, dispatcher: dispatcher, logger: logger}
}

// List returns the published missions, the public marketplace view.
func (s *MissionService) List(ctx context.Context) ([]dto.MissionResponse, error) {
	missions, err := s.repo.Mission.ListByStatus(ctx, lifecycle.StatusPublished)
	if err != nil {
		return nil, fmt.Errorf("list published missions: %w", err)
	}
	return dto.NewMissionResponseList(missions), nil
}

// MyMissions returns the missions the actor created or was assigned.
func (s *MissionService) MyMissions(ctx context.Context, actor policy.Actor) ([]dto.MissionResponse, error) {
	missions, err := s.repo.Mission.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list missions of %s: %w", actor.ID, err)
	}
	return dto.NewMissionResponseList(missions), nil
}

// ListPended returns the operator review backlog.
func (s *MissionService) ListPended(ctx context.Context, actor policy.Actor) ([]dto.MissionResponse, error) {
	if !policy.CanListPended(actor) {
		return nil, ErrForbidden
	}
	missions, err := s.repo.Mission.ListByStatus(ctx, lifecycle.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending missions: %w", err)
	}
	return dto.NewMissionResponseList(missions), nil
}

// Create stores a new mission in DRAFT owned by the actor.
func (s *MissionService) Create(ctx context.Context, actor policy.Actor, req *dto.CreateMissionRequest) (*dto.MissionResponse, error) {
	when, err := req.ParseWhen()
	if err != nil {
		return nil, err
	}

	mission := &model.Mission{
		Title:       req.Title,
		Description: req.Description,
		From:        req.From,
		To:          req.To,
		When:        when,
		Distance:    req.Distance,
		Status:      lifecycle.StatusDraft,
		CreatedByID: actor.ID,
	}
	if err := s.repo.Mission.Create(ctx, mission); err != nil {
		return nil, fmt.Errorf("create mission: %w", err)
	}

	s.logger.Info("mission created",
		zap.String("mission_id", mission.ID),
		zap.String("created_by", actor.ID),
	)
	resp := dto.NewMissionResponse(mission)
	return &resp, nil
}

// Get returns one mission, guarded by the visibility policy.
func (s *MissionService) Get(ctx context.Context, actor policy.Actor, id string) (*dto.MissionResponse, error) {
	mission, err := s.getMission(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewMission(actor, mission) {
		return nil, ErrForbidden
	}
	resp := dto.NewMissionResponse(mission)
	return &resp, nil
}

// Publish moves the mission toward visibility. An operator force-publishes
// it immediately; the creator submits it for review, which parks it in
// PENDING and notifies the operators. Works from any status, so a rejected
// mission can be resubmitted.
func (s *MissionService) Publish(ctx context.Context, actor policy.Actor, id string) (*dto.MissionResponse, error) {
	mission, err := s.getMission(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanSubmitForReview(actor, mission) {
		return nil, ErrForbidden
	}

	target := lifecycle.PublishAs(actor.IsOperator())
	if !lifecycle.CanTransition(mission.Status, target) {
		return nil, ErrMissionNotAvailable
	}

	mission.Status = target
	mission.RejectionReason = nil
	if err := s.repo.Mission.Update(ctx, mission); err != nil {
		return nil, fmt.Errorf("update mission: %w", err)
	}

	if target == lifecycle.StatusPending {
		s.dispatcher.Dispatch(ctx, event.New(event.MissionPended, mission.ID))
	}

	s.logger.Info("mission submitted",
		zap.String("mission_id", mission.ID),
		zap.String("status", string(mission.Status)),
	)
	resp := dto.NewMissionResponse(mission)
	return &resp, nil
}

// Review is the operator decision on a pending mission. An empty reason
// publishes it, a non-empty one rejects it and stores the reason. Reviewing
// a mission that is not pending fails with ErrMissionNotAvailable.
func (s *MissionService) Review(ctx context.Context, actor policy.Actor, id, reason string) (*dto.MissionResponse, error) {
	if !policy.CanReviewMission(actor) {
		return nil, ErrForbidden
	}
	mission, err := s.getMission(ctx, id)
	if err != nil {
		return nil, err
	}

	target, err := lifecycle.Review(mission.Status, reason)
	if err != nil {
		return nil, ErrMissionNotAvailable
	}

	mission.Status = target
	if target == lifecycle.StatusRejected {
		mission.RejectionReason = &reason
	} else {
		mission.RejectionReason = nil
	}
	if err := s.repo.Mission.Update(ctx, mission); err != nil {
		return nil, fmt.Errorf("update mission: %w", err)
	}

	if target == lifecycle.StatusRejected {
		s.dispatcher.Dispatch(ctx, event.New(event.MissionRejected, mission.ID))
	} else {
		s.dispatcher.Dispatch(ctx, event.New(event.MissionAccepted, mission.ID))
	}

	s.logger.Info("mission reviewed",
		zap.String("mission_id", mission.ID),
		zap.String("status", string(mission.Status)),
		zap.String("operator", actor.ID),
	)
	resp := dto.NewMissionResponse(mission)
	return &resp, nil
}

// Close ends the mission. Closing an already closed mission succeeds without
// changing anything.
func (s *MissionService) Close(ctx context.Context, actor policy.Actor, id string) (*dto.MissionResponse, error) {
	mission, err := s.getMission(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanCloseMission(actor, mission) {
		return nil, ErrForbidden
	}

	if mission.Status != lifecycle.StatusClosed {
		mission.Status = lifecycle.Close(mission.Status)
		if err := s.repo.Mission.Update(ctx, mission); err != nil {
			return nil, fmt.Errorf("update mission: %w", err)
		}
		s.logger.Info("mission closed", zap.String("mission_id", mission.ID))
	}

	resp := dto.NewMissionResponse(mission)
	return &resp, nil
}

// Delete removes the mission and, through the schema, its proposals and
// messages.
func (s *MissionService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	mission, err := s.getMission(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanDeleteMission(actor, mission) {
		return ErrForbidden
	}
	if err := s.repo.Mission.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete mission: %w", err)
	}
	s.logger.Info("mission deleted", zap.String("mission_id", id), zap.String("by", actor.ID))
	return nil
}

func (s *MissionService) getMission(ctx context.Context, id string) (*model.Mission, error) {
	mission, err := s.repo.Mission.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMissionNotFound
		}
		return nil, fmt.Errorf("get mission: %w", err)
	}
	return mission, nil
}
