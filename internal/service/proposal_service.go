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
	// ErrProposalNotFound is returned when the proposal does not exist.
	ErrProposalNotFound = errors.New("proposal not found")
	// ErrProposalDecided is returned when accepting or rejecting a proposal
	// that already left PENDING.
	ErrProposalDecided = errors.New("proposal already decided")
)

// ProposalService implements bidding and the accept/reject decision.
type ProposalService struct {
	repo       *repository.Repository
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewProposalService creates the proposal service.
func NewProposalService(repo *repository.Repository, dispatcher *Dispatcher, logger *zap.Logger) *ProposalService {
	return &ProposalService{repo: repo, dispatcher: dispatcher, logger: logger}
}

// Create stores a bid on the mission and notifies its creator. There is no
// status guard and no uniqueness constraint: a mover may bid on any mission
// they can reference and may bid more than once.
func (s *ProposalService) Create(ctx context.Context, actor policy.Actor, missionID string, req *dto.CreateProposalRequest) (*dto.ProposalResponse, error) {
	mission, err := s.repo.Mission.GetByID(ctx, missionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMissionNotFound
		}
		return nil, fmt.Errorf("get mission: %w", err)
	}

	proposal := &model.Proposal{
		MissionID:     mission.ID,
		UserID:        actor.ID,
		Message:       req.Message,
		ProposedPrice: req.ProposedPrice,
		Status:        model.ProposalPending,
	}
	if err := s.repo.Proposal.Create(ctx, proposal); err != nil {
		return nil, fmt.Errorf("create proposal: %w", err)
	}

	ev := event.New(event.NewProposition, mission.ID)
	ev.ProposalID = proposal.ID
	s.dispatcher.Dispatch(ctx, ev)

	s.logger.Info("proposal created",
		zap.String("proposal_id", proposal.ID),
		zap.String("mission_id", mission.ID),
		zap.String("user_id", actor.ID),
	)
	resp := dto.NewProposalResponse(proposal)
	return &resp, nil
}

// Get returns one proposal, visible to the bidder, the mission creator, and
// operators.
func (s *ProposalService) Get(ctx context.Context, actor policy.Actor, id string) (*dto.ProposalResponse, error) {
	proposal, err := s.getProposal(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewProposal(actor, proposal) {
		return nil, ErrForbidden
	}
	resp := dto.NewProposalResponse(proposal)
	return &resp, nil
}

// ListByMission returns the bids on a mission. Only the creator and
// operators may look, and only while the mission is published.
func (s *ProposalService) ListByMission(ctx context.Context, actor policy.Actor, missionID string) ([]dto.ProposalResponse, error) {
	mission, err := s.repo.Mission.GetByID(ctx, missionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMissionNotFound
		}
		return nil, fmt.Errorf("get mission: %w", err)
	}
	if !policy.CanListProposals(actor, mission) {
		return nil, ErrForbidden
	}

	proposals, err := s.repo.Proposal.ListByMission(ctx, missionID)
	if err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	return dto.NewProposalResponseList(proposals), nil
}

// Accept marks the proposal accepted and assigns its mission to the bidder.
// The proposal and the mission change in one transaction; the notification
// is dispatched only after the commit.
func (s *ProposalService) Accept(ctx context.Context, actor policy.Actor, id string) error {
	proposal, err := s.getProposal(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanDecideProposal(actor, proposal) {
		return ErrForbidden
	}
	if proposal.Status != model.ProposalPending {
		return ErrProposalDecided
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		mission, err := tx.Mission.GetByID(ctx, proposal.MissionID)
		if err != nil {
			return fmt.Errorf("get mission: %w", err)
		}

		proposal.Status = model.ProposalAccepted
		if err := tx.Proposal.Update(ctx, proposal); err != nil {
			return fmt.Errorf("update proposal: %w", err)
		}

		mission.Status = lifecycle.Assign(mission.Status)
		mission.AssignedToID = &proposal.UserID
		if err := tx.Mission.Update(ctx, mission); err != nil {
			return fmt.Errorf("update mission: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("accept proposal: %w", err)
	}

	ev := event.New(event.PropositionAccepted, proposal.MissionID)
	ev.ProposalID = proposal.ID
	s.dispatcher.Dispatch(ctx, ev)

	s.logger.Info("proposal accepted",
		zap.String("proposal_id", proposal.ID),
		zap.String("mission_id", proposal.MissionID),
		zap.String("assigned_to", proposal.UserID),
	)
	return nil
}

// Reject marks the proposal rejected. The mission is untouched.
func (s *ProposalService) Reject(ctx context.Context, actor policy.Actor, id string) error {
	proposal, err := s.getProposal(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanDecideProposal(actor, proposal) {
		return ErrForbidden
	}
	if proposal.Status != model.ProposalPending {
		return ErrProposalDecided
	}

	proposal.Status = model.ProposalRejected
	if err := s.repo.Proposal.Update(ctx, proposal); err != nil {
		return fmt.Errorf("update proposal: %w", err)
	}

	ev := event.New(event.PropositionRejected, proposal.MissionID)
	ev.ProposalID = proposal.ID
	s.dispatcher.Dispatch(ctx, ev)

	s.logger.Info("proposal rejected",
		zap.String("proposal_id", proposal.ID),
		zap.String("mission_id", proposal.MissionID),
	)
	return nil
}

func (s *ProposalService) getProposal(ctx context.Context, id string) (*model.Proposal, error) {
	proposal, err := s.repo.Proposal.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	return proposal, nil
}
