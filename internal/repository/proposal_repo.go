package repository

import (
	"context"

	"gorm.io/gorm"

	"mobilis/backend/internal/model"
)

// ProposalRepository is the proposal data access contract.
type ProposalRepository interface {
	Create(ctx context.Context, proposal *model.Proposal) error
	GetByID(ctx context.Context, id string) (*model.Proposal, error)
	Update(ctx context.Context, proposal *model.Proposal) error
	ListByMission(ctx context.Context, missionID string) ([]model.Proposal, error)
}

type proposalRepository struct {
	db *gorm.DB
}

// NewProposalRepository creates the GORM-backed proposal repository.
func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) Create(ctx context.Context, proposal *model.Proposal) error {
	return r.db.WithContext(ctx).Create(proposal).Error
}

func (r *proposalRepository) GetByID(ctx context.Context, id string) (*model.Proposal, error) {
	var proposal model.Proposal
	err := r.db.WithContext(ctx).
		Preload("Mission").
		Preload("User").
		First(&proposal, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &proposal, nil
}

func (r *proposalRepository) Update(ctx context.Context, proposal *model.Proposal) error {
	return r.db.WithContext(ctx).Save(proposal).Error
}

func (r *proposalRepository) ListByMission(ctx context.Context, missionID string) ([]model.Proposal, error) {
	var proposals []model.Proposal
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("mission_id = ?", missionID).
		Order("created_at").
		Find(&proposals).Error
	if err != nil {
		return nil, err
	}
	return proposals, nil
}
