package repository

import (
	"context"

	"gorm.io/gorm"

	"mobilis/backend/internal/lifecycle"
	"mobilis/backend/internal/model"
)

// MissionRepository is the mission data access contract.
type MissionRepository interface {
	Create(ctx context.Context, mission *model.Mission) error
	GetByID(ctx context.Context, id string) (*model.Mission, error)
	Update(ctx context.Context, mission *model.Mission) error
	Delete(ctx context.Context, id string) error
	ListByStatus(ctx context.Context, status lifecycle.Status) ([]model.Mission, error)
	ListByUser(ctx context.Context, userID string) ([]model.Mission, error)
	ListAll(ctx context.Context) ([]model.Mission, error)
}

type missionRepository struct {
	db *gorm.DB
}

// NewMissionRepository creates the GORM-backed mission repository.
func NewMissionRepository(db *gorm.DB) MissionRepository {
	return &missionRepository{db: db}
}

func (r *missionRepository) Create(ctx context.Context, mission *model.Mission) error {
	return r.db.WithContext(ctx).Create(mission).Error
}

func (r *missionRepository) GetByID(ctx context.Context, id string) (*model.Mission, error) {
	var mission model.Mission
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("AssignedTo").
		First(&mission, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &mission, nil
}

func (r *missionRepository) Update(ctx context.Context, mission *model.Mission) error {
	return r.db.WithContext(ctx).Save(mission).Error
}

func (r *missionRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Mission{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *missionRepository) ListByStatus(ctx context.Context, status lifecycle.Status) ([]model.Mission, error) {
	var missions []model.Mission
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("AssignedTo").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&missions).Error
	if err != nil {
		return nil, err
	}
	return missions, nil
}

// ListByUser returns missions the user created or was assigned to.
func (r *missionRepository) ListByUser(ctx context.Context, userID string) ([]model.Mission, error) {
	var missions []model.Mission
	err := r.db.WithContext(ctx).
		Preload("AssignedTo").
		Where("created_by = ? OR assigned_to = ?", userID, userID).
		Order("created_at DESC").
		Find(&missions).Error
	if err != nil {
		return nil, err
	}
	return missions, nil
}

func (r *missionRepository) ListAll(ctx context.Context) ([]model.Mission, error) {
	var missions []model.Mission
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("AssignedTo").
		Order("created_at DESC").
		Find(&missions).Error
	if err != nil {
		return nil, err
	}
	return missions, nil
}
