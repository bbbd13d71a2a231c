package repository

import (
	"context"

	"gorm.io/gorm"

	"mobilis/backend/internal/model"
)

// MessageRepository is the message data access contract.
type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	GetByID(ctx context.Context, id string) (*model.Message, error)
	ListByMission(ctx context.Context, missionID string) ([]model.Message, error)
	DistinctPosterIDs(ctx context.Context, missionID string) ([]string, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates the GORM-backed message repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (*model.Message, error) {
	var message model.Message
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&message, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &message, nil
}

func (r *messageRepository) ListByMission(ctx context.Context, missionID string) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("mission_id = ?", missionID).
		Order("created_at").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// DistinctPosterIDs returns the IDs of every user who posted on the mission
// thread. Used to fan out new-message notifications.
func (r *messageRepository) DistinctPosterIDs(ctx context.Context, missionID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("mission_id = ?", missionID).
		Distinct("user_id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
