package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quadworks/flowdeck/internal/domain/entities"
	"github.com/quadworks/flowdeck/internal/domain/repositories"
)

// followUpRepository implements the FollowUpRepository interface
type followUpRepository struct {
	db *gorm.DB
}

// NewFollowUpRepository creates a new follow-up repository
func NewFollowUpRepository(db *gorm.DB) repositories.FollowUpRepository {
	return &followUpRepository{db: db}
}

// Create persists a generated proposal
func (r *followUpRepository) Create(ctx context.Context, followUp *entities.FollowUp) error {
	return r.db.WithContext(ctx).Create(followUp).Error
}

// FindByMeeting retrieves all proposals of a meeting
func (r *followUpRepository) FindByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.FollowUp, error) {
	var followUps []*entities.FollowUp
	err := r.db.WithContext(ctx).
		Preload("SuggestedAssignee").
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&followUps).Error
	return followUps, err
}

// ExistingActionItemIDs returns the action item ids already covered
// by a proposal for this meeting.
func (r *followUpRepository) ExistingActionItemIDs(ctx context.Context, meetingID uuid.UUID) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&entities.FollowUp{}).
		Where("meeting_id = ?", meetingID).
		Pluck("action_item_id", &ids).Error
	if err != nil {
		return nil, err
	}
	covered := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		covered[id] = true
	}
	return covered, nil
}
