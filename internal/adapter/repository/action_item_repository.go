package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quadworks/flowdeck/internal/domain/entities"
	"github.com/quadworks/flowdeck/internal/domain/repositories"
)

// actionItemRepository implements the ActionItemRepository interface
type actionItemRepository struct {
	db *gorm.DB
}

// NewActionItemRepository creates a new action item repository
func NewActionItemRepository(db *gorm.DB) repositories.ActionItemRepository {
	return &actionItemRepository{db: db}
}

// CreateBatch inserts the extracted items of one meeting.
func (r *actionItemRepository) CreateBatch(ctx context.Context, items []*entities.ActionItem) error {
	return r.db.WithContext(ctx).Create(items).Error
}

// FindByMeeting retrieves all items of a meeting, oldest first
func (r *actionItemRepository) FindByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error) {
	var items []*entities.ActionItem
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

// FindConfirmedPending retrieves the items eligible for follow-up
// generation.
func (r *actionItemRepository) FindConfirmedPending(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error) {
	var items []*entities.ActionItem
	err := r.db.WithContext(ctx).
		Where("meeting_id = ? AND ba_confirmed = true AND status = ?", meetingID, entities.ActionItemStatusPending).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}
