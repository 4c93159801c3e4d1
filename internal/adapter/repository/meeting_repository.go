package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quadworks/flowdeck/internal/domain/entities"
	"github.com/quadworks/flowdeck/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// Create creates a new meeting
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

// FindByID retrieves a meeting by its ID
func (r *meetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Domain").
		Where("id = ?", id).
		First(&meeting).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// FindScoped retrieves a meeting whose domain belongs to the given
// organization. A meeting in another tenant reports ErrRecordNotFound.
func (r *meetingRepository) FindScoped(ctx context.Context, id, orgID uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Domain").
		Joins("JOIN domains ON domains.id = meetings.domain_id").
		Where("meetings.id = ? AND domains.organization_id = ?", id, orgID).
		First(&meeting).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// Update updates an existing meeting
func (r *meetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Save(meeting).Error
}

// WithMeetingLock runs fn in a transaction holding SELECT ... FOR
// UPDATE on the meeting row. Concurrent review batches against the
// same meeting serialize here.
func (r *meetingRepository) WithMeetingLock(ctx context.Context, meetingID uuid.UUID, fn func(tx repositories.MeetingTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var meeting entities.Meeting
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", meetingID).
			First(&meeting).Error; err != nil {
			return err
		}
		return fn(&meetingTx{tx: tx, meeting: &meeting})
	})
}

// meetingTx is the repository view inside a meeting lock.
type meetingTx struct {
	tx      *gorm.DB
	meeting *entities.Meeting
}

func (m *meetingTx) Meeting() *entities.Meeting {
	return m.meeting
}

func (m *meetingTx) SaveMeeting(meeting *entities.Meeting) error {
	return m.tx.Save(meeting).Error
}

func (m *meetingTx) Items() ([]*entities.ActionItem, error) {
	var items []*entities.ActionItem
	err := m.tx.
		Where("meeting_id = ?", m.meeting.ID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (m *meetingTx) FindItem(itemID uuid.UUID) (*entities.ActionItem, error) {
	var item entities.ActionItem
	err := m.tx.
		Where("id = ? AND meeting_id = ?", itemID, m.meeting.ID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (m *meetingTx) SaveItem(item *entities.ActionItem) error {
	return m.tx.Save(item).Error
}

// ConfirmAllItems marks every item of the meeting reviewed and
// confirmed in one statement.
func (m *meetingTx) ConfirmAllItems() error {
	return m.tx.
		Model(&entities.ActionItem{}).
		Where("meeting_id = ?", m.meeting.ID).
		Updates(map[string]interface{}{
			"ba_reviewed":  true,
			"ba_confirmed": true,
		}).Error
}

func (m *meetingTx) CountUnreviewedItems() (int64, error) {
	var count int64
	err := m.tx.
		Model(&entities.ActionItem{}).
		Where("meeting_id = ? AND ba_reviewed = false", m.meeting.ID).
		Count(&count).Error
	return count, err
}
