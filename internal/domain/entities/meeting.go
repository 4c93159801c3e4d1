package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MomStatus represents the review status of a meeting's minutes
type MomStatus string

const (
	MomStatusNeedsReview MomStatus = "needs_review"
	MomStatusConfirmed   MomStatus = "confirmed"
)

// MeetingStatus represents the overall status of a meeting record
type MeetingStatus string

const (
	MeetingStatusScheduled MeetingStatus = "scheduled"
	MeetingStatusCompleted MeetingStatus = "completed"
	MeetingStatusCancelled MeetingStatus = "cancelled"
)

// Meeting identifies a recorded session whose extracted action items
// flow through the review and proposal pipeline.
type Meeting struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DomainID             uuid.UUID      `gorm:"type:uuid;not null;index" json:"domain_id"`
	Domain               *Domain        `gorm:"foreignKey:DomainID" json:"domain,omitempty"`
	Title                string         `gorm:"type:varchar(255);not null" json:"title"`
	Type                 string         `gorm:"type:varchar(50);default:'standup'" json:"type"`
	Status               MeetingStatus  `gorm:"type:varchar(20);not null;default:'completed';index" json:"status"`
	ScheduledAt          *time.Time     `gorm:"index" json:"scheduled_at,omitempty"`
	MomStatus            MomStatus      `gorm:"type:varchar(20);not null;default:'needs_review';index" json:"mom_status"`
	MomHasUncertainItems bool           `gorm:"default:false" json:"mom_has_uncertain_items"`
	MomConfirmedBy       *uuid.UUID     `gorm:"type:uuid" json:"mom_confirmed_by,omitempty"`
	MomConfirmedAt       *time.Time     `json:"mom_confirmed_at,omitempty"`
	ReviewNotes          *string        `gorm:"type:text" json:"review_notes,omitempty"`
	FollowupsProposed    bool           `gorm:"default:false" json:"followups_proposed"`
	Summary              *string        `gorm:"type:text" json:"summary,omitempty"`
	TranscriptURL        *string        `gorm:"type:text" json:"transcript_url,omitempty"`
	MinutesObjectKey     *string        `gorm:"type:text" json:"minutes_object_key,omitempty"`
	Metadata             datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata,omitempty"`
	CreatedAt            time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// MarkConfirmed records a completed review pass.
func (m *Meeting) MarkConfirmed(by uuid.UUID, at time.Time) {
	m.MomStatus = MomStatusConfirmed
	m.MomConfirmedBy = &by
	m.MomConfirmedAt = &at
}

// MarkNeedsReview clears any previous confirmation.
func (m *Meeting) MarkNeedsReview() {
	m.MomStatus = MomStatusNeedsReview
	m.MomConfirmedBy = nil
	m.MomConfirmedAt = nil
}
