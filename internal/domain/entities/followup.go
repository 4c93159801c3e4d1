package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FollowUpStatus represents the review state of a proposal
type FollowUpStatus string

const (
	FollowUpStatusProposed FollowUpStatus = "proposed"
	FollowUpStatusApproved FollowUpStatus = "approved"
	FollowUpStatusRejected FollowUpStatus = "rejected"
)

// AlternativeCandidate is one ranked runner-up for a proposal's
// assignee. Stored as a JSON array on the follow-up row.
type AlternativeCandidate struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Score       float64   `json:"score"`
}

// FollowUp is a scored, not-yet-approved candidate flow derived from
// one confirmed action item. Created only by the proposal generator;
// at most one per action item.
type FollowUp struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"meeting_id"`
	ActionItemID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"action_item_id"`
	ProposedTitle       string         `gorm:"type:varchar(255);not null" json:"proposed_title"`
	ProposedDescription string         `gorm:"type:text" json:"proposed_description"`
	ProposedType        string         `gorm:"type:varchar(20);not null;default:'task'" json:"proposed_type"`
	ProposedPriority    string         `gorm:"type:varchar(20);not null;default:'medium'" json:"proposed_priority"`
	StoryPoints         int            `gorm:"default:3" json:"story_points"`
	SuggestedAssigneeID *uuid.UUID     `gorm:"type:uuid" json:"suggested_assignee_id,omitempty"`
	SuggestedAssignee   *User          `gorm:"foreignKey:SuggestedAssigneeID" json:"suggested_assignee,omitempty"`
	AssignmentReason    *string        `gorm:"type:text" json:"assignment_reason,omitempty"`
	Alternatives        datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"alternatives,omitempty"`
	Status              FollowUpStatus `gorm:"type:varchar(20);not null;default:'proposed';index" json:"status"`
	AIConfidence        float64        `gorm:"type:numeric;default:0.8" json:"ai_confidence"`
	CreatedAt           time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for FollowUp
func (FollowUp) TableName() string {
	return "follow_ups"
}
