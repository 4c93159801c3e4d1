package entities

import (
	"time"

	"github.com/google/uuid"
)

// ActionItemType classifies what the extraction pipeline pulled out
// of the transcript.
type ActionItemType string

const (
	ActionItemTypeAction   ActionItemType = "action"
	ActionItemTypeDecision ActionItemType = "decision"
	ActionItemTypeQuestion ActionItemType = "question"
	ActionItemTypeRisk     ActionItemType = "risk"
	ActionItemTypeNote     ActionItemType = "note"
)

// IsValid reports whether t is one of the known item types.
func (t ActionItemType) IsValid() bool {
	switch t {
	case ActionItemTypeAction, ActionItemTypeDecision, ActionItemTypeQuestion,
		ActionItemTypeRisk, ActionItemTypeNote:
		return true
	}
	return false
}

// ActionItemStatus constants
const (
	ActionItemStatusPending   = "pending"
	ActionItemStatusConverted = "converted"
	ActionItemStatusDismissed = "dismissed"
)

// ActionItem is one extracted unit of work or note from a meeting.
// It is created at ingestion and mutated only by the review state
// machine.
type ActionItem struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Description     string         `gorm:"type:text;not null" json:"description"`
	SourceText      string         `gorm:"type:text" json:"source_text,omitempty"`
	Speaker         string         `gorm:"type:varchar(255)" json:"speaker,omitempty"`
	Type            ActionItemType `gorm:"type:varchar(20);not null;default:'action'" json:"type"`
	IsUncertain     bool           `gorm:"default:false" json:"is_uncertain"`
	UncertainReason *string        `gorm:"type:text" json:"uncertain_reason,omitempty"`
	BAReviewed      bool           `gorm:"column:ba_reviewed;default:false;index" json:"ba_reviewed"`
	BAConfirmed     bool           `gorm:"column:ba_confirmed;default:false" json:"ba_confirmed"`
	BAEditedText    *string        `gorm:"column:ba_edited_text;type:text" json:"ba_edited_text,omitempty"`
	Status          string         `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	AssigneeHint    *string        `gorm:"type:varchar(255)" json:"assignee_hint,omitempty"`
	DueDate         *time.Time     `json:"due_date,omitempty"`
	AIConfidence    *float64       `gorm:"type:numeric" json:"ai_confidence,omitempty"` // 0..1
	CreatedAt       time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for ActionItem
func (ActionItem) TableName() string {
	return "action_items"
}

// EligibleForFollowUp reports whether the proposal generator may turn
// this item into a follow-up candidate.
func (a *ActionItem) EligibleForFollowUp() bool {
	return a.BAConfirmed && a.Status == ActionItemStatusPending
}
