package entities

import (
	"time"

	"github.com/google/uuid"
)

// FlowStage is one of the four QUAD delivery stages
type FlowStage string

const (
	StageQuestion   FlowStage = "Q"
	StageUnderstand FlowStage = "U"
	StageAllocate   FlowStage = "A"
	StageDeliver    FlowStage = "D"
)

// StageOrder lists the QUAD stages in delivery order.
var StageOrder = []FlowStage{StageQuestion, StageUnderstand, StageAllocate, StageDeliver}

// IsValid reports whether s is one of the four QUAD stages.
func (s FlowStage) IsValid() bool {
	switch s {
	case StageQuestion, StageUnderstand, StageAllocate, StageDeliver:
		return true
	}
	return false
}

// Name returns the long form of the stage.
func (s FlowStage) Name() string {
	switch s {
	case StageQuestion:
		return "Question"
	case StageUnderstand:
		return "Understand"
	case StageAllocate:
		return "Allocate"
	case StageDeliver:
		return "Deliver"
	}
	return string(s)
}

// StageStatusPending is the default sub-status a stage enters with.
const StageStatusPending = "pending"

// FlowType constants
const (
	FlowTypeTask  = "task"
	FlowTypeStory = "story"
	FlowTypeSpike = "spike"
	FlowTypeBug   = "bug"
)

// FlowPriority constants
const (
	FlowPriorityLow    = "low"
	FlowPriorityMedium = "medium"
	FlowPriorityHigh   = "high"
	FlowPriorityUrgent = "urgent"
)

// FlowStatus constants
const (
	FlowStatusBacklog   = "backlog"
	FlowStatusActive    = "active"
	FlowStatusDone      = "done"
	FlowStatusCancelled = "cancelled"
)

// Flow is a unit of deliverable work progressing through the QUAD
// stages. Exactly one stage is current at any time; a stage's
// completion timestamp is set only when advancing away from it.
type Flow struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DomainID    uuid.UUID `gorm:"type:uuid;not null;index" json:"domain_id"`
	Domain      *Domain   `gorm:"foreignKey:DomainID" json:"domain,omitempty"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Type        string    `gorm:"type:varchar(20);not null;default:'task'" json:"type"`
	Stage       FlowStage `gorm:"type:varchar(1);not null;default:'Q';index" json:"stage"`
	StageStatus string    `gorm:"type:varchar(50);not null;default:'pending'" json:"stage_status"`

	QuestionStartedAt     *time.Time `json:"question_started_at,omitempty"`
	QuestionCompletedAt   *time.Time `json:"question_completed_at,omitempty"`
	UnderstandStartedAt   *time.Time `json:"understand_started_at,omitempty"`
	UnderstandCompletedAt *time.Time `json:"understand_completed_at,omitempty"`
	AllocateStartedAt     *time.Time `json:"allocate_started_at,omitempty"`
	AllocateCompletedAt   *time.Time `json:"allocate_completed_at,omitempty"`
	DeliverStartedAt      *time.Time `json:"deliver_started_at,omitempty"`
	DeliverCompletedAt    *time.Time `json:"deliver_completed_at,omitempty"`

	AssigneeID    *uuid.UUID `gorm:"type:uuid;index" json:"assignee_id,omitempty"`
	Assignee      *User      `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	ReporterID    *uuid.UUID `gorm:"type:uuid" json:"reporter_id,omitempty"`
	Priority      string     `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Status        string     `gorm:"type:varchar(20);not null;default:'backlog';index" json:"status"`
	EstimateHours *float64   `gorm:"type:numeric" json:"estimate_hours,omitempty"`
	BufferHours   *float64   `gorm:"type:numeric" json:"buffer_hours,omitempty"`
	ActualHours   *float64   `gorm:"type:numeric" json:"actual_hours,omitempty"`
	ExternalRef   *string    `gorm:"type:varchar(255)" json:"external_ref,omitempty"`

	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Flow
func (Flow) TableName() string {
	return "flows"
}

// NewFlow creates a flow in stage Q with the question clock running.
func NewFlow(domainID uuid.UUID, title string, now time.Time) *Flow {
	return &Flow{
		ID:                uuid.New(),
		DomainID:          domainID,
		Title:             title,
		Type:              FlowTypeTask,
		Stage:             StageQuestion,
		StageStatus:       StageStatusPending,
		QuestionStartedAt: &now,
		Priority:          FlowPriorityMedium,
		Status:            FlowStatusBacklog,
	}
}

// StageBounds returns the started/completed timestamps recorded for
// the given stage.
func (f *Flow) StageBounds(stage FlowStage) (started, completed *time.Time) {
	switch stage {
	case StageQuestion:
		return f.QuestionStartedAt, f.QuestionCompletedAt
	case StageUnderstand:
		return f.UnderstandStartedAt, f.UnderstandCompletedAt
	case StageAllocate:
		return f.AllocateStartedAt, f.AllocateCompletedAt
	case StageDeliver:
		return f.DeliverStartedAt, f.DeliverCompletedAt
	}
	return nil, nil
}

// StartStage stamps the started-at field of the given stage.
func (f *Flow) StartStage(stage FlowStage, now time.Time) {
	switch stage {
	case StageQuestion:
		f.QuestionStartedAt = &now
	case StageUnderstand:
		f.UnderstandStartedAt = &now
	case StageAllocate:
		f.AllocateStartedAt = &now
	case StageDeliver:
		f.DeliverStartedAt = &now
	}
}

// CompleteStage stamps the completed-at field of the given stage.
func (f *Flow) CompleteStage(stage FlowStage, now time.Time) {
	switch stage {
	case StageQuestion:
		f.QuestionCompletedAt = &now
	case StageUnderstand:
		f.UnderstandCompletedAt = &now
	case StageAllocate:
		f.AllocateCompletedAt = &now
	case StageDeliver:
		f.DeliverCompletedAt = &now
	}
}

// StageDurationHours returns the elapsed hours spent in each stage,
// keyed by stage. A stage with an open interval reports nil. Derived
// on read, never persisted.
func (f *Flow) StageDurationHours() map[FlowStage]*float64 {
	out := make(map[FlowStage]*float64, len(StageOrder))
	for _, stage := range StageOrder {
		started, completed := f.StageBounds(stage)
		if started != nil && completed != nil {
			h := completed.Sub(*started).Hours()
			out[stage] = &h
		} else {
			out[stage] = nil
		}
	}
	return out
}

// StageHistory is an immutable audit entry recorded on every stage or
// stage-status change of a flow.
type StageHistory struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FlowID     uuid.UUID `gorm:"type:uuid;not null;index" json:"flow_id"`
	FromStage  FlowStage `gorm:"type:varchar(1);not null" json:"from_stage"`
	ToStage    FlowStage `gorm:"type:varchar(1);not null" json:"to_stage"`
	FromStatus string    `gorm:"type:varchar(50);not null" json:"from_status"`
	ToStatus   string    `gorm:"type:varchar(50);not null" json:"to_status"`
	ChangedBy  uuid.UUID `gorm:"type:uuid;not null" json:"changed_by"`
	Reason     string    `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt  time.Time `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for StageHistory
func (StageHistory) TableName() string {
	return "stage_history"
}
