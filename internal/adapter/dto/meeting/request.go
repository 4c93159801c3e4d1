package meeting

import "time"

// ReviewDecisionRequest is one per-item verdict in a review batch.
// confirm and reject are mutually exclusive; with neither set the
// item is only marked reviewed.
type ReviewDecisionRequest struct {
	ItemID     string  `json:"item_id" validate:"required,uuid"`
	Confirm    bool    `json:"confirm"`
	Reject     bool    `json:"reject"`
	EditedText *string `json:"edited_text,omitempty" validate:"omitempty,max=5000"`
}

// ApplyReviewRequest represents the request to review a meeting's
// action items, either wholesale or per item.
type ApplyReviewRequest struct {
	ConfirmAll bool                    `json:"confirm_all"`
	Notes      *string                 `json:"notes,omitempty" validate:"omitempty,max=5000"`
	Items      []ReviewDecisionRequest `json:"items,omitempty" validate:"omitempty,dive"`
}

// IngestItemRequest is one extracted action item in a minutes payload
type IngestItemRequest struct {
	Description     string     `json:"description" validate:"required,min=1"`
	SourceText      string     `json:"source_text,omitempty"`
	Speaker         string     `json:"speaker,omitempty"`
	Type            string     `json:"type,omitempty" validate:"omitempty,oneof=action decision question risk note"`
	IsUncertain     bool       `json:"is_uncertain"`
	UncertainReason *string    `json:"uncertain_reason,omitempty"`
	AssigneeHint    *string    `json:"assignee_hint,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	AIConfidence    *float64   `json:"ai_confidence,omitempty" validate:"omitempty,min=0,max=1"`
}

// IngestMinutesRequest is the webhook payload delivered by the
// transcription pipeline after a meeting ends.
type IngestMinutesRequest struct {
	DomainID      string              `json:"domain_id" validate:"required,uuid"`
	Title         string              `json:"title" validate:"required,min=1,max=255"`
	Type          string              `json:"type,omitempty" validate:"omitempty,max=50"`
	ScheduledAt   *time.Time          `json:"scheduled_at,omitempty"`
	Summary       *string             `json:"summary,omitempty"`
	TranscriptURL *string             `json:"transcript_url,omitempty"`
	Items         []IngestItemRequest `json:"items" validate:"omitempty,dive"`
}
