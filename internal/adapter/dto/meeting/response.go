package meeting

import (
	"encoding/json"
	"time"

	"github.com/quadworks/flowdeck/internal/domain/entities"
	"github.com/quadworks/flowdeck/internal/usecase/review"
)

// MeetingResponse represents a meeting in responses
type MeetingResponse struct {
	ID                   string     `json:"id"`
	DomainID             string     `json:"domain_id"`
	Title                string     `json:"title"`
	Type                 string     `json:"type"`
	Status               string     `json:"status"`
	ScheduledAt          *time.Time `json:"scheduled_at,omitempty"`
	MomStatus            string     `json:"mom_status"`
	MomHasUncertainItems bool       `json:"mom_has_uncertain_items"`
	MomConfirmedBy       *string    `json:"mom_confirmed_by,omitempty"`
	MomConfirmedAt       *time.Time `json:"mom_confirmed_at,omitempty"`
	ReviewNotes          *string    `json:"review_notes,omitempty"`
	FollowupsProposed    bool       `json:"followups_proposed"`
	Summary              *string    `json:"summary,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// ActionItemResponse represents an extracted action item in responses
type ActionItemResponse struct {
	ID              string     `json:"id"`
	MeetingID       string     `json:"meeting_id"`
	Description     string     `json:"description"`
	SourceText      string     `json:"source_text,omitempty"`
	Speaker         string     `json:"speaker,omitempty"`
	Type            string     `json:"type"`
	IsUncertain     bool       `json:"is_uncertain"`
	UncertainReason *string    `json:"uncertain_reason,omitempty"`
	BAReviewed      bool       `json:"ba_reviewed"`
	BAConfirmed     bool       `json:"ba_confirmed"`
	BAEditedText    *string    `json:"ba_edited_text,omitempty"`
	Status          string     `json:"status"`
	AssigneeHint    *string    `json:"assignee_hint,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	AIConfidence    *float64   `json:"ai_confidence,omitempty"`
}

// AlternativeResponse is one runner-up assignee on a proposal
type AlternativeResponse struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
}

// FollowUpResponse represents a proposed follow-up in responses
type FollowUpResponse struct {
	ID                  string                `json:"id"`
	MeetingID           string                `json:"meeting_id"`
	ActionItemID        string                `json:"action_item_id"`
	ProposedTitle       string                `json:"proposed_title"`
	ProposedDescription string                `json:"proposed_description,omitempty"`
	ProposedType        string                `json:"proposed_type"`
	ProposedPriority    string                `json:"proposed_priority"`
	StoryPoints         int                   `json:"story_points"`
	SuggestedAssigneeID *string               `json:"suggested_assignee_id,omitempty"`
	SuggestedAssignee   *string               `json:"suggested_assignee,omitempty"`
	AssignmentReason    *string               `json:"assignment_reason,omitempty"`
	Alternatives        []AlternativeResponse `json:"alternatives"`
	Status              string                `json:"status"`
	AIConfidence        float64               `json:"ai_confidence"`
	CreatedAt           time.Time             `json:"created_at"`
}

// MeetingReviewResponse is the full review view of a meeting
type MeetingReviewResponse struct {
	Meeting     MeetingResponse      `json:"meeting"`
	ActionItems []ActionItemResponse `json:"action_items"`
	FollowUps   []FollowUpResponse   `json:"follow_ups"`
	Summary     review.ReviewSummary `json:"summary"`
}

// ReviewOutcomeResponse is the result of applying a review batch
type ReviewOutcomeResponse struct {
	Results             []review.ItemResult `json:"results,omitempty"`
	UnreviewedRemaining int64               `json:"unreviewed_remaining"`
	MomStatus           string              `json:"mom_status"`
}

// MinutesURLResponse carries a short-lived download link
type MinutesURLResponse struct {
	URL string `json:"url"`
}

// IngestMinutesResponse acknowledges an accepted minutes payload
type IngestMinutesResponse struct {
	MeetingID   string `json:"meeting_id"`
	MomStatus   string `json:"mom_status"`
	ActionItems int    `json:"action_items"`
}

// NewMeetingResponse converts a meeting entity to a response
func NewMeetingResponse(m *entities.Meeting) MeetingResponse {
	resp := MeetingResponse{
		ID:                   m.ID.String(),
		DomainID:             m.DomainID.String(),
		Title:                m.Title,
		Type:                 m.Type,
		Status:               string(m.Status),
		ScheduledAt:          m.ScheduledAt,
		MomStatus:            string(m.MomStatus),
		MomHasUncertainItems: m.MomHasUncertainItems,
		MomConfirmedAt:       m.MomConfirmedAt,
		ReviewNotes:          m.ReviewNotes,
		FollowupsProposed:    m.FollowupsProposed,
		Summary:              m.Summary,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
	if m.MomConfirmedBy != nil {
		by := m.MomConfirmedBy.String()
		resp.MomConfirmedBy = &by
	}
	return resp
}

// NewActionItemResponse converts an action item entity to a response
func NewActionItemResponse(a *entities.ActionItem) ActionItemResponse {
	return ActionItemResponse{
		ID:              a.ID.String(),
		MeetingID:       a.MeetingID.String(),
		Description:     a.Description,
		SourceText:      a.SourceText,
		Speaker:         a.Speaker,
		Type:            string(a.Type),
		IsUncertain:     a.IsUncertain,
		UncertainReason: a.UncertainReason,
		BAReviewed:      a.BAReviewed,
		BAConfirmed:     a.BAConfirmed,
		BAEditedText:    a.BAEditedText,
		Status:          a.Status,
		AssigneeHint:    a.AssigneeHint,
		DueDate:         a.DueDate,
		AIConfidence:    a.AIConfidence,
	}
}

// NewFollowUpResponse converts a follow-up entity to a response
func NewFollowUpResponse(f *entities.FollowUp) FollowUpResponse {
	resp := FollowUpResponse{
		ID:                  f.ID.String(),
		MeetingID:           f.MeetingID.String(),
		ActionItemID:        f.ActionItemID.String(),
		ProposedTitle:       f.ProposedTitle,
		ProposedDescription: f.ProposedDescription,
		ProposedType:        f.ProposedType,
		ProposedPriority:    f.ProposedPriority,
		StoryPoints:         f.StoryPoints,
		AssignmentReason:    f.AssignmentReason,
		Alternatives:        []AlternativeResponse{},
		Status:              string(f.Status),
		AIConfidence:        f.AIConfidence,
		CreatedAt:           f.CreatedAt,
	}
	if f.SuggestedAssigneeID != nil {
		id := f.SuggestedAssigneeID.String()
		resp.SuggestedAssigneeID = &id
	}
	if f.SuggestedAssignee != nil {
		name := f.SuggestedAssignee.DisplayName
		resp.SuggestedAssignee = &name
	}
	if len(f.Alternatives) > 0 {
		var alts []entities.AlternativeCandidate
		if err := json.Unmarshal(f.Alternatives, &alts); err == nil {
			for _, alt := range alts {
				resp.Alternatives = append(resp.Alternatives, AlternativeResponse{
					UserID:      alt.UserID.String(),
					DisplayName: alt.DisplayName,
					Score:       alt.Score,
				})
			}
		}
	}
	return resp
}

// NewMeetingReviewResponse converts a usecase review view to a response
func NewMeetingReviewResponse(r *review.MeetingReview) MeetingReviewResponse {
	resp := MeetingReviewResponse{
		Meeting:     NewMeetingResponse(r.Meeting),
		ActionItems: make([]ActionItemResponse, 0, len(r.ActionItems)),
		FollowUps:   make([]FollowUpResponse, 0, len(r.FollowUps)),
		Summary:     r.Summary,
	}
	for _, item := range r.ActionItems {
		resp.ActionItems = append(resp.ActionItems, NewActionItemResponse(item))
	}
	for _, fu := range r.FollowUps {
		resp.FollowUps = append(resp.FollowUps, NewFollowUpResponse(fu))
	}
	return resp
}
