package flow

import (
	"time"

	"github.com/quadworks/flowdeck/internal/domain/entities"
)

// StageWindow is the recorded interval for one QUAD stage. Duration
// is derived from the bounds on every read.
type StageWindow struct {
	StartedAt     *time.Time `json:"started_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	DurationHours *float64   `json:"duration_hours,omitempty"`
}

// FlowResponse represents a flow in responses
type FlowResponse struct {
	ID          string  `json:"id"`
	DomainID    string  `json:"domain_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Type        string  `json:"type"`
	Stage       string  `json:"stage"`
	StageName   string  `json:"stage_name"`
	StageStatus string  `json:"stage_status"`
	AssigneeID  *string `json:"assignee_id,omitempty"`
	Assignee    *string `json:"assignee,omitempty"`
	ReporterID  *string `json:"reporter_id,omitempty"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`

	Stages map[string]StageWindow `json:"stages"`

	EstimateHours *float64  `json:"estimate_hours,omitempty"`
	BufferHours   *float64  `json:"buffer_hours,omitempty"`
	ActualHours   *float64  `json:"actual_hours,omitempty"`
	ExternalRef   *string   `json:"external_ref,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StageHistoryResponse is one audit entry of a flow's lifecycle
type StageHistoryResponse struct {
	ID         string    `json:"id"`
	FlowID     string    `json:"flow_id"`
	FromStage  string    `json:"from_stage"`
	ToStage    string    `json:"to_stage"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ChangedBy  string    `json:"changed_by"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListFlowsResponse is a page of flows
type ListFlowsResponse struct {
	Flows    []FlowResponse `json:"flows"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// FlowHistoryResponse is the full audit trail of one flow
type FlowHistoryResponse struct {
	FlowID  string                 `json:"flow_id"`
	History []StageHistoryResponse `json:"history"`
}

// NewFlowResponse converts a flow entity to a response
func NewFlowResponse(f *entities.Flow) FlowResponse {
	resp := FlowResponse{
		ID:            f.ID.String(),
		DomainID:      f.DomainID.String(),
		Title:         f.Title,
		Description:   f.Description,
		Type:          f.Type,
		Stage:         string(f.Stage),
		StageName:     f.Stage.Name(),
		StageStatus:   f.StageStatus,
		Priority:      f.Priority,
		Status:        f.Status,
		Stages:        make(map[string]StageWindow, len(entities.StageOrder)),
		EstimateHours: f.EstimateHours,
		BufferHours:   f.BufferHours,
		ActualHours:   f.ActualHours,
		ExternalRef:   f.ExternalRef,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
	if f.AssigneeID != nil {
		id := f.AssigneeID.String()
		resp.AssigneeID = &id
	}
	if f.Assignee != nil {
		name := f.Assignee.DisplayName
		resp.Assignee = &name
	}
	if f.ReporterID != nil {
		id := f.ReporterID.String()
		resp.ReporterID = &id
	}

	durations := f.StageDurationHours()
	for _, stage := range entities.StageOrder {
		started, completed := f.StageBounds(stage)
		resp.Stages[string(stage)] = StageWindow{
			StartedAt:     started,
			CompletedAt:   completed,
			DurationHours: durations[stage],
		}
	}
	return resp
}

// NewStageHistoryResponse converts a stage history entity to a response
func NewStageHistoryResponse(h *entities.StageHistory) StageHistoryResponse {
	return StageHistoryResponse{
		ID:         h.ID.String(),
		FlowID:     h.FlowID.String(),
		FromStage:  string(h.FromStage),
		ToStage:    string(h.ToStage),
		FromStatus: h.FromStatus,
		ToStatus:   h.ToStatus,
		ChangedBy:  h.ChangedBy.String(),
		Reason:     h.Reason,
		CreatedAt:  h.CreatedAt,
	}
}
