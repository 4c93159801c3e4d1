package flow

// CreateFlowRequest represents the request to create a flow
type CreateFlowRequest struct {
	DomainID    string  `json:"domain_id" validate:"required,uuid"`
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description string  `json:"description,omitempty"`
	Type        string  `json:"type,omitempty" validate:"omitempty,oneof=task story spike bug"`
	Priority    string  `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	AssigneeID  *string `json:"assignee_id,omitempty" validate:"omitempty,uuid"`
}

// UpdateFlowRequest is a patch: only present fields are applied.
// Stage and stage_status changes are audited.
type UpdateFlowRequest struct {
	Title         *string  `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description   *string  `json:"description,omitempty"`
	Type          *string  `json:"type,omitempty" validate:"omitempty,oneof=task story spike bug"`
	Priority      *string  `json:"priority,omitempty" validate:"omitempty,oneof=low medium high urgent"`
	Status        *string  `json:"status,omitempty" validate:"omitempty,oneof=backlog active done cancelled"`
	AssigneeID    *string  `json:"assignee_id,omitempty" validate:"omitempty,uuid"`
	EstimateHours *float64 `json:"estimate_hours,omitempty" validate:"omitempty,min=0"`
	BufferHours   *float64 `json:"buffer_hours,omitempty" validate:"omitempty,min=0"`
	ActualHours   *float64 `json:"actual_hours,omitempty" validate:"omitempty,min=0"`
	ExternalRef   *string  `json:"external_ref,omitempty" validate:"omitempty,max=255"`

	Stage       *string `json:"stage,omitempty" validate:"omitempty,quadstage"`
	StageStatus *string `json:"stage_status,omitempty" validate:"omitempty,max=50"`
	Reason      *string `json:"reason,omitempty" validate:"omitempty,max=1000"`
}

// ListFlowsRequest represents query parameters for listing flows
type ListFlowsRequest struct {
	DomainID   *string `query:"domain_id" validate:"omitempty,uuid"`
	Stage      *string `query:"stage" validate:"omitempty,quadstage"`
	Status     *string `query:"status" validate:"omitempty,oneof=backlog active done cancelled"`
	AssigneeID *string `query:"assignee_id" validate:"omitempty,uuid"`
	Page       int     `query:"page" validate:"omitempty,min=1"`
	PageSize   int     `query:"page_size" validate:"omitempty,min=1,max=100"`
}
