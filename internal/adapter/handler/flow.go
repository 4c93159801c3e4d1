package handler

import (
	stdErrors "errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/quadworks/flowdeck/errors"
	flowdto "github.com/quadworks/flowdeck/internal/adapter/dto/flow"
	"github.com/quadworks/flowdeck/internal/domain/entities"
	"github.com/quadworks/flowdeck/internal/domain/repositories"
	"github.com/quadworks/flowdeck/internal/infrastructure/http/middleware"
	usecaseErrors "github.com/quadworks/flowdeck/internal/usecase/errors"
	flowuse "github.com/quadworks/flowdeck/internal/usecase/flow"
)

// Flow handles flow lifecycle endpoints
type Flow struct {
	svc    *flowuse.Service
	logger *zap.Logger
}

// NewFlow creates a new flow handler
func NewFlow(svc *flowuse.Service, logger *zap.Logger) *Flow {
	return &Flow{svc: svc, logger: logger}
}

// CreateFlow creates a flow
// @Summary      Create flow
// @Description  Creates a flow that enters the Question stage with its clock running
// @Tags         Flows
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      flowdto.CreateFlowRequest  true  "Flow to create"
// @Success      201      {object}  map[string]interface{}  "Created flow"
// @Failure      400      {object}  map[string]interface{}  "Invalid payload"
// @Router       /flows [post]
func (h *Flow) CreateFlow(c echo.Context) error {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req flowdto.CreateFlowRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	domainID, err := uuid.Parse(req.DomainID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid domain ID"))
	}
	input := flowuse.CreateFlowInput{
		DomainID:    domainID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Priority:    req.Priority,
	}
	if req.AssigneeID != nil {
		assigneeID, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid assignee ID"))
		}
		input.AssigneeID = &assigneeID
	}

	f, err := h.svc.CreateFlow(c.Request().Context(), actor, input)
	if err != nil {
		if stdErrors.Is(err, usecaseErrors.ErrDomainNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("Domain "+domainID.String()))
		}
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, flowdto.NewFlowResponse(f))
}

// GetFlow retrieves a flow by ID
// @Summary      Get flow
// @Description  Returns one flow with its per-stage intervals and derived durations
// @Tags         Flows
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Flow ID (UUID)"
// @Success      200  {object}  map[string]interface{}  "Flow"
// @Failure      404  {object}  map[string]interface{}  "Flow not found"
// @Router       /flows/{id} [get]
func (h *Flow) GetFlow(c echo.Context) error {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}
	flowID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid flow ID"))
	}

	f, err := h.svc.GetFlow(c.Request().Context(), actor, flowID)
	if err != nil {
		if stdErrors.Is(err, usecaseErrors.ErrFlowNotFound) {
			return HandleError(h.logger, c, errors.ErrFlowNotFound(flowID.String()))
		}
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, flowdto.NewFlowResponse(f))
}

// ListFlows lists flows with filters
// @Summary      List flows
// @Description  Lists flows filtered by domain, stage, status, or assignee
// @Tags         Flows
// @Produce      json
// @Security     BearerAuth
// @Param        domain_id    query     string  false  "Domain ID (UUID)"
// @Param        stage        query     string  false  "QUAD stage (Q, U, A, D)"
// @Param        status       query     string  false  "Flow status"
// @Param        assignee_id  query     string  false  "Assignee ID (UUID)"
// @Param        page         query     int     false  "Page (default 1)"
// @Param        page_size    query     int     false  "Page size (default 20, max 100)"
// @Success      200  {object}  map[string]interface{}  "Page of flows"
// @Router       /flows [get]
func (h *Flow) ListFlows(c echo.Context) error {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req flowdto.ListFlowsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	filters := repositories.FlowFilters{
		Limit:  req.PageSize,
		Offset: (req.Page - 1) * req.PageSize,
		Status: req.Status,
	}
	if req.DomainID != nil {
		domainID, err := uuid.Parse(*req.DomainID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid domain ID"))
		}
		filters.DomainID = &domainID
	}
	if req.Stage != nil {
		stage := entities.FlowStage(*req.Stage)
		filters.Stage = &stage
	}
	if req.AssigneeID != nil {
		assigneeID, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid assignee ID"))
		}
		filters.Assignee = &assigneeID
	}

	flows, total, err := h.svc.ListFlows(c.Request().Context(), actor, filters)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	resp := flowdto.ListFlowsResponse{
		Flows:    make([]flowdto.FlowResponse, 0, len(flows)),
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	for _, f := range flows {
		resp.Flows = append(resp.Flows, flowdto.NewFlowResponse(f))
	}
	return HandleSuccess(h.logger, c, resp)
}

// UpdateFlow patches a flow
// @Summary      Update flow
// @Description  Applies a partial update; stage and stage-status changes are validated and audited
// @Tags         Flows
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Flow ID (UUID)"
// @Param        request  body      flowdto.UpdateFlowRequest  true  "Fields to update"
// @Success      200      {object}  map[string]interface{}  "Updated flow"
// @Failure      400      {object}  map[string]interface{}  "Invalid stage or payload"
// @Failure      404      {object}  map[string]interface{}  "Flow not found"
// @Router       /flows/{id} [patch]
func (h *Flow) UpdateFlow(c echo.Context) error {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}
	flowID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid flow ID"))
	}

	var req flowdto.UpdateFlowRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidationFailed(err))
	}

	input := flowuse.UpdateFlowInput{
		Title:         req.Title,
		Description:   req.Description,
		Type:          req.Type,
		Priority:      req.Priority,
		Status:        req.Status,
		EstimateHours: req.EstimateHours,
		BufferHours:   req.BufferHours,
		ActualHours:   req.ActualHours,
		ExternalRef:   req.ExternalRef,
		StageStatus:   req.StageStatus,
		Reason:        req.Reason,
	}
	if req.AssigneeID != nil {
		assigneeID, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid assignee ID"))
		}
		input.AssigneeID = &assigneeID
	}
	if req.Stage != nil {
		stage := entities.FlowStage(*req.Stage)
		input.Stage = &stage
	}

	f, err := h.svc.UpdateFlow(c.Request().Context(), actor, flowID, input)
	if err != nil {
		switch {
		case stdErrors.Is(err, usecaseErrors.ErrFlowNotFound):
			return HandleError(h.logger, c, errors.ErrFlowNotFound(flowID.String()))
		case stdErrors.Is(err, usecaseErrors.ErrInvalidStage):
			stage := ""
			if req.Stage != nil {
				stage = *req.Stage
			}
			return HandleError(h.logger, c, errors.ErrInvalidStage(stage))
		}
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, flowdto.NewFlowResponse(f))
}

// GetHistory returns a flow's stage audit trail
// @Summary      Get flow history
// @Description  Returns the flow's stage transitions oldest first
// @Tags         Flows
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Flow ID (UUID)"
// @Success      200  {object}  map[string]interface{}  "Audit trail"
// @Failure      404  {object}  map[string]interface{}  "Flow not found"
// @Router       /flows/{id}/history [get]
func (h *Flow) GetHistory(c echo.Context) error {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}
	flowID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid flow ID"))
	}

	history, err := h.svc.GetHistory(c.Request().Context(), actor, flowID)
	if err != nil {
		if stdErrors.Is(err, usecaseErrors.ErrFlowNotFound) {
			return HandleError(h.logger, c, errors.ErrFlowNotFound(flowID.String()))
		}
		return HandleError(h.logger, c, err)
	}

	resp := flowdto.FlowHistoryResponse{
		FlowID:  flowID.String(),
		History: make([]flowdto.StageHistoryResponse, 0, len(history)),
	}
	for _, entry := range history {
		resp.History = append(resp.History, flowdto.NewStageHistoryResponse(entry))
	}
	return HandleSuccess(h.logger, c, resp)
}
