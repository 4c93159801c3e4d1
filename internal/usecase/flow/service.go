package flow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quadworks/flowdeck/internal/domain/entities"
	"github.com/quadworks/flowdeck/internal/domain/repositories"
	usecaseErrors "github.com/quadworks/flowdeck/internal/usecase/errors"
)

// Service handles flow business logic
type Service struct {
	flowRepo repositories.FlowRepository
	logger   *zap.Logger
}

// NewService creates a new flow service
func NewService(flowRepo repositories.FlowRepository, logger *zap.Logger) *Service {
	return &Service{flowRepo: flowRepo, logger: logger}
}

// CreateFlowInput represents input for creating a flow
type CreateFlowInput struct {
	DomainID    uuid.UUID
	Title       string
	Description string
	Type        string
	Priority    string
	AssigneeID  *uuid.UUID
}

// CreateFlow creates a flow in stage Q with the question clock
// started.
func (s *Service) CreateFlow(ctx context.Context, actor entities.Identity, input CreateFlowInput) (*entities.Flow, error) {
	if input.Type == "" {
		input.Type = entities.FlowTypeTask
	}
	switch input.Type {
	case entities.FlowTypeTask, entities.FlowTypeStory, entities.FlowTypeSpike, entities.FlowTypeBug:
	default:
		return nil, usecaseErrors.ErrInvalidFlowType
	}

	// A domain outside the caller's organization behaves as absent.
	ok, err := s.flowRepo.DomainInOrg(ctx, input.DomainID, actor.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve domain: %w", err)
	}
	if !ok {
		return nil, usecaseErrors.ErrDomainNotFound
	}

	f := entities.NewFlow(input.DomainID, input.Title, time.Now())
	f.Description = input.Description
	f.Type = input.Type
	if input.Priority != "" {
		f.Priority = input.Priority
	}
	f.AssigneeID = input.AssigneeID
	reporter := actor.UserID
	f.ReporterID = &reporter

	if err := s.flowRepo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("failed to create flow: %w", err)
	}
	return f, nil
}

// GetFlow retrieves a flow scoped to the caller's organization.
func (s *Service) GetFlow(ctx context.Context, actor entities.Identity, flowID uuid.UUID) (*entities.Flow, error) {
	f, err := s.flowRepo.FindScoped(ctx, flowID, actor.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrFlowNotFound
		}
		return nil, fmt.Errorf("failed to get flow: %w", err)
	}
	return f, nil
}

// GetHistory returns the flow's stage audit trail, oldest first.
func (s *Service) GetHistory(ctx context.Context, actor entities.Identity, flowID uuid.UUID) ([]*entities.StageHistory, error) {
	if _, err := s.GetFlow(ctx, actor, flowID); err != nil {
		return nil, err
	}
	return s.flowRepo.HistoryByFlow(ctx, flowID)
}

// ListFlows retrieves flows with filters, scoped to the caller's
// organization regardless of what the filters carry.
func (s *Service) ListFlows(ctx context.Context, actor entities.Identity, filters repositories.FlowFilters) ([]*entities.Flow, int64, error) {
	filters.OrgID = actor.OrganizationID
	flows, total, err := s.flowRepo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list flows: %w", err)
	}
	return flows, total, nil
}

// UpdateFlowInput is a patch: only non-nil fields are applied.
type UpdateFlowInput struct {
	Title         *string
	Description   *string
	Type          *string
	Priority      *string
	Status        *string
	AssigneeID    *uuid.UUID
	EstimateHours *float64
	BufferHours   *float64
	ActualHours   *float64
	ExternalRef   *string

	Stage       *entities.FlowStage
	StageStatus *string
	Reason      *string
}

// UpdateFlow applies a patch to a flow. Stage and stage-status
// changes go through the lifecycle engine and land together with
// their history row in one transaction; everything else is a plain
// field update carried in the same write.
func (s *Service) UpdateFlow(ctx context.Context, actor entities.Identity, flowID uuid.UUID, input UpdateFlowInput) (*entities.Flow, error) {
	f, err := s.GetFlow(ctx, actor, flowID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		f.Title = *input.Title
	}
	if input.Description != nil {
		f.Description = *input.Description
	}
	if input.Type != nil {
		f.Type = *input.Type
	}
	if input.Priority != nil {
		f.Priority = *input.Priority
	}
	if input.Status != nil {
		f.Status = *input.Status
	}
	if input.AssigneeID != nil {
		f.AssigneeID = input.AssigneeID
	}
	if input.EstimateHours != nil {
		f.EstimateHours = input.EstimateHours
	}
	if input.BufferHours != nil {
		f.BufferHours = input.BufferHours
	}
	if input.ActualHours != nil {
		f.ActualHours = input.ActualHours
	}
	if input.ExternalRef != nil {
		f.ExternalRef = input.ExternalRef
	}

	history, err := ApplyStageChange(f, StageChange{
		Stage:  input.Stage,
		Status: input.StageStatus,
		Reason: input.Reason,
	}, actor.UserID, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.flowRepo.UpdateWithHistory(ctx, f, history); err != nil {
		return nil, fmt.Errorf("failed to update flow: %w", err)
	}

	if history != nil && s.logger != nil {
		s.logger.Info("flow.stage_changed",
			zap.String("flow_id", f.ID.String()),
			zap.String("from", string(history.FromStage)),
			zap.String("to", string(history.ToStage)),
			zap.String("actor", actor.UserID.String()),
		)
	}
	return f, nil
}
