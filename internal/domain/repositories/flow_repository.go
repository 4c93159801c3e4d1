package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/quadworks/flowdeck/internal/domain/entities"
)

// FlowFilters narrows a flow listing. OrgID is mandatory; every
// listing is scoped to one organization. Nil fields are not applied.
type FlowFilters struct {
	OrgID    uuid.UUID
	DomainID *uuid.UUID
	Stage    *entities.FlowStage
	Status   *string
	Assignee *uuid.UUID
	Limit    int
	Offset   int
}

// FlowRepository provides access to flows and their audit history.
type FlowRepository interface {
	Create(ctx context.Context, flow *entities.Flow) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Flow, error)
	// FindScoped resolves a flow together with its domain and
	// reports it absent when the domain belongs to another
	// organization.
	FindScoped(ctx context.Context, id, orgID uuid.UUID) (*entities.Flow, error)
	List(ctx context.Context, filters FlowFilters) ([]*entities.Flow, int64, error)
	CountByDomain(ctx context.Context, domainID uuid.UUID) (int64, error)
	// DomainInOrg reports whether the domain belongs to the
	// organization. Flow writes check it before touching a domain.
	DomainInOrg(ctx context.Context, domainID, orgID uuid.UUID) (bool, error)

	// UpdateWithHistory persists the flow and appends the history
	// row in a single transaction. History is append-only; a
	// partial write of either side is an invariant violation.
	UpdateWithHistory(ctx context.Context, flow *entities.Flow, history *entities.StageHistory) error

	HistoryByFlow(ctx context.Context, flowID uuid.UUID) ([]*entities.StageHistory, error)
}
