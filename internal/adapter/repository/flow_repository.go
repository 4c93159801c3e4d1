package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quadworks/flowdeck/internal/domain/entities"
	"github.com/quadworks/flowdeck/internal/domain/repositories"
)

// flowRepository implements the FlowRepository interface
type flowRepository struct {
	db *gorm.DB
}

// NewFlowRepository creates a new flow repository
func NewFlowRepository(db *gorm.DB) repositories.FlowRepository {
	return &flowRepository{db: db}
}

// Create creates a new flow
func (r *flowRepository) Create(ctx context.Context, flow *entities.Flow) error {
	return r.db.WithContext(ctx).Create(flow).Error
}

// FindByID retrieves a flow by its ID
func (r *flowRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Flow, error) {
	var flow entities.Flow
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Where("id = ?", id).
		First(&flow).Error
	if err != nil {
		return nil, err
	}
	return &flow, nil
}

// FindScoped retrieves a flow whose domain belongs to the given
// organization. Cross-tenant ids report ErrRecordNotFound.
func (r *flowRepository) FindScoped(ctx context.Context, id, orgID uuid.UUID) (*entities.Flow, error) {
	var flow entities.Flow
	err := r.db.WithContext(ctx).
		Preload("Domain").
		Preload("Assignee").
		Joins("JOIN domains ON domains.id = flows.domain_id").
		Where("flows.id = ? AND domains.organization_id = ?", id, orgID).
		First(&flow).Error
	if err != nil {
		return nil, err
	}
	return &flow, nil
}

// List retrieves flows with filters and pagination. The listing is
// always restricted to the caller's organization via the domain join;
// any further filters narrow within that scope.
func (r *flowRepository) List(ctx context.Context, filters repositories.FlowFilters) ([]*entities.Flow, int64, error) {
	var flows []*entities.Flow
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entities.Flow{}).
		Joins("JOIN domains ON domains.id = flows.domain_id").
		Where("domains.organization_id = ?", filters.OrgID)

	if filters.DomainID != nil {
		query = query.Where("flows.domain_id = ?", *filters.DomainID)
	}
	if filters.Stage != nil {
		query = query.Where("flows.stage = ?", *filters.Stage)
	}
	if filters.Status != nil {
		query = query.Where("flows.status = ?", *filters.Status)
	}
	if filters.Assignee != nil {
		query = query.Where("flows.assignee_id = ?", *filters.Assignee)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("flows.created_at DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	err := query.Find(&flows).Error
	return flows, total, err
}

// CountByDomain counts the flows owned by a domain
func (r *flowRepository) CountByDomain(ctx context.Context, domainID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Flow{}).
		Where("domain_id = ?", domainID).
		Count(&count).Error
	return count, err
}

// DomainInOrg reports whether the domain belongs to the organization
func (r *flowRepository) DomainInOrg(ctx context.Context, domainID, orgID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Domain{}).
		Where("id = ? AND organization_id = ?", domainID, orgID).
		Count(&count).Error
	return count > 0, err
}

// UpdateWithHistory persists the flow and its audit row in one
// transaction. With a nil history the update is a plain field write.
func (r *flowRepository) UpdateWithHistory(ctx context.Context, flow *entities.Flow, history *entities.StageHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(flow).Error; err != nil {
			return err
		}
		if history != nil {
			if err := tx.Create(history).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// HistoryByFlow retrieves the audit trail of a flow, oldest first
func (r *flowRepository) HistoryByFlow(ctx context.Context, flowID uuid.UUID) ([]*entities.StageHistory, error) {
	var history []*entities.StageHistory
	err := r.db.WithContext(ctx).
		Where("flow_id = ?", flowID).
		Order("created_at ASC").
		Find(&history).Error
	return history, err
}
