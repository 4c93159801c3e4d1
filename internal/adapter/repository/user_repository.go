package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quadworks/flowdeck/internal/domain/entities"
	"github.com/quadworks/flowdeck/internal/domain/repositories"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a user by ID
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail retrieves a user by email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAssignable returns the active assignable members of a domain
// together with their open flow count. Read-committed is enough
// here; the scorer only needs a point-in-time snapshot.
func (r *userRepository) FindAssignable(ctx context.Context, domainID, orgID uuid.UUID) ([]*entities.User, map[uuid.UUID]int, error) {
	var users []*entities.User
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND domain_id = ? AND is_active = true AND role IN ?",
			orgID, domainID, entities.AssignableRoles).
		Order("id ASC").
		Find(&users).Error
	if err != nil {
		return nil, nil, err
	}

	type row struct {
		AssigneeID uuid.UUID
		Count      int
	}
	var rows []row
	err = r.db.WithContext(ctx).
		Model(&entities.Flow{}).
		Select("assignee_id, count(*) as count").
		Where("domain_id = ? AND assignee_id IS NOT NULL AND status NOT IN ?",
			domainID, []string{entities.FlowStatusDone, entities.FlowStatusCancelled}).
		Group("assignee_id").
		Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}

	workload := make(map[uuid.UUID]int, len(rows))
	for _, w := range rows {
		workload[w.AssigneeID] = w.Count
	}
	return users, workload, nil
}
