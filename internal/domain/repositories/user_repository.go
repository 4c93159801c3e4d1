package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/quadworks/flowdeck/internal/domain/entities"
)

// UserRepository provides access to organization members.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	// FindAssignable returns the active, assignable members of a
	// domain within an organization together with their open flow
	// count. This is the candidate pool the assignment engine
	// scores over.
	FindAssignable(ctx context.Context, domainID, orgID uuid.UUID) ([]*entities.User, map[uuid.UUID]int, error)
}
