package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserRole represents the role of a user inside their organization
type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleManager   UserRole = "manager"
	UserRoleBA        UserRole = "ba"
	UserRoleDeveloper UserRole = "developer"
)

// AssignableRoles are the roles the assignment engine considers when
// ranking candidates for a flow.
var AssignableRoles = []UserRole{UserRoleDeveloper, UserRoleBA}

// User represents a member of an organization
type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"organization_id"`
	DomainID       *uuid.UUID     `gorm:"type:uuid;index" json:"domain_id,omitempty"`
	Email          string         `gorm:"type:varchar(255);unique;not null" json:"email"`
	DisplayName    string         `gorm:"type:varchar(255);not null" json:"display_name"`
	Role           UserRole       `gorm:"type:varchar(20);not null;default:'developer';index" json:"role"`
	Skills         datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"skills,omitempty"`
	Seniority      int            `gorm:"default:1" json:"seniority"` // 1..5
	IsActive       bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt      time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// IsAssignable reports whether the user can be suggested as a flow
// assignee.
func (u *User) IsAssignable() bool {
	if !u.IsActive {
		return false
	}
	for _, r := range AssignableRoles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// Identity is the resolved caller of an operation. The auth
// middleware builds it from a verified bearer token; everything below
// the handlers treats it as already authenticated.
type Identity struct {
	UserID         uuid.UUID
	OrganizationID uuid.UUID
	Email          string
	Role           UserRole
}
