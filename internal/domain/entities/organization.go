package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Organization is the tenant boundary. Every resource in the system
// is reachable from exactly one organization.
type Organization struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Slug      *string        `gorm:"type:varchar(100);unique" json:"slug,omitempty"`
	Settings  datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"settings,omitempty"`
	CreatedAt time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Organization
func (Organization) TableName() string {
	return "organizations"
}

// Domain is an organizational grouping (project/sub-org) that owns
// flows, meetings, and assignable people.
type Domain struct {
	ID             uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID     `gorm:"type:uuid;not null;index" json:"organization_id"`
	Organization   *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Name           string        `gorm:"type:varchar(255);not null" json:"name"`
	Description    *string       `gorm:"type:text" json:"description,omitempty"`
	LeadID         *uuid.UUID    `gorm:"type:uuid" json:"lead_id,omitempty"`
	IsActive       bool          `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time     `gorm:"default:now()" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Domain
func (Domain) TableName() string {
	return "domains"
}
