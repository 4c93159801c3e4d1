package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/quadworks/flowdeck/internal/domain/entities"
)

// MeetingRepository provides access to meeting records. Reads used by
// the pipeline are org-scoped: a meeting whose domain belongs to a
// different organization behaves as absent.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entities.Meeting) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	FindScoped(ctx context.Context, id, orgID uuid.UUID) (*entities.Meeting, error)
	Update(ctx context.Context, meeting *entities.Meeting) error

	// WithMeetingLock runs fn inside a transaction holding a row
	// lock on the meeting. It is the per-meeting serialization
	// point for "apply review batch, recompute mom_status".
	WithMeetingLock(ctx context.Context, meetingID uuid.UUID, fn func(tx MeetingTx) error) error
}

// MeetingTx is the repository view available inside a meeting lock.
type MeetingTx interface {
	Meeting() *entities.Meeting
	SaveMeeting(meeting *entities.Meeting) error
	Items() ([]*entities.ActionItem, error)
	FindItem(itemID uuid.UUID) (*entities.ActionItem, error)
	SaveItem(item *entities.ActionItem) error
	ConfirmAllItems() error
	CountUnreviewedItems() (int64, error)
}

// ActionItemRepository provides read access to extracted action
// items outside a review transaction.
type ActionItemRepository interface {
	CreateBatch(ctx context.Context, items []*entities.ActionItem) error
	FindByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error)
	FindConfirmedPending(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error)
}

// FollowUpRepository persists generated follow-up proposals.
type FollowUpRepository interface {
	Create(ctx context.Context, followUp *entities.FollowUp) error
	FindByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.FollowUp, error)
	// ExistingActionItemIDs returns the source item ids that
	// already have a proposal, used to keep generation idempotent.
	ExistingActionItemIDs(ctx context.Context, meetingID uuid.UUID) (map[uuid.UUID]bool, error)
}
