package review

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

// Service owns the action-item review state machine: per-item
// confirm/reject decisions, the bulk confirm-all transition, and the
// meeting-level mom_status that follows from them.
type Service struct {
	meetingRepo repositories.MeetingRepository
	itemRepo    repositories.ActionItemRepository
	followRepo  repositories.FollowUpRepository
	logger      *zap.Logger
}

// NewService creates a new review service
func NewService(
	meetingRepo repositories.MeetingRepository,
	itemRepo repositories.ActionItemRepository,
	followRepo repositories.FollowUpRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		meetingRepo: meetingRepo,
		itemRepo:    itemRepo,
		followRepo:  followRepo,
		logger:      logger,
	}
}

// ReviewSummary aggregates the review state of a meeting's items.
type ReviewSummary struct {
	Total       int  `json:"total"`
	Uncertain   int  `json:"uncertain"`
	Unreviewed  int  `json:"unreviewed"`
	NeedsReview bool `json:"needs_review"`
}

// MeetingReview is everything a reviewer needs in one fetch.
type MeetingReview struct {
	Meeting     *entities.Meeting
	ActionItems []*entities.ActionItem
	FollowUps   []*entities.FollowUp
	Summary     ReviewSummary
}

// GetMeetingReview loads the meeting, its items and proposals, and
// the derived review summary.
func (s *Service) GetMeetingReview(ctx context.Context, actor entities.Identity, meetingID uuid.UUID) (*MeetingReview, error) {
	meeting, err := s.findMeeting(ctx, actor, meetingID)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.FindByMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load action items: %w", err)
	}
	followUps, err := s.followRepo.FindByMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load follow-ups: %w", err)
	}

	summary := ReviewSummary{Total: len(items)}
	for _, item := range items {
		if item.IsUncertain {
			summary.Uncertain++
		}
		if !item.BAReviewed {
			summary.Unreviewed++
		}
	}
	summary.NeedsReview = summary.Unreviewed > 0

	return &MeetingReview{
		Meeting:     meeting,
		ActionItems: items,
		FollowUps:   followUps,
		Summary:     summary,
	}, nil
}

// Decision is one reviewer verdict inside a batch. Confirm and
// Reject are mutually exclusive; with neither set the item is only
// marked reviewed.
type Decision struct {
	ItemID     uuid.UUID
	Confirm    bool
	Reject     bool
	EditedText *string
}

// ApplyReviewInput represents a review operation: either a
// confirm-all or a batch of per-item decisions.
type ApplyReviewInput struct {
	ConfirmAll bool
	Notes      *string
	Items      []Decision
}

// ItemResult reports the outcome for one batch entry.
type ItemResult struct {
	ItemID uuid.UUID `json:"item_id"`
	Result string    `json:"result"` // confirmed | rejected | reviewed | not_found
}

// ReviewOutcome is the state the caller needs to decide whether more
// review is required.
type ReviewOutcome struct {
	Results             []ItemResult
	UnreviewedRemaining int64
	MomStatus           entities.MomStatus
}

// ApplyReview applies a confirm-all or a per-item decision batch.
// The whole operation runs under a per-meeting row lock so the
// mom_status recomputation is serialized against concurrent batches.
func (s *Service) ApplyReview(ctx context.Context, actor entities.Identity, meetingID uuid.UUID, input ApplyReviewInput) (*ReviewOutcome, error) {
	if _, err := s.findMeeting(ctx, actor, meetingID); err != nil {
		return nil, err
	}
	if !input.ConfirmAll && len(input.Items) == 0 {
		return nil, usecaseErrors.ErrEmptyReviewBatch
	}

	outcome := &ReviewOutcome{}
	now := time.Now()

	err := s.meetingRepo.WithMeetingLock(ctx, meetingID, func(tx repositories.MeetingTx) error {
		meeting := tx.Meeting()

		if input.ConfirmAll {
			if err := tx.ConfirmAllItems(); err != nil {
				return fmt.Errorf("failed to confirm all items: %w", err)
			}
			meeting.MarkConfirmed(actor.UserID, now)
			if input.Notes != nil {
				meeting.ReviewNotes = input.Notes
			}
			outcome.UnreviewedRemaining = 0
			outcome.MomStatus = meeting.MomStatus
			return tx.SaveMeeting(meeting)
		}

		for _, d := range input.Items {
			item, err := tx.FindItem(d.ItemID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					outcome.Results = append(outcome.Results, ItemResult{ItemID: d.ItemID, Result: "not_found"})
					continue
				}
				return fmt.Errorf("failed to load item %s: %w", d.ItemID, err)
			}

			item.BAReviewed = true
			result := "reviewed"
			switch {
			case d.Confirm:
				item.BAConfirmed = true
				result = "confirmed"
			case d.Reject:
				item.BAConfirmed = false
				result = "rejected"
			}
			if d.EditedText != nil && *d.EditedText != "" {
				// Edited text is authoritative going forward.
				item.BAEditedText = d.EditedText
				item.Description = *d.EditedText
			}
			if err := tx.SaveItem(item); err != nil {
				return fmt.Errorf("failed to save item %s: %w", d.ItemID, err)
			}
			outcome.Results = append(outcome.Results, ItemResult{ItemID: d.ItemID, Result: result})
		}

		unreviewed, err := tx.CountUnreviewedItems()
		if err != nil {
			return fmt.Errorf("failed to count unreviewed items: %w", err)
		}
		if unreviewed == 0 {
			meeting.MarkConfirmed(actor.UserID, now)
		} else {
			meeting.MarkNeedsReview()
		}
		if input.Notes != nil {
			meeting.ReviewNotes = input.Notes
		}
		outcome.UnreviewedRemaining = unreviewed
		outcome.MomStatus = meeting.MomStatus
		return tx.SaveMeeting(meeting)
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("review.applied",
			zap.String("meeting_id", meetingID.String()),
			zap.Bool("confirm_all", input.ConfirmAll),
			zap.Int64("unreviewed_remaining", outcome.UnreviewedRemaining),
			zap.String("mom_status", string(outcome.MomStatus)),
		)
	}
	return outcome, nil
}

func (s *Service) findMeeting(ctx context.Context, actor entities.Identity, meetingID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindScoped(ctx, meetingID, actor.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return meeting, nil
}
