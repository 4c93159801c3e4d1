package meeting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quadworks/flowdeck/internal/domain/entities"
	"github.com/quadworks/flowdeck/internal/domain/repositories"
	usecaseErrors "github.com/quadworks/flowdeck/internal/usecase/errors"
	"github.com/quadworks/flowdeck/internal/usecase/followup"
	"github.com/quadworks/flowdeck/internal/usecase/review"
)

// MinutesStore persists rendered minutes-of-meeting documents and
// hands out short-lived download links.
type MinutesStore interface {
	UploadMinutes(ctx context.Context, meetingID uuid.UUID, content []byte) (objectKey string, err error)
	PresignedMinutesURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
}

// Service is the top-level coordinator of the meeting pipeline: it
// exposes the review operations and proposal generation, and owns
// the derived minutes export.
type Service struct {
	reviews     *review.Service
	generator   *followup.Generator
	meetingRepo repositories.MeetingRepository
	itemRepo    repositories.ActionItemRepository
	minutes     MinutesStore
	logger      *zap.Logger
}

// NewService creates the meeting pipeline orchestrator. The minutes
// store may be nil; export is then skipped.
func NewService(
	reviews *review.Service,
	generator *followup.Generator,
	meetingRepo repositories.MeetingRepository,
	itemRepo repositories.ActionItemRepository,
	minutes MinutesStore,
	logger *zap.Logger,
) *Service {
	return &Service{
		reviews:     reviews,
		generator:   generator,
		meetingRepo: meetingRepo,
		itemRepo:    itemRepo,
		minutes:     minutes,
		logger:      logger,
	}
}

// GetReview returns the full review state of a meeting.
func (s *Service) GetReview(ctx context.Context, actor entities.Identity, meetingID uuid.UUID) (*review.MeetingReview, error) {
	return s.reviews.GetMeetingReview(ctx, actor, meetingID)
}

// ApplyReview applies a confirm-all or per-item batch. When the
// meeting comes out confirmed the minutes document is exported
// best-effort: an export failure is logged, never surfaced.
func (s *Service) ApplyReview(ctx context.Context, actor entities.Identity, meetingID uuid.UUID, input review.ApplyReviewInput) (*review.ReviewOutcome, error) {
	outcome, err := s.reviews.ApplyReview(ctx, actor, meetingID, input)
	if err != nil {
		return nil, err
	}

	if outcome.MomStatus == entities.MomStatusConfirmed {
		if err := s.exportMinutes(ctx, actor, meetingID); err != nil && s.logger != nil {
			s.logger.Warn("meeting.minutes_export_failed",
				zap.String("meeting_id", meetingID.String()),
				zap.Error(err),
			)
		}
	}
	return outcome, nil
}

// GenerateFollowUps converts confirmed-pending items into scored
// proposals.
func (s *Service) GenerateFollowUps(ctx context.Context, actor entities.Identity, meetingID uuid.UUID) ([]followup.ProposalSummary, error) {
	return s.generator.Generate(ctx, actor, meetingID)
}

// MinutesURL returns a presigned download link for the exported
// minutes document.
func (s *Service) MinutesURL(ctx context.Context, actor entities.Identity, meetingID uuid.UUID) (string, error) {
	meeting, err := s.findScoped(ctx, actor, meetingID)
	if err != nil {
		return "", err
	}
	if s.minutes == nil || meeting.MinutesObjectKey == nil {
		return "", usecaseErrors.ErrNotFound
	}
	url, err := s.minutes.PresignedMinutesURL(ctx, *meeting.MinutesObjectKey, 15*time.Minute)
	if err != nil {
		return "", fmt.Errorf("failed to presign minutes url: %w", err)
	}
	return url, nil
}

// IngestItemInput is one extracted action item in an ingestion
// payload.
type IngestItemInput struct {
	Description     string
	SourceText      string
	Speaker         string
	Type            entities.ActionItemType
	IsUncertain     bool
	UncertainReason *string
	AssigneeHint    *string
	DueDate         *time.Time
	AIConfidence    *float64
}

// IngestInput is a minutes payload from the external transcription
// pipeline.
type IngestInput struct {
	DomainID      uuid.UUID
	Title         string
	Type          string
	ScheduledAt   *time.Time
	Summary       *string
	TranscriptURL *string
	Items         []IngestItemInput
}

// IngestMinutes creates the meeting record and its extracted action
// items. The meeting enters the pipeline needing review.
func (s *Service) IngestMinutes(ctx context.Context, input IngestInput) (*entities.Meeting, error) {
	meeting := &entities.Meeting{
		ID:            uuid.New(),
		DomainID:      input.DomainID,
		Title:         input.Title,
		Type:          input.Type,
		Status:        entities.MeetingStatusCompleted,
		ScheduledAt:   input.ScheduledAt,
		MomStatus:     entities.MomStatusNeedsReview,
		Summary:       input.Summary,
		TranscriptURL: input.TranscriptURL,
	}
	if meeting.Type == "" {
		meeting.Type = "standup"
	}

	items := make([]*entities.ActionItem, 0, len(input.Items))
	for _, in := range input.Items {
		itemType := in.Type
		if !itemType.IsValid() {
			itemType = entities.ActionItemTypeNote
		}
		if in.IsUncertain {
			meeting.MomHasUncertainItems = true
		}
		items = append(items, &entities.ActionItem{
			ID:              uuid.New(),
			MeetingID:       meeting.ID,
			Description:     in.Description,
			SourceText:      in.SourceText,
			Speaker:         in.Speaker,
			Type:            itemType,
			IsUncertain:     in.IsUncertain,
			UncertainReason: in.UncertainReason,
			Status:          entities.ActionItemStatusPending,
			AssigneeHint:    in.AssigneeHint,
			DueDate:         in.DueDate,
			AIConfidence:    in.AIConfidence,
		})
	}

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}
	if len(items) > 0 {
		if err := s.itemRepo.CreateBatch(ctx, items); err != nil {
			return nil, fmt.Errorf("failed to create action items: %w", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("meeting.ingested",
			zap.String("meeting_id", meeting.ID.String()),
			zap.Int("action_items", len(items)),
			zap.Bool("has_uncertain", meeting.MomHasUncertainItems),
		)
	}
	return meeting, nil
}

// exportMinutes renders and uploads the confirmed MOM document.
func (s *Service) exportMinutes(ctx context.Context, actor entities.Identity, meetingID uuid.UUID) error {
	if s.minutes == nil {
		return nil
	}
	meeting, err := s.findScoped(ctx, actor, meetingID)
	if err != nil {
		return err
	}
	items, err := s.itemRepo.FindByMeeting(ctx, meetingID)
	if err != nil {
		return err
	}

	key, err := s.minutes.UploadMinutes(ctx, meetingID, renderMinutes(meeting, items))
	if err != nil {
		return err
	}
	meeting.MinutesObjectKey = &key
	return s.meetingRepo.Update(ctx, meeting)
}

// renderMinutes produces the markdown MOM document from confirmed
// items grouped by type.
func renderMinutes(meeting *entities.Meeting, items []*entities.ActionItem) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# Minutes of Meeting: %s\n\n", meeting.Title)
	if meeting.MomConfirmedAt != nil {
		fmt.Fprintf(&b, "Confirmed at %s\n\n", meeting.MomConfirmedAt.Format(time.RFC3339))
	}
	if meeting.Summary != nil && *meeting.Summary != "" {
		fmt.Fprintf(&b, "## Summary\n\n%s\n\n", *meeting.Summary)
	}

	for _, itemType := range []entities.ActionItemType{
		entities.ActionItemTypeAction,
		entities.ActionItemTypeDecision,
		entities.ActionItemTypeQuestion,
		entities.ActionItemTypeRisk,
		entities.ActionItemTypeNote,
	} {
		var lines []string
		for _, item := range items {
			if item.Type != itemType || !item.BAConfirmed {
				continue
			}
			line := fmt.Sprintf("- %s", item.Description)
			if item.Speaker != "" {
				line += fmt.Sprintf(" _(%s)_", item.Speaker)
			}
			lines = append(lines, line)
		}
		if len(lines) > 0 {
			heading := strings.ToUpper(string(itemType)[:1]) + string(itemType)[1:]
			fmt.Fprintf(&b, "## %ss\n\n%s\n\n", heading, strings.Join(lines, "\n"))
		}
	}
	return []byte(b.String())
}

func (s *Service) findScoped(ctx context.Context, actor entities.Identity, meetingID uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindScoped(ctx, meetingID, actor.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, err
	}
	return meeting, nil
}
