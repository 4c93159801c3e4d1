package followup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quadworks/flowdeck/internal/domain/entities"
	"github.com/quadworks/flowdeck/internal/domain/repositories"
	"github.com/quadworks/flowdeck/internal/usecase/assignment"
	usecaseErrors "github.com/quadworks/flowdeck/internal/usecase/errors"
)

const (
	titleMaxLen         = 100
	defaultStoryPoints  = 3
	defaultConfidence   = 0.8
	unassignedName      = "Unassigned"
	unassignedRationale = "No developers available"
)

// itemTypeToFlowType maps an extracted item type to the flow type a
// proposal would create.
var itemTypeToFlowType = map[entities.ActionItemType]string{
	entities.ActionItemTypeAction:   entities.FlowTypeTask,
	entities.ActionItemTypeDecision: entities.FlowTypeStory,
	entities.ActionItemTypeQuestion: entities.FlowTypeSpike,
	entities.ActionItemTypeRisk:     entities.FlowTypeBug,
	entities.ActionItemTypeNote:     entities.FlowTypeTask,
}

// ProposalSummary is what a reviewing human needs to approve or
// reject a proposal without a further fetch.
type ProposalSummary struct {
	ID                uuid.UUID `json:"id"`
	Title             string    `json:"title"`
	Type              string    `json:"type"`
	SuggestedAssignee string    `json:"suggested_assignee"`
	AssignmentReason  string    `json:"assignment_reason"`
	Alternatives      []string  `json:"alternatives"`
}

// Generator converts confirmed-pending action items into scored
// follow-up proposals.
type Generator struct {
	meetingRepo repositories.MeetingRepository
	itemRepo    repositories.ActionItemRepository
	followRepo  repositories.FollowUpRepository
	scorer      *assignment.Scorer
	logger      *zap.Logger
}

// NewGenerator creates a new proposal generator
func NewGenerator(
	meetingRepo repositories.MeetingRepository,
	itemRepo repositories.ActionItemRepository,
	followRepo repositories.FollowUpRepository,
	scorer *assignment.Scorer,
	logger *zap.Logger,
) *Generator {
	return &Generator{
		meetingRepo: meetingRepo,
		itemRepo:    itemRepo,
		followRepo:  followRepo,
		scorer:      scorer,
		logger:      logger,
	}
}

// Generate builds one proposal per eligible action item. Eligible
// means confirmed, still pending, and not already covered by a
// proposal from an earlier run. Scoring is best-effort per item: a
// failure degrades that item to unassigned and never aborts the
// batch. Returns ErrNoEligibleItems, with no side effects, when
// nothing qualifies.
func (g *Generator) Generate(ctx context.Context, actor entities.Identity, meetingID uuid.UUID) ([]ProposalSummary, error) {
	meeting, err := g.meetingRepo.FindScoped(ctx, meetingID, actor.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	items, err := g.itemRepo.FindConfirmedPending(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load eligible items: %w", err)
	}
	covered, err := g.followRepo.ExistingActionItemIDs(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing proposals: %w", err)
	}

	var eligible []*entities.ActionItem
	for _, item := range items {
		if !covered[item.ID] {
			eligible = append(eligible, item)
		}
	}
	if len(eligible) == 0 {
		return nil, usecaseErrors.ErrNoEligibleItems
	}

	summaries := make([]ProposalSummary, 0, len(eligible))
	for _, item := range eligible {
		fu, summary := g.buildProposal(ctx, meeting, item)
		if err := g.followRepo.Create(ctx, fu); err != nil {
			return nil, fmt.Errorf("failed to persist follow-up for item %s: %w", item.ID, err)
		}
		summaries = append(summaries, summary)
	}

	meeting.FollowupsProposed = true
	if err := g.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to mark meeting as proposed: %w", err)
	}

	if g.logger != nil {
		g.logger.Info("followup.generated",
			zap.String("meeting_id", meetingID.String()),
			zap.Int("proposals", len(summaries)),
		)
	}
	return summaries, nil
}

// buildProposal derives one follow-up from an action item, scoring an
// ephemeral flow spec under the same rules a real flow would get.
func (g *Generator) buildProposal(ctx context.Context, meeting *entities.Meeting, item *entities.ActionItem) (*entities.FollowUp, ProposalSummary) {
	flowType, ok := itemTypeToFlowType[item.Type]
	if !ok {
		flowType = entities.FlowTypeTask
	}

	fu := &entities.FollowUp{
		ID:                  uuid.New(),
		MeetingID:           meeting.ID,
		ActionItemID:        item.ID,
		ProposedTitle:       truncateTitle(item.Description),
		ProposedDescription: item.Description,
		ProposedType:        flowType,
		ProposedPriority:    entities.FlowPriorityMedium,
		StoryPoints:         defaultStoryPoints,
		Status:              entities.FollowUpStatusProposed,
		AIConfidence:        defaultConfidence,
		CreatedAt:           time.Now(),
	}
	if item.AIConfidence != nil {
		fu.AIConfidence = *item.AIConfidence
	}

	summary := ProposalSummary{
		ID:                fu.ID,
		Title:             fu.ProposedTitle,
		Type:              fu.ProposedType,
		SuggestedAssignee: unassignedName,
		Alternatives:      []string{},
	}

	orgID := uuid.Nil
	if meeting.Domain != nil {
		orgID = meeting.Domain.OrganizationID
	}
	spec := assignment.FlowSpec{
		Title:       fu.ProposedTitle,
		Description: item.Description,
		Type:        flowType,
		Priority:    fu.ProposedPriority,
	}

	result, err := g.scorer.Score(ctx, spec, meeting.DomainID, orgID)
	if err != nil {
		// Per-item failures degrade to unassigned; the batch
		// continues.
		reason := unassignedRationale
		fu.AssignmentReason = &reason
		summary.AssignmentReason = reason
		if !errors.Is(err, usecaseErrors.ErrNoEligibleCandidates) && g.logger != nil {
			g.logger.Warn("followup.scoring_failed",
				zap.String("action_item_id", item.ID.String()),
				zap.Error(err),
			)
		}
		return fu, summary
	}

	assignee := result.Suggested.UserID
	fu.SuggestedAssigneeID = &assignee
	reason := result.Suggested.Reason
	fu.AssignmentReason = &reason

	alts := make([]entities.AlternativeCandidate, 0, len(result.Alternatives))
	for _, alt := range result.Alternatives {
		alts = append(alts, entities.AlternativeCandidate{
			UserID:      alt.UserID,
			DisplayName: alt.DisplayName,
			Score:       alt.Score,
		})
	}
	if raw, err := json.Marshal(alts); err == nil {
		fu.Alternatives = raw
	}

	summary.SuggestedAssignee = result.Suggested.DisplayName
	summary.AssignmentReason = reason
	for _, a := range alts {
		summary.Alternatives = append(summary.Alternatives, a.DisplayName)
	}
	return fu, summary
}

// truncateTitle caps a proposed title at titleMaxLen characters,
// counting runes so a multibyte description is never cut mid-rune.
func truncateTitle(s string) string {
	runes := []rune(s)
	if len(runes) <= titleMaxLen {
		return s
	}
	return string(runes[:titleMaxLen-3]) + "..."
}
