package followup

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quadworks/flowdeck/internal/domain/entities"
	"github.com/quadworks/flowdeck/internal/domain/repositories"
	"github.com/quadworks/flowdeck/internal/usecase/assignment"
	usecaseErrors "github.com/quadworks/flowdeck/internal/usecase/errors"
)

type fakeMeetings struct {
	meetings map[uuid.UUID]*entities.Meeting
	orgs     map[uuid.UUID]uuid.UUID
	updates  int
}

func (f *fakeMeetings) Create(ctx context.Context, m *entities.Meeting) error {
	f.meetings[m.ID] = m
	return nil
}

func (f *fakeMeetings) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	m, ok := f.meetings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (f *fakeMeetings) FindScoped(ctx context.Context, id, orgID uuid.UUID) (*entities.Meeting, error) {
	m, ok := f.meetings[id]
	if !ok || f.orgs[id] != orgID {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (f *fakeMeetings) Update(ctx context.Context, m *entities.Meeting) error {
	f.meetings[m.ID] = m
	f.updates++
	return nil
}

func (f *fakeMeetings) WithMeetingLock(ctx context.Context, meetingID uuid.UUID, fn func(tx repositories.MeetingTx) error) error {
	return errors.New("not used in generator tests")
}

type fakeItems struct{ items []*entities.ActionItem }

func (f *fakeItems) CreateBatch(ctx context.Context, items []*entities.ActionItem) error {
	f.items = append(f.items, items...)
	return nil
}

func (f *fakeItems) FindByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error) {
	return f.items, nil
}

func (f *fakeItems) FindConfirmedPending(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error) {
	var out []*entities.ActionItem
	for _, item := range f.items {
		if item.MeetingID == meetingID && item.EligibleForFollowUp() {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeFollows struct{ follows []*entities.FollowUp }

func (f *fakeFollows) Create(ctx context.Context, fu *entities.FollowUp) error {
	f.follows = append(f.follows, fu)
	return nil
}

func (f *fakeFollows) FindByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.FollowUp, error) {
	return f.follows, nil
}

func (f *fakeFollows) ExistingActionItemIDs(ctx context.Context, meetingID uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool)
	for _, fu := range f.follows {
		if fu.MeetingID == meetingID {
			out[fu.ActionItemID] = true
		}
	}
	return out, nil
}

type fakeRoster struct{ pool []assignment.Candidate }

func (f *fakeRoster) Candidates(ctx context.Context, domainID, orgID uuid.UUID) ([]assignment.Candidate, error) {
	return f.pool, nil
}

type generatorFixture struct {
	gen      *Generator
	meetings *fakeMeetings
	items    *fakeItems
	follows  *fakeFollows
	meeting  *entities.Meeting
	actor    entities.Identity
}

func newFixture(pool []assignment.Candidate) *generatorFixture {
	orgID := uuid.New()
	meetings := &fakeMeetings{
		meetings: make(map[uuid.UUID]*entities.Meeting),
		orgs:     make(map[uuid.UUID]uuid.UUID),
	}
	m := &entities.Meeting{
		ID:       uuid.New(),
		DomainID: uuid.New(),
		Title:    "Retro",
		Domain:   &entities.Domain{ID: uuid.New(), OrganizationID: orgID},
	}
	meetings.meetings[m.ID] = m
	meetings.orgs[m.ID] = orgID

	items := &fakeItems{}
	follows := &fakeFollows{}
	scorer := assignment.NewScorer(&fakeRoster{pool: pool}, nil)

	return &generatorFixture{
		gen:      NewGenerator(meetings, items, follows, scorer, nil),
		meetings: meetings,
		items:    items,
		follows:  follows,
		meeting:  m,
		actor: entities.Identity{
			UserID:         uuid.New(),
			OrganizationID: orgID,
			Role:           entities.UserRoleBA,
		},
	}
}

func (fx *generatorFixture) addItem(itemType entities.ActionItemType, desc string, confirmed bool) *entities.ActionItem {
	item := &entities.ActionItem{
		ID:          uuid.New(),
		MeetingID:   fx.meeting.ID,
		Description: desc,
		Type:        itemType,
		BAReviewed:  true,
		BAConfirmed: confirmed,
		Status:      entities.ActionItemStatusPending,
	}
	fx.items.items = append(fx.items.items, item)
	return item
}

func devPool() []assignment.Candidate {
	return []assignment.Candidate{
		{UserID: uuid.New(), DisplayName: "Ana", Role: entities.UserRoleDeveloper, Seniority: 3, Skills: []string{"payments"}},
		{UserID: uuid.New(), DisplayName: "Bo", Role: entities.UserRoleDeveloper, Seniority: 1},
	}
}

func TestGenerate_OnlyConfirmedPendingItems(t *testing.T) {
	fx := newFixture(devPool())
	confirmed := fx.addItem(entities.ActionItemTypeAction, "Ship payments retry", true)
	fx.addItem(entities.ActionItemTypeAction, "Rejected in review", false)
	fx.addItem(entities.ActionItemTypeNote, "Another confirmed", true)

	summaries, err := fx.gen.Generate(context.Background(), fx.actor, fx.meeting.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 proposals, got %d", len(summaries))
	}
	if len(fx.follows.follows) != 2 {
		t.Fatalf("expected 2 persisted follow-ups, got %d", len(fx.follows.follows))
	}
	if !fx.meeting.FollowupsProposed {
		t.Fatal("meeting should be marked followups_proposed")
	}

	var found bool
	for _, fu := range fx.follows.follows {
		if fu.ActionItemID == confirmed.ID {
			found = true
			if fu.SuggestedAssigneeID == nil {
				t.Fatal("expected a suggested assignee")
			}
			if fu.AssignmentReason == nil || !strings.Contains(*fu.AssignmentReason, "matches skills: payments") {
				t.Fatalf("expected skill rationale, got %v", fu.AssignmentReason)
			}
		}
	}
	if !found {
		t.Fatal("confirmed item has no proposal")
	}
}

func TestGenerate_TypeMapping(t *testing.T) {
	fx := newFixture(devPool())
	fx.addItem(entities.ActionItemTypeDecision, "Adopt the new queue", true)
	fx.addItem(entities.ActionItemTypeQuestion, "Can we drop the legacy endpoint", true)
	fx.addItem(entities.ActionItemTypeRisk, "Backup job silently failing", true)

	summaries, err := fx.gen.Generate(context.Background(), fx.actor, fx.meeting.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	types := map[string]string{}
	for _, s := range summaries {
		types[s.Title] = s.Type
	}
	if types["Adopt the new queue"] != entities.FlowTypeStory {
		t.Fatalf("decision should map to story, got %s", types["Adopt the new queue"])
	}
	if types["Can we drop the legacy endpoint"] != entities.FlowTypeSpike {
		t.Fatalf("question should map to spike, got %s", types["Can we drop the legacy endpoint"])
	}
	if types["Backup job silently failing"] != entities.FlowTypeBug {
		t.Fatalf("risk should map to bug, got %s", types["Backup job silently failing"])
	}
}

func TestGenerate_NoCandidatesDegradesToUnassigned(t *testing.T) {
	fx := newFixture(nil)
	fx.addItem(entities.ActionItemTypeAction, "Orphan work item", true)

	summaries, err := fx.gen.Generate(context.Background(), fx.actor, fx.meeting.ID)
	if err != nil {
		t.Fatalf("an empty roster must not fail generation: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 proposal, got %d", len(summaries))
	}
	if summaries[0].SuggestedAssignee != "Unassigned" {
		t.Fatalf("expected Unassigned, got %q", summaries[0].SuggestedAssignee)
	}
	if summaries[0].AssignmentReason != "No developers available" {
		t.Fatalf("unexpected rationale %q", summaries[0].AssignmentReason)
	}
	fu := fx.follows.follows[0]
	if fu.SuggestedAssigneeID != nil {
		t.Fatal("unassigned proposal must not carry an assignee id")
	}
}

func TestGenerate_IdempotentPerItem(t *testing.T) {
	fx := newFixture(devPool())
	fx.addItem(entities.ActionItemTypeAction, "Only once", true)

	if _, err := fx.gen.Generate(context.Background(), fx.actor, fx.meeting.ID); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	_, err := fx.gen.Generate(context.Background(), fx.actor, fx.meeting.ID)
	if !errors.Is(err, usecaseErrors.ErrNoEligibleItems) {
		t.Fatalf("expected ErrNoEligibleItems on re-run, got %v", err)
	}
	if len(fx.follows.follows) != 1 {
		t.Fatalf("re-run created duplicates: %d follow-ups", len(fx.follows.follows))
	}
}

func TestGenerate_NoEligibleItems(t *testing.T) {
	fx := newFixture(devPool())
	fx.addItem(entities.ActionItemTypeAction, "Rejected", false)

	_, err := fx.gen.Generate(context.Background(), fx.actor, fx.meeting.ID)
	if !errors.Is(err, usecaseErrors.ErrNoEligibleItems) {
		t.Fatalf("expected ErrNoEligibleItems, got %v", err)
	}
	if fx.meeting.FollowupsProposed {
		t.Fatal("failed generation must leave the meeting untouched")
	}
	if fx.meetings.updates != 0 {
		t.Fatal("failed generation must not write the meeting")
	}
}

func TestGenerate_MeetingNotFound(t *testing.T) {
	fx := newFixture(devPool())

	_, err := fx.gen.Generate(context.Background(), fx.actor, uuid.New())
	if !errors.Is(err, usecaseErrors.ErrMeetingNotFound) {
		t.Fatalf("expected ErrMeetingNotFound, got %v", err)
	}
}

func TestGenerate_ItemConfidenceCarried(t *testing.T) {
	fx := newFixture(devPool())
	conf := 0.42
	item := fx.addItem(entities.ActionItemTypeAction, "Low confidence extraction", true)
	item.AIConfidence = &conf

	if _, err := fx.gen.Generate(context.Background(), fx.actor, fx.meeting.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fx.follows.follows[0].AIConfidence != conf {
		t.Fatalf("expected item confidence carried, got %v", fx.follows.follows[0].AIConfidence)
	}
}

func TestTruncateTitle(t *testing.T) {
	long := strings.Repeat("a", 150)
	got := truncateTitle(long)
	if len(got) != titleMaxLen {
		t.Fatalf("expected length %d, got %d", titleMaxLen, len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got[len(got)-5:])
	}
	short := "fits"
	if truncateTitle(short) != short {
		t.Fatal("short titles must pass through unchanged")
	}
}

func TestTruncateTitle_MultibyteStaysValidUTF8(t *testing.T) {
	long := strings.Repeat("ж", 120)
	got := truncateTitle(long)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated title is not valid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != titleMaxLen {
		t.Fatalf("expected %d characters, got %d", titleMaxLen, n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}

	exact := strings.Repeat("ж", titleMaxLen)
	if truncateTitle(exact) != exact {
		t.Fatal("a title at the character limit must pass through unchanged")
	}
}
