package meeting

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quadworks/flowdeck/internal/domain/entities"
	"github.com/quadworks/flowdeck/internal/domain/repositories"
)

type fakeMeetingRepo struct {
	meetings map[uuid.UUID]*entities.Meeting
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{meetings: make(map[uuid.UUID]*entities.Meeting)}
}

func (f *fakeMeetingRepo) Create(ctx context.Context, m *entities.Meeting) error {
	f.meetings[m.ID] = m
	return nil
}

func (f *fakeMeetingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	m, ok := f.meetings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (f *fakeMeetingRepo) FindScoped(ctx context.Context, id, orgID uuid.UUID) (*entities.Meeting, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeMeetingRepo) Update(ctx context.Context, m *entities.Meeting) error {
	f.meetings[m.ID] = m
	return nil
}

func (f *fakeMeetingRepo) WithMeetingLock(ctx context.Context, meetingID uuid.UUID, fn func(tx repositories.MeetingTx) error) error {
	return nil
}

type fakeItemRepo struct {
	items []*entities.ActionItem
}

func (f *fakeItemRepo) CreateBatch(ctx context.Context, items []*entities.ActionItem) error {
	f.items = append(f.items, items...)
	return nil
}

func (f *fakeItemRepo) FindByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error) {
	return f.items, nil
}

func (f *fakeItemRepo) FindConfirmedPending(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error) {
	return nil, nil
}

func TestIngestMinutes_UnknownItemTypeFallsBackToNote(t *testing.T) {
	meetings := newFakeMeetingRepo()
	items := &fakeItemRepo{}
	svc := NewService(nil, nil, meetings, items, nil, nil)

	m, err := svc.IngestMinutes(context.Background(), IngestInput{
		DomainID: uuid.New(),
		Title:    "Sprint sync",
		Items: []IngestItemInput{
			{Description: "Todo: tidy backlog", Type: entities.ActionItemType("todo")},
			{Description: "Payment retries flaky", Type: entities.ActionItemTypeRisk},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.MomStatus != entities.MomStatusNeedsReview {
		t.Fatalf("ingested meeting must need review, got %s", m.MomStatus)
	}
	if len(items.items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items.items))
	}
	if got := items.items[0].Type; got != entities.ActionItemTypeNote {
		t.Fatalf("unknown type must fall back to note, got %s", got)
	}
	if got := items.items[1].Type; got != entities.ActionItemTypeRisk {
		t.Fatalf("known type must be preserved, got %s", got)
	}
}

func TestIngestMinutes_UncertainItemFlagsMeeting(t *testing.T) {
	meetings := newFakeMeetingRepo()
	items := &fakeItemRepo{}
	svc := NewService(nil, nil, meetings, items, nil, nil)

	reason := "speaker unclear"
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	m, err := svc.IngestMinutes(context.Background(), IngestInput{
		DomainID: uuid.New(),
		Title:    "Retro",
		Items: []IngestItemInput{
			{
				Description:     "Follow up with infra",
				Type:            entities.ActionItemTypeAction,
				IsUncertain:     true,
				UncertainReason: &reason,
				DueDate:         &due,
			},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.MomHasUncertainItems {
		t.Fatal("an uncertain item must flag the meeting")
	}
	if items.items[0].Status != entities.ActionItemStatusPending {
		t.Fatalf("ingested items start pending, got %s", items.items[0].Status)
	}
}

func TestActionItemTypeIsValid(t *testing.T) {
	valid := []entities.ActionItemType{
		entities.ActionItemTypeAction,
		entities.ActionItemTypeDecision,
		entities.ActionItemTypeQuestion,
		entities.ActionItemTypeRisk,
		entities.ActionItemTypeNote,
	}
	for _, ty := range valid {
		if !ty.IsValid() {
			t.Fatalf("type %s should be valid", ty)
		}
	}
	for _, ty := range []entities.ActionItemType{"", "todo", "Action"} {
		if ty.IsValid() {
			t.Fatalf("type %q should be invalid", ty)
		}
	}
}
