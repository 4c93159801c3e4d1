package flow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/quadworks/flowdeck/internal/domain/entities"
	"github.com/quadworks/flowdeck/internal/domain/repositories"
	usecaseErrors "github.com/quadworks/flowdeck/internal/usecase/errors"
)

type fakeFlowRepo struct {
	flows       map[uuid.UUID]*entities.Flow
	domainOrgs  map[uuid.UUID]uuid.UUID
	lastFilters repositories.FlowFilters
	created     int
}

func newFakeFlowRepo() *fakeFlowRepo {
	return &fakeFlowRepo{
		flows:      make(map[uuid.UUID]*entities.Flow),
		domainOrgs: make(map[uuid.UUID]uuid.UUID),
	}
}

func (f *fakeFlowRepo) Create(ctx context.Context, flow *entities.Flow) error {
	f.flows[flow.ID] = flow
	f.created++
	return nil
}

func (f *fakeFlowRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Flow, error) {
	fl, ok := f.flows[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return fl, nil
}

func (f *fakeFlowRepo) FindScoped(ctx context.Context, id, orgID uuid.UUID) (*entities.Flow, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeFlowRepo) List(ctx context.Context, filters repositories.FlowFilters) ([]*entities.Flow, int64, error) {
	f.lastFilters = filters
	var out []*entities.Flow
	for _, fl := range f.flows {
		if f.domainOrgs[fl.DomainID] == filters.OrgID {
			out = append(out, fl)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeFlowRepo) CountByDomain(ctx context.Context, domainID uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeFlowRepo) DomainInOrg(ctx context.Context, domainID, orgID uuid.UUID) (bool, error) {
	return f.domainOrgs[domainID] == orgID, nil
}

func (f *fakeFlowRepo) UpdateWithHistory(ctx context.Context, flow *entities.Flow, history *entities.StageHistory) error {
	f.flows[flow.ID] = flow
	return nil
}

func (f *fakeFlowRepo) HistoryByFlow(ctx context.Context, flowID uuid.UUID) ([]*entities.StageHistory, error) {
	return nil, nil
}

func testNow() time.Time {
	return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
}

func flowActor(orgID uuid.UUID) entities.Identity {
	return entities.Identity{
		UserID:         uuid.New(),
		OrganizationID: orgID,
		Email:          "lead@example.com",
		Role:           entities.UserRoleDeveloper,
	}
}

func TestCreateFlow_EntersQuestionStage(t *testing.T) {
	repo := newFakeFlowRepo()
	orgID := uuid.New()
	domainID := uuid.New()
	repo.domainOrgs[domainID] = orgID
	svc := NewService(repo, nil)

	actor := flowActor(orgID)
	f, err := svc.CreateFlow(context.Background(), actor, CreateFlowInput{
		DomainID: domainID,
		Title:    "Wire retry budget",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Stage != entities.StageQuestion {
		t.Fatalf("new flow must enter stage Q, got %s", f.Stage)
	}
	if f.QuestionStartedAt == nil {
		t.Fatal("question clock must start on create")
	}
	if f.ReporterID == nil || *f.ReporterID != actor.UserID {
		t.Fatal("reporter must be the creating actor")
	}
}

func TestCreateFlow_ForeignDomainHidden(t *testing.T) {
	repo := newFakeFlowRepo()
	domainID := uuid.New()
	repo.domainOrgs[domainID] = uuid.New()
	svc := NewService(repo, nil)

	_, err := svc.CreateFlow(context.Background(), flowActor(uuid.New()), CreateFlowInput{
		DomainID: domainID,
		Title:    "Should not land",
	})
	if !errors.Is(err, usecaseErrors.ErrDomainNotFound) {
		t.Fatalf("expected ErrDomainNotFound, got %v", err)
	}
	if repo.created != 0 {
		t.Fatal("no flow may be created in another tenant's domain")
	}
}

func TestListFlows_ScopedToActorOrganization(t *testing.T) {
	repo := newFakeFlowRepo()
	orgID := uuid.New()
	domainID := uuid.New()
	repo.domainOrgs[domainID] = orgID
	mine := entities.NewFlow(domainID, "Mine", testNow())
	repo.flows[mine.ID] = mine

	otherDomain := uuid.New()
	repo.domainOrgs[otherDomain] = uuid.New()
	theirs := entities.NewFlow(otherDomain, "Theirs", testNow())
	repo.flows[theirs.ID] = theirs

	svc := NewService(repo, nil)
	flows, total, err := svc.ListFlows(context.Background(), flowActor(orgID), repositories.FlowFilters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFilters.OrgID != orgID {
		t.Fatalf("listing must carry the actor's organization, got %s", repo.lastFilters.OrgID)
	}
	if total != 1 || len(flows) != 1 || flows[0].ID != mine.ID {
		t.Fatalf("expected only the caller's flow, got %d", total)
	}
}

func TestListFlows_CallerSuppliedOrgIgnored(t *testing.T) {
	repo := newFakeFlowRepo()
	orgID := uuid.New()
	svc := NewService(repo, nil)

	_, _, err := svc.ListFlows(context.Background(), flowActor(orgID), repositories.FlowFilters{
		OrgID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFilters.OrgID != orgID {
		t.Fatal("filters must not override the authenticated organization")
	}
}
