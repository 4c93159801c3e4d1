package assignment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/quadworks/flowdeck/internal/domain/entities"
	usecaseErrors "github.com/quadworks/flowdeck/internal/usecase/errors"
)

type fakeSource struct {
	pool []Candidate
	err  error
}

func (f *fakeSource) Candidates(ctx context.Context, domainID, orgID uuid.UUID) ([]Candidate, error) {
	return f.pool, f.err
}

func TestScore_EmptyPool(t *testing.T) {
	scorer := NewScorer(&fakeSource{}, nil)

	_, err := scorer.Score(context.Background(), FlowSpec{Title: "anything"}, uuid.New(), uuid.New())
	if !errors.Is(err, usecaseErrors.ErrNoEligibleCandidates) {
		t.Fatalf("expected ErrNoEligibleCandidates, got %v", err)
	}
}

func TestScore_SkillMatchWins(t *testing.T) {
	generalist := Candidate{UserID: uuid.New(), DisplayName: "Generalist", Seniority: 2}
	specialist := Candidate{UserID: uuid.New(), DisplayName: "Specialist", Seniority: 2, Skills: []string{"payments"}}
	scorer := NewScorer(&fakeSource{pool: []Candidate{generalist, specialist}}, nil)

	result, err := scorer.Score(context.Background(), FlowSpec{
		Title: "Fix payments reconciliation",
		Type:  entities.FlowTypeTask,
	}, uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Suggested.UserID != specialist.UserID {
		t.Fatalf("expected specialist suggested, got %s", result.Suggested.DisplayName)
	}
	if !strings.Contains(result.Suggested.Reason, "matches skills: payments") {
		t.Fatalf("expected skill rationale, got %q", result.Suggested.Reason)
	}
	if len(result.Alternatives) != 1 {
		t.Fatalf("expected 1 alternative, got %d", len(result.Alternatives))
	}
}

func TestScore_WorkloadPenalty(t *testing.T) {
	busy := Candidate{UserID: uuid.New(), DisplayName: "Busy", Seniority: 2, OpenFlows: 4}
	idle := Candidate{UserID: uuid.New(), DisplayName: "Idle", Seniority: 2}
	scorer := NewScorer(&fakeSource{pool: []Candidate{busy, idle}}, nil)

	result, err := scorer.Score(context.Background(), FlowSpec{Title: "Routine chore"}, uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Suggested.UserID != idle.UserID {
		t.Fatalf("expected idle candidate suggested, got %s", result.Suggested.DisplayName)
	}
	if !strings.Contains(result.Suggested.Reason, "no open flows") {
		t.Fatalf("expected workload rationale, got %q", result.Suggested.Reason)
	}
}

func TestScore_WorkloadPenaltyCapped(t *testing.T) {
	// 10 open flows would cost 50 uncapped; the cap keeps the senior
	// swamped candidate ahead of a junior idle one.
	swamped := Candidate{UserID: uuid.New(), DisplayName: "Swamped", Seniority: 10, OpenFlows: 10}
	sc := scoreCandidate(FlowSpec{Title: "x"}, swamped)

	// base 50 - capped 30 + 2.5*10 = 45
	if sc.Score != 45 {
		t.Fatalf("expected capped score 45, got %v", sc.Score)
	}
}

func TestScore_SkillBonusCapped(t *testing.T) {
	c := Candidate{
		UserID:      uuid.New(),
		DisplayName: "Polyglot",
		Skills:      []string{"go", "sql", "redis", "grpc"},
	}
	sc := scoreCandidate(FlowSpec{Title: "go sql redis grpc migration"}, c)

	// base 50 + capped skill bonus 30, no workload, no seniority
	if sc.Score != 80 {
		t.Fatalf("expected capped score 80, got %v", sc.Score)
	}
}

func TestScore_SeniorSpikeBonus(t *testing.T) {
	junior := Candidate{UserID: uuid.New(), DisplayName: "Junior", Seniority: 1}
	senior := Candidate{UserID: uuid.New(), DisplayName: "Senior", Seniority: 3}
	scorer := NewScorer(&fakeSource{pool: []Candidate{junior, senior}}, nil)

	result, err := scorer.Score(context.Background(), FlowSpec{
		Title: "Investigate cache stampede",
		Type:  entities.FlowTypeSpike,
	}, uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Suggested.UserID != senior.UserID {
		t.Fatalf("expected senior suggested for spike, got %s", result.Suggested.DisplayName)
	}
	if !strings.Contains(result.Suggested.Reason, "senior fit for spike work") {
		t.Fatalf("expected spike rationale, got %q", result.Suggested.Reason)
	}
}

func TestScore_DeterministicTieBreak(t *testing.T) {
	a := Candidate{UserID: uuid.MustParse("00000000-0000-0000-0000-00000000000a"), DisplayName: "A", Seniority: 2}
	b := Candidate{UserID: uuid.MustParse("00000000-0000-0000-0000-00000000000b"), DisplayName: "B", Seniority: 2}
	spec := FlowSpec{Title: "Identical work"}

	for i := 0; i < 5; i++ {
		scorer := NewScorer(&fakeSource{pool: []Candidate{b, a}}, nil)
		result, err := scorer.Score(context.Background(), spec, uuid.New(), uuid.New())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Suggested.UserID != a.UserID {
			t.Fatalf("run %d: tie should break on id, got %s", i, result.Suggested.DisplayName)
		}
	}
}

func TestScore_AlternativesBounded(t *testing.T) {
	pool := make([]Candidate, 6)
	for i := range pool {
		pool[i] = Candidate{UserID: uuid.New(), DisplayName: "Dev", Seniority: i}
	}
	scorer := NewScorer(&fakeSource{pool: pool}, nil)

	result, err := scorer.Score(context.Background(), FlowSpec{Title: "Crowded domain"}, uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Alternatives) != maxAlternatives {
		t.Fatalf("expected %d alternatives, got %d", maxAlternatives, len(result.Alternatives))
	}
	// Ranked strictly under the primary.
	prev := result.Suggested.Score
	for _, alt := range result.Alternatives {
		if alt.Score > prev {
			t.Fatalf("alternatives out of order: %v after %v", alt.Score, prev)
		}
		prev = alt.Score
	}
}
