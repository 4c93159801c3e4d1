package assignment

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quadworks/flowdeck/internal/domain/entities"
	usecaseErrors "github.com/quadworks/flowdeck/internal/usecase/errors"
)

// FlowSpec describes the flow being scored. The engine works over a
// plain description and never needs a persisted row, so speculative
// flows cost nothing and leave nothing behind.
type FlowSpec struct {
	Title       string
	Description string
	Type        string
	Priority    string
}

// Candidate is one eligible person from the domain roster together
// with their current workload signal.
type Candidate struct {
	UserID      uuid.UUID
	DisplayName string
	Role        entities.UserRole
	Skills      []string
	Seniority   int
	OpenFlows   int
}

// CandidateSource supplies the eligible-person roster per domain.
type CandidateSource interface {
	Candidates(ctx context.Context, domainID, orgID uuid.UUID) ([]Candidate, error)
}

// ScoredCandidate carries a candidate's final score and the
// human-readable rationale behind it.
type ScoredCandidate struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Score       float64   `json:"score"`
	Reason      string    `json:"reason"`
}

// Result is a ranked assignment suggestion. Alternatives holds at
// most the next three candidates after the primary.
type Result struct {
	Suggested    ScoredCandidate
	Alternatives []ScoredCandidate
}

const (
	baseScore         = 50.0
	skillMatchBonus   = 10.0
	skillMatchCap     = 30.0
	workloadPenalty   = 5.0
	workloadCap       = 30.0
	seniorityBonus    = 2.5
	maxAlternatives   = 3
	minSeniorForSpike = 3
)

// Scorer ranks assignment candidates for a flow.
type Scorer struct {
	source CandidateSource
	logger *zap.Logger
}

// NewScorer creates a new scorer over the given candidate source.
func NewScorer(source CandidateSource, logger *zap.Logger) *Scorer {
	return &Scorer{source: source, logger: logger}
}

// Score ranks the domain's eligible people for the given flow spec.
// Pure over the roster snapshot read at call time: a fixed spec and a
// fixed pool always produce the same ordering and scores (ties break
// on candidate id). Returns ErrNoEligibleCandidates when the domain
// has no active assignable people.
func (s *Scorer) Score(ctx context.Context, spec FlowSpec, domainID, orgID uuid.UUID) (*Result, error) {
	pool, err := s.source.Candidates(ctx, domainID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate pool: %w", err)
	}
	if len(pool) == 0 {
		return nil, usecaseErrors.ErrNoEligibleCandidates
	}

	scored := make([]ScoredCandidate, 0, len(pool))
	for _, c := range pool {
		scored = append(scored, scoreCandidate(spec, c))
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].UserID.String() < scored[j].UserID.String()
	})

	result := &Result{Suggested: scored[0]}
	rest := scored[1:]
	if len(rest) > maxAlternatives {
		rest = rest[:maxAlternatives]
	}
	result.Alternatives = rest

	if s.logger != nil {
		s.logger.Debug("assignment.scored",
			zap.String("domain_id", domainID.String()),
			zap.String("suggested", result.Suggested.DisplayName),
			zap.Float64("score", result.Suggested.Score),
			zap.Int("pool_size", len(pool)),
		)
	}
	return result, nil
}

// scoreCandidate computes one candidate's score and rationale.
func scoreCandidate(spec FlowSpec, c Candidate) ScoredCandidate {
	score := baseScore
	var reasons []string

	text := strings.ToLower(spec.Title + " " + spec.Description + " " + spec.Type)
	var matched []string
	for _, skill := range c.Skills {
		sk := strings.ToLower(strings.TrimSpace(skill))
		if sk == "" {
			continue
		}
		if strings.Contains(text, sk) {
			matched = append(matched, sk)
		}
	}
	if len(matched) > 0 {
		bonus := skillMatchBonus * float64(len(matched))
		if bonus > skillMatchCap {
			bonus = skillMatchCap
		}
		score += bonus
		reasons = append(reasons, fmt.Sprintf("matches skills: %s", strings.Join(matched, ", ")))
	}

	penalty := workloadPenalty * float64(c.OpenFlows)
	if penalty > workloadCap {
		penalty = workloadCap
	}
	score -= penalty
	switch {
	case c.OpenFlows == 0:
		reasons = append(reasons, "no open flows")
	case c.OpenFlows == 1:
		reasons = append(reasons, "1 open flow")
	default:
		reasons = append(reasons, fmt.Sprintf("%d open flows", c.OpenFlows))
	}

	score += seniorityBonus * float64(c.Seniority)
	if c.Seniority >= minSeniorForSpike && (spec.Type == entities.FlowTypeSpike || spec.Type == entities.FlowTypeBug) {
		score += 5
		reasons = append(reasons, fmt.Sprintf("senior fit for %s work", spec.Type))
	}

	return ScoredCandidate{
		UserID:      c.UserID,
		DisplayName: c.DisplayName,
		Score:       score,
		Reason:      strings.Join(reasons, "; "),
	}
}
