package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/quadworks/flowdeck/internal/domain/repositories"
	"github.com/quadworks/flowdeck/internal/usecase/assignment"
)

// candidateSource adapts the user repository into the assignment
// engine's roster contract.
type candidateSource struct {
	users repositories.UserRepository
}

// NewCandidateSource creates the roster adapter for the assignment
// engine.
func NewCandidateSource(users repositories.UserRepository) assignment.CandidateSource {
	return &candidateSource{users: users}
}

// Candidates returns the eligible people of a domain with their
// workload signal.
func (c *candidateSource) Candidates(ctx context.Context, domainID, orgID uuid.UUID) ([]assignment.Candidate, error) {
	users, workload, err := c.users.FindAssignable(ctx, domainID, orgID)
	if err != nil {
		return nil, err
	}

	candidates := make([]assignment.Candidate, 0, len(users))
	for _, u := range users {
		var skills []string
		if len(u.Skills) > 0 {
			// Malformed skill lists degrade to no skill signal
			// rather than failing the scoring call.
			_ = json.Unmarshal(u.Skills, &skills)
		}
		candidates = append(candidates, assignment.Candidate{
			UserID:      u.ID,
			DisplayName: u.DisplayName,
			Role:        u.Role,
			Skills:      skills,
			Seniority:   u.Seniority,
			OpenFlows:   workload[u.ID],
		})
	}
	return candidates, nil
}
