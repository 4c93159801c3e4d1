package flow

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quadworks/flowdeck/internal/domain/entities"
	usecaseErrors "github.com/quadworks/flowdeck/internal/usecase/errors"
)

// StageChange is a requested transition. Nil fields were not supplied
// by the caller.
type StageChange struct {
	Stage  *entities.FlowStage
	Status *string
	Reason *string
}

// ApplyStageChange advances a flow through the QUAD lifecycle and
// returns the audit row to append, mutating the flow in place.
//
// A stage change completes the current stage, starts the requested
// one and resets the sub-status (to the supplied status, or pending).
// A status-only change touches just the sub-status. Identical stage
// and status is a no-op and returns no history row. The caller is
// responsible for persisting flow and history atomically.
func ApplyStageChange(f *entities.Flow, change StageChange, actorID uuid.UUID, now time.Time) (*entities.StageHistory, error) {
	fromStage := f.Stage
	fromStatus := f.StageStatus

	targetStage := fromStage
	if change.Stage != nil {
		if !change.Stage.IsValid() {
			return nil, usecaseErrors.ErrInvalidStage
		}
		targetStage = *change.Stage
	}

	targetStatus := fromStatus
	if change.Status != nil {
		targetStatus = *change.Status
	}

	if targetStage == fromStage {
		if targetStatus == fromStatus {
			return nil, nil
		}
		f.StageStatus = targetStatus
		return historyRow(f.ID, fromStage, targetStage, fromStatus, targetStatus, actorID, reasonOrDefault(change.Reason, fromStage, targetStage), now), nil
	}

	if change.Status == nil {
		targetStatus = entities.StageStatusPending
	}

	f.CompleteStage(fromStage, now)
	f.StartStage(targetStage, now)
	f.Stage = targetStage
	f.StageStatus = targetStatus

	return historyRow(f.ID, fromStage, targetStage, fromStatus, targetStatus, actorID, reasonOrDefault(change.Reason, fromStage, targetStage), now), nil
}

func reasonOrDefault(reason *string, from, to entities.FlowStage) string {
	if reason != nil && *reason != "" {
		return *reason
	}
	if from == to {
		return fmt.Sprintf("Status changed in %s", from.Name())
	}
	return fmt.Sprintf("Moved from %s to %s", from.Name(), to.Name())
}

func historyRow(flowID uuid.UUID, fromStage, toStage entities.FlowStage, fromStatus, toStatus string, actorID uuid.UUID, reason string, now time.Time) *entities.StageHistory {
	return &entities.StageHistory{
		ID:         uuid.New(),
		FlowID:     flowID,
		FromStage:  fromStage,
		ToStage:    toStage,
		FromStatus: fromStatus,
		ToStatus:   toStatus,
		ChangedBy:  actorID,
		Reason:     reason,
		CreatedAt:  now,
	}
}
