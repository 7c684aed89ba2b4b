package blueprint

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/volition-os/volition-api/internal/config"
	"github.com/volition-os/volition-api/internal/goal"
)

// Milestone verification and the completion cascade.
//
// Confirming a verification is the only durable step. Everything after it
// (next-milestone activation, phase completion, goal completion) is a
// best-effort hook: a failure there is logged and swallowed, never rolled
// back into the confirmation.

// CheckMilestoneCompletion is true iff the milestone has at least one
// cluster, at least one job, and every job COMPLETED.
func (s *blueprintService) CheckMilestoneCompletion(milestoneID uuid.UUID) (bool, error) {
	clusters, jobs, completed, err := s.jobStats.MilestoneJobStats(milestoneID)
	if err != nil {
		return false, err
	}
	if clusters == 0 || jobs == 0 {
		return false, nil
	}
	return jobs == completed, nil
}

// SyncMilestoneStatusIfNeeded moves an ACTIVE milestone whose jobs are all
// done to PENDING_VERIFICATION. Idempotent: already-verifying or completed
// milestones are returned unchanged.
func (s *blueprintService) SyncMilestoneStatusIfNeeded(ctx context.Context, goalID, milestoneID string) (*Milestone, error) {
	log := config.WithContext(ctx)

	_, m, err := s.resolveOwnedMilestone(ctx, goalID, milestoneID)
	if err != nil {
		return nil, err
	}

	if m.Status != MilestoneActive {
		return m, nil
	}

	done, err := s.CheckMilestoneCompletion(m.ID)
	if err != nil {
		return nil, err
	}
	if !done {
		return m, nil
	}

	if err := s.repo.UpdateMilestoneStatus(m.ID, MilestonePendingVerification); err != nil {
		log.WithError(err).Error("Failed to move milestone to pending verification")
		return nil, err
	}
	m.Status = MilestonePendingVerification

	log.WithField("milestone_id", m.ID).Info("Milestone awaiting verification")
	return m, nil
}

// ConfirmMilestoneVerification completes a PENDING_VERIFICATION milestone,
// then runs the cascade hooks.
func (s *blueprintService) ConfirmMilestoneVerification(ctx context.Context, goalID, milestoneID string) (*Milestone, error) {
	log := config.WithContext(ctx)

	g, m, err := s.resolveOwnedMilestone(ctx, goalID, milestoneID)
	if err != nil {
		return nil, err
	}

	if m.Status != MilestonePendingVerification {
		return nil, statusErr(string(MilestonePendingVerification), string(m.Status))
	}

	if err := s.repo.UpdateMilestoneStatus(m.ID, MilestoneCompleted); err != nil {
		log.WithError(err).Error("Failed to complete milestone")
		return nil, err
	}
	m.Status = MilestoneCompleted

	// Post-commit hooks, best-effort and ordered.
	hooks := []struct {
		name string
		fn   func() error
	}{
		{"activate_next_milestone", func() error { return s.activateNextPendingMilestone(g.ID, m.ID) }},
		{"complete_finished_phases", func() error { return s.completeFinishedPhases(g.ID) }},
		{"complete_goal_if_done", func() error { return s.checkAndCompleteGoalIfAllMilestonesDone(g) }},
	}
	for _, hook := range hooks {
		if err := hook.fn(); err != nil {
			log.WithError(err).Warnf("Cascade step %s failed after verification", hook.name)
		}
	}

	log.WithField("milestone_id", m.ID).Info("Milestone verified and completed")
	return m, nil
}

// activateNextPendingMilestone scans every milestone of the goal in
// created-order and activates the first PENDING one strictly after the just
// completed milestone. Finding none is not an error: the goal simply has no
// active milestone.
func (s *blueprintService) activateNextPendingMilestone(goalID, completedID uuid.UUID) error {
	phases, err := s.repo.FindPhasesByGoalID(goalID)
	if err != nil {
		return err
	}

	passed := false
	for _, p := range phases {
		for i := range p.Milestones {
			m := &p.Milestones[i]
			if m.ID == completedID {
				passed = true
				continue
			}
			if passed && m.Status == MilestonePending {
				return s.repo.ResetSiblingsAndActivate(p.ID, m.ID)
			}
		}
	}
	if !passed {
		return fmt.Errorf("completed milestone %s not found in goal tree", completedID)
	}
	return nil
}

// completeFinishedPhases marks any phase whose milestones are all COMPLETED
// as COMPLETED; the phase-lock rule keys off this.
func (s *blueprintService) completeFinishedPhases(goalID uuid.UUID) error {
	phases, err := s.repo.FindPhasesByGoalID(goalID)
	if err != nil {
		return err
	}

	for _, p := range phases {
		if p.Status == PhaseCompleted || len(p.Milestones) == 0 {
			continue
		}
		done := true
		for _, m := range p.Milestones {
			if m.Status != MilestoneCompleted {
				done = false
				break
			}
		}
		if done {
			if err := s.repo.UpdatePhaseStatus(p.ID, PhaseCompleted); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkAndCompleteGoalIfAllMilestonesDone completes the goal when literally
// every milestone under every phase is COMPLETED. Idempotent.
func (s *blueprintService) checkAndCompleteGoalIfAllMilestonesDone(g *goal.Goal) error {
	if g.Status == goal.StatusCompleted {
		return nil
	}

	phases, err := s.repo.FindPhasesByGoalID(g.ID)
	if err != nil {
		return err
	}
	if !allMilestonesCompleted(phases) {
		return nil
	}

	_, err = s.goalRepo.UpdateStatusIf(g.ID, goal.StatusActive, goal.StatusCompleted)
	return err
}
