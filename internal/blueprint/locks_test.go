package blueprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseLocked(t *testing.T) {
	phases := []*Phase{
		{Index: 0, Status: PhaseActive},
		{Index: 1, Status: PhasePending},
		{Index: 2, Status: PhasePending},
	}

	t.Run("FirstPhaseNeverLocked", func(t *testing.T) {
		assert.False(t, PhaseLocked(phases, 0))
	})

	t.Run("LockedWhilePredecessorIncomplete", func(t *testing.T) {
		assert.True(t, PhaseLocked(phases, 1))
		assert.True(t, PhaseLocked(phases, 2))
	})

	t.Run("UnlocksOnPredecessorCompletion", func(t *testing.T) {
		phases[0].Status = PhaseCompleted
		assert.False(t, PhaseLocked(phases, 1))
		assert.True(t, PhaseLocked(phases, 2))
	})
}

func TestMilestoneLocked(t *testing.T) {
	t.Run("FirstNeverLocked", func(t *testing.T) {
		milestones := []Milestone{{Status: MilestonePending}, {Status: MilestonePending}}
		assert.False(t, MilestoneLocked(milestones, 0))
	})

	t.Run("LockedBehindIncompletePredecessor", func(t *testing.T) {
		milestones := []Milestone{{Status: MilestoneActive}, {Status: MilestonePending}}
		assert.True(t, MilestoneLocked(milestones, 1))
	})

	t.Run("UnlockedBehindCompletedPredecessor", func(t *testing.T) {
		milestones := []Milestone{{Status: MilestoneCompleted}, {Status: MilestonePending}}
		assert.False(t, MilestoneLocked(milestones, 1))
	})

	t.Run("ActiveNeverLocked", func(t *testing.T) {
		// An active milestone stays enterable even when its predecessor
		// has not completed.
		milestones := []Milestone{{Status: MilestonePending}, {Status: MilestoneActive}}
		assert.False(t, MilestoneLocked(milestones, 1))
	})
}

func TestAllMilestonesCompleted(t *testing.T) {
	t.Run("EmptyTree", func(t *testing.T) {
		assert.False(t, allMilestonesCompleted(nil))
		assert.False(t, allMilestonesCompleted([]*Phase{{}}))
	})

	t.Run("OneRemaining", func(t *testing.T) {
		phases := []*Phase{
			{Milestones: []Milestone{{Status: MilestoneCompleted}}},
			{Milestones: []Milestone{{Status: MilestonePending}}},
		}
		assert.False(t, allMilestonesCompleted(phases))
	})

	t.Run("AllDone", func(t *testing.T) {
		phases := []*Phase{
			{Milestones: []Milestone{{Status: MilestoneCompleted}, {Status: MilestoneCompleted}}},
			{Milestones: []Milestone{{Status: MilestoneCompleted}}},
		}
		assert.True(t, allMilestonesCompleted(phases))
	})
}
