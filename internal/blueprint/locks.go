package blueprint

// Derived lock rules for the presentation layer. Locks are never stored:
// they are recomputed from the tree on every read. Locking only gates
// activating new milestones; an already-ACTIVE milestone is always enterable.

// PhaseLocked reports whether the phase at index idx is locked. The first
// phase is never locked; any later phase is locked until its predecessor is
// COMPLETED.
func PhaseLocked(phases []*Phase, idx int) bool {
	if idx <= 0 || idx >= len(phases) {
		return false
	}
	return phases[idx-1].Status != PhaseCompleted
}

// MilestoneLocked reports whether the milestone at position pos within its
// phase is locked. An ACTIVE milestone is never locked; otherwise a
// milestone past the first is locked until the one before it is COMPLETED.
func MilestoneLocked(milestones []Milestone, pos int) bool {
	if pos < 0 || pos >= len(milestones) {
		return false
	}
	if milestones[pos].Status == MilestoneActive {
		return false
	}
	if pos == 0 {
		return false
	}
	return milestones[pos-1].Status != MilestoneCompleted
}

// flatten returns every milestone of the goal in created-order: phases by
// index, milestones by creation time within each phase.
func flatten(phases []*Phase) []Milestone {
	var all []Milestone
	for _, p := range phases {
		all = append(all, p.Milestones...)
	}
	return all
}

// allMilestonesCompleted reports whether the goal has at least one milestone
// and every one of them is COMPLETED.
func allMilestonesCompleted(phases []*Phase) bool {
	all := flatten(phases)
	if len(all) == 0 {
		return false
	}
	for _, m := range all {
		if m.Status != MilestoneCompleted {
			return false
		}
	}
	return true
}
