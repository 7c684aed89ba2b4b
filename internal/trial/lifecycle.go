package trial

// Pure selection rules over a goal's trial task set. The repository returns
// tasks ordered by day number; these helpers do not assume it.

// ActiveTask returns the task with the lowest day number that is not yet
// COMPLETED, or nil when there is none (empty trial or everything done).
func ActiveTask(tasks []*TrialTask) *TrialTask {
	var active *TrialTask
	for _, t := range tasks {
		if t.Status == StatusCompleted {
			continue
		}
		if active == nil || t.DayNumber < active.DayNumber {
			active = t
		}
	}
	return active
}

// SplitPlan partitions the set into the active task, the tasks after it, and
// the completed ones.
func SplitPlan(tasks []*TrialTask) (active *TrialTask, future, completed []*TrialTask) {
	active = ActiveTask(tasks)
	for _, t := range tasks {
		switch {
		case t.Status == StatusCompleted:
			completed = append(completed, t)
		case active != nil && t.DayNumber > active.DayNumber:
			future = append(future, t)
		}
	}
	return active, future, completed
}

// AllCompleted reports whether every task is COMPLETED. An empty set is never
// complete: a goal with no trial tasks has nothing to graduate from.
func AllCompleted(tasks []*TrialTask) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if t.Status != StatusCompleted {
			return false
		}
	}
	return true
}
