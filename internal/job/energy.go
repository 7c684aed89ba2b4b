package job

import "sort"

// Energy-based job filter. The mapping is monotonic by construction: each
// level's eligible set contains every lower level's set, so raising energy
// never hides a job that was visible before.
//
//	LOW  -> QUICK_WIN
//	MED  -> QUICK_WIN, DEEP_WORK
//	HIGH -> QUICK_WIN, DEEP_WORK, ANCHOR

// MaxRecommended caps the focus view so the user picks from a short list.
const MaxRecommended = 3

func eligibleTypes(level EnergyLevel) map[JobType]bool {
	eligible := map[JobType]bool{TypeQuickWin: true}
	if level == EnergyMed || level == EnergyHigh {
		eligible[TypeDeepWork] = true
	}
	if level == EnergyHigh {
		eligible[TypeAnchor] = true
	}
	return eligible
}

// FilterByEnergy returns up to MaxRecommended PENDING/ACTIVE jobs matching
// the energy level, ACTIVE jobs first, then oldest-created first. The filter
// is advisory for focus only; the cluster explorer bypasses it entirely.
func FilterByEnergy(jobs []*Job, level EnergyLevel) []*Job {
	eligible := eligibleTypes(level)

	var picked []*Job
	for _, j := range jobs {
		if j.Status != StatusPending && j.Status != StatusActive {
			continue
		}
		if !eligible[j.Type] {
			continue
		}
		picked = append(picked, j)
	}

	sort.SliceStable(picked, func(a, b int) bool {
		if (picked[a].Status == StatusActive) != (picked[b].Status == StatusActive) {
			return picked[a].Status == StatusActive
		}
		return picked[a].CreatedAt.Before(picked[b].CreatedAt)
	})

	if len(picked) > MaxRecommended {
		picked = picked[:MaxRecommended]
	}
	return picked
}
