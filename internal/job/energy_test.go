package job

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkJob(jt JobType, status JobStatus, createdOffset int) *Job {
	return &Job{
		ID:        uuid.New(),
		Title:     string(jt),
		Type:      jt,
		Status:    status,
		CreatedAt: time.Date(2026, 3, 1, 9, 0, createdOffset, 0, time.UTC),
	}
}

func TestFilterByEnergy(t *testing.T) {
	t.Run("LowAllowsOnlyQuickWins", func(t *testing.T) {
		jobs := []*Job{
			mkJob(TypeQuickWin, StatusPending, 0),
			mkJob(TypeDeepWork, StatusPending, 1),
			mkJob(TypeAnchor, StatusPending, 2),
		}
		picked := FilterByEnergy(jobs, EnergyLow)
		require.Len(t, picked, 1)
		assert.Equal(t, TypeQuickWin, picked[0].Type)
	})

	t.Run("MonotonicAcrossLevels", func(t *testing.T) {
		jobs := []*Job{
			mkJob(TypeQuickWin, StatusPending, 0),
			mkJob(TypeDeepWork, StatusPending, 1),
			mkJob(TypeAnchor, StatusPending, 2),
		}
		low := FilterByEnergy(jobs, EnergyLow)
		med := FilterByEnergy(jobs, EnergyMed)
		high := FilterByEnergy(jobs, EnergyHigh)

		// Raising energy never hides a previously eligible job.
		contains := func(set []*Job, id uuid.UUID) bool {
			for _, j := range set {
				if j.ID == id {
					return true
				}
			}
			return false
		}
		for _, j := range low {
			assert.True(t, contains(med, j.ID))
		}
		for _, j := range med {
			assert.True(t, contains(high, j.ID))
		}
		assert.Len(t, high, 3)
	})

	t.Run("CapsAtThree", func(t *testing.T) {
		var jobs []*Job
		for i := 0; i < 6; i++ {
			jobs = append(jobs, mkJob(TypeQuickWin, StatusPending, i))
		}
		assert.Len(t, FilterByEnergy(jobs, EnergyLow), MaxRecommended)
	})

	t.Run("ActiveJobsComeFirst", func(t *testing.T) {
		pending := mkJob(TypeQuickWin, StatusPending, 0)
		active := mkJob(TypeQuickWin, StatusActive, 5)
		picked := FilterByEnergy([]*Job{pending, active}, EnergyLow)

		require.Len(t, picked, 2)
		assert.Equal(t, active.ID, picked[0].ID)
		assert.Equal(t, pending.ID, picked[1].ID)
	})

	t.Run("TerminalJobsExcluded", func(t *testing.T) {
		jobs := []*Job{
			mkJob(TypeQuickWin, StatusCompleted, 0),
			mkJob(TypeQuickWin, StatusFailed, 1),
		}
		assert.Empty(t, FilterByEnergy(jobs, EnergyHigh))
	})
}
