package trial

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func task(day int, status TrialStatus) *TrialTask {
	return &TrialTask{ID: uuid.New(), DayNumber: day, Status: status}
}

func TestActiveTask(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Nil(t, ActiveTask(nil))
	})

	t.Run("LowestPendingWins", func(t *testing.T) {
		tasks := []*TrialTask{
			task(1, StatusCompleted),
			task(3, StatusPending),
			task(2, StatusPending),
		}
		active := ActiveTask(tasks)
		require.NotNil(t, active)
		assert.Equal(t, 2, active.DayNumber)
	})

	t.Run("ActiveStatusCounts", func(t *testing.T) {
		tasks := []*TrialTask{
			task(1, StatusCompleted),
			task(2, StatusActive),
			task(3, StatusPending),
		}
		assert.Equal(t, 2, ActiveTask(tasks).DayNumber)
	})

	t.Run("AllCompleted", func(t *testing.T) {
		tasks := []*TrialTask{task(1, StatusCompleted), task(2, StatusCompleted)}
		assert.Nil(t, ActiveTask(tasks))
	})
}

func TestSplitPlan(t *testing.T) {
	tasks := []*TrialTask{
		task(1, StatusCompleted),
		task(2, StatusPending),
		task(3, StatusPending),
		task(4, StatusPending),
	}

	active, future, completed := SplitPlan(tasks)
	require.NotNil(t, active)
	assert.Equal(t, 2, active.DayNumber)
	assert.Len(t, future, 2)
	assert.Len(t, completed, 1)
}

func TestAllCompleted(t *testing.T) {
	t.Run("EmptyNeverCompletes", func(t *testing.T) {
		assert.False(t, AllCompleted(nil))
	})

	t.Run("OnePending", func(t *testing.T) {
		tasks := []*TrialTask{task(1, StatusCompleted), task(2, StatusPending)}
		assert.False(t, AllCompleted(tasks))
	})

	t.Run("AllDone", func(t *testing.T) {
		tasks := []*TrialTask{task(1, StatusCompleted), task(2, StatusCompleted)}
		assert.True(t, AllCompleted(tasks))
	})
}
