package job

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t *testing.T, clock string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, "2026-03-01T"+clock+":00Z")
	require.NoError(t, err)
	return ts
}

func TestSessionDurations(t *testing.T) {
	// One closed 10:00-10:05 session plus one open since 10:10, read at
	// 10:12: five minutes banked, two minutes running.
	ended := at(t, "10:05")
	sessions := []WorkSession{
		{StartedAt: at(t, "10:00"), EndedAt: &ended},
		{StartedAt: at(t, "10:10")},
	}
	now := at(t, "10:12")

	assert.Equal(t, int64(7*60), TotalDuration(sessions, now))
	assert.Equal(t, int64(2*60), CurrentDuration(sessions, now))
}

func TestCurrentDurationNoOpenSession(t *testing.T) {
	ended := at(t, "10:05")
	sessions := []WorkSession{{StartedAt: at(t, "10:00"), EndedAt: &ended}}

	assert.Equal(t, int64(0), CurrentDuration(sessions, at(t, "10:12")))
	assert.Equal(t, int64(5*60), TotalDuration(sessions, at(t, "10:12")))
}

func TestAppendOpenClosesStaleSession(t *testing.T) {
	// An interrupted run leaves a dangling open session; starting again must
	// close it rather than keep two opens.
	sessions := []WorkSession{{StartedAt: at(t, "09:00")}}

	sessions = AppendOpen(sessions, at(t, "10:00"))
	require.Len(t, sessions, 2)
	require.NotNil(t, sessions[0].EndedAt)
	assert.Equal(t, at(t, "10:00"), *sessions[0].EndedAt)
	assert.Nil(t, sessions[1].EndedAt)

	opens := 0
	for _, s := range sessions {
		if s.EndedAt == nil {
			opens++
		}
	}
	assert.Equal(t, 1, opens)
}

func TestCloseOpen(t *testing.T) {
	t.Run("ClosesTheOpenSession", func(t *testing.T) {
		sessions := []WorkSession{{StartedAt: at(t, "10:00")}}
		sessions = CloseOpen(sessions, at(t, "10:30"))
		require.NotNil(t, sessions[0].EndedAt)
		assert.Equal(t, at(t, "10:30"), *sessions[0].EndedAt)
	})

	t.Run("NoOpenSessionIsANoOp", func(t *testing.T) {
		ended := at(t, "10:05")
		sessions := []WorkSession{{StartedAt: at(t, "10:00"), EndedAt: &ended}}
		sessions = CloseOpen(sessions, at(t, "10:30"))
		assert.Equal(t, at(t, "10:05"), *sessions[0].EndedAt)
	})

	t.Run("EmptyList", func(t *testing.T) {
		assert.Empty(t, CloseOpen(nil, at(t, "10:00")))
	})
}
