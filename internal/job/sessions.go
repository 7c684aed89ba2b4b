package job

import "time"

// Work-session accounting. Sessions alternate active/paused intervals; a nil
// EndedAt marks the one currently running session. All helpers are pure over
// the slice so they stay trivially testable.

func openIndex(sessions []WorkSession) int {
	for i := range sessions {
		if sessions[i].EndedAt == nil {
			return i
		}
	}
	return -1
}

// AppendOpen starts a new session at now. A stale open session (interrupted
// run, abrupt navigation away) is best-effort closed first so the list never
// holds two opens.
func AppendOpen(sessions []WorkSession, now time.Time) []WorkSession {
	sessions = CloseOpen(sessions, now)
	return append(sessions, WorkSession{StartedAt: now.UTC()})
}

// CloseOpen stamps EndedAt on the open session, if any.
func CloseOpen(sessions []WorkSession, now time.Time) []WorkSession {
	if i := openIndex(sessions); i >= 0 {
		ended := now.UTC()
		sessions[i].EndedAt = &ended
	}
	return sessions
}

// TotalDuration is the sum of all session lengths in whole seconds, with the
// open session counted up to now.
func TotalDuration(sessions []WorkSession, now time.Time) int64 {
	var total int64
	for _, s := range sessions {
		end := now
		if s.EndedAt != nil {
			end = *s.EndedAt
		}
		if d := end.Sub(s.StartedAt); d > 0 {
			total += int64(d.Seconds())
		}
	}
	return total
}

// CurrentDuration is the length of the open session in whole seconds, or 0
// when none is running.
func CurrentDuration(sessions []WorkSession, now time.Time) int64 {
	i := openIndex(sessions)
	if i < 0 {
		return 0
	}
	d := now.Sub(sessions[i].StartedAt)
	if d < 0 {
		return 0
	}
	return int64(d.Seconds())
}
