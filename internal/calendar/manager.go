package calendar

import (
	"context"

	"github.com/google/uuid"
	"github.com/volition-os/volition-api/internal/config"
)

// Manager mirrors job deadlines into the user's Google Calendar. All
// operations are best-effort: calendar failures are logged, never
// surfaced, so the execution flow keeps working without the
// integration.
type Manager struct {
	service CalendarService
}

func NewManager(service CalendarService) *Manager {
	return &Manager{service: service}
}

// SyncJob creates or updates the calendar event for a job deadline and
// returns the event ID that should be stored on the job. When the
// deadline was cleared the existing event is removed and nil is
// returned.
func (m *Manager) SyncJob(ctx context.Context, userID uuid.UUID, job *CalendarJob) *string {
	log := config.WithContext(ctx).WithField("job_id", job.ID)

	if job.Deadline == nil {
		if job.CalendarEventID != nil && *job.CalendarEventID != "" {
			if err := m.service.DeleteEvent(ctx, userID, *job.CalendarEventID); err != nil {
				log.WithError(err).Warn("Failed to remove calendar event for cleared deadline")
			}
		}
		return nil
	}

	if job.CalendarEventID != nil && *job.CalendarEventID != "" {
		err := m.service.UpdateEvent(ctx, userID, job)
		if err == nil {
			return job.CalendarEventID
		}
		log.WithError(err).Warn("Failed to update calendar event, recreating")
	}

	eventID, err := m.service.AddEvent(ctx, userID, job)
	if err != nil {
		log.WithError(err).Warn("Failed to create calendar event for job deadline")
		return nil
	}
	return &eventID
}

// RemoveJob deletes the calendar event tied to a job, if any.
func (m *Manager) RemoveJob(ctx context.Context, userID uuid.UUID, job *CalendarJob) {
	if job.CalendarEventID == nil || *job.CalendarEventID == "" {
		return
	}
	if err := m.service.DeleteEvent(ctx, userID, *job.CalendarEventID); err != nil {
		config.WithContext(ctx).WithError(err).WithField("job_id", job.ID).
			Warn("Failed to delete calendar event for job")
	}
}
