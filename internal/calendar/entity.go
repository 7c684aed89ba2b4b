package calendar

import (
	"time"

	"github.com/google/uuid"
)

type CalendarJob struct {
	ID              uuid.UUID
	Title           string
	Note            string
	Deadline        *time.Time
	CalendarEventID *string
}
