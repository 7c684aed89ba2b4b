package trial

import (
	"time"

	"github.com/google/uuid"
	"github.com/volition-os/volition-api/internal/goal"
)

type TrialStatus string

const (
	StatusPending   TrialStatus = "PENDING"
	StatusActive    TrialStatus = "ACTIVE"
	StatusCompleted TrialStatus = "COMPLETED"
)

type TrialTask struct {
	ID                 uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	GoalID             uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:idx_trial_goal_day,priority:1" json:"goal_id"`
	Goal               goal.Goal   `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE" json:"-"`
	DayNumber          int         `gorm:"not null;uniqueIndex:idx_trial_goal_day,priority:2" json:"day_number"`
	Title              string      `gorm:"not null" json:"title"`
	EstMinutes         int         `gorm:"not null" json:"est_minutes"`
	AcceptanceCriteria string      `gorm:"not null" json:"acceptance_criteria"`
	Status             TrialStatus `gorm:"not null;default:PENDING" json:"status"`
	ScheduledDate      *time.Time  `json:"scheduled_date,omitempty"`
	CompletedAt        *time.Time  `json:"completed_at,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}
