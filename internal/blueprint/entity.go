package blueprint

import (
	"time"

	"github.com/google/uuid"
	"github.com/volition-os/volition-api/internal/goal"
)

type Phase struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	GoalID    uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:idx_phase_goal_index,priority:1" json:"goal_id"`
	Goal      goal.Goal   `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE" json:"-"`
	Index     int         `gorm:"not null;uniqueIndex:idx_phase_goal_index,priority:2" json:"index"`
	Title     string      `gorm:"not null" json:"title"`
	Status    PhaseStatus `gorm:"not null;default:PENDING" json:"status"`
	Milestones []Milestone `gorm:"foreignKey:PhaseID;constraint:OnDelete:CASCADE" json:"milestones,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type Milestone struct {
	ID                 uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PhaseID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"phase_id"`
	Phase              *Phase          `gorm:"foreignKey:PhaseID" json:"-"`
	Title              string          `gorm:"not null" json:"title"`
	AcceptanceCriteria string          `gorm:"not null" json:"acceptance_criteria"`
	Status             MilestoneStatus `gorm:"not null;default:PENDING;index" json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
