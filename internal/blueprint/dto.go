package blueprint

import (
	"time"

	"github.com/google/uuid"
)

type MilestoneView struct {
	ID                 uuid.UUID       `json:"id"`
	Title              string          `json:"title"`
	AcceptanceCriteria string          `json:"acceptance_criteria"`
	Status             MilestoneStatus `json:"status"`
	Locked             bool            `json:"locked"`
	CreatedAt          time.Time       `json:"created_at"`
}

type PhaseView struct {
	ID         uuid.UUID       `json:"id"`
	Index      int             `json:"index"`
	Title      string          `json:"title"`
	Status     PhaseStatus     `json:"status"`
	Locked     bool            `json:"locked"`
	Milestones []MilestoneView `json:"milestones"`
}

type TreeView struct {
	GoalID uuid.UUID    `json:"goal_id"`
	Phases []*PhaseView `json:"phases"`
}
