package job

import (
	"time"

	"github.com/google/uuid"
	"github.com/volition-os/volition-api/internal/blueprint"
	"gorm.io/datatypes"
)

type JobCluster struct {
	ID          uuid.UUID           `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MilestoneID uuid.UUID           `gorm:"type:uuid;not null;index" json:"milestone_id"`
	Milestone   blueprint.Milestone `gorm:"foreignKey:MilestoneID;constraint:OnDelete:CASCADE" json:"-"`
	Title       string              `gorm:"not null" json:"title"`
	Jobs        []Job               `gorm:"foreignKey:JobClusterID;constraint:OnDelete:CASCADE" json:"jobs,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// WorkSession is one active interval of a job. An open session has a nil
// EndedAt; at most one session in a job's list may be open.
type WorkSession struct {
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

type FailureRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Reason    string    `json:"reason"`
}

type Job struct {
	ID              uuid.UUID                          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	JobClusterID    uuid.UUID                          `gorm:"type:uuid;not null;index" json:"job_cluster_id"`
	JobCluster      *JobCluster                        `gorm:"foreignKey:JobClusterID" json:"-"`
	Title           string                             `gorm:"not null" json:"title"`
	Type            JobType                            `gorm:"not null" json:"type"`
	EstMinutes      int                                `gorm:"not null" json:"est_minutes"`
	Status          JobStatus                          `gorm:"not null;default:PENDING;index" json:"status"`
	FailureCount    int                                `gorm:"not null;default:0" json:"failure_count"`
	FailureHistory  datatypes.JSONSlice[FailureRecord] `json:"failure_history"`
	WorkSessions    datatypes.JSONSlice[WorkSession]   `json:"work_sessions"`
	Deadline        *time.Time                         `json:"deadline,omitempty"`
	CalendarEventID *string                            `json:"-"`
	CreatedAt       time.Time                          `json:"created_at"`
	UpdatedAt       time.Time                          `json:"updated_at"`
}
