package job

import (
	"time"

	"github.com/google/uuid"
	util "github.com/volition-os/volition-api/internal/utils"
)

type FailJobDTO struct {
	Reason string `json:"reason"`
}

type MutateConfirmDTO struct {
	Title      string `json:"title"`
	Type       string `json:"type"`
	EstMinutes int    `json:"est_minutes"`
}

// SetDeadlineDTO takes the client's zone-less local timestamp; a null
// deadline clears the job's deadline and its calendar event.
type SetDeadlineDTO struct {
	Deadline *util.DateTime `json:"deadline"`
}

// JobView is the job plus its derived session durations, computed at read
// time so stored state never carries clock-dependent values.
type JobView struct {
	*Job
	TotalSeconds   int64 `json:"total_seconds"`
	CurrentSeconds int64 `json:"current_seconds"`
}

func newJobView(j *Job, now time.Time) *JobView {
	return &JobView{
		Job:            j,
		TotalSeconds:   TotalDuration(j.WorkSessions, now),
		CurrentSeconds: CurrentDuration(j.WorkSessions, now),
	}
}

// ExplorerView is the filter-free cluster listing, jobs grouped by status.
type ExplorerView struct {
	MilestoneID uuid.UUID      `json:"milestone_id"`
	Clusters    []*ClusterView `json:"clusters"`
}

type ClusterView struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Pending   []*JobView `json:"pending"`
	Active    []*JobView `json:"active"`
	Completed []*JobView `json:"completed"`
	Failed    []*JobView `json:"failed"`
}

func buildExplorerView(milestoneID uuid.UUID, clusters []*JobCluster) *ExplorerView {
	now := time.Now().UTC()
	view := &ExplorerView{MilestoneID: milestoneID, Clusters: []*ClusterView{}}
	for _, c := range clusters {
		cv := &ClusterView{ID: c.ID, Title: c.Title}
		for i := range c.Jobs {
			jv := newJobView(&c.Jobs[i], now)
			switch c.Jobs[i].Status {
			case StatusPending:
				cv.Pending = append(cv.Pending, jv)
			case StatusActive:
				cv.Active = append(cv.Active, jv)
			case StatusCompleted:
				cv.Completed = append(cv.Completed, jv)
			case StatusFailed:
				cv.Failed = append(cv.Failed, jv)
			}
		}
		view.Clusters = append(view.Clusters, cv)
	}
	return view
}
