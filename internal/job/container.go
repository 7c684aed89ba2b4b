package job

import (
	"github.com/volition-os/volition-api/internal/blueprint"
	"github.com/volition-os/volition-api/internal/calendar"
	"github.com/volition-os/volition-api/internal/goal"
	"github.com/volition-os/volition-api/internal/planner"
	"gorm.io/gorm"
)

type JobContainer struct {
	Handler *Handler
	Service JobService
	Repo    JobRepository
}

// NewRepositoryOnly exists so the top container can hand the repository to
// the blueprint container (as its JobStats) before the full job wiring, which
// needs the blueprint service back.
func NewRepositoryOnly(db *gorm.DB) JobRepository {
	return NewRepository(db)
}

func NewJobContainer(repo JobRepository, blueprintRepo blueprint.BlueprintRepository, blueprintService blueprint.BlueprintService, goalService goal.GoalService, plannerService planner.Service, calendarManager *calendar.Manager) *JobContainer {
	service := NewService(repo, blueprintRepo, blueprintService, goalService, plannerService, calendarManager)
	handler := NewHandler(service)

	return &JobContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
