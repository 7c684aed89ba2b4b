package blueprint

import (
	"github.com/volition-os/volition-api/internal/goal"
	"github.com/volition-os/volition-api/internal/planner"
	"gorm.io/gorm"
)

type BlueprintContainer struct {
	Handler *Handler
	Service BlueprintService
	Repo    BlueprintRepository
}

func NewBlueprintContainer(db *gorm.DB, goalService goal.GoalService, goalRepo goal.GoalRepository, plannerService planner.Service, jobStats JobStats) *BlueprintContainer {
	repo := NewRepository(db)
	service := NewService(repo, goalService, goalRepo, plannerService, jobStats)
	handler := NewHandler(service)

	return &BlueprintContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
