package trial

import (
	"github.com/volition-os/volition-api/internal/goal"
	"github.com/volition-os/volition-api/internal/planner"
	"gorm.io/gorm"
)

type TrialContainer struct {
	Handler *Handler
	Service TrialService
}

func NewTrialContainer(db *gorm.DB, goalService goal.GoalService, goalRepo goal.GoalRepository, plannerService planner.Service) *TrialContainer {
	repo := NewRepository(db)
	service := NewService(repo, goalService, goalRepo, plannerService)
	handler := NewHandler(service)

	return &TrialContainer{
		Handler: handler,
		Service: service,
	}
}
