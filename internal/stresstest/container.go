package stresstest

import (
	"github.com/volition-os/volition-api/internal/goal"
	"github.com/volition-os/volition-api/internal/planner"
	"github.com/volition-os/volition-api/internal/trial"
)

type StressTestContainer struct {
	Handler *Handler
	Service StressTestService
}

func NewStressTestContainer(goalService goal.GoalService, trialService trial.TrialService, plannerService planner.Service) *StressTestContainer {
	service := NewService(goalService, trialService, plannerService)
	handler := NewHandler(service)

	return &StressTestContainer{
		Handler: handler,
		Service: service,
	}
}
