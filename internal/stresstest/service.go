package stresstest

import (
	"context"

	"github.com/volition-os/volition-api/internal/config"
	"github.com/volition-os/volition-api/internal/goal"
	"github.com/volition-os/volition-api/internal/planner"
	"github.com/volition-os/volition-api/internal/trial"
)

type StressTestService interface {
	Classify(ctx context.Context, title string) (planner.Classification, error)
	GenerateQuestions(ctx context.Context, title string) ([]planner.StressQuestion, error)
	// Submit scores the answers; on PROCEED it creates the goal in
	// quarantine and spins up its trial.
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error)
}

type stressTestService struct {
	goalService  goal.GoalService
	trialService trial.TrialService
	planner      planner.Service
}

func NewService(goalService goal.GoalService, trialService trial.TrialService, plannerService planner.Service) StressTestService {
	return &stressTestService{
		goalService:  goalService,
		trialService: trialService,
		planner:      plannerService,
	}
}

func (s *stressTestService) Classify(ctx context.Context, title string) (planner.Classification, error) {
	if title == "" {
		return "", goal.ErrEmptyTitle
	}
	return s.planner.ClassifyGoal(ctx, title)
}

func (s *stressTestService) GenerateQuestions(ctx context.Context, title string) ([]planner.StressQuestion, error) {
	if title == "" {
		return nil, goal.ErrEmptyTitle
	}
	return s.planner.GenerateStressQuestions(ctx, title)
}

func (s *stressTestService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	log := config.WithContext(ctx)

	result, err := Evaluate(req.Answers)
	if err != nil {
		return nil, err
	}

	if result.Decision == DecisionReject {
		log.WithField("score", result.Score).Info("Stress test rejected")
		return &SubmitResponse{Result: result}, nil
	}

	if req.Title == "" {
		return nil, goal.ErrEmptyTitle
	}

	g, err := s.goalService.Create(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	tasks, err := s.trialService.CreateForGoal(ctx, g)
	if err != nil {
		log.WithError(err).Error("Trial creation failed after goal creation")
		return nil, err
	}

	log.WithField("goal_id", g.ID).Info("Stress test passed, goal and trial created")
	return &SubmitResponse{
		Result:     result,
		Goal:       g,
		TrialTasks: tasks,
	}, nil
}
