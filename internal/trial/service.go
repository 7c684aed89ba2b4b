package trial

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/volition-os/volition-api/internal/config"
	"github.com/volition-os/volition-api/internal/goal"
	"github.com/volition-os/volition-api/internal/planner"
)

var (
	ErrTrialTaskNotFound = errors.New("trial task not found")
	ErrNotActiveTask     = errors.New("task is not the active trial task")
	ErrNoActiveTask      = errors.New("no active trial task found despite tasks existing")
	ErrTrialExists       = errors.New("trial tasks already exist for goal")
)

type PlanView struct {
	Active    *TrialTask   `json:"active"`
	Future    []*TrialTask `json:"future"`
	Completed []*TrialTask `json:"completed"`
	Graduated bool         `json:"graduated"`
}

type TrialService interface {
	// CreateForGoal generates and inserts the trial batch for a goal that
	// just passed the stress test. Refuses a second batch.
	CreateForGoal(ctx context.Context, g *goal.Goal) ([]*TrialTask, error)
	GetPlan(ctx context.Context, goalID string) (*PlanView, error)
	// MarkDone completes the active task. Completing the last task
	// graduates the goal out of quarantine, exactly once.
	MarkDone(ctx context.Context, goalID, taskID string) (*PlanView, error)
	// GiveUp abandons the trial and archives the goal.
	GiveUp(ctx context.Context, goalID string) error
}

type trialService struct {
	repo        TrialRepository
	goalService goal.GoalService
	goalRepo    goal.GoalRepository
	planner     planner.Service
}

func NewService(repo TrialRepository, goalService goal.GoalService, goalRepo goal.GoalRepository, plannerService planner.Service) TrialService {
	return &trialService{
		repo:        repo,
		goalService: goalService,
		goalRepo:    goalRepo,
		planner:     plannerService,
	}
}

func (s *trialService) CreateForGoal(ctx context.Context, g *goal.Goal) ([]*TrialTask, error) {
	log := config.WithContext(ctx)

	existing, err := s.repo.CountByGoalID(g.ID)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrTrialExists
	}

	drafts, err := s.planner.GenerateTrialPlan(ctx, planner.GoalContext{Title: g.Title})
	if err != nil {
		log.WithError(err).Error("Trial plan generation failed")
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	tasks := make([]*TrialTask, 0, len(drafts))
	for _, d := range drafts {
		scheduled := today.AddDate(0, 0, d.DayNumber-1)
		tasks = append(tasks, &TrialTask{
			ID:                 uuid.New(),
			GoalID:             g.ID,
			DayNumber:          d.DayNumber,
			Title:              d.Title,
			EstMinutes:         d.EstMinutes,
			AcceptanceCriteria: d.AcceptanceCriteria,
			Status:             StatusPending,
			ScheduledDate:      &scheduled,
		})
	}

	if err := s.repo.CreateBatch(tasks); err != nil {
		log.WithError(err).Error("Failed to insert trial tasks")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"goal_id": g.ID,
		"tasks":   len(tasks),
	}).Info("Trial created")
	return tasks, nil
}

func (s *trialService) GetPlan(ctx context.Context, goalID string) (*PlanView, error) {
	g, err := s.goalService.FindByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.repo.FindByGoalID(g.ID)
	if err != nil {
		return nil, err
	}

	active, future, completed := SplitPlan(tasks)
	return &PlanView{
		Active:    active,
		Future:    future,
		Completed: completed,
		Graduated: g.Status != goal.StatusQuarantine,
	}, nil
}

func (s *trialService) MarkDone(ctx context.Context, goalID, taskID string) (*PlanView, error) {
	log := config.WithContext(ctx)

	g, err := s.goalService.FindByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.repo.FindByGoalID(g.ID)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, ErrTrialTaskNotFound
	}

	active := ActiveTask(tasks)
	if active == nil {
		// Should be unreachable while the goal is still in trial; surface
		// loudly instead of guessing.
		log.WithField("goal_id", g.ID).Error("Trial tasks exist but none is active")
		return nil, ErrNoActiveTask
	}
	if active.ID.String() != taskID {
		return nil, ErrNotActiveTask
	}

	now := time.Now().UTC()
	active.Status = StatusCompleted
	active.CompletedAt = &now
	if err := s.repo.Update(active); err != nil {
		log.WithError(err).Error("Failed to complete trial task")
		return nil, err
	}

	graduated := false
	if AllCompleted(tasks) {
		// Conditional update keeps graduation a one-shot transition even if
		// this call is retried.
		graduated, err = s.goalRepo.UpdateStatusIf(g.ID, goal.StatusQuarantine, goal.StatusPendingScope)
		if err != nil {
			log.WithError(err).Error("Failed to graduate goal out of quarantine")
			return nil, err
		}
		if graduated {
			log.WithField("goal_id", g.ID).Info("Trial complete, goal graduated")
		}
	}

	active2, future, completed := SplitPlan(tasks)
	return &PlanView{
		Active:    active2,
		Future:    future,
		Completed: completed,
		Graduated: graduated || g.Status != goal.StatusQuarantine,
	}, nil
}

func (s *trialService) GiveUp(ctx context.Context, goalID string) error {
	log := config.WithContext(ctx)

	if _, err := s.goalService.Archive(ctx, goalID); err != nil {
		return err
	}

	log.WithField("goal_id", goalID).Info("Trial abandoned, goal archived")
	return nil
}
