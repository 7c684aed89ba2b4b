package blueprint

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/volition-os/volition-api/internal/config"
	"github.com/volition-os/volition-api/internal/goal"
	"github.com/volition-os/volition-api/internal/planner"
)

var (
	ErrMilestoneNotFound = errors.New("milestone not found")
	ErrBlueprintExists   = errors.New("blueprint already exists for goal")
	ErrNoBlueprint       = errors.New("goal has no blueprint")
	ErrStatusConflict    = errors.New("blueprint status conflict")
)

func statusErr(expected, actual string) error {
	return fmt.Errorf("%w: expected %s, got %s", ErrStatusConflict, expected, actual)
}

// JobStats is implemented by the job repository and injected through the top
// container; it keeps the completion check here without importing the job
// package.
type JobStats interface {
	MilestoneJobStats(milestoneID uuid.UUID) (clusters, jobs, completed int64, err error)
}

type BlueprintService interface {
	// Generate builds the phase/milestone tree for a goal in PLANNING and
	// moves the goal to ACTIVE with exactly the first milestone of the
	// first phase ACTIVE.
	Generate(ctx context.Context, goalID string) (*TreeView, error)
	GetTree(ctx context.Context, goalID string) (*TreeView, error)
	// SetActiveMilestone resets every milestone in the target's phase to
	// PENDING, then activates the target.
	SetActiveMilestone(ctx context.Context, goalID, milestoneID string) error
	// ActiveMilestone returns the goal's currently ACTIVE milestone, or nil.
	ActiveMilestone(ctx context.Context, goalID string) (*Milestone, error)

	CheckMilestoneCompletion(milestoneID uuid.UUID) (bool, error)
	SyncMilestoneStatusIfNeeded(ctx context.Context, goalID, milestoneID string) (*Milestone, error)
	ConfirmMilestoneVerification(ctx context.Context, goalID, milestoneID string) (*Milestone, error)
}

type blueprintService struct {
	repo        BlueprintRepository
	goalService goal.GoalService
	goalRepo    goal.GoalRepository
	planner     planner.Service
	jobStats    JobStats
}

func NewService(repo BlueprintRepository, goalService goal.GoalService, goalRepo goal.GoalRepository, plannerService planner.Service, jobStats JobStats) BlueprintService {
	return &blueprintService{
		repo:        repo,
		goalService: goalService,
		goalRepo:    goalRepo,
		planner:     plannerService,
		jobStats:    jobStats,
	}
}

func goalContext(g *goal.Goal) planner.GoalContext {
	gc := planner.GoalContext{Title: g.Title}
	if g.Scope != nil {
		gc.DefinitionOfDone = g.Scope.DefinitionOfDone
		gc.TechStack = g.Scope.TechStack
		gc.HoursPerWeek = g.Scope.HoursPerWeek
		gc.BackgroundLevel = string(g.Scope.BackgroundLevel)
	}
	if g.Complexity != nil {
		gc.Size = string(g.Complexity.Size)
		gc.EstimatedTotalHours = g.Complexity.EstimatedTotalHours
	}
	return gc
}

func (s *blueprintService) Generate(ctx context.Context, goalID string) (*TreeView, error) {
	log := config.WithContext(ctx)

	g, err := s.goalService.FindByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if g.Status != goal.StatusPlanning {
		return nil, statusErr(string(goal.StatusPlanning), string(g.Status))
	}

	// Pre-check-then-act guard against double generation; the unique
	// (goal_id, index) constraint backstops races.
	count, err := s.repo.CountPhasesByGoalID(g.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrBlueprintExists
	}

	drafts, err := s.planner.GenerateBlueprint(ctx, goalContext(g))
	if err != nil {
		log.WithError(err).Error("Blueprint generation failed")
		return nil, err
	}
	// The planner already validated the fan-out cap; re-check here so a
	// future producer cannot sneak past it.
	if err := planner.ValidateBlueprint(drafts); err != nil {
		return nil, err
	}

	phases := make([]*Phase, 0, len(drafts))
	for i, pd := range drafts {
		phase := &Phase{
			ID:     uuid.New(),
			GoalID: g.ID,
			Index:  i,
			Title:  pd.Title,
			Status: PhasePending,
		}
		for _, md := range pd.Milestones {
			phase.Milestones = append(phase.Milestones, Milestone{
				ID:                 uuid.New(),
				PhaseID:            phase.ID,
				Title:              md.Title,
				AcceptanceCriteria: md.AcceptanceCriteria,
				Status:             MilestonePending,
			})
		}
		phases = append(phases, phase)
	}

	if err := s.repo.CreateTree(phases); err != nil {
		log.WithError(err).Error("Failed to insert blueprint")
		return nil, err
	}

	first := phases[0]
	if err := s.repo.ResetSiblingsAndActivate(first.ID, first.Milestones[0].ID); err != nil {
		log.WithError(err).Error("Failed to activate first milestone")
		return nil, err
	}

	g.Status = goal.StatusActive
	if err := s.goalRepo.Update(g); err != nil {
		log.WithError(err).Error("Failed to activate goal after blueprint")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"goal_id": g.ID,
		"phases":  len(phases),
	}).Info("Blueprint created, goal active")
	return s.GetTree(ctx, goalID)
}

func (s *blueprintService) GetTree(ctx context.Context, goalID string) (*TreeView, error) {
	g, err := s.goalService.FindByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	phases, err := s.repo.FindPhasesByGoalID(g.ID)
	if err != nil {
		return nil, err
	}

	view := &TreeView{GoalID: g.ID}
	for i, p := range phases {
		pv := &PhaseView{
			ID:     p.ID,
			Index:  p.Index,
			Title:  p.Title,
			Status: p.Status,
			Locked: PhaseLocked(phases, i),
		}
		for j, m := range p.Milestones {
			pv.Milestones = append(pv.Milestones, MilestoneView{
				ID:                 m.ID,
				Title:              m.Title,
				AcceptanceCriteria: m.AcceptanceCriteria,
				Status:             m.Status,
				Locked:             MilestoneLocked(p.Milestones, j),
				CreatedAt:          m.CreatedAt,
			})
		}
		view.Phases = append(view.Phases, pv)
	}
	return view, nil
}

// resolveOwnedMilestone walks the ownership chain once: goal by id+caller,
// then the milestone's phase must belong to that goal. Anything off-chain is
// not-found, never forbidden.
func (s *blueprintService) resolveOwnedMilestone(ctx context.Context, goalID, milestoneID string) (*goal.Goal, *Milestone, error) {
	log := config.WithContext(ctx)

	g, err := s.goalService.FindByID(ctx, goalID)
	if err != nil {
		return nil, nil, err
	}

	id, err := uuid.Parse(milestoneID)
	if err != nil {
		return nil, nil, goal.ErrInvalidID
	}

	m, err := s.repo.FindMilestoneWithPhase(id)
	if err != nil {
		return nil, nil, err
	}
	if m == nil || m.Phase == nil || m.Phase.GoalID != g.ID {
		log.WithFields(logrus.Fields{
			"goal_id":      goalID,
			"milestone_id": milestoneID,
		}).Warn("Milestone not in caller's ownership chain")
		return nil, nil, ErrMilestoneNotFound
	}
	return g, m, nil
}

func (s *blueprintService) SetActiveMilestone(ctx context.Context, goalID, milestoneID string) error {
	log := config.WithContext(ctx)

	_, m, err := s.resolveOwnedMilestone(ctx, goalID, milestoneID)
	if err != nil {
		return err
	}

	if err := s.repo.ResetSiblingsAndActivate(m.PhaseID, m.ID); err != nil {
		log.WithError(err).Error("Failed to activate milestone")
		return err
	}

	log.WithField("milestone_id", m.ID).Info("Milestone activated")
	return nil
}

func (s *blueprintService) ActiveMilestone(ctx context.Context, goalID string) (*Milestone, error) {
	g, err := s.goalService.FindByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	phases, err := s.repo.FindPhasesByGoalID(g.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range phases {
		for i := range p.Milestones {
			if p.Milestones[i].Status == MilestoneActive {
				m := p.Milestones[i]
				m.Phase = p
				return &m, nil
			}
		}
	}
	return nil, nil
}
