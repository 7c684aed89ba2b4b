package blueprint

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volition-os/volition-api/internal/goal"
)

type fakeRepo struct {
	phases       []*Phase
	failActivate bool
}

func (r *fakeRepo) CreateTree(phases []*Phase) error {
	r.phases = append(r.phases, phases...)
	return nil
}

func (r *fakeRepo) CountPhasesByGoalID(goalID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.phases {
		if p.GoalID == goalID {
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) FindPhasesByGoalID(goalID uuid.UUID) ([]*Phase, error) {
	var out []*Phase
	for _, p := range r.phases {
		if p.GoalID == goalID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindMilestoneWithPhase(id uuid.UUID) (*Milestone, error) {
	for _, p := range r.phases {
		for i := range p.Milestones {
			if p.Milestones[i].ID == id {
				m := p.Milestones[i]
				m.Phase = p
				return &m, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeRepo) UpdateMilestoneStatus(id uuid.UUID, status MilestoneStatus) error {
	for _, p := range r.phases {
		for i := range p.Milestones {
			if p.Milestones[i].ID == id {
				p.Milestones[i].Status = status
				return nil
			}
		}
	}
	return errors.New("milestone not found")
}

func (r *fakeRepo) UpdatePhaseStatus(id uuid.UUID, status PhaseStatus) error {
	for _, p := range r.phases {
		if p.ID == id {
			p.Status = status
			return nil
		}
	}
	return errors.New("phase not found")
}

func (r *fakeRepo) ResetSiblingsAndActivate(phaseID, milestoneID uuid.UUID) error {
	if r.failActivate {
		return errors.New("simulated activation failure")
	}
	for _, p := range r.phases {
		if p.ID != phaseID {
			continue
		}
		for i := range p.Milestones {
			p.Milestones[i].Status = MilestonePending
		}
		for i := range p.Milestones {
			if p.Milestones[i].ID == milestoneID {
				p.Milestones[i].Status = MilestoneActive
			}
		}
		if p.Status == PhasePending {
			p.Status = PhaseActive
		}
		return nil
	}
	return errors.New("phase not found")
}

type fakeGoalService struct {
	goals map[string]*goal.Goal
}

func (s *fakeGoalService) Create(ctx context.Context, title string) (*goal.Goal, error) {
	return nil, errors.New("not implemented")
}
func (s *fakeGoalService) FindAllByUser(ctx context.Context) ([]*goal.Goal, error) {
	return nil, errors.New("not implemented")
}
func (s *fakeGoalService) FindByID(ctx context.Context, id string) (*goal.Goal, error) {
	g, ok := s.goals[id]
	if !ok {
		return nil, goal.ErrGoalNotFound
	}
	return g, nil
}
func (s *fakeGoalService) BeginScoping(ctx context.Context, id string) (*goal.Goal, error) {
	return nil, errors.New("not implemented")
}
func (s *fakeGoalService) SubmitScope(ctx context.Context, id string, dto goal.SubmitScopeDTO) (*goal.Goal, error) {
	return nil, errors.New("not implemented")
}
func (s *fakeGoalService) Archive(ctx context.Context, id string) (*goal.Goal, error) {
	return nil, errors.New("not implemented")
}
func (s *fakeGoalService) DeleteByID(ctx context.Context, id string) error {
	return errors.New("not implemented")
}

type fakeGoalRepo struct {
	statusFlips map[uuid.UUID]goal.GoalStatus
	goals       map[uuid.UUID]*goal.Goal
}

func (r *fakeGoalRepo) Create(g *goal.Goal) error                       { return nil }
func (r *fakeGoalRepo) FindOwned(id, userID uuid.UUID) (*goal.Goal, error) { return r.goals[id], nil }
func (r *fakeGoalRepo) FindAllByUserID(userID uuid.UUID) ([]*goal.Goal, error) {
	return nil, nil
}
func (r *fakeGoalRepo) Update(g *goal.Goal) error { return nil }
func (r *fakeGoalRepo) UpdateStatusIf(id uuid.UUID, from, to goal.GoalStatus) (bool, error) {
	g, ok := r.goals[id]
	if !ok || g.Status != from {
		return false, nil
	}
	g.Status = to
	if r.statusFlips == nil {
		r.statusFlips = map[uuid.UUID]goal.GoalStatus{}
	}
	r.statusFlips[id] = to
	return true, nil
}
func (r *fakeGoalRepo) Delete(id uuid.UUID) error { return nil }

type fakeJobStats struct {
	clusters, jobs, completed map[uuid.UUID]int64
}

func (s *fakeJobStats) MilestoneJobStats(milestoneID uuid.UUID) (int64, int64, int64, error) {
	return s.clusters[milestoneID], s.jobs[milestoneID], s.completed[milestoneID], nil
}

type fixture struct {
	svc      *blueprintService
	repo     *fakeRepo
	goalRepo *fakeGoalRepo
	stats    *fakeJobStats
	g        *goal.Goal
	p0, p1   *Phase
}

// two phases: p0 holds m0, m1; p1 holds m2
func newFixture(t *testing.T) *fixture {
	t.Helper()

	g := &goal.Goal{ID: uuid.New(), Status: goal.StatusActive}
	p0 := &Phase{ID: uuid.New(), GoalID: g.ID, Index: 0, Status: PhaseActive, Milestones: []Milestone{
		{ID: uuid.New(), Status: MilestoneActive},
		{ID: uuid.New(), Status: MilestonePending},
	}}
	p1 := &Phase{ID: uuid.New(), GoalID: g.ID, Index: 1, Status: PhasePending, Milestones: []Milestone{
		{ID: uuid.New(), Status: MilestonePending},
	}}
	for i := range p0.Milestones {
		p0.Milestones[i].PhaseID = p0.ID
	}
	p1.Milestones[0].PhaseID = p1.ID

	repo := &fakeRepo{phases: []*Phase{p0, p1}}
	goalRepo := &fakeGoalRepo{goals: map[uuid.UUID]*goal.Goal{g.ID: g}}
	stats := &fakeJobStats{
		clusters:  map[uuid.UUID]int64{},
		jobs:      map[uuid.UUID]int64{},
		completed: map[uuid.UUID]int64{},
	}

	svc := NewService(
		repo,
		&fakeGoalService{goals: map[string]*goal.Goal{g.ID.String(): g}},
		goalRepo,
		nil,
		stats,
	).(*blueprintService)

	return &fixture{svc: svc, repo: repo, goalRepo: goalRepo, stats: stats, g: g, p0: p0, p1: p1}
}

func TestSetActiveMilestone(t *testing.T) {
	t.Run("ResetsSiblingsThenActivates", func(t *testing.T) {
		f := newFixture(t)
		target := f.p0.Milestones[1].ID

		err := f.svc.SetActiveMilestone(context.Background(), f.g.ID.String(), target.String())
		require.NoError(t, err)

		var activeCount int
		for _, m := range f.p0.Milestones {
			if m.Status == MilestoneActive {
				activeCount++
				assert.Equal(t, target, m.ID)
			} else {
				assert.Equal(t, MilestonePending, m.Status)
			}
		}
		assert.Equal(t, 1, activeCount)
	})

	t.Run("ForeignMilestoneIsNotFound", func(t *testing.T) {
		f := newFixture(t)
		err := f.svc.SetActiveMilestone(context.Background(), f.g.ID.String(), uuid.NewString())
		assert.ErrorIs(t, err, ErrMilestoneNotFound)
	})
}

func TestCheckMilestoneCompletion(t *testing.T) {
	f := newFixture(t)
	m := f.p0.Milestones[0].ID

	t.Run("NoJobsNeverComplete", func(t *testing.T) {
		done, err := f.svc.CheckMilestoneCompletion(m)
		require.NoError(t, err)
		assert.False(t, done)
	})

	t.Run("PartialJobs", func(t *testing.T) {
		f.stats.clusters[m], f.stats.jobs[m], f.stats.completed[m] = 2, 5, 3
		done, err := f.svc.CheckMilestoneCompletion(m)
		require.NoError(t, err)
		assert.False(t, done)
	})

	t.Run("AllJobsDone", func(t *testing.T) {
		f.stats.completed[m] = 5
		done, err := f.svc.CheckMilestoneCompletion(m)
		require.NoError(t, err)
		assert.True(t, done)
	})
}

func TestSyncMilestoneStatusIfNeeded(t *testing.T) {
	ctx := context.Background()

	t.Run("MovesActiveToPendingVerification", func(t *testing.T) {
		f := newFixture(t)
		m := f.p0.Milestones[0]
		f.stats.clusters[m.ID], f.stats.jobs[m.ID], f.stats.completed[m.ID] = 1, 2, 2

		got, err := f.svc.SyncMilestoneStatusIfNeeded(ctx, f.g.ID.String(), m.ID.String())
		require.NoError(t, err)
		assert.Equal(t, MilestonePendingVerification, got.Status)
		assert.Equal(t, MilestonePendingVerification, f.p0.Milestones[0].Status)
	})

	t.Run("IdempotentOncePending", func(t *testing.T) {
		f := newFixture(t)
		f.p0.Milestones[0].Status = MilestonePendingVerification

		got, err := f.svc.SyncMilestoneStatusIfNeeded(ctx, f.g.ID.String(), f.p0.Milestones[0].ID.String())
		require.NoError(t, err)
		assert.Equal(t, MilestonePendingVerification, got.Status)
	})

	t.Run("IncompleteStaysActive", func(t *testing.T) {
		f := newFixture(t)
		m := f.p0.Milestones[0]
		f.stats.clusters[m.ID], f.stats.jobs[m.ID], f.stats.completed[m.ID] = 1, 2, 1

		got, err := f.svc.SyncMilestoneStatusIfNeeded(ctx, f.g.ID.String(), m.ID.String())
		require.NoError(t, err)
		assert.Equal(t, MilestoneActive, got.Status)
	})
}

func TestConfirmMilestoneVerification(t *testing.T) {
	ctx := context.Background()

	t.Run("WrongStatusFails", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ConfirmMilestoneVerification(ctx, f.g.ID.String(), f.p0.Milestones[0].ID.String())
		assert.ErrorIs(t, err, ErrStatusConflict)
	})

	t.Run("CompletesAndActivatesNext", func(t *testing.T) {
		f := newFixture(t)
		f.p0.Milestones[0].Status = MilestonePendingVerification

		m, err := f.svc.ConfirmMilestoneVerification(ctx, f.g.ID.String(), f.p0.Milestones[0].ID.String())
		require.NoError(t, err)
		assert.Equal(t, MilestoneCompleted, m.Status)
		assert.Equal(t, MilestoneCompleted, f.p0.Milestones[0].Status)
		assert.Equal(t, MilestoneActive, f.p0.Milestones[1].Status)
		assert.NotEqual(t, goal.StatusCompleted, f.g.Status)
	})

	t.Run("NextActivationCrossesPhases", func(t *testing.T) {
		f := newFixture(t)
		f.p0.Milestones[0].Status = MilestoneCompleted
		f.p0.Milestones[1].Status = MilestonePendingVerification

		_, err := f.svc.ConfirmMilestoneVerification(ctx, f.g.ID.String(), f.p0.Milestones[1].ID.String())
		require.NoError(t, err)
		assert.Equal(t, MilestoneActive, f.p1.Milestones[0].Status)
		assert.Equal(t, PhaseCompleted, f.p0.Status)
	})

	t.Run("LastMilestoneCompletesGoal", func(t *testing.T) {
		f := newFixture(t)
		f.p0.Milestones[0].Status = MilestoneCompleted
		f.p0.Milestones[1].Status = MilestoneCompleted
		f.p1.Milestones[0].Status = MilestonePendingVerification

		_, err := f.svc.ConfirmMilestoneVerification(ctx, f.g.ID.String(), f.p1.Milestones[0].ID.String())
		require.NoError(t, err)
		assert.Equal(t, goal.StatusCompleted, f.g.Status)
		assert.Equal(t, PhaseCompleted, f.p1.Status)
	})

	t.Run("CascadeFailureDoesNotRollBack", func(t *testing.T) {
		f := newFixture(t)
		f.p0.Milestones[0].Status = MilestonePendingVerification
		f.repo.failActivate = true

		m, err := f.svc.ConfirmMilestoneVerification(ctx, f.g.ID.String(), f.p0.Milestones[0].ID.String())
		require.NoError(t, err)
		assert.Equal(t, MilestoneCompleted, m.Status)
		assert.Equal(t, MilestoneCompleted, f.p0.Milestones[0].Status)
		// Next milestone stayed pending because the hook failed, and that
		// is fine: the user-visible completion already happened.
		assert.Equal(t, MilestonePending, f.p0.Milestones[1].Status)
	})
}
