package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/volition-os/volition-api/internal/auth"
	"github.com/volition-os/volition-api/internal/blueprint"
	"github.com/volition-os/volition-api/internal/calendar"
	"github.com/volition-os/volition-api/internal/config"
	"github.com/volition-os/volition-api/internal/goal"
	"github.com/volition-os/volition-api/internal/planner"
)

var (
	ErrJobNotFound    = errors.New("job not found")
	ErrClustersExist  = errors.New("job clusters already exist for milestone")
	ErrEmptyReason    = errors.New("failure reason must not be empty")
	ErrInvalidEnergy  = errors.New("invalid energy level")
	ErrStatusConflict = errors.New("job status conflict")
)

func statusErr(expected, actual string) error {
	return fmt.Errorf("%w: expected %s, got %s", ErrStatusConflict, expected, actual)
}

type JobService interface {
	// GenerateForMilestone atomizes an ACTIVE milestone into job clusters.
	// Refused when clusters already exist; the caller must delete first.
	GenerateForMilestone(ctx context.Context, milestoneID string) ([]*JobCluster, error)
	// DeleteClusters wipes the milestone's clusters and jobs. The only way
	// to make room for regeneration.
	DeleteClusters(ctx context.Context, milestoneID string) error
	// Explorer is the unfiltered view: every cluster of the milestone with
	// jobs grouped by status.
	Explorer(ctx context.Context, milestoneID string) (*ExplorerView, error)
	// Recommend returns up to three PENDING/ACTIVE jobs of the goal's active
	// milestone matching the energy level.
	Recommend(ctx context.Context, goalID string, energy EnergyLevel) ([]*JobView, error)

	Start(ctx context.Context, jobID string) (*JobView, error)
	Pause(ctx context.Context, jobID string) (*JobView, error)
	Resume(ctx context.Context, jobID string) (*JobView, error)
	Complete(ctx context.Context, jobID string) (*JobView, error)
	SetDeadline(ctx context.Context, jobID string, deadline *time.Time) (*JobView, error)

	MarkFailed(ctx context.Context, jobID, reason string) (*JobView, error)
	Retry(ctx context.Context, jobID, reason string) (*JobView, error)
	Negotiate(ctx context.Context, jobID, reason string) (*planner.NegotiationResult, error)
	MutatePreview(ctx context.Context, jobID, reason string) (*planner.JobDraft, error)
	MutateConfirm(ctx context.Context, jobID string, draft planner.JobDraft) (*JobView, error)
	GiveUp(ctx context.Context, jobID string) error
}

type jobService struct {
	repo             JobRepository
	blueprintRepo    blueprint.BlueprintRepository
	blueprintService blueprint.BlueprintService
	goalService      goal.GoalService
	planner          planner.Service
	calendar         *calendar.Manager
}

func NewService(repo JobRepository, blueprintRepo blueprint.BlueprintRepository, blueprintService blueprint.BlueprintService, goalService goal.GoalService, plannerService planner.Service, calendarManager *calendar.Manager) JobService {
	return &jobService{
		repo:             repo,
		blueprintRepo:    blueprintRepo,
		blueprintService: blueprintService,
		goalService:      goalService,
		planner:          plannerService,
		calendar:         calendarManager,
	}
}

// ownedJob bundles the resolved ownership chain of one job so every mutation
// walks it exactly once per request.
type ownedJob struct {
	job       *Job
	milestone *blueprint.Milestone
	goal      *goal.Goal
}

func (s *jobService) resolveOwnedJob(ctx context.Context, jobID string) (*ownedJob, error) {
	log := config.WithContext(ctx)

	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, goal.ErrUnauthorized
	}
	userID := uuid.MustParse(claims.UserID)

	id, err := uuid.Parse(jobID)
	if err != nil {
		return nil, goal.ErrInvalidID
	}

	j, err := s.repo.FindOwnedJob(id, userID)
	if err != nil {
		return nil, err
	}
	if j == nil || j.JobCluster == nil {
		log.WithField("job_id", jobID).Warn("Job not in caller's ownership chain")
		return nil, ErrJobNotFound
	}

	m, err := s.blueprintRepo.FindMilestoneWithPhase(j.JobCluster.MilestoneID)
	if err != nil {
		return nil, err
	}
	if m == nil || m.Phase == nil {
		return nil, ErrJobNotFound
	}

	g, err := s.goalService.FindByID(ctx, m.Phase.GoalID.String())
	if err != nil {
		return nil, err
	}

	return &ownedJob{job: j, milestone: m, goal: g}, nil
}

// resolveOwnedMilestone checks the milestone belongs to the caller by walking
// up to its goal through the authenticated goal lookup.
func (s *jobService) resolveOwnedMilestone(ctx context.Context, milestoneID string) (*blueprint.Milestone, *goal.Goal, error) {
	id, err := uuid.Parse(milestoneID)
	if err != nil {
		return nil, nil, goal.ErrInvalidID
	}

	m, err := s.blueprintRepo.FindMilestoneWithPhase(id)
	if err != nil {
		return nil, nil, err
	}
	if m == nil || m.Phase == nil {
		return nil, nil, blueprint.ErrMilestoneNotFound
	}

	g, err := s.goalService.FindByID(ctx, m.Phase.GoalID.String())
	if err != nil {
		if errors.Is(err, goal.ErrGoalNotFound) {
			return nil, nil, blueprint.ErrMilestoneNotFound
		}
		return nil, nil, err
	}
	return m, g, nil
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

func milestoneContext(m *blueprint.Milestone) planner.MilestoneContext {
	return planner.MilestoneContext{
		Title:              m.Title,
		AcceptanceCriteria: m.AcceptanceCriteria,
	}
}

func jobContext(j *Job) planner.JobContext {
	return planner.JobContext{
		Title:        j.Title,
		Type:         string(j.Type),
		EstMinutes:   j.EstMinutes,
		FailureCount: j.FailureCount,
		Status:       string(j.Status),
	}
}

func (s *jobService) GenerateForMilestone(ctx context.Context, milestoneID string) ([]*JobCluster, error) {
	log := config.WithContext(ctx)

	m, g, err := s.resolveOwnedMilestone(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	if m.Status != blueprint.MilestoneActive {
		return nil, statusErr(string(blueprint.MilestoneActive), string(m.Status))
	}

	// Pre-check-then-act guard against accidental regeneration; explicit
	// deletion is required before a second run.
	count, err := s.repo.CountClustersByMilestone(m.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrClustersExist
	}

	drafts, err := s.planner.GenerateJobClusters(ctx, goalContext(g), milestoneContext(m))
	if err != nil {
		log.WithError(err).Error("Job cluster generation failed")
		return nil, err
	}

	clusters := make([]*JobCluster, 0, len(drafts))
	for _, cd := range drafts {
		cluster := &JobCluster{
			ID:          uuid.New(),
			MilestoneID: m.ID,
			Title:       cd.Title,
		}
		for _, jd := range cd.Jobs {
			// Redundant runtime safety net behind the schema validation:
			// the atomic constraint is fatal, never auto-split.
			if err := planner.ValidateJobDraft(jd); err != nil {
				return nil, err
			}
			cluster.Jobs = append(cluster.Jobs, Job{
				ID:           uuid.New(),
				JobClusterID: cluster.ID,
				Title:        jd.Title,
				Type:         JobType(jd.Type),
				EstMinutes:   jd.EstMinutes,
				Status:       StatusPending,
			})
		}
		clusters = append(clusters, cluster)
	}

	if err := s.repo.CreateClustersWithJobs(clusters); err != nil {
		log.WithError(err).Error("Failed to insert job clusters")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"milestone_id": m.ID,
		"clusters":     len(clusters),
	}).Info("Milestone atomized into job clusters")
	return clusters, nil
}

func (s *jobService) DeleteClusters(ctx context.Context, milestoneID string) error {
	log := config.WithContext(ctx)

	m, _, err := s.resolveOwnedMilestone(ctx, milestoneID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteClustersByMilestone(m.ID); err != nil {
		log.WithError(err).Error("Failed to delete job clusters")
		return err
	}

	log.WithField("milestone_id", m.ID).Info("Job clusters deleted")
	return nil
}

func (s *jobService) Explorer(ctx context.Context, milestoneID string) (*ExplorerView, error) {
	m, _, err := s.resolveOwnedMilestone(ctx, milestoneID)
	if err != nil {
		return nil, err
	}

	clusters, err := s.repo.FindClustersByMilestone(m.ID)
	if err != nil {
		return nil, err
	}
	return buildExplorerView(m.ID, clusters), nil
}

func (s *jobService) Recommend(ctx context.Context, goalID string, energy EnergyLevel) ([]*JobView, error) {
	if !energy.IsValid() {
		return nil, ErrInvalidEnergy
	}

	m, err := s.blueprintService.ActiveMilestone(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return []*JobView{}, nil
	}

	clusters, err := s.repo.FindClustersByMilestone(m.ID)
	if err != nil {
		return nil, err
	}

	var jobs []*Job
	for _, c := range clusters {
		for i := range c.Jobs {
			jobs = append(jobs, &c.Jobs[i])
		}
	}

	now := time.Now().UTC()
	picked := FilterByEnergy(jobs, energy)
	views := make([]*JobView, 0, len(picked))
	for _, j := range picked {
		views = append(views, newJobView(j, now))
	}
	return views, nil
}

func (s *jobService) Start(ctx context.Context, jobID string) (*JobView, error) {
	log := config.WithContext(ctx)

	o, err := s.resolveOwnedJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	j := o.job

	if j.Status != StatusPending {
		return nil, statusErr(string(StatusPending), string(j.Status))
	}

	now := time.Now().UTC()
	j.Status = StatusActive
	j.WorkSessions = AppendOpen(j.WorkSessions, now)
	if err := s.repo.UpdateJob(j); err != nil {
		log.WithError(err).Error("Failed to start job")
		return nil, err
	}

	log.WithField("job_id", j.ID).Info("Job started")
	return newJobView(j, now), nil
}

func (s *jobService) Pause(ctx context.Context, jobID string) (*JobView, error) {
	log := config.WithContext(ctx)

	o, err := s.resolveOwnedJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	j := o.job

	if j.Status != StatusActive {
		return nil, statusErr(string(StatusActive), string(j.Status))
	}

	now := time.Now().UTC()
	j.WorkSessions = CloseOpen(j.WorkSessions, now)
	if err := s.repo.UpdateJob(j); err != nil {
		log.WithError(err).Error("Failed to pause job")
		return nil, err
	}
	return newJobView(j, now), nil
}

func (s *jobService) Resume(ctx context.Context, jobID string) (*JobView, error) {
	log := config.WithContext(ctx)

	o, err := s.resolveOwnedJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	j := o.job

	if j.Status != StatusActive {
		return nil, statusErr(string(StatusActive), string(j.Status))
	}

	now := time.Now().UTC()
	j.WorkSessions = AppendOpen(j.WorkSessions, now)
	if err := s.repo.UpdateJob(j); err != nil {
		log.WithError(err).Error("Failed to resume job")
		return nil, err
	}
	return newJobView(j, now), nil
}

func (s *jobService) Complete(ctx context.Context, jobID string) (*JobView, error) {
	log := config.WithContext(ctx)

	o, err := s.resolveOwnedJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	j := o.job

	if j.Status != StatusActive {
		return nil, statusErr(string(StatusActive), string(j.Status))
	}

	now := time.Now().UTC()
	j.Status = StatusCompleted
	j.WorkSessions = CloseOpen(j.WorkSessions, now)
	if err := s.repo.UpdateJob(j); err != nil {
		log.WithError(err).Error("Failed to complete job")
		return nil, err
	}

	// Best-effort: the job completion stands even if the milestone status
	// sync hiccups.
	if _, err := s.blueprintService.SyncMilestoneStatusIfNeeded(ctx, o.goal.ID.String(), o.milestone.ID.String()); err != nil {
		log.WithError(err).Warn("Milestone status sync failed after job completion")
	}

	log.WithField("job_id", j.ID).Info("Job completed")
	return newJobView(j, now), nil
}

func (s *jobService) SetDeadline(ctx context.Context, jobID string, deadline *time.Time) (*JobView, error) {
	log := config.WithContext(ctx)

	o, err := s.resolveOwnedJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	j := o.job

	j.Deadline = deadline
	j.CalendarEventID = s.calendar.SyncJob(ctx, o.goal.UserID, &calendar.CalendarJob{
		ID:              j.ID,
		Title:           j.Title,
		Note:            fmt.Sprintf("%s / %s", o.goal.Title, o.milestone.Title),
		Deadline:        deadline,
		CalendarEventID: j.CalendarEventID,
	})

	if err := s.repo.UpdateJob(j); err != nil {
		log.WithError(err).Error("Failed to set job deadline")
		return nil, err
	}

	log.WithField("job_id", j.ID).Info("Job deadline updated")
	return newJobView(j, time.Now().UTC()), nil
}
