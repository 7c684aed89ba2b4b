package job

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/volition-os/volition-api/internal/config"
	"github.com/volition-os/volition-api/internal/planner"
)

// Failure recovery. Marking the job FAILED is always the first durable step;
// every recovery branch (retry, negotiate, mutate, give up) reads the job in
// its FAILED state.

func (s *jobService) MarkFailed(ctx context.Context, jobID, reason string) (*JobView, error) {
	log := config.WithContext(ctx)

	if reason == "" {
		return nil, ErrEmptyReason
	}

	o, err := s.resolveOwnedJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	j := o.job

	if j.Status != StatusActive {
		return nil, statusErr(string(StatusActive), string(j.Status))
	}

	now := time.Now().UTC()
	j.Status = StatusFailed
	j.WorkSessions = CloseOpen(j.WorkSessions, now)
	if err := s.repo.UpdateJob(j); err != nil {
		log.WithError(err).Error("Failed to mark job failed")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"job_id": j.ID,
		"reason": reason,
	}).Info("Job marked failed")
	return newJobView(j, now), nil
}

// Retry is the "try next time" path: the failure is recorded and the job's
// type escalates monotonically (QUICK_WIN and DEEP_WORK become ANCHOR, ANCHOR
// stays), then the job returns to PENDING. Work sessions are untouched.
func (s *jobService) Retry(ctx context.Context, jobID, reason string) (*JobView, error) {
	log := config.WithContext(ctx)

	if reason == "" {
		return nil, ErrEmptyReason
	}

	o, err := s.resolveOwnedJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	j := o.job

	if j.Status != StatusFailed {
		return nil, statusErr(string(StatusFailed), string(j.Status))
	}

	now := time.Now().UTC()
	j.FailureHistory = append(j.FailureHistory, FailureRecord{Timestamp: now, Reason: reason})
	j.Type = escalateType(j.Type)
	j.Status = StatusPending
	if err := s.repo.UpdateJob(j); err != nil {
		log.WithError(err).Error("Failed to reschedule failed job")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"job_id": j.ID,
		"type":   j.Type,
	}).Info("Failed job rescheduled")
	return newJobView(j, now), nil
}

func escalateType(t JobType) JobType {
	if t == TypeQuickWin || t == TypeDeepWork {
		return TypeAnchor
	}
	return t
}

// Negotiate asks the planner whether to insist on the job as written or
// change it. The recommendation is advisory only; the user may mutate either
// way.
func (s *jobService) Negotiate(ctx context.Context, jobID, reason string) (*planner.NegotiationResult, error) {
	log := config.WithContext(ctx)

	if reason == "" {
		return nil, ErrEmptyReason
	}

	o, err := s.resolveOwnedJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if o.job.Status != StatusFailed {
		return nil, statusErr(string(StatusFailed), string(o.job.Status))
	}

	result, err := s.planner.NegotiateJob(ctx, goalContext(o.goal), milestoneContext(o.milestone), jobContext(o.job), reason)
	if err != nil {
		log.WithError(err).Error("Job negotiation failed")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"job_id":         o.job.ID,
		"recommendation": result.Recommendation,
	}).Info("Job negotiated")
	return result, nil
}

// MutatePreview generates a replacement draft without persisting anything.
// Callers may regenerate as often as they like; the stored job only changes
// on MutateConfirm.
func (s *jobService) MutatePreview(ctx context.Context, jobID, reason string) (*planner.JobDraft, error) {
	log := config.WithContext(ctx)

	if reason == "" {
		return nil, ErrEmptyReason
	}

	o, err := s.resolveOwnedJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if o.job.Status != StatusFailed {
		return nil, statusErr(string(StatusFailed), string(o.job.Status))
	}

	draft, err := s.planner.MutateJob(ctx, goalContext(o.goal), milestoneContext(o.milestone), jobContext(o.job), reason)
	if err != nil {
		log.WithError(err).Error("Job mutation preview failed")
		return nil, err
	}
	return draft, nil
}

// MutateConfirm overwrites the job in place with the accepted draft: title,
// type and estimate replaced, status back to ACTIVE, failure_count bumped.
// Cluster, creation time and work sessions are preserved untouched.
func (s *jobService) MutateConfirm(ctx context.Context, jobID string, draft planner.JobDraft) (*JobView, error) {
	log := config.WithContext(ctx)

	if err := planner.ValidateJobDraft(draft); err != nil {
		return nil, err
	}

	o, err := s.resolveOwnedJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	j := o.job

	if j.Status != StatusFailed {
		return nil, statusErr(string(StatusFailed), string(j.Status))
	}

	j.Title = draft.Title
	j.Type = JobType(draft.Type)
	j.EstMinutes = draft.EstMinutes
	j.Status = StatusActive
	j.FailureCount++
	if err := s.repo.UpdateJob(j); err != nil {
		log.WithError(err).Error("Failed to confirm job mutation")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"job_id":        j.ID,
		"failure_count": j.FailureCount,
	}).Info("Job mutated")
	return newJobView(j, time.Now().UTC()), nil
}

// GiveUp abandons the whole goal. Terminal: no further recovery applies to a
// failed goal's jobs.
func (s *jobService) GiveUp(ctx context.Context, jobID string) error {
	log := config.WithContext(ctx)

	o, err := s.resolveOwnedJob(ctx, jobID)
	if err != nil {
		return err
	}

	if _, err := s.goalService.Archive(ctx, o.goal.ID.String()); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"job_id":  o.job.ID,
		"goal_id": o.goal.ID,
	}).Info("Goal abandoned from job failure")
	return nil
}
