package planner

import (
	"context"

	"github.com/volition-os/volition-api/internal/config"
)

// Service is the only door to the generation boundary. Every method returns
// schema-validated drafts; callers never see raw model output.
type Service interface {
	ClassifyGoal(ctx context.Context, title string) (Classification, error)
	GenerateStressQuestions(ctx context.Context, title string) ([]StressQuestion, error)
	GenerateTrialPlan(ctx context.Context, g GoalContext) ([]TrialTaskDraft, error)
	GenerateBlueprint(ctx context.Context, g GoalContext) ([]PhaseDraft, error)
	GenerateJobClusters(ctx context.Context, g GoalContext, m MilestoneContext) ([]ClusterDraft, error)
	NegotiateJob(ctx context.Context, g GoalContext, m MilestoneContext, j JobContext, reason string) (*NegotiationResult, error)
	MutateJob(ctx context.Context, g GoalContext, m MilestoneContext, j JobContext, reason string) (*JobDraft, error)
}

type service struct {
	provider Provider
}

func NewService(provider Provider) Service {
	return &service{provider: provider}
}

func (s *service) ClassifyGoal(ctx context.Context, title string) (Classification, error) {
	raw, err := s.provider.SendPrompt(ctx, classifySystemPrompt, buildClassifyPrompt(title))
	if err != nil {
		return "", err
	}

	var payload classificationPayload
	if err := decodeInto(raw, &payload); err != nil {
		return "", err
	}
	if err := payload.Classification.Validate(); err != nil {
		return "", err
	}
	return payload.Classification, nil
}

func (s *service) GenerateStressQuestions(ctx context.Context, title string) ([]StressQuestion, error) {
	log := config.WithContext(ctx)

	raw, err := s.provider.SendPrompt(ctx, stressTestSystemPrompt, buildStressTestPrompt(title))
	if err != nil {
		return nil, err
	}

	var questions []StressQuestion
	if err := decodeInto(raw, &questions); err != nil {
		return nil, err
	}
	if err := ValidateStressQuestions(questions); err != nil {
		log.WithError(err).Error("Stress question set failed validation")
		return nil, err
	}

	log.Info("Generated stress-test question set")
	return questions, nil
}

func (s *service) GenerateTrialPlan(ctx context.Context, g GoalContext) ([]TrialTaskDraft, error) {
	log := config.WithContext(ctx)

	raw, err := s.provider.SendPrompt(ctx, trialPlanSystemPrompt, buildTrialPlanPrompt(g))
	if err != nil {
		return nil, err
	}

	var tasks []TrialTaskDraft
	if err := decodeInto(raw, &tasks); err != nil {
		return nil, err
	}
	if err := ValidateTrialPlan(tasks); err != nil {
		log.WithError(err).Error("Trial plan failed validation")
		return nil, err
	}

	log.Infof("Generated trial plan with %d tasks", len(tasks))
	return tasks, nil
}

func (s *service) GenerateBlueprint(ctx context.Context, g GoalContext) ([]PhaseDraft, error) {
	log := config.WithContext(ctx)

	raw, err := s.provider.SendPrompt(ctx, blueprintSystemPrompt, buildBlueprintPrompt(g))
	if err != nil {
		return nil, err
	}

	var phases []PhaseDraft
	if err := decodeInto(raw, &phases); err != nil {
		return nil, err
	}
	if err := ValidateBlueprint(phases); err != nil {
		log.WithError(err).Error("Blueprint failed validation")
		return nil, err
	}

	log.Infof("Generated blueprint with %d phases", len(phases))
	return phases, nil
}

func (s *service) GenerateJobClusters(ctx context.Context, g GoalContext, m MilestoneContext) ([]ClusterDraft, error) {
	log := config.WithContext(ctx)

	raw, err := s.provider.SendPrompt(ctx, jobsSystemPrompt, buildJobsPrompt(g, m))
	if err != nil {
		return nil, err
	}

	var clusters []ClusterDraft
	if err := decodeInto(raw, &clusters); err != nil {
		return nil, err
	}
	if err := ValidateJobClusters(clusters); err != nil {
		log.WithError(err).Error("Job clusters failed validation")
		return nil, err
	}

	log.Infof("Generated %d job clusters", len(clusters))
	return clusters, nil
}

func (s *service) NegotiateJob(ctx context.Context, g GoalContext, m MilestoneContext, j JobContext, reason string) (*NegotiationResult, error) {
	raw, err := s.provider.SendPrompt(ctx, negotiateSystemPrompt, buildNegotiatePrompt(g, m, j, reason))
	if err != nil {
		return nil, err
	}

	var result NegotiationResult
	if err := decodeInto(raw, &result); err != nil {
		return nil, err
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) MutateJob(ctx context.Context, g GoalContext, m MilestoneContext, j JobContext, reason string) (*JobDraft, error) {
	raw, err := s.provider.SendPrompt(ctx, mutateSystemPrompt, buildMutatePrompt(g, m, j, reason))
	if err != nil {
		return nil, err
	}

	var draft JobDraft
	if err := decodeInto(raw, &draft); err != nil {
		return nil, err
	}
	if err := ValidateJobDraft(draft); err != nil {
		return nil, err
	}
	return &draft, nil
}
