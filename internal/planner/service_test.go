package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	response string
	err      error
}

func (p *stubProvider) SendPrompt(ctx context.Context, system, user string) (string, error) {
	return p.response, p.err
}

func validQuestionsJSON(t *testing.T) string {
	t.Helper()
	questions := make([]StressQuestion, 6)
	for i := range questions {
		category := CategoryPain
		if i >= 3 {
			category = CategoryDrive
		}
		options := make([]StressOption, 5)
		for s := 1; s <= 5; s++ {
			options[s-1] = StressOption{Label: fmt.Sprintf("option %d", s), Score: s}
		}
		questions[i] = StressQuestion{
			Category: category,
			Prompt:   fmt.Sprintf("question %d", i),
			Options:  options,
		}
	}
	b, err := json.Marshal(questions)
	require.NoError(t, err)
	return string(b)
}

func TestGenerateStressQuestions(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid", func(t *testing.T) {
		svc := NewService(&stubProvider{response: "```json\n" + validQuestionsJSON(t) + "\n```"})
		questions, err := svc.GenerateStressQuestions(ctx, "learn systems programming")
		require.NoError(t, err)
		assert.Len(t, questions, 6)
		assert.Equal(t, CategoryPain, questions[0].Category)
		assert.Equal(t, CategoryDrive, questions[5].Category)
	})

	t.Run("WrongCount", func(t *testing.T) {
		svc := NewService(&stubProvider{response: `[{"category":"PAIN","prompt":"q","options":[]}]`})
		_, err := svc.GenerateStressQuestions(ctx, "goal")
		assert.ErrorIs(t, err, ErrSchema)
	})
}

func TestGenerateTrialPlan(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid", func(t *testing.T) {
		svc := NewService(&stubProvider{response: `[
			{"day_number":1,"title":"a","est_minutes":10,"acceptance_criteria":"done a"},
			{"day_number":2,"title":"b","est_minutes":15,"acceptance_criteria":"done b"},
			{"day_number":3,"title":"c","est_minutes":19,"acceptance_criteria":"done c"}
		]`})
		tasks, err := svc.GenerateTrialPlan(ctx, GoalContext{Title: "goal"})
		require.NoError(t, err)
		assert.Len(t, tasks, 3)
	})

	t.Run("TwentyMinuteTaskRejected", func(t *testing.T) {
		svc := NewService(&stubProvider{response: `[
			{"day_number":1,"title":"a","est_minutes":20,"acceptance_criteria":"x"},
			{"day_number":2,"title":"b","est_minutes":10,"acceptance_criteria":"x"},
			{"day_number":3,"title":"c","est_minutes":10,"acceptance_criteria":"x"}
		]`})
		_, err := svc.GenerateTrialPlan(ctx, GoalContext{Title: "goal"})
		assert.ErrorIs(t, err, ErrSchema)
	})

	t.Run("NonSequentialDays", func(t *testing.T) {
		svc := NewService(&stubProvider{response: `[
			{"day_number":1,"title":"a","est_minutes":10,"acceptance_criteria":"x"},
			{"day_number":3,"title":"b","est_minutes":10,"acceptance_criteria":"x"},
			{"day_number":4,"title":"c","est_minutes":10,"acceptance_criteria":"x"}
		]`})
		_, err := svc.GenerateTrialPlan(ctx, GoalContext{Title: "goal"})
		assert.ErrorIs(t, err, ErrSchema)
	})
}

func TestGenerateBlueprint(t *testing.T) {
	ctx := context.Background()

	t.Run("EightMilestonesRejected", func(t *testing.T) {
		milestones := make([]MilestoneDraft, 8)
		for i := range milestones {
			milestones[i] = MilestoneDraft{Title: "m", AcceptanceCriteria: "c"}
		}
		b, err := json.Marshal([]PhaseDraft{{Title: "phase", Milestones: milestones}})
		require.NoError(t, err)

		svc := NewService(&stubProvider{response: string(b)})
		_, err = svc.GenerateBlueprint(ctx, GoalContext{Title: "goal"})
		assert.ErrorIs(t, err, ErrSchema)
	})

	t.Run("SevenMilestonesAccepted", func(t *testing.T) {
		milestones := make([]MilestoneDraft, 7)
		for i := range milestones {
			milestones[i] = MilestoneDraft{Title: "m", AcceptanceCriteria: "c"}
		}
		b, err := json.Marshal([]PhaseDraft{{Title: "phase", Milestones: milestones}})
		require.NoError(t, err)

		svc := NewService(&stubProvider{response: string(b)})
		phases, err := svc.GenerateBlueprint(ctx, GoalContext{Title: "goal"})
		require.NoError(t, err)
		assert.Len(t, phases[0].Milestones, 7)
	})
}

func TestGenerateJobClusters(t *testing.T) {
	ctx := context.Background()
	milestone := MilestoneContext{Title: "m", AcceptanceCriteria: "c"}

	t.Run("OversizedJobRejectedNotClamped", func(t *testing.T) {
		svc := NewService(&stubProvider{response: `[
			{"title":"cluster","jobs":[{"title":"j","type":"DEEP_WORK","est_minutes":150}]}
		]`})
		_, err := svc.GenerateJobClusters(ctx, GoalContext{Title: "goal"}, milestone)
		assert.ErrorIs(t, err, ErrSchema)
	})

	t.Run("BoundaryAccepted", func(t *testing.T) {
		svc := NewService(&stubProvider{response: `[
			{"title":"cluster","jobs":[{"title":"j","type":"ANCHOR","est_minutes":120}]}
		]`})
		clusters, err := svc.GenerateJobClusters(ctx, GoalContext{Title: "goal"}, milestone)
		require.NoError(t, err)
		assert.Equal(t, 120, clusters[0].Jobs[0].EstMinutes)
	})
}

func TestNegotiateJob(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid", func(t *testing.T) {
		svc := NewService(&stubProvider{response: `{"advice":"stick with it","recommendation":"INSIST"}`})
		result, err := svc.NegotiateJob(ctx, GoalContext{}, MilestoneContext{}, JobContext{}, "too tired")
		require.NoError(t, err)
		assert.Equal(t, RecommendationInsist, result.Recommendation)
	})

	t.Run("UnknownRecommendation", func(t *testing.T) {
		svc := NewService(&stubProvider{response: `{"advice":"hmm","recommendation":"MAYBE"}`})
		_, err := svc.NegotiateJob(ctx, GoalContext{}, MilestoneContext{}, JobContext{}, "reason")
		assert.ErrorIs(t, err, ErrSchema)
	})
}

func TestClassifyGoal(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid", func(t *testing.T) {
		svc := NewService(&stubProvider{response: `{"classification":"ACTIONABLE"}`})
		c, err := svc.ClassifyGoal(ctx, "build a compiler")
		require.NoError(t, err)
		assert.Equal(t, ClassificationActionable, c)
	})

	t.Run("Unknown", func(t *testing.T) {
		svc := NewService(&stubProvider{response: `{"classification":"IMPOSSIBLE"}`})
		_, err := svc.ClassifyGoal(ctx, "goal")
		assert.ErrorIs(t, err, ErrSchema)
	})
}
