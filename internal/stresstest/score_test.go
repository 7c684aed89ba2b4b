package stresstest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answerSet(pain, drive [3]int) []Answer {
	return []Answer{
		{QuestionIndex: 0, SelectedScore: pain[0]},
		{QuestionIndex: 1, SelectedScore: pain[1]},
		{QuestionIndex: 2, SelectedScore: pain[2]},
		{QuestionIndex: 3, SelectedScore: drive[0]},
		{QuestionIndex: 4, SelectedScore: drive[1]},
		{QuestionIndex: 5, SelectedScore: drive[2]},
	}
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name     string
		pain     [3]int
		drive    [3]int
		score    float64
		decision Decision
	}{
		{"AllOnes", [3]int{1, 1, 1}, [3]int{1, 1, 1}, 20.0, DecisionReject},
		{"AllFives", [3]int{5, 5, 5}, [3]int{5, 5, 5}, 100.0, DecisionProceed},
		{"BoundaryInclusive", [3]int{3, 3, 3}, [3]int{3, 3, 3}, 60.0, DecisionProceed},
		{"JustBelow", [3]int{2, 3, 3}, [3]int{3, 3, 3}, 57.36, DecisionReject},
		{"JustAbove", [3]int{3, 3, 3}, [3]int{3, 3, 4}, 63.96, DecisionProceed},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result, err := Evaluate(answerSet(c.pain, c.drive))
			require.NoError(t, err)
			assert.Equal(t, c.score, result.Score)
			assert.Equal(t, c.decision, result.Decision)
		})
	}
}

func TestEvaluateValidation(t *testing.T) {
	t.Run("TooFewAnswers", func(t *testing.T) {
		_, err := Evaluate(answerSet([3]int{3, 3, 3}, [3]int{3, 3, 3})[:5])
		assert.ErrorIs(t, err, ErrInvalidAnswers)
	})

	t.Run("DuplicateIndex", func(t *testing.T) {
		answers := answerSet([3]int{3, 3, 3}, [3]int{3, 3, 3})
		answers[5].QuestionIndex = 0
		_, err := Evaluate(answers)
		assert.ErrorIs(t, err, ErrInvalidAnswers)
	})

	t.Run("IndexOutOfRange", func(t *testing.T) {
		answers := answerSet([3]int{3, 3, 3}, [3]int{3, 3, 3})
		answers[0].QuestionIndex = 6
		_, err := Evaluate(answers)
		assert.ErrorIs(t, err, ErrInvalidAnswers)
	})

	t.Run("ScoreOutOfRange", func(t *testing.T) {
		answers := answerSet([3]int{3, 3, 3}, [3]int{3, 3, 3})
		answers[0].SelectedScore = 6
		_, err := Evaluate(answers)
		assert.ErrorIs(t, err, ErrInvalidAnswers)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := Evaluate(nil)
		assert.ErrorIs(t, err, ErrInvalidAnswers)
	})
}
