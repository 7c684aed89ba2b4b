package stresstest

import (
	"errors"
	"fmt"
	"math"
)

// Scoring engine for the commitment stress test. Pure and deterministic:
// exactly 6 answers covering question indices 0-5 once each, indices 0-2 PAIN
// and 3-5 DRIVE, scores 1-5. Weighted score on a 0-100 scale, PROCEED at 60.

const (
	questionCount    = 6
	painWeight       = 0.4
	driveWeight      = 0.6
	proceedThreshold = 60.0
)

var ErrInvalidAnswers = errors.New("invalid answer set")

type Answer struct {
	QuestionIndex int `json:"question_index"`
	SelectedScore int `json:"selected_score"`
}

type Decision string

const (
	DecisionProceed Decision = "PROCEED"
	DecisionReject  Decision = "REJECT"
)

type Result struct {
	PainScore  float64  `json:"pain_score"`
	DriveScore float64  `json:"drive_score"`
	Score      float64  `json:"score"`
	Decision   Decision `json:"decision"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Evaluate validates the answer set and computes the commitment score.
func Evaluate(answers []Answer) (*Result, error) {
	if len(answers) != questionCount {
		return nil, fmt.Errorf("%w: expected %d answers, got %d", ErrInvalidAnswers, questionCount, len(answers))
	}

	byIndex := make([]int, questionCount)
	seen := make([]bool, questionCount)
	for _, a := range answers {
		if a.QuestionIndex < 0 || a.QuestionIndex >= questionCount {
			return nil, fmt.Errorf("%w: question index %d out of range", ErrInvalidAnswers, a.QuestionIndex)
		}
		if seen[a.QuestionIndex] {
			return nil, fmt.Errorf("%w: duplicate answer for question %d", ErrInvalidAnswers, a.QuestionIndex)
		}
		if a.SelectedScore < 1 || a.SelectedScore > 5 {
			return nil, fmt.Errorf("%w: score %d outside 1-5", ErrInvalidAnswers, a.SelectedScore)
		}
		seen[a.QuestionIndex] = true
		byIndex[a.QuestionIndex] = a.SelectedScore
	}

	var painSum, driveSum int
	for i := 0; i < 3; i++ {
		painSum += byIndex[i]
	}
	for i := 3; i < 6; i++ {
		driveSum += byIndex[i]
	}

	painScore := round2(float64(painSum) / 3)
	driveScore := round2(float64(driveSum) / 3)
	score := round2((painScore*painWeight + driveScore*driveWeight) * 20)

	decision := DecisionReject
	if score >= proceedThreshold {
		decision = DecisionProceed
	}

	return &Result{
		PainScore:  painScore,
		DriveScore: driveScore,
		Score:      score,
		Decision:   decision,
	}, nil
}
