package stresstest

import (
	"github.com/volition-os/volition-api/internal/goal"
	"github.com/volition-os/volition-api/internal/planner"
	"github.com/volition-os/volition-api/internal/trial"
)

type ClassifyRequest struct {
	Title string `json:"title"`
}

type ClassifyResponse struct {
	Classification planner.Classification `json:"classification"`
}

type QuestionsRequest struct {
	Title string `json:"title"`
}

type SubmitRequest struct {
	Title   string   `json:"title"`
	Answers []Answer `json:"answers"`
}

type SubmitResponse struct {
	Result     *Result            `json:"result"`
	Goal       *goal.Goal         `json:"goal,omitempty"`
	TrialTasks []*trial.TrialTask `json:"trial_tasks,omitempty"`
}
