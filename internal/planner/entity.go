package planner

import (
	"errors"
	"fmt"
)

// Drafts produced by the generation boundary. Every draft is validated
// against its schema before the rule engine sees it; out-of-constraint
// values are rejected, never clamped.

var (
	ErrEmptyResponse = errors.New("empty model response")
	ErrSchema        = errors.New("generated content violates schema")
)

type Classification string

const (
	ClassificationActionable Classification = "ACTIONABLE"
	ClassificationVague      Classification = "VAGUE"
	ClassificationFantasy    Classification = "FANTASY"
)

func (c Classification) Validate() error {
	switch c {
	case ClassificationActionable, ClassificationVague, ClassificationFantasy:
		return nil
	}
	return fmt.Errorf("%w: unknown classification %q", ErrSchema, string(c))
}

type classificationPayload struct {
	Classification Classification `json:"classification"`
}

const (
	CategoryPain  = "PAIN"
	CategoryDrive = "DRIVE"
)

type StressOption struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

type StressQuestion struct {
	Category string         `json:"category"`
	Prompt   string         `json:"prompt"`
	Options  []StressOption `json:"options"`
}

// ValidateStressQuestions enforces the fixed 6-question convention:
// indices 0-2 PAIN, 3-5 DRIVE, each with exactly five options scored 1-5.
func ValidateStressQuestions(questions []StressQuestion) error {
	if len(questions) != 6 {
		return fmt.Errorf("%w: expected 6 stress questions, got %d", ErrSchema, len(questions))
	}
	for i, q := range questions {
		wantCategory := CategoryPain
		if i >= 3 {
			wantCategory = CategoryDrive
		}
		if q.Category != wantCategory {
			return fmt.Errorf("%w: question %d must be %s, got %q", ErrSchema, i, wantCategory, q.Category)
		}
		if q.Prompt == "" {
			return fmt.Errorf("%w: question %d has empty prompt", ErrSchema, i)
		}
		if len(q.Options) != 5 {
			return fmt.Errorf("%w: question %d must have 5 options, got %d", ErrSchema, i, len(q.Options))
		}
		seen := make(map[int]bool, 5)
		for _, opt := range q.Options {
			if opt.Score < 1 || opt.Score > 5 {
				return fmt.Errorf("%w: question %d has option score %d outside 1-5", ErrSchema, i, opt.Score)
			}
			if opt.Label == "" {
				return fmt.Errorf("%w: question %d has option with empty label", ErrSchema, i)
			}
			if seen[opt.Score] {
				return fmt.Errorf("%w: question %d repeats option score %d", ErrSchema, i, opt.Score)
			}
			seen[opt.Score] = true
		}
	}
	return nil
}

type TrialTaskDraft struct {
	DayNumber          int    `json:"day_number"`
	Title              string `json:"title"`
	EstMinutes         int    `json:"est_minutes"`
	AcceptanceCriteria string `json:"acceptance_criteria"`
}

// ValidateTrialPlan enforces 3-7 tasks with sequential day numbers from 1
// and sub-20-minute estimates.
func ValidateTrialPlan(tasks []TrialTaskDraft) error {
	if len(tasks) < 3 || len(tasks) > 7 {
		return fmt.Errorf("%w: trial plan must have 3-7 tasks, got %d", ErrSchema, len(tasks))
	}
	for i, task := range tasks {
		if task.DayNumber != i+1 {
			return fmt.Errorf("%w: trial task %d has day_number %d, expected %d", ErrSchema, i, task.DayNumber, i+1)
		}
		if task.Title == "" || task.AcceptanceCriteria == "" {
			return fmt.Errorf("%w: trial task %d missing title or acceptance criteria", ErrSchema, i)
		}
		if task.EstMinutes < 1 || task.EstMinutes > 19 {
			return fmt.Errorf("%w: trial task %d estimate %d outside 1-19 minutes", ErrSchema, i, task.EstMinutes)
		}
	}
	return nil
}

// MaxMilestonesPerPhase is the Miller's Law fan-out cap.
const MaxMilestonesPerPhase = 7

type MilestoneDraft struct {
	Title              string `json:"title"`
	AcceptanceCriteria string `json:"acceptance_criteria"`
}

type PhaseDraft struct {
	Title      string           `json:"title"`
	Milestones []MilestoneDraft `json:"milestones"`
}

func ValidateBlueprint(phases []PhaseDraft) error {
	if len(phases) == 0 {
		return fmt.Errorf("%w: blueprint has no phases", ErrSchema)
	}
	for i, phase := range phases {
		if phase.Title == "" {
			return fmt.Errorf("%w: phase %d has empty title", ErrSchema, i)
		}
		if len(phase.Milestones) == 0 {
			return fmt.Errorf("%w: phase %d has no milestones", ErrSchema, i)
		}
		if len(phase.Milestones) > MaxMilestonesPerPhase {
			return fmt.Errorf("%w: phase %d has %d milestones, cap is %d", ErrSchema, i, len(phase.Milestones), MaxMilestonesPerPhase)
		}
		for j, m := range phase.Milestones {
			if m.Title == "" || m.AcceptanceCriteria == "" {
				return fmt.Errorf("%w: phase %d milestone %d missing title or acceptance criteria", ErrSchema, i, j)
			}
		}
	}
	return nil
}

// MaxJobMinutes is the atomic constraint: no job may exceed two hours.
const MaxJobMinutes = 120

type JobDraft struct {
	Title      string `json:"title"`
	Type       string `json:"type"`
	EstMinutes int    `json:"est_minutes"`
}

type ClusterDraft struct {
	Title string     `json:"title"`
	Jobs  []JobDraft `json:"jobs"`
}

func validJobType(t string) bool {
	switch t {
	case "QUICK_WIN", "DEEP_WORK", "ANCHOR":
		return true
	}
	return false
}

func ValidateJobDraft(j JobDraft) error {
	if j.Title == "" {
		return fmt.Errorf("%w: job has empty title", ErrSchema)
	}
	if !validJobType(j.Type) {
		return fmt.Errorf("%w: unknown job type %q", ErrSchema, j.Type)
	}
	if j.EstMinutes < 1 || j.EstMinutes > MaxJobMinutes {
		return fmt.Errorf("%w: job estimate %d outside 1-%d minutes", ErrSchema, j.EstMinutes, MaxJobMinutes)
	}
	return nil
}

func ValidateJobClusters(clusters []ClusterDraft) error {
	if len(clusters) == 0 {
		return fmt.Errorf("%w: no job clusters generated", ErrSchema)
	}
	for i, cluster := range clusters {
		if cluster.Title == "" {
			return fmt.Errorf("%w: cluster %d has empty title", ErrSchema, i)
		}
		if len(cluster.Jobs) == 0 {
			return fmt.Errorf("%w: cluster %d has no jobs", ErrSchema, i)
		}
		for _, j := range cluster.Jobs {
			if err := ValidateJobDraft(j); err != nil {
				return err
			}
		}
	}
	return nil
}

type Recommendation string

const (
	RecommendationInsist Recommendation = "INSIST"
	RecommendationChange Recommendation = "CHANGE"
)

type NegotiationResult struct {
	Advice         string         `json:"advice"`
	Recommendation Recommendation `json:"recommendation"`
}

func (n *NegotiationResult) Validate() error {
	if n.Advice == "" {
		return fmt.Errorf("%w: negotiation advice is empty", ErrSchema)
	}
	if n.Recommendation != RecommendationInsist && n.Recommendation != RecommendationChange {
		return fmt.Errorf("%w: unknown recommendation %q", ErrSchema, string(n.Recommendation))
	}
	return nil
}

// Context payloads assembled by the calling services. Kept as plain fields so
// the planner stays below every domain package.

type GoalContext struct {
	Title               string
	DefinitionOfDone    string
	TechStack           []string
	HoursPerWeek        float64
	BackgroundLevel     string
	Size                string
	EstimatedTotalHours float64
}

type MilestoneContext struct {
	Title              string
	AcceptanceCriteria string
}

type JobContext struct {
	Title        string
	Type         string
	EstMinutes   int
	FailureCount int
	Status       string
}
