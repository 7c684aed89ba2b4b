package goal

type GoalStatus string

const (
	// StatusQuarantine is the trial period: the goal passed the stress test
	// but has not yet earned scoping.
	StatusQuarantine   GoalStatus = "QUARANTINE"
	StatusPendingScope GoalStatus = "PENDING_SCOPE"
	StatusScoping      GoalStatus = "SCOPING"
	StatusPlanning     GoalStatus = "PLANNING"
	StatusActive       GoalStatus = "ACTIVE"
	StatusCompleted    GoalStatus = "COMPLETED"
	StatusFailed       GoalStatus = "FAILED"
)

var AllStatuses = []GoalStatus{
	StatusQuarantine,
	StatusPendingScope,
	StatusScoping,
	StatusPlanning,
	StatusActive,
	StatusCompleted,
	StatusFailed,
}

func (s GoalStatus) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s GoalStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

type BackgroundLevel string

const (
	BackgroundBeginner     BackgroundLevel = "BEGINNER"
	BackgroundIntermediate BackgroundLevel = "INTERMEDIATE"
	BackgroundAdvanced     BackgroundLevel = "ADVANCED"
	BackgroundExpert       BackgroundLevel = "EXPERT"
)

func (b BackgroundLevel) IsValid() bool {
	switch b {
	case BackgroundBeginner, BackgroundIntermediate, BackgroundAdvanced, BackgroundExpert:
		return true
	}
	return false
}

type ComplexitySize string

const (
	SizeSmall  ComplexitySize = "SMALL"
	SizeMedium ComplexitySize = "MEDIUM"
	SizeLarge  ComplexitySize = "LARGE"
)
