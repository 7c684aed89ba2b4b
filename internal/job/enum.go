package job

type JobType string

const (
	TypeQuickWin JobType = "QUICK_WIN"
	TypeDeepWork JobType = "DEEP_WORK"
	TypeAnchor   JobType = "ANCHOR"
)

func (t JobType) IsValid() bool {
	switch t {
	case TypeQuickWin, TypeDeepWork, TypeAnchor:
		return true
	}
	return false
}

type JobStatus string

const (
	StatusPending   JobStatus = "PENDING"
	StatusActive    JobStatus = "ACTIVE"
	StatusCompleted JobStatus = "COMPLETED"
	StatusFailed    JobStatus = "FAILED"
)

type EnergyLevel string

const (
	EnergyHigh EnergyLevel = "HIGH"
	EnergyMed  EnergyLevel = "MED"
	EnergyLow  EnergyLevel = "LOW"
)

func (e EnergyLevel) IsValid() bool {
	switch e {
	case EnergyHigh, EnergyMed, EnergyLow:
		return true
	}
	return false
}
