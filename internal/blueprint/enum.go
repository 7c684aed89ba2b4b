package blueprint

type PhaseStatus string

const (
	PhasePending    PhaseStatus = "PENDING"
	PhaseActive     PhaseStatus = "ACTIVE"
	PhaseCompleted  PhaseStatus = "COMPLETED"
	PhaseQuarantine PhaseStatus = "QUARANTINE"
)

type MilestoneStatus string

const (
	MilestonePending             MilestoneStatus = "PENDING"
	MilestoneActive              MilestoneStatus = "ACTIVE"
	MilestonePendingVerification MilestoneStatus = "PENDING_VERIFICATION"
	MilestoneCompleted           MilestoneStatus = "COMPLETED"
)
