package blueprint

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlueprintRepository interface {
	CreateTree(phases []*Phase) error
	CountPhasesByGoalID(goalID uuid.UUID) (int64, error)
	// FindPhasesByGoalID returns phases ordered by index, milestones within
	// each phase ordered by creation time.
	FindPhasesByGoalID(goalID uuid.UUID) ([]*Phase, error)
	FindMilestoneWithPhase(id uuid.UUID) (*Milestone, error)
	UpdateMilestoneStatus(id uuid.UUID, status MilestoneStatus) error
	UpdatePhaseStatus(id uuid.UUID, status PhaseStatus) error
	// ResetSiblingsAndActivate resets every milestone in the phase to
	// PENDING and sets the target ACTIVE, in one transaction. The single
	// sanctioned way to change the active milestone of a phase.
	ResetSiblingsAndActivate(phaseID, milestoneID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) BlueprintRepository {
	return &repository{db: db}
}

func (r *repository) CreateTree(phases []*Phase) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&phases).Error
	})
}

func (r *repository) CountPhasesByGoalID(goalID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&Phase{}).Where("goal_id = ?", goalID).Count(&count).Error
	return count, err
}

func (r *repository) FindPhasesByGoalID(goalID uuid.UUID) ([]*Phase, error) {
	var phases []*Phase
	err := r.db.
		Where("goal_id = ?", goalID).
		Order("index ASC").
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Find(&phases).Error
	if err != nil {
		return nil, err
	}
	return phases, nil
}

func (r *repository) FindMilestoneWithPhase(id uuid.UUID) (*Milestone, error) {
	var m Milestone
	err := r.db.Preload("Phase").First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *repository) UpdateMilestoneStatus(id uuid.UUID, status MilestoneStatus) error {
	return r.db.Model(&Milestone{}).Where("id = ?", id).Update("status", status).Error
}

func (r *repository) UpdatePhaseStatus(id uuid.UUID, status PhaseStatus) error {
	return r.db.Model(&Phase{}).Where("id = ?", id).Update("status", status).Error
}

func (r *repository) ResetSiblingsAndActivate(phaseID, milestoneID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Milestone{}).
			Where("phase_id = ?", phaseID).
			Update("status", MilestonePending).Error; err != nil {
			return err
		}
		if err := tx.Model(&Milestone{}).
			Where("id = ? AND phase_id = ?", milestoneID, phaseID).
			Update("status", MilestoneActive).Error; err != nil {
			return err
		}
		return tx.Model(&Phase{}).
			Where("id = ? AND status = ?", phaseID, PhasePending).
			Update("status", PhaseActive).Error
	})
}
