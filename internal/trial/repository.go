package trial

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrialRepository interface {
	CreateBatch(tasks []*TrialTask) error
	FindByGoalID(goalID uuid.UUID) ([]*TrialTask, error)
	Update(task *TrialTask) error
	CountByGoalID(goalID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) TrialRepository {
	return &repository{db: db}
}

func (r *repository) CreateBatch(tasks []*TrialTask) error {
	return r.db.Create(&tasks).Error
}

func (r *repository) FindByGoalID(goalID uuid.UUID) ([]*TrialTask, error) {
	var tasks []*TrialTask
	if err := r.db.Where("goal_id = ?", goalID).Order("day_number ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *repository) Update(task *TrialTask) error {
	return r.db.Save(task).Error
}

func (r *repository) CountByGoalID(goalID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&TrialTask{}).Where("goal_id = ?", goalID).Count(&count).Error
	return count, err
}
