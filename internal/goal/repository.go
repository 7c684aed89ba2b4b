package goal

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GoalRepository interface {
	Create(g *Goal) error
	FindOwned(id, userID uuid.UUID) (*Goal, error)
	FindAllByUserID(userID uuid.UUID) ([]*Goal, error)
	Update(g *Goal) error
	// UpdateStatusIf flips the status only when the stored row still carries
	// from; reports whether a row changed. Used as the check-then-act guard
	// for one-shot transitions like trial graduation.
	UpdateStatusIf(id uuid.UUID, from, to GoalStatus) (bool, error)
	Delete(id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) GoalRepository {
	return &repository{db: db}
}

func (r *repository) Create(g *Goal) error {
	return r.db.Create(g).Error
}

func (r *repository) FindOwned(id, userID uuid.UUID) (*Goal, error) {
	var g Goal
	err := r.db.First(&g, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *repository) FindAllByUserID(userID uuid.UUID) ([]*Goal, error) {
	var goals []*Goal
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *repository) Update(g *Goal) error {
	return r.db.Save(g).Error
}

func (r *repository) UpdateStatusIf(id uuid.UUID, from, to GoalStatus) (bool, error) {
	res := r.db.Model(&Goal{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Goal{}, "id = ?", id).Error
}
