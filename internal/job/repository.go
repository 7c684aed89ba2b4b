package job

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobRepository interface {
	// CreateClustersWithJobs inserts the full cluster/job batch for a
	// milestone in one transaction.
	CreateClustersWithJobs(clusters []*JobCluster) error
	CountClustersByMilestone(milestoneID uuid.UUID) (int64, error)
	// FindClustersByMilestone returns clusters in creation order with their
	// jobs preloaded, also in creation order.
	FindClustersByMilestone(milestoneID uuid.UUID) ([]*JobCluster, error)
	// DeleteClustersByMilestone removes every cluster (and, by cascade,
	// every job) under the milestone. The required step before regeneration.
	DeleteClustersByMilestone(milestoneID uuid.UUID) error
	// FindOwnedJob resolves the job through its full ownership chain
	// (cluster -> milestone -> phase -> goal -> user); anything off-chain is
	// nil, nil.
	FindOwnedJob(jobID, userID uuid.UUID) (*Job, error)
	UpdateJob(j *Job) error

	// MilestoneJobStats backs the milestone completion check without the
	// blueprint package importing this one.
	MilestoneJobStats(milestoneID uuid.UUID) (clusters, jobs, completed int64, err error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) JobRepository {
	return &repository{db: db}
}

func (r *repository) CreateClustersWithJobs(clusters []*JobCluster) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&clusters).Error
	})
}

func (r *repository) CountClustersByMilestone(milestoneID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&JobCluster{}).Where("milestone_id = ?", milestoneID).Count(&count).Error
	return count, err
}

func (r *repository) FindClustersByMilestone(milestoneID uuid.UUID) ([]*JobCluster, error) {
	var clusters []*JobCluster
	err := r.db.
		Where("milestone_id = ?", milestoneID).
		Order("created_at ASC").
		Preload("Jobs", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Find(&clusters).Error
	if err != nil {
		return nil, err
	}
	return clusters, nil
}

func (r *repository) DeleteClustersByMilestone(milestoneID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("job_cluster_id IN (?)",
				tx.Model(&JobCluster{}).Select("id").Where("milestone_id = ?", milestoneID),
			).
			Delete(&Job{}).Error; err != nil {
			return err
		}
		return tx.Where("milestone_id = ?", milestoneID).Delete(&JobCluster{}).Error
	})
}

func (r *repository) FindOwnedJob(jobID, userID uuid.UUID) (*Job, error) {
	var j Job
	err := r.db.
		Joins("JOIN job_clusters ON job_clusters.id = jobs.job_cluster_id").
		Joins("JOIN milestones ON milestones.id = job_clusters.milestone_id").
		Joins("JOIN phases ON phases.id = milestones.phase_id").
		Joins("JOIN goals ON goals.id = phases.goal_id").
		Where("jobs.id = ? AND goals.user_id = ?", jobID, userID).
		Preload("JobCluster").
		First(&j).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &j, nil
}

func (r *repository) UpdateJob(j *Job) error {
	return r.db.Save(j).Error
}

func (r *repository) MilestoneJobStats(milestoneID uuid.UUID) (clusters, jobs, completed int64, err error) {
	if err = r.db.Model(&JobCluster{}).
		Where("milestone_id = ?", milestoneID).
		Count(&clusters).Error; err != nil {
		return 0, 0, 0, err
	}

	base := r.db.Model(&Job{}).
		Joins("JOIN job_clusters ON job_clusters.id = jobs.job_cluster_id").
		Where("job_clusters.milestone_id = ?", milestoneID)

	if err = base.Session(&gorm.Session{}).Count(&jobs).Error; err != nil {
		return 0, 0, 0, err
	}
	if err = base.Session(&gorm.Session{}).
		Where("jobs.status = ?", StatusCompleted).
		Count(&completed).Error; err != nil {
		return 0, 0, 0, err
	}
	return clusters, jobs, completed, nil
}
