package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campusmatch/internal/models"
)

type JobRepository interface {
	Create(job *models.ProcessingJob) error
	FindByID(id uuid.UUID) (*models.ProcessingJob, error)
	UpdateStatus(id uuid.UUID, status models.JobStatus) error
	IncrementProgress(id uuid.UUID) error
	MarkCompleted(id uuid.UUID) error
	MarkFailed(id uuid.UUID, errorMsg string) error
	AppendResult(result *models.MatchResult) error
	FindResults(jobID uuid.UUID) ([]models.MatchResult, error)
	SaveGeneratedDocument(doc *models.GeneratedDocument) error
	FindPendingJobs(limit int) ([]models.ProcessingJob, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(job *models.ProcessingJob) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (r *jobRepository) FindByID(id uuid.UUID) (*models.ProcessingJob, error) {
	var job models.ProcessingJob
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("job not found")
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return &job, nil
}

func (r *jobRepository) UpdateStatus(id uuid.UUID, status models.JobStatus) error {
	result := r.db.Model(&models.ProcessingJob{}).
		Where("id = ?", id).
		Update("status", status)

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("job not found")
	}

	return nil
}

// IncrementProgress bumps the processed counter by one. Done as a single SQL
// update so concurrent status reads always see a committed value.
func (r *jobRepository) IncrementProgress(id uuid.UUID) error {
	result := r.db.Model(&models.ProcessingJob{}).
		Where("id = ?", id).
		Where("processed_students < total_students").
		Update("processed_students", gorm.Expr("processed_students + 1"))

	if result.Error != nil {
		return fmt.Errorf("failed to update progress: %w", result.Error)
	}

	return nil
}

func (r *jobRepository) MarkCompleted(id uuid.UUID) error {
	now := time.Now()
	result := r.db.Model(&models.ProcessingJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       models.JobStatusCompleted,
			"completed_at": now,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark job completed: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("job not found")
	}

	return nil
}

func (r *jobRepository) MarkFailed(id uuid.UUID, errorMsg string) error {
	now := time.Now()
	result := r.db.Model(&models.ProcessingJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.JobStatusFailed,
			"error_message": errorMsg,
			"completed_at":  now,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark job failed: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("job not found")
	}

	return nil
}

func (r *jobRepository) AppendResult(result *models.MatchResult) error {
	if err := r.db.Create(result).Error; err != nil {
		return fmt.Errorf("failed to append match result: %w", err)
	}
	return nil
}

func (r *jobRepository) FindResults(jobID uuid.UUID) ([]models.MatchResult, error) {
	var results []models.MatchResult
	err := r.db.
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&results).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find match results: %w", err)
	}

	return results, nil
}

func (r *jobRepository) SaveGeneratedDocument(doc *models.GeneratedDocument) error {
	if err := r.db.Create(doc).Error; err != nil {
		return fmt.Errorf("failed to save generated document: %w", err)
	}
	return nil
}

func (r *jobRepository) FindPendingJobs(limit int) ([]models.ProcessingJob, error) {
	var jobs []models.ProcessingJob
	err := r.db.
		Where("status = ?", models.JobStatusCreated).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return jobs, nil
}
