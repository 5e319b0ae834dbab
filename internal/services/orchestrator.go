package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"campusmatch/internal/models"
	"campusmatch/internal/repositories"
)

type JobOrchestrator interface {
	ProcessJob(ctx context.Context, jobID uuid.UUID) error
}

type jobOrchestrator struct {
	jobRepo        repositories.JobRepository
	docRepo        repositories.DocumentRepository
	textExtractor  TextExtractor
	normalizer     TextNormalizer
	skillExtractor SkillExtractor
	perUnitDelay   time.Duration
}

func NewJobOrchestrator(
	jobRepo repositories.JobRepository,
	docRepo repositories.DocumentRepository,
	textExtractor TextExtractor,
	normalizer TextNormalizer,
	skillExtractor SkillExtractor,
	perUnitDelay time.Duration,
) JobOrchestrator {
	return &jobOrchestrator{
		jobRepo:        jobRepo,
		docRepo:        docRepo,
		textExtractor:  textExtractor,
		normalizer:     normalizer,
		skillExtractor: skillExtractor,
		perUnitDelay:   perUnitDelay,
	}
}

// ProcessJob implements JobOrchestrator. Runs the job to a terminal state:
// a failure before the per-student loop marks the whole job failed with no
// partial results, while a failure inside the loop only marks that student's
// result as Error and moves on.
func (o *jobOrchestrator) ProcessJob(ctx context.Context, jobID uuid.UUID) error {
	if err := o.jobRepo.UpdateStatus(jobID, models.JobStatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting matching run for job %s\n", jobID)

	job, err := o.jobRepo.FindByID(jobID)
	if err != nil {
		o.jobRepo.MarkFailed(jobID, err.Error())
		return fmt.Errorf("failed to load job: %w", err)
	}

	records, jobSkills, err := o.prepare(job)
	if err != nil {
		o.jobRepo.MarkFailed(jobID, err.Error())
		return err
	}

	for i, record := range records {
		result := o.processStudent(jobID, i, record, jobSkills)

		if err := o.jobRepo.AppendResult(result); err != nil {
			log.Printf("⚠️  Failed to persist result for student %d: %v\n", i+1, err)
		}
		if err := o.jobRepo.IncrementProgress(jobID); err != nil {
			log.Printf("⚠️  Failed to update progress for job %s: %v\n", jobID, err)
		}

		// Pacing between units; status reads go through the job row and are
		// never blocked by this.
		time.Sleep(o.perUnitDelay)
	}

	if err := o.jobRepo.MarkCompleted(jobID); err != nil {
		return err
	}

	log.Printf("✅ Job %s completed with %d students\n", jobID, len(records))
	return nil
}

// prepare loads and parses everything the per-student loop needs. Any error
// here is fatal for the job.
func (o *jobOrchestrator) prepare(job *models.ProcessingJob) ([]StudentRecord, SkillProfile, error) {
	studentDoc, err := o.docRepo.FindByID(job.StudentDocumentID)
	if err != nil {
		return nil, nil, fmt.Errorf("student document not found: %w", err)
	}

	records, err := o.textExtractor.ParseStudentCSV(studentDoc.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse student table: %w", err)
	}

	jobText, err := o.docRepo.AssembleText(job.JobDescriptionDocumentID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load job description: %w", err)
	}

	jobSkills := o.skillExtractor.Extract(o.normalizer.Normalize(jobText))

	return records, jobSkills, nil
}

// processStudent runs one unit of work. It never returns an error: anything
// that goes wrong becomes an Error-status result so the job can continue.
func (o *jobOrchestrator) processStudent(jobID uuid.UUID, index int, record StudentRecord, jobSkills SkillProfile) *models.MatchResult {
	result := &models.MatchResult{
		ID:           uuid.New(),
		JobID:        jobID,
		StudentName:  StudentName(record, index),
		StudentEmail: StudentEmail(record),
		StudentID:    StudentRollNumber(record, index),
	}

	profileText := o.normalizer.Normalize(FlattenRecord(record))
	studentSkills := o.skillExtractor.Extract(profileText)

	skillsJSON, err := json.Marshal(studentSkills)
	if err != nil {
		msg := err.Error()
		result.Status = models.MatchError
		result.Error = &msg
		return result
	}

	score := CalculateMatchScore(studentSkills, jobSkills)

	result.Status = ClassifyScore(score)
	result.MatchScore = score
	result.Skills = datatypes.JSON(skillsJSON)
	result.EmailSent = score >= 50

	return result
}

// ClassifyScore maps a match score to its result status.
func ClassifyScore(score float64) models.MatchStatus {
	switch {
	case score >= 70:
		return models.MatchSuccess
	case score >= 40:
		return models.MatchPartialSuccess
	default:
		return models.MatchFailure
	}
}
