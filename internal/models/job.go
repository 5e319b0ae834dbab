package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type JobStatus string

const (
	JobStatusCreated    JobStatus = "created"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

type MatchStatus string

const (
	MatchSuccess        MatchStatus = "Success"
	MatchPartialSuccess MatchStatus = "Partial Success"
	MatchFailure        MatchStatus = "Failure"
	MatchError          MatchStatus = "Error"
)

// ProcessingJob is one background matching run over an uploaded student table
// and a job description. TotalStudents is fixed once the table is parsed;
// ProcessedStudents only ever grows and never exceeds it.
type ProcessingJob struct {
	ID                       uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Status                   JobStatus  `gorm:"type:text;not null;default:'created'" json:"status"`
	TotalStudents            int        `gorm:"not null;default:0" json:"total_students"`
	ProcessedStudents        int        `gorm:"not null;default:0" json:"processed_students"`
	JobDescriptionLength     int        `gorm:"not null;default:0" json:"job_description_length"`
	StudentDocumentID        uuid.UUID  `gorm:"type:uuid;not null" json:"student_document_id"`
	JobDescriptionDocumentID uuid.UUID  `gorm:"type:uuid;not null" json:"job_description_document_id"`
	ErrorMessage             *string    `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt                time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	CompletedAt              *time.Time `gorm:"type:timestamp" json:"completed_at,omitempty"`

	// Relations
	StudentDocument        Document            `gorm:"foreignKey:StudentDocumentID" json:"-"`
	JobDescriptionDocument Document            `gorm:"foreignKey:JobDescriptionDocumentID" json:"-"`
	Results                []MatchResult       `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
	GeneratedDocuments     []GeneratedDocument `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ProcessingJob) TableName() string {
	return "processing_jobs"
}

func (j *ProcessingJob) Terminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}

// MatchResult is one student's outcome within a job. Created once, never
// updated afterwards.
type MatchResult struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"job_id"`
	StudentName  string         `gorm:"type:text;not null" json:"name"`
	StudentEmail string         `gorm:"type:text" json:"email,omitempty"`
	StudentID    string         `gorm:"type:text" json:"rollNumber"`
	Status       MatchStatus    `gorm:"type:text;not null" json:"status"`
	MatchScore   float64        `gorm:"type:decimal(5,2)" json:"matchScore"`
	Skills       datatypes.JSON `gorm:"type:jsonb" json:"skills,omitempty"`
	EmailSent    bool           `gorm:"not null;default:false" json:"emailSent"`
	Error        *string        `gorm:"type:text" json:"error,omitempty"`
	CreatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (MatchResult) TableName() string {
	return "match_results"
}

type GeneratedDocument struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID        uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	StudentEmail string    `gorm:"type:text;not null" json:"student_email"`
	Company      string    `gorm:"type:text" json:"company"`
	Role         string    `gorm:"type:text" json:"role"`
	Content      string    `gorm:"type:text" json:"content"`
	GeneratedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"generated_at"`
}

func (GeneratedDocument) TableName() string {
	return "generated_documents"
}
