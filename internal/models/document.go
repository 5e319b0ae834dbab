package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DocumentType string

const (
	DocTypeStudentData    DocumentType = "student_data"
	DocTypeJobDescription DocumentType = "job_description"
)

type Document struct {
	ID               uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename         string       `gorm:"type:text" json:"filename"`
	OriginalFileName string       `gorm:"type:text" json:"original_filename"`
	FileType         string       `gorm:"type:text" json:"file_type"`
	DocumentType     DocumentType `gorm:"type:text;not null" json:"document_type"`
	FilePath         string       `gorm:"type:text" json:"file_path"`
	Company          string       `gorm:"type:text" json:"company,omitempty"`
	Role             string       `gorm:"type:text" json:"role,omitempty"`
	CreatedAt        time.Time    `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	Chunks []DocumentChunk `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (d *Document) TableName() string {
	return "documents"
}

// DocumentChunk is one indexed slice of a source document. VectorID is a weak
// reference into the vector store: a chunk without one is persisted but
// unreachable by similarity search until re-indexed.
type DocumentChunk struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DocumentID uuid.UUID      `gorm:"type:uuid;not null;index" json:"document_id"`
	ChunkIndex int            `gorm:"not null" json:"chunk_index"`
	Text       string         `gorm:"type:text;not null" json:"text"`
	Metadata   datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	VectorID   *string        `gorm:"type:text" json:"vector_id,omitempty"`
	CreatedAt  time.Time      `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (c *DocumentChunk) TableName() string {
	return "document_chunks"
}
