package repositories

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campusmatch/internal/models"
)

type DocumentRepository interface {
	Create(document *models.Document) error
	FindByID(id uuid.UUID) (*models.Document, error)
	Delete(id uuid.UUID) error
	CreateChunk(chunk *models.DocumentChunk) error
	SetChunkVectorID(chunkID uuid.UUID, vectorID string) error
	FindChunksByDocumentID(documentID uuid.UUID) ([]models.DocumentChunk, error)
	FindUnindexedChunks(limit int) ([]models.DocumentChunk, error)
	AssembleText(documentID uuid.UUID) (string, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create implements DocumentRepository.
func (d *documentRepository) Create(document *models.Document) error {
	if err := d.db.Create(&document).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

// FindByID implements DocumentRepository.
func (d *documentRepository) FindByID(id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	if err := d.db.Where("id = ?", id).First(&doc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("document not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find document: %w", err)
	}

	return &doc, nil
}

// Delete implements DocumentRepository. Chunks go with the document via the
// FK cascade; vector-store points are the caller's responsibility.
func (d *documentRepository) Delete(id uuid.UUID) error {
	result := d.db.Where("id = ?", id).Delete(&models.Document{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete document: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("document not found")
	}

	return nil
}

// CreateChunk implements DocumentRepository.
func (d *documentRepository) CreateChunk(chunk *models.DocumentChunk) error {
	if err := d.db.Create(&chunk).Error; err != nil {
		return fmt.Errorf("failed to create document chunk: %w", err)
	}

	return nil
}

// SetChunkVectorID implements DocumentRepository.
func (d *documentRepository) SetChunkVectorID(chunkID uuid.UUID, vectorID string) error {
	result := d.db.Model(&models.DocumentChunk{}).
		Where("id = ?", chunkID).
		Update("vector_id", vectorID)

	if result.Error != nil {
		return fmt.Errorf("failed to set chunk vector id: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("document chunk not found")
	}

	return nil
}

// FindChunksByDocumentID implements DocumentRepository.
func (d *documentRepository) FindChunksByDocumentID(documentID uuid.UUID) ([]models.DocumentChunk, error) {
	var chunks []models.DocumentChunk
	err := d.db.
		Where("document_id = ?", documentID).
		Order("chunk_index ASC").
		Find(&chunks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find document chunks: %w", err)
	}

	return chunks, nil
}

// FindUnindexedChunks implements DocumentRepository. Returns chunks whose
// embedding never reached the vector store, so a re-index pass can pick
// them up.
func (d *documentRepository) FindUnindexedChunks(limit int) ([]models.DocumentChunk, error) {
	var chunks []models.DocumentChunk
	err := d.db.
		Where("vector_id IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&chunks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find unindexed chunks: %w", err)
	}

	return chunks, nil
}

// AssembleText implements DocumentRepository. Rebuilds the extracted document
// text from its chunks in index order.
func (d *documentRepository) AssembleText(documentID uuid.UUID) (string, error) {
	chunks, err := d.FindChunksByDocumentID(documentID)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		parts = append(parts, chunk.Text)
	}

	return strings.Join(parts, "\n\n"), nil
}
