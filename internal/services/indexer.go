package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"campusmatch/internal/models"
	"campusmatch/internal/repositories"
)

type IndexerService interface {
	IngestStudentData(ctx context.Context, document *models.Document, records []StudentRecord) error
	IngestJobDescription(ctx context.Context, document *models.Document, text string) (int, error)
	DeleteDocument(ctx context.Context, documentID uuid.UUID) error
	ReindexChunks(ctx context.Context, limit int) (int, error)
}

type indexerService struct {
	docRepo     repositories.DocumentRepository
	chunker     TextChunker
	llmService  LLMService
	vectorStore VectorStore
	chunkSize   int
	overlap     int
}

func NewIndexerService(
	docRepo repositories.DocumentRepository,
	chunker TextChunker,
	llmService LLMService,
	vectorStore VectorStore,
	chunkSize int,
	overlap int,
) IndexerService {
	return &indexerService{
		docRepo:     docRepo,
		chunker:     chunker,
		llmService:  llmService,
		vectorStore: vectorStore,
		chunkSize:   chunkSize,
		overlap:     overlap,
	}
}

// IngestStudentData implements IndexerService. Each table row becomes exactly
// one chunk so a student is always retrievable as a single authoritative
// record.
func (s *indexerService) IngestStudentData(ctx context.Context, document *models.Document, records []StudentRecord) error {
	for i, record := range records {
		email := StudentEmail(record)
		if email == "" {
			log.Printf("⚠️  No email found for student at row %d\n", i+1)
		}

		metadata := map[string]interface{}{
			"document_id":   document.ID.String(),
			"document_type": string(models.DocTypeStudentData),
			"row_index":     i,
			"email":         email,
		}
		for key, value := range record {
			if value != "" {
				metadata[key] = value
			}
		}

		if err := s.storeChunk(ctx, document.ID, i, SerializeRecord(record), metadata); err != nil {
			return err
		}
	}

	log.Printf("✅ Ingested student data with %d records\n", len(records))
	return nil
}

// IngestJobDescription implements IndexerService. Returns the number of
// chunks created.
func (s *indexerService) IngestJobDescription(ctx context.Context, document *models.Document, text string) (int, error) {
	chunks := s.chunker.ChunkText(text, s.chunkSize, s.overlap)

	for i, chunkText := range chunks {
		metadata := map[string]interface{}{
			"document_id":   document.ID.String(),
			"document_type": string(models.DocTypeJobDescription),
			"chunk_index":   i,
			"company":       document.Company,
			"role":          document.Role,
		}

		if err := s.storeChunk(ctx, document.ID, i, chunkText, metadata); err != nil {
			return 0, err
		}
	}

	log.Printf("✅ Ingested job description with %d chunks\n", len(chunks))
	return len(chunks), nil
}

// storeChunk persists the chunk row first, then tries to embed and index it.
// An embedding failure leaves the row without a vector id: the chunk exists
// but stays invisible to similarity search until re-indexed.
func (s *indexerService) storeChunk(ctx context.Context, documentID uuid.UUID, index int, text string, metadata map[string]interface{}) error {
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to encode chunk metadata: %w", err)
	}

	chunk := &models.DocumentChunk{
		ID:         uuid.New(),
		DocumentID: documentID,
		ChunkIndex: index,
		Text:       text,
		Metadata:   datatypes.JSON(metadataJSON),
	}

	if err := s.docRepo.CreateChunk(chunk); err != nil {
		return err
	}

	embedding := s.llmService.Embed(ctx, text)
	if len(embedding) == 0 {
		log.Printf("⚠️  Embedding unavailable for chunk %d of document %s, stored without vector\n", index, documentID)
		return nil
	}

	vectorID, err := s.vectorStore.Add(ctx, text, embedding, metadata)
	if err != nil {
		log.Printf("⚠️  Failed to index chunk %d of document %s: %v\n", index, documentID, err)
		return nil
	}

	if err := s.docRepo.SetChunkVectorID(chunk.ID, vectorID); err != nil {
		return err
	}

	return nil
}

// DeleteDocument implements IndexerService. Removes the relational document
// (chunks cascade) and its points in the vector store.
func (s *indexerService) DeleteDocument(ctx context.Context, documentID uuid.UUID) error {
	if err := s.vectorStore.DeleteByDocumentID(ctx, documentID.String()); err != nil {
		return err
	}

	return s.docRepo.Delete(documentID)
}

// ReindexChunks implements IndexerService. Picks up chunks whose embedding
// never made it into the vector store and retries them. Returns how many were
// recovered.
func (s *indexerService) ReindexChunks(ctx context.Context, limit int) (int, error) {
	chunks, err := s.docRepo.FindUnindexedChunks(limit)
	if err != nil {
		return 0, err
	}

	recovered := 0
	for _, chunk := range chunks {
		var metadata map[string]interface{}
		if len(chunk.Metadata) > 0 {
			if err := json.Unmarshal(chunk.Metadata, &metadata); err != nil {
				log.Printf("⚠️  Skipping chunk %s with unreadable metadata: %v\n", chunk.ID, err)
				continue
			}
		}

		embedding := s.llmService.Embed(ctx, chunk.Text)
		if len(embedding) == 0 {
			continue
		}

		vectorID, err := s.vectorStore.Add(ctx, chunk.Text, embedding, metadata)
		if err != nil {
			log.Printf("⚠️  Failed to re-index chunk %s: %v\n", chunk.ID, err)
			continue
		}

		if err := s.docRepo.SetChunkVectorID(chunk.ID, vectorID); err != nil {
			return recovered, err
		}
		recovered++
	}

	return recovered, nil
}
