package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"campusmatch/internal/models"
)

type RetrievalService interface {
	Search(ctx context.Context, query string, k int, filter map[string]string) ([]SearchResult, error)
	GetStudentRecord(ctx context.Context, email string) (map[string]interface{}, error)
	GetJobDescriptionContext(ctx context.Context, company, role string) (string, error)
}

type retrievalService struct {
	llmService  LLMService
	vectorStore VectorStore
}

func NewRetrievalService(llmService LLMService, vectorStore VectorStore) RetrievalService {
	return &retrievalService{
		llmService:  llmService,
		vectorStore: vectorStore,
	}
}

// Search implements RetrievalService.
func (r *retrievalService) Search(ctx context.Context, query string, k int, filter map[string]string) ([]SearchResult, error) {
	embedding := r.llmService.Embed(ctx, query)
	if len(embedding) == 0 {
		return nil, fmt.Errorf("failed to embed query")
	}

	results, err := r.vectorStore.Search(ctx, embedding, k, filter)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results, nil
}

// GetStudentRecord implements RetrievalService. The student table is indexed
// one record per chunk, so k=1 with an exact email filter returns the single
// authoritative record. An empty result means the record does not exist and
// the caller must fail that unit of work.
func (r *retrievalService) GetStudentRecord(ctx context.Context, email string) (map[string]interface{}, error) {
	results, err := r.Search(ctx, fmt.Sprintf("email: %s", email), 1, map[string]string{
		"document_type": string(models.DocTypeStudentData),
		"email":         email,
	})
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no student record found for email: %s", email)
	}

	return results[0].Metadata, nil
}

// GetJobDescriptionContext implements RetrievalService. Concatenates the
// best-matching chunks in descending score order, blank-line separated, to
// rebuild enough of the job description for generation.
func (r *retrievalService) GetJobDescriptionContext(ctx context.Context, company, role string) (string, error) {
	results, err := r.Search(ctx, fmt.Sprintf("company: %s role: %s", company, role), 5, map[string]string{
		"document_type": string(models.DocTypeJobDescription),
		"company":       company,
		"role":          role,
	})
	if err != nil {
		return "", err
	}

	if len(results) == 0 {
		return "", fmt.Errorf("no job description found for company: %s, role: %s", company, role)
	}

	parts := make([]string, 0, len(results))
	for _, result := range results {
		parts = append(parts, strings.TrimSpace(result.Text))
	}

	return strings.Join(parts, "\n\n"), nil
}
