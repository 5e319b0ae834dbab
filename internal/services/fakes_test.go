package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"campusmatch/internal/models"
)

// In-memory fakes for the repository and backend interfaces, shared by the
// service tests.

type fakeJobRepo struct {
	mu          sync.Mutex
	jobs        map[uuid.UUID]*models.ProcessingJob
	results     map[uuid.UUID][]models.MatchResult
	generated   map[uuid.UUID][]models.GeneratedDocument
	progressLog []int
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{
		jobs:      make(map[uuid.UUID]*models.ProcessingJob),
		results:   make(map[uuid.UUID][]models.MatchResult),
		generated: make(map[uuid.UUID][]models.GeneratedDocument),
	}
}

func (f *fakeJobRepo) Create(job *models.ProcessingJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeJobRepo) FindByID(id uuid.UUID) (*models.ProcessingJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job not found")
	}
	copied := *job
	return &copied, nil
}

func (f *fakeJobRepo) UpdateStatus(id uuid.UUID, status models.JobStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return fmt.Errorf("job not found")
	}
	job.Status = status
	return nil
}

func (f *fakeJobRepo) IncrementProgress(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return fmt.Errorf("job not found")
	}
	if job.ProcessedStudents < job.TotalStudents {
		job.ProcessedStudents++
	}
	f.progressLog = append(f.progressLog, job.ProcessedStudents)
	return nil
}

func (f *fakeJobRepo) MarkCompleted(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return fmt.Errorf("job not found")
	}
	now := time.Now()
	job.Status = models.JobStatusCompleted
	job.CompletedAt = &now
	return nil
}

func (f *fakeJobRepo) MarkFailed(id uuid.UUID, errorMsg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return fmt.Errorf("job not found")
	}
	now := time.Now()
	job.Status = models.JobStatusFailed
	job.ErrorMessage = &errorMsg
	job.CompletedAt = &now
	return nil
}

func (f *fakeJobRepo) AppendResult(result *models.MatchResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[result.JobID] = append(f.results[result.JobID], *result)
	return nil
}

func (f *fakeJobRepo) FindResults(jobID uuid.UUID) ([]models.MatchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.MatchResult(nil), f.results[jobID]...), nil
}

func (f *fakeJobRepo) SaveGeneratedDocument(doc *models.GeneratedDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generated[doc.JobID] = append(f.generated[doc.JobID], *doc)
	return nil
}

func (f *fakeJobRepo) FindPendingJobs(limit int) ([]models.ProcessingJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var pending []models.ProcessingJob
	for _, job := range f.jobs {
		if job.Status == models.JobStatusCreated && len(pending) < limit {
			pending = append(pending, *job)
		}
	}
	return pending, nil
}

type fakeDocRepo struct {
	mu     sync.Mutex
	docs   map[uuid.UUID]*models.Document
	chunks map[uuid.UUID][]*models.DocumentChunk
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{
		docs:   make(map[uuid.UUID]*models.Document),
		chunks: make(map[uuid.UUID][]*models.DocumentChunk),
	}
}

func (f *fakeDocRepo) Create(document *models.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[document.ID] = document
	return nil
}

func (f *fakeDocRepo) FindByID(id uuid.UUID) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return nil, fmt.Errorf("document not found")
	}
	return doc, nil
}

func (f *fakeDocRepo) Delete(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, id)
	delete(f.chunks, id)
	return nil
}

func (f *fakeDocRepo) CreateChunk(chunk *models.DocumentChunk) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chunks[chunk.DocumentID] = append(f.chunks[chunk.DocumentID], chunk)
	return nil
}

func (f *fakeDocRepo) SetChunkVectorID(chunkID uuid.UUID, vectorID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, chunks := range f.chunks {
		for _, chunk := range chunks {
			if chunk.ID == chunkID {
				chunk.VectorID = &vectorID
				return nil
			}
		}
	}
	return fmt.Errorf("document chunk not found")
}

func (f *fakeDocRepo) FindChunksByDocumentID(documentID uuid.UUID) ([]models.DocumentChunk, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.DocumentChunk
	for _, chunk := range f.chunks[documentID] {
		out = append(out, *chunk)
	}
	return out, nil
}

func (f *fakeDocRepo) FindUnindexedChunks(limit int) ([]models.DocumentChunk, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.DocumentChunk
	for _, chunks := range f.chunks {
		for _, chunk := range chunks {
			if chunk.VectorID == nil && len(out) < limit {
				out = append(out, *chunk)
			}
		}
	}
	return out, nil
}

func (f *fakeDocRepo) AssembleText(documentID uuid.UUID) (string, error) {
	chunks, err := f.FindChunksByDocumentID(documentID)
	if err != nil {
		return "", err
	}
	text := ""
	for i, chunk := range chunks {
		if i > 0 {
			text += "\n\n"
		}
		text += chunk.Text
	}
	return text, nil
}

type fakeExtractor struct {
	records    []StudentRecord
	recordsErr error
	text       string
	textErr    error
}

func (f *fakeExtractor) ExtractText(filePath string, fileType string) (string, error) {
	return f.text, f.textErr
}

func (f *fakeExtractor) ParseStudentCSV(filePath string) ([]StudentRecord, error) {
	return f.records, f.recordsErr
}

type stubLLM struct {
	mu           sync.Mutex
	generateText string
	generateErr  error
	embedVector  []float32
}

func (s *stubLLM) Generate(ctx context.Context, prompt, systemPrompt string, maxTokens int) (string, error) {
	return s.generateText, s.generateErr
}

func (s *stubLLM) Embed(ctx context.Context, text string) []float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.embedVector
}

func (s *stubLLM) ListModels(ctx context.Context) ([]string, error) {
	return []string{"stub"}, nil
}

type addedPoint struct {
	text     string
	metadata map[string]interface{}
}

type stubVectorStore struct {
	mu            sync.Mutex
	added         []addedPoint
	addErr        error
	searchResults []SearchResult
	searchErr     error
	lastFilter    map[string]string
}

func (s *stubVectorStore) InitCollection() error {
	return nil
}

func (s *stubVectorStore) Add(ctx context.Context, text string, embedding []float32, metadata map[string]interface{}) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addErr != nil {
		return "", s.addErr
	}
	s.added = append(s.added, addedPoint{text: text, metadata: metadata})
	return fmt.Sprintf("point-%d", len(s.added)), nil
}

func (s *stubVectorStore) Search(ctx context.Context, embedding []float32, limit int, filter map[string]string) ([]SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFilter = filter
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	if limit < len(s.searchResults) {
		return s.searchResults[:limit], nil
	}
	return s.searchResults, nil
}

func (s *stubVectorStore) DeleteByDocumentID(ctx context.Context, documentID string) error {
	return nil
}

type stubRetrieval struct {
	record     map[string]interface{}
	recordErr  error
	jobContext string
	contextErr error
}

func (s *stubRetrieval) Search(ctx context.Context, query string, k int, filter map[string]string) ([]SearchResult, error) {
	return nil, nil
}

func (s *stubRetrieval) GetStudentRecord(ctx context.Context, email string) (map[string]interface{}, error) {
	return s.record, s.recordErr
}

func (s *stubRetrieval) GetJobDescriptionContext(ctx context.Context, company, role string) (string, error) {
	return s.jobContext, s.contextErr
}
