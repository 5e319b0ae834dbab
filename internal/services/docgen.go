package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"campusmatch/internal/models"
	"campusmatch/internal/repositories"
)

type DocumentGenerator interface {
	GeneratePersonalizedDocument(ctx context.Context, jobID uuid.UUID, studentEmail, company, role string) (*models.GeneratedDocument, error)
	AnalyzeMatch(ctx context.Context, studentEmail, company, role string) (*MatchAnalysis, error)
}

type MatchAnalysis struct {
	MatchScore       float64  `json:"match_score"`
	Strengths        []string `json:"strengths"`
	ImprovementAreas []string `json:"improvement_areas"`
	Assessment       string   `json:"assessment"`
}

type documentGenerator struct {
	jobRepo       repositories.JobRepository
	retrieval     RetrievalService
	llmService    LLMService
	promptBuilder *PromptBuilder
	maxTokens     int
}

func NewDocumentGenerator(
	jobRepo repositories.JobRepository,
	retrieval RetrievalService,
	llmService LLMService,
	maxTokens int,
) DocumentGenerator {
	return &documentGenerator{
		jobRepo:       jobRepo,
		retrieval:     retrieval,
		llmService:    llmService,
		promptBuilder: NewPromptBuilder(),
		maxTokens:     maxTokens,
	}
}

// GeneratePersonalizedDocument implements DocumentGenerator. Retrieves the
// student's record and the job-description context, prompts the model and
// persists the generated markdown against the job.
func (g *documentGenerator) GeneratePersonalizedDocument(ctx context.Context, jobID uuid.UUID, studentEmail, company, role string) (*models.GeneratedDocument, error) {
	record, err := g.retrieval.GetStudentRecord(ctx, studentEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve student record: %w", err)
	}

	jobDescription, err := g.retrieval.GetJobDescriptionContext(ctx, company, role)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve job description: %w", err)
	}

	studentName := recordString(record, "full name of the student", "Name", "name")
	if studentName == "" {
		studentName = "Student"
	}

	prompt := g.promptBuilder.BuildDocumentPrompt(studentName, FormatStudentData(record), jobDescription)

	log.Printf("🤖 Generating personalized document for %s (%s at %s)\n", studentEmail, role, company)

	generated, err := g.llmService.Generate(ctx, prompt, g.promptBuilder.DocumentSystemPrompt(), g.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to generate document: %w", err)
	}

	header := fmt.Sprintf(`---
student_name: %s
student_email: %s
company: %s
role: %s
generated_date: %s
---

`, studentName, studentEmail, company, role, time.Now().Format("2006-01-02"))

	doc := &models.GeneratedDocument{
		ID:           uuid.New(),
		JobID:        jobID,
		StudentEmail: studentEmail,
		Company:      company,
		Role:         role,
		Content:      header + generated,
		GeneratedAt:  time.Now(),
	}

	if err := g.jobRepo.SaveGeneratedDocument(doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// AnalyzeMatch implements DocumentGenerator. Asks the model for a structured
// match analysis; an unparseable response degrades to a zeroed analysis
// rather than an error.
func (g *documentGenerator) AnalyzeMatch(ctx context.Context, studentEmail, company, role string) (*MatchAnalysis, error) {
	record, err := g.retrieval.GetStudentRecord(ctx, studentEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve student record: %w", err)
	}

	jobDescription, err := g.retrieval.GetJobDescriptionContext(ctx, company, role)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve job description: %w", err)
	}

	prompt := g.promptBuilder.BuildAnalysisPrompt(FormatStudentData(record), jobDescription)

	response, err := g.llmService.Generate(ctx, prompt, g.promptBuilder.AnalysisSystemPrompt(), 1024)
	if err != nil {
		return nil, fmt.Errorf("failed to generate analysis: %w", err)
	}

	var analysis MatchAnalysis
	if err := json.Unmarshal([]byte(extractJSON(response)), &analysis); err != nil {
		log.Printf("⚠️  Failed to parse analysis response: %v\n", err)
		return &MatchAnalysis{
			ImprovementAreas: []string{"Error analyzing match"},
			Assessment:       "Error analyzing match",
		}, nil
	}

	return &analysis, nil
}

func recordString(record map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if value, ok := record[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}
