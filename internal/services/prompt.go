package services

import (
	"fmt"
	"sort"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// DocumentSystemPrompt is the system instruction for personalized
// application documents.
func (pb *PromptBuilder) DocumentSystemPrompt() string {
	return `You are an expert career counselor and document creator.
Your task is to create a personalized document for a student applying for a job.
The document should be well-structured, professional, and tailored to the student's profile and the job description.
Format your response in Markdown with appropriate headings, bullet points, and sections.`
}

// BuildDocumentPrompt creates the user prompt for generating a personalized
// application document from the retrieved student record and job description.
func (pb *PromptBuilder) BuildDocumentPrompt(studentName, studentData, jobDescription string) string {
	return fmt.Sprintf(`# Student Information
%s

# Job Description
%s

Based on the student information and job description above, create a personalized document for %s applying for this position.
The document should include:
1. A personalized introduction
2. How the student's skills and experience match the job requirements
3. Suggestions for highlighting specific achievements or experiences
4. Any areas where the student might need additional preparation
5. A conclusion with next steps

Format the document in Markdown with clear sections and professional language.`,
		studentData, jobDescription, studentName)
}

// AnalysisSystemPrompt is the system instruction for match analysis.
func (pb *PromptBuilder) AnalysisSystemPrompt() string {
	return `You are an expert career counselor and job matching specialist.
Your task is to analyze how well a student's profile matches a job description.
Provide a detailed analysis with a match score and specific strengths and areas for improvement.
Format your response as JSON.`
}

// BuildAnalysisPrompt creates the user prompt for the LLM match analysis of
// one student against the job description.
func (pb *PromptBuilder) BuildAnalysisPrompt(studentData, jobDescription string) string {
	return fmt.Sprintf(`# Student Information
%s

# Job Description
%s

Analyze how well this student matches the job description. Provide:
1. A match score (0-100)
2. Key strengths that match the job requirements
3. Areas where the student could improve or lacks required skills
4. Overall assessment

Format your response as JSON with the following structure:
{
  "match_score": 85,
  "strengths": ["strength1", "strength2"],
  "improvement_areas": ["area1", "area2"],
  "assessment": "Overall assessment text"
}`, studentData, jobDescription)
}

// FormatStudentData renders a retrieved student record for prompting,
// skipping the bookkeeping fields the index added.
func FormatStudentData(record map[string]interface{}) string {
	skip := map[string]bool{
		"document_id":   true,
		"document_type": true,
		"row_index":     true,
		"text":          true,
	}

	keys := make([]string, 0, len(record))
	for key := range record {
		if !skip[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var lines []string
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("- %s: %v", key, record[key]))
	}

	return strings.Join(lines, "\n")
}

// extractJSON pulls a JSON object or array out of text that might wrap it in
// markdown fences or commentary.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
