package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

type LLMService interface {
	Generate(ctx context.Context, prompt, systemPrompt string, maxTokens int) (string, error)
	Embed(ctx context.Context, text string) []float32
	ListModels(ctx context.Context) ([]string, error)
}

type ollamaService struct {
	baseURL       string
	model         string
	fallbackModel string
	embedModel    string
	httpClient    *http.Client
}

func NewOllamaService(baseURL, model, fallbackModel, embedModel string, timeout time.Duration) LLMService {
	return &ollamaService{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		model:         model,
		fallbackModel: fallbackModel,
		embedModel:    embedModel,
		httpClient:    &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	System  string                 `json:"system,omitempty"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Generate implements LLMService. Tries the primary model first and retries
// the same request once against the fallback model on any transport or
// backend error. The primary stays the default: the fallback only ever
// serves the current request.
func (o *ollamaService) Generate(ctx context.Context, prompt, systemPrompt string, maxTokens int) (string, error) {
	text, err := o.generateWithModel(ctx, o.model, prompt, systemPrompt, maxTokens)
	if err == nil {
		return text, nil
	}

	if o.fallbackModel == "" || o.fallbackModel == o.model {
		return "", fmt.Errorf("generation failed with model %s: %w", o.model, err)
	}

	log.Printf("⚠️  Model %s failed (%v), retrying with fallback %s\n", o.model, err, o.fallbackModel)

	text, fallbackErr := o.generateWithModel(ctx, o.fallbackModel, prompt, systemPrompt, maxTokens)
	if fallbackErr != nil {
		return "", fmt.Errorf("generation failed with model %s and fallback %s: %w", o.model, o.fallbackModel, fallbackErr)
	}

	return text, nil
}

func (o *ollamaService) generateWithModel(ctx context.Context, model, prompt, systemPrompt string, maxTokens int) (string, error) {
	payload := generateRequest{
		Model:  model,
		Prompt: prompt,
		System: systemPrompt,
		Stream: false,
		Options: map[string]interface{}{
			"num_predict": maxTokens,
			"temperature": 0.7,
			"top_p":       0.9,
			"top_k":       40,
		},
	}

	var result generateResponse
	if err := o.post(ctx, "/api/generate", payload, &result); err != nil {
		return "", err
	}

	return result.Response, nil
}

// Embed implements LLMService. No fallback model: a failed call returns an
// empty vector and the caller decides how to degrade.
func (o *ollamaService) Embed(ctx context.Context, text string) []float32 {
	payload := embedRequest{
		Model:  o.embedModel,
		Prompt: text,
	}

	var result embedResponse
	if err := o.post(ctx, "/api/embeddings", payload, &result); err != nil {
		log.Printf("⚠️  Failed to generate embedding: %v\n", err)
		return nil
	}

	return result.Embedding
}

// ListModels implements LLMService.
func (o *ollamaService) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	var result tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode model list: %w", err)
	}

	names := make([]string, 0, len(result.Models))
	for _, model := range result.Models {
		names = append(names, model.Name)
	}

	return names, nil
}

func (o *ollamaService) post(ctx context.Context, path string, payload, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
