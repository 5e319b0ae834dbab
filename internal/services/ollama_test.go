package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOllama simulates the generation backend. It records which model every
// generate request asked for and can fail selected models.
type fakeOllama struct {
	mu          sync.Mutex
	modelsAsked []string
	failing     map[string]bool
	embedFails  bool
}

func (f *fakeOllama) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		f.modelsAsked = append(f.modelsAsked, req.Model)
		failing := f.failing[req.Model]
		f.mu.Unlock()

		if failing {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"response":"from %s"}`, req.Model)
	})

	mux.HandleFunc("/api/embeddings", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		embedFails := f.embedFails
		f.mu.Unlock()

		if embedFails {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"embedding":[0.1,0.2,0.3]}`)
	})

	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"models":[{"name":"phi:mini"},{"name":"mistral:latest"}]}`)
	})

	return mux
}

func (f *fakeOllama) asked() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.modelsAsked...)
}

func (f *fakeOllama) setFailing(model string, failing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing == nil {
		f.failing = map[string]bool{}
	}
	f.failing[model] = failing
}

func TestGenerateUsesPrimaryModel(t *testing.T) {
	backend := &fakeOllama{}
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	svc := NewOllamaService(server.URL, "primary", "backup", "embed", 5*time.Second)

	text, err := svc.Generate(context.Background(), "prompt", "system", 256)
	require.NoError(t, err)
	assert.Equal(t, "from primary", text)
	assert.Equal(t, []string{"primary"}, backend.asked())
}

func TestGenerateFallsBackThenReturnsToPrimary(t *testing.T) {
	backend := &fakeOllama{}
	backend.setFailing("primary", true)
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	svc := NewOllamaService(server.URL, "primary", "backup", "embed", 5*time.Second)

	text, err := svc.Generate(context.Background(), "prompt", "system", 256)
	require.NoError(t, err)
	assert.Equal(t, "from backup", text)
	assert.Equal(t, []string{"primary", "backup"}, backend.asked())

	// The fallback only served the failed call. Once the primary recovers,
	// the next call goes to it directly.
	backend.setFailing("primary", false)

	text, err = svc.Generate(context.Background(), "prompt", "system", 256)
	require.NoError(t, err)
	assert.Equal(t, "from primary", text)
	assert.Equal(t, []string{"primary", "backup", "primary"}, backend.asked())
}

func TestGenerateErrorsWhenBothModelsFail(t *testing.T) {
	backend := &fakeOllama{}
	backend.setFailing("primary", true)
	backend.setFailing("backup", true)
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	svc := NewOllamaService(server.URL, "primary", "backup", "embed", 5*time.Second)

	_, err := svc.Generate(context.Background(), "prompt", "system", 256)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backup")
}

func TestGenerateSkipsFallbackWhenNotConfigured(t *testing.T) {
	backend := &fakeOllama{}
	backend.setFailing("primary", true)
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	svc := NewOllamaService(server.URL, "primary", "", "embed", 5*time.Second)

	_, err := svc.Generate(context.Background(), "prompt", "system", 256)
	require.Error(t, err)
	assert.Equal(t, []string{"primary"}, backend.asked())
}

func TestEmbedReturnsVector(t *testing.T) {
	backend := &fakeOllama{}
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	svc := NewOllamaService(server.URL, "primary", "backup", "embed", 5*time.Second)

	vector := svc.Embed(context.Background(), "some text")
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
}

func TestEmbedDegradesToEmptyOnFailure(t *testing.T) {
	backend := &fakeOllama{embedFails: true}
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	svc := NewOllamaService(server.URL, "primary", "backup", "embed", 5*time.Second)

	assert.Empty(t, svc.Embed(context.Background(), "some text"))
}

func TestListModels(t *testing.T) {
	backend := &fakeOllama{}
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	svc := NewOllamaService(server.URL, "primary", "backup", "embed", 5*time.Second)

	models, err := svc.ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"phi:mini", "mistral:latest"}, models)
}

func TestListModelsBackendDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := NewOllamaService(server.URL, "primary", "backup", "embed", 5*time.Second)

	_, err := svc.ListModels(context.Background())
	assert.Error(t, err)
}
