package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(generateResponse{Response: "  hello world \n", Done: true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-model", 5*time.Second)
	out, err := client.Generate(context.Background(), "say hello", Options{Temperature: 0.7, TopP: 0.9, MaxTokens: 500})

	require.NoError(t, err)
	assert.Equal(t, "hello world", out)
	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, "say hello", got.Prompt)
	assert.False(t, got.Stream)
	assert.Equal(t, 0.7, got.Options.Temperature)
	assert.Equal(t, 0.9, got.Options.TopP)
	assert.Equal(t, 500, got.Options.NumPredict)
}

func TestGenerateHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-model", 5*time.Second)
	_, err := client.Generate(context.Background(), "p", ChatOptions)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ollama API error [500]")
}

func TestGenerateModelError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Error: "out of memory"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-model", 5*time.Second)
	_, err := client.Generate(context.Background(), "p", ChatOptions)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of memory")
}

func TestGenerateConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, "test-model", time.Second)
	_, err := client.Generate(context.Background(), "p", ChatOptions)
	require.Error(t, err)
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		json.NewEncoder(w).Encode(tagsResponse{Models: []Model{
			{Name: "deepseek-r1:1.5b", Size: 1117322768},
			{Name: "llama3:8b"},
		}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "deepseek-r1:1.5b", 5*time.Second)
	models, err := client.ListModels(context.Background())

	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "deepseek-r1:1.5b", models[0].Name)
}

func TestStripReasoning(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no block", "plain answer", "plain answer"},
		{"single block", "<think>reasoning here</think>the answer", "the answer"},
		{"multiline block", "<think>line one\nline two</think>\nanswer", "answer"},
		{"multiple blocks", "<think>a</think>x<think>b</think>y", "xy"},
		{"unterminated block", "prefix <think>never closed", "prefix"},
		{"only block", "<think>nothing else</think>", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripReasoning(tt.in))
		})
	}
}
