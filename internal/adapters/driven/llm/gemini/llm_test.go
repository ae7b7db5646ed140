package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req generateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "revenue")

		resp := generateContentResponse{}
		resp.Candidates = append(resp.Candidates, struct {
			Content struct {
				Parts []part `json:"parts"`
			} `json:"content"`
		}{})
		resp.Candidates[0].Content.Parts = []part{
			{Text: "Net revenue was "},
			{Text: "$383.3 billion.\n"},
		}
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	defer server.Close()

	svc, err := NewLLMService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	answer, err := svc.Generate(context.Background(), "What was the revenue?")
	require.NoError(t, err)
	assert.Equal(t, "Net revenue was $383.3 billion.", answer)
}

func TestGenerate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)) //nolint:errcheck
	}))
	defer server.Close()

	svc, err := NewLLMService(Config{APIKey: "bad-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "question")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGenerate_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"candidates":[]}`)) //nolint:errcheck
	}))
	defer server.Close()

	svc, err := NewLLMService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "question")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no completion")
}
