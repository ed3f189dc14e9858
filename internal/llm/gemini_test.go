package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Veraticus/octobadge/internal/common"
	"github.com/Veraticus/octobadge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type recordedRequest struct {
	path   string
	apiKey string
	body   string
}

type fakeGemini struct {
	responses map[string]any
	requests  []recordedRequest
	mu        sync.Mutex
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{path: r.URL.Path, apiKey: r.Header.Get("x-goog-api-key"), body: string(body)})
	f.mu.Unlock()

	for model, resp := range f.responses {
		if strings.Contains(r.URL.Path, "/models/"+model+":generateContent") {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"error":{"code":404,"message":"model not found","status":"NOT_FOUND"}}`))
}

func (f *fakeGemini) last() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func textResponse(text string) map[string]any {
	return map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	}
}

func newTestGemini(t *testing.T, fake *fakeGemini) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), Config{
		APIKey:         "test-key",
		BaseURL:        server.URL,
		FastModel:      "fast-model",
		ReasoningModel: "reasoning-model",
		SearchModel:    "search-model",
		ImageModel:     "image-model",
		ThinkingBudget: 1024,
	})
	require.NoError(t, err)
	return p
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestGeminiProvider_ShortAnswer(t *testing.T) {
	fake := &fakeGemini{responses: map[string]any{"fast-model": textResponse("Starstruck needs 16 stars.")}}
	p := newTestGemini(t, fake)

	text, err := p.ShortAnswer(context.Background(), "starstruck?")
	require.NoError(t, err)
	assert.Equal(t, "Starstruck needs 16 stars.", text)

	req := fake.last()
	assert.Equal(t, "test-key", req.apiKey)
	assert.Contains(t, req.body, fastSystemInstruction)
	assert.Contains(t, req.body, "starstruck?")
}

func TestGeminiProvider_DeepReasoning(t *testing.T) {
	fake := &fakeGemini{responses: map[string]any{"reasoning-model": textResponse("1. Ship small PRs.")}}
	p := newTestGemini(t, fake)

	text, err := p.DeepReasoning(context.Background(), "plan for pull shark")
	require.NoError(t, err)
	assert.Equal(t, "1. Ship small PRs.", text)
	assert.Contains(t, fake.last().body, `"thinkingBudget":1024`)
}

func TestGeminiProvider_GroundedSearch(t *testing.T) {
	fake := &fakeGemini{responses: map[string]any{
		"search-model": map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"role":  "model",
						"parts": []any{map[string]any{"text": "GitHub retired Mars 2020."}},
					},
					"groundingMetadata": map[string]any{
						"groundingChunks": []any{
							map[string]any{"web": map[string]any{"uri": "https://github.blog/badges", "title": "GitHub Blog"}},
							map[string]any{"retrievedContext": map[string]any{"uri": "gs://ignored"}},
							map[string]any{"web": map[string]any{"uri": "https://docs.github.com/achievements", "title": "Docs"}},
						},
					},
				},
			},
		},
	}}
	p := newTestGemini(t, fake)

	result, err := p.GroundedSearch(context.Background(), "what is new")
	require.NoError(t, err)

	assert.Equal(t, "GitHub retired Mars 2020.", result.Text)
	assert.Equal(t, []model.Source{
		{Title: "GitHub Blog", URI: "https://github.blog/badges"},
		{Title: "Docs", URI: "https://docs.github.com/achievements"},
	}, result.Sources)
	assert.Contains(t, fake.last().body, "googleSearch")
}

func TestGeminiProvider_GroundedSearchWithoutMetadata(t *testing.T) {
	fake := &fakeGemini{responses: map[string]any{"search-model": textResponse("Nothing cited.")}}
	p := newTestGemini(t, fake)

	result, err := p.GroundedSearch(context.Background(), "what is new")
	require.NoError(t, err)
	assert.NotNil(t, result.Sources)
	assert.Empty(t, result.Sources)
}

func TestGeminiProvider_ImageConcept(t *testing.T) {
	fake := &fakeGemini{responses: map[string]any{
		"image-model": map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"role": "model",
						"parts": []any{
							map[string]any{"text": "Here you go"},
							map[string]any{"inlineData": map[string]any{"mimeType": "image/png", "data": "aGVsbG8="}},
						},
					},
				},
			},
		},
	}}
	p := newTestGemini(t, fake)

	ref, err := p.ImageConcept(context.Background(), "a shark wearing sunglasses", model.Resolution2K)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", ref)

	body := fake.last().body
	assert.Contains(t, body, "Design a high quality, 3D glossy GitHub profile badge for: a shark wearing sunglasses.")
	assert.Contains(t, body, `"aspectRatio":"1:1"`)
	assert.Contains(t, body, `"imageSize":"2K"`)
}

func TestGeminiProvider_ImageConceptWithoutImage(t *testing.T) {
	fake := &fakeGemini{responses: map[string]any{"image-model": textResponse("I can only describe it.")}}
	p := newTestGemini(t, fake)

	_, err := p.ImageConcept(context.Background(), "badge", model.Resolution1K)
	require.Error(t, err)
}

func TestGeminiProvider_APIError(t *testing.T) {
	fake := &fakeGemini{responses: map[string]any{}}
	p := newTestGemini(t, fake)

	_, err := p.ShortAnswer(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini short answer failed")
}

func TestClassifyGeminiError(t *testing.T) {
	tests := []struct {
		err           error
		name          string
		wantRetryable bool
		wantRateLimit bool
	}{
		{name: "quota", err: genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED"}, wantRetryable: true, wantRateLimit: true},
		{name: "server error", err: genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"}, wantRetryable: true},
		{name: "bad request", err: genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"}},
		{name: "plain error", err: errors.New("dial tcp: refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyGeminiError("op", tt.err)
			assert.Equal(t, tt.wantRetryable, common.IsRetryable(err))
			assert.Equal(t, tt.wantRateLimit, errors.Is(err, common.ErrRateLimit))
		})
	}
}

func TestDataURI(t *testing.T) {
	assert.Equal(t, "data:image/jpeg;base64,AQID", dataURI("image/jpeg", []byte{1, 2, 3}))
	assert.Equal(t, "data:image/png;base64,AQID", dataURI("", []byte{1, 2, 3}))
}
