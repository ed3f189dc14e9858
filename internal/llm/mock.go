package llm

import (
	"context"
	"sync"

	"github.com/Veraticus/octobadge/internal/model"
)

// MockProvider is a mock implementation of Provider for testing.
type MockProvider struct {
	ShortAnswerFn    func(ctx context.Context, prompt string) (string, error)
	DeepReasoningFn  func(ctx context.Context, prompt string) (string, error)
	GroundedSearchFn func(ctx context.Context, prompt string) (SearchResult, error)
	ImageConceptFn   func(ctx context.Context, prompt string, tier model.ResolutionTier) (string, error)

	// Call tracking
	ShortAnswerCalls    []string
	DeepReasoningCalls  []string
	GroundedSearchCalls []string
	ImageConceptCalls   []string
	Closed              bool

	mu sync.Mutex
}

// NewMockProvider creates a new mock provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Name implements Provider.Name.
func (m *MockProvider) Name() string { return "mock" }

// Close implements Provider.Close.
func (m *MockProvider) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// ShortAnswer implements Provider.ShortAnswer.
func (m *MockProvider) ShortAnswer(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.ShortAnswerCalls = append(m.ShortAnswerCalls, prompt)
	m.mu.Unlock()

	if m.ShortAnswerFn != nil {
		return m.ShortAnswerFn(ctx, prompt)
	}
	return "short: " + prompt, nil
}

// DeepReasoning implements Provider.DeepReasoning.
func (m *MockProvider) DeepReasoning(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.DeepReasoningCalls = append(m.DeepReasoningCalls, prompt)
	m.mu.Unlock()

	if m.DeepReasoningFn != nil {
		return m.DeepReasoningFn(ctx, prompt)
	}
	return "reasoned: " + prompt, nil
}

// GroundedSearch implements Provider.GroundedSearch.
func (m *MockProvider) GroundedSearch(ctx context.Context, prompt string) (SearchResult, error) {
	m.mu.Lock()
	m.GroundedSearchCalls = append(m.GroundedSearchCalls, prompt)
	m.mu.Unlock()

	if m.GroundedSearchFn != nil {
		return m.GroundedSearchFn(ctx, prompt)
	}
	return SearchResult{Text: "searched: " + prompt, Sources: []model.Source{}}, nil
}

// ImageConcept implements Provider.ImageConcept.
func (m *MockProvider) ImageConcept(ctx context.Context, prompt string, tier model.ResolutionTier) (string, error) {
	m.mu.Lock()
	m.ImageConceptCalls = append(m.ImageConceptCalls, prompt)
	m.mu.Unlock()

	if m.ImageConceptFn != nil {
		return m.ImageConceptFn(ctx, prompt, tier)
	}
	return "data:image/png;base64,AAAA", nil
}

// MockAssistant is a mock implementation of Assistant for testing.
type MockAssistant struct {
	ShortAnswerFn    func(ctx context.Context, prompt string) string
	DeepReasoningFn  func(ctx context.Context, prompt string) string
	GroundedSearchFn func(ctx context.Context, prompt string) SearchResult
	ImageConceptFn   func(ctx context.Context, prompt string, tier model.ResolutionTier) (string, bool)

	// Call tracking
	ShortAnswerCalls    []string
	DeepReasoningCalls  []string
	GroundedSearchCalls []string
	ImageConceptCalls   []string
	ImageTiers          []model.ResolutionTier

	mu sync.Mutex
}

// NewMockAssistant creates a new mock assistant.
func NewMockAssistant() *MockAssistant {
	return &MockAssistant{}
}

// ShortAnswer implements Assistant.ShortAnswer.
func (m *MockAssistant) ShortAnswer(ctx context.Context, prompt string) string {
	m.mu.Lock()
	m.ShortAnswerCalls = append(m.ShortAnswerCalls, prompt)
	m.mu.Unlock()

	if m.ShortAnswerFn != nil {
		return m.ShortAnswerFn(ctx, prompt)
	}
	return "short: " + prompt
}

// DeepReasoning implements Assistant.DeepReasoning.
func (m *MockAssistant) DeepReasoning(ctx context.Context, prompt string) string {
	m.mu.Lock()
	m.DeepReasoningCalls = append(m.DeepReasoningCalls, prompt)
	m.mu.Unlock()

	if m.DeepReasoningFn != nil {
		return m.DeepReasoningFn(ctx, prompt)
	}
	return "reasoned: " + prompt
}

// GroundedSearch implements Assistant.GroundedSearch.
func (m *MockAssistant) GroundedSearch(ctx context.Context, prompt string) SearchResult {
	m.mu.Lock()
	m.GroundedSearchCalls = append(m.GroundedSearchCalls, prompt)
	m.mu.Unlock()

	if m.GroundedSearchFn != nil {
		return m.GroundedSearchFn(ctx, prompt)
	}
	return SearchResult{Text: "searched: " + prompt, Sources: []model.Source{}}
}

// ImageConcept implements Assistant.ImageConcept.
func (m *MockAssistant) ImageConcept(ctx context.Context, prompt string, tier model.ResolutionTier) (string, bool) {
	m.mu.Lock()
	m.ImageConceptCalls = append(m.ImageConceptCalls, prompt)
	m.ImageTiers = append(m.ImageTiers, tier)
	m.mu.Unlock()

	if m.ImageConceptFn != nil {
		return m.ImageConceptFn(ctx, prompt, tier)
	}
	return "data:image/png;base64,AAAA", true
}

// Calls returns the number of calls made to each operation.
func (m *MockAssistant) Calls() (short, reasoning, search, image int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ShortAnswerCalls), len(m.DeepReasoningCalls), len(m.GroundedSearchCalls), len(m.ImageConceptCalls)
}
