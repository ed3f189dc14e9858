package llm

import (
	"context"
	"time"

	"github.com/Veraticus/octobadge/internal/model"
)

// Provider defines the interface for generative backends. Every method may
// fail; callers that need total operations wrap a Provider with NewAssistant.
type Provider interface {
	ShortAnswer(ctx context.Context, prompt string) (string, error)
	DeepReasoning(ctx context.Context, prompt string) (string, error)
	GroundedSearch(ctx context.Context, prompt string) (SearchResult, error)
	// ImageConcept returns an image reference, typically a data URI.
	ImageConcept(ctx context.Context, prompt string, tier model.ResolutionTier) (string, error)
	Name() string
	Close() error
}

// Assistant is the total form of Provider consumed by the conversation.
// Failures come back as fallback text, or ok=false for images.
type Assistant interface {
	ShortAnswer(ctx context.Context, prompt string) string
	DeepReasoning(ctx context.Context, prompt string) string
	GroundedSearch(ctx context.Context, prompt string) SearchResult
	ImageConcept(ctx context.Context, prompt string, tier model.ResolutionTier) (ref string, ok bool)
}

// SearchResult is a web-grounded answer and the pages it cites.
type SearchResult struct {
	Text    string
	Sources []model.Source
}

// Config holds provider and wrapper configuration.
type Config struct {
	Provider       string
	APIKey         string
	BaseURL        string
	FastModel      string
	ReasoningModel string
	SearchModel    string
	ImageModel     string
	ThinkingBudget int
	MaxTokens      int
	Temperature    float64
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	CacheTTL       time.Duration
	CacheSize      int
	RateLimit      int // requests per minute
}

const (
	fastSystemInstruction = "You are a concise GitHub expert. Answer quickly and briefly."
	imagePromptTemplate   = "Design a high quality, 3D glossy GitHub profile badge for: %s. Minimalist, hexagon or circular shape."
)

// Fallback texts returned by the Assistant wrapper. Each operation has one
// for a failed call and one for an empty answer.
const (
	FastFailureText      = "Sorry, I couldn't fetch a fast response."
	FastEmptyText        = "No response generated."
	ReasoningFailureText = "Complex reasoning failed. Please try again."
	ReasoningEmptyText   = "I thought about it, but couldn't generate an answer."
	SearchFailureText    = "Search failed."
	SearchEmptyText      = "No grounded info found."
)
