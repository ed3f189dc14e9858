package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/octobadge/internal/common"
	"github.com/Veraticus/octobadge/internal/model"
)

const (
	anthropicBaseURL      = "https://api.anthropic.com"
	anthropicVersion      = "2023-06-01"
	defaultAnthropicModel = "claude-sonnet-4-20250514"
)

// AnthropicProvider implements Provider with the Anthropic Messages API.
// It has no web search or image generation: grounded search answers from the
// model alone with no sources, and image concepts are unsupported.
type AnthropicProvider struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	fastModel      string
	reasoningModel string
	temperature    float64
	maxTokens      int
	thinkingBudget int
}

// NewAnthropicProvider creates a new Anthropic API provider.
func NewAnthropicProvider(cfg Config) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: anthropic API key is required", common.ErrMissingConfig)
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = anthropicBaseURL
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	// Gemini model names are meaningless here.
	fast := cfg.FastModel
	if fast == "" || strings.HasPrefix(fast, "gemini") {
		fast = defaultAnthropicModel
	}
	reasoning := cfg.ReasoningModel
	if reasoning == "" || strings.HasPrefix(reasoning, "gemini") {
		reasoning = defaultAnthropicModel
	}

	return &AnthropicProvider{
		apiKey:         cfg.APIKey,
		baseURL:        baseURL,
		fastModel:      fast,
		reasoningModel: reasoning,
		temperature:    temperature,
		maxTokens:      maxTokens,
		thinkingBudget: cfg.ThinkingBudget,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// Name returns the provider name.
func (c *AnthropicProvider) Name() string { return "anthropic" }

// Close releases idle connections.
func (c *AnthropicProvider) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// ShortAnswer sends a brief question to the fast model.
func (c *AnthropicProvider) ShortAnswer(ctx context.Context, prompt string) (string, error) {
	return c.send(ctx, anthropicRequest{
		Model:       c.fastModel,
		MaxTokens:   c.maxTokens,
		Temperature: &c.temperature,
		System:      fastSystemInstruction,
		Messages:    []anthropicMessage{{Role: "user", Content: prompt}},
	})
}

// DeepReasoning asks the reasoning model with extended thinking enabled.
func (c *AnthropicProvider) DeepReasoning(ctx context.Context, prompt string) (string, error) {
	req := anthropicRequest{
		Model:     c.reasoningModel,
		MaxTokens: c.maxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	}
	// Extended thinking requires max_tokens above the budget and no temperature.
	if c.thinkingBudget >= 1024 {
		req.Thinking = &anthropicThinking{Type: "enabled", BudgetTokens: c.thinkingBudget}
		req.MaxTokens = c.thinkingBudget + c.maxTokens
	} else {
		req.Temperature = &c.temperature
	}
	return c.send(ctx, req)
}

// GroundedSearch answers without web grounding; Sources is always empty.
func (c *AnthropicProvider) GroundedSearch(ctx context.Context, prompt string) (SearchResult, error) {
	text, err := c.send(ctx, anthropicRequest{
		Model:       c.fastModel,
		MaxTokens:   c.maxTokens,
		Temperature: &c.temperature,
		Messages:    []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Text: text, Sources: []model.Source{}}, nil
}

// ImageConcept is not supported by Anthropic.
func (c *AnthropicProvider) ImageConcept(_ context.Context, _ string, _ model.ResolutionTier) (string, error) {
	return "", fmt.Errorf("anthropic image concept: %w", common.ErrUnsupported)
}

type anthropicRequest struct {
	Temperature *float64           `json:"temperature,omitempty"`
	Thinking    *anthropicThinking `json:"thinking,omitempty"`
	Model       string             `json:"model"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	MaxTokens   int                `json:"max_tokens"`
}

type anthropicThinking struct {
	Type         string `json:"type"`
	BudgetTokens int    `json:"budget_tokens"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// anthropicResponse represents the Anthropic API response structure.
type anthropicResponse struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Role       string `json:"role"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
	Content    []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (c *AnthropicProvider) send(ctx context.Context, request anthropicRequest) (string, error) {
	jsonBody, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &common.RetryableError{Err: fmt.Errorf("request failed: %w", err), Retryable: ctx.Err() == nil}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: anthropic API status %d", common.ErrRateLimit, resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError:
		return "", &common.RetryableError{
			Err:       fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, string(body)),
			Retryable: true,
		}
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response anthropicResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	var text strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return text.String(), nil
}
