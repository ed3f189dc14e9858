package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Veraticus/octobadge/internal/common"
	"github.com/Veraticus/octobadge/internal/model"
	"google.golang.org/genai"
)

// Default Gemini models per operation.
const (
	DefaultFastModel      = "gemini-2.5-flash-lite-latest"
	DefaultReasoningModel = "gemini-3-pro-preview"
	DefaultSearchModel    = "gemini-2.5-flash"
	DefaultImageModel     = "gemini-3-pro-image-preview"
	DefaultThinkingBudget = 32768
)

// GeminiProvider implements Provider with the Gemini API. Each operation
// uses its own model.
type GeminiProvider struct {
	client         *genai.Client
	logger         *slog.Logger
	fastModel      string
	reasoningModel string
	searchModel    string
	imageModel     string
	thinkingBudget int32
}

// NewGeminiProvider creates a Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg Config) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key is required", common.ErrMissingConfig)
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	budget := cfg.ThinkingBudget
	if budget <= 0 {
		budget = DefaultThinkingBudget
	}

	return &GeminiProvider{
		client:         client,
		logger:         slog.Default().With("component", "gemini"),
		fastModel:      orDefault(cfg.FastModel, DefaultFastModel),
		reasoningModel: orDefault(cfg.ReasoningModel, DefaultReasoningModel),
		searchModel:    orDefault(cfg.SearchModel, DefaultSearchModel),
		imageModel:     orDefault(cfg.ImageModel, DefaultImageModel),
		thinkingBudget: int32(budget), //nolint:gosec // budget is bounded by configuration
	}, nil
}

// Name returns the provider name.
func (g *GeminiProvider) Name() string { return "gemini" }

// Close releases provider resources.
func (g *GeminiProvider) Close() error { return nil }

// ShortAnswer answers quickly with the lightweight model.
func (g *GeminiProvider) ShortAnswer(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.fastModel, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(fastSystemInstruction, genai.RoleUser),
	})
	if err != nil {
		return "", classifyGeminiError("short answer", err)
	}
	return resp.Text(), nil
}

// DeepReasoning answers with the reasoning model and a thinking budget.
func (g *GeminiProvider) DeepReasoning(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.reasoningModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(g.thinkingBudget)},
	})
	if err != nil {
		return "", classifyGeminiError("deep reasoning", err)
	}
	return resp.Text(), nil
}

// GroundedSearch answers with Google Search grounding and returns the web
// pages the answer cites.
func (g *GeminiProvider) GroundedSearch(ctx context.Context, prompt string) (SearchResult, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.searchModel, genai.Text(prompt), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		return SearchResult{}, classifyGeminiError("grounded search", err)
	}

	result := SearchResult{Text: resp.Text(), Sources: []model.Source{}}
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return result, nil
	}
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		result.Sources = append(result.Sources, model.Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}

	g.logger.Debug("Grounded search complete", "sources", len(result.Sources))
	return result, nil
}

// ImageConcept renders a square badge concept and returns the first image
// part as a data URI.
func (g *GeminiProvider) ImageConcept(ctx context.Context, prompt string, tier model.ResolutionTier) (string, error) {
	if tier == "" {
		tier = model.Resolution1K
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.imageModel,
		genai.Text(fmt.Sprintf(imagePromptTemplate, prompt)),
		&genai.GenerateContentConfig{
			ImageConfig: &genai.ImageConfig{
				AspectRatio: "1:1",
				ImageSize:   string(tier),
			},
		})
	if err != nil {
		return "", classifyGeminiError("image concept", err)
	}

	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			return dataURI(part.InlineData.MIMEType, part.InlineData.Data), nil
		}
	}
	return "", errors.New("no image in response")
}

func dataURI(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// classifyGeminiError marks quota and server errors as retryable.
func classifyGeminiError(op string, err error) error {
	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr):
		code = apiErrPtr.Code
	}

	wrapped := fmt.Errorf("gemini %s failed: %w", op, err)
	switch {
	case code == http.StatusTooManyRequests:
		return &common.RetryableError{Err: fmt.Errorf("%w: %w", common.ErrRateLimit, wrapped), Retryable: true}
	case code >= http.StatusInternalServerError:
		return &common.RetryableError{Err: wrapped, Retryable: true}
	default:
		return wrapped
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
