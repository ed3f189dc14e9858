package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/octobadge/internal/common"
	"github.com/Veraticus/octobadge/internal/model"
	"github.com/Veraticus/octobadge/internal/service"
	"golang.org/x/time/rate"
)

// FallbackAssistant makes a Provider total. Calls are rate limited and
// retried; short answers and searches are cached; every failure is logged and
// replaced by a fixed fallback.
type FallbackAssistant struct {
	provider  Provider
	limiter   *rate.Limiter
	cache     *responseCache
	logger    *slog.Logger
	retryOpts service.RetryOptions
}

var _ Assistant = (*FallbackAssistant)(nil)

// NewAssistant wraps provider using the wrapper settings in cfg.
func NewAssistant(provider Provider, cfg Config) (*FallbackAssistant, error) {
	cache, err := newResponseCache(cfg.CacheSize, cfg.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create response cache: %w", err)
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries + 1,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts <= 0 {
		retryOpts.MaxAttempts = 1
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &FallbackAssistant{
		provider:  provider,
		limiter:   newRateLimiter(cfg.RateLimit),
		cache:     cache,
		logger:    slog.Default().With("component", "assistant", "provider", provider.Name()),
		retryOpts: retryOpts,
	}, nil
}

// ShortAnswer returns a brief answer, or a fallback text.
func (a *FallbackAssistant) ShortAnswer(ctx context.Context, prompt string) string {
	key := cacheKey("short", prompt)
	if cached, ok := a.cache.get(key); ok {
		a.logger.Debug("cache hit", "op", "short_answer")
		return cached.Text
	}

	var text string
	err := a.call(ctx, func() error {
		var callErr error
		text, callErr = a.provider.ShortAnswer(ctx, prompt)
		return callErr
	})
	if err != nil {
		common.LogError(a.logger, err, "Short answer failed", common.Fields{"op": "short_answer"})
		return FastFailureText
	}
	if strings.TrimSpace(text) == "" {
		return FastEmptyText
	}

	a.cache.set(key, SearchResult{Text: text})
	return text
}

// DeepReasoning returns a considered answer, or a fallback text. Reasoning
// answers are not cached.
func (a *FallbackAssistant) DeepReasoning(ctx context.Context, prompt string) string {
	var text string
	err := a.call(ctx, func() error {
		var callErr error
		text, callErr = a.provider.DeepReasoning(ctx, prompt)
		return callErr
	})
	if err != nil {
		common.LogError(a.logger, err, "Deep reasoning failed", common.Fields{"op": "deep_reasoning"})
		return ReasoningFailureText
	}
	if strings.TrimSpace(text) == "" {
		return ReasoningEmptyText
	}
	return text
}

// GroundedSearch returns a web-grounded answer with its sources. On failure
// the text is a fallback and the source list is empty.
func (a *FallbackAssistant) GroundedSearch(ctx context.Context, prompt string) SearchResult {
	key := cacheKey("search", prompt)
	if cached, ok := a.cache.get(key); ok {
		a.logger.Debug("cache hit", "op", "grounded_search")
		return cloneResult(cached)
	}

	var result SearchResult
	err := a.call(ctx, func() error {
		var callErr error
		result, callErr = a.provider.GroundedSearch(ctx, prompt)
		return callErr
	})
	if err != nil {
		common.LogError(a.logger, err, "Grounded search failed", common.Fields{"op": "grounded_search"})
		return SearchResult{Text: SearchFailureText, Sources: []model.Source{}}
	}
	if result.Sources == nil {
		result.Sources = []model.Source{}
	}
	if strings.TrimSpace(result.Text) == "" {
		result.Text = SearchEmptyText
		return result
	}

	a.cache.set(key, cloneResult(result))
	return result
}

// ImageConcept returns an image reference, or ok=false when no image could
// be generated.
func (a *FallbackAssistant) ImageConcept(ctx context.Context, prompt string, tier model.ResolutionTier) (string, bool) {
	var ref string
	err := a.call(ctx, func() error {
		var callErr error
		ref, callErr = a.provider.ImageConcept(ctx, prompt, tier)
		return callErr
	})
	if err != nil {
		common.LogError(a.logger, err, "Image concept failed", common.Fields{"op": "image_concept", "tier": string(tier)})
		return "", false
	}
	if ref == "" {
		return "", false
	}
	return ref, true
}

// Close drops cached responses and closes the provider.
func (a *FallbackAssistant) Close() error {
	a.cache.clear()
	return a.provider.Close()
}

func (a *FallbackAssistant) call(ctx context.Context, op func() error) error {
	return common.WithRetry(ctx, func() error {
		if err := waitForToken(ctx, a.limiter); err != nil {
			return err
		}
		return op()
	}, a.retryOpts)
}

func cloneResult(r SearchResult) SearchResult {
	out := SearchResult{Text: r.Text, Sources: make([]model.Source, len(r.Sources))}
	copy(out.Sources, r.Sources)
	return out
}
