package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/octobadge/internal/achievement"
	"github.com/Veraticus/octobadge/internal/catalog"
	"github.com/Veraticus/octobadge/internal/common"
	"github.com/Veraticus/octobadge/internal/config"
	"github.com/Veraticus/octobadge/internal/github"
	"github.com/Veraticus/octobadge/internal/llm"
	"github.com/Veraticus/octobadge/internal/model"
	"github.com/Veraticus/octobadge/internal/storage"
	"github.com/spf13/viper"
)

// loadSettings reads the typed configuration from viper.
func loadSettings() (*config.Settings, error) {
	return config.Load(viper.GetViper())
}

// loadCatalog returns the configured catalog, or the built-in one.
func loadCatalog(s *config.Settings) (*catalog.Catalog, error) {
	if s.Catalog.Path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(s.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}

func newEngine() *achievement.Engine {
	return achievement.NewEngine()
}

// newCollector builds the GitHub metrics collector.
func newCollector(s *config.Settings) (*github.Collector, error) {
	client, err := github.NewClient(github.Config{
		BaseURL:   s.GitHub.BaseURL,
		Token:     s.GitHub.Token,
		UserAgent: "octobadge/" + version,
		PageSize:  s.GitHub.PageSize,
		RateLimit: s.GitHub.RateLimit,
		Timeout:   s.GitHub.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return github.NewCollector(client), nil
}

// llmConfig maps settings onto the provider configuration.
func llmConfig(s *config.Settings) llm.Config {
	cfg := llm.Config{
		Provider:       s.LLM.Provider,
		APIKey:         s.LLM.GeminiAPIKey,
		FastModel:      s.LLM.FastModel,
		ReasoningModel: s.LLM.ReasoningModel,
		SearchModel:    s.LLM.SearchModel,
		ImageModel:     s.LLM.ImageModel,
		ThinkingBudget: s.LLM.ThinkingBudget,
		CacheTTL:       s.LLM.CacheTTL,
		CacheSize:      s.LLM.CacheSize,
		RateLimit:      s.LLM.RateLimit,
		MaxRetries:     s.LLM.MaxRetries,
	}
	if s.LLM.Provider == "anthropic" {
		cfg.APIKey = s.LLM.AnthropicAPIKey
	}
	return cfg
}

// newAssistant creates the total assistant over the configured provider.
func newAssistant(ctx context.Context, s *config.Settings) (*llm.FallbackAssistant, error) {
	cfg := llmConfig(s)
	if cfg.APIKey == "" {
		return nil, common.NewUserError(
			"No API key configured: set GEMINI_API_KEY (or ANTHROPIC_API_KEY with llm.provider=anthropic)",
			common.ErrMissingConfig)
	}

	provider, err := llm.NewProvider(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	a, err := llm.NewAssistant(provider, cfg)
	if err != nil {
		_ = provider.Close()
		return nil, err
	}
	return a, nil
}

func imageTier(s *config.Settings) model.ResolutionTier {
	tier, err := model.ParseResolutionTier(s.Assistant.ImageSize)
	if err != nil {
		return model.Resolution1K
	}
	return tier
}

// openStorage opens the preferences database and applies migrations.
func openStorage(ctx context.Context, s *config.Settings) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(s.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
