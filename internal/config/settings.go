package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Veraticus/octobadge/internal/common"
	"github.com/spf13/viper"
)

// Settings is the typed view of the application configuration.
type Settings struct {
	Logging   LoggingSettings
	Database  DatabaseSettings
	Catalog   CatalogSettings
	GitHub    GitHubSettings
	LLM       LLMSettings
	Assistant AssistantSettings
	UI        UISettings
}

// LoggingSettings configures slog.
type LoggingSettings struct {
	Level  string
	Format string
}

// DatabaseSettings locates the preferences database.
type DatabaseSettings struct {
	Path string
}

// CatalogSettings points at an optional YAML catalog file.
type CatalogSettings struct {
	Path string
}

// GitHubSettings configures the metrics collector.
type GitHubSettings struct {
	BaseURL   string
	Token     string
	PageSize  int
	RateLimit int
	Timeout   time.Duration
}

// LLMSettings configures the generative provider.
type LLMSettings struct {
	Provider        string
	GeminiAPIKey    string
	AnthropicAPIKey string
	FastModel       string
	ReasoningModel  string
	SearchModel     string
	ImageModel      string
	ThinkingBudget  int
	CacheTTL        time.Duration
	CacheSize       int
	RateLimit       int
	MaxRetries      int
}

// AssistantSettings configures the orchestrator.
type AssistantSettings struct {
	ImageSize string
}

// UISettings configures the terminal interface.
type UISettings struct {
	Theme string
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("database.path", DefaultDatabasePath())
	v.SetDefault("catalog.path", "")
	v.SetDefault("github.base_url", "https://api.github.com")
	v.SetDefault("github.page_size", 100)
	v.SetDefault("github.timeout", 30*time.Second)
	v.SetDefault("github.rate_limit", 60)
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.fast_model", "gemini-2.5-flash-lite-latest")
	v.SetDefault("llm.reasoning_model", "gemini-3-pro-preview")
	v.SetDefault("llm.search_model", "gemini-2.5-flash")
	v.SetDefault("llm.image_model", "gemini-3-pro-image-preview")
	v.SetDefault("llm.thinking_budget", 32768)
	v.SetDefault("llm.cache_ttl", 15*time.Minute)
	v.SetDefault("llm.cache_size", 256)
	v.SetDefault("llm.rate_limit", 60)
	v.SetDefault("llm.max_retries", 2)
	v.SetDefault("assistant.image_size", "1K")
	v.SetDefault("ui.theme", "dark")
}

// Load reads Settings from v. It follows this precedence:
// 1. Viper configuration (config file or OCTOBADGE_ env vars)
// 2. Conventional environment variables (GITHUB_TOKEN, GEMINI_API_KEY, ...)
// 3. Defaults registered by SetDefaults
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		Logging: LoggingSettings{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		Database: DatabaseSettings{Path: ExpandPath(v.GetString("database.path"))},
		Catalog:  CatalogSettings{Path: ExpandPath(v.GetString("catalog.path"))},
		GitHub: GitHubSettings{
			BaseURL:   v.GetString("github.base_url"),
			Token:     v.GetString("github.token"),
			PageSize:  v.GetInt("github.page_size"),
			RateLimit: v.GetInt("github.rate_limit"),
			Timeout:   v.GetDuration("github.timeout"),
		},
		LLM: LLMSettings{
			Provider:        v.GetString("llm.provider"),
			GeminiAPIKey:    v.GetString("llm.gemini_api_key"),
			AnthropicAPIKey: v.GetString("llm.anthropic_api_key"),
			FastModel:       v.GetString("llm.fast_model"),
			ReasoningModel:  v.GetString("llm.reasoning_model"),
			SearchModel:     v.GetString("llm.search_model"),
			ImageModel:      v.GetString("llm.image_model"),
			ThinkingBudget:  v.GetInt("llm.thinking_budget"),
			CacheTTL:        v.GetDuration("llm.cache_ttl"),
			CacheSize:       v.GetInt("llm.cache_size"),
			RateLimit:       v.GetInt("llm.rate_limit"),
			MaxRetries:      v.GetInt("llm.max_retries"),
		},
		Assistant: AssistantSettings{ImageSize: v.GetString("assistant.image_size")},
		UI:        UISettings{Theme: v.GetString("ui.theme")},
	}

	if s.GitHub.Token == "" {
		s.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}
	if s.LLM.GeminiAPIKey == "" {
		s.LLM.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if s.LLM.GeminiAPIKey == "" {
		s.LLM.GeminiAPIKey = os.Getenv("API_KEY")
	}
	if s.LLM.AnthropicAPIKey == "" {
		s.LLM.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate rejects values no component could act on.
func (s *Settings) Validate() error {
	switch s.LLM.Provider {
	case "gemini", "anthropic":
	default:
		return fmt.Errorf("%w: unknown llm provider %q", common.ErrInvalidConfig, s.LLM.Provider)
	}
	switch s.UI.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("%w: unknown theme %q", common.ErrInvalidConfig, s.UI.Theme)
	}
	switch s.Assistant.ImageSize {
	case "1K", "2K", "4K":
	default:
		return fmt.Errorf("%w: unknown image size %q", common.ErrInvalidConfig, s.Assistant.ImageSize)
	}
	if s.GitHub.PageSize < 1 || s.GitHub.PageSize > 100 {
		return fmt.Errorf("%w: github.page_size must be between 1 and 100", common.ErrInvalidConfig)
	}
	if s.LLM.CacheSize < 0 || s.LLM.MaxRetries < 0 {
		return fmt.Errorf("%w: llm cache size and retries must not be negative", common.ErrInvalidConfig)
	}
	return nil
}
