package tui

import (
	"github.com/Veraticus/octobadge/internal/assistant"
	"github.com/Veraticus/octobadge/internal/llm"
	"github.com/Veraticus/octobadge/internal/model"
	"github.com/Veraticus/octobadge/internal/session"
	"github.com/Veraticus/octobadge/internal/storage"
	"github.com/Veraticus/octobadge/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Session     *session.Session
	Assistant   llm.Assistant
	Preferences storage.PreferenceStore
	observer    assistant.Observer
	Theme       string
	Login       string
	ImageTier   model.ResolutionTier
	Mode        model.Mode
	Width       int
	Height      int
	StartInChat bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:     themes.Dark.Name,
		ImageTier: model.Resolution1K,
		Mode:      model.ModeSmart,
		Width:     80,
		Height:    24,
	}
}

// WithSession sets the badge session shown on the board.
func WithSession(s *session.Session) Option {
	return func(c *Config) {
		c.Session = s
	}
}

// WithAssistant sets the generative assistant. Without one the chat view is
// disabled.
func WithAssistant(a llm.Assistant) Option {
	return func(c *Config) {
		c.Assistant = a
	}
}

// WithPreferences sets where the theme choice is persisted.
func WithPreferences(store storage.PreferenceStore) Option {
	return func(c *Config) {
		c.Preferences = store
	}
}

// WithTheme sets the theme used when none is persisted.
func WithTheme(name string) Option {
	return func(c *Config) {
		c.Theme = name
	}
}

// WithLogin connects to login on start.
func WithLogin(login string) Option {
	return func(c *Config) {
		c.Login = login
	}
}

// WithImageTier sets the resolution of creative-mode images.
func WithImageTier(tier model.ResolutionTier) Option {
	return func(c *Config) {
		c.ImageTier = tier
	}
}

// WithMode sets the initial assistant mode.
func WithMode(mode model.Mode) Option {
	return func(c *Config) {
		c.Mode = mode
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithChatView opens the chat view first.
func WithChatView() Option {
	return func(c *Config) {
		c.StartInChat = true
	}
}

func withObserver(fn assistant.Observer) Option {
	return func(c *Config) {
		c.observer = fn
	}
}
