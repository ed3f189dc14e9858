package tui

import (
	"context"

	"github.com/Veraticus/octobadge/internal/assistant"
	"github.com/Veraticus/octobadge/internal/session"
	"github.com/Veraticus/octobadge/internal/storage"
	tea "github.com/charmbracelet/bubbletea"
)

// connect collects login's metrics in the background.
func connect(ctx context.Context, s *session.Session, login string) tea.Cmd {
	return func() tea.Msg {
		err := s.Connect(ctx, login)
		return connectDoneMsg{login: login, err: err}
	}
}

// submit sends text to the orchestrator. Intermediate transcript states
// arrive through the observer; the final state is re-read on completion.
func submit(ctx context.Context, o *assistant.Orchestrator, text string) tea.Cmd {
	return func() tea.Msg {
		return submitDoneMsg{err: o.Submit(ctx, text)}
	}
}

// saveTheme persists the theme choice.
func saveTheme(ctx context.Context, store storage.PreferenceStore, name string) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return themeSavedMsg{err: storage.SaveTheme(ctx, store, name)}
	}
}
