package tui

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/Veraticus/octobadge/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the terminal UI and blocks until the user quits or ctx is
// canceled.
func Run(ctx context.Context, opts ...Option) error {
	var program atomic.Pointer[tea.Program]
	observer := func(snapshot []model.ChatMessage) {
		if p := program.Load(); p != nil {
			p.Send(transcriptMsg{messages: snapshot})
		}
	}

	m, err := New(ctx, append(opts, withObserver(observer))...)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	program.Store(p)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
