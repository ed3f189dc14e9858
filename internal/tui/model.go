// Package tui implements the interactive badge board and assistant chat.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/octobadge/internal/assistant"
	"github.com/Veraticus/octobadge/internal/common"
	"github.com/Veraticus/octobadge/internal/model"
	"github.com/Veraticus/octobadge/internal/session"
	"github.com/Veraticus/octobadge/internal/storage"
	"github.com/Veraticus/octobadge/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	tea "github.com/charmbracelet/bubbletea"
)

// View selects the visible screen.
type View int

const (
	ViewBoard View = iota
	ViewChat
)

// ThinkingMarker accompanies the reasoning placeholder while the assistant
// thinks.
const ThinkingMarker = "Deep thinking process engaged..."

const (
	loginPlaceholder  = "GitHub username"
	promptPlaceholder = "Ask about badges, news, or describe a badge to visualize..."
	assistantMissing  = "Assistant unavailable: set GEMINI_API_KEY or ANTHROPIC_API_KEY"
)

// Model holds the main TUI state.
type Model struct {
	ctx          context.Context
	session      *session.Session
	orchestrator *assistant.Orchestrator
	prefs        storage.PreferenceStore
	renderer     *glamour.TermRenderer
	logger       *slog.Logger
	theme        themes.Theme
	keymap       KeyMap
	help         help.Model
	input        textinput.Model
	viewport     viewport.Model
	spinner      spinner.Model
	transcript   []model.ChatMessage
	status       string
	login        string
	width        int
	height       int
	cursor       int
	view         View
	editingLogin bool
	connecting   bool
	submitting   bool
	quitting     bool
}

// New creates the TUI model. A session is required; without an assistant
// only the board is available.
func New(ctx context.Context, opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Session == nil {
		return Model{}, errors.New("session is required")
	}

	logger := slog.Default().With("component", "tui")

	themeName := cfg.Theme
	if cfg.Preferences != nil {
		name, err := storage.LoadTheme(ctx, cfg.Preferences, cfg.Theme)
		if err != nil {
			logger.Warn("Failed to load theme preference", "error", err)
		}
		themeName = name
	}
	theme, _ := themes.ByName(themeName)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:     ctx,
		session: cfg.Session,
		prefs:   cfg.Preferences,
		logger:  logger,
		theme:   theme,
		keymap:  DefaultKeyMap(),
		help:    help.New(),
		input:   textinput.New(),
		spinner: sp,
		login:   strings.TrimSpace(cfg.Login),
		view:    ViewBoard,
	}
	m.input.CharLimit = 2000
	m.input.Placeholder = loginPlaceholder

	if cfg.Assistant != nil {
		aopts := []assistant.Option{
			assistant.WithMode(cfg.Mode),
			assistant.WithImageTier(cfg.ImageTier),
		}
		if cfg.observer != nil {
			aopts = append(aopts, assistant.WithObserver(cfg.observer))
		}
		m.orchestrator = assistant.New(cfg.Assistant, aopts...)
		m.transcript = m.orchestrator.Transcript()
	}

	if m.login != "" {
		m.connecting = true
		m.status = fmt.Sprintf("Connecting to %s...", m.login)
	}

	m.resize(cfg.Width, cfg.Height)
	if cfg.StartInChat && m.orchestrator != nil {
		m.enterChat()
	}
	return m, nil
}

// Init starts the cursor blink and the initial connect, if any.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.connecting {
		cmds = append(cmds, connect(m.ctx, m.session, m.login), m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case transcriptMsg:
		m.transcript = msg.messages
		m.refreshTranscript()
		return m, nil

	case submitDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.status = m.describeSubmitError(msg.err)
		}
		m.transcript = m.orchestrator.Transcript()
		m.refreshTranscript()
		return m, nil

	case connectDoneMsg:
		m.connecting = false
		if msg.err != nil {
			m.status = common.UserMessage(msg.err)
			return m, nil
		}
		m.cursor = 0
		m.status = fmt.Sprintf("Connected to %s", msg.login)
		return m, nil

	case themeSavedMsg:
		if msg.err != nil {
			common.LogError(m.logger, msg.err, "Failed to save theme", common.Fields{"theme": m.theme.Name})
			m.status = "Theme not saved: " + msg.err.Error()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.view == ViewChat {
			m.refreshTranscript()
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.ToggleTheme):
		return m.toggleTheme()
	case key.Matches(msg, m.keymap.SwitchView):
		return m.switchView()
	}

	if m.view == ViewChat {
		return m.handleChatKey(msg)
	}
	return m.handleBoardKey(msg)
}

func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editingLogin {
		switch {
		case key.Matches(msg, m.keymap.Cancel):
			m.stopEditing()
			return m, nil
		case key.Matches(msg, m.keymap.Submit):
			login := strings.TrimSpace(m.input.Value())
			m.stopEditing()
			if login == "" {
				m.status = "Enter a GitHub username to connect"
				return m, nil
			}
			m.login = login
			m.connecting = true
			m.status = fmt.Sprintf("Connecting to %s...", login)
			return m, tea.Batch(connect(m.ctx, m.session, login), m.spinner.Tick)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.session.Badges())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.Toggle):
		m.toggleSelected()
	case key.Matches(msg, m.keymap.Connect):
		if m.connecting {
			return m, nil
		}
		m.editingLogin = true
		m.input.Placeholder = loginPlaceholder
		return m, m.input.Focus()
	}
	return m, nil
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ModeFast):
		m.setMode(model.ModeFast)
		return m, nil
	case key.Matches(msg, m.keymap.ModeSmart):
		m.setMode(model.ModeSmart)
		return m, nil
	case key.Matches(msg, m.keymap.ModeCreative):
		m.setMode(model.ModeCreative)
		return m, nil
	case key.Matches(msg, m.keymap.Submit):
		if m.submitting {
			m.status = "Waiting for the assistant..."
			return m, nil
		}
		text := m.input.Value()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}
		m.input.Reset()
		m.submitting = true
		m.status = ""
		return m, tea.Batch(submit(m.ctx, m.orchestrator, text), m.spinner.Tick)
	}

	var cmd tea.Cmd
	switch msg.Type {
	case tea.KeyPgUp, tea.KeyPgDown:
		m.viewport, cmd = m.viewport.Update(msg)
	default:
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) switchView() (tea.Model, tea.Cmd) {
	if m.view == ViewChat {
		m.view = ViewBoard
		m.input.Blur()
		m.input.Reset()
		m.input.Placeholder = loginPlaceholder
		return m, nil
	}
	if m.orchestrator == nil {
		m.status = assistantMissing
		return m, nil
	}
	m.stopEditing()
	return m, m.enterChat()
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	m.theme = m.theme.Toggle()
	m.renderer = newRenderer(m.theme, m.viewport.Width)
	m.refreshTranscript()
	return m, saveTheme(m.ctx, m.prefs, m.theme.Name)
}

func (m *Model) enterChat() tea.Cmd {
	m.view = ViewChat
	m.input.Reset()
	m.input.Placeholder = promptPlaceholder
	return m.input.Focus()
}

func (m *Model) stopEditing() {
	m.editingLogin = false
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) setMode(mode model.Mode) {
	m.orchestrator.SetMode(mode)
	m.status = fmt.Sprintf("Mode: %s", mode)
}

func (m *Model) toggleSelected() {
	badges := m.session.Badges()
	if m.cursor < 0 || m.cursor >= len(badges) {
		return
	}
	b := badges[m.cursor]
	owned, err := m.session.Toggle(b.ID)
	if err != nil {
		m.status = err.Error()
		return
	}
	if owned {
		m.status = fmt.Sprintf("Marked %s as owned", b.Name)
	} else {
		m.status = fmt.Sprintf("Marked %s as not owned", b.Name)
	}
}

func (m Model) busy() bool {
	return m.connecting || m.submitting
}

func (m Model) describeSubmitError(err error) string {
	if errors.Is(err, common.ErrAssistantBusy) {
		return "Waiting for the assistant..."
	}
	return common.UserMessage(err)
}

// resize adjusts component sizes when the terminal resizes.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	// header, input, status and help lines plus spacing
	vpHeight := height - 7
	if vpHeight < 3 {
		vpHeight = 3
	}
	if m.viewport.Width == 0 && m.viewport.Height == 0 {
		m.viewport = viewport.New(width, vpHeight)
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.input.Width = width - 16
	m.help.Width = width
	m.renderer = newRenderer(m.theme, width)
	m.refreshTranscript()
}

func (m *Model) refreshTranscript() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func newRenderer(theme themes.Theme, width int) *glamour.TermRenderer {
	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme.GlamourStyle),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil
	}
	return r
}
