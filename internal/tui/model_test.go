package tui

import (
	"context"
	"testing"

	"github.com/Veraticus/octobadge/internal/achievement"
	"github.com/Veraticus/octobadge/internal/catalog"
	"github.com/Veraticus/octobadge/internal/common"
	"github.com/Veraticus/octobadge/internal/github"
	"github.com/Veraticus/octobadge/internal/llm"
	"github.com/Veraticus/octobadge/internal/model"
	"github.com/Veraticus/octobadge/internal/session"
	"github.com/Veraticus/octobadge/internal/storage"
	"github.com/Veraticus/octobadge/internal/testutil"
	"github.com/Veraticus/octobadge/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(fetcher github.Fetcher) *session.Session {
	return session.New(catalog.Default(), achievement.NewEngine(), github.NewCollector(fetcher))
}

func newTestModel(t *testing.T, opts ...Option) Model {
	t.Helper()
	base := []Option{
		WithSession(newTestSession(testutil.NewFetcher(200, 3, testutil.LegacyCreatedAt))),
		WithAssistant(llm.NewMockAssistant()),
		WithSize(100, 40),
	}
	m, err := New(context.Background(), append(base, opts...)...)
	require.NoError(t, err)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated, cmd
}

// runCmd executes cmd and feeds back the messages this package produces.
// Spinner and blink messages are dropped.
func runCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = runCmd(t, m, c)
		}
	case connectDoneMsg, submitDoneMsg, themeSavedMsg, transcriptMsg:
		m, _ = update(t, m, msg)
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = update(t, m, keyRunes(s))
	return m
}

func TestNew_RequiresSession(t *testing.T) {
	_, err := New(context.Background())
	require.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, ViewBoard, m.view)
	assert.Equal(t, themes.Dark.Name, m.theme.Name)
	require.Len(t, m.transcript, 1)
	assert.Contains(t, m.View(), "Not connected")
}

func TestNew_LoadsPersistedTheme(t *testing.T) {
	db := testutil.SetupTestDBWithOptions(t, testutil.TestDBOptions{
		Preferences: map[string]string{storage.ThemeKey: "light"},
	})

	m := newTestModel(t, WithPreferences(db.Storage))
	assert.Equal(t, themes.Light.Name, m.theme.Name)
}

func TestToggleTheme_Persists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	m := newTestModel(t, WithPreferences(db.Storage))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	require.NotNil(t, cmd)
	m = runCmd(t, m, cmd)
	assert.Equal(t, themes.Light.Name, m.theme.Name)
	assert.Equal(t, "light", db.MustGetPreference(storage.ThemeKey))

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	m = runCmd(t, m, cmd)
	assert.Equal(t, themes.Dark.Name, m.theme.Name)
	assert.Equal(t, "dark", db.MustGetPreference(storage.ThemeKey))
	assert.Empty(t, m.status)
}

func TestToggleTheme_WithoutPreferences(t *testing.T) {
	m := newTestModel(t)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Nil(t, cmd)
	assert.Equal(t, themes.Light.Name, m.theme.Name)
}

func TestBoard_ToggleBadge(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)

	m, _ = update(t, m, keyRunes("x"))
	quickdraw, ok := m.session.Badge("quickdraw")
	require.True(t, ok)
	assert.True(t, quickdraw.Owned)
	assert.Equal(t, "Marked Quickdraw as owned", m.status)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	quickdraw, _ = m.session.Badge("quickdraw")
	assert.False(t, quickdraw.Owned)
}

func TestBoard_CursorBounds(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)

	for range 20 {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, catalog.Default().Len()-1, m.cursor)
}

func TestBoard_Connect(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, keyRunes("c"))
	require.True(t, m.editingLogin)

	m = typeText(t, m, "octocat")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.connecting)
	assert.False(t, m.editingLogin)

	m = runCmd(t, m, cmd)
	assert.False(t, m.connecting)
	assert.Equal(t, "Connected to octocat", m.status)

	profile, ok := m.session.Profile()
	require.True(t, ok)
	assert.Equal(t, "octocat", profile.Login)

	view := m.View()
	assert.Contains(t, view, "@octocat")
	assert.Contains(t, view, "200 stars")
}

func TestBoard_ConnectFailure(t *testing.T) {
	fetcher := testutil.NewFetcher(0, 0, testutil.LegacyCreatedAt)
	fetcher.FetchProfileFn = func(context.Context, string) (model.UserProfile, error) {
		return model.UserProfile{}, common.ErrUserNotFound
	}
	m, err := New(context.Background(), WithSession(newTestSession(fetcher)), WithLogin("ghost"))
	require.NoError(t, err)
	require.True(t, m.connecting)

	m, _ = update(t, m, connect(context.Background(), m.session, "ghost")())
	assert.Equal(t, session.ConnectErrorMessage, m.status)
	assert.Contains(t, m.View(), session.ConnectErrorMessage)
}

func TestBoard_BlankLogin(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, keyRunes("c"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.connecting)
	assert.Equal(t, "Enter a GitHub username to connect", m.status)
}

func TestBoard_CancelEditing(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, keyRunes("c"))
	m = typeText(t, m, "oct")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.editingLogin)
	assert.Empty(t, m.input.Value())
}

func TestBoard_Quit(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestChat_Submit(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, ViewChat, m.view)

	m = typeText(t, m, "How to plan my week?")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.submitting)
	assert.Empty(t, m.input.Value())

	m = runCmd(t, m, cmd)
	assert.False(t, m.submitting)
	require.Len(t, m.transcript, 3)
	assert.Equal(t, model.RoleUser, m.transcript[1].Role)
	assert.Equal(t, "reasoned: How to plan my week?", m.transcript[2].Text)
	assert.False(t, m.transcript[2].Thinking)
}

func TestChat_IgnoresEnterWhileSubmitting(t *testing.T) {
	m := newTestModel(t, WithChatView())

	m = typeText(t, m, "first")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.submitting)

	m = typeText(t, m, "second")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "second", m.input.Value())
	assert.Equal(t, "Waiting for the assistant...", m.status)
}

func TestChat_BlankInput(t *testing.T) {
	m := newTestModel(t, WithChatView())

	m = typeText(t, m, "   ")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.submitting)
}

func TestChat_ModeKeys(t *testing.T) {
	tests := []struct {
		key  tea.KeyType
		want model.Mode
	}{
		{key: tea.KeyCtrlF, want: model.ModeFast},
		{key: tea.KeyCtrlG, want: model.ModeCreative},
		{key: tea.KeyCtrlS, want: model.ModeSmart},
	}

	m := newTestModel(t, WithChatView())
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			m, _ = update(t, m, tea.KeyMsg{Type: tt.key})
			assert.Equal(t, tt.want, m.orchestrator.Mode())
			assert.Equal(t, "Mode: "+string(tt.want), m.status)
		})
	}
}

func TestChat_ThinkingMarker(t *testing.T) {
	m := newTestModel(t, WithChatView())

	m, _ = update(t, m, transcriptMsg{messages: []model.ChatMessage{
		{ID: "1", Role: model.RoleUser, Text: "plan"},
		{ID: "2", Role: model.RoleAssistant, Text: "Thinking...", Thinking: true},
	}})

	view := m.View()
	assert.Contains(t, view, ThinkingMarker)
	assert.Contains(t, view, "Thinking...")
}

func TestChat_WithoutAssistant(t *testing.T) {
	m, err := New(context.Background(),
		WithSession(newTestSession(testutil.NewFetcher(0, 0, testutil.LegacyCreatedAt))),
		WithChatView(),
	)
	require.NoError(t, err)
	assert.Equal(t, ViewBoard, m.view)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ViewBoard, m.view)
	assert.Equal(t, assistantMissing, m.status)
}

func TestSwitchView_RoundTrip(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ViewChat, m.view)
	assert.Equal(t, promptPlaceholder, m.input.Placeholder)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ViewBoard, m.view)
	assert.Equal(t, loginPlaceholder, m.input.Placeholder)
}

func TestDescribeImage(t *testing.T) {
	assert.Equal(t,
		"Concept image generated (image/png, 0 KB). Save it with: octobadge ask --mode creative --image-dir DIR",
		describeImage("data:image/png;base64,AAAA"))
	assert.Equal(t, "Concept image: https://example.com/a.png", describeImage("https://example.com/a.png"))
}
