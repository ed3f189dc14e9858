package tui

import "github.com/Veraticus/octobadge/internal/model"

// transcriptMsg carries an orchestrator snapshot into the program.
type transcriptMsg struct {
	messages []model.ChatMessage
}

type submitDoneMsg struct {
	err error
}

type connectDoneMsg struct {
	err   error
	login string
}

type themeSavedMsg struct {
	err error
}
