package assistant

import "github.com/Veraticus/octobadge/internal/model"

// Transcript is an ordered chat history. Messages are only appended, except
// that Replace may swap one message, found by id, in place.
type Transcript struct {
	index    map[string]int
	messages []model.ChatMessage
}

// NewTranscript creates a transcript holding seed.
func NewTranscript(seed ...model.ChatMessage) *Transcript {
	t := &Transcript{index: make(map[string]int)}
	for _, msg := range seed {
		t.Append(msg)
	}
	return t
}

// Append adds msg to the end of the transcript.
func (t *Transcript) Append(msg model.ChatMessage) {
	t.index[msg.ID] = len(t.messages)
	t.messages = append(t.messages, cloneMessage(msg))
}

// Replace swaps the message with the given id for msg, keeping its position.
// It reports whether the id was found.
func (t *Transcript) Replace(id string, msg model.ChatMessage) bool {
	pos, ok := t.index[id]
	if !ok {
		return false
	}
	delete(t.index, id)
	t.index[msg.ID] = pos
	t.messages[pos] = cloneMessage(msg)
	return true
}

// Get returns the message with the given id.
func (t *Transcript) Get(id string) (model.ChatMessage, bool) {
	pos, ok := t.index[id]
	if !ok {
		return model.ChatMessage{}, false
	}
	return cloneMessage(t.messages[pos]), true
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Messages returns a copy of the transcript.
func (t *Transcript) Messages() []model.ChatMessage {
	out := make([]model.ChatMessage, len(t.messages))
	for i, msg := range t.messages {
		out[i] = cloneMessage(msg)
	}
	return out
}

func cloneMessage(msg model.ChatMessage) model.ChatMessage {
	if msg.Images != nil {
		msg.Images = append([]string(nil), msg.Images...)
	}
	if msg.Sources != nil {
		msg.Sources = append([]model.Source(nil), msg.Sources...)
	}
	return msg
}
