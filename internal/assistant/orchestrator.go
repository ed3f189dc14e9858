package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/octobadge/internal/common"
	"github.com/Veraticus/octobadge/internal/llm"
	"github.com/Veraticus/octobadge/internal/model"
	"github.com/google/uuid"
)

// Fixed conversation texts.
const (
	Greeting       = "Hi! I can help you with GitHub badges. Ask me about strategies, latest updates, or even to visualize a badge concept."
	ThinkingText   = "Thinking..."
	ImageApology   = "I couldn't generate an image at this time."
	captionFormat  = "Here is a concept design for \"%s\":"
	defaultLogName = "orchestrator"
)

// Observer receives a snapshot of the transcript after every change.
type Observer func([]model.ChatMessage)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClassifier replaces the keyword classifier used in Smart mode.
func WithClassifier(c IntentClassifier) Option {
	return func(o *Orchestrator) {
		if c != nil {
			o.classifier = c
		}
	}
}

// WithImageTier sets the resolution requested in Creative mode.
func WithImageTier(tier model.ResolutionTier) Option {
	return func(o *Orchestrator) {
		if tier != "" {
			o.imageTier = tier
		}
	}
}

// WithObserver registers fn to be called after every transcript change.
func WithObserver(fn Observer) Option {
	return func(o *Orchestrator) {
		if fn != nil {
			o.observers = append(o.observers, fn)
		}
	}
}

// WithClock sets the time source used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator sets the message id source.
func WithIDGenerator(newID func() string) Option {
	return func(o *Orchestrator) {
		if newID != nil {
			o.newID = newID
		}
	}
}

// WithMode sets the initial mode.
func WithMode(mode model.Mode) Option {
	return func(o *Orchestrator) {
		if mode != "" {
			o.mode = mode
		}
	}
}

// Orchestrator owns one conversation. At most one Submit is in flight at a
// time; a concurrent Submit is rejected with common.ErrAssistantBusy.
type Orchestrator struct {
	assistant  llm.Assistant
	classifier IntentClassifier
	transcript *Transcript
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
	observers  []Observer
	imageTier  model.ResolutionTier
	mode       model.Mode
	pending    bool
	mu         sync.Mutex
}

// New creates an orchestrator in Smart mode whose transcript starts with the
// greeting.
func New(assistant llm.Assistant, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		assistant:  assistant,
		classifier: DefaultKeywordClassifier(),
		logger:     slog.Default().With("component", defaultLogName),
		now:        time.Now,
		newID:      uuid.NewString,
		imageTier:  model.Resolution1K,
		mode:       model.ModeSmart,
	}
	for _, opt := range opts {
		opt(o)
	}

	o.transcript = NewTranscript(o.message(model.RoleAssistant, Greeting))
	return o
}

// Mode returns the current mode.
func (o *Orchestrator) Mode() model.Mode {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mode
}

// SetMode changes the mode used by the next Submit.
func (o *Orchestrator) SetMode(mode model.Mode) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.mode = mode
}

// Pending reports whether a Submit is in flight.
func (o *Orchestrator) Pending() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pending
}

// Transcript returns a snapshot of the conversation.
func (o *Orchestrator) Transcript() []model.ChatMessage {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.transcript.Messages()
}

// Submit sends userText to the assistant and appends the reply. Blank input
// is ignored. Generative failures never surface here: the assistant answers
// with fallback text instead, so the only error is common.ErrAssistantBusy.
func (o *Orchestrator) Submit(ctx context.Context, userText string) error {
	if strings.TrimSpace(userText) == "" {
		return nil
	}

	o.mu.Lock()
	if o.pending {
		o.mu.Unlock()
		return common.ErrAssistantBusy
	}
	o.pending = true
	mode := o.mode
	snapshot := o.appendLocked(o.message(model.RoleUser, userText))
	o.mu.Unlock()
	defer o.releaseOnPanic()
	o.notify(snapshot)

	switch mode {
	case model.ModeFast:
		o.finish(o.message(model.RoleAssistant, o.assistant.ShortAnswer(ctx, userText)))
	case model.ModeCreative:
		o.finish(o.creative(ctx, userText))
	default:
		o.smart(ctx, userText)
	}
	return nil
}

func (o *Orchestrator) creative(ctx context.Context, userText string) model.ChatMessage {
	ref, ok := o.assistant.ImageConcept(ctx, userText, o.imageTier)
	if !ok {
		return o.message(model.RoleAssistant, ImageApology)
	}
	msg := o.message(model.RoleAssistant, fmt.Sprintf(captionFormat, userText))
	msg.Images = []string{ref}
	return msg
}

func (o *Orchestrator) smart(ctx context.Context, userText string) {
	intent := o.classifier.Classify(userText)
	o.logger.Debug("Routing message", "intent", intent.String())

	switch intent {
	case IntentSearch:
		result := o.assistant.GroundedSearch(ctx, userText)
		msg := o.message(model.RoleAssistant, result.Text)
		msg.Sources = result.Sources
		if msg.Sources == nil {
			msg.Sources = []model.Source{}
		}
		o.finish(msg)
	case IntentPlan:
		o.reasonWithPlaceholder(ctx, userText)
	default:
		o.finish(o.message(model.RoleAssistant, o.assistant.DeepReasoning(ctx, userText)))
	}
}

// reasonWithPlaceholder shows a thinking placeholder while deep reasoning
// runs and then replaces that placeholder, by id, with the answer.
func (o *Orchestrator) reasonWithPlaceholder(ctx context.Context, userText string) {
	ex := newExchange(o.newID())
	placeholder := o.message(model.RoleAssistant, ThinkingText)
	placeholder.Thinking = true

	o.mu.Lock()
	if err := ex.await(placeholder.ID); err != nil {
		o.mu.Unlock()
		o.logger.Error("Exchange out of order", "exchange", ex.id, "error", err)
		o.finish(o.message(model.RoleAssistant, o.assistant.DeepReasoning(ctx, userText)))
		return
	}
	snapshot := o.appendLocked(placeholder)
	o.mu.Unlock()
	o.notify(snapshot)

	answer := o.message(model.RoleAssistant, o.assistant.DeepReasoning(ctx, userText))

	o.mu.Lock()
	placeholderID, err := ex.resolve()
	if err != nil || !o.transcript.Replace(placeholderID, answer) {
		o.logger.Error("Thinking placeholder missing, appending answer",
			"exchange", ex.id, "placeholder", placeholderID, "error", err)
		o.transcript.Append(answer)
	}
	o.pending = false
	snapshot = o.transcript.Messages()
	o.mu.Unlock()
	o.notify(snapshot)
}

// releaseOnPanic clears the pending flag when an assistant or observer
// panics mid-request, then re-panics.
func (o *Orchestrator) releaseOnPanic() {
	r := recover()
	if r == nil {
		return
	}
	o.mu.Lock()
	o.pending = false
	o.mu.Unlock()
	panic(r)
}

// finish appends the final reply and clears the pending flag.
func (o *Orchestrator) finish(msg model.ChatMessage) {
	o.mu.Lock()
	snapshot := o.appendLocked(msg)
	o.pending = false
	o.mu.Unlock()
	o.notify(snapshot)
}

func (o *Orchestrator) appendLocked(msg model.ChatMessage) []model.ChatMessage {
	o.transcript.Append(msg)
	return o.transcript.Messages()
}

func (o *Orchestrator) notify(snapshot []model.ChatMessage) {
	for _, fn := range o.observers {
		fn(snapshot)
	}
}

func (o *Orchestrator) message(role model.Role, text string) model.ChatMessage {
	return model.ChatMessage{
		ID:        o.newID(),
		Role:      role,
		Text:      text,
		CreatedAt: o.now(),
	}
}
