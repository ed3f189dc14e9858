package assistant

import (
	"errors"
	"fmt"
)

// State is the lifecycle of one reasoning request that shows a placeholder.
type State int

// Exchange states.
const (
	StateIdle State = iota
	StateAwaitingReasoning
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingReasoning:
		return "awaiting_reasoning"
	case StateResolved:
		return "resolved"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var errInvalidTransition = errors.New("invalid exchange transition")

// exchange tracks the placeholder of one in-flight request, so resolution
// replaces exactly that message.
type exchange struct {
	id            string
	placeholderID string
	state         State
}

func newExchange(id string) *exchange {
	return &exchange{id: id, state: StateIdle}
}

// await records the placeholder shown while reasoning runs.
func (e *exchange) await(placeholderID string) error {
	if e.state != StateIdle {
		return fmt.Errorf("%w: await from %s", errInvalidTransition, e.state)
	}
	e.placeholderID = placeholderID
	e.state = StateAwaitingReasoning
	return nil
}

// resolve completes the exchange and returns the placeholder to replace.
func (e *exchange) resolve() (string, error) {
	if e.state != StateAwaitingReasoning {
		return "", fmt.Errorf("%w: resolve from %s", errInvalidTransition, e.state)
	}
	e.state = StateResolved
	return e.placeholderID, nil
}
