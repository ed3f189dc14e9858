// Package assistant runs the badge assistant conversation: it keeps the
// transcript, routes each message to a generative operation by mode and
// intent, and shows a thinking placeholder while slow reasoning runs.
package assistant

import "strings"

// Intent is the routing decision for a Smart mode message.
type Intent int

// Intents, checked in the order search, plan, reason.
const (
	IntentReason Intent = iota
	IntentSearch
	IntentPlan
)

func (i Intent) String() string {
	switch i {
	case IntentSearch:
		return "search"
	case IntentPlan:
		return "plan"
	default:
		return "reason"
	}
}

// IntentClassifier decides how a Smart mode message is answered.
type IntentClassifier interface {
	Classify(text string) Intent
}

// KeywordClassifier matches case-insensitive substrings. Search keywords are
// checked before plan keywords; anything else is IntentReason.
type KeywordClassifier struct {
	Search []string
	Plan   []string
}

// DefaultKeywordClassifier returns the built-in keyword lists.
func DefaultKeywordClassifier() KeywordClassifier {
	return KeywordClassifier{
		Search: []string{"new", "update", "what is"},
		Plan:   []string{"plan", "strategy", "how to"},
	}
}

// Classify implements IntentClassifier.
func (k KeywordClassifier) Classify(text string) Intent {
	lower := strings.ToLower(text)
	if containsAny(lower, k.Search) {
		return IntentSearch
	}
	if containsAny(lower, k.Plan) {
		return IntentPlan
	}
	return IntentReason
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
