package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordClassifier_Classify(t *testing.T) {
	classifier := DefaultKeywordClassifier()

	tests := []struct {
		text string
		want Intent
	}{
		{text: "What is the latest update?", want: IntentSearch},
		{text: "Any NEW badges this year?", want: IntentSearch},
		{text: "What's a good strategy?", want: IntentPlan},
		{text: "Give me a PLAN for Pull Shark", want: IntentPlan},
		{text: "how to get starstruck", want: IntentPlan},
		{text: "what is the best strategy", want: IntentSearch},
		{text: "Tell me about YOLO", want: IntentReason},
		{text: "", want: IntentReason},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.text))
		})
	}
}

func TestKeywordClassifier_Custom(t *testing.T) {
	classifier := KeywordClassifier{Search: []string{"Latest"}, Plan: []string{"roadmap", ""}}

	assert.Equal(t, IntentSearch, classifier.Classify("the latest news"))
	assert.Equal(t, IntentPlan, classifier.Classify("a roadmap please"))
	assert.Equal(t, IntentReason, classifier.Classify("what is new"), "empty keywords never match")
}

func TestIntent_String(t *testing.T) {
	assert.Equal(t, "search", IntentSearch.String())
	assert.Equal(t, "plan", IntentPlan.String())
	assert.Equal(t, "reason", IntentReason.String())
}
