package achievement

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		requirement string
		want        int
	}{
		{requirement: "16 stars", want: 16},
		{requirement: "128 stars", want: 128},
		{requirement: "4096 stars", want: 4096},
		{requirement: "1024 PRs", want: 1024},
		{requirement: "Close in < 5m", want: 5},
		{requirement: "between 10 and 20", want: 10},
		{requirement: "Merge solo", want: 0},
		{requirement: "", want: 0},
		{requirement: "stars: 42", want: 42},
		{requirement: "99999999999999999999999 stars", want: math.MaxInt},
		{requirement: "9223372036854775807", want: math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.requirement, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseThreshold(tt.requirement))
		})
	}
}
