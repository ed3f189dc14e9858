package model

import (
	"fmt"
	"strings"
	"time"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Mode selects which generative capability answers a request.
type Mode string

const (
	ModeFast     Mode = "fast"
	ModeSmart    Mode = "smart"
	ModeCreative Mode = "creative"
)

// ParseMode parses a mode name; the empty string yields ModeSmart.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeSmart, nil
	case ModeFast, ModeSmart, ModeCreative:
		return m, nil
	default:
		return "", fmt.Errorf("unknown assistant mode: %q", s)
	}
}

// ResolutionTier is the requested size of a generated image.
type ResolutionTier string

const (
	Resolution1K ResolutionTier = "1K"
	Resolution2K ResolutionTier = "2K"
	Resolution4K ResolutionTier = "4K"
)

// ParseResolutionTier parses an image size tier such as "2K".
func ParseResolutionTier(s string) (ResolutionTier, error) {
	switch r := ResolutionTier(strings.ToUpper(strings.TrimSpace(s))); r {
	case Resolution1K, Resolution2K, Resolution4K:
		return r, nil
	default:
		return "", fmt.Errorf("unknown image size: %q", s)
	}
}

// Source is a web citation attached to a grounded answer.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// ChatMessage is one transcript entry.
type ChatMessage struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Images    []string  `json:"images,omitempty"`
	Sources   []Source  `json:"sources,omitempty"`
	Thinking  bool      `json:"thinking,omitempty"`
}
