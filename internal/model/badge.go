package model

import (
	"fmt"
	"strings"
)

// Category groups badges on the profile page.
type Category string

const (
	// CategoryAchievement represents badges earned through activity.
	CategoryAchievement Category = "Achievement"
	// CategoryHighlight represents profile highlights such as sponsorship.
	CategoryHighlight Category = "Highlight"
	// CategorySpecial represents one-off badges.
	CategorySpecial Category = "Special"
)

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryAchievement, CategoryHighlight, CategorySpecial:
		return c, nil
	default:
		return "", fmt.Errorf("unknown badge category: %q", s)
	}
}

// Rarity is the ordinal scarcity of a badge. Common < Rare < Epic < Legendary.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityEpic
	RarityLegendary
)

// Rarities lists every rarity in ascending order.
var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return fmt.Sprintf("Rarity(%d)", int(r))
	}
}

// ParseRarity parses a rarity name case-insensitively.
func ParseRarity(s string) (Rarity, error) {
	for _, r := range Rarities {
		if strings.EqualFold(r.String(), s) {
			return r, nil
		}
	}
	return RarityCommon, fmt.Errorf("unknown badge rarity: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Rarity) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rarity) UnmarshalText(text []byte) error {
	parsed, err := ParseRarity(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Metric names the user statistic a tiered badge is measured against.
type Metric string

const (
	// MetricNone means the badge has no measurable statistic; progress is always 0.
	MetricNone Metric = ""
	// MetricStars measures the aggregate star count across the user's repositories.
	MetricStars Metric = "stars"
	// MetricMergedPRs measures merged pull requests authored by the user.
	MetricMergedPRs Metric = "merged_prs"
)

// ParseMetric validates a metric tag.
func ParseMetric(s string) (Metric, error) {
	switch m := Metric(s); m {
	case MetricNone, MetricStars, MetricMergedPRs:
		return m, nil
	default:
		return "", fmt.Errorf("unknown badge metric: %q", s)
	}
}

// Rule names a badge-specific ownership rule evaluated against the profile.
type Rule string

const (
	// RuleNone means ownership is not derived from the profile.
	RuleNone Rule = ""
	// RuleLegacyAccount grants ownership to accounts created before a fixed cutoff.
	RuleLegacyAccount Rule = "legacy_account"
)

// ParseRule validates a rule tag.
func ParseRule(s string) (Rule, error) {
	switch r := Rule(s); r {
	case RuleNone, RuleLegacyAccount:
		return r, nil
	default:
		return "", fmt.Errorf("unknown badge rule: %q", s)
	}
}

// TierDefinition is one level of a tiered badge. The numeric threshold is
// embedded in Requirement, e.g. "128 stars".
type TierDefinition struct {
	Name        string
	Color       string
	Requirement string
}

// BadgeDefinition is an immutable catalog entry.
type BadgeDefinition struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Category    Category
	HowToEarn   string
	Metric      Metric
	Rule        Rule
	Tiers       []TierDefinition
	Rarity      Rarity
	Retired     bool
}

// HasTiers reports whether the badge is gated behind tiers.
func (b BadgeDefinition) HasTiers() bool {
	return len(b.Tiers) > 0
}

// Clone returns a copy that shares no slices with b.
func (b BadgeDefinition) Clone() BadgeDefinition {
	if b.Tiers != nil {
		tiers := make([]TierDefinition, len(b.Tiers))
		copy(tiers, b.Tiers)
		b.Tiers = tiers
	}
	return b
}
