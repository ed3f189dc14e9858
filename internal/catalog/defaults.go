package catalog

import "github.com/Veraticus/octobadge/internal/model"

// Tier colors.
const (
	ColorBronze = "#cd7f32"
	ColorSilver = "#c0c0c0"
	ColorGold   = "#ffd700"
)

var defaultBadges = []model.BadgeDefinition{
	{
		ID:          "starstruck",
		Name:        "Starstruck",
		Description: "Created a repository that has many stars.",
		Icon:        "⭐",
		Category:    model.CategoryAchievement,
		Rarity:      model.RarityCommon,
		HowToEarn:   "Receive stars on a repository you own.",
		Metric:      model.MetricStars,
		Tiers: []model.TierDefinition{
			{Name: "Bronze", Color: ColorBronze, Requirement: "16 stars"},
			{Name: "Silver", Color: ColorSilver, Requirement: "128 stars"},
			{Name: "Gold", Color: ColorGold, Requirement: "4096 stars"},
		},
	},
	{
		ID:          "quickdraw",
		Name:        "Quickdraw",
		Description: "Closed an issue or pull request within 5 minutes of opening.",
		Icon:        "⚡",
		Category:    model.CategoryAchievement,
		Rarity:      model.RarityRare,
		HowToEarn:   "Close an issue/PR within 5 minutes.",
		Tiers: []model.TierDefinition{
			{Name: "One-time", Color: "#58a6ff", Requirement: "Close in < 5m"},
		},
	},
	{
		ID:          "pull-shark",
		Name:        "Pull Shark",
		Description: "Opened pull requests that have been merged.",
		Icon:        "🦈",
		Category:    model.CategoryAchievement,
		Rarity:      model.RarityCommon,
		HowToEarn:   "Have your pull requests merged.",
		Metric:      model.MetricMergedPRs,
		Tiers: []model.TierDefinition{
			{Name: "Bronze", Color: ColorBronze, Requirement: "2 PRs"},
			{Name: "Silver", Color: ColorSilver, Requirement: "16 PRs"},
			{Name: "Gold", Color: ColorGold, Requirement: "1024 PRs"},
		},
	},
	{
		ID:          "yolo",
		Name:        "YOLO",
		Description: "Merged a pull request without code review.",
		Icon:        "🚀",
		Category:    model.CategoryAchievement,
		Rarity:      model.RarityEpic,
		HowToEarn:   "Merge a PR without a review (requires specific repo settings).",
		Tiers: []model.TierDefinition{
			{Name: "One-time", Color: "#e3b341", Requirement: "Merge solo"},
		},
	},
	{
		ID:          "arctic-code-vault",
		Name:        "Arctic Code Vault",
		Description: "Code contributed to the 2020 GitHub Archive Program.",
		Icon:        "❄️",
		Category:    model.CategoryHighlight,
		Rarity:      model.RarityLegendary,
		HowToEarn:   "Contributed code before 02/02/2020.",
		Rule:        model.RuleLegacyAccount,
		Retired:     true,
	},
	{
		ID:          "public-sponsor",
		Name:        "GitHub Sponsor",
		Description: "Sponsoring an open source contributor.",
		Icon:        "💖",
		Category:    model.CategoryHighlight,
		Rarity:      model.RarityCommon,
		HowToEarn:   "Sponsor a developer via GitHub Sponsors.",
	},
	{
		ID:          "mars-2020",
		Name:        "Mars 2020",
		Description: "Code contributed to a repository used in the Mars 2020 mission.",
		Icon:        "🚁",
		Category:    model.CategoryHighlight,
		Rarity:      model.RarityLegendary,
		HowToEarn:   "Contributed to specific NASA/JPL libraries.",
		Retired:     true,
	},
}

var defaultCatalog = MustNew(defaultBadges)

// Default returns the built-in badge catalog.
func Default() *Catalog {
	return defaultCatalog
}
