package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRarityOrdering(t *testing.T) {
	assert.Less(t, RarityCommon, RarityRare)
	assert.Less(t, RarityRare, RarityEpic)
	assert.Less(t, RarityEpic, RarityLegendary)
}

func TestParseRarity(t *testing.T) {
	tests := []struct {
		input   string
		want    Rarity
		wantErr bool
	}{
		{input: "Common", want: RarityCommon},
		{input: "rare", want: RarityRare},
		{input: "EPIC", want: RarityEpic},
		{input: "Legendary", want: RarityLegendary},
		{input: "mythic", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRarity(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRarityText(t *testing.T) {
	text, err := RarityEpic.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Epic", string(text))

	var r Rarity
	require.NoError(t, r.UnmarshalText([]byte("Legendary")))
	assert.Equal(t, RarityLegendary, r)
	assert.Error(t, r.UnmarshalText([]byte("nope")))
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeSmart, mode)

	mode, err = ParseMode(" Creative ")
	require.NoError(t, err)
	assert.Equal(t, ModeCreative, mode)

	_, err = ParseMode("turbo")
	assert.Error(t, err)
}

func TestParseResolutionTier(t *testing.T) {
	tier, err := ParseResolutionTier("2k")
	require.NoError(t, err)
	assert.Equal(t, Resolution2K, tier)

	_, err = ParseResolutionTier("8K")
	assert.Error(t, err)
}

func TestBadgeDefinitionClone(t *testing.T) {
	def := BadgeDefinition{
		ID:    "starstruck",
		Tiers: []TierDefinition{{Name: "Bronze", Requirement: "16 stars"}},
	}

	clone := def.Clone()
	clone.Tiers[0].Name = "Changed"

	assert.Equal(t, "Bronze", def.Tiers[0].Name)
	assert.True(t, def.HasTiers())
	assert.False(t, BadgeDefinition{}.HasTiers())
}

func TestEvaluatedBadgeHelpers(t *testing.T) {
	badge := EvaluatedBadge{
		Tiers: []EvaluatedTier{
			{Name: "Bronze", Unlocked: true},
			{Name: "Silver", Unlocked: true},
			{Name: "Gold", Unlocked: false},
		},
	}

	assert.Equal(t, 2, badge.UnlockedTiers())
	top, ok := badge.HighestTier()
	require.True(t, ok)
	assert.Equal(t, "Silver", top.Name)

	_, ok = EvaluatedBadge{}.HighestTier()
	assert.False(t, ok)
}

func TestUserStatsValue(t *testing.T) {
	stats := UserStats{TotalStars: 200, MergedPRs: 3}

	assert.Equal(t, 200, stats.Value(MetricStars))
	assert.Equal(t, 3, stats.Value(MetricMergedPRs))
	assert.Equal(t, 0, stats.Value(MetricNone))
}
