package achievement

import (
	"testing"

	"github.com/Veraticus/octobadge/internal/catalog"
	"github.com/Veraticus/octobadge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollection(t *testing.T, stats model.UserStats, created string) *Collection {
	t.Helper()
	return NewCollection(NewEngine().Evaluate(catalog.Default(), stats, profileCreated(t, created)))
}

func TestCollection_ToggleDoubleNegation(t *testing.T) {
	c := newTestCollection(t, model.UserStats{}, "2021-01-01")
	before := c.Badges()

	owned, ok := c.Toggle("public-sponsor")
	require.True(t, ok)
	assert.True(t, owned)

	owned, ok = c.Toggle("public-sponsor")
	require.True(t, ok)
	assert.False(t, owned)

	assert.Equal(t, before, c.Badges())
}

func TestCollection_ToggleTouchesOnlyOneBadge(t *testing.T) {
	c := newTestCollection(t, model.UserStats{TotalStars: 200}, "2019-01-01")
	before := c.Badges()

	_, ok := c.Toggle("mars-2020")
	require.True(t, ok)

	after := c.Badges()
	for i := range before {
		if before[i].ID == "mars-2020" {
			assert.NotEqual(t, before[i].Owned, after[i].Owned)
			continue
		}
		assert.Equal(t, before[i], after[i])
	}
}

func TestCollection_ToggleUnknown(t *testing.T) {
	c := newTestCollection(t, model.UserStats{}, "2021-01-01")

	_, ok := c.Toggle("nope")
	assert.False(t, ok)
}

func TestCollection_ToggleTieredThenReevaluate(t *testing.T) {
	engine := NewEngine()
	stats := model.UserStats{TotalStars: 200}
	c := NewCollection(engine.Evaluate(catalog.Default(), stats, model.UserProfile{}))

	// Manual clear on a tiered badge sticks until the next evaluation...
	owned, ok := c.Toggle("starstruck")
	require.True(t, ok)
	assert.False(t, owned)
	badge, _ := c.Get("starstruck")
	assert.False(t, badge.Owned)

	// ...which re-derives it from the tiers.
	c.Replace(engine.EvaluateWith(catalog.Default(), stats, model.UserProfile{}, c.Badges()))
	badge, _ = c.Get("starstruck")
	assert.True(t, badge.Owned)
}

func TestCollection_Summary(t *testing.T) {
	c := newTestCollection(t, model.UserStats{TotalStars: 200, MergedPRs: 3}, "2019-01-01")

	s := c.Summary()
	assert.Equal(t, 7, s.Total)
	// starstruck, pull-shark, yolo, arctic-code-vault
	assert.Equal(t, 4, s.Owned)
	assert.Equal(t, 4, s.AchievementsTotal)
	assert.Equal(t, 3, s.AchievementsOwned)
	require.NotNil(t, s.NextGoal)
	assert.Equal(t, "quickdraw", s.NextGoal.ID)
}

func TestCollection_SummaryPrefersRarestGoal(t *testing.T) {
	// No stars, no PRs: yolo (Epic) is still unlocked by its zero threshold,
	// leaving starstruck, quickdraw and pull-shark; quickdraw is the rarest.
	c := newTestCollection(t, model.UserStats{}, "2021-01-01")

	s := c.Summary()
	require.NotNil(t, s.NextGoal)
	assert.Equal(t, "quickdraw", s.NextGoal.ID)
	assert.Equal(t, 1, s.Owned)
}

func TestCollection_SummaryNoGoal(t *testing.T) {
	c := NewCollection(nil)

	s := c.Summary()
	assert.Nil(t, s.NextGoal)
	assert.Zero(t, s.Total)
}
