package achievement

import "github.com/Veraticus/octobadge/internal/model"

// Collection is one session's evaluated badge list. It is not safe for
// concurrent use; a session owns exactly one.
type Collection struct {
	index  map[string]int
	badges []model.EvaluatedBadge
}

// NewCollection wraps an evaluation result.
func NewCollection(badges []model.EvaluatedBadge) *Collection {
	c := &Collection{}
	c.Replace(badges)
	return c
}

// Replace swaps in a fresh evaluation.
func (c *Collection) Replace(badges []model.EvaluatedBadge) {
	c.badges = make([]model.EvaluatedBadge, len(badges))
	c.index = make(map[string]int, len(badges))
	for i, b := range badges {
		c.badges[i] = b.Clone()
		c.index[b.ID] = i
	}
}

// Badges returns copies of the evaluated badges in catalog order.
func (c *Collection) Badges() []model.EvaluatedBadge {
	out := make([]model.EvaluatedBadge, len(c.badges))
	for i, b := range c.badges {
		out[i] = b.Clone()
	}
	return out
}

// Get returns a copy of one evaluated badge.
func (c *Collection) Get(id string) (model.EvaluatedBadge, bool) {
	i, ok := c.index[id]
	if !ok {
		return model.EvaluatedBadge{}, false
	}
	return c.badges[i].Clone(), true
}

// Toggle flips the ownership flag of one badge and returns the new value.
// Nothing else is re-evaluated. Toggling a tiered badge is allowed, but the
// next full evaluation re-derives its ownership from the tiers.
func (c *Collection) Toggle(id string) (bool, bool) {
	i, ok := c.index[id]
	if !ok {
		return false, false
	}
	c.badges[i].Owned = !c.badges[i].Owned
	return c.badges[i].Owned, true
}

// Summary is the collection progress shown on the stats dashboard.
type Summary struct {
	NextGoal          *model.BadgeDefinition
	Owned             int
	Total             int
	AchievementsOwned int
	AchievementsTotal int
}

// Summary computes ownership counts and the next goal: the first badge, in
// catalog order, among the unowned active achievements of the highest rarity.
func (c *Collection) Summary() Summary {
	s := Summary{Total: len(c.badges)}
	var goal *model.EvaluatedBadge

	for i := range c.badges {
		b := &c.badges[i]
		if b.Owned {
			s.Owned++
		}
		if b.Category != model.CategoryAchievement {
			continue
		}
		s.AchievementsTotal++
		if b.Owned {
			s.AchievementsOwned++
			continue
		}
		if b.Retired {
			continue
		}
		if goal == nil || b.Rarity > goal.Rarity {
			goal = b
		}
	}

	if goal != nil {
		def := goal.BadgeDefinition.Clone()
		s.NextGoal = &def
	}
	return s
}
