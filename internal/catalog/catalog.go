// Package catalog holds the immutable table of badge definitions.
package catalog

import (
	"fmt"

	"github.com/Veraticus/octobadge/internal/model"
)

// Catalog is a read-only, ordered set of badge definitions. It is safe for
// concurrent use because nothing mutates it after construction.
type Catalog struct {
	index  map[string]int
	badges []model.BadgeDefinition
}

// New builds a catalog, rejecting empty or duplicate ids.
func New(defs []model.BadgeDefinition) (*Catalog, error) {
	c := &Catalog{
		badges: make([]model.BadgeDefinition, 0, len(defs)),
		index:  make(map[string]int, len(defs)),
	}
	for i, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("badge at index %d has no id", i)
		}
		if _, dup := c.index[def.ID]; dup {
			return nil, fmt.Errorf("duplicate badge id %q", def.ID)
		}
		c.index[def.ID] = len(c.badges)
		c.badges = append(c.badges, def.Clone())
	}
	return c, nil
}

// MustNew is New for package-level tables known to be valid.
func MustNew(defs []model.BadgeDefinition) *Catalog {
	c, err := New(defs)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of badges.
func (c *Catalog) Len() int {
	return len(c.badges)
}

// All returns copies of every definition in catalog order.
func (c *Catalog) All() []model.BadgeDefinition {
	out := make([]model.BadgeDefinition, len(c.badges))
	for i, def := range c.badges {
		out[i] = def.Clone()
	}
	return out
}

// Lookup finds a definition by id.
func (c *Catalog) Lookup(id string) (model.BadgeDefinition, bool) {
	i, ok := c.index[id]
	if !ok {
		return model.BadgeDefinition{}, false
	}
	return c.badges[i].Clone(), true
}

// ByCategory returns the definitions in a category, in catalog order.
func (c *Catalog) ByCategory(category model.Category) []model.BadgeDefinition {
	return c.filter(func(def model.BadgeDefinition) bool { return def.Category == category })
}

// ByRarity returns the definitions of a rarity, in catalog order.
func (c *Catalog) ByRarity(rarity model.Rarity) []model.BadgeDefinition {
	return c.filter(func(def model.BadgeDefinition) bool { return def.Rarity == rarity })
}

// Featured returns the Epic and Legendary badges shown in the hero ribbon.
func (c *Catalog) Featured() []model.BadgeDefinition {
	return c.filter(func(def model.BadgeDefinition) bool { return def.Rarity >= model.RarityEpic })
}

// RarityCount is one bar of the rarity distribution.
type RarityCount struct {
	Rarity model.Rarity
	Count  int
}

// RarityDistribution counts badges per rarity, Common through Legendary.
func (c *Catalog) RarityDistribution() []RarityCount {
	counts := make([]RarityCount, len(model.Rarities))
	for i, r := range model.Rarities {
		counts[i].Rarity = r
	}
	for _, def := range c.badges {
		if int(def.Rarity) >= 0 && int(def.Rarity) < len(counts) {
			counts[def.Rarity].Count++
		}
	}
	return counts
}

func (c *Catalog) filter(keep func(model.BadgeDefinition) bool) []model.BadgeDefinition {
	var out []model.BadgeDefinition
	for _, def := range c.badges {
		if keep(def) {
			out = append(out, def.Clone())
		}
	}
	return out
}
