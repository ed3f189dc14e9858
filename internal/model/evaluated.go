package model

// EvaluatedTier is a tier with progress derived from user statistics.
// Unlocked is always Progress >= Threshold.
type EvaluatedTier struct {
	Name        string
	Color       string
	Requirement string
	Threshold   int
	Progress    int
	Unlocked    bool
}

// EvaluatedBadge is a catalog badge combined with one user's ownership state.
type EvaluatedBadge struct {
	BadgeDefinition
	Tiers []EvaluatedTier
	Owned bool
}

// HasTiers reports whether the evaluated badge carries tier progress.
func (b EvaluatedBadge) HasTiers() bool {
	return len(b.Tiers) > 0
}

// UnlockedTiers counts the unlocked tiers.
func (b EvaluatedBadge) UnlockedTiers() int {
	n := 0
	for _, t := range b.Tiers {
		if t.Unlocked {
			n++
		}
	}
	return n
}

// HighestTier returns the last unlocked tier in definition order.
func (b EvaluatedBadge) HighestTier() (EvaluatedTier, bool) {
	for i := len(b.Tiers) - 1; i >= 0; i-- {
		if b.Tiers[i].Unlocked {
			return b.Tiers[i], true
		}
	}
	return EvaluatedTier{}, false
}

// Clone returns a deep copy of the evaluated badge.
func (b EvaluatedBadge) Clone() EvaluatedBadge {
	b.BadgeDefinition = b.BadgeDefinition.Clone()
	if b.Tiers != nil {
		tiers := make([]EvaluatedTier, len(b.Tiers))
		copy(tiers, b.Tiers)
		b.Tiers = tiers
	}
	return b
}
