package achievement

import (
	"time"

	"github.com/Veraticus/octobadge/internal/model"
)

// DefaultLegacyCutoff is the GitHub Archive Program snapshot date.
var DefaultLegacyCutoff = time.Date(2020, time.February, 2, 0, 0, 0, 0, time.UTC)

// OwnershipRule derives ownership of a badge from the user's profile.
type OwnershipRule interface {
	Owned(def model.BadgeDefinition, profile model.UserProfile) bool
}

// LegacyAccountRule grants a badge to accounts created strictly before Cutoff.
// A profile without a creation time never qualifies.
type LegacyAccountRule struct {
	Cutoff time.Time
}

// Owned implements OwnershipRule.
func (r LegacyAccountRule) Owned(_ model.BadgeDefinition, profile model.UserProfile) bool {
	if profile.CreatedAt.IsZero() {
		return false
	}
	return profile.CreatedAt.Before(r.Cutoff)
}
