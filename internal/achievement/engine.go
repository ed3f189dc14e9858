// Package achievement evaluates catalog badges against a user's metrics.
package achievement

import (
	"time"

	"github.com/Veraticus/octobadge/internal/catalog"
	"github.com/Veraticus/octobadge/internal/model"
)

// Engine turns catalog definitions plus user metrics into evaluated badges.
// Evaluation is pure: the same inputs always give the same output and the
// catalog is never modified.
type Engine struct {
	rules map[model.Rule]OwnershipRule
}

// Option configures an Engine.
type Option func(*Engine)

// WithLegacyCutoff overrides the account-age cutoff of the legacy rule.
func WithLegacyCutoff(cutoff time.Time) Option {
	return func(e *Engine) {
		e.rules[model.RuleLegacyAccount] = LegacyAccountRule{Cutoff: cutoff}
	}
}

// WithRule registers a rule for a tag, replacing any existing one.
func WithRule(tag model.Rule, rule OwnershipRule) Option {
	return func(e *Engine) {
		e.rules[tag] = rule
	}
}

// NewEngine creates an engine with the built-in rules.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rules: map[model.Rule]OwnershipRule{
			model.RuleLegacyAccount: LegacyAccountRule{Cutoff: DefaultLegacyCutoff},
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate evaluates every badge with no prior ownership.
func (e *Engine) Evaluate(cat *catalog.Catalog, stats model.UserStats, profile model.UserProfile) []model.EvaluatedBadge {
	return e.EvaluateWith(cat, stats, profile, nil)
}

// EvaluateWith evaluates every badge, seeding each badge's incoming ownership
// from prior (matched by id). Only badges with neither tiers nor a rule keep
// that seeded value; everything else is re-derived.
func (e *Engine) EvaluateWith(cat *catalog.Catalog, stats model.UserStats, profile model.UserProfile, prior []model.EvaluatedBadge) []model.EvaluatedBadge {
	owned := make(map[string]bool, len(prior))
	for _, b := range prior {
		owned[b.ID] = b.Owned
	}

	defs := cat.All()
	out := make([]model.EvaluatedBadge, 0, len(defs))
	for _, def := range defs {
		out = append(out, e.evaluateBadge(def, stats, profile, owned[def.ID]))
	}
	return out
}

func (e *Engine) evaluateBadge(def model.BadgeDefinition, stats model.UserStats, profile model.UserProfile, incoming bool) model.EvaluatedBadge {
	badge := model.EvaluatedBadge{
		BadgeDefinition: def,
		Owned:           incoming,
	}

	if def.HasTiers() {
		metric := stats.Value(def.Metric)
		badge.Tiers = make([]model.EvaluatedTier, len(def.Tiers))
		for i, tier := range def.Tiers {
			threshold := ParseThreshold(tier.Requirement)
			badge.Tiers[i] = model.EvaluatedTier{
				Name:        tier.Name,
				Color:       tier.Color,
				Requirement: tier.Requirement,
				Threshold:   threshold,
				Progress:    metric,
				Unlocked:    metric >= threshold,
			}
		}
	}

	// Rule first, tiers last: when both exist the tiers win.
	if rule, ok := e.rules[def.Rule]; ok && def.Rule != model.RuleNone {
		badge.Owned = rule.Owned(def, profile)
	}

	if badge.HasTiers() {
		badge.Owned = badge.UnlockedTiers() > 0
	}

	return badge
}
