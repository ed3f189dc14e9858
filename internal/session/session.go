// Package session holds one user's connected profile and evaluated badges.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/octobadge/internal/achievement"
	"github.com/Veraticus/octobadge/internal/catalog"
	"github.com/Veraticus/octobadge/internal/common"
	"github.com/Veraticus/octobadge/internal/github"
	"github.com/Veraticus/octobadge/internal/model"
)

// ConnectErrorMessage is shown when a profile cannot be collected.
const ConnectErrorMessage = "User not found or API limit exceeded"

// Collector gathers a user's metrics.
type Collector interface {
	Collect(ctx context.Context, login string) (github.Snapshot, error)
}

// Session is the state behind one dashboard: the connected profile, its
// stats, the evaluated badges and the last connect error. Badge state is
// never persisted.
type Session struct {
	collector   Collector
	engine      *achievement.Engine
	catalog     *catalog.Catalog
	badges      *achievement.Collection
	profile     *model.UserProfile
	logger      *slog.Logger
	connectedAt time.Time
	errMsg      string
	stats       model.UserStats
	mu          sync.RWMutex
}

// New creates an unconnected session evaluated against zero metrics.
func New(cat *catalog.Catalog, engine *achievement.Engine, collector Collector) *Session {
	return &Session{
		collector: collector,
		engine:    engine,
		catalog:   cat,
		badges:    achievement.NewCollection(engine.Evaluate(cat, model.UserStats{}, model.UserProfile{})),
		logger:    slog.Default().With("component", "session"),
	}
}

// Connect collects login's metrics and re-evaluates every badge, keeping
// manual ownership flags. On failure the session shows ConnectErrorMessage,
// drops any connected profile, and re-evaluates against zero metrics.
func (s *Session) Connect(ctx context.Context, login string) error {
	login = strings.TrimSpace(login)
	if login == "" {
		return common.NewUserError("Enter a GitHub username to connect", common.ErrInvalidConfig)
	}

	snap, err := s.collector.Collect(ctx, login)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		common.LogError(s.logger, err, "Connect failed", common.Fields{"login": login})
		s.errMsg = ConnectErrorMessage
		s.profile = nil
		s.stats = model.UserStats{}
		s.connectedAt = time.Time{}
		s.badges.Replace(s.engine.EvaluateWith(s.catalog, s.stats, model.UserProfile{}, s.badges.Badges()))
		return common.NewUserError(ConnectErrorMessage, err)
	}

	profile := snap.Profile
	s.errMsg = ""
	s.profile = &profile
	s.stats = snap.Stats
	s.connectedAt = snap.CollectedAt
	s.badges.Replace(s.engine.EvaluateWith(s.catalog, s.stats, profile, s.badges.Badges()))

	summary := s.badges.Summary()
	s.logger.Info("Connected",
		"login", profile.Login,
		"owned", summary.Owned,
		"total", summary.Total)
	return nil
}

// Toggle flips the manual ownership flag of one badge.
func (s *Session) Toggle(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned, ok := s.badges.Toggle(id)
	if !ok {
		return false, fmt.Errorf("badge %q: %w", id, common.ErrNotFound)
	}
	return owned, nil
}

// Badges returns the evaluated badges in catalog order.
func (s *Session) Badges() []model.EvaluatedBadge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.badges.Badges()
}

// Badge returns one evaluated badge.
func (s *Session) Badge(id string) (model.EvaluatedBadge, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.badges.Get(id)
}

// Profile returns the connected profile, if any.
func (s *Session) Profile() (model.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return model.UserProfile{}, false
	}
	return *s.profile, true
}

// Stats returns the metrics of the last successful connect.
func (s *Session) Stats() model.UserStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// ConnectedAt returns when the current metrics were collected.
func (s *Session) ConnectedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connectedAt
}

// Err returns the visible error of the last connect, or "".
func (s *Session) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// Summary returns collection progress and the next goal.
func (s *Session) Summary() achievement.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.badges.Summary()
}

// Catalog returns the catalog the session evaluates.
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}
