package github

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/octobadge/internal/model"
	"golang.org/x/sync/errgroup"
)

// Snapshot is a point-in-time collection of one user's metrics.
type Snapshot struct {
	CollectedAt time.Time
	Profile     model.UserProfile
	Stats       model.UserStats
}

// Collector combines the three metric sub-fetches into a Snapshot.
type Collector struct {
	fetcher Fetcher
	logger  *slog.Logger
	now     func() time.Time
}

// NewCollector creates a collector over fetcher.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{
		fetcher: fetcher,
		logger:  slog.Default().With("component", "collector"),
		now:     time.Now,
	}
}

// Collect fetches profile, repositories and merged pull request count
// concurrently. Only a profile failure fails the collection; a failed
// repository fetch yields 0 stars and a failed count yields 0 merged PRs.
func (c *Collector) Collect(ctx context.Context, login string) (Snapshot, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return Snapshot{}, errors.New("login is required")
	}

	var (
		profile   model.UserProfile
		stars     int
		mergedPRs int
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := c.fetcher.FetchProfile(gctx, login)
		if err != nil {
			return err
		}
		profile = p
		return nil
	})

	g.Go(func() error {
		repos, err := c.fetcher.FetchRepositories(gctx, login)
		if err != nil {
			c.logger.Warn("Repository fetch failed, counting 0 stars", "login", login, "error", err)
			return nil
		}
		stars = SumStars(repos)
		return nil
	})

	g.Go(func() error {
		count, err := c.fetcher.FetchMergedPRCount(gctx, login)
		if err != nil {
			c.logger.Warn("Merged PR count failed, counting 0", "login", login, "error", err)
			return nil
		}
		mergedPRs = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	c.logger.Info("Collected GitHub metrics",
		"login", profile.Login,
		"total_stars", stars,
		"merged_prs", mergedPRs)

	return Snapshot{
		Profile:     profile,
		Stats:       model.UserStats{TotalStars: stars, MergedPRs: mergedPRs},
		CollectedAt: c.now(),
	}, nil
}

// SumStars adds up the star counts of repos.
func SumStars(repos []model.Repository) int {
	total := 0
	for _, r := range repos {
		total += r.StargazersCount
	}
	return total
}
