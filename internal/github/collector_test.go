package github

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/octobadge/internal/common"
	"github.com/Veraticus/octobadge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedCollector(fetcher Fetcher) *Collector {
	c := NewCollector(fetcher)
	c.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	return c
}

func TestCollector_Collect(t *testing.T) {
	fetcher := NewMockFetcher()
	fetcher.FetchProfileFn = func(_ context.Context, login string) (model.UserProfile, error) {
		return model.UserProfile{Login: login, Followers: 3}, nil
	}
	fetcher.FetchRepositoriesFn = func(_ context.Context, _ string) ([]model.Repository, error) {
		return []model.Repository{{StargazersCount: 120}, {StargazersCount: 80}}, nil
	}
	fetcher.FetchMergedPRCountFn = func(_ context.Context, _ string) (int, error) {
		return 3, nil
	}

	snap, err := fixedCollector(fetcher).Collect(context.Background(), " octocat ")
	require.NoError(t, err)

	assert.Equal(t, "octocat", snap.Profile.Login)
	assert.Equal(t, model.UserStats{TotalStars: 200, MergedPRs: 3}, snap.Stats)
	assert.Equal(t, 2026, snap.CollectedAt.Year())
	assert.Equal(t, []string{"octocat"}, fetcher.ProfileCalls)
	assert.Equal(t, []string{"octocat"}, fetcher.RepositoryCalls)
	assert.Equal(t, 1, fetcher.MergedPRCallCount)
}

func TestCollector_MergedPRFailureDegradesToZero(t *testing.T) {
	fetcher := NewMockFetcher()
	fetcher.FetchRepositoriesFn = func(_ context.Context, _ string) ([]model.Repository, error) {
		return []model.Repository{{StargazersCount: 16}}, nil
	}
	fetcher.FetchMergedPRCountFn = func(_ context.Context, _ string) (int, error) {
		return 0, errors.New("search endpoint down")
	}

	snap, err := fixedCollector(fetcher).Collect(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, "octocat", snap.Profile.Login)
	assert.Equal(t, 16, snap.Stats.TotalStars)
	assert.Equal(t, 0, snap.Stats.MergedPRs)
}

func TestCollector_RepositoryFailureDegradesToZero(t *testing.T) {
	fetcher := NewMockFetcher()
	fetcher.FetchRepositoriesFn = func(_ context.Context, _ string) ([]model.Repository, error) {
		return nil, errors.New("boom")
	}
	fetcher.FetchMergedPRCountFn = func(_ context.Context, _ string) (int, error) {
		return 7, nil
	}

	snap, err := fixedCollector(fetcher).Collect(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, model.UserStats{TotalStars: 0, MergedPRs: 7}, snap.Stats)
}

func TestCollector_ProfileFailurePropagates(t *testing.T) {
	fetcher := NewMockFetcher()
	fetcher.FetchProfileFn = func(_ context.Context, _ string) (model.UserProfile, error) {
		return model.UserProfile{}, common.ErrUserNotFound
	}

	_, err := fixedCollector(fetcher).Collect(context.Background(), "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestCollector_RequiresLogin(t *testing.T) {
	fetcher := NewMockFetcher()

	_, err := fixedCollector(fetcher).Collect(context.Background(), "   ")
	require.Error(t, err)
	assert.Empty(t, fetcher.ProfileCalls)
}
