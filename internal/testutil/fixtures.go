package testutil

import (
	"context"
	"time"

	"github.com/Veraticus/octobadge/internal/github"
	"github.com/Veraticus/octobadge/internal/model"
)

// LegacyCreatedAt is an account creation time before the Arctic Code Vault
// cutoff.
var LegacyCreatedAt = time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)

// Profile returns a profile fixture for login.
func Profile(login string, createdAt time.Time) model.UserProfile {
	return model.UserProfile{
		Login:       login,
		Name:        "The " + login,
		AvatarURL:   "https://avatars.githubusercontent.com/" + login,
		PublicRepos: 8,
		Followers:   42,
		CreatedAt:   createdAt,
	}
}

// NewFetcher returns a mock fetcher reporting a single repository with stars
// stars, prs merged pull requests, and an account created at createdAt.
func NewFetcher(stars, prs int, createdAt time.Time) *github.MockFetcher {
	f := github.NewMockFetcher()
	f.FetchProfileFn = func(_ context.Context, login string) (model.UserProfile, error) {
		return Profile(login, createdAt), nil
	}
	f.FetchRepositoriesFn = func(_ context.Context, login string) ([]model.Repository, error) {
		return []model.Repository{{Name: "hello-world", FullName: login + "/hello-world", StargazersCount: stars}}, nil
	}
	f.FetchMergedPRCountFn = func(context.Context, string) (int, error) {
		return prs, nil
	}
	return f
}
