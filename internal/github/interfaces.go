package github

import (
	"context"

	"github.com/Veraticus/octobadge/internal/model"
)

// Fetcher defines the contract for fetching the metrics badges are evaluated
// against. This interface allows for easy mocking in tests.
type Fetcher interface {
	FetchProfile(ctx context.Context, login string) (model.UserProfile, error)
	FetchRepositories(ctx context.Context, login string) ([]model.Repository, error)
	FetchMergedPRCount(ctx context.Context, login string) (int, error)
}
