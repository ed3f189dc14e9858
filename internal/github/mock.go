package github

import (
	"context"
	"sync"

	"github.com/Veraticus/octobadge/internal/model"
)

// MockFetcher is a mock implementation of Fetcher for testing. It is safe for
// the concurrent calls Collector makes.
type MockFetcher struct {
	// Functions that can be set by tests to control behavior
	FetchProfileFn       func(ctx context.Context, login string) (model.UserProfile, error)
	FetchRepositoriesFn  func(ctx context.Context, login string) ([]model.Repository, error)
	FetchMergedPRCountFn func(ctx context.Context, login string) (int, error)

	// Call tracking
	ProfileCalls      []string
	RepositoryCalls   []string
	MergedPRCallCount int

	mu sync.Mutex
}

// NewMockFetcher creates a new mock fetcher.
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{}
}

// FetchProfile implements Fetcher.FetchProfile.
func (m *MockFetcher) FetchProfile(ctx context.Context, login string) (model.UserProfile, error) {
	m.mu.Lock()
	m.ProfileCalls = append(m.ProfileCalls, login)
	m.mu.Unlock()

	if m.FetchProfileFn != nil {
		return m.FetchProfileFn(ctx, login)
	}
	return model.UserProfile{Login: login}, nil
}

// FetchRepositories implements Fetcher.FetchRepositories.
func (m *MockFetcher) FetchRepositories(ctx context.Context, login string) ([]model.Repository, error) {
	m.mu.Lock()
	m.RepositoryCalls = append(m.RepositoryCalls, login)
	m.mu.Unlock()

	if m.FetchRepositoriesFn != nil {
		return m.FetchRepositoriesFn(ctx, login)
	}
	return []model.Repository{}, nil
}

// FetchMergedPRCount implements Fetcher.FetchMergedPRCount.
func (m *MockFetcher) FetchMergedPRCount(ctx context.Context, login string) (int, error) {
	m.mu.Lock()
	m.MergedPRCallCount++
	m.mu.Unlock()

	if m.FetchMergedPRCountFn != nil {
		return m.FetchMergedPRCountFn(ctx, login)
	}
	return 0, nil
}
