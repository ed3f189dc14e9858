// Package github collects profile metrics from the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/octobadge/internal/common"
	"github.com/Veraticus/octobadge/internal/model"
	"github.com/Veraticus/octobadge/internal/service"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public GitHub REST endpoint.
	DefaultBaseURL = "https://api.github.com"
	// DefaultPageSize bounds repository collection to one page.
	DefaultPageSize = 100
	apiVersion      = "2022-11-28"
)

// Config holds GitHub API configuration.
type Config struct {
	BaseURL    string
	Token      string
	UserAgent  string
	PageSize   int
	RateLimit  int // requests per minute
	Timeout    time.Duration
	RetryDelay time.Duration
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: invalid GitHub base URL %q", common.ErrInvalidConfig, c.BaseURL)
		}
	}
	if c.PageSize < 0 || c.PageSize > 100 {
		return fmt.Errorf("%w: GitHub page size must be between 1 and 100", common.ErrInvalidConfig)
	}
	return nil
}

// Client implements the Fetcher interface against the REST API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	retryOpts  service.RetryOptions
	baseURL    string
	userAgent  string
	pageSize   int
}

// NewClient creates a new GitHub client. An empty token makes anonymous
// requests, which GitHub rate limits aggressively.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	pageSize := cfg.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	perMinute := cfg.RateLimit
	if perMinute <= 0 {
		perMinute = 60
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = time.Second
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "octobadge"
	}

	base := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	httpClient := base
	if cfg.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}))
		httpClient.Timeout = timeout
	}

	return &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute),
		logger:     slog.Default().With("component", "github"),
		baseURL:    baseURL,
		userAgent:  userAgent,
		pageSize:   pageSize,
		retryOpts: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: retryDelay,
			MaxDelay:     30 * retryDelay,
			Multiplier:   2.0,
		},
	}, nil
}

type userResponse struct {
	CreatedAt   time.Time `json:"created_at"`
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	Bio         string    `json:"bio"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
}

type searchResponse struct {
	TotalCount int `json:"total_count"`
}

// FetchProfile fetches the public profile of login.
func (c *Client) FetchProfile(ctx context.Context, login string) (model.UserProfile, error) {
	var user userResponse
	err := common.WithRetry(ctx, func() error {
		return c.getJSON(ctx, "/users/"+url.PathEscape(login), nil, &user)
	}, c.retryOpts)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("failed to fetch profile for %s: %w", login, err)
	}

	return model.UserProfile{
		Login:       user.Login,
		Name:        user.Name,
		AvatarURL:   user.AvatarURL,
		Bio:         user.Bio,
		PublicRepos: user.PublicRepos,
		Followers:   user.Followers,
		CreatedAt:   user.CreatedAt,
	}, nil
}

// FetchRepositories fetches one page of the user's public repositories.
func (c *Client) FetchRepositories(ctx context.Context, login string) ([]model.Repository, error) {
	query := url.Values{}
	query.Set("per_page", strconv.Itoa(c.pageSize))
	query.Set("sort", "updated")

	var repos []model.Repository
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(login)+"/repos", query, &repos); err != nil {
		return nil, fmt.Errorf("failed to fetch repositories for %s: %w", login, err)
	}

	c.logger.Debug("Fetched repositories", "login", login, "count", len(repos))
	return repos, nil
}

// FetchMergedPRCount counts merged pull requests authored by login using the
// issue search endpoint.
func (c *Client) FetchMergedPRCount(ctx context.Context, login string) (int, error) {
	query := url.Values{}
	query.Set("q", fmt.Sprintf("author:%s type:pr is:merged", login))
	query.Set("per_page", "1")

	var result searchResponse
	if err := c.getJSON(ctx, "/search/issues", query, &result); err != nil {
		return 0, fmt.Errorf("failed to count merged pull requests for %s: %w", login, err)
	}
	return result.TotalCount, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter canceled: %w", err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &common.RetryableError{Err: fmt.Errorf("request failed: %w", err), Retryable: ctx.Err() == nil}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrUserNotFound
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		c.logger.Warn("GitHub rate limit hit",
			"status", resp.StatusCode,
			"remaining", resp.Header.Get("X-RateLimit-Remaining"),
			"reset", resp.Header.Get("X-RateLimit-Reset"))
		// Quota exhaustion is not retried.
		return &common.RetryableError{Err: common.ErrRateLimit, Retryable: false}
	case resp.StatusCode >= http.StatusInternalServerError:
		return &common.RetryableError{
			Err:       fmt.Errorf("github API error (status %d): %s", resp.StatusCode, string(body)),
			Retryable: true,
		}
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("github API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
