package model

import "time"

// UserProfile is the public profile of a GitHub account.
type UserProfile struct {
	CreatedAt   time.Time `json:"created_at"`
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	Bio         string    `json:"bio"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
}

// UserStats are the aggregate metrics badges are evaluated against.
type UserStats struct {
	TotalStars int `json:"total_stars"`
	MergedPRs  int `json:"merged_prs"`
}

// Value returns the statistic a metric tag refers to. Untagged metrics are 0.
func (s UserStats) Value(m Metric) int {
	switch m {
	case MetricStars:
		return s.TotalStars
	case MetricMergedPRs:
		return s.MergedPRs
	default:
		return 0
	}
}

// Repository is the subset of repository data used for star aggregation.
type Repository struct {
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	StargazersCount int    `json:"stargazers_count"`
	Fork            bool   `json:"fork"`
}
