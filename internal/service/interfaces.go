// Package service defines the interfaces shared between application services.
package service

import (
	"context"
	"time"
)

// Storage defines the contract for our persistence layer.
// The only durable state is a small set of user preferences.
type Storage interface {
	GetPreference(ctx context.Context, key string) (string, error)
	SetPreference(ctx context.Context, key, value string) error
	DeletePreference(ctx context.Context, key string) error

	// Database management
	SchemaVersion(ctx context.Context) (int, error)
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations that reach GitHub
// or a generative provider.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
