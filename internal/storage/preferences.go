package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/octobadge/internal/common"
)

// ThemeKey is the preference key holding the UI theme.
const ThemeKey = "ui.theme"

// Theme names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ParseTheme validates a theme name.
func ParseTheme(name string) (string, error) {
	switch theme := strings.ToLower(strings.TrimSpace(name)); theme {
	case ThemeDark, ThemeLight:
		return theme, nil
	default:
		return "", fmt.Errorf("%w: %q (want %s or %s)", ErrInvalidTheme, name, ThemeDark, ThemeLight)
	}
}

// GetPreference returns the value stored under key, or common.ErrNotFound.
func (s *SQLiteStorage) GetPreference(ctx context.Context, key string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateKey(key); err != nil {
		return "", err
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("preference %q: %w", key, common.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get preference %q: %w", key, err)
	}
	return value, nil
}

// SetPreference stores value under key, replacing any previous value.
func (s *SQLiteStorage) SetPreference(ctx context.Context, key, value string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set preference %q: %w", key, err)
	}
	return nil
}

// DeletePreference removes key. Deleting a missing key is not an error.
func (s *SQLiteStorage) DeletePreference(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete preference %q: %w", key, err)
	}
	return nil
}

// PreferenceStore is the subset of storage the theme helpers need.
type PreferenceStore interface {
	GetPreference(ctx context.Context, key string) (string, error)
	SetPreference(ctx context.Context, key, value string) error
}

// LoadTheme returns the persisted theme, or fallback when none is stored or
// the stored value is not a known theme.
func LoadTheme(ctx context.Context, store PreferenceStore, fallback string) (string, error) {
	value, err := store.GetPreference(ctx, ThemeKey)
	if errors.Is(err, common.ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}

	theme, parseErr := ParseTheme(value)
	if parseErr != nil {
		return fallback, nil
	}
	return theme, nil
}

// SaveTheme validates and persists theme.
func SaveTheme(ctx context.Context, store PreferenceStore, theme string) error {
	parsed, err := ParseTheme(theme)
	if err != nil {
		return err
	}
	return store.SetPreference(ctx, ThemeKey, parsed)
}
