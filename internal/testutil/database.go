// Package testutil provides test helpers shared across octobadge packages:
// migrated in-memory databases and canned GitHub fixtures.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/octobadge/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new migrated in-memory test database.
// It automatically handles cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, *storage.SQLiteStorage) error
	Preferences    map[string]string
	SkipMigrations bool
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	ctx := context.Background()

	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	for key, value := range opts.Preferences {
		if err := store.SetPreference(ctx, key, value); err != nil {
			t.Fatalf("failed to seed preference %q: %v", key, err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// MustGetPreference returns the stored value for key or fails the test.
func (db *TestDB) MustGetPreference(key string) string {
	db.t.Helper()
	value, err := db.Storage.GetPreference(context.Background(), key)
	if err != nil {
		db.t.Fatalf("failed to get preference %q: %v", key, err)
	}
	return value
}
