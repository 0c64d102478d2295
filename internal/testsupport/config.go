package testsupport

import (
	"path/filepath"
	"testing"

	"tidydl/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// The downloads directory exists and is empty; every category is enabled.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.DownloadsPath = filepath.Join(base, "downloads")
	cfg.History.Dir = filepath.Join(base, "history")
	cfg.Logging.Dir = filepath.Join(base, "logs")
	cfg.SetPath(filepath.Join(base, "config.toml"))

	MkdirAll(t, cfg.DownloadsPath)

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithMinimumAge overrides the minimum file age in days.
func WithMinimumAge(days int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.MinimumFileAgeDays = days
	}
}

// WithEnabledCategories restricts the enabled category names.
func WithEnabledCategories(names ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.EnabledCategories = names
	}
}

// WithMaxSessions overrides the manifest retention count.
func WithMaxSessions(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.History.MaxSessions = n
	}
}
