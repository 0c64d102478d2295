package config

import (
	"fmt"
	"strings"

	"tidydl/internal/category"
)

// normalize expands paths and clamps repairable values. Unknown enabled
// categories are dropped rather than rejected; known names are canonicalized
// regardless of the casing the user typed.
func (c *Config) normalize() error {
	var err error
	if c.DownloadsPath, err = expandPath(c.DownloadsPath); err != nil {
		return fmt.Errorf("downloads_path: %w", err)
	}
	if strings.TrimSpace(c.History.Dir) == "" {
		c.History.Dir = defaultHistoryDir
	}
	if c.History.Dir, err = expandPath(c.History.Dir); err != nil {
		return fmt.Errorf("history.dir: %w", err)
	}
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = defaultLogDir
	}
	if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}

	if c.MinimumFileAgeDays < 1 {
		c.MinimumFileAgeDays = defaultMinimumFileAgeDays
	}
	if c.History.MaxSessions < 1 {
		c.History.MaxSessions = defaultMaxSessions
	}
	if c.History.MaxAgeDays < 1 {
		c.History.MaxAgeDays = defaultMaxAgeDays
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyRequestTimeout
	}
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)

	c.EnabledCategories = canonicalCategories(c.EnabledCategories)
	c.normalizeLogging()
	return nil
}

func canonicalCategories(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[category.Category]struct{}, len(names))
	for _, name := range names {
		cat, ok := category.Parse(name)
		if !ok {
			continue
		}
		if _, dup := seen[cat]; dup {
			continue
		}
		seen[cat] = struct{}{}
		out = append(out, cat.String())
	}
	return out
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// CategoryEnabled reports whether the given category may receive files.
func (c *Config) CategoryEnabled(cat category.Category) bool {
	for _, name := range c.EnabledCategories {
		if name == cat.String() {
			return true
		}
	}
	return false
}
