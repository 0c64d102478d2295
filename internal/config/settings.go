package config

import (
	"fmt"
	"strconv"
	"strings"

	"tidydl/internal/category"
)

// Setting is one key/value pair of the recognized settings surface.
type Setting struct {
	Key   string
	Value string
}

// settingKeys is the explicit allow-list of keys reachable through Set. Keys
// outside this list are rejected rather than stored.
var settingKeys = []string{
	"minimum_file_age_days",
	"downloads_path",
	"enabled_categories",
	"send_notifications",
	"history.max_sessions",
	"history.max_age_days",
	"notifications.ntfy_topic",
	"logging.format",
	"logging.level",
}

// Settings returns the current values of every recognized key, in a stable
// order suitable for display.
func (c *Config) Settings() []Setting {
	return []Setting{
		{"minimum_file_age_days", strconv.Itoa(c.MinimumFileAgeDays)},
		{"downloads_path", c.DownloadsPath},
		{"enabled_categories", strings.Join(c.EnabledCategories, ", ")},
		{"send_notifications", strconv.FormatBool(c.SendNotifications)},
		{"history.max_sessions", strconv.Itoa(c.History.MaxSessions)},
		{"history.max_age_days", strconv.Itoa(c.History.MaxAgeDays)},
		{"notifications.ntfy_topic", c.Notifications.NtfyTopic},
		{"logging.format", c.Logging.Format},
		{"logging.level", c.Logging.Level},
	}
}

// Set updates one recognized setting and persists the configuration
// immediately. The write is not batched with other changes.
func (c *Config) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	switch key {
	case "minimum_file_age_days":
		days, err := strconv.Atoi(value)
		if err != nil || days < 1 {
			return fmt.Errorf("minimum_file_age_days must be an integer >= 1, got %q", value)
		}
		c.MinimumFileAgeDays = days
	case "downloads_path":
		expanded, err := expandPath(value)
		if err != nil {
			return fmt.Errorf("downloads_path: %w", err)
		}
		c.DownloadsPath = expanded
	case "enabled_categories":
		names := strings.Split(value, ",")
		for _, name := range names {
			if strings.TrimSpace(name) == "" {
				continue
			}
			if _, ok := category.Parse(name); !ok {
				return fmt.Errorf("unknown category %q (known: %s)", strings.TrimSpace(name), knownCategoryNames())
			}
		}
		c.EnabledCategories = canonicalCategories(names)
	case "send_notifications":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("send_notifications must be true or false, got %q", value)
		}
		c.SendNotifications = enabled
	case "history.max_sessions":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("history.max_sessions must be an integer >= 1, got %q", value)
		}
		c.History.MaxSessions = n
	case "history.max_age_days":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("history.max_age_days must be an integer >= 1, got %q", value)
		}
		c.History.MaxAgeDays = n
	case "notifications.ntfy_topic":
		c.Notifications.NtfyTopic = value
	case "logging.format":
		lowered := strings.ToLower(value)
		if lowered != "console" && lowered != "json" {
			return fmt.Errorf("logging.format must be console or json, got %q", value)
		}
		c.Logging.Format = lowered
	case "logging.level":
		lowered := strings.ToLower(value)
		switch lowered {
		case "debug", "info", "warn", "error":
			c.Logging.Level = lowered
		default:
			return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", value)
		}
	default:
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(settingKeys, ", "))
	}

	return c.Save()
}

func knownCategoryNames() string {
	names := make([]string, 0, len(category.All()))
	for _, cat := range category.All() {
		names = append(names, cat.String())
	}
	return strings.Join(names, ", ")
}
