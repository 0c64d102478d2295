package config

import "tidydl/internal/category"

const (
	defaultMinimumFileAgeDays = 7
	defaultDownloadsPath      = "~/Downloads"
	defaultSendNotifications  = true
	defaultHistoryDir         = "~/.local/share/tidydl/history"
	defaultMaxSessions        = 5
	defaultMaxAgeDays         = 30
	defaultNtfyRequestTimeout = 10
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultLogDir             = "~/.local/share/tidydl/logs"
)

// Default returns a Config populated with repository defaults. Every known
// category starts enabled.
func Default() Config {
	enabled := make([]string, 0, len(category.All()))
	for _, cat := range category.All() {
		enabled = append(enabled, cat.String())
	}
	return Config{
		MinimumFileAgeDays: defaultMinimumFileAgeDays,
		DownloadsPath:      defaultDownloadsPath,
		EnabledCategories:  enabled,
		SendNotifications:  defaultSendNotifications,
		History: History{
			Dir:         defaultHistoryDir,
			MaxSessions: defaultMaxSessions,
			MaxAgeDays:  defaultMaxAgeDays,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
	}
}
