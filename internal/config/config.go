package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// History contains configuration for the undo manifest store.
type History struct {
	Dir         string `toml:"dir"`
	MaxSessions int    `toml:"max_sessions"`
	MaxAgeDays  int    `toml:"max_age_days"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for tidydl.
//
// The top-level keys mirror the settings document: minimum file age before a
// download becomes eligible, the downloads directory to organize, the enabled
// category names, and the notification preference. Sections cover the manifest
// store, ntfy delivery, and log output.
type Config struct {
	MinimumFileAgeDays int      `toml:"minimum_file_age_days"`
	DownloadsPath      string   `toml:"downloads_path"`
	EnabledCategories  []string `toml:"enabled_categories"`
	SendNotifications  bool     `toml:"send_notifications"`

	History       History       `toml:"history"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`

	path string
}

// LoadResult reports where the configuration came from and any recoverable
// problems encountered on the way. DecodeErr is set when the file was
// malformed and defaults were substituted; WriteErr is set when the initial
// default file could not be written. Neither aborts loading.
type LoadResult struct {
	Path      string
	Exists    bool
	DecodeErr error
	WriteErr  error
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/tidydl/config.toml")
}

// Load locates and parses the configuration file. A missing file is created
// with defaults; a malformed file falls back to defaults without overwriting
// the broken content. The returned config has all path fields expanded and
// repairable values clamped.
func Load(path string) (*Config, LoadResult, error) {
	cfg := Default()
	var result LoadResult

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, result, err
	}
	result.Path = resolvedPath
	result.Exists = exists
	cfg.path = resolvedPath

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, result, fmt.Errorf("open config: %w", err)
		}
		decodeErr := toml.NewDecoder(file).Decode(&cfg)
		file.Close()
		if decodeErr != nil {
			// Broken file stays on disk untouched; run with defaults.
			cfg = Default()
			cfg.path = resolvedPath
			result.DecodeErr = fmt.Errorf("parse config: %w", decodeErr)
		}
	} else {
		if err := cfg.Save(); err != nil {
			result.WriteErr = err
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, result, err
	}

	return &cfg, result, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if strings.TrimSpace(path) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		path = defaultPath
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(expanded); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return expanded, true, nil
}

// Path returns the file backing this configuration.
func (c *Config) Path() string {
	return c.path
}

// SetPath overrides the file backing this configuration. Used by tests and by
// callers constructing configs without Load.
func (c *Config) SetPath(path string) {
	c.path = path
}

// Save persists the configuration to its backing file immediately.
func (c *Config) Save() error {
	if strings.TrimSpace(c.path) == "" {
		return errors.New("config has no backing path")
	}
	if dir := filepath.Dir(c.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// EnsureDirectories creates the directories the organizer and undo log need.
// The downloads directory itself is never created here; a missing source is a
// validation failure, not something to paper over.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.History.Dir, c.Logging.Dir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
