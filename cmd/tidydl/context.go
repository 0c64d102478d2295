package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"tidydl/internal/config"
	"tidydl/internal/logging"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool
	quietFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, verboseFlag, quietFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
		quietFlag:   quietFlag,
	}
}

func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, result, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if result.DecodeErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v; using defaults (file left untouched)\n", result.DecodeErr)
		}
		if result.WriteErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not write default config: %v\n", result.WriteErr)
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	return c.config
}

// ensureLogger builds the shared logger once. Verbose and quiet flags override
// the configured level; output goes to stderr and the daily log file.
func (c *commandContext) ensureLogger(cmd *cobra.Command) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig(cmd)
		if err != nil {
			c.loggerErr = err
			return
		}

		level := cfg.Logging.Level
		if c.verboseFlag != nil && *c.verboseFlag {
			level = "debug"
		} else if c.quietFlag != nil && *c.quietFlag {
			level = "error"
		}

		logger, err := logging.New(logging.Options{
			Level:  level,
			Format: cfg.Logging.Format,
			OutputPaths: []string{
				"stderr",
				filepath.Join(cfg.Logging.Dir, "tidydl.log"),
			},
		})
		if err != nil {
			c.loggerErr = fmt.Errorf("initialize logging: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// withLock serializes mutating operations against the downloads folder. The
// lock file lives next to the manifests so concurrent organize and undo runs
// exclude each other.
func (c *commandContext) withLock(fn func() error) error {
	cfg := c.configValue()
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}

	lock := flock.New(filepath.Join(cfg.History.Dir, "tidydl.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another tidydl instance is already running")
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
