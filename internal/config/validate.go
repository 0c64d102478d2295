package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

// ErrDownloadsPathMissing signals the one hard validation failure: the
// configured source directory does not exist.
var ErrDownloadsPathMissing = errors.New("downloads path does not exist")

// Validate ensures the configuration is usable. Repairable values were already
// clamped during load; the remaining checks are about the source directory,
// which organize and undo refuse to run without.
func (c *Config) Validate() error {
	info, err := os.Stat(c.DownloadsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrDownloadsPathMissing, c.DownloadsPath)
		}
		return fmt.Errorf("inspect downloads path %s: %w", c.DownloadsPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("downloads path %s is not a directory", c.DownloadsPath)
	}
	if err := unix.Access(c.DownloadsPath, unix.W_OK); err != nil {
		return fmt.Errorf("downloads path %s is not writable: %w", c.DownloadsPath, err)
	}
	return nil
}
