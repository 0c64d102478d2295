// Package config loads, normalizes, and validates tidydl configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and repairs what it can: out-of-range ages are
// clamped back to defaults and unknown category names are dropped. A missing
// config file is created with defaults; a malformed one is left on disk and
// defaults are used for the run. The only hard validation failure is a
// downloads directory that does not exist or cannot be written.
//
// Settings are mutated through an explicit key allow-list (Set), and every
// mutation persists immediately.
package config
