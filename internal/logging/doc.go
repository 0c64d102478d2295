// Package logging builds the slog loggers used across tidydl and supplies
// attribute helpers plus a console handler that renders compact
// "TIMESTAMP LEVEL component: message k=v" lines. Components receive loggers
// explicitly from the CLI layer; there is no package-level default.
package logging
