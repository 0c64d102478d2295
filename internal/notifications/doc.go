// Package notifications delivers completion and error notices via ntfy.
//
// The default implementation posts to the topic configured in config.toml and
// degrades to a no-op when notifications are disabled or no topic is set.
// Command code depends only on the small Service interface.
package notifications
