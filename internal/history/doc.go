// Package history records organize operations as JSON manifests and replays
// them in reverse to undo a pass. Manifests are named by creation timestamp,
// pruned by count and age after every creation, and transition exactly once
// from created to undone.
package history
