// Package organizer scans the downloads directory, classifies eligible files
// by extension category, and relocates them into per-category folders with
// collision-safe renaming. Only top-level entries are considered, so a second
// pass over an already organized tree finds nothing left to do.
package organizer
