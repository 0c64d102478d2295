package history

import (
	"fmt"
	"os"
	"path/filepath"

	"tidydl/internal/fileutil"
	"tidydl/internal/logging"
)

// UndoOutcome reports what an undo attempt accomplished. Restored counts only
// files actually moved back; Errors carries the per-move failures.
type UndoOutcome struct {
	Manifest string
	Restored int
	Errors   []string
}

// Undo replays the referenced manifest in reverse, moving each destination
// back to its recorded source. An empty ref targets the latest manifest.
// Per-move preconditions are recoverable: a missing destination or an occupied
// source skips that move with an error while the rest continue. The manifest
// is marked undone after the attempt regardless of per-move failures; a second
// attempt is therefore a no-op reported through the error list.
func (s *Store) Undo(ref string) (UndoOutcome, error) {
	path, err := s.Resolve(ref)
	if err != nil {
		return UndoOutcome{}, err
	}
	if path == "" {
		return UndoOutcome{Errors: []string{"No organization history found to undo"}}, nil
	}

	manifest, err := s.Load(path)
	if err != nil {
		return UndoOutcome{}, err
	}

	outcome := UndoOutcome{Manifest: filepath.Base(path)}
	if manifest.Undone {
		s.logger.Warn("manifest already undone", logging.String("manifest", outcome.Manifest))
		outcome.Errors = append(outcome.Errors, "This organization has already been undone")
		return outcome, nil
	}

	for _, moves := range manifest.Moves {
		for _, move := range moves {
			name := filepath.Base(move.Destination)

			if _, err := os.Stat(move.Destination); err != nil {
				msg := fmt.Sprintf("File no longer exists: %s", name)
				s.logger.Warn("undo precondition failed", logging.String("file", name))
				outcome.Errors = append(outcome.Errors, msg)
				continue
			}
			if _, err := os.Stat(move.Source); err == nil {
				msg := fmt.Sprintf("Source location occupied: %s", filepath.Base(move.Source))
				s.logger.Warn("undo precondition failed", logging.String("file", name))
				outcome.Errors = append(outcome.Errors, msg)
				continue
			}

			if err := fileutil.Move(move.Destination, move.Source); err != nil {
				msg := fmt.Sprintf("Error restoring %s: %v", name, err)
				s.logger.Error("restore failed", logging.String("file", name), logging.Error(err))
				outcome.Errors = append(outcome.Errors, msg)
				continue
			}
			outcome.Restored++
			s.logger.Info("restored file", logging.String("file", name))
		}
	}

	now := s.now()
	manifest.Undone = true
	manifest.UndoTimestamp = &now
	manifest.RestoredFiles = outcome.Restored
	if err := s.write(path, manifest); err != nil {
		s.logger.Error("failed to persist undone manifest",
			logging.String("manifest", outcome.Manifest),
			logging.Error(err))
		outcome.Errors = append(outcome.Errors, fmt.Sprintf("Could not update manifest %s: %v", outcome.Manifest, err))
	}

	s.removeEmptyFolders(manifest)

	s.logger.Info("undo completed",
		logging.String("manifest", outcome.Manifest),
		logging.Int("restored", outcome.Restored),
		logging.Int("errors", len(outcome.Errors)))
	return outcome, nil
}

// removeEmptyFolders deletes category folders left empty by an undo.
// Best-effort: failures are logged and never surfaced.
func (s *Store) removeEmptyFolders(manifest *Manifest) {
	folders := make(map[string]struct{})
	for _, moves := range manifest.Moves {
		for _, move := range moves {
			if dir := filepath.Dir(move.Destination); dir != "" {
				folders[dir] = struct{}{}
			}
		}
	}

	for folder := range folders {
		entries, err := os.ReadDir(folder)
		if err != nil || len(entries) != 0 {
			continue
		}
		if err := os.Remove(folder); err != nil {
			s.logger.Debug("could not remove folder",
				logging.String("folder", folder),
				logging.Error(err))
			continue
		}
		s.logger.Info("removed empty folder", logging.String("folder", filepath.Base(folder)))
	}
}
