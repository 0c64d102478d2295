package history

import (
	"os"
	"path/filepath"

	"tidydl/internal/logging"
)

// cleanup applies both retention rules: keep at most maxSessions manifests and
// drop anything older than maxAgeDays. Per-file failures are logged and do not
// abort the remaining cleanup, so enforcement is approximate under filesystem
// errors.
func (s *Store) cleanup() {
	paths, err := s.manifestPaths()
	if err != nil {
		s.logger.Warn("manifest cleanup skipped", logging.Error(err))
		return
	}

	if s.maxSessions > 0 && len(paths) > s.maxSessions {
		for _, path := range paths[s.maxSessions:] {
			s.remove(path, "retention limit")
		}
		paths = paths[:s.maxSessions]
	}

	if s.maxAgeDays > 0 {
		cutoff := s.now().AddDate(0, 0, -s.maxAgeDays)
		for _, path := range paths {
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			if info.ModTime().Before(cutoff) {
				s.remove(path, "age threshold")
			}
		}
	}
}

func (s *Store) remove(path, reason string) {
	if err := os.Remove(path); err != nil {
		s.logger.Warn("could not remove old manifest",
			logging.String("manifest", filepath.Base(path)),
			logging.String("reason", reason),
			logging.Error(err))
		return
	}
	s.logger.Debug("removed old manifest",
		logging.String("manifest", filepath.Base(path)),
		logging.String("reason", reason))
}
