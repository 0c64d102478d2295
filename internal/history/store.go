package history

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"tidydl/internal/config"
	"tidydl/internal/logging"
	"tidydl/internal/services"
)

// manifestTimeLayout names manifest files by creation time.
const manifestTimeLayout = "2006-01-02_15-04-05"

// Store persists organize manifests in a flat directory of JSON files.
type Store struct {
	dir         string
	maxSessions int
	maxAgeDays  int
	logger      *slog.Logger
	now         func() time.Time
}

// NewStore opens (creating if necessary) the manifest directory configured in
// cfg.History.
func NewStore(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	dir := strings.TrimSpace(cfg.History.Dir)
	if dir == "" {
		return nil, services.Wrap(services.ErrConfiguration, "history", "resolve directory", "history.dir is empty", nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "history", "create directory", dir, err)
	}
	return &Store{
		dir:         dir,
		maxSessions: cfg.History.MaxSessions,
		maxAgeDays:  cfg.History.MaxAgeDays,
		logger:      logging.NewComponentLogger(logger, "history"),
		now:         time.Now,
	}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// CreateManifest serializes one organize operation and triggers retention
// cleanup afterwards. Cleanup failures are logged, never raised.
func (s *Store) CreateManifest(runID string, moves map[string][]Move, errs []string) (string, error) {
	timestamp := s.now()
	manifest := Manifest{
		RunID:      runID,
		Timestamp:  timestamp,
		Moves:      moves,
		Errors:     errs,
		TotalFiles: countMoves(moves),
		Undone:     false,
	}
	if manifest.Moves == nil {
		manifest.Moves = map[string][]Move{}
	}
	if manifest.Errors == nil {
		manifest.Errors = []string{}
	}

	path := filepath.Join(s.dir, timestamp.Format(manifestTimeLayout)+".json")
	if err := s.write(path, &manifest); err != nil {
		return "", services.Wrap(services.ErrTransient, "history", "write manifest", path, err)
	}
	s.logger.Info("created undo manifest",
		logging.String("manifest", filepath.Base(path)),
		logging.Int("total_files", manifest.TotalFiles))

	s.cleanup()
	return path, nil
}

// Latest returns the path of the most recent manifest, or "" when none exist.
func (s *Store) Latest() (string, error) {
	paths, err := s.manifestPaths()
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", nil
	}
	return paths[0], nil
}

// Load reads and decodes one manifest. A corrupt file surfaces as an error so
// the specific undo or preview request aborts; other manifests are unaffected.
func (s *Store) Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, services.Wrap(services.ErrNotFound, "history", "load manifest", filepath.Base(path), err)
		}
		return nil, services.Wrap(services.ErrTransient, "history", "load manifest", filepath.Base(path), err)
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, services.Wrap(services.ErrTransient, "history", "decode manifest", filepath.Base(path), err)
	}
	return &manifest, nil
}

// List returns summaries of the most recent manifests, newest first.
// Unreadable manifests are skipped with a warning.
func (s *Store) List(limit int) ([]Summary, error) {
	paths, err := s.manifestPaths()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(paths) > limit {
		paths = paths[:limit]
	}

	summaries := make([]Summary, 0, len(paths))
	for _, path := range paths {
		manifest, err := s.Load(path)
		if err != nil {
			s.logger.Warn("skipping unreadable manifest",
				logging.String("manifest", filepath.Base(path)),
				logging.Error(err))
			continue
		}
		summaries = append(summaries, Summary{
			Name:          filepath.Base(path),
			Timestamp:     manifest.Timestamp,
			TotalFiles:    manifest.TotalFiles,
			Undone:        manifest.Undone,
			RestoredFiles: manifest.RestoredFiles,
		})
	}
	return summaries, nil
}

// Resolve expands a caller-supplied manifest reference: empty means latest, a
// bare name is looked up inside the store directory, anything else is used as
// a path.
func (s *Store) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return s.Latest()
	}
	if !strings.ContainsRune(ref, os.PathSeparator) {
		return filepath.Join(s.dir, ref), nil
	}
	return ref, nil
}

// manifestPaths lists manifest files sorted by modification time, newest
// first.
func (s *Store) manifestPaths() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "history", "read directory", s.dir, err)
	}

	type candidate struct {
		path  string
		mtime time.Time
	}
	candidates := make([]candidate, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{
			path:  filepath.Join(s.dir, entry.Name()),
			mtime: info.ModTime(),
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].mtime.Equal(candidates[j].mtime) {
			// Timestamp-derived names order the same way as creation time.
			return candidates[i].path > candidates[j].path
		}
		return candidates[i].mtime.After(candidates[j].mtime)
	})

	paths := make([]string, 0, len(candidates))
	for _, c := range candidates {
		paths = append(paths, c.path)
	}
	return paths, nil
}

func (s *Store) write(path string, manifest *Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func countMoves(moves map[string][]Move) int {
	total := 0
	for _, list := range moves {
		total += len(list)
	}
	return total
}
