package organizer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"tidydl/internal/category"
	"tidydl/internal/config"
	"tidydl/internal/fileutil"
	"tidydl/internal/logging"
)

// maxCollisionProbes caps the numeric suffix search so a pathological
// collision chain cannot loop forever.
const maxCollisionProbes = 1000

// Move records one planned or performed relocation.
type Move struct {
	Source      string
	Destination string
}

// Result collects the moves and per-file errors of one organize pass. Failures
// are independent per file; a non-empty Errors never invalidates Moves.
type Result struct {
	Moves  map[category.Category][]Move
	Errors []string
}

// TotalMoves returns the number of files moved (or, on a dry run, that would
// be moved).
func (r Result) TotalMoves() int {
	total := 0
	for _, moves := range r.Moves {
		total += len(moves)
	}
	return total
}

// Organizer classifies eligible downloads and relocates them into per-category
// folders.
type Organizer struct {
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// New constructs an organizer bound to the given configuration.
func New(cfg *config.Config, logger *slog.Logger) *Organizer {
	return &Organizer{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "organizer"),
		now:    time.Now,
	}
}

// Organize scans the downloads directory and moves every eligible file into
// its category folder. With dryRun set, the same scan and destination
// computation run but nothing on disk changes; returned moves indicate
// would-move pairs.
func (o *Organizer) Organize(dryRun bool) (Result, error) {
	scanned, err := o.Scan()
	if err != nil {
		return Result{}, err
	}

	result := Result{Moves: make(map[category.Category][]Move)}
	if scanned.TotalFiles() == 0 {
		o.logger.Info("no files to organize")
		return result, nil
	}

	for _, cat := range sortedCategories(scanned) {
		files := scanned[cat]
		destDir := filepath.Join(o.cfg.DownloadsPath, cat.FolderName())

		if !dryRun {
			if err := os.MkdirAll(destDir, 0o755); err != nil {
				msg := fmt.Sprintf("Could not create folder %s: %v", cat.FolderName(), err)
				o.logger.Error("destination folder creation failed",
					logging.String("folder", destDir),
					logging.Error(err))
				result.Errors = append(result.Errors, msg)
				continue
			}
		}

		// Names already claimed this pass. On a real run the filesystem
		// reflects prior moves, but a dry run needs this to keep
		// would-move pairs unique.
		planned := make(map[string]struct{}, len(files))

		for _, src := range files {
			base := filepath.Base(src)
			dest, err := uniqueDestination(destDir, base, planned)
			if err != nil {
				msg := fmt.Sprintf("Could not find unique name for %s: %v", base, err)
				o.logger.Error("collision probing exhausted", logging.String("file", base))
				result.Errors = append(result.Errors, msg)
				continue
			}

			if !dryRun {
				if fileutil.IsLocked(src) {
					msg := fmt.Sprintf("File is locked or in use: %s", base)
					o.logger.Warn("skipping locked file", logging.String("file", base))
					result.Errors = append(result.Errors, msg)
					continue
				}
				if err := fileutil.Move(src, dest); err != nil {
					msg := fmt.Sprintf("Error moving %s: %v", base, err)
					o.logger.Error("move failed",
						logging.String("file", base),
						logging.Error(err))
					result.Errors = append(result.Errors, msg)
					continue
				}
				o.logger.Info("moved file",
					logging.String("file", base),
					logging.String("destination", filepath.Join(cat.FolderName(), filepath.Base(dest))))
			}

			planned[filepath.Base(dest)] = struct{}{}
			result.Moves[cat] = append(result.Moves[cat], Move{Source: src, Destination: dest})
		}
	}

	if dryRun {
		o.logger.Info("dry run completed", logging.Int("would_move", result.TotalMoves()))
	} else {
		o.logger.Info("organize completed",
			logging.Int("moved", result.TotalMoves()),
			logging.Int("errors", len(result.Errors)))
	}

	return result, nil
}

// uniqueDestination finds a free destination path for filename inside destDir,
// appending _2, _3, ... before the extension until no collision remains.
func uniqueDestination(destDir, filename string, planned map[string]struct{}) (string, error) {
	if free(destDir, filename, planned) {
		return filepath.Join(destDir, filename), nil
	}

	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	for counter := 2; counter <= maxCollisionProbes; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, counter, ext)
		if free(destDir, candidate, planned) {
			return filepath.Join(destDir, candidate), nil
		}
	}
	return "", fmt.Errorf("exhausted %d collision probes in %s", maxCollisionProbes, destDir)
}

func free(destDir, name string, planned map[string]struct{}) bool {
	if _, taken := planned[name]; taken {
		return false
	}
	_, err := os.Stat(filepath.Join(destDir, name))
	return os.IsNotExist(err)
}

func sortedCategories(scanned ScanResult) []category.Category {
	cats := make([]category.Category, 0, len(scanned))
	for cat := range scanned {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}
