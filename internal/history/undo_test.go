package history

import (
	"os"
	"path/filepath"
	"testing"

	"tidydl/internal/config"
	"tidydl/internal/logging"
	"tidydl/internal/organizer"
	"tidydl/internal/testsupport"
)

// organizeAndRecord runs a real organize pass and records it in the store,
// mirroring how the command layer glues the two packages together.
func organizeAndRecord(t *testing.T, cfg *config.Config, store *Store) string {
	t.Helper()

	result, err := organizer.New(cfg, logging.NewNop()).Organize(false)
	if err != nil {
		t.Fatalf("Organize: %v", err)
	}
	moves := make(map[string][]Move, len(result.Moves))
	for cat, list := range result.Moves {
		converted := make([]Move, 0, len(list))
		for _, m := range list {
			converted = append(converted, Move{Source: m.Source, Destination: m.Destination})
		}
		moves[cat.String()] = converted
	}
	path, err := store.CreateManifest("run-test", moves, result.Errors)
	if err != nil {
		t.Fatalf("CreateManifest: %v", err)
	}
	return path
}

func TestUndoRestoresOrganizedFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithMinimumAge(1))
	testsupport.WriteAgedFile(t, filepath.Join(cfg.DownloadsPath, "report.pdf"), "x", 3)
	testsupport.WriteAgedFile(t, filepath.Join(cfg.DownloadsPath, "photo.png"), "x", 3)

	store, err := NewStore(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	organizeAndRecord(t, cfg, store)

	outcome, err := store.Undo("")
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if outcome.Restored != 2 || len(outcome.Errors) != 0 {
		t.Fatalf("outcome = %+v", outcome)
	}
	for _, name := range []string{"report.pdf", "photo.png"} {
		if _, err := os.Stat(filepath.Join(cfg.DownloadsPath, name)); err != nil {
			t.Fatalf("%s not restored: %v", name, err)
		}
	}
	// Emptied category folders disappear with the undo.
	for _, folder := range []string{"~Documents", "~Images"} {
		if _, err := os.Stat(filepath.Join(cfg.DownloadsPath, folder)); !os.IsNotExist(err) {
			t.Fatalf("%s should be removed after undo", folder)
		}
	}
}

func TestUndoWithoutHistory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := NewStore(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	outcome, err := store.Undo("")
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if outcome.Restored != 0 {
		t.Fatalf("Restored = %d, want 0", outcome.Restored)
	}
	if len(outcome.Errors) != 1 || outcome.Errors[0] != "No organization history found to undo" {
		t.Fatalf("Errors = %v", outcome.Errors)
	}
}

func TestSecondUndoIsANoOp(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithMinimumAge(1))
	testsupport.WriteAgedFile(t, filepath.Join(cfg.DownloadsPath, "report.pdf"), "x", 3)

	store, err := NewStore(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	organizeAndRecord(t, cfg, store)

	if _, err := store.Undo(""); err != nil {
		t.Fatalf("first Undo: %v", err)
	}
	second, err := store.Undo("")
	if err != nil {
		t.Fatalf("second Undo: %v", err)
	}
	if second.Restored != 0 {
		t.Fatalf("second undo restored %d files, want 0", second.Restored)
	}
	if len(second.Errors) != 1 || second.Errors[0] != "This organization has already been undone" {
		t.Fatalf("second undo errors = %v", second.Errors)
	}
}

func TestUndoSkipsMissingDestination(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithMinimumAge(1))
	testsupport.WriteAgedFile(t, filepath.Join(cfg.DownloadsPath, "report.pdf"), "x", 3)
	testsupport.WriteAgedFile(t, filepath.Join(cfg.DownloadsPath, "notes.txt"), "x", 3)

	store, err := NewStore(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	path := organizeAndRecord(t, cfg, store)

	// The user deleted one organized file before undoing.
	if err := os.Remove(filepath.Join(cfg.DownloadsPath, "~Documents", "report.pdf")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	outcome, err := store.Undo("")
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if outcome.Restored != 1 {
		t.Fatalf("Restored = %d, want 1", outcome.Restored)
	}
	if len(outcome.Errors) != 1 || outcome.Errors[0] != "File no longer exists: report.pdf" {
		t.Fatalf("Errors = %v", outcome.Errors)
	}
	if _, err := os.Stat(filepath.Join(cfg.DownloadsPath, "notes.txt")); err != nil {
		t.Fatalf("notes.txt not restored: %v", err)
	}

	// Per-move failures still flip the manifest to undone.
	manifest, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !manifest.Undone || manifest.UndoTimestamp == nil || manifest.RestoredFiles != 1 {
		t.Fatalf("manifest after partial undo = %+v", manifest)
	}
}

func TestUndoSkipsOccupiedSource(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithMinimumAge(1))
	testsupport.WriteAgedFile(t, filepath.Join(cfg.DownloadsPath, "report.pdf"), "organized", 3)

	store, err := NewStore(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	organizeAndRecord(t, cfg, store)

	// A new download reclaimed the original name.
	testsupport.WriteFile(t, filepath.Join(cfg.DownloadsPath, "report.pdf"), "newer")

	outcome, err := store.Undo("")
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if outcome.Restored != 0 {
		t.Fatalf("Restored = %d, want 0", outcome.Restored)
	}
	if len(outcome.Errors) != 1 || outcome.Errors[0] != "Source location occupied: report.pdf" {
		t.Fatalf("Errors = %v", outcome.Errors)
	}
	// Both files survive untouched.
	data, err := os.ReadFile(filepath.Join(cfg.DownloadsPath, "report.pdf"))
	if err != nil || string(data) != "newer" {
		t.Fatalf("occupying file clobbered: %q, %v", data, err)
	}
	if _, err := os.Stat(filepath.Join(cfg.DownloadsPath, "~Documents", "report.pdf")); err != nil {
		t.Fatalf("organized copy must stay put: %v", err)
	}
}

func TestUndoByManifestName(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithMinimumAge(1))
	testsupport.WriteAgedFile(t, filepath.Join(cfg.DownloadsPath, "clip.mp4"), "x", 3)

	store, err := NewStore(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	path := organizeAndRecord(t, cfg, store)

	outcome, err := store.Undo(filepath.Base(path))
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if outcome.Manifest != filepath.Base(path) || outcome.Restored != 1 {
		t.Fatalf("outcome = %+v", outcome)
	}
}

func TestUndoKeepsNonEmptyFolders(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithMinimumAge(1))
	testsupport.WriteAgedFile(t, filepath.Join(cfg.DownloadsPath, "report.pdf"), "x", 3)

	store, err := NewStore(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	organizeAndRecord(t, cfg, store)

	// An unrelated file keeps the category folder occupied.
	keeper := filepath.Join(cfg.DownloadsPath, "~Documents", "manual.pdf")
	testsupport.WriteFile(t, keeper, "x")

	if _, err := store.Undo(""); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if _, err := os.Stat(keeper); err != nil {
		t.Fatalf("occupied folder must survive: %v", err)
	}
}
