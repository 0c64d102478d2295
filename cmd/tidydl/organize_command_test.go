package main

import (
	"os"
	"path/filepath"
	"testing"

	"tidydl/internal/testsupport"
)

func TestOrganizeAndUndoRoundTrip(t *testing.T) {
	cfg := writeTestConfig(t, testsupport.WithMinimumAge(1))
	testsupport.WriteAgedFile(t, filepath.Join(cfg.DownloadsPath, "report.pdf"), "x", 3)

	out, _, err := runCLI(t, []string{"organize", "--yes", "--config", cfg.Path()}, "")
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	requireContains(t, out, "Moved 1 file")

	organized := filepath.Join(cfg.DownloadsPath, "~Documents", "report.pdf")
	if _, err := os.Stat(organized); err != nil {
		t.Fatalf("file not organized: %v", err)
	}

	entries, err := os.ReadDir(cfg.History.Dir)
	if err != nil {
		t.Fatalf("read history dir: %v", err)
	}
	manifests := 0
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".json" {
			manifests++
		}
	}
	if manifests != 1 {
		t.Fatalf("manifest count = %d, want 1", manifests)
	}

	out, _, err = runCLI(t, []string{"undo", "--yes", "--config", cfg.Path()}, "")
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	requireContains(t, out, "Restored 1 file")

	if _, err := os.Stat(filepath.Join(cfg.DownloadsPath, "report.pdf")); err != nil {
		t.Fatalf("file not restored: %v", err)
	}
}

func TestOrganizeDryRunLeavesFilesInPlace(t *testing.T) {
	cfg := writeTestConfig(t, testsupport.WithMinimumAge(1))
	src := filepath.Join(cfg.DownloadsPath, "song.mp3")
	testsupport.WriteAgedFile(t, src, "audio", 3)

	out, _, err := runCLI(t, []string{"organize", "--dry-run", "--config", cfg.Path()}, "")
	if err != nil {
		t.Fatalf("organize --dry-run: %v", err)
	}
	requireContains(t, out, "Would move 1 file")

	if _, err := os.Stat(src); err != nil {
		t.Fatalf("dry run moved the file: %v", err)
	}
}

func TestOrganizeDeclinedPromptAborts(t *testing.T) {
	cfg := writeTestConfig(t, testsupport.WithMinimumAge(1))
	src := filepath.Join(cfg.DownloadsPath, "report.pdf")
	testsupport.WriteAgedFile(t, src, "x", 3)

	out, _, err := runCLI(t, []string{"organize", "--config", cfg.Path()}, "n\n")
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	requireContains(t, out, "Aborted.")

	if _, err := os.Stat(src); err != nil {
		t.Fatalf("declined organize moved the file: %v", err)
	}
}

func TestOrganizeWithNothingToDo(t *testing.T) {
	cfg := writeTestConfig(t)

	out, _, err := runCLI(t, []string{"organize", "--yes", "--config", cfg.Path()}, "")
	if err != nil {
		t.Fatalf("organize: %v", err)
	}
	requireContains(t, out, "No files need organizing.")
}

func TestUndoWithoutHistoryReportsIt(t *testing.T) {
	cfg := writeTestConfig(t)

	out, _, err := runCLI(t, []string{"undo", "--yes", "--config", cfg.Path()}, "")
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	requireContains(t, out, "No organization history found to undo")
}

func TestHistoryListsSessions(t *testing.T) {
	cfg := writeTestConfig(t, testsupport.WithMinimumAge(1))
	testsupport.WriteAgedFile(t, filepath.Join(cfg.DownloadsPath, "a.pdf"), "x", 3)

	if _, _, err := runCLI(t, []string{"organize", "--yes", "--config", cfg.Path()}, ""); err != nil {
		t.Fatalf("organize: %v", err)
	}

	out, _, err := runCLI(t, []string{"history", "--config", cfg.Path()}, "")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, ".json")
}

func TestPreviewListsPendingFiles(t *testing.T) {
	cfg := writeTestConfig(t, testsupport.WithMinimumAge(1))
	testsupport.WriteAgedFile(t, filepath.Join(cfg.DownloadsPath, "report.pdf"), "0123456789", 3)

	out, _, err := runCLI(t, []string{"preview", "--config", cfg.Path()}, "")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	requireContains(t, out, "~Documents")
	requireContains(t, out, "report.pdf")
	requireContains(t, out, "1 file would be organized.")
}

func TestStatsShowsPendingCounts(t *testing.T) {
	cfg := writeTestConfig(t, testsupport.WithMinimumAge(1))
	testsupport.WriteAgedFile(t, filepath.Join(cfg.DownloadsPath, "a.pdf"), "x", 3)
	testsupport.WriteAgedFile(t, filepath.Join(cfg.DownloadsPath, "b.png"), "x", 3)

	out, _, err := runCLI(t, []string{"stats", "--config", cfg.Path()}, "")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	requireContains(t, out, "Files awaiting organization: 2")
	requireContains(t, out, "Documents")
	requireContains(t, out, "Images")
}
