package runlog

import (
	"context"
	"testing"

	"tidydl/internal/testsupport"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.RecordOrganize(ctx, "run-1", false, 4, 1, "2026-08-01_10-00-00.json"); err != nil {
		t.Fatalf("RecordOrganize: %v", err)
	}
	if err := store.RecordUndo(ctx, "run-2", 4, 0, "2026-08-01_10-00-00.json"); err != nil {
		t.Fatalf("RecordUndo: %v", err)
	}

	runs, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Recent returned %d runs, want 2", len(runs))
	}
	if runs[0].Kind != KindUndo || runs[0].RestoredFiles != 4 {
		t.Fatalf("newest run = %+v", runs[0])
	}
	if runs[1].Kind != KindOrganize || runs[1].MovedFiles != 4 || runs[1].ErrorCount != 1 {
		t.Fatalf("oldest run = %+v", runs[1])
	}
	if runs[1].Manifest != "2026-08-01_10-00-00.json" {
		t.Fatalf("manifest = %q", runs[1].Manifest)
	}
	if runs[1].CreatedAt.IsZero() {
		t.Fatal("CreatedAt not recorded")
	}
}

func TestTotalsIgnoreDryRunMoves(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.RecordOrganize(ctx, "run-1", false, 3, 0, "a.json"); err != nil {
		t.Fatalf("RecordOrganize: %v", err)
	}
	if err := store.RecordOrganize(ctx, "run-2", true, 7, 0, ""); err != nil {
		t.Fatalf("RecordOrganize dry run: %v", err)
	}
	if err := store.RecordUndo(ctx, "run-3", 2, 1, "a.json"); err != nil {
		t.Fatalf("RecordUndo: %v", err)
	}

	totals, err := store.TotalsFor(ctx)
	if err != nil {
		t.Fatalf("TotalsFor: %v", err)
	}
	want := Totals{OrganizeRuns: 2, UndoRuns: 1, FilesMoved: 3, FilesRestored: 2}
	if totals != want {
		t.Fatalf("totals = %+v, want %+v", totals, want)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first, err := Open(cfg)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := Open(cfg)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer func() { _ = second.Close() }()

	if _, err := second.TotalsFor(context.Background()); err != nil {
		t.Fatalf("TotalsFor after reopen: %v", err)
	}
}
