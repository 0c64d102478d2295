package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Run kinds recorded in the ledger.
const (
	KindOrganize = "organize"
	KindUndo     = "undo"
)

// Run is one recorded organize or undo pass.
type Run struct {
	ID            int64
	RunID         string
	Kind          string
	DryRun        bool
	MovedFiles    int
	RestoredFiles int
	ErrorCount    int
	Manifest      string
	CreatedAt     time.Time
}

// Totals aggregates the ledger for the stats view.
type Totals struct {
	OrganizeRuns  int
	UndoRuns      int
	FilesMoved    int
	FilesRestored int
}

// RecordOrganize appends one organize pass to the ledger.
func (s *Store) RecordOrganize(ctx context.Context, runID string, dryRun bool, moved, errorCount int, manifest string) error {
	return s.record(ctx, Run{
		RunID:      runID,
		Kind:       KindOrganize,
		DryRun:     dryRun,
		MovedFiles: moved,
		ErrorCount: errorCount,
		Manifest:   manifest,
	})
}

// RecordUndo appends one undo pass to the ledger.
func (s *Store) RecordUndo(ctx context.Context, runID string, restored, errorCount int, manifest string) error {
	return s.record(ctx, Run{
		RunID:         runID,
		Kind:          KindUndo,
		RestoredFiles: restored,
		ErrorCount:    errorCount,
		Manifest:      manifest,
	})
}

func (s *Store) record(ctx context.Context, run Run) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	err := s.execWithRetry(
		ctx,
		`INSERT INTO runs (
            run_id, kind, dry_run, moved_files, restored_files, error_count, manifest, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.Kind,
		boolToInt(run.DryRun),
		run.MovedFiles,
		run.RestoredFiles,
		run.ErrorCount,
		nullableString(run.Manifest),
		timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Recent returns the latest runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, kind, dry_run, moved_files, restored_files, error_count, manifest, created_at
         FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var (
			run      Run
			dryRun   int
			manifest sql.NullString
			created  string
		)
		if err := rows.Scan(&run.ID, &run.RunID, &run.Kind, &dryRun,
			&run.MovedFiles, &run.RestoredFiles, &run.ErrorCount, &manifest, &created); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.DryRun = dryRun != 0
		run.Manifest = manifest.String
		if ts, parseErr := time.Parse(time.RFC3339Nano, created); parseErr == nil {
			run.CreatedAt = ts
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// TotalsFor aggregates run counts and file totals. Dry runs count as organize
// runs but contribute no moved files.
func (s *Store) TotalsFor(ctx context.Context) (Totals, error) {
	ctx = ensureContext(ctx)
	var totals Totals
	row := s.db.QueryRowContext(ctx,
		`SELECT
            COALESCE(SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN kind = ? THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN kind = ? AND dry_run = 0 THEN moved_files ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN kind = ? THEN restored_files ELSE 0 END), 0)
         FROM runs`,
		KindOrganize, KindUndo, KindOrganize, KindUndo)
	if err := row.Scan(&totals.OrganizeRuns, &totals.UndoRuns, &totals.FilesMoved, &totals.FilesRestored); err != nil {
		return Totals{}, fmt.Errorf("aggregate runs: %w", err)
	}
	return totals, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
