package main

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tidydl/internal/history"
	"tidydl/internal/logging"
	"tidydl/internal/notifications"
	"tidydl/internal/runlog"
)

func newUndoCommand(ctx *commandContext) *cobra.Command {
	var manifestRef string
	var preview bool
	var assumeYes bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Move files from the last organization back to the downloads folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}

			store, err := history.NewStore(cfg, logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if preview {
				return printUndoPreview(cmd, store, manifestRef, jsonOutput)
			}

			if !assumeYes {
				path, err := store.Resolve(manifestRef)
				if err != nil {
					return err
				}
				if path == "" {
					fmt.Fprintln(out, "No organization history found to undo")
					return nil
				}
				manifest, err := store.Load(path)
				if err != nil {
					return err
				}
				if manifest.Undone {
					fmt.Fprintln(out, "This organization has already been undone")
					return nil
				}
				prompt := fmt.Sprintf("Restore %d %s from %s?", manifest.TotalFiles,
					plural(manifest.TotalFiles, "file", "files"), filepath.Base(path))
				if !confirm(cmd, prompt) {
					fmt.Fprintln(out, "Aborted.")
					return nil
				}
			}

			runID := uuid.NewString()
			runLogger := logger.With(logging.String(logging.FieldRunID, runID))

			var outcome history.UndoOutcome
			err = ctx.withLock(func() error {
				var undoErr error
				outcome, undoErr = store.Undo(manifestRef)
				return undoErr
			})
			if err != nil {
				return err
			}

			if outcome.Manifest != "" {
				recordRun(cmd, cfg, func(ledger *runlog.Store) error {
					return ledger.RecordUndo(cmd.Context(), runID,
						outcome.Restored, len(outcome.Errors), outcome.Manifest)
				})
				notifier := notifications.NewService(cfg)
				if err := notifier.NotifyUndoCompleted(cmd.Context(),
					outcome.Restored, len(outcome.Errors)); err != nil {
					runLogger.Warn("notification failed", logging.Error(err))
				}
			}

			if jsonOutput {
				return writeJSON(cmd, outcome)
			}

			if outcome.Restored > 0 {
				fmt.Fprintf(out, "Restored %d %s.\n", outcome.Restored,
					plural(outcome.Restored, "file", "files"))
			}
			for _, msg := range outcome.Errors {
				fmt.Fprintln(out, msg)
			}
			if outcome.Restored == 0 && len(outcome.Errors) == 0 {
				fmt.Fprintln(out, "Nothing to restore.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestRef, "manifest", "m", "", "Manifest name or path (defaults to the most recent)")
	cmd.Flags().BoolVar(&preview, "preview", false, "Show what would be restored without moving anything")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}

func printUndoPreview(cmd *cobra.Command, store *history.Store, ref string, jsonOutput bool) error {
	out := cmd.OutOrStdout()

	path, err := store.Resolve(ref)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintln(out, "No organization history found to undo")
		return nil
	}
	manifest, err := store.Load(path)
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(cmd, manifest)
	}

	if manifest.Undone {
		fmt.Fprintln(out, "This organization has already been undone")
		return nil
	}

	headers := []string{"File", "Restores To"}
	var rows [][]string
	for _, moves := range manifest.Moves {
		for _, move := range moves {
			rows = append(rows, []string{
				filepath.Base(move.Destination),
				move.Source,
			})
		}
	}
	fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft}))
	fmt.Fprintf(out, "%d %s would be restored from %s.\n", manifest.TotalFiles,
		plural(manifest.TotalFiles, "file", "files"), filepath.Base(path))
	return nil
}
