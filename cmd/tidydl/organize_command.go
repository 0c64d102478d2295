package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tidydl/internal/category"
	"tidydl/internal/history"
	"tidydl/internal/logging"
	"tidydl/internal/notifications"
	"tidydl/internal/organizer"
	"tidydl/internal/runlog"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var assumeYes bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Move eligible downloads into category folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}

			org := organizer.New(cfg, logger)
			out := cmd.OutOrStdout()

			if !dryRun && !assumeYes {
				scanned, err := org.Scan()
				if err != nil {
					return err
				}
				total := scanned.TotalFiles()
				if total == 0 {
					fmt.Fprintln(out, "No files need organizing.")
					return nil
				}
				prompt := fmt.Sprintf("Organize %d %s in %s?", total,
					plural(total, "file", "files"), cfg.DownloadsPath)
				if !confirm(cmd, prompt) {
					fmt.Fprintln(out, "Aborted.")
					return nil
				}
			}

			runID := uuid.NewString()
			runLogger := logger.With(logging.String(logging.FieldRunID, runID))

			var result organizer.Result
			err = ctx.withLock(func() error {
				var organizeErr error
				result, organizeErr = org.Organize(dryRun)
				return organizeErr
			})
			if err != nil {
				return err
			}

			manifestName := ""
			if !dryRun && result.TotalMoves() > 0 {
				store, err := history.NewStore(cfg, runLogger)
				if err != nil {
					return err
				}
				path, err := store.CreateManifest(runID, manifestMoves(result), result.Errors)
				if err != nil {
					return err
				}
				manifestName = filepath.Base(path)
			}

			recordRun(cmd, cfg, func(ledger *runlog.Store) error {
				return ledger.RecordOrganize(cmd.Context(), runID, dryRun,
					result.TotalMoves(), len(result.Errors), manifestName)
			})

			if !dryRun {
				notifier := notifications.NewService(cfg)
				if err := notifier.NotifyOrganizeCompleted(cmd.Context(),
					result.TotalMoves(), len(result.Errors), manifestName); err != nil {
					runLogger.Warn("notification failed", logging.Error(err))
				}
			}

			if jsonOutput {
				return writeJSON(cmd, organizeReport{
					RunID:    runID,
					DryRun:   dryRun,
					Moved:    result.TotalMoves(),
					Manifest: manifestName,
					Moves:    result.Moves,
					Errors:   result.Errors,
				})
			}

			printOrganizeResult(cmd, result, dryRun, manifestName)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Report planned moves without touching any files")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}

type organizeReport struct {
	RunID    string                                 `json:"run_id"`
	DryRun   bool                                   `json:"dry_run"`
	Moved    int                                    `json:"moved"`
	Manifest string                                 `json:"manifest,omitempty"`
	Moves    map[category.Category][]organizer.Move `json:"moves"`
	Errors   []string                               `json:"errors"`
}

func sortedResultCategories(result organizer.Result) []category.Category {
	cats := make([]category.Category, 0, len(result.Moves))
	for cat := range result.Moves {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

func printOrganizeResult(cmd *cobra.Command, result organizer.Result, dryRun bool, manifestName string) {
	out := cmd.OutOrStdout()

	if result.TotalMoves() == 0 && len(result.Errors) == 0 {
		fmt.Fprintln(out, "No files need organizing.")
		return
	}

	verb := "Moved"
	if dryRun {
		verb = "Would move"
	}

	headers := []string{"File", "Destination"}
	var rows [][]string
	for _, cat := range sortedResultCategories(result) {
		for _, move := range result.Moves[cat] {
			rows = append(rows, []string{
				filepath.Base(move.Source),
				filepath.Join(cat.FolderName(), filepath.Base(move.Destination)),
			})
		}
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignLeft, alignLeft}))
	}

	fmt.Fprintf(out, "%s %d %s.\n", verb, result.TotalMoves(),
		plural(result.TotalMoves(), "file", "files"))
	if manifestName != "" {
		fmt.Fprintf(out, "Undo with: tidydl undo (manifest %s)\n", manifestName)
	}
	for _, msg := range result.Errors {
		fmt.Fprintf(out, "Warning: %s\n", msg)
	}
}

// manifestMoves converts the organize result into the manifest wire shape.
func manifestMoves(result organizer.Result) map[string][]history.Move {
	moves := make(map[string][]history.Move, len(result.Moves))
	for cat, list := range result.Moves {
		converted := make([]history.Move, 0, len(list))
		for _, move := range list {
			converted = append(converted, history.Move{
				Source:      move.Source,
				Destination: move.Destination,
			})
		}
		moves[cat.String()] = converted
	}
	return moves
}
