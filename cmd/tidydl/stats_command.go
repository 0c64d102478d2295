package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"tidydl/internal/category"
	"tidydl/internal/organizer"
	"tidydl/internal/runlog"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize pending files and lifetime run totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}

			stats, err := organizer.New(cfg, logger).Stats()
			if err != nil {
				return err
			}

			var totals runlog.Totals
			ledgerAvailable := false
			if ledger, err := runlog.Open(cfg); err == nil {
				if totals, err = ledger.TotalsFor(cmd.Context()); err == nil {
					ledgerAvailable = true
				}
				_ = ledger.Close()
			}

			if jsonOutput {
				report := statsReport{Pending: stats}
				if ledgerAvailable {
					report.Totals = &totals
				}
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Downloads folder: %s\n", cfg.DownloadsPath)
			fmt.Fprintf(out, "Files awaiting organization: %d\n\n", stats.TotalFiles)

			if stats.TotalFiles > 0 {
				headers := []string{"Category", "Pending"}
				var rows [][]string
				for _, cat := range sortedStatCategories(stats) {
					rows = append(rows, []string{cat.String(), strconv.Itoa(stats.PerCategory[cat])})
				}
				fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignLeft, alignRight}))
			}

			if ledgerAvailable {
				fmt.Fprintf(out, "Organize runs: %d (%d files moved)\n", totals.OrganizeRuns, totals.FilesMoved)
				fmt.Fprintf(out, "Undo runs: %d (%d files restored)\n", totals.UndoRuns, totals.FilesRestored)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}

type statsReport struct {
	Pending organizer.Stats `json:"pending"`
	Totals  *runlog.Totals  `json:"totals,omitempty"`
}

func sortedStatCategories(stats organizer.Stats) []category.Category {
	cats := make([]category.Category, 0, len(stats.PerCategory))
	for cat := range stats.PerCategory {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}
