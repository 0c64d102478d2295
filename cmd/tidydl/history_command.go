package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tidydl/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded organization sessions",
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
			summaries, err := store.List(limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, summaries)
			}

			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No organization history found.")
				return nil
			}

			headers := []string{"Manifest", "Created", "Files", "Undone", "Restored"}
			rows := make([][]string, 0, len(summaries))
			for _, summary := range summaries {
				restored := ""
				if summary.Undone {
					restored = strconv.Itoa(summary.RestoredFiles)
				}
				rows = append(rows, []string{
					summary.Name,
					summary.Timestamp.Format("2006-01-02 15:04:05"),
					strconv.Itoa(summary.TotalFiles),
					yesNo(summary.Undone),
					restored,
				})
			}
			fmt.Fprintln(out, renderTable(headers, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Maximum number of sessions to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}
