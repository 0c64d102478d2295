package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"tidydl/internal/organizer"
)

// previewFileLimit caps how many file names are shown per category.
const previewFileLimit = 5

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show which files would be organized, without moving anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}

			previews, err := organizer.New(cfg, logger).Preview()
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, previews)
			}

			out := cmd.OutOrStdout()
			if len(previews) == 0 {
				fmt.Fprintln(out, "No files need organizing.")
				return nil
			}

			total := 0
			for _, preview := range previews {
				fmt.Fprintf(out, "%s (%d %s):\n", preview.Folder, len(preview.Files),
					plural(len(preview.Files), "file", "files"))
				for i, file := range preview.Files {
					if i == previewFileLimit {
						fmt.Fprintf(out, "  ... and %d more\n", len(preview.Files)-previewFileLimit)
						break
					}
					fmt.Fprintf(out, "  %s (%s)\n", file.Name, humanize.Bytes(uint64(file.Size)))
				}
				total += len(preview.Files)
			}
			fmt.Fprintf(out, "\n%d %s would be organized.\n", total, plural(total, "file", "files"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON output")
	return cmd
}
