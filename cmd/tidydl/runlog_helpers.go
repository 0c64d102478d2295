package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tidydl/internal/config"
	"tidydl/internal/runlog"
)

// recordRun appends to the run ledger best-effort. The ledger is advisory;
// failures degrade to a warning so they never abort an organize or undo.
func recordRun(cmd *cobra.Command, cfg *config.Config, fn func(*runlog.Store) error) {
	ledger, err := runlog.Open(cfg)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: run ledger unavailable: %v\n", err)
		return
	}
	defer func() { _ = ledger.Close() }()

	if err := fn(ledger); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not record run: %v\n", err)
	}
}
