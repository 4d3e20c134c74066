package main

import (
	"fmt"

	"github.com/piwi3910/cutlist/internal/report"
	"github.com/spf13/cobra"
)

// createHistoryCommand creates the history subcommand.
func createHistoryCommand(st *cliState) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent packing runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := st.openHistory(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer func() { _ = store.Close() }()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			report.Runs(cmd.OutOrStdout(), runs)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show")
	return cmd
}
