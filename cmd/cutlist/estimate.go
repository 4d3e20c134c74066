package main

import (
	"fmt"
	"math"

	"github.com/piwi3910/cutlist/internal/model"
	"github.com/piwi3910/cutlist/internal/report"
	"github.com/spf13/cobra"
)

// createEstimateCommand creates the estimate subcommand.
func createEstimateCommand(st *cliState) *cobra.Command {
	var (
		job          jobFlags
		wastePercent float64
		sheetPrice   float64
	)

	cmd := &cobra.Command{
		Use:     "estimate",
		Short:   "Estimate how many stock sheets a cut list needs",
		Example: "  cutlist estimate --stock full --input cuts.csv --waste 15 --price 42.50",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !(wastePercent >= 0) || math.IsInf(wastePercent, 1) {
				return fmt.Errorf("waste must be a finite non-negative number, got %g", wastePercent)
			}
			p, err := job.build(cmd.Context(), cmd, st)
			if err != nil {
				return err
			}
			if err := p.Job.Validate(); err != nil {
				return err
			}
			report.Estimate(cmd.OutOrStdout(), model.EstimateSheets(p.Job, wastePercent, sheetPrice))
			return nil
		},
	}

	job.register(cmd)
	cmd.Flags().Float64Var(&wastePercent, "waste", 15, "Extra material allowance in percent")
	cmd.Flags().Float64Var(&sheetPrice, "price", 0, "Price per sheet")

	return cmd
}
