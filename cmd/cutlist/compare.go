package main

import (
	"github.com/piwi3910/cutlist/internal/engine"
	"github.com/piwi3910/cutlist/internal/report"
	"github.com/spf13/cobra"
)

// createCompareCommand creates the compare subcommand, which packs the same
// job at several blade widths.
func createCompareCommand(st *cliState) *cobra.Command {
	var (
		job   jobFlags
		kerfs []float64
	)

	cmd := &cobra.Command{
		Use:     "compare",
		Short:   "Compare waste across blade widths",
		Example: "  cutlist compare --stock 1220x2440 --cut 600x400x4 --kerfs 0,2,3.2,4",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := job.build(cmd.Context(), cmd, st)
			if err != nil {
				return err
			}
			if len(kerfs) == 0 {
				kerfs = engine.DefaultKerfs(p.Job.Kerf)
			}
			results, err := engine.New(engine.SettingsFromConfig(st.config)).Compare(p.Job, kerfs)
			if err != nil {
				return err
			}
			report.Comparison(cmd.OutOrStdout(), results)
			return nil
		},
	}

	job.register(cmd)
	cmd.Flags().Float64SliceVar(&kerfs, "kerfs", nil, "Blade widths to compare (default: around the job kerf)")

	return cmd
}
