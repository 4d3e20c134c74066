package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/piwi3910/cutlist/internal/engine"
	"github.com/piwi3910/cutlist/internal/export"
	"github.com/piwi3910/cutlist/internal/logging"
	"github.com/piwi3910/cutlist/internal/model"
	"github.com/piwi3910/cutlist/internal/project"
	"github.com/piwi3910/cutlist/internal/report"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type packOptions struct {
	job       jobFlags
	save      string
	pdf       string
	labels    string
	xlsx      string
	dxf       string
	json      string
	noHistory bool
}

// createPackCommand creates the pack subcommand.
func createPackCommand(st *cliState) *cobra.Command {
	opts := &packOptions{}

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Pack cuts onto a stock sheet",
		Example: `  cutlist pack --stock 1220x2440 --kerf 3 --cut 600x400x2 --cut 300x300
  cutlist pack --stock half --input cuts.csv --pdf layout.pdf
  cutlist pack --project kitchen.cutlist.json --json -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPack(cmd, st, opts)
		},
	}

	opts.job.register(cmd)
	cmd.Flags().StringVar(&opts.save, "save", "", "Save the job and layout as a project file")
	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "Write a PDF cut sheet")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "Write a PDF of QR-coded cut labels")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "Write an Excel workbook")
	cmd.Flags().StringVar(&opts.dxf, "dxf", "", "Write a DXF drawing")
	cmd.Flags().StringVar(&opts.json, "json", "", "Write a JSON report; '-' writes to stdout instead of the text report")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "Do not record this run in the history database")

	return cmd
}

func runPack(cmd *cobra.Command, st *cliState, opts *packOptions) error {
	ctx := cmd.Context()
	log := logging.Get(ctx)

	p, err := opts.job.build(ctx, cmd, st)
	if err != nil {
		return err
	}

	layout, err := engine.New(engine.SettingsFromConfig(st.config)).Optimize(p.Job)
	if err != nil {
		return err
	}
	log.Info().
		Str("stock", layout.Stock.Label).
		Int("placed", len(layout.Placed)).
		Int("unplaced", len(layout.Unplaced)).
		Float64("waste_pct", layout.WastePercentage()).
		Msg("packed")

	out := cmd.OutOrStdout()
	if opts.json == "-" {
		if err := export.WriteJSON(out, layout); err != nil {
			return err
		}
	} else {
		report.Layout(out, layout)
	}

	if err := writeExports(st.env.fs, opts, layout); err != nil {
		return err
	}

	if opts.save != "" {
		path := project.EnsureProjectExt(opts.save)
		p.Layout = &layout
		if err := project.SaveProject(st.env.fs, path, p); err != nil {
			return err
		}
		st.rememberProject(ctx, path)
		log.Info().Str("path", path).Msg("project saved")
	}

	if !opts.noHistory {
		st.recordRun(ctx, p.Name, layout)
	}
	return nil
}

type exportTarget struct {
	path  string
	write func(io.Writer, model.Layout) error
}

func writeExports(fs afero.Fs, opts *packOptions, layout model.Layout) error {
	writers := []exportTarget{
		{opts.pdf, export.WritePDF},
		{opts.labels, export.WriteLabels},
		{opts.xlsx, export.WriteXLSX},
	}
	if opts.json != "-" {
		writers = append(writers, exportTarget{opts.json, export.WriteJSON})
	}

	for _, w := range writers {
		if w.path == "" {
			continue
		}
		if err := writeFile(fs, w.path, func(out io.Writer) error { return w.write(out, layout) }); err != nil {
			return err
		}
	}

	// The DXF writer only saves to a path on disk.
	if opts.dxf != "" {
		if err := export.ExportDXF(opts.dxf, layout); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.dxf, err)
		}
	}
	return nil
}

func writeFile(fs afero.Fs, path string, write func(io.Writer) error) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
