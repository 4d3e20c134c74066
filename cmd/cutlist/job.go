package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/piwi3910/cutlist/internal/importer"
	"github.com/piwi3910/cutlist/internal/logging"
	"github.com/piwi3910/cutlist/internal/model"
	"github.com/piwi3910/cutlist/internal/project"
	"github.com/spf13/cobra"
)

var errNoCuts = errors.New("no cuts given; use --cut, --input or --project")

// jobFlags are the job inputs shared by pack and compare.
type jobFlags struct {
	stock       string
	kerf        float64
	cuts        []string
	input       string
	projectPath string
}

func (f *jobFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.stock, "stock", "s", "", "Stock sheet as WxH or a preset name (default from config)")
	cmd.Flags().Float64VarP(&f.kerf, "kerf", "k", 0, "Blade width in mm (default from config)")
	cmd.Flags().StringArrayVar(&f.cuts, "cut", nil, "Cut as WxH or WxHxQ; repeatable")
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "Import cuts from a .csv, .xlsx or .dxf file")
	cmd.Flags().StringVarP(&f.projectPath, "project", "p", "", "Start from a saved project file")
}

// build assembles the project from flags. Later sources add to or
// override earlier ones: project file, then stock/kerf flags, then
// imported cuts, then --cut flags.
func (f *jobFlags) build(ctx context.Context, cmd *cobra.Command, st *cliState) (model.Project, error) {
	log := logging.Get(ctx)

	p := model.Project{Job: model.Job{Kerf: st.config.Kerf, Cuts: []model.Cut{}}}
	if f.projectPath != "" {
		loaded, err := project.LoadProject(st.env.fs, f.projectPath)
		if err != nil {
			return model.Project{}, err
		}
		p = loaded
		p.Layout = nil
	}

	if f.stock != "" {
		stock, err := st.config.ResolveStock(f.stock)
		if err != nil {
			return model.Project{}, err
		}
		p.Job.Stock = stock
	}
	if cmd.Flags().Changed("kerf") {
		p.Job.Kerf = f.kerf
	}

	if f.input != "" {
		result := importer.ImportFile(st.env.fs, f.input)
		for _, w := range result.Warnings {
			log.Info().Str("file", f.input).Msg(w)
		}
		if err := result.Err(); err != nil {
			return model.Project{}, fmt.Errorf("%s: %w", f.input, err)
		}
		p.Job.Cuts = append(p.Job.Cuts, result.Cuts...)
		log.Info().Str("file", f.input).Int("cuts", len(result.Cuts)).Msg("imported cuts")
	}

	for _, s := range f.cuts {
		c, err := model.ParseCut(s)
		if err != nil {
			return model.Project{}, err
		}
		p.Job.Cuts = append(p.Job.Cuts, c)
	}

	if len(p.Job.Cuts) == 0 {
		return model.Project{}, errNoCuts
	}

	st.config.ApplyToJob(&p.Job)
	if p.Name == "" {
		p.Name = defaultName(f)
	}
	return p, nil
}

func defaultName(f *jobFlags) string {
	if f.input != "" {
		base := filepath.Base(f.input)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return "cli"
}
