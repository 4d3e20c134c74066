package main

import (
	"context"

	"github.com/piwi3910/cutlist/internal/model"
	"github.com/piwi3910/cutlist/internal/project"
	"github.com/piwi3910/cutlist/internal/shell"
	"github.com/spf13/cobra"
)

// createShellCommand creates the interactive shell subcommand.
func createShellCommand(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "shell [project]",
		Short: "Edit and pack a job interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := model.NewProject()
			p.Job.Kerf = st.config.Kerf
			p.Job.Stock = model.StockSheet{}
			if len(args) == 1 {
				loaded, err := project.LoadProject(st.env.fs, args[0])
				if err != nil {
					return err
				}
				p = loaded
				st.rememberProject(cmd.Context(), args[0])
			}

			session := shell.NewSession(st.env.fs, st.config, p, cmd.OutOrStdout(),
				func(ctx context.Context, name string, layout model.Layout) {
					st.recordRun(ctx, name, layout)
				})

			session.OnProjectFile = st.rememberProject

			prompter := st.env.prompter()
			defer func() { _ = prompter.Close() }()

			return session.Run(cmd.Context(), prompter)
		},
	}
}
