package main

import (
	"context"
	"fmt"
	"io"

	"github.com/piwi3910/cutlist/internal/history"
	"github.com/piwi3910/cutlist/internal/logging"
	"github.com/piwi3910/cutlist/internal/model"
	"github.com/piwi3910/cutlist/internal/project"
	"github.com/piwi3910/cutlist/internal/shell"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// environment holds the process-level dependencies commands use, so
// tests can swap in an in-memory filesystem and scripted input.
type environment struct {
	fs          afero.Fs
	logWriter   io.Writer // nil logs to the rotating file
	historyPath string    // empty uses the XDG data dir
	prompter    func() shell.Prompter
}

func defaultEnvironment() *environment {
	return &environment{
		fs:       afero.NewOsFs(),
		prompter: func() shell.Prompter { return shell.NewLinerPrompter() },
	}
}

// cliState is filled in by the root command before any subcommand runs.
type cliState struct {
	env        *environment
	config     model.AppConfig
	configPath string
}

// createRootCommand creates the main root command that shows help by default.
func createRootCommand(env *environment) *cobra.Command {
	st := &cliState{env: env}

	rootCmd := &cobra.Command{
		Use:           "cutlist",
		Short:         "Guillotine cut list optimizer",
		Long:          "Pack rectangular cuts onto a stock sheet with guillotine cuts, accounting for blade kerf.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to config file (default is the XDG config dir)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(
		createPackCommand(st),
		createCompareCommand(st),
		createEstimateCommand(st),
		createShellCommand(st),
		createHistoryCommand(st),
		createConfigCommand(st),
	)

	return rootCmd
}

// setup loads the config and attaches the logger to the command context.
func (st *cliState) setup(cmd *cobra.Command) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath == "" {
		configPath = project.NewPaths(st.env.fs).ConfigPath()
	}
	st.configPath = configPath

	st.config, err = project.LoadAppConfig(st.env.fs, configPath)
	if err != nil {
		return err
	}

	levelName, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return fmt.Errorf("failed to get log-level flag: %w", err)
	}
	if levelName == "" {
		levelName = st.config.LogLevel
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, err = logging.New(ctx, st.env.fs, logging.Config{
		Writer:  st.env.logWriter,
		Command: cmd.Name(),
		Level:   logging.ParseLevel(levelName),
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	cmd.SetContext(ctx)

	logging.Get(ctx).Debug().Str("config", configPath).Msg("config loaded")
	return nil
}

func (st *cliState) openHistory(ctx context.Context) (*history.Store, error) {
	path := st.env.historyPath
	if path == "" {
		var err error
		path, err = project.NewPaths(st.env.fs).HistoryPath()
		if err != nil {
			return nil, err
		}
	}
	return history.Open(ctx, path)
}

// recordRun stores a run in the history database. Failures are logged and
// never fail the command.
func (st *cliState) recordRun(ctx context.Context, name string, layout model.Layout) {
	log := logging.Get(ctx)

	store, err := st.openHistory(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("history unavailable")
		return
	}
	defer func() { _ = store.Close() }()

	id, err := store.Record(ctx, history.RunFromLayout(name, layout))
	if err != nil {
		log.Warn().Err(err).Msg("failed to record run")
		return
	}
	log.Debug().Int64("run_id", id).Msg("run recorded")
}

// rememberProject puts path at the top of the recent list and saves the
// config. Failures are logged.
func (st *cliState) rememberProject(ctx context.Context, path string) {
	st.config.AddRecentProject(path)
	if err := project.SaveAppConfig(st.env.fs, st.configPath, st.config); err != nil {
		logging.Get(ctx).Warn().Err(err).Msg("failed to update recent projects")
	}
}
