package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/piwi3910/cutlist/internal/model"
	"github.com/piwi3910/cutlist/internal/project"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// createConfigCommand creates the config command group.
func createConfigCommand(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and manage settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		createConfigShowCommand(st),
		createConfigInitCommand(st),
		createConfigExportCommand(st),
		createConfigImportCommand(st),
	)
	return cmd
}

func createConfigShowCommand(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(st.config)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "# %s\n", st.configPath)
			_, err = out.Write(data)
			return err
		},
	}
}

func createConfigInitCommand(st *cliState) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exists, err := afero.Exists(st.env.fs, st.configPath)
			if err != nil {
				return err
			}
			if exists && !force {
				return fmt.Errorf("config file %s already exists, use --force to overwrite", st.configPath)
			}
			if err := project.SaveAppConfig(st.env.fs, st.configPath, model.DefaultAppConfig()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", color.GreenString("✓"), st.configPath)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return cmd
}

func createConfigExportCommand(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Back up settings to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := project.ExportAllData(st.env.fs, args[0], st.config); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Exported settings to %s\n", color.GreenString("✓"), args[0])
			return nil
		},
	}
}

func createConfigImportCommand(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Restore settings from a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(st.env.fs, args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(st.env.fs, st.configPath, backup.Config); err != nil {
				return err
			}
			st.config = backup.Config
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Restored settings from %s (backup %s, created %s)\n",
				color.GreenString("✓"), args[0], backup.Version, backup.CreatedAt)
			return nil
		},
	}
}
