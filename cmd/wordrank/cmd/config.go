package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/wordrank/configs"
	"github.com/Aman-CERP/wordrank/internal/config"
	"github.com/Aman-CERP/wordrank/internal/output"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Inspect and create wordrank configuration files.

Configuration precedence (lowest to highest):
  1. Built-in defaults
  2. User config (~/.config/wordrank/config.yaml)
  3. Project config (./.wordrank.yaml) or the file given by --config
  4. Environment variables (WORDRANK_*)
  5. Command-line flags`,
		Example: `  # Create the user config from the template
  wordrank config init

  # Create a project config in the current directory
  wordrank config init --project

  # Show the effective configuration
  wordrank config show`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd(a))
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force   bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file from the template",
		Long: `Write the commented configuration template.

By default the user config is created at ~/.config/wordrank/config.yaml
(or $XDG_CONFIG_HOME/wordrank/config.yaml). With --project, .wordrank.yaml
is created in the current directory instead.

An existing file is left alone unless --force is given, in which case it is
backed up first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, project, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file after backing it up")
	cmd.Flags().BoolVar(&project, "project", false, "Create ./.wordrank.yaml instead of the user config")

	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long:  `Show the configuration after merging defaults, config files and environment variables.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			switch format {
			case "json":
				return encodeJSON(cmd.OutOrStdout(), cfg)
			case "yaml", "":
				data, err := cfg.Marshal()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			default:
				return unknownFormat(format, "yaml, json")
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "yaml", "Output format: yaml, json")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	var project bool

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Long:  `Print the user config path, or with --project the project config path for the current directory.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !project {
				fmt.Fprintln(cmd.OutOrStdout(), config.GetUserConfigPath())
				return nil
			}
			path, err := projectConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&project, "project", false, "Print the project config path")

	return cmd
}

// projectConfigPath returns the project config found in the working
// directory, or where a new one would be created.
func projectConfigPath() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	if path := config.FindProjectConfig(dir); path != "" {
		return path, nil
	}
	return filepath.Join(dir, config.ProjectConfigNames[0]), nil
}

func runConfigInit(cmd *cobra.Command, project, force bool) error {
	out := output.New(cmd.OutOrStdout(), false)

	path := config.GetUserConfigPath()
	template := configs.UserConfigTemplate
	if project {
		var err error
		if path, err = projectConfigPath(); err != nil {
			return err
		}
		template = configs.ProjectConfigTemplate
	}

	if _, err := os.Stat(path); err == nil {
		if !force {
			out.Warning("Configuration already exists")
			out.Statusf("📁", "Location: %s", path)
			out.Status("💡", "Use --force to replace it (a backup is kept)")
			return nil
		}

		backup, err := config.Backup(path)
		if err != nil {
			return err
		}
		out.Statusf("💾", "Backup: %s", backup)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(template), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out.Success("Created configuration")
	out.Statusf("📁", "Location: %s", path)
	out.Status("📋", "Edit the file, then run 'wordrank config show' to verify")

	return nil
}
