package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/fmcheck/internal/editor"
	"github.com/thoreinstein/fmcheck/internal/errors"
	"github.com/thoreinstein/fmcheck/internal/paths"
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect fmcheck configuration",
	Long: `Inspect the configuration fmcheck would use.

Without a subcommand, shows the resolved configuration.`,
	Example: `  # Show the resolved configuration
  fmcheck config

  # Show where fmcheck looks for configuration
  fmcheck config path

See Also: fmcheck check`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Long: `Load, validate and print the configuration as YAML.

Environment overrides (FMCHECK_SETTINGS_LEVEL and friends) and defaults are
applied, so the output is exactly what "fmcheck check" would use.`,
	Example: `  # Show the configuration found in the working directory
  fmcheck config show

  # Validate a specific file
  fmcheck config show --config rules.yaml

See Also: fmcheck config path`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "List configuration search locations",
	Long: `List the files fmcheck searches for configuration, in order, marking the
one that would be used.`,
	Args: cobra.NoArgs,
	RunE: runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration in $EDITOR",
	Long: `Open the configuration file in your editor, then validate it.

Uses $VISUAL or $EDITOR, falling back to nano or vi. The file is the one named
by --config, or the first one found by "fmcheck config path".`,
	Example: `  # Edit the project configuration
  fmcheck config edit

  # Edit with a specific editor
  EDITOR="code --wait" fmcheck config edit

See Also: fmcheck config show`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "marshaling config"), "")
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "# %s\n", cfg.Path)
	_, err = w.Write(data)
	return errors.Wrap(err, "writing config")
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "getting working directory"), "")
	}

	found, ok := paths.FindConfig(dir)
	w := cmd.OutOrStdout()
	for _, candidate := range paths.ConfigCandidates(dir) {
		marker := " "
		if ok && candidate == found {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s\n", marker, candidate)
	}
	if !ok {
		fmt.Fprintln(w, "no configuration file found")
	}
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := configFile
	if path == "" {
		found, ok := paths.FindConfig(".")
		if !ok {
			return errors.NewUserError(
				errors.Wrap(errors.ErrNotFound, "no configuration file"),
				"Create .fmcheck.yaml in the project root",
			)
		}
		path = found
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Location: %s\n", path)

	ed := &editor.Editor{
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}
	if err := ed.Open(cmd.Context(), path); err != nil {
		return errors.NewSystemError(err, "Set $EDITOR to your preferred editor")
	}

	configFile = path
	if _, err := loadConfig(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
	return nil
}
