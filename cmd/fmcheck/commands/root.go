// Package commands implements the CLI commands for fmcheck.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/fmcheck/cmd"
	"github.com/thoreinstein/fmcheck/internal/config"
	"github.com/thoreinstein/fmcheck/internal/errors"
	"github.com/thoreinstein/fmcheck/internal/logging"
)

// debugEnv enables debug logging when no -v flag is given.
const debugEnv = "FMCHECK_DEBUG"

// configFile holds the value of the --config flag.
var configFile string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file (default: .fmcheck.yaml in the working directory)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("fmcheck version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "fmcheck",
	Short: "Validate document frontmatter against pattern-scoped rules",
	Long: `fmcheck validates the frontmatter of Markdown and other text documents.

Rules are grouped into named patterns. Each pattern has a glob, and every
document whose path matches the glob is checked against the pattern's rules.
A rule can require a field to be present, non-null and of a given type, and
grades each violation as skip, warn or error. Only errors fail a document.`,
	Example: `  # Check every Markdown file below the current directory
  fmcheck check

  # Check specific files with an explicit configuration
  fmcheck check --config rules.yaml posts/hello.md

  # Show the resolved configuration
  fmcheck config show

  See Also: fmcheck check, fmcheck config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv(debugEnv); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or --log-format json")
	}

	handler := logging.New(logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	}).Handler()

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		cobra.OnFinalize(func() { _ = f.Close() })
		// File output uses JSON format
		fileLogger := logging.New(logging.Config{
			Level:  level,
			Format: logging.FormatJSON,
			Output: f,
		})
		handler = logging.NewMultiHandler(handler, fileLogger.Handler())
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// loadConfig resets configuration state and loads the file named by
// --config, or the first config found in the usual locations.
func loadConfig() (*config.Config, error) {
	config.Init()
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	return cfg, nil
}

// PrintError writes err and any suggestion it carries to w. Failed checks
// are already described by the report and print nothing.
func PrintError(w io.Writer, err error) {
	if err == nil || errors.Is(err, errors.ErrValidationFailed) {
		return
	}

	msg := err.Error()
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			msg = exitErr.Err.Error()
		}
		fmt.Fprintf(w, "%s %s\n", color.RedString("Error:"), msg)
		if exitErr.Suggestion != "" {
			fmt.Fprintf(w, "%s\n", color.HiBlackString(exitErr.Suggestion))
		}
		return
	}
	fmt.Fprintf(w, "%s %s\n", color.RedString("Error:"), msg)
}

// Execute runs the root command.
func Execute() error {
	return errors.Wrap(rootCmd.Execute(), "executing root command")
}
