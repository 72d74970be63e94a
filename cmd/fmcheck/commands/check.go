package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/fmcheck/internal/checker"
	"github.com/thoreinstein/fmcheck/internal/cli/prompt"
	"github.com/thoreinstein/fmcheck/internal/discover"
	"github.com/thoreinstein/fmcheck/internal/errors"
	"github.com/thoreinstein/fmcheck/internal/logging"
	"github.com/thoreinstein/fmcheck/internal/report"
	"github.com/thoreinstein/fmcheck/internal/validator"
)

var (
	checkJSON        bool
	checkFailFast    bool
	checkLevel       string
	checkInteractive bool
	checkHidden      bool
)

// selectDocuments is replaced in tests.
var selectDocuments = func(paths []string) ([]string, error) {
	return prompt.NewSelector().SelectDocuments(paths)
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "output results as JSON")
	checkCmd.Flags().BoolVar(&checkFailFast, "fail-fast", false,
		"stop checking a document at its first failing pattern")
	checkCmd.Flags().StringVar(&checkLevel, "level", "",
		"minimum severity to report: skip, warn, error (default from config)")
	checkCmd.Flags().BoolVarP(&checkInteractive, "interactive", "i", false,
		"pick documents to check with a fuzzy finder")
	checkCmd.Flags().BoolVar(&checkHidden, "hidden", false,
		"include hidden files and directories when walking")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check document frontmatter against the configured rules",
	Long: `Check the frontmatter of the given documents.

Directories are walked recursively and every file with one of the configured
extensions (default .md and .markdown) is checked. Without arguments the
current directory is used.

The exit code is 0 when every document passes and 1 when any document fails
or cannot be read. Documents without frontmatter, or that no pattern matches,
pass.`,
	Example: `  # Check everything below the current directory
  fmcheck check

  # Check a directory and report only errors
  fmcheck check content/ --level error

  # Machine-readable output
  fmcheck check --json posts/

  # Pick documents interactively
  fmcheck check -i

See Also: fmcheck config show`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := logging.FromContext(cmd.Context())

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if checkLevel != "" {
		level, err := validator.ParseSeverity(checkLevel)
		if err != nil {
			return errors.NewUserError(err, "Use --level skip, warn or error")
		}
		cfg.Settings.Level = level
	}

	if len(args) == 0 {
		args = []string{"."}
	}
	paths, err := discover.Expand(args, discover.Options{
		Extensions: cfg.Settings.Extensions,
		Hidden:     checkHidden,
		Logger:     logger,
	})
	if err != nil {
		return errors.NewUserError(err, "Check that every path exists")
	}
	logger.Info("discovered documents", "count", len(paths), "config", cfg.Path)

	if checkInteractive {
		paths, err = selectDocuments(paths)
		if errors.Is(err, prompt.ErrSelectionCancelled) {
			return nil
		}
		if err != nil {
			return errors.NewUserError(err, "")
		}
	}

	// Patterns are relative to the config file's directory, falling back to
	// the working directory for documents outside it.
	opts := []checker.Option{checker.WithLogger(logger)}
	if cfg.Path != "" {
		opts = append(opts, checker.WithBaseDir(filepath.Dir(cfg.Path)))
	}
	if wd, err := os.Getwd(); err == nil {
		opts = append(opts, checker.WithBaseDir(wd))
	}
	if cmd.Flags().Changed("fail-fast") {
		opts = append(opts, checker.WithFailFast(checkFailFast))
	}
	c, err := checker.FromConfig(cfg, opts...)
	if err != nil {
		return errors.NewConfigError(err)
	}

	results := c.CheckAll(cmd.Context(), paths)

	format := report.FormatText
	if checkJSON {
		format = report.FormatJSON
	}
	reporter := report.NewReporter(cmd.OutOrStdout(), format, report.WithLevel(cfg.Settings.Level))
	if err := reporter.Report(results); err != nil {
		return errors.NewSystemError(err, "")
	}

	if !checker.Summarize(results).OK() {
		return errors.NewExitError(errors.ErrValidationFailed, errors.ExitUser)
	}
	return nil
}
