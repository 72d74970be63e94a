package commands

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/fmcheck/internal/errors"
	"github.com/thoreinstein/fmcheck/internal/logging"
)

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	resetFlags(t)

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"verbose (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = tt.verbosity
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > logging.LevelTrace {
				shouldBeDisabled := tt.wantLevel - 4
				if logger.Enabled(t.Context(), shouldBeDisabled) {
					t.Errorf("expected level %v to be disabled", shouldBeDisabled)
				}
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	resetFlags(t)

	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"FMCHECK_DEBUG=1", "1", slog.LevelDebug},
		{"FMCHECK_DEBUG=true", "true", slog.LevelDebug},
		{"FMCHECK_DEBUG=2", "2", logging.LevelTrace},
		{"FMCHECK_DEBUG=0", "0", slog.LevelWarn},
		{"FMCHECK_DEBUG=unknown", "foo", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = 0
			t.Setenv(debugEnv, tt.envVal)

			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel == slog.LevelDebug && logger.Enabled(t.Context(), logging.LevelTrace) {
				t.Error("expected Trace level to be disabled when FMCHECK_DEBUG=1")
			}
		})
	}
}

func TestSetupLogging_QuietAndVerbose(t *testing.T) {
	resetFlags(t)
	quiet = true
	verbosity = 1

	err := setupLogging(rootCmd)
	if err == nil {
		t.Fatal("expected error for --quiet with --verbose")
	}
	if errors.ExitCode(err) != errors.ExitUser {
		t.Errorf("exit code = %d, want %d", errors.ExitCode(err), errors.ExitUser)
	}
}

func TestSetupLogging_InvalidFormat(t *testing.T) {
	resetFlags(t)
	logFormat = "xml"

	err := setupLogging(rootCmd)
	if !errors.Is(err, logging.ErrInvalidFormat) {
		t.Fatalf("setupLogging() error = %v, want ErrInvalidFormat", err)
	}
	if code := errors.ExitCode(err); code != errors.ExitUser {
		t.Errorf("ExitCode() = %d, want %d", code, errors.ExitUser)
	}
}

func TestSetupLogging_LogFile(t *testing.T) {
	resetFlags(t)
	logFile = filepath.Join(t.TempDir(), "fmcheck.log")
	verbosity = 1

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	logging.FromContext(rootCmd.Context()).Info("written to file", "path", "a.md")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"written to file"`) {
		t.Errorf("log file missing JSON record: %s", data)
	}
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{"nil", nil, nil},
		{"validation failed is silent", errors.NewExitError(errors.ErrValidationFailed, errors.ExitUser), nil},
		{"plain", errors.New("boom"), []string{"Error: boom"}},
		{
			"with suggestion",
			errors.Wrap(errors.NewConfigError(errors.New("bad rule")), "executing root command"),
			[]string{"Error: bad rule", "fmcheck config show"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintError(&buf, tt.err)

			if tt.want == nil && buf.Len() != 0 {
				t.Errorf("expected no output, got %q", buf.String())
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output %q missing %q", buf.String(), w)
				}
			}
		})
	}
}
