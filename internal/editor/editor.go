// Package editor launches the user's text editor on a file, e.g. for
// "fmcheck config edit".
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/fmcheck/internal/errors"
)

// ErrNoEditor is returned when no editor command can be determined.
var ErrNoEditor = errors.New("no editor configured")

// Editor runs an editor command attached to the given streams.
type Editor struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns an Editor attached to the process's standard streams.
func New() *Editor {
	return &Editor{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Open runs the editor on path and waits for it to exit. The editor value
// may carry arguments, as in EDITOR="code --wait".
func (e *Editor) Open(ctx context.Context, path string) error {
	argv := Command()
	if len(argv) == 0 {
		return ErrNoEditor
	}

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", argv[0])
	}
	return nil
}

// Command returns the editor command split into fields.
// Fallback chain: $VISUAL → $EDITOR → nano → vi
func Command() []string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields
		}
	}

	// User-friendly fallback (nano is easier for beginners)
	if _, err := exec.LookPath("nano"); err == nil {
		return []string{"nano"}
	}
	if _, err := exec.LookPath("vi"); err == nil {
		return []string{"vi"}
	}
	return nil
}
