// Package discover expands command-line arguments into document paths.
package discover

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/fmcheck/internal/errors"
	"github.com/thoreinstein/fmcheck/internal/logging"
)

// Options controls directory expansion.
type Options struct {
	// Extensions are the file extensions collected from directories,
	// compared case-insensitively. Files named directly are always kept.
	Extensions []string
	// Hidden includes dot-directories and dot-files when walking.
	Hidden bool
	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// Expand turns args into document paths. Files are returned as given;
// directories are walked recursively. Each argument's paths are sorted, and
// a path produced twice is kept only at its first position.
func Expand(args []string, opts Options) ([]string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewDiscard()
	}

	exts := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[e] = true
	}

	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		key := filepath.Clean(p)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, p)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrapf(errors.ErrNotFound, "%s", arg)
			}
			return nil, errors.Wrapf(err, "stat %s", arg)
		}

		if !info.IsDir() {
			add(arg)
			continue
		}

		found, err := walk(arg, exts, opts.Hidden, logger)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			add(p)
		}
	}

	return out, nil
}

func walk(root string, exts map[string]bool, hidden bool, logger *slog.Logger) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				logger.Warn("permission denied", "path", path)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			return err
		}

		name := d.Name()
		if path != root && !hidden && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				logger.Debug("skipping hidden directory", "path", path)
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		if len(exts) == 0 || exts[strings.ToLower(filepath.Ext(name))] {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walking %s", root)
	}

	slices.Sort(found)
	return found, nil
}
