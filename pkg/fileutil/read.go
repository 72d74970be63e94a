// Package fileutil provides bounded file reading for document checks.
package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/fmcheck/internal/errors"
)

// MaxFileSize is the default maximum document size read (4MB).
const MaxFileSize = 4 * 1024 * 1024

// ErrFileTooLarge indicates that a file exceeded the read limit.
var ErrFileTooLarge = errors.New("file exceeds maximum size")

// ReadFileWithLimit reads a file up to MaxFileSize.
func ReadFileWithLimit(path string) ([]byte, error) {
	return ReadLimit(path, MaxFileSize)
}

// ReadLimit reads a file, failing with ErrFileTooLarge when it holds more
// than limit bytes. A limit <= 0 means MaxFileSize.
func ReadLimit(path string, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = MaxFileSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Fail fast when the size is already known to be too large.
	if info, err := f.Stat(); err == nil {
		if info.IsDir() {
			return nil, errors.Newf("%s is a directory", path)
		}
		if info.Size() > limit {
			return nil, errors.Wrapf(ErrFileTooLarge, "%d bytes > %d", info.Size(), limit)
		}
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if int64(len(data)) > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "more than %d bytes", limit)
	}

	return data, nil
}
