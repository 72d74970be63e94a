// Package errors provides error handling conventions for the fmcheck CLI.
//
// It re-exports the constructors and inspectors of
// [github.com/cockroachdb/errors] so callers only import one errors package,
// defines sentinel errors for common failure conditions, and provides an
// ExitError type that carries a process exit code.
//
// # Sentinel Errors
//
//	if errors.Is(err, errors.ErrInvalidConfig) {
//	    // configuration could not be loaded
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): every document passed
//   - ExitUser (1): a document failed, or the configuration is invalid
//   - ExitSystem (2): an I/O or environment failure
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and an optional
// suggestion:
//
//	err := errors.NewConfigError(loadErr)
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
