// Package logging provides structured logging for the fmcheck CLI using slog.
//
// Text output goes through [Handler], a compact colorized handler meant for
// terminals; JSON output uses the standard library's JSON handler.
// [MultiHandler] tees records into several handlers, which the CLI uses for
// --log-file.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Debug("checking", "path", path)
//
// # Testing
//
//	logger := logging.ForTest(t)
package logging
