package validator

import (
	"strings"

	"github.com/thoreinstein/fmcheck/internal/errors"
)

// Severity grades a rule violation. Severities are ordered: a higher value is
// more severe.
type Severity int

const (
	// SeveritySkip suppresses reporting of the violation entirely.
	SeveritySkip Severity = iota
	// SeverityWarn reports the violation without failing the document.
	SeverityWarn
	// SeverityError reports the violation and fails the document.
	SeverityError
)

// ErrUnknownSeverity indicates a severity string that is not skip, warn or error.
var ErrUnknownSeverity = errors.New("unknown severity")

func (s Severity) String() string {
	switch s {
	case SeveritySkip:
		return "skip"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a configuration string to a Severity.
// Matching is case-insensitive and "warning" is accepted as an alias of "warn".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "skip":
		return SeveritySkip, nil
	case "warn", "warning":
		return SeverityWarn, nil
	case "error":
		return SeverityError, nil
	default:
		return SeverityError, errors.Wrapf(ErrUnknownSeverity, "%q (valid: skip, warn, error)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// AtLeast reports whether s is at least as severe as floor.
func (s Severity) AtLeast(floor Severity) bool {
	return s >= floor
}
