package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/thoreinstein/fmcheck/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrNoPatterns indicates the configuration defines no patterns.
	ErrNoPatterns = errors.New("no patterns defined")

	// ErrMissingName indicates a pattern without a name.
	ErrMissingName = errors.New("name is required")

	// ErrMissingPattern indicates a pattern without a glob.
	ErrMissingPattern = errors.New("pattern is required")

	// ErrInvalidPattern indicates a glob that cannot be parsed.
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrMissingRules indicates a pattern without rules.
	ErrMissingRules = errors.New("rules are required")

	// ErrInvalidExtension indicates a settings extension without a leading dot.
	ErrInvalidExtension = errors.New("extension must start with '.'")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of every problem found.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	for _, ext := range cfg.Settings.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, errors.Wrapf(ErrInvalidExtension, "settings.extensions: %q", ext))
		}
	}

	if len(cfg.Patterns) == 0 {
		return append(errs, ErrNoPatterns)
	}

	for i, p := range cfg.Patterns {
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, &PatternError{Index: i, Name: p.Name, Err: ErrMissingName})
		}

		switch {
		case strings.TrimSpace(p.Pattern) == "":
			errs = append(errs, &PatternError{Index: i, Name: p.Name, Err: ErrMissingPattern})
		case !doublestar.ValidatePattern(p.Pattern):
			errs = append(errs, &PatternError{Index: i, Name: p.Name, Err: errors.Wrapf(ErrInvalidPattern, "%q", p.Pattern)})
		}

		if len(p.Rules) == 0 {
			errs = append(errs, &PatternError{Index: i, Name: p.Name, Err: ErrMissingRules})
		}

		for j, rc := range p.Rules {
			if _, err := rc.Rule(); err != nil {
				errs = append(errs, &RuleError{
					Pattern: p.Name,
					Index:   j,
					Field:   rc.FieldName,
					Err:     err,
				})
			}
		}
	}

	return errs
}

// ConfigError reports every problem found while loading a configuration.
type ConfigError struct {
	Path     string
	Err      error
	Problems []error
}

func (e *ConfigError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Err.Error())
	if e.Path != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Path)
	}
	for i, p := range e.Problems {
		if i == 0 {
			sb.WriteString(": ")
		} else {
			sb.WriteString("; ")
		}
		sb.WriteString(p.Error())
	}
	return sb.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// PatternError represents an error for a specific pattern entry.
type PatternError struct {
	Index int
	Name  string
	Err   error
}

func (e *PatternError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("patterns[%d]: %s", e.Index, e.Err)
	}
	return fmt.Sprintf("patterns[%d] (%s): %s", e.Index, e.Name, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// RuleError represents an error for a specific rule of a pattern.
type RuleError struct {
	Pattern string
	Index   int
	Field   string
	Err     error
}

func (e *RuleError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("pattern %q: rules[%d]: %s", e.Pattern, e.Index, e.Err)
	}
	return fmt.Sprintf("pattern %q: rules[%d] (%s): %s", e.Pattern, e.Index, e.Field, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}
