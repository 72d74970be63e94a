package checker

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/thoreinstein/fmcheck/internal/config"
	"github.com/thoreinstein/fmcheck/internal/errors"
	"github.com/thoreinstein/fmcheck/internal/validator"
)

// ErrInvalidPattern is returned for globs doublestar cannot parse. It is the
// sentinel config.Validate reports for the same problem.
var ErrInvalidPattern = config.ErrInvalidPattern

// PatternRuleset binds a named glob to the ruleset applied to matching paths.
type PatternRuleset struct {
	Name    string
	Pattern string
	Ruleset *validator.Ruleset
}

// NewPatternRuleset validates pattern and returns the binding.
func NewPatternRuleset(name, pattern string, rs *validator.Ruleset) (PatternRuleset, error) {
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return PatternRuleset{}, errors.Wrapf(ErrInvalidPattern, "%q", pattern)
	}
	if rs == nil {
		rs = validator.NewRuleset()
	}
	return PatternRuleset{Name: name, Pattern: pattern, Ruleset: rs}, nil
}

// Matches reports whether the whole path matches the glob. "*" stays within
// one path segment and "**" spans segments.
func (p PatternRuleset) Matches(path string) bool {
	ok, err := doublestar.Match(filepath.ToSlash(p.Pattern), filepath.ToSlash(path))
	return err == nil && ok
}
