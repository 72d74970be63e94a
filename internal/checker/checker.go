package checker

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/fmcheck/internal/config"
	"github.com/thoreinstein/fmcheck/internal/errors"
	"github.com/thoreinstein/fmcheck/internal/logging"
	"github.com/thoreinstein/fmcheck/internal/validator"
	"github.com/thoreinstein/fmcheck/pkg/frontmatter"
)

// Extractor reads the frontmatter of the document at path.
// Implementations return an error wrapping frontmatter.ErrNoFrontmatter when
// the document has no frontmatter block.
type Extractor interface {
	Extract(path string) (map[string]any, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(path string) (map[string]any, error)

// Extract calls f(path).
func (f ExtractorFunc) Extract(path string) (map[string]any, error) {
	return f(path)
}

// FileExtractor reads frontmatter from the filesystem.
var FileExtractor Extractor = ExtractorFunc(frontmatter.ExtractFile)

// Checker validates documents against pattern-scoped rulesets.
type Checker struct {
	patterns  []PatternRuleset
	extractor Extractor
	failFast  bool
	baseDirs  []string
	logger    *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithFailFast stops evaluating a document's patterns after the first one
// that fails.
func WithFailFast(failFast bool) Option {
	return func(c *Checker) {
		c.failFast = failFast
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithBaseDir sets the directories patterns are relative to. Before matching,
// a document path is made relative to the first of dirs that contains it.
func WithBaseDir(dirs ...string) Option {
	return func(c *Checker) {
		for _, dir := range dirs {
			if dir == "" {
				continue
			}
			if abs, err := filepath.Abs(dir); err == nil {
				c.baseDirs = append(c.baseDirs, abs)
			}
		}
	}
}

// WithExtractor replaces the filesystem extractor.
func WithExtractor(e Extractor) Option {
	return func(c *Checker) {
		if e != nil {
			c.extractor = e
		}
	}
}

// New creates a Checker over patterns, evaluated in the given order.
func New(patterns []PatternRuleset, opts ...Option) *Checker {
	c := &Checker{
		patterns:  make([]PatternRuleset, len(patterns)),
		extractor: FileExtractor,
		logger:    logging.NewDiscard(),
	}
	copy(c.patterns, patterns)

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromConfig builds a Checker from a loaded configuration. Settings such as
// fail_fast are applied before opts, so opts take precedence.
func FromConfig(cfg *config.Config, opts ...Option) (*Checker, error) {
	if cfg == nil {
		return nil, errors.Wrap(errors.ErrInvalidConfig, "nil configuration")
	}

	patterns := make([]PatternRuleset, 0, len(cfg.Patterns))
	for i, pc := range cfg.Patterns {
		rules := make([]validator.Rule, 0, len(pc.Rules))
		for j, rc := range pc.Rules {
			rule, err := rc.Rule()
			if err != nil {
				return nil, errors.Wrapf(err, "patterns[%d] %q rules[%d]", i, pc.Name, j)
			}
			rules = append(rules, rule)
		}

		pr, err := NewPatternRuleset(pc.Name, pc.Pattern, validator.NewRuleset(rules...))
		if err != nil {
			return nil, errors.Wrapf(err, "patterns[%d] %q", i, pc.Name)
		}
		patterns = append(patterns, pr)
	}

	all := make([]Option, 0, len(opts)+1)
	all = append(all, WithFailFast(cfg.Settings.FailFast))
	all = append(all, opts...)
	return New(patterns, all...), nil
}

// Patterns returns a copy of the configured patterns in evaluation order.
func (c *Checker) Patterns() []PatternRuleset {
	out := make([]PatternRuleset, len(c.patterns))
	copy(out, c.patterns)
	return out
}

// Match returns the patterns that apply to path, in configuration order.
func (c *Checker) Match(path string) []PatternRuleset {
	name := c.matchPath(path)

	var matched []PatternRuleset
	for _, p := range c.patterns {
		if p.Matches(name) {
			matched = append(matched, p)
		}
	}
	return matched
}

// matchPath returns the form of path that patterns are matched against.
// Without base directories that is the cleaned path itself. Otherwise the
// path is resolved and made relative to the first base that contains it.
func (c *Checker) matchPath(path string) string {
	path = filepath.Clean(path)
	if len(c.baseDirs) == 0 {
		return path
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	for _, base := range c.baseDirs {
		rel, err := filepath.Rel(base, abs)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		return rel
	}
	return path
}

// Check validates one document. Problems are carried in the result; Check
// never panics on bad input and holds no state between calls.
func (c *Checker) Check(path string) DocumentResult {
	result := DocumentResult{Path: path}

	meta, err := c.extractor.Extract(path)
	switch {
	case errors.Is(err, frontmatter.ErrNoFrontmatter):
		meta = nil
	case err != nil:
		c.logger.Warn("failed to extract frontmatter", "path", path, "error", err)
		result.Status = StatusError
		result.Err = &ExtractionError{Path: path, Err: err}
		return result
	}

	if len(meta) == 0 {
		c.logger.Warn(NoticeNoFrontmatter, "path", path)
		result.Passes = true
		result.Status = StatusNoFrontmatter
		result.Notice = NoticeNoFrontmatter
		return result
	}

	matched := c.Match(path)
	if len(matched) == 0 {
		c.logger.Debug("no pattern matches document", "path", path)
		result.Passes = true
		result.Status = StatusNoRules
		return result
	}

	result.Status = StatusChecked
	result.Passes = true
	for _, p := range matched {
		c.logger.Debug("applying pattern", "path", path, "pattern", p.Pattern, "name", p.Name)

		passes, events := p.Ruleset.Validate(meta)
		result.Patterns = append(result.Patterns, PatternResult{
			Name:    p.Name,
			Pattern: p.Pattern,
			Passes:  passes,
			Events:  events,
		})
		if !passes {
			result.Passes = false
			if c.failFast {
				break
			}
		}
	}
	return result
}
