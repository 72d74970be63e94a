package checker

import (
	"fmt"

	"github.com/thoreinstein/fmcheck/internal/validator"
)

// Status tells apart the ways a document can end up passing or failing.
type Status string

const (
	// StatusChecked means at least one pattern matched and was evaluated.
	StatusChecked Status = "checked"
	// StatusNoFrontmatter means the document has no (or empty) frontmatter.
	StatusNoFrontmatter Status = "no_frontmatter"
	// StatusNoRules means no configured pattern matched the path.
	StatusNoRules Status = "no_rules"
	// StatusError means the document could not be read or decoded.
	StatusError Status = "error"
)

// NoticeNoFrontmatter is attached to documents without frontmatter.
const NoticeNoFrontmatter = "no frontmatter found"

// PatternResult is the outcome of one matching pattern on one document.
type PatternResult struct {
	Name    string           `json:"name"`
	Pattern string           `json:"pattern"`
	Passes  bool             `json:"passes"`
	Events  validator.Events `json:"events"`
}

// DocumentResult is the outcome of checking one document.
type DocumentResult struct {
	Path     string          `json:"path"`
	Passes   bool            `json:"passes"`
	Status   Status          `json:"status"`
	Notice   string          `json:"notice,omitempty"`
	Patterns []PatternResult `json:"patterns"`
	Err      error           `json:"-"`
}

// Events returns every event of every evaluated pattern, in pattern order.
func (r DocumentResult) Events() validator.Events {
	var out validator.Events
	for _, p := range r.Patterns {
		out = append(out, p.Events...)
	}
	return out
}

// ExtractionError reports a document whose frontmatter could not be read.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting frontmatter from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
