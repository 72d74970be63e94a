// Package report renders checker results as text or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/thoreinstein/fmcheck/internal/checker"
	"github.com/thoreinstein/fmcheck/internal/errors"
	"github.com/thoreinstein/fmcheck/internal/validator"
)

// Format specifies the output format for reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// maxValueWidth truncates offending values in text output.
const maxValueWidth = 50

// Reporter formats and writes check results.
type Reporter struct {
	out    io.Writer
	format Format
	level  validator.Severity
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithLevel hides events below level. Skip events are never shown.
func WithLevel(level validator.Severity) Option {
	return func(r *Reporter) {
		r.level = level
	}
}

// NewReporter creates a new Reporter showing warnings and errors.
func NewReporter(out io.Writer, format Format, opts ...Option) *Reporter {
	r := &Reporter{
		out:    out,
		format: format,
		level:  validator.SeverityWarn,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report writes results followed by a summary.
func (r *Reporter) Report(results []checker.DocumentResult) error {
	switch r.format {
	case FormatJSON:
		return r.reportJSON(results)
	default:
		return r.reportText(results)
	}
}

// visible returns the events a reader should see.
func (r *Reporter) visible(events validator.Events) validator.Events {
	floor := max(r.level, validator.SeverityWarn)
	return events.AtLeast(floor)
}

type jsonReport struct {
	Passes    bool            `json:"passes"`
	Summary   checker.Summary `json:"summary"`
	Documents []jsonDocument  `json:"documents"`
}

type jsonDocument struct {
	Path     string                  `json:"path"`
	Passes   bool                    `json:"passes"`
	Status   checker.Status          `json:"status"`
	Notice   string                  `json:"notice,omitempty"`
	Error    string                  `json:"error,omitempty"`
	Patterns []checker.PatternResult `json:"patterns"`
}

func (r *Reporter) reportJSON(results []checker.DocumentResult) error {
	summary := checker.Summarize(results)
	rep := jsonReport{
		Passes:    summary.OK(),
		Summary:   summary,
		Documents: make([]jsonDocument, 0, len(results)),
	}

	for _, res := range results {
		doc := jsonDocument{
			Path:     res.Path,
			Passes:   res.Passes,
			Status:   res.Status,
			Notice:   res.Notice,
			Patterns: make([]checker.PatternResult, 0, len(res.Patterns)),
		}
		if res.Err != nil {
			doc.Error = res.Err.Error()
		}
		for _, p := range res.Patterns {
			p.Events = r.visible(p.Events)
			if p.Events == nil {
				p.Events = validator.Events{}
			}
			doc.Patterns = append(doc.Patterns, p)
		}
		rep.Documents = append(rep.Documents, doc)
	}

	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(rep), "encoding JSON report")
}

func (r *Reporter) reportText(results []checker.DocumentResult) error {
	for _, res := range results {
		fmt.Fprintf(r.out, "Checking File %s\n", res.Path)

		switch res.Status {
		case checker.StatusError:
			fmt.Fprintf(r.out, "  %s %v\n", color.RedString("✗"), res.Err)
		case checker.StatusNoFrontmatter:
			fmt.Fprintf(r.out, "  %s\n", color.YellowString("! %s", res.Notice))
		case checker.StatusNoRules:
			fmt.Fprintf(r.out, "  %s\n", color.HiBlackString("- no matching patterns"))
		default:
			for _, p := range res.Patterns {
				r.printPattern(p)
			}
		}
	}

	r.printSummary(checker.Summarize(results))
	return nil
}

func (r *Reporter) printPattern(p checker.PatternResult) {
	mark := color.GreenString("✓")
	if !p.Passes {
		mark = color.RedString("✗")
	}
	fmt.Fprintf(r.out, "  %s %s %s\n", mark, p.Name, color.HiBlackString("(%s)", p.Pattern))

	for _, ev := range r.visible(p.Events) {
		r.printEvent(ev)
	}
}

func (r *Reporter) printEvent(ev validator.Event) {
	c := color.FgYellow
	if ev.Severity == validator.SeverityError {
		c = color.FgRed
	}
	printer := color.New(c).SprintFunc()

	// Format:    • [severity] message [value]
	var sb strings.Builder
	sb.WriteString("      • ")
	sb.WriteString(printer("[" + ev.Severity.String() + "]"))
	sb.WriteString(" ")
	sb.WriteString(ev.Message)

	if ev.Value != nil {
		valStr := truncate(fmt.Sprintf("%v", ev.Value), maxValueWidth)
		sb.WriteString(color.New(color.FgHiBlack).Sprintf(" [%s]", valStr))
	}

	fmt.Fprintln(r.out, sb.String())
}

// truncate shortens s to at most width runes, ending in "..." when cut.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func (r *Reporter) printSummary(s checker.Summary) {
	fmt.Fprintln(r.out)

	parts := []string{color.GreenString("%d passed", s.Passed)}
	if s.Failed > 0 {
		parts = append(parts, color.RedString("%d failed", s.Failed))
	}
	if s.NoFrontmatter > 0 {
		parts = append(parts, color.YellowString("%d without frontmatter", s.NoFrontmatter))
	}
	if s.NoRules > 0 {
		parts = append(parts, fmt.Sprintf("%d unmatched", s.NoRules))
	}
	if s.Errors > 0 {
		parts = append(parts, color.RedString("%d unreadable", s.Errors))
	}

	fmt.Fprintf(r.out, "%d document(s) checked: %s\n", s.Total, strings.Join(parts, ", "))
}
