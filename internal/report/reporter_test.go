package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/thoreinstein/fmcheck/internal/checker"
	"github.com/thoreinstein/fmcheck/internal/errors"
	"github.com/thoreinstein/fmcheck/internal/validator"
)

func sampleResults() []checker.DocumentResult {
	return []checker.DocumentResult{
		{
			Path:   "posts/a.md",
			Passes: false,
			Status: checker.StatusChecked,
			Patterns: []checker.PatternResult{{
				Name:    "Blog Posts",
				Pattern: "posts/*.md",
				Passes:  false,
				Events: validator.Events{
					{Field: "title", Kind: validator.KindMissingField, Severity: validator.SeverityError, Message: "Missing field: 'title'"},
					{Field: "tags", Kind: validator.KindTypeMismatch, Severity: validator.SeverityWarn, Message: "tags Value is not of type 'list'", Value: "go"},
					{Field: "draft", Kind: validator.KindNullValue, Severity: validator.SeveritySkip, Message: "draft Value is 'Null'"},
				},
			}},
		},
		{Path: "posts/b.md", Passes: true, Status: checker.StatusNoFrontmatter, Notice: checker.NoticeNoFrontmatter},
		{Path: "notes.md", Passes: true, Status: checker.StatusNoRules},
		{Path: "posts/c.md", Passes: false, Status: checker.StatusError, Err: errors.New("permission denied")},
	}
}

func TestReporter_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := NewReporter(&buf, FormatText).Report(sampleResults()); err != nil {
		t.Fatalf("Report() error: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Checking File posts/a.md",
		"Blog Posts (posts/*.md)",
		"[error] Missing field: 'title'",
		"[warn] tags Value is not of type 'list' [go]",
		"Checking File posts/b.md",
		"! no frontmatter found",
		"- no matching patterns",
		"permission denied",
		"4 document(s) checked: 2 passed, 2 failed, 1 without frontmatter, 1 unmatched, 1 unreadable",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\n%s", want, output)
		}
	}
	if strings.Contains(output, "draft") {
		t.Error("skip events must not be reported")
	}
}

func TestReporter_Text_Level(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, FormatText, WithLevel(validator.SeverityError))
	if err := r.Report(sampleResults()); err != nil {
		t.Fatalf("Report() error: %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "tags Value") {
		t.Error("warnings should be hidden at error level")
	}
	if !strings.Contains(output, "Missing field: 'title'") {
		t.Error("errors should still be shown")
	}
}

func TestReporter_Text_LongValueTruncated(t *testing.T) {
	long := strings.Repeat("x", 80)
	results := []checker.DocumentResult{{
		Path:   "a.md",
		Status: checker.StatusChecked,
		Patterns: []checker.PatternResult{{
			Name: "all", Pattern: "*.md",
			Events: validator.Events{{Severity: validator.SeverityError, Message: "m", Value: long}},
		}},
	}}

	var buf bytes.Buffer
	if err := NewReporter(&buf, FormatText).Report(results); err != nil {
		t.Fatalf("Report() error: %v", err)
	}
	if !strings.Contains(buf.String(), strings.Repeat("x", 47)+"...") {
		t.Errorf("expected truncated value, got:\n%s", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"short", "abc", 10, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"ascii cut", "abcdefgh", 6, "abc..."},
		{"multibyte kept whole", strings.Repeat("é", 8), 6, "ééé..."},
		{"multibyte under width", "日本語", 5, "日本語"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.width)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.in, tt.width)
			}
		})
	}
}

func TestReporter_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := NewReporter(&buf, FormatJSON).Report(sampleResults()); err != nil {
		t.Fatalf("Report() error: %v", err)
	}

	var decoded struct {
		Passes  bool `json:"passes"`
		Summary struct {
			Total  int `json:"total"`
			Failed int `json:"failed"`
		} `json:"summary"`
		Documents []struct {
			Path     string `json:"path"`
			Status   string `json:"status"`
			Notice   string `json:"notice"`
			Error    string `json:"error"`
			Patterns []struct {
				Name   string `json:"name"`
				Events []struct {
					Field    string `json:"field"`
					Kind     string `json:"kind"`
					Severity string `json:"severity"`
					Value    any    `json:"value"`
				} `json:"events"`
			} `json:"patterns"`
		} `json:"documents"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode JSON output: %v\n%s", err, buf.String())
	}

	if decoded.Passes {
		t.Error("passes = true, want false")
	}
	if decoded.Summary.Total != 4 || decoded.Summary.Failed != 2 {
		t.Errorf("summary = %+v", decoded.Summary)
	}
	if len(decoded.Documents) != 4 {
		t.Fatalf("documents = %d, want 4", len(decoded.Documents))
	}

	doc := decoded.Documents[0]
	if len(doc.Patterns) != 1 || len(doc.Patterns[0].Events) != 2 {
		t.Fatalf("unexpected patterns: %+v", doc.Patterns)
	}
	ev := doc.Patterns[0].Events[1]
	if ev.Kind != "type_mismatch" || ev.Severity != "warn" || ev.Value != "go" {
		t.Errorf("event = %+v", ev)
	}

	if decoded.Documents[1].Status != "no_frontmatter" || decoded.Documents[1].Notice != "no frontmatter found" {
		t.Errorf("document[1] = %+v", decoded.Documents[1])
	}
	if decoded.Documents[2].Status != "no_rules" {
		t.Errorf("document[2] status = %q", decoded.Documents[2].Status)
	}
	if decoded.Documents[3].Error != "permission denied" {
		t.Errorf("document[3] error = %q", decoded.Documents[3].Error)
	}
}

func TestReporter_JSON_EmptyEventsIsArray(t *testing.T) {
	results := []checker.DocumentResult{{
		Path: "a.md", Passes: true, Status: checker.StatusChecked,
		Patterns: []checker.PatternResult{{Name: "all", Pattern: "*.md", Passes: true}},
	}}

	var buf bytes.Buffer
	if err := NewReporter(&buf, FormatJSON).Report(results); err != nil {
		t.Fatalf("Report() error: %v", err)
	}
	if !strings.Contains(buf.String(), `"events": []`) {
		t.Errorf("expected empty events array, got:\n%s", buf.String())
	}
}
