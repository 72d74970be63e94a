package checker

import (
	"testing"

	"github.com/thoreinstein/fmcheck/internal/errors"
	"github.com/thoreinstein/fmcheck/internal/validator"
)

func TestPatternRuleset_Matches(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"posts/*.md", "posts/a.md", true},
		{"posts/*.md", "posts/2024/a.md", false},
		{"posts/**/*.md", "posts/2024/a.md", true},
		{"posts/**/*.md", "posts/a.md", true},
		{"posts/**/*.md", "drafts/a.md", false},
		{"*.md", "README.md", true},
		{"*.md", "notes.txt", false},
		{"**/*.md", "a/b/c/d.md", true},
		{"docs/*.md", "/site/docs/a.md", false},
		{"docs/*.md", "archive/docs/a.md", false},
		{"*.md", "posts/a.md", false},
		{"*.md", "posts/2024/a.md", false},
		{"posts/*.md", "drafts/old/posts/a.md", false},
		{"**/docs/*.md", "/site/docs/a.md", true},
		{"docs/*.md", "site/docs/sub/a.md", false},
		{"/site/docs/*.md", "/site/docs/a.md", true},
		{"/site/docs/*.md", "/other/site/docs/a.md", false},
		{"README.md", "README.md", true},
		{"README.md", "readme.md", false},
		{"docs/{a,b}.md", "docs/b.md", true},
		{"docs/?.md", "docs/ab.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"|"+tt.path, func(t *testing.T) {
			p, err := NewPatternRuleset("test", tt.pattern, nil)
			if err != nil {
				t.Fatalf("NewPatternRuleset() error = %v", err)
			}
			if got := p.Matches(tt.path); got != tt.want {
				t.Errorf("Matches(%q) with %q = %v, want %v", tt.path, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestNewPatternRuleset_Invalid(t *testing.T) {
	_, err := NewPatternRuleset("bad", "posts/[a-", validator.NewRuleset())
	if !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("NewPatternRuleset() error = %v, want ErrInvalidPattern", err)
	}
}

func TestNewPatternRuleset_NilRuleset(t *testing.T) {
	p, err := NewPatternRuleset("empty", "*.md", nil)
	if err != nil {
		t.Fatalf("NewPatternRuleset() error = %v", err)
	}
	if p.Ruleset == nil || p.Ruleset.Len() != 0 {
		t.Error("expected an empty ruleset")
	}
}
