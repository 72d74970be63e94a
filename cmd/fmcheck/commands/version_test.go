package commands

import (
	"strings"
	"testing"

	"github.com/thoreinstein/fmcheck/cmd"
)

func TestVersionCommand(t *testing.T) {
	origVersion, origCommit := cmd.Version, cmd.Commit
	t.Cleanup(func() { cmd.Version, cmd.Commit = origVersion, origCommit })
	cmd.Version = "1.2.3"
	cmd.Commit = "abc123"

	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	for _, want := range []string{"fmcheck version 1.2.3", "commit: abc123", "built:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestGenDoc(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "gen-doc", "--dir", dir)
	if err != nil {
		t.Fatalf("gen-doc failed: %v", err)
	}
	if !strings.Contains(out, "Documentation generated in") {
		t.Errorf("unexpected output: %q", out)
	}

	if _, err := run(t, "gen-doc"); err == nil {
		t.Error("expected error without --dir")
	}
}

func TestFilePrepender(t *testing.T) {
	got := filePrepender("/tmp/fmcheck_config_show.md")
	if !strings.Contains(got, `title: "fmcheck config show"`) {
		t.Errorf("unexpected frontmatter: %q", got)
	}
	if !strings.HasPrefix(got, "---\n") {
		t.Error("frontmatter must start with a delimiter")
	}
}
