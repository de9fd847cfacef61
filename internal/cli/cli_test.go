package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/testutil"
)

// runCLI executes the root command with args against isolated config and
// state directories.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("GLOSSARY_DIR", "")

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// starDir writes a hub with three spokes and returns the terms directory.
func starDir(t *testing.T) string {
	t.Helper()
	return testutil.TempGlossaryDir(t, testutil.QuickStar(3))
}

func TestSetVersion(t *testing.T) {
	oldV, oldC, oldD := version, commit, date
	t.Cleanup(func() { version, commit, date = oldV, oldC, oldD })

	SetVersion("1.0.0", "abc123", "2026-01-01")
	if version != "1.0.0" || commit != "abc123" || date != "2026-01-01" {
		t.Errorf("got %q %q %q", version, commit, date)
	}

	// An empty version keeps the built-in one.
	SetVersion("", "", "")
	if version != "1.0.0" {
		t.Errorf("version = %q, want it kept", version)
	}
	if commit != "" || date != "" {
		t.Errorf("commit and date should be cleared, got %q %q", commit, date)
	}
}

func TestVersionCommand(t *testing.T) {
	oldV, oldC, oldD := version, commit, date
	t.Cleanup(func() { version, commit, date = oldV, oldC, oldD })
	SetVersion("v9.9.9", "deadbeef", "")

	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "glossgraph v9.9.9") || !strings.Contains(out, "commit: deadbeef") {
		t.Errorf("version output = %q", out)
	}
	if strings.Contains(out, "built:") {
		t.Errorf("empty build date should be omitted: %q", out)
	}
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()
	want := []string{"tui", "snapshot", "build", "tags", "new", "version"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"verbose", "dir", "config"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag --%s", flag)
		}
	}
	for _, flag := range []string{"view", "mode", "no-watch", "reset-session", "all-labels"} {
		if root.Flags().Lookup(flag) == nil {
			t.Errorf("root command missing --%s", flag)
		}
	}
}

func TestBadConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("physics: [not, a, map]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := runCLI(t, "--config", path, "version")
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Errorf("err = %v, want a config load error", err)
	}
}

func TestGlossaryDir(t *testing.T) {
	g := &globals{}
	g.cfg.Glossary.Dir = "/from/config"
	if got := g.glossaryDir(); got != "/from/config" {
		t.Errorf("glossaryDir() = %q, want the configured dir", got)
	}
	g.dir = "/from/flag"
	if got := g.glossaryDir(); got != "/from/flag" {
		t.Errorf("glossaryDir() = %q, want the flag", got)
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Last Hit":            "last-hit",
		"  Creep   Aggro ":    "creep-aggro",
		"K/D/A":               "k-d-a",
		"Level 6 Power Spike": "level-6-power-spike",
	}
	for in, want := range tests {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" cs, , creep score ,")
	if len(got) != 2 || got[0] != "cs" || got[1] != "creep score" {
		t.Errorf("splitList = %q", got)
	}
	if splitList("") != nil {
		t.Error("empty input should give nil")
	}
}

// writeTerms writes hand-made terms for tests that need specific tags.
func writeTerms(t *testing.T, terms ...model.Term) string {
	t.Helper()
	for i := range terms {
		if terms[i].Links == nil {
			terms[i].Links = []string{}
		}
	}
	return testutil.TempGlossaryDir(t, terms)
}
