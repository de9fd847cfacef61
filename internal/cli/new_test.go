package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/glossgraph/pkg/loader"
)

func TestNewFromFlags(t *testing.T) {
	dir := starDir(t)

	out, err := runCLI(t, "new", "--dir", dir,
		"--term", "Last Hit",
		"--tags", "fundamentals,economy",
		"--links", "term-hub",
		"--alternates", "cs",
		"--definition", "Landing the killing blow on a minion.")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "last-hit.md")
	if !strings.Contains(out, "Created Last Hit") || !strings.Contains(out, path) {
		t.Errorf("output = %q", out)
	}

	term, err := loader.ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if term.ID != "last-hit" || term.Term != "Last Hit" {
		t.Errorf("term = %+v", term)
	}
	if len(term.Tags) != 2 || len(term.Links) != 1 || term.Links[0] != "term-hub" {
		t.Errorf("tags %v links %v", term.Tags, term.Links)
	}
	if len(term.Alternates) != 1 || term.Alternates[0] != "cs" {
		t.Errorf("alternates = %v", term.Alternates)
	}
	if !strings.Contains(term.Definition, "killing blow") {
		t.Errorf("definition = %q", term.Definition)
	}
}

func TestNewWarnsAboutUnknownRefs(t *testing.T) {
	dir := starDir(t)
	out, err := runCLI(t, "new", "--dir", dir, "--term", "Roam", "--links", "nowhere", "--tags", "cosmic")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `link target "nowhere"`) || !strings.Contains(out, `tag "cosmic"`) {
		t.Errorf("expected warnings, got %q", out)
	}
}

func TestNewRefusesOverwrite(t *testing.T) {
	dir := starDir(t)
	args := []string{"new", "--dir", dir, "--term", "Hub", "--id", "term-hub"}

	if _, err := runCLI(t, args...); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("err = %v, want already exists", err)
	}
	if _, err := runCLI(t, append(args, "--force")...); err != nil {
		t.Fatalf("--force: %v", err)
	}
	term, err := loader.ParseFile(filepath.Join(dir, "term-hub.md"))
	if err != nil {
		t.Fatal(err)
	}
	if term.Term != "Hub" {
		t.Errorf("term = %q, want the overwritten name", term.Term)
	}
}

func TestNewCreatesFirstTerm(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "terms")
	if _, err := runCLI(t, "new", "--dir", dir, "--term", "Gank"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "gank.md")); err != nil {
		t.Errorf("term file not written: %v", err)
	}
}

func TestNewRejectsSelfLink(t *testing.T) {
	dir := starDir(t)
	if _, err := runCLI(t, "new", "--dir", dir, "--term", "Gank", "--links", "gank"); err == nil {
		t.Error("a term linking to itself should be rejected")
	}
}
