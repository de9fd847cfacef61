package main_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/testutil"
)

func TestVersionFromLdflags(t *testing.T) {
	res := mustRun(t, t.TempDir(), "--version")
	if !strings.Contains(res.stdout, "v0.0.0-e2e") || !strings.Contains(res.stdout, "commit: e2e") {
		t.Errorf("--version = %q", res.stdout)
	}
}

func TestBuildThenCheck(t *testing.T) {
	root := workspace(t, testutil.QuickGrid(3, 3))

	res := mustRun(t, root, "build")
	if !strings.Contains(res.stdout, "Built 9 terms") {
		t.Errorf("build output = %q", res.stdout)
	}
	if _, err := os.Stat(filepath.Join(root, "glossary.json")); err != nil {
		t.Fatalf("bundle missing: %v", err)
	}

	mustRun(t, root, "build", "--check")

	// Edit a term after building; the bundle is now stale.
	testutil.WriteTermFiles(t, filepath.Join(root, "terms"), []model.Term{{
		ID: "term-r0c0", Term: "Renamed", Definition: "Changed.", Tags: []string{"vision"}, Links: []string{},
	}})
	res = run(t, root, "build", "--check")
	if res.code == 0 {
		t.Fatal("stale bundle passed --check")
	}
	if !strings.Contains(res.stdout, "term-r0c0") {
		t.Errorf("check output should name the changed term: %q", res.stdout)
	}
	if !strings.Contains(res.stderr, "bundle is out of date") {
		t.Errorf("stderr = %q", res.stderr)
	}
}

func TestSnapshotPNGAndSVG(t *testing.T) {
	root := workspace(t, testutil.QuickStar(5))

	mustRun(t, root, "snapshot", "-o", "out/graph.png", "--ticks", "30", "--seed", "2", "--width", "320", "--height", "200")
	png, err := os.ReadFile(filepath.Join(root, "out", "graph.png"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("snapshot is not a PNG")
	}

	mustRun(t, root, "snapshot", "-o", "graph.svg", "--ticks", "30", "--seed", "2", "--title", "Star")
	svg, err := os.ReadFile(filepath.Join(root, "graph.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "Star") {
		t.Errorf("unexpected svg:\n%.200s", svg)
	}
}

func TestSnapshotFromBundleOnly(t *testing.T) {
	root := workspace(t, testutil.QuickChain(4))
	mustRun(t, root, "build")
	if err := os.RemoveAll(filepath.Join(root, "terms")); err != nil {
		t.Fatal(err)
	}

	res := mustRun(t, root, "-v", "snapshot", "-o", "chain.json", "--ticks", "10")
	if !strings.Contains(res.stderr, "Loaded 4 terms") {
		t.Errorf("stderr = %q", res.stderr)
	}
}

func TestMissingGlossaryFails(t *testing.T) {
	res := run(t, t.TempDir(), "snapshot", "-o", "x.png")
	if res.code == 0 {
		t.Fatal("snapshot without a glossary should fail")
	}
	if !strings.Contains(res.stderr, "Error:") {
		t.Errorf("stderr = %q", res.stderr)
	}
}

func TestNewThenTags(t *testing.T) {
	root := workspace(t, testutil.QuickChain(2))

	mustRun(t, root, "new", "--term", "Baron Nashor", "--tags", "objectives", "--links", "term-n0")
	if _, err := os.Stat(filepath.Join(root, "terms", "baron-nashor.md")); err != nil {
		t.Fatalf("term not created: %v", err)
	}

	res := run(t, root, "tags", "undefined")
	if res.code == 0 {
		t.Error("undefined tag should fail tags undefined")
	}
	if !strings.Contains(res.stdout, "objectives") {
		t.Errorf("stdout = %q", res.stdout)
	}
}
