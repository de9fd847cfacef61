package export

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/glossgraph/pkg/graphview"
	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/render"
	"github.com/vanderheijden86/glossgraph/pkg/tags"
)

func sampleViews() []model.TermView {
	return []model.TermView{
		{ID: "last-hit", Label: "Last Hit", Tags: []string{"fundamentals"}, Links: []string{"gold", "deny"}},
		{ID: "gold", Label: "Gold", Tags: []string{"economy"}, Links: []string{"last-hit"}, AutoLinks: []string{"farm"}},
		{ID: "deny", Label: `Deny "the" creep`, Tags: []string{"fundamentals"}, Links: []string{"ghost"}},
		{ID: "farm", Label: "Farm", Tags: []string{"economy"}},
	}
}

func seeded() []graphview.Option {
	return []graphview.Option{graphview.WithRand(rand.New(rand.NewSource(1)))}
}

// =============================================================================
// Format Tests
// =============================================================================

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name, path string
		want       Format
	}{
		{"", "out/graph.png", FormatPNG},
		{"", "graph.SVG", FormatSVG},
		{"", "layout.json", FormatJSON},
		{"", "graph.gv", FormatDOT},
		{"", "graph.mmd", FormatMermaid},
		{"", "graph", FormatPNG},
		{"svg", "graph.png", FormatSVG},
		{".dot", "", FormatDOT},
	}
	for _, tc := range tests {
		got, err := ParseFormat(tc.name, tc.path)
		if err != nil || got != tc.want {
			t.Errorf("ParseFormat(%q, %q) = %q, %v; want %q", tc.name, tc.path, got, err, tc.want)
		}
	}
	for _, bad := range [][2]string{{"gif", ""}, {"", "graph.gif"}} {
		if _, err := ParseFormat(bad[0], bad[1]); !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("ParseFormat(%q, %q) err = %v, want ErrUnknownFormat", bad[0], bad[1], err)
		}
	}
}

// =============================================================================
// Text Export Tests
// =============================================================================

func TestGenerateDOT(t *testing.T) {
	dot := GenerateDOT(sampleViews(), tags.Default())

	for _, want := range []string{
		"graph G {",
		`"gold" [label="Gold", fillcolor="#f59e0b"];`,
		`"deny" [label="Deny \"the\" creep", fillcolor="#10b981"];`,
		`"deny" -- "last-hit" [style=solid];`,
		`"farm" -- "gold" [style=dashed];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	// last-hit and gold link each other: one edge.
	if n := strings.Count(dot, `"gold" -- "last-hit"`); n != 1 {
		t.Errorf("expected one gold/last-hit edge, got %d", n)
	}
	if strings.Contains(dot, "ghost") {
		t.Error("missing link targets should be skipped")
	}
}

func TestGenerateDOT_FallbackColor(t *testing.T) {
	dot := GenerateDOT([]model.TermView{{ID: "x", Label: "X"}}, nil)
	if !strings.Contains(dot, `fillcolor="#64748b"`) {
		t.Errorf("untagged node should use the fallback color:\n%s", dot)
	}
}

func TestGenerateMermaid(t *testing.T) {
	mmd := GenerateMermaid(sampleViews(), tags.Default())

	for _, want := range []string{
		"graph LR",
		"classDef c0 fill:#10b981",
		`deny(["Deny 'the' creep"])`,
		"deny --- last-hit",
		"farm -.- gold",
	} {
		if !strings.Contains(mmd, want) {
			t.Errorf("Mermaid missing %q:\n%s", want, mmd)
		}
	}
}

func TestMermaidIDsAreCollisionFree(t *testing.T) {
	views := []model.TermView{{ID: "a.b", Label: "A"}, {ID: "ab", Label: "B"}, {ID: "a b", Label: "C"}}
	mmd := GenerateMermaid(views, nil)
	if strings.Count(mmd, "ab([") != 1 {
		t.Errorf("sanitized ids should not collide:\n%s", mmd)
	}
	if strings.Count(mmd, "(["+`"`) != 3 {
		t.Errorf("expected three nodes:\n%s", mmd)
	}
}

// =============================================================================
// Snapshot Tests
// =============================================================================

func TestRenderSnapshot_PNG(t *testing.T) {
	var buf bytes.Buffer
	res, err := RenderSnapshot(context.Background(), &buf, sampleViews(), tags.Default(), SnapshotOptions{
		Format: FormatPNG, Width: 320, Height: 200, Ticks: 30, Engine: seeded(),
	})
	if err != nil {
		t.Fatalf("RenderSnapshot: %v", err)
	}
	if res.Ticks != 30 {
		t.Errorf("Ticks = %d, want 30", res.Ticks)
	}
	if res.Stats.Skipped || res.Stats.Visible != 4 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 200 {
		t.Errorf("bounds = %v", b)
	}
}

func TestRenderSnapshot_SVG(t *testing.T) {
	var buf bytes.Buffer
	_, err := RenderSnapshot(context.Background(), &buf, sampleViews(), tags.Default(), SnapshotOptions{
		Format: FormatSVG, Width: 320, Height: 200, Ticks: 10, Title: "Glossary", Engine: seeded(),
	})
	if err != nil {
		t.Fatalf("RenderSnapshot: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"<svg", "<title>Glossary</title>", "Last Hit", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Count(out, "<svg") != 1 {
		t.Error("settling frames must not paint into the document")
	}
}

func TestRenderSnapshot_LayoutJSON(t *testing.T) {
	var buf bytes.Buffer
	res, err := RenderSnapshot(context.Background(), &buf, sampleViews(), nil, SnapshotOptions{
		Format: FormatJSON, Width: 400, Height: 300, Ticks: 50,
		Filter: render.Filter{Tags: []string{"economy"}}, Engine: seeded(),
	})
	if err != nil {
		t.Fatal(err)
	}
	var l Layout
	if err := json.Unmarshal(buf.Bytes(), &l); err != nil {
		t.Fatalf("decode layout: %v", err)
	}
	if len(l.Nodes) != 4 || l.Ticks != 50 || l.Width != 400 {
		t.Fatalf("layout = %+v", l)
	}
	if l.Nodes[0].ID != "deny" || l.Nodes[0].Visible {
		t.Errorf("nodes should be sorted by id with the filter applied: %+v", l.Nodes[0])
	}
	if !l.Nodes[2].Visible || l.Nodes[2].ID != "gold" {
		t.Errorf("gold should be visible: %+v", l.Nodes[2])
	}
	if res.Energy != l.Energy {
		t.Errorf("energy %g vs %g", res.Energy, l.Energy)
	}
}

func TestSettle_IsDeterministicWithSeed(t *testing.T) {
	ctx := context.Background()
	opts := SnapshotOptions{Width: 300, Height: 300, Ticks: 40}
	opts.Engine = seeded()
	a, _, err := Settle(ctx, sampleViews(), nil, opts)
	if err != nil {
		t.Fatal(err)
	}
	opts.Engine = seeded()
	b, _, _ := Settle(ctx, sampleViews(), nil, opts)

	pa, pb := a.Positions(), b.Positions()
	for id, p := range pa {
		if pb[id] != p {
			t.Errorf("%s: %v vs %v", id, p, pb[id])
		}
	}
	if c := a.Center(); c.X != 150 || c.Y != 150 {
		t.Errorf("center = %v, want (150,150)", c)
	}
}

func TestSettle_HonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ticks, err := Settle(ctx, sampleViews(), nil, SnapshotOptions{Ticks: 100})
	if !errors.Is(err, context.Canceled) || ticks != 0 {
		t.Errorf("ticks=%d err=%v", ticks, err)
	}
}

func TestSaveSnapshot_WritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "graph.dot")
	if _, err := SaveSnapshot(context.Background(), path, sampleViews(), nil, SnapshotOptions{}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "graph G {") {
		t.Errorf("unexpected file:\n%s", data)
	}

	if _, err := SaveSnapshot(context.Background(), filepath.Join(dir, "x.gif"), nil, nil, SnapshotOptions{}); err == nil {
		t.Error("expected error for unknown extension")
	}
	if _, err := os.Stat(filepath.Join(dir, "x.gif")); !os.IsNotExist(err) {
		t.Error("no file should be created for an unknown format")
	}
}
