package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/glossgraph/pkg/loader"
)

func TestChain(t *testing.T) {
	gen := NewDefault()

	tests := []struct {
		name      string
		size      int
		wantNodes int
		wantEdges int
	}{
		{"chain_1", 1, 1, 0},
		{"chain_2", 2, 2, 1},
		{"chain_5", 5, 5, 4},
		{"chain_10", 10, 10, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gf := gen.Chain(tt.size)

			if len(gf.Nodes) != tt.wantNodes {
				t.Errorf("Chain(%d) nodes = %d, want %d", tt.size, len(gf.Nodes), tt.wantNodes)
			}
			if len(gf.Edges) != tt.wantEdges {
				t.Errorf("Chain(%d) edges = %d, want %d", tt.size, len(gf.Edges), tt.wantEdges)
			}
			if !gf.Properties.IsConnected {
				t.Error("Chain should be connected")
			}

			for i, e := range gf.Edges {
				if e[0] != i+1 || e[1] != i {
					t.Errorf("Edge %d: got [%d,%d], want [%d,%d]", i, e[0], e[1], i+1, i)
				}
			}
		})
	}
}

func TestStar(t *testing.T) {
	gf := NewDefault().Star(6)

	if len(gf.Nodes) != 7 || len(gf.Edges) != 6 {
		t.Fatalf("Star(6) = %d nodes %d edges", len(gf.Nodes), len(gf.Edges))
	}
	for _, e := range gf.Edges {
		if e[0] != 0 {
			t.Errorf("every edge should leave the hub, got %v", e)
		}
	}
	if gf.Properties.MaxDegree != 6 {
		t.Errorf("max degree = %d, want 6", gf.Properties.MaxDegree)
	}
}

func TestCycle(t *testing.T) {
	gf := NewDefault().Cycle(5)
	if len(gf.Edges) != 5 {
		t.Fatalf("Cycle(5) edges = %d, want 5", len(gf.Edges))
	}
	if last := gf.Edges[4]; last != [2]int{4, 0} {
		t.Errorf("closing edge = %v, want [4 0]", last)
	}
}

func TestGrid(t *testing.T) {
	gf := NewDefault().Grid(3, 4)

	if len(gf.Nodes) != 12 {
		t.Errorf("Grid(3,4) nodes = %d, want 12", len(gf.Nodes))
	}
	// (w-1)*h horizontal plus w*(h-1) vertical
	if want := 2*4 + 3*3; len(gf.Edges) != want {
		t.Errorf("Grid(3,4) edges = %d, want %d", len(gf.Edges), want)
	}
	if gf.Properties.MaxDegree != 4 {
		t.Errorf("max degree = %d, want 4", gf.Properties.MaxDegree)
	}
}

func TestComplete(t *testing.T) {
	gf := NewDefault().Complete(5)
	if len(gf.Edges) != 10 {
		t.Errorf("Complete(5) edges = %d, want 10", len(gf.Edges))
	}
}

func TestDisconnected(t *testing.T) {
	gf := NewDefault().Disconnected(3, 4)

	if len(gf.Nodes) != 12 || len(gf.Edges) != 9 {
		t.Errorf("Disconnected(3,4) = %d nodes %d edges, want 12 and 9", len(gf.Nodes), len(gf.Edges))
	}
	if gf.Properties.IsConnected || gf.Properties.Components != 3 {
		t.Errorf("unexpected properties %+v", gf.Properties)
	}
	for _, e := range gf.Edges {
		if e[0]/4 != e[1]/4 {
			t.Errorf("edge %v crosses components", e)
		}
	}
}

func TestRandom_Deterministic(t *testing.T) {
	a := New(GeneratorConfig{Seed: 7}).Random(20, 0.2)
	b := New(GeneratorConfig{Seed: 7}).Random(20, 0.2)

	AssertJSONEqual(t, a, b)
	for _, e := range a.Edges {
		if e[0] == e[1] {
			t.Errorf("self edge %v", e)
		}
	}
}

func TestRandom_DensityBounds(t *testing.T) {
	gen := NewDefault()
	if gf := gen.Random(10, 0); len(gf.Edges) != 0 {
		t.Errorf("density 0 produced %d edges", len(gf.Edges))
	}
	if gf := gen.Random(10, 1); len(gf.Edges) != 45 {
		t.Errorf("density 1 produced %d edges, want 45", len(gf.Edges))
	}
}

func TestToTerms(t *testing.T) {
	gen := New(GeneratorConfig{IDPrefix: "gg", Tags: []string{"alpha", "beta"}})
	terms := gen.ToTerms(gen.Star(3))

	AssertTermCount(t, terms, 4)
	AssertNoDuplicateIDs(t, terms)
	AssertAllValid(t, terms)
	AssertLinkExists(t, terms, "gg-hub", "gg-spoke2")

	for _, term := range terms {
		if !strings.HasPrefix(term.ID, "gg-") {
			t.Errorf("id %q missing prefix", term.ID)
		}
		if len(term.Tags) == 0 || len(term.Tags) > 2 {
			t.Errorf("%s has %d tags", term.ID, len(term.Tags))
		}
		for _, tag := range term.Tags {
			if tag != "alpha" && tag != "beta" {
				t.Errorf("%s has tag %q outside the pool", term.ID, tag)
			}
		}
	}
	if got := len(terms[1].Links); got != 0 {
		t.Errorf("spoke should have no outgoing links, got %d", got)
	}
}

func TestToGlossary(t *testing.T) {
	gen := NewDefault()
	g := gen.ToGlossary(gen.Chain(4))

	if g.Len() != 4 {
		t.Fatalf("glossary len = %d, want 4", g.Len())
	}
	if !g.Has(gen.TermID("n3")) {
		t.Error("expected term-n3 to be indexed")
	}
}

func TestToViews(t *testing.T) {
	gen := NewDefault()
	views := gen.ToViews(gen.Chain(3))

	if len(views) != 3 {
		t.Fatalf("views = %d, want 3", len(views))
	}
	if edges := views[2].Edges(); len(edges) != 1 || edges[0] != "term-n1" {
		t.Errorf("term-n2 edges = %v", edges)
	}
}

func TestWriteTermFiles_RoundTrip(t *testing.T) {
	terms := QuickGrid(2, 2)
	dir := TempGlossaryDir(t, terms)

	files, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != len(terms) {
		t.Fatalf("wrote %d files, want %d", len(files), len(terms))
	}

	for _, term := range terms {
		got, err := loader.ParseFile(filepath.Join(dir, term.ID+".md"))
		if err != nil {
			t.Fatalf("parse %s: %v", term.ID, err)
		}
		if got.ID != term.ID || got.Term != term.Term {
			t.Errorf("round trip changed %s: %+v", term.ID, got)
		}
		if len(got.Links) != len(term.Links) {
			t.Errorf("%s links = %v, want %v", term.ID, got.Links, term.Links)
		}
	}
}

func TestGoldenFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ids.golden"), []byte("term-n0\nterm-n1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GENERATE_GOLDEN", "")

	g := NewGoldenFile(t, dir, "ids.golden")
	g.Assert(strings.Join(GetIDs(QuickChain(2)), "\n") + "\n")
}

func TestQuickHelpers(t *testing.T) {
	if got := len(QuickChain(5)); got != 5 {
		t.Errorf("QuickChain(5) = %d", got)
	}
	if got := len(QuickStar(4)); got != 5 {
		t.Errorf("QuickStar(4) = %d", got)
	}
	if got := len(QuickRandom(8, 0.5)); got != 8 {
		t.Errorf("QuickRandom(8) = %d", got)
	}
}
