// Package testutil provides glossary fixture generators for various graph
// topologies. All generators produce deterministic output for reproducible
// tests.
package testutil

import (
	"fmt"
	"math/rand"

	"github.com/vanderheijden86/glossgraph/pkg/model"
)

// GraphFixture represents an abstract graph for testing layouts.
type GraphFixture struct {
	Description string     `json:"description"`
	Nodes       []string   `json:"nodes"`
	Edges       [][2]int   `json:"edges"` // [from_idx, to_idx]: from links to
	Properties  Properties `json:"properties,omitempty"`
}

// Properties holds optional metadata about the fixture.
type Properties struct {
	IsConnected bool `json:"is_connected,omitempty"`
	Components  int  `json:"components,omitempty"`
	MaxDegree   int  `json:"max_degree,omitempty"`
}

// GeneratorConfig controls term generation.
type GeneratorConfig struct {
	Seed     int64    // Random seed for determinism (0 = 42)
	IDPrefix string   // Prefix for term IDs (default: "term")
	Tags     []string // Tag pool; every term gets one or two
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:     42,
		IDPrefix: "term",
		Tags:     []string{"fundamentals", "economy", "vision", "jungle"},
	}
}

// Generator creates test fixtures with various topologies.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	d := DefaultConfig()
	if cfg.Seed == 0 {
		cfg.Seed = d.Seed
	}
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = d.IDPrefix
	}
	if len(cfg.Tags) == 0 {
		cfg.Tags = d.Tags
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

// ============================================================================
// Graph Topology Generators
// ============================================================================

// Chain creates a path: n0 - n1 - ... - n{size-1}.
func (g *Generator) Chain(size int) GraphFixture {
	nodes := names("n", size)
	var edges [][2]int
	for i := 1; i < size; i++ {
		edges = append(edges, [2]int{i, i - 1})
	}
	return GraphFixture{
		Description: fmt.Sprintf("Chain of %d terms", size),
		Nodes:       nodes,
		Edges:       edges,
		Properties:  Properties{IsConnected: size > 0, Components: min(size, 1), MaxDegree: max(min(2, size-1), 0)},
	}
}

// Star creates a hub linked to every spoke.
func (g *Generator) Star(spokes int) GraphFixture {
	nodes := append([]string{"hub"}, names("spoke", spokes)...)
	edges := make([][2]int, spokes)
	for i := 1; i <= spokes; i++ {
		edges[i-1] = [2]int{0, i}
	}
	return GraphFixture{
		Description: fmt.Sprintf("Star with hub and %d spokes", spokes),
		Nodes:       nodes,
		Edges:       edges,
		Properties:  Properties{IsConnected: true, Components: 1, MaxDegree: spokes},
	}
}

// Cycle creates a ring: n0 - n1 - ... - n{size-1} - n0.
func (g *Generator) Cycle(size int) GraphFixture {
	nodes := names("n", size)
	edges := make([][2]int, size)
	for i := 0; i < size; i++ {
		edges[i] = [2]int{i, (i + 1) % size}
	}
	return GraphFixture{
		Description: fmt.Sprintf("Cycle of %d terms", size),
		Nodes:       nodes,
		Edges:       edges,
		Properties:  Properties{IsConnected: true, Components: 1, MaxDegree: 2},
	}
}

// Grid creates a w x h lattice; each cell links right and down.
func (g *Generator) Grid(w, h int) GraphFixture {
	var nodes []string
	var edges [][2]int
	idx := func(x, y int) int { return y*w + x }
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			nodes = append(nodes, fmt.Sprintf("r%dc%d", y, x))
			if x+1 < w {
				edges = append(edges, [2]int{idx(x, y), idx(x+1, y)})
			}
			if y+1 < h {
				edges = append(edges, [2]int{idx(x, y), idx(x, y+1)})
			}
		}
	}
	maxDeg := 0
	if w > 2 && h > 2 {
		maxDeg = 4
	}
	return GraphFixture{
		Description: fmt.Sprintf("Grid %dx%d", w, h),
		Nodes:       nodes,
		Edges:       edges,
		Properties:  Properties{IsConnected: w > 0 && h > 0, Components: 1, MaxDegree: maxDeg},
	}
}

// Complete links every pair once.
func (g *Generator) Complete(size int) GraphFixture {
	nodes := names("n", size)
	var edges [][2]int
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			edges = append(edges, [2]int{i, j})
		}
	}
	return GraphFixture{
		Description: fmt.Sprintf("Complete graph of %d terms", size),
		Nodes:       nodes,
		Edges:       edges,
		Properties:  Properties{IsConnected: true, Components: 1, MaxDegree: size - 1},
	}
}

// Disconnected creates isolated chains of componentSize terms each.
func (g *Generator) Disconnected(components, componentSize int) GraphFixture {
	var nodes []string
	var edges [][2]int
	for c := 0; c < components; c++ {
		base := len(nodes)
		for i := 0; i < componentSize; i++ {
			nodes = append(nodes, fmt.Sprintf("c%dn%d", c, i))
			if i > 0 {
				edges = append(edges, [2]int{base + i, base + i - 1})
			}
		}
	}
	return GraphFixture{
		Description: fmt.Sprintf("%d chains of %d terms", components, componentSize),
		Nodes:       nodes,
		Edges:       edges,
		Properties:  Properties{IsConnected: components <= 1, Components: components},
	}
}

// Random links each pair with probability density. No self links.
func (g *Generator) Random(size int, density float64) GraphFixture {
	nodes := names("n", size)
	var edges [][2]int
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			if g.rng.Float64() < density {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	return GraphFixture{
		Description: fmt.Sprintf("Random graph of %d terms, density %.2f", size, density),
		Nodes:       nodes,
		Edges:       edges,
	}
}

func names(prefix string, n int) []string {
	out := make([]string, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("%s%d", prefix, i))
	}
	return out
}

// ============================================================================
// Term Generators (convert graph fixtures to model.Term slices)
// ============================================================================

// TermID is the id ToTerms gives a fixture node.
func (g *Generator) TermID(node string) string {
	return g.cfg.IDPrefix + "-" + node
}

// ToTerms converts a GraphFixture to terms. Each edge becomes a manual link
// from its first node to its second.
func (g *Generator) ToTerms(gf GraphFixture) []model.Term {
	links := make(map[int][]int)
	for _, e := range gf.Edges {
		links[e[0]] = append(links[e[0]], e[1])
	}

	terms := make([]model.Term, len(gf.Nodes))
	for i, node := range gf.Nodes {
		t := model.Term{
			ID:         g.TermID(node),
			Term:       "Term " + node,
			Definition: fmt.Sprintf("Fixture term %s.", node),
			Tags:       g.pickTags(),
			Links:      []string{},
		}
		for _, j := range links[i] {
			t.Links = append(t.Links, g.TermID(gf.Nodes[j]))
		}
		terms[i] = t
	}
	return terms
}

// ToGlossary converts a fixture to an indexed glossary.
func (g *Generator) ToGlossary(gf GraphFixture) *model.Glossary {
	return model.NewGlossary(g.ToTerms(gf), nil)
}

// ToViews converts a fixture to the graph engine's input.
func (g *Generator) ToViews(gf GraphFixture) []model.TermView {
	return model.Views(g.ToTerms(gf))
}

func (g *Generator) pickTags() []string {
	n := 1 + g.rng.Intn(2)
	perm := g.rng.Perm(len(g.cfg.Tags))
	var out []string
	for _, i := range perm[:min(n, len(perm))] {
		out = append(out, g.cfg.Tags[i])
	}
	return out
}

// ============================================================================
// Quick helpers with the default config
// ============================================================================

// QuickChain returns chain terms.
func QuickChain(size int) []model.Term {
	g := NewDefault()
	return g.ToTerms(g.Chain(size))
}

// QuickStar returns star terms.
func QuickStar(spokes int) []model.Term {
	g := NewDefault()
	return g.ToTerms(g.Star(spokes))
}

// QuickGrid returns grid terms.
func QuickGrid(w, h int) []model.Term {
	g := NewDefault()
	return g.ToTerms(g.Grid(w, h))
}

// QuickRandom returns random-graph terms.
func QuickRandom(size int, density float64) []model.Term {
	g := NewDefault()
	return g.ToTerms(g.Random(size, density))
}
