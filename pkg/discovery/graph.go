package discovery

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/vanderheijden86/glossgraph/pkg/model"
)

// Stats summarizes a glossary's link structure.
type Stats struct {
	Terms      int     `json:"terms"`
	Links      int     `json:"links"`
	AutoLinks  int     `json:"autoLinks"`
	Edges      int     `json:"edges"`
	Dangling   int     `json:"dangling"`
	Isolated   int     `json:"isolated"`
	Components int     `json:"components"`
	Largest    int     `json:"largestComponent"`
	MaxDegree  int     `json:"maxDegree"`
	MeanDegree float64 `json:"meanDegree"`
	// Hubs lists the best connected term ids, most connected first.
	Hubs []string `json:"hubs"`
}

// Graph is the undirected view of a glossary's links.
type Graph struct {
	g   *simple.UndirectedGraph
	ids []string
	idx map[string]int64
	// dangling counts edges whose target is not a term.
	dangling int
}

// BuildGraph links every term to its links and autoLinks. Duplicate and
// reciprocal links collapse into one undirected edge.
func BuildGraph(gl *model.Glossary) *Graph {
	out := &Graph{
		g:   simple.NewUndirectedGraph(),
		idx: make(map[string]int64, gl.Len()),
	}
	for _, t := range gl.Terms {
		if _, dup := out.idx[t.ID]; dup {
			continue
		}
		n := int64(len(out.ids))
		out.idx[t.ID] = n
		out.ids = append(out.ids, t.ID)
		out.g.AddNode(simple.Node(n))
	}
	for _, t := range gl.Terms {
		from := out.idx[t.ID]
		for _, id := range t.View().Edges() {
			to, ok := out.idx[id]
			if !ok {
				out.dangling++
				continue
			}
			if to == from {
				continue
			}
			out.g.SetEdge(out.g.NewEdge(simple.Node(from), simple.Node(to)))
		}
	}
	return out
}

// Degree returns the number of distinct neighbors of id.
func (g *Graph) Degree(id string) int {
	n, ok := g.idx[id]
	if !ok {
		return 0
	}
	return g.g.From(n).Len()
}

// Component returns the ids connected to id, including id, in glossary
// order.
func (g *Graph) Component(id string) []string {
	for _, comp := range topo.ConnectedComponents(g.g) {
		for _, n := range comp {
			if g.ids[n.ID()] == id {
				return g.names(comp)
			}
		}
	}
	return nil
}

func (g *Graph) names(nodes []graph.Node) []string {
	idx := make([]int, len(nodes))
	for i, n := range nodes {
		idx[i] = int(n.ID())
	}
	sort.Ints(idx)
	out := make([]string, len(idx))
	for i, n := range idx {
		out[i] = g.ids[n]
	}
	return out
}

// Stats computes link statistics. hubs bounds the Hubs list.
func (g *Graph) Stats(gl *model.Glossary, hubs int) Stats {
	st := Stats{Terms: len(g.ids), Dangling: g.dangling}
	for _, t := range gl.Terms {
		st.Links += len(t.Links)
		st.AutoLinks += len(t.AutoLinks)
	}
	st.Edges = len(graph.EdgesOf(g.g.Edges()))

	comps := topo.ConnectedComponents(g.g)
	st.Components = len(comps)
	for _, c := range comps {
		if len(c) > st.Largest {
			st.Largest = len(c)
		}
	}

	type deg struct {
		id string
		n  int
	}
	degs := make([]deg, len(g.ids))
	total := 0
	for i, id := range g.ids {
		n := g.Degree(id)
		degs[i] = deg{id, n}
		total += n
		if n == 0 {
			st.Isolated++
		}
		if n > st.MaxDegree {
			st.MaxDegree = n
		}
	}
	if len(g.ids) > 0 {
		st.MeanDegree = float64(total) / float64(len(g.ids))
	}
	sort.SliceStable(degs, func(i, j int) bool { return degs[i].n > degs[j].n })
	for i := 0; i < len(degs) && i < hubs && degs[i].n > 0; i++ {
		st.Hubs = append(st.Hubs, degs[i].id)
	}
	return st
}
