package export

import (
	"io"
	"sort"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/glossgraph/pkg/graphview"
)

// Layout is a settled graph: world positions plus the view that framed
// them.
type Layout struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Zoom   float64      `json:"zoom"`
	PanX   float64      `json:"panX"`
	PanY   float64      `json:"panY"`
	Ticks  int          `json:"ticks"`
	Energy float64      `json:"energy"`
	Nodes  []LayoutNode `json:"nodes"`
}

// LayoutNode is one positioned term.
type LayoutNode struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Tags    []string `json:"tags,omitempty"`
	Visible bool     `json:"visible"`
}

// LayoutOf captures the engine's current node positions, sorted by id.
func LayoutOf(e *graphview.Engine, width, height int) Layout {
	visible := make(map[string]bool)
	for _, id := range e.Visible() {
		visible[id] = true
	}
	l := Layout{
		Width:  width,
		Height: height,
		Zoom:   e.Zoom(),
		PanX:   e.Pan().X,
		PanY:   e.Pan().Y,
		Energy: e.Energy(),
	}
	for _, n := range e.Nodes() {
		v, _ := e.Term(n.ID)
		l.Nodes = append(l.Nodes, LayoutNode{
			ID:      n.ID,
			Label:   v.Label,
			X:       n.Pos.X,
			Y:       n.Pos.Y,
			Tags:    v.Tags,
			Visible: visible[n.ID],
		})
	}
	sort.Slice(l.Nodes, func(i, j int) bool { return l.Nodes[i].ID < l.Nodes[j].ID })
	return l
}

// WriteLayout encodes l as indented JSON.
func WriteLayout(w io.Writer, l Layout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}
