package render

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/physics"
)

// TagColors resolves a tag to its fill color. Implementations return their
// own fallback for unknown tags.
type TagColors interface {
	Color(tag string) color.NRGBA
}

// ColorFunc adapts a function to TagColors.
type ColorFunc func(tag string) color.NRGBA

func (f ColorFunc) Color(tag string) color.NRGBA { return f(tag) }

// LabelMode decides which non-highlighted nodes get a label.
type LabelMode int

const (
	// LabelsUntilSelection shows every label dimmed while nothing is
	// selected, then falls back to LabelsByZoom.
	LabelsUntilSelection LabelMode = iota
	// LabelsByZoom shows labels only at or above the label zoom threshold.
	LabelsByZoom
	// LabelsAll always shows every label, whatever the zoom. Only the
	// selected, connected and hovered labels are drawn at full opacity.
	LabelsAll
)

// DefaultLabelZoom is the zoom at which ordinary labels appear.
const DefaultLabelZoom = 1.2

// Scene is everything one frame reads. Nodes is the simulation snapshot;
// Terms joins content to nodes by id.
type Scene struct {
	Nodes     []physics.SimNode
	Terms     map[string]model.TermView
	Zoom      float64
	Pan       r2.Vec
	Filter    Filter
	Selected  string
	Hovered   string
	Labels    LabelMode
	LabelZoom float64
}

// FrameStats summarizes what a Draw call painted.
type FrameStats struct {
	Skipped bool
	Visible int
	Edges   int
	// Trails counts hidden-edge stubs per source node id.
	Trails         map[string]int
	SelectedEdges  int
	SelectedTrails int
	Labels         int
}

// TrailCount sums the stubs drawn for ordinary nodes.
func (s FrameStats) TrailCount() int {
	n := 0
	for _, c := range s.Trails {
		n += c
	}
	return n
}

// Renderer paints scenes with a theme and a tag palette.
type Renderer struct {
	Theme  Theme
	Colors TagColors
}

// NewRenderer returns a renderer with the default theme.
func NewRenderer(colors TagColors) *Renderer {
	return &Renderer{Theme: DefaultTheme(), Colors: colors}
}

type visibleNode struct {
	node physics.SimNode
	term model.TermView
}

// Visible returns the ids of nodes that pass the scene filter, in node order.
func (s Scene) Visible() []string {
	var ids []string
	for _, n := range s.Nodes {
		if v, ok := s.Terms[n.ID]; ok && s.Filter.Match(v) {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// Draw paints one frame. A zero-size canvas is skipped.
func (r *Renderer) Draw(c Canvas, s Scene) FrameStats {
	w, h := c.Size()
	if w <= 0 || h <= 0 {
		return FrameStats{Skipped: true}
	}
	th := r.Theme
	zoom := s.Zoom
	if zoom <= 0 {
		zoom = 1
	}

	c.SetFill(th.Background)
	c.FillRect(0, 0, w, h)

	c.Save()
	defer c.Restore()
	c.Translate(s.Pan.X, s.Pan.Y)
	c.Scale(zoom, zoom)

	visible := make([]visibleNode, 0, len(s.Nodes))
	pos := make(map[string]r2.Vec, len(s.Nodes))
	for _, n := range s.Nodes {
		v, ok := s.Terms[n.ID]
		if !ok || !s.Filter.Match(v) {
			continue
		}
		visible = append(visible, visibleNode{node: n, term: v})
		pos[n.ID] = n.Pos
	}
	stats := FrameStats{Visible: len(visible), Trails: make(map[string]int)}

	// edges between visible nodes
	c.SetDash()
	c.SetStroke(th.Edge)
	c.SetLineWidth(th.EdgeWidth)
	for _, vn := range visible {
		for _, id := range vn.term.Edges() {
			if p, ok := pos[id]; ok {
				c.StrokeLine(vn.node.Pos.X, vn.node.Pos.Y, p.X, p.Y)
				stats.Edges++
			}
		}
	}

	// trails for hidden targets
	c.SetStroke(th.Trail)
	c.SetLineWidth(th.TrailWidth)
	c.SetDash(th.TrailDash...)
	for _, vn := range visible {
		hidden := hiddenEdges(vn.term, pos)
		for i := 0; i < hidden; i++ {
			end := TrailEnd(vn.node.Pos, i, hidden, th.TrailLength)
			c.StrokeLine(vn.node.Pos.X, vn.node.Pos.Y, end.X, end.Y)
		}
		if hidden > 0 {
			stats.Trails[vn.node.ID] = hidden
		}
	}
	c.SetDash()

	// selection overlay
	connected := map[string]bool{}
	var sel *visibleNode
	for i := range visible {
		if visible[i].node.ID == s.Selected {
			sel = &visible[i]
			break
		}
	}
	if sel != nil {
		c.SetStroke(th.SelectedEdge)
		c.SetLineWidth(th.SelectedEdgeWidth)
		for _, id := range sel.term.Edges() {
			connected[id] = true
			if p, ok := pos[id]; ok {
				c.StrokeLine(sel.node.Pos.X, sel.node.Pos.Y, p.X, p.Y)
				stats.SelectedEdges++
			}
		}
		hidden := hiddenEdges(sel.term, pos)
		c.SetStroke(th.SelectedTrail)
		c.SetLineWidth(th.SelectedTrailWidth)
		c.SetDash(th.SelectedTrailDash...)
		for i := 0; i < hidden; i++ {
			end := TrailEnd(sel.node.Pos, i, hidden, th.SelectedTrailLength)
			c.StrokeLine(sel.node.Pos.X, sel.node.Pos.Y, end.X, end.Y)
		}
		c.SetDash()
		stats.SelectedTrails = hidden
	}

	// nodes
	for _, vn := range visible {
		id := vn.node.ID
		isSelected := id == s.Selected && sel != nil
		isConnected := !isSelected && connected[id]
		isHovered := id == s.Hovered
		r.drawNode(c, vn, isSelected, isConnected, isHovered)

		text, opaque, show := r.labelStyle(s, zoom, isSelected || isConnected || isHovered)
		if show {
			r.drawLabel(c, vn, isSelected, text, opaque)
			stats.Labels++
		}
	}
	return stats
}

func (r *Renderer) drawNode(c Canvas, vn visibleNode, selected, connected, hovered bool) {
	th := r.Theme
	p, radius := vn.node.Pos, vn.node.Radius

	switch {
	case selected:
		c.Glow(p.X, p.Y, radius, th.GlowSelected, th.BlurSelected)
	case connected:
		c.Glow(p.X, p.Y, radius, th.GlowConnected, th.BlurConnected)
	case hovered:
		c.Glow(p.X, p.Y, radius, th.GlowHovered, th.BlurHovered)
	}

	tags := vn.term.Tags
	if len(tags) > 1 {
		step := 2 * math.Pi / float64(len(tags))
		start := -math.Pi / 2
		for _, tag := range tags {
			c.SetFill(r.color(tag))
			c.FillWedge(p.X, p.Y, radius, start, start+step)
			start += step
		}
	} else {
		fill := th.NodeFallback
		if len(tags) == 1 {
			fill = r.color(tags[0])
		}
		c.SetFill(fill)
		c.FillCircle(p.X, p.Y, radius)
	}

	border := th.BorderIdle
	if selected || hovered {
		border = th.BorderActive
	}
	width := th.BorderWidth
	if selected {
		width = th.BorderSelectedWidth
	}
	c.SetStroke(border)
	c.SetLineWidth(width)
	c.StrokeCircle(p.X, p.Y, radius)
}

// labelStyle returns the text and background alpha for a label and whether
// it is drawn at all.
func (r *Renderer) labelStyle(s Scene, zoom float64, highlighted bool) (text, bg uint8, show bool) {
	th := r.Theme
	dimAll := s.Labels == LabelsAll || (s.Labels == LabelsUntilSelection && s.Selected == "")
	switch {
	case highlighted:
		return th.LabelText.A, th.LabelBg.A, true
	case dimAll:
		return th.LabelTextDim, th.LabelBgDim, true
	}
	threshold := s.LabelZoom
	if threshold <= 0 {
		threshold = DefaultLabelZoom
	}
	if zoom >= threshold {
		return th.LabelText.A, th.LabelBg.A, true
	}
	return 0, 0, false
}

func (r *Renderer) drawLabel(c Canvas, vn visibleNode, selected bool, textAlpha, bgAlpha uint8) {
	th := r.Theme
	size := th.LabelSize
	if selected {
		size = th.LabelBoldSize
	}
	c.SetFont(size, selected)
	p, radius := vn.node.Pos, vn.node.Radius
	tw := c.MeasureText(vn.term.Label)

	c.SetFill(WithAlpha(th.LabelBg, bgAlpha))
	c.FillRect(p.X-tw/2-4, p.Y+radius+4, tw+8, 20)
	c.SetFill(WithAlpha(th.LabelText, textAlpha))
	c.FillText(vn.term.Label, p.X, p.Y+radius+8)
}

func (r *Renderer) color(tag string) color.NRGBA {
	if r.Colors == nil {
		return r.Theme.NodeFallback
	}
	return r.Colors.Color(tag)
}

// hiddenEdges counts edges whose target is not in the visible set.
func hiddenEdges(v model.TermView, visible map[string]r2.Vec) int {
	n := 0
	for _, id := range v.Edges() {
		if _, ok := visible[id]; !ok {
			n++
		}
	}
	return n
}

// TrailEnd returns the tip of the index-th of count trail stubs around
// center. Stubs are spread evenly, starting 45 degrees below the x axis.
func TrailEnd(center r2.Vec, index, count int, length float64) r2.Vec {
	angle := 2*math.Pi/float64(count)*float64(index) + math.Pi/4
	return r2.Add(center, r2.Vec{X: math.Cos(angle) * length, Y: math.Sin(angle) * length})
}
