// Package interact turns raw pointer events into drag, pan, hover, select
// and zoom actions on a simulation and a viewport.
package interact

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/glossgraph/pkg/physics"
	"github.com/vanderheijden86/glossgraph/pkg/viewport"
)

// DefaultHitMultiplier widens the clickable radius beyond the drawn one.
const DefaultHitMultiplier = 2.0

// State is the pointer mode.
type State int

const (
	Idle State = iota
	Hovering
	PanningBackground
	DraggingNode
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Hovering:
		return "hovering"
	case PanningBackground:
		return "panning"
	case DraggingNode:
		return "dragging"
	default:
		return "unknown"
	}
}

// Cursor is the pointer shape a frontend should show.
type Cursor int

const (
	CursorGrab Cursor = iota
	CursorPointer
	CursorGrabbing
)

// Bodies is the part of the simulation the controller drives.
type Bodies interface {
	Nodes() []physics.SimNode
	SetDragged(id string)
	ClearDragged()
	MoveTo(id string, p r2.Vec) bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithHitMultiplier sets the hit radius multiplier. Values <= 1 are ignored.
func WithHitMultiplier(m float64) Option {
	return func(c *Controller) {
		if m > 1 {
			c.hitMultiplier = m
		}
	}
}

// WithListener routes interaction events to l.
func WithListener(l Listener) Option {
	return func(c *Controller) {
		if l != nil {
			c.listener = l
		}
	}
}

// WithHitFilter restricts hit testing to ids for which keep returns true.
func WithHitFilter(keep func(id string) bool) Option {
	return func(c *Controller) {
		c.hitFilter = keep
	}
}

// Controller is the pointer state machine. It is driven from the same
// thread as the simulation step.
type Controller struct {
	bodies        Bodies
	view          *viewport.Transform
	listener      Listener
	hitMultiplier float64
	hitFilter     func(string) bool

	state    State
	hovered  string
	selected string
	dragged  string
	last     r2.Vec
}

// New creates an idle controller.
func New(bodies Bodies, view *viewport.Transform, opts ...Option) *Controller {
	c := &Controller{
		bodies:        bodies,
		view:          view,
		listener:      Hooks{},
		hitMultiplier: DefaultHitMultiplier,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetListener replaces the event listener.
func (c *Controller) SetListener(l Listener) {
	if l == nil {
		l = Hooks{}
	}
	c.listener = l
}

// SetHitFilter replaces the hit-test filter; nil accepts every node.
func (c *Controller) SetHitFilter(keep func(id string) bool) { c.hitFilter = keep }

func (c *Controller) State() State     { return c.state }
func (c *Controller) Hovered() string  { return c.hovered }
func (c *Controller) Selected() string { return c.selected }
func (c *Controller) Dragged() string  { return c.dragged }

// Panning reports whether the background is being dragged.
func (c *Controller) Panning() bool { return c.state == PanningBackground }

// Cursor returns the pointer shape for the current state.
func (c *Controller) Cursor() Cursor {
	switch c.state {
	case DraggingNode, PanningBackground:
		return CursorGrabbing
	case Hovering:
		return CursorPointer
	default:
		return CursorGrab
	}
}

// HitTest returns the topmost node whose widened radius contains the screen
// point. Nodes are painted in slice order, so the last match wins.
func (c *Controller) HitTest(screen r2.Vec) (string, bool) {
	world := c.view.ToWorld(screen)
	nodes := c.bodies.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if c.hitFilter != nil && !c.hitFilter(n.ID) {
			continue
		}
		if r2.Norm(r2.Sub(world, n.Pos)) < n.Radius*c.hitMultiplier {
			return n.ID, true
		}
	}
	return "", false
}

// PointerDown starts a drag on a hit node or a pan on the background.
func (c *Controller) PointerDown(screen r2.Vec) {
	c.last = screen
	c.setHovered("")
	if id, ok := c.HitTest(screen); ok {
		c.state = DraggingNode
		c.dragged = id
		c.selected = id
		c.bodies.SetDragged(id)
		c.listener.NodeClicked(id)
		return
	}
	c.state = PanningBackground
	c.dragged = ""
	c.selected = ""
	c.listener.BackgroundClicked()
}

// PointerMove follows the pointer according to the current state.
func (c *Controller) PointerMove(screen r2.Vec) {
	switch c.state {
	case DraggingNode:
		c.bodies.MoveTo(c.dragged, c.view.ToWorld(screen))
	case PanningBackground:
		delta := r2.Sub(screen, c.last)
		if delta != (r2.Vec{}) {
			c.view.PanBy(delta)
			c.listener.PanChanged(c.view.Pan())
		}
	default:
		id, _ := c.HitTest(screen)
		c.setHovered(id)
	}
	c.last = screen
}

// PointerUp ends any drag or pan and re-evaluates hover at screen.
// Selection made during the drag persists.
func (c *Controller) PointerUp(screen r2.Vec) {
	c.release()
	c.PointerMove(screen)
}

// PointerLeave ends any drag or pan and clears hover.
func (c *Controller) PointerLeave() {
	c.release()
	c.setHovered("")
}

func (c *Controller) release() {
	if c.dragged != "" {
		c.bodies.ClearDragged()
	}
	c.dragged = ""
	c.state = Idle
	if c.hovered != "" {
		c.state = Hovering
	}
}

// Wheel zooms one step around the pointer. Positive deltaY zooms out.
func (c *Controller) Wheel(screen r2.Vec, deltaY float64) {
	if c.view.ZoomAt(screen, viewport.WheelFactor(deltaY)) {
		c.listener.ZoomChanged(c.view.Zoom())
		c.listener.PanChanged(c.view.Pan())
	}
}

// ZoomIn applies the toolbar zoom-in step without moving the pan.
func (c *Controller) ZoomIn() { c.zoomBy(viewport.ButtonInFactor) }

// ZoomOut applies the toolbar zoom-out step without moving the pan.
func (c *Controller) ZoomOut() { c.zoomBy(viewport.ButtonOutFactor) }

func (c *Controller) zoomBy(f float64) {
	if c.view.ZoomBy(f) {
		c.listener.ZoomChanged(c.view.Zoom())
	}
}

// SetZoom sets the zoom directly, clamped.
func (c *Controller) SetZoom(z float64) {
	if c.view.SetZoom(z) {
		c.listener.ZoomChanged(c.view.Zoom())
	}
}

// ResetView restores zoom 1 and pan (0, 0).
func (c *Controller) ResetView() {
	zoomed := c.view.Zoom() != 1
	panned := c.view.Pan() != (r2.Vec{})
	c.view.Reset()
	if zoomed {
		c.listener.ZoomChanged(c.view.Zoom())
	}
	if panned {
		c.listener.PanChanged(c.view.Pan())
	}
}

// SetSelected selects id, or clears the selection for "". No event fires;
// the caller already knows.
func (c *Controller) SetSelected(id string) { c.selected = id }

// Forget drops references to ids that left the node set.
func (c *Controller) Forget(present func(id string) bool) {
	if c.selected != "" && !present(c.selected) {
		c.selected = ""
	}
	if c.hovered != "" && !present(c.hovered) {
		c.setHovered("")
	}
	if c.dragged != "" && !present(c.dragged) {
		c.dragged = ""
		c.state = Idle
	}
}

func (c *Controller) setHovered(id string) {
	if id == c.hovered {
		if c.state == Idle && id != "" {
			c.state = Hovering
		}
		return
	}
	c.hovered = id
	if c.state == Idle || c.state == Hovering {
		c.state = Idle
		if id != "" {
			c.state = Hovering
		}
	}
	c.listener.NodeHovered(id)
}
