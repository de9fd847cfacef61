package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/glossgraph/pkg/frame"
	"github.com/vanderheijden86/glossgraph/pkg/graphview"
	"github.com/vanderheijden86/glossgraph/pkg/interact"
	"github.com/vanderheijden86/glossgraph/pkg/render"
)

// frameMsg is one display tick of the frame pump.
type frameMsg time.Time

// frameCmd schedules the next tick at the configured rate.
func frameCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// graphEvents collects listener callbacks fired while the model handles one
// message; the model drains them afterwards.
type graphEvents struct {
	clicked    string
	hovered    string
	hoverSeen  bool
	background bool
}

func (ev *graphEvents) hooks() interact.Hooks {
	return interact.Hooks{
		OnNodeClicked:       func(id string) { ev.clicked = id },
		OnNodeHovered:       func(id string) { ev.hovered, ev.hoverSeen = id, true },
		OnBackgroundClicked: func() { ev.background = true },
	}
}

func (ev *graphEvents) reset() { *ev = graphEvents{hovered: ev.hovered} }

// GraphPane owns the engine, its frame queue and the terminal canvas.
type GraphPane struct {
	engine *graphview.Engine
	queue  *frame.Queue
	canvas *TermCanvas
	events *graphEvents

	cols, rows int
	cells      string
	fps        int
	ticking    bool
}

// NewGraphPane builds an engine on a fresh frame queue. The engine's
// listener is installed here; opts must not carry another.
func NewGraphPane(colors render.TagColors, fps int, opts ...graphview.Option) *GraphPane {
	ev := &graphEvents{}
	q := frame.NewQueue()
	opts = append(opts, graphview.WithListener(ev.hooks()))
	e := graphview.New(q, colors, opts...)
	c := NewTermCanvas(0, 0)
	e.Attach(c)
	return &GraphPane{engine: e, queue: q, canvas: c, events: ev, fps: fps}
}

// Engine exposes the underlying graph view.
func (g *GraphPane) Engine() *graphview.Engine { return g.engine }

// SetSize resizes the canvas to cols x rows cells.
func (g *GraphPane) SetSize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	if cols == g.cols && rows == g.rows {
		return
	}
	g.cols, g.rows = cols, rows
	w, h := LogicalSize(cols, rows)
	g.engine.Resize(w, h, cellDPR)
}

// Size returns the pane size in cells.
func (g *GraphPane) Size() (cols, rows int) { return g.cols, g.rows }

// Mount starts both loops and returns the pump command when no tick is
// in flight.
func (g *GraphPane) Mount() tea.Cmd {
	g.engine.Mount()
	return g.ensureTicking()
}

// Unmount cancels both loops; the pump stops on its next tick.
func (g *GraphPane) Unmount() { g.engine.Unmount() }

func (g *GraphPane) ensureTicking() tea.Cmd {
	if g.ticking || g.queue.Pending() == 0 {
		return nil
	}
	g.ticking = true
	return frameCmd(g.fps)
}

// Tick drains one frame and recomposes the cells when a frame was painted.
// It returns the next tick while callbacks remain scheduled.
func (g *GraphPane) Tick(now time.Time, r *lipgloss.Renderer) tea.Cmd {
	g.ticking = false
	before := g.engine.Frames()
	g.queue.RunFrame(now)
	if g.engine.Frames() != before {
		g.cells = g.canvas.Compose(r)
	}
	return g.ensureTicking()
}

// point maps a cell inside the pane to canvas coordinates.
func (g *GraphPane) point(col, row int) r2.Vec {
	x, y := CellPoint(col, row)
	return r2.Vec{X: x, Y: y}
}

// Contains reports whether a pane-relative cell is on the canvas.
func (g *GraphPane) Contains(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.cols && row < g.rows
}

// Mouse feeds a pane-relative mouse event to the engine. It reports whether
// the event touched the graph.
func (g *GraphPane) Mouse(msg tea.MouseMsg, col, row int) bool {
	inside := g.Contains(col, row)
	p := g.point(col, row)
	switch msg.Action {
	case tea.MouseActionPress:
		if !inside {
			return false
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			g.engine.PointerDown(p)
		case tea.MouseButtonWheelUp:
			g.engine.Wheel(p, -1)
		case tea.MouseButtonWheelDown:
			g.engine.Wheel(p, 1)
		default:
			return false
		}
	case tea.MouseActionRelease:
		g.engine.PointerUp(p)
	case tea.MouseActionMotion:
		if !inside {
			g.engine.PointerLeave()
			return false
		}
		g.engine.PointerMove(p)
	}
	return true
}

// Events returns and clears what the listener saw.
func (g *GraphPane) Events() graphEvents {
	ev := *g.events
	g.events.reset()
	return ev
}

// View returns the last composed frame.
func (g *GraphPane) View() string {
	if g.cells == "" {
		return lipgloss.NewStyle().Width(g.cols).Height(g.rows).Render("")
	}
	return g.cells
}
