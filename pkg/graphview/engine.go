// Package graphview assembles the force simulation, viewport, pointer
// controller and renderer into one engine driven by a frame scheduler.
//
// An Engine is single-threaded: every method, and every frame callback it
// schedules, must run on the goroutine that drains its scheduler.
package graphview

import (
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/glossgraph/pkg/debug"
	"github.com/vanderheijden86/glossgraph/pkg/frame"
	"github.com/vanderheijden86/glossgraph/pkg/interact"
	"github.com/vanderheijden86/glossgraph/pkg/metrics"
	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/physics"
	"github.com/vanderheijden86/glossgraph/pkg/render"
	"github.com/vanderheijden86/glossgraph/pkg/viewport"
)

// Resizer is implemented by canvases whose backing buffer follows the
// display size, such as the raster canvas.
type Resizer interface {
	Resize(w, h int, dpr float64) bool
}

type settings struct {
	physics   physics.Config
	limits    viewport.Limits
	radius    float64
	jitter    float64
	hitMult   float64
	rng       *rand.Rand
	listener  interact.Listener
	labels    render.LabelMode
	labelZoom float64
	theme     *render.Theme
}

// Option configures an Engine.
type Option func(*settings)

// WithPhysics sets the simulation constants.
func WithPhysics(cfg physics.Config) Option {
	return func(s *settings) { s.physics = cfg }
}

// WithZoomLimits sets the zoom clamp range.
func WithZoomLimits(l viewport.Limits) Option {
	return func(s *settings) { s.limits = l }
}

// WithNodeRadius sets the radius of every node.
func WithNodeRadius(r float64) Option {
	return func(s *settings) { s.radius = r }
}

// WithSpawnJitter sets the side of the square new nodes spawn in.
func WithSpawnJitter(j float64) Option {
	return func(s *settings) { s.jitter = j }
}

// WithHitMultiplier widens the clickable node radius.
func WithHitMultiplier(m float64) Option {
	return func(s *settings) { s.hitMult = m }
}

// WithRand makes node spawning deterministic.
func WithRand(rng *rand.Rand) Option {
	return func(s *settings) { s.rng = rng }
}

// WithListener receives interaction events.
func WithListener(l interact.Listener) Option {
	return func(s *settings) { s.listener = l }
}

// WithLabels sets the label mode and zoom threshold. A threshold <= 0 keeps
// the default.
func WithLabels(mode render.LabelMode, zoom float64) Option {
	return func(s *settings) { s.labels, s.labelZoom = mode, zoom }
}

// WithTheme replaces the default palette.
func WithTheme(th render.Theme) Option {
	return func(s *settings) { s.theme = &th }
}

// Engine is the interactive graph view.
type Engine struct {
	sim      *physics.Simulation
	view     *viewport.Transform
	ctrl     *interact.Controller
	renderer *render.Renderer
	canvas   render.Canvas

	sched    frame.Scheduler
	simLoop  *frame.Loop
	drawLoop *frame.Loop
	mounted  bool

	terms     map[string]model.TermView
	filter    render.Filter
	labels    render.LabelMode
	labelZoom float64

	center r2.Vec
	stats  render.FrameStats
	frames uint64
}

// New builds an engine on sched. Colors resolves tag fills; nil paints every
// node in the fallback color.
func New(sched frame.Scheduler, colors render.TagColors, opts ...Option) *Engine {
	s := settings{
		physics: physics.DefaultConfig(),
		limits:  viewport.DefaultLimits(),
		radius:  physics.DefaultNodeRadius,
		jitter:  physics.DefaultSpawnJitter,
		hitMult: interact.DefaultHitMultiplier,
	}
	for _, opt := range opts {
		opt(&s)
	}

	simOpts := []physics.Option{
		physics.WithNodeRadius(s.radius),
		physics.WithSpawnJitter(s.jitter),
	}
	if s.rng != nil {
		simOpts = append(simOpts, physics.WithRand(s.rng))
	}

	e := &Engine{
		sim:       physics.New(s.physics.Merge(), simOpts...),
		view:      viewport.New(s.limits),
		renderer:  render.NewRenderer(colors),
		sched:     sched,
		terms:     map[string]model.TermView{},
		labels:    s.labels,
		labelZoom: s.labelZoom,
	}
	if s.theme != nil {
		e.renderer.Theme = *s.theme
	}
	e.ctrl = interact.New(e.sim, e.view,
		interact.WithHitMultiplier(s.hitMult),
		interact.WithListener(s.listener),
		interact.WithHitFilter(e.isVisible),
	)
	e.simLoop = frame.NewLoop(sched, e.stepFrame)
	e.drawLoop = frame.NewLoop(sched, e.drawFrame)
	return e
}

// Attach sets the canvas frames are painted on. A nil canvas pauses drawing
// without stopping the render loop.
func (e *Engine) Attach(c render.Canvas) {
	e.canvas = c
	e.updateCenter()
}

// Resize reallocates the attached canvas for a new display size when it
// supports resizing, and moves the gravity center to the new middle.
func (e *Engine) Resize(w, h int, dpr float64) {
	if r, ok := e.canvas.(Resizer); ok {
		r.Resize(w, h, dpr)
	}
	e.updateCenter()
	debug.With("resize", "w", w, "h", h, "dpr", dpr)
}

func (e *Engine) updateCenter() {
	if e.canvas == nil {
		return
	}
	if w, h := e.canvas.Size(); w > 0 && h > 0 {
		e.center = r2.Vec{X: w / 2, Y: h / 2}
	}
}

// Center is the world point gravity pulls toward and new nodes spawn
// around.
func (e *Engine) Center() r2.Vec { return e.center }

// Mount starts the render loop, and the simulation loop when there is
// anything to simulate.
func (e *Engine) Mount() {
	e.mounted = true
	if !e.sim.Empty() {
		e.simLoop.Start()
	}
	e.drawLoop.Start()
}

// Unmount cancels both loops. Node state is kept for the next Mount.
func (e *Engine) Unmount() {
	e.mounted = false
	e.simLoop.Stop()
	e.drawLoop.Stop()
}

// Mounted reports whether the engine is between Mount and Unmount.
func (e *Engine) Mounted() bool { return e.mounted }

// Simulating reports whether a simulation frame is pending.
func (e *Engine) Simulating() bool { return e.simLoop.Running() }

// Drawing reports whether a render frame is pending.
func (e *Engine) Drawing() bool { return e.drawLoop.Running() }

// SetTerms replaces the visible term set. Surviving nodes keep their
// position and velocity; new nodes spawn near the center; interaction
// state pointing at dropped nodes is cleared.
func (e *Engine) SetTerms(views []model.TermView) physics.SyncResult {
	res := e.sim.Sync(views, e.center)
	e.terms = make(map[string]model.TermView, len(views))
	for _, v := range views {
		e.terms[v.ID] = v
	}
	e.ctrl.Forget(func(id string) bool {
		_, ok := e.terms[id]
		return ok
	})
	switch {
	case e.sim.Empty():
		e.simLoop.Stop()
	case e.mounted:
		e.simLoop.Start()
	}
	debug.With("sync", "added", res.Added, "kept", res.Kept, "dropped", res.Dropped)
	return res
}

// Terms returns the number of terms currently shown.
func (e *Engine) Terms() int { return len(e.terms) }

// Term returns the content joined to a node.
func (e *Engine) Term(id string) (model.TermView, bool) {
	v, ok := e.terms[id]
	return v, ok
}

// SetFilter changes the search and tag filter applied at render time.
func (e *Engine) SetFilter(f render.Filter) { e.filter = f }

// Filter returns the active filter.
func (e *Engine) Filter() render.Filter { return e.filter }

// SetLabelMode changes which labels are drawn.
func (e *Engine) SetLabelMode(m render.LabelMode) { e.labels = m }

// LabelMode returns the label mode.
func (e *Engine) LabelMode() render.LabelMode { return e.labels }

// SetPhysics swaps the simulation constants; the layout continues from its
// current state.
func (e *Engine) SetPhysics(cfg physics.Config) { e.sim.SetConfig(cfg.Merge()) }

func (e *Engine) isVisible(id string) bool {
	v, ok := e.terms[id]
	return ok && e.filter.Match(v)
}

// Visible returns the ids that pass the filter, in node order.
func (e *Engine) Visible() []string { return e.Scene().Visible() }

// Scene captures everything the next frame will paint.
func (e *Engine) Scene() render.Scene {
	return render.Scene{
		Nodes:     e.sim.Nodes(),
		Terms:     e.terms,
		Zoom:      e.view.Zoom(),
		Pan:       e.view.Pan(),
		Filter:    e.filter,
		Selected:  e.ctrl.Selected(),
		Hovered:   e.ctrl.Hovered(),
		Labels:    e.labels,
		LabelZoom: e.labelZoom,
	}
}

func (e *Engine) stepFrame(time.Time) bool {
	if e.sim.Empty() {
		return false
	}
	defer metrics.Timer(metrics.SimStep)()
	e.sim.Step(e.center)
	return true
}

func (e *Engine) drawFrame(time.Time) bool {
	e.Draw()
	return true
}

// Draw paints one frame immediately. Without a canvas, or on a zero-size
// one, it is a no-op that reports Skipped.
func (e *Engine) Draw() render.FrameStats {
	e.frames++
	if e.canvas == nil {
		e.stats = render.FrameStats{Skipped: true}
		return e.stats
	}
	defer metrics.Timer(metrics.RenderFrame)()
	e.stats = e.renderer.Draw(e.canvas, e.Scene())
	return e.stats
}

// Stats returns what the last frame painted.
func (e *Engine) Stats() render.FrameStats { return e.stats }

// Frames counts draw passes, including ones skipped for a missing or
// zero-size canvas.
func (e *Engine) Frames() uint64 { return e.frames }

// Settle steps the simulation outside the frame loop until it comes to rest
// or maxTicks pass, returning the ticks run.
func (e *Engine) Settle(maxTicks int, eps float64) int {
	defer metrics.Timer(metrics.SimStep)()
	return e.sim.Settle(e.center, maxTicks, eps)
}

// Energy returns the summed node speed; near zero means the layout has
// settled.
func (e *Engine) Energy() float64 { return e.sim.TotalSpeed() }

// Positions returns every node's world position.
func (e *Engine) Positions() map[string]r2.Vec { return e.sim.Positions() }

// Nodes returns a snapshot of the simulation.
func (e *Engine) Nodes() []physics.SimNode { return e.sim.Nodes() }

// ScreenPosition maps a node to screen coordinates, for placing overlays
// next to it.
func (e *Engine) ScreenPosition(id string) (r2.Vec, bool) {
	n, ok := e.sim.Node(id)
	if !ok {
		return r2.Vec{}, false
	}
	return e.view.ToScreen(n.Pos), true
}

// ToWorld maps a screen point into the simulation's coordinates.
func (e *Engine) ToWorld(screen r2.Vec) r2.Vec { return e.view.ToWorld(screen) }

// SetListener replaces the interaction event listener.
func (e *Engine) SetListener(l interact.Listener) { e.ctrl.SetListener(l) }

// Imperative controls.

// SetZoom sets the zoom, clamped, keeping the pan.
func (e *Engine) SetZoom(z float64) { e.ctrl.SetZoom(z) }

// ZoomIn applies one button zoom-in step.
func (e *Engine) ZoomIn() { e.ctrl.ZoomIn() }

// ZoomOut applies one button zoom-out step.
func (e *Engine) ZoomOut() { e.ctrl.ZoomOut() }

// ResetView restores zoom 1 and zero pan.
func (e *Engine) ResetView() { e.ctrl.ResetView() }

// SetSelectedNode selects id, or clears the selection for "".
func (e *Engine) SetSelectedNode(id string) { e.ctrl.SetSelected(id) }

func (e *Engine) Zoom() float64                   { return e.view.Zoom() }
func (e *Engine) Pan() r2.Vec                     { return e.view.Pan() }
func (e *Engine) Selected() string                { return e.ctrl.Selected() }
func (e *Engine) Hovered() string                 { return e.ctrl.Hovered() }
func (e *Engine) Dragged() string                 { return e.ctrl.Dragged() }
func (e *Engine) State() interact.State           { return e.ctrl.State() }
func (e *Engine) Cursor() interact.Cursor         { return e.ctrl.Cursor() }
func (e *Engine) HitTest(p r2.Vec) (string, bool) { return e.ctrl.HitTest(p) }

// Pointer input, in screen coordinates.

func (e *Engine) PointerDown(p r2.Vec)           { e.ctrl.PointerDown(p) }
func (e *Engine) PointerMove(p r2.Vec)           { e.ctrl.PointerMove(p) }
func (e *Engine) PointerUp(p r2.Vec)             { e.ctrl.PointerUp(p) }
func (e *Engine) PointerLeave()                  { e.ctrl.PointerLeave() }
func (e *Engine) Wheel(p r2.Vec, deltaY float64) { e.ctrl.Wheel(p, deltaY) }
