package graphview

import (
	"image/color"
	"math/rand"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/glossgraph/pkg/frame"
	"github.com/vanderheijden86/glossgraph/pkg/interact"
	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/render"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

var gray = render.ColorFunc(func(string) color.NRGBA { return color.NRGBA{0x64, 0x74, 0x8b, 0xff} })

func abc() []model.TermView {
	return []model.TermView{
		{ID: "a", Label: "Alpha", Tags: []string{"jungle"}},
		{ID: "b", Label: "Beta", Tags: []string{"jungle"}, Links: []string{"a", "c"}},
		{ID: "c", Label: "Gamma", Tags: []string{"strategy"}},
	}
}

type events struct {
	clicked    []string
	hovered    []string
	background int
	zooms      []float64
}

func (e *events) hooks() interact.Hooks {
	return interact.Hooks{
		OnNodeClicked:       func(id string) { e.clicked = append(e.clicked, id) },
		OnNodeHovered:       func(id string) { e.hovered = append(e.hovered, id) },
		OnBackgroundClicked: func() { e.background++ },
		OnZoomChanged:       func(z float64) { e.zooms = append(e.zooms, z) },
	}
}

func newEngine(t *testing.T, opts ...Option) (*Engine, *frame.Queue, *render.Recorder) {
	t.Helper()
	q := frame.NewQueue()
	opts = append([]Option{WithRand(rand.New(rand.NewSource(7)))}, opts...)
	e := New(q, gray, opts...)
	rec := render.NewRecorder(800, 600)
	e.Attach(rec)
	return e, q, rec
}

func TestCenterFollowsCanvas(t *testing.T) {
	e, _, _ := newEngine(t)
	if got := e.Center(); got != (r2.Vec{X: 400, Y: 300}) {
		t.Errorf("center = %v", got)
	}
}

func TestMountWithoutNodesOnlyDraws(t *testing.T) {
	e, q, _ := newEngine(t)
	e.Mount()
	if e.Simulating() {
		t.Error("simulation loop running with no nodes")
	}
	if !e.Drawing() {
		t.Fatal("render loop not running")
	}
	q.RunFrame(now)
	q.RunFrame(now)
	if e.Frames() != 2 {
		t.Errorf("frames = %d, want 2", e.Frames())
	}
	if s := e.Stats(); s.Visible != 0 || s.Skipped {
		t.Errorf("stats = %+v", s)
	}
}

func TestSetTermsStartsAndStopsSimulation(t *testing.T) {
	e, q, _ := newEngine(t)
	e.Mount()
	e.SetTerms(abc())
	if !e.Simulating() {
		t.Fatal("simulation loop not started by SetTerms")
	}
	before := e.Positions()
	q.RunFrame(now)
	after := e.Positions()
	moved := false
	for id, p := range before {
		if after[id] != p {
			moved = true
		}
	}
	if !moved {
		t.Error("a frame did not move any node")
	}

	e.SetTerms(nil)
	if e.Simulating() {
		t.Error("simulation loop still running with an empty node list")
	}
	if !e.Drawing() {
		t.Error("render loop stopped with the node list")
	}
}

func TestUnmountCancelsBothLoops(t *testing.T) {
	e, q, _ := newEngine(t)
	e.SetTerms(abc())
	if e.Simulating() {
		t.Fatal("loops must not run before Mount")
	}
	e.Mount()
	e.Unmount()
	if q.Pending() != 0 {
		t.Errorf("pending = %d after unmount", q.Pending())
	}
	q.RunFrame(now)
	if e.Frames() != 0 {
		t.Errorf("frames = %d after unmount", e.Frames())
	}
	e.Mount()
	if !e.Simulating() || !e.Drawing() {
		t.Error("remount did not restart loops")
	}
}

func TestLayoutContinuity(t *testing.T) {
	e, _, _ := newEngine(t)
	e.SetTerms(abc())
	e.Settle(50, 0)
	a := e.Positions()["a"]

	res := e.SetTerms(abc()[:2])
	if res.Kept != 2 || res.Dropped != 1 || res.Added != 0 {
		t.Errorf("sync = %+v", res)
	}
	if got := e.Positions()["a"]; got != a {
		t.Errorf("a moved on sync: %v -> %v", a, got)
	}
}

func TestScenarioThroughEngine(t *testing.T) {
	e, _, _ := newEngine(t)
	e.SetTerms(abc())

	stats := e.Draw()
	if stats.Edges != 2 || stats.TrailCount() != 0 {
		t.Errorf("unfiltered: edges=%d trails=%d", stats.Edges, stats.TrailCount())
	}

	e.SetFilter(render.Filter{Tags: []string{"jungle"}})
	stats = e.Draw()
	if stats.Edges != 1 || stats.Trails["b"] != 1 || stats.Trails["a"] != 0 {
		t.Errorf("filtered: edges=%d trails=%v", stats.Edges, stats.Trails)
	}
	if got := e.Visible(); len(got) != 2 {
		t.Errorf("visible = %v", got)
	}
}

func TestClickSelectsAndDrags(t *testing.T) {
	ev := &events{}
	e, _, _ := newEngine(t, WithListener(ev.hooks()))
	e.SetTerms(abc())
	e.Settle(500, 0.5)

	p, ok := e.ScreenPosition("b")
	if !ok {
		t.Fatal("no screen position for b")
	}
	e.PointerDown(p)
	if e.Selected() != "b" || e.Dragged() != "b" {
		t.Fatalf("selected=%q dragged=%q", e.Selected(), e.Dragged())
	}
	if len(ev.clicked) != 1 || ev.clicked[0] != "b" {
		t.Errorf("clicked = %v", ev.clicked)
	}

	target := r2.Vec{X: 10, Y: 20}
	e.PointerMove(target)
	e.Settle(3, 0)
	if got := e.Positions()["b"]; got != e.ToWorld(target) {
		t.Errorf("dragged node at %v, want %v", got, e.ToWorld(target))
	}
	e.PointerUp(target)
	if e.Dragged() != "" || e.Selected() != "b" {
		t.Errorf("after release: dragged=%q selected=%q", e.Dragged(), e.Selected())
	}
}

func TestFilteredNodesAreNotHittable(t *testing.T) {
	e, _, _ := newEngine(t)
	e.SetTerms(abc())
	e.Settle(500, 0.5)
	p, _ := e.ScreenPosition("c")

	e.SetFilter(render.Filter{Tags: []string{"jungle"}})
	if id, ok := e.HitTest(p); ok && id == "c" {
		t.Error("hidden node c was hit")
	}
	e.SetFilter(render.Filter{})
	if id, ok := e.HitTest(p); !ok || id != "c" {
		t.Errorf("hit = %q, %v; want c", id, ok)
	}
}

func TestSelectionDroppedWithNode(t *testing.T) {
	e, _, _ := newEngine(t)
	e.SetTerms(abc())
	e.SetSelectedNode("c")
	e.SetTerms(abc()[:2])
	if e.Selected() != "" {
		t.Errorf("selected = %q after c left", e.Selected())
	}
}

func TestControls(t *testing.T) {
	ev := &events{}
	e, _, _ := newEngine(t, WithListener(ev.hooks()))
	e.SetZoom(10)
	if e.Zoom() != 3 {
		t.Errorf("zoom = %v, want clamp at 3", e.Zoom())
	}
	e.ResetView()
	if e.Zoom() != 1 || e.Pan() != (r2.Vec{}) {
		t.Errorf("reset: zoom=%v pan=%v", e.Zoom(), e.Pan())
	}
	e.ZoomIn()
	e.ZoomOut()
	if len(ev.zooms) != 4 {
		t.Errorf("zoom events = %v", ev.zooms)
	}
}

func TestDetachedCanvasSkips(t *testing.T) {
	e := New(frame.NewQueue(), nil)
	e.SetTerms(abc())
	if !e.Draw().Skipped {
		t.Error("draw without canvas should skip")
	}
	e.Attach(render.NewRecorder(0, 0))
	if !e.Draw().Skipped {
		t.Error("draw on zero-size canvas should skip")
	}
	if e.Frames() != 2 {
		t.Errorf("frames = %d, want both skipped passes counted", e.Frames())
	}
}

type resizable struct {
	*render.Recorder
	calls int
}

func (r *resizable) Resize(w, h int, _ float64) bool {
	r.calls++
	r.W, r.H = float64(w), float64(h)
	return true
}

func TestResizeMovesCenter(t *testing.T) {
	e := New(frame.NewQueue(), nil)
	c := &resizable{Recorder: render.NewRecorder(100, 100)}
	e.Attach(c)
	e.Resize(300, 200, 2)
	if c.calls != 1 {
		t.Errorf("resize calls = %d", c.calls)
	}
	if e.Center() != (r2.Vec{X: 150, Y: 100}) {
		t.Errorf("center = %v", e.Center())
	}
}
