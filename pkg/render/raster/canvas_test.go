package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/physics"
	"github.com/vanderheijden86/glossgraph/pkg/render"
)

func TestResizeUsesPixelRatio(t *testing.T) {
	c := New(200, 100, 2)
	b := c.Image().Bounds()
	if b.Dx() != 400 || b.Dy() != 200 {
		t.Fatalf("backing buffer = %v, want 400x200", b)
	}
	if w, h := c.Size(); w != 200 || h != 100 {
		t.Errorf("logical size = %vx%v", w, h)
	}
	if c.Resize(200, 100, 2) {
		t.Error("same size should not reallocate")
	}
	if !c.Resize(300, 100, 1) || c.Image().Bounds().Dx() != 300 {
		t.Error("resize to 300x100@1 failed")
	}
	if c.UserScale() != 1 {
		t.Errorf("base scale = %v", c.UserScale())
	}
}

func TestZeroSizeReportsUnavailable(t *testing.T) {
	c := New(0, 0, 1)
	if w, h := c.Size(); w != 0 || h != 0 {
		t.Errorf("Size() = %v,%v", w, h)
	}
}

func TestDevicePointFollowsTransform(t *testing.T) {
	c := New(100, 100, 2)
	c.Save()
	c.Translate(10, 0)
	c.Scale(3, 3)
	x, y := c.DevicePoint(1, 1)
	if x != (10+3)*2 || y != 3*2 {
		t.Errorf("device point = %v,%v", x, y)
	}
	if c.UserScale() != 6 {
		t.Errorf("user scale = %v", c.UserScale())
	}
	c.Restore()
	if c.UserScale() != 2 {
		t.Errorf("restore did not reset scale: %v", c.UserScale())
	}
}

func TestFillCirclePaintsCenter(t *testing.T) {
	c := New(50, 50, 1)
	c.SetFill(color.NRGBA{255, 0, 0, 255})
	c.FillCircle(25, 25, 10)
	r, g, b, a := c.Image().At(25, 25).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 || a>>8 != 255 {
		t.Errorf("center pixel = %v %v %v %v", r>>8, g>>8, b>>8, a>>8)
	}
	if _, _, _, a := c.Image().At(2, 2).RGBA(); a != 0 {
		t.Error("corner should stay transparent")
	}
}

func TestMeasureTextGrowsWithLength(t *testing.T) {
	c := New(100, 100, 1)
	c.SetFont(12, false)
	short, long := c.MeasureText("cs"), c.MeasureText("crowd control")
	if short <= 0 || long <= short {
		t.Errorf("widths short=%v long=%v", short, long)
	}
	c.SetFont(14, true)
	if c.MeasureText("cs") <= short {
		t.Error("bold 14px should be wider than 12px")
	}
}

func TestRendererFrameEncodes(t *testing.T) {
	views := []model.TermView{
		{ID: "gank", Label: "Gank", Tags: []string{"jungle", "strategy"}, Links: []string{"jungle"}},
		{ID: "jungle", Label: "Jungle", Tags: []string{"jungle"}, Links: []string{"hidden"}},
	}
	sim := physics.New(physics.DefaultConfig(), physics.WithRand(rand.New(rand.NewSource(3))))
	center := r2.Vec{X: 160, Y: 120}
	sim.Sync(views, center)
	sim.Settle(center, 50, 0)

	terms := map[string]model.TermView{}
	for _, v := range views {
		terms[v.ID] = v
	}
	c := New(320, 240, 2)
	stats := render.NewRenderer(render.ColorFunc(func(string) color.NRGBA {
		return color.NRGBA{0x3b, 0x82, 0xf6, 0xff}
	})).Draw(c, render.Scene{Nodes: sim.Nodes(), Terms: terms, Zoom: 1, Selected: "gank"})
	if stats.Visible != 2 || stats.Edges != 1 || stats.Trails["jungle"] != 1 {
		t.Errorf("stats = %+v", stats)
	}

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 640 {
		t.Errorf("png width = %d", img.Bounds().Dx())
	}
	// background corner is the theme background
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 0x16 || g>>8 != 0x1f || b>>8 != 0x32 {
		t.Errorf("background = #%02x%02x%02x", r>>8, g>>8, b>>8)
	}
}
