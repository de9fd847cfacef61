// Package raster implements render.Canvas on a gg bitmap context with a
// backing buffer sized at the device pixel ratio.
package raster

import (
	"image"
	"image/color"
	"io"
	"math"

	"git.sr.ht/~sbinet/gg"

	"github.com/vanderheijden86/glossgraph/pkg/render/fonts"
)

// glowSteps is the number of halo rings used to approximate a blur.
const glowSteps = 6

type state struct {
	fill, stroke color.Color
	lineWidth    float64
	dash         []float64
	fontSize     float64
	bold         bool
	scale        float64
}

// Canvas draws into an RGBA image through gg.
type Canvas struct {
	dc   *gg.Context
	w, h float64
	dpr  float64

	cur   state
	stack []state
}

// New returns a canvas of logical size w x h at the given pixel ratio.
func New(w, h int, dpr float64) *Canvas {
	c := &Canvas{}
	c.Resize(w, h, dpr)
	return c
}

// Resize reallocates the backing buffer for a new logical size or pixel
// ratio and reapplies the base scale. It reports whether anything changed.
func (c *Canvas) Resize(w, h int, dpr float64) bool {
	if dpr <= 0 {
		dpr = 1
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if c.dc != nil && float64(w) == c.w && float64(h) == c.h && dpr == c.dpr {
		return false
	}
	c.w, c.h, c.dpr = float64(w), float64(h), dpr
	pw, ph := int(math.Round(float64(w)*dpr)), int(math.Round(float64(h)*dpr))
	c.dc = gg.NewContext(max(pw, 1), max(ph, 1))
	c.dc.Scale(dpr, dpr)
	c.stack = c.stack[:0]
	c.cur = state{
		fill:      color.Black,
		stroke:    color.Black,
		lineWidth: 1,
		fontSize:  12,
		scale:     dpr,
	}
	return true
}

// PixelRatio returns the device pixel ratio of the backing buffer.
func (c *Canvas) PixelRatio() float64 { return c.dpr }

// Image returns the backing buffer.
func (c *Canvas) Image() *image.RGBA {
	if im, ok := c.dc.Image().(*image.RGBA); ok {
		return im
	}
	b := c.dc.Image().Bounds()
	im := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			im.Set(x, y, c.dc.Image().At(x, y))
		}
	}
	return im
}

// EncodePNG writes the backing buffer as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error { return c.dc.EncodePNG(w) }

// SavePNG writes the backing buffer to path.
func (c *Canvas) SavePNG(path string) error { return c.dc.SavePNG(path) }

// DevicePoint maps a point in current user space to backing-buffer pixels.
func (c *Canvas) DevicePoint(x, y float64) (float64, float64) {
	return c.dc.TransformPoint(x, y)
}

// UserScale is the product of the pixel ratio and every Scale in effect.
func (c *Canvas) UserScale() float64 { return c.cur.scale }

// Size returns the canvas size in CSS pixels, or zero while either side is empty.
func (c *Canvas) Size() (float64, float64) {
	if c.w <= 0 || c.h <= 0 {
		return 0, 0
	}
	return c.w, c.h
}

// Save pushes the drawing state and the gg transform.
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.cur)
	c.dc.Push()
}

// Restore pops the state pushed by the matching Save.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.cur = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.dc.Pop()
}

// Translate shifts the user space origin.
func (c *Canvas) Translate(x, y float64) { c.dc.Translate(x, y) }

// Scale multiplies the user space and tracks the combined scale.
func (c *Canvas) Scale(sx, sy float64) {
	c.dc.Scale(sx, sy)
	c.cur.scale *= math.Sqrt(math.Abs(sx * sy))
}

// SetFill sets the color used by fills and text.
func (c *Canvas) SetFill(col color.Color) { c.cur.fill = col }

// SetStroke sets the line color.
func (c *Canvas) SetStroke(col color.Color) { c.cur.stroke = col }

// SetLineWidth sets the line width in user units.
func (c *Canvas) SetLineWidth(w float64) { c.cur.lineWidth = w }

// SetDash sets the dash pattern; no arguments draw solid lines.
func (c *Canvas) SetDash(pattern ...float64) {
	c.cur.dash = append([]float64(nil), pattern...)
}

// SetFont selects the label face used by MeasureText and FillText.
func (c *Canvas) SetFont(size float64, bold bool) {
	c.cur.fontSize, c.cur.bold = size, bold
}

// FillRect fills an axis-aligned rectangle.
func (c *Canvas) FillRect(x, y, w, h float64) {
	c.dc.DrawRectangle(x, y, w, h)
	c.fill()
}

// StrokeLine draws a segment with the current stroke.
func (c *Canvas) StrokeLine(x1, y1, x2, y2 float64) {
	c.dc.DrawLine(x1, y1, x2, y2)
	c.stroke()
}

// FillCircle fills a circle centered on (x, y).
func (c *Canvas) FillCircle(x, y, r float64) {
	c.dc.DrawCircle(x, y, r)
	c.fill()
}

// StrokeCircle outlines a circle centered on (x, y).
func (c *Canvas) StrokeCircle(x, y, r float64) {
	c.dc.DrawCircle(x, y, r)
	c.stroke()
}

// FillWedge fills a pie slice between two angles in radians.
func (c *Canvas) FillWedge(x, y, r, start, end float64) {
	c.dc.NewSubPath()
	c.dc.MoveTo(x, y)
	c.dc.DrawArc(x, y, r, start, end)
	c.dc.ClosePath()
	c.fill()
}

// Glow approximates a shadow blur with translucent rings fading outward.
func (c *Canvas) Glow(x, y, r float64, col color.Color, blur float64) {
	if blur <= 0 {
		return
	}
	base := color.NRGBAModel.Convert(col).(color.NRGBA)
	for i := glowSteps; i >= 1; i-- {
		t := float64(i) / glowSteps
		halo := base
		halo.A = uint8(float64(base.A) * (1 - t) * (1 - t) * 0.5)
		c.dc.DrawCircle(x, y, r+blur*t/2)
		c.dc.SetFillStyle(gg.NewSolidPattern(halo))
		c.dc.Fill()
	}
}

// MeasureText returns the advance width of s in the current face.
func (c *Canvas) MeasureText(s string) float64 {
	c.dc.SetFontFace(fonts.Face(c.cur.fontSize, c.cur.bold))
	w, _ := c.dc.MeasureString(s)
	return w
}

// FillText draws s centered on x with its top edge at y.
func (c *Canvas) FillText(s string, x, y float64) {
	c.dc.SetFontFace(fonts.Face(c.cur.fontSize, c.cur.bold))
	c.dc.SetColor(c.cur.fill)
	c.dc.DrawStringAnchored(s, x, y, 0.5, 1)
}

// Clear fills the whole buffer with col, ignoring the transform.
func (c *Canvas) Clear(col color.Color) {
	c.dc.SetColor(col)
	c.dc.Clear()
}

func (c *Canvas) fill() {
	c.dc.SetFillStyle(gg.NewSolidPattern(c.cur.fill))
	c.dc.Fill()
}

func (c *Canvas) stroke() {
	// gg strokes in device space, so widths and dashes follow the transform here.
	c.dc.SetStrokeStyle(gg.NewSolidPattern(c.cur.stroke))
	c.dc.SetLineWidth(c.cur.lineWidth * c.cur.scale)
	if len(c.cur.dash) == 0 {
		c.dc.SetDash()
	} else {
		dash := make([]float64, len(c.cur.dash))
		for i, d := range c.cur.dash {
			dash[i] = d * c.cur.scale
		}
		c.dc.SetDash(dash...)
	}
	c.dc.Stroke()
}

