// Package vector implements render.Canvas as an SVG document written with
// svgo. Transforms become nested groups.
package vector

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/vanderheijden86/glossgraph/pkg/render/fonts"
)

const glowSteps = 6

type state struct {
	fill, stroke color.Color
	lineWidth    float64
	dash         []float64
	fontSize     float64
	bold         bool
	groups       int
}

// Canvas streams SVG elements to a writer.
type Canvas struct {
	doc  *svg.SVG
	w, h int

	cur    state
	stack  []state
	closed bool
}

// New starts an SVG document of the given size on w.
func New(w io.Writer, width, height int) *Canvas {
	c := &Canvas{
		doc: svg.New(w),
		w:   width,
		h:   height,
		cur: state{fill: color.Black, stroke: color.Black, lineWidth: 1, fontSize: 12},
	}
	c.doc.Start(width, height)
	return c
}

// Close ends any open groups and the document. Further calls are no-ops.
func (c *Canvas) Close() {
	if c.closed {
		return
	}
	for len(c.stack) > 0 {
		c.Restore()
	}
	c.endGroups()
	c.doc.End()
	c.closed = true
}

// Title writes a document title element.
func (c *Canvas) Title(s string) { c.doc.Title(s) }

// Size returns the document size.
func (c *Canvas) Size() (float64, float64) {
	if c.w <= 0 || c.h <= 0 {
		return 0, 0
	}
	return float64(c.w), float64(c.h)
}

// Save records the state; transforms after it open nested groups.
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.cur)
	c.cur.groups = 0
}

// Restore closes the groups opened since the matching Save.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.endGroups()
	c.cur = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Canvas) endGroups() {
	for ; c.cur.groups > 0; c.cur.groups-- {
		c.doc.Gend()
	}
}

// Translate opens a translated group.
func (c *Canvas) Translate(x, y float64) {
	c.doc.Gtransform(fmt.Sprintf("translate(%s,%s)", num(x), num(y)))
	c.cur.groups++
}

// Scale opens a scaled group.
func (c *Canvas) Scale(sx, sy float64) {
	c.doc.Gtransform(fmt.Sprintf("scale(%s,%s)", num(sx), num(sy)))
	c.cur.groups++
}

// SetFill sets the fill color for shapes and text.
func (c *Canvas) SetFill(col color.Color) { c.cur.fill = col }

// SetStroke sets the line color.
func (c *Canvas) SetStroke(col color.Color) { c.cur.stroke = col }

// SetLineWidth sets the stroke width.
func (c *Canvas) SetLineWidth(w float64) { c.cur.lineWidth = w }

// SetDash sets the stroke-dasharray; no arguments draw solid lines.
func (c *Canvas) SetDash(pattern ...float64) {
	c.cur.dash = append([]float64(nil), pattern...)
}

// SetFont sets the label font size and weight.
func (c *Canvas) SetFont(size float64, bold bool) {
	c.cur.fontSize, c.cur.bold = size, bold
}

// FillRect writes a filled rectangle path.
func (c *Canvas) FillRect(x, y, w, h float64) {
	c.doc.Path(fmt.Sprintf("M%s %sh%sv%sh%sz", num(x), num(y), num(w), num(h), num(-w)), c.fillStyle(c.cur.fill))
}

// StrokeLine writes a stroked segment path.
func (c *Canvas) StrokeLine(x1, y1, x2, y2 float64) {
	c.doc.Path(fmt.Sprintf("M%s %sL%s %s", num(x1), num(y1), num(x2), num(y2)), c.strokeStyle())
}

// FillCircle writes a filled circle path.
func (c *Canvas) FillCircle(x, y, r float64) {
	c.doc.Path(circlePath(x, y, r), c.fillStyle(c.cur.fill))
}

// StrokeCircle writes an unfilled circle outline.
func (c *Canvas) StrokeCircle(x, y, r float64) {
	c.doc.Path(circlePath(x, y, r), c.strokeStyle())
}

// FillWedge writes a pie slice path between two angles in radians.
func (c *Canvas) FillWedge(x, y, r, start, end float64) {
	sx, sy := x+r*math.Cos(start), y+r*math.Sin(start)
	ex, ey := x+r*math.Cos(end), y+r*math.Sin(end)
	large := 0
	if end-start > math.Pi {
		large = 1
	}
	d := fmt.Sprintf("M%s %sL%s %sA%s %s 0 %d 1 %s %sz",
		num(x), num(y), num(sx), num(sy), num(r), num(r), large, num(ex), num(ey))
	c.doc.Path(d, c.fillStyle(c.cur.fill))
}

// Glow draws fading rings; SVG filters are avoided so the file renders the
// same in every viewer.
func (c *Canvas) Glow(x, y, r float64, col color.Color, blur float64) {
	if blur <= 0 {
		return
	}
	base := color.NRGBAModel.Convert(col).(color.NRGBA)
	for i := glowSteps; i >= 1; i-- {
		t := float64(i) / glowSteps
		halo := base
		halo.A = uint8(float64(base.A) * (1 - t) * (1 - t) * 0.5)
		c.doc.Path(circlePath(x, y, r+blur*t/2), c.fillStyle(halo))
	}
}

// MeasureText measures s with the shared label faces.
func (c *Canvas) MeasureText(s string) float64 {
	return fonts.Measure(s, c.cur.fontSize, c.cur.bold)
}

// FillText writes a text element centered on x, hanging from y.
func (c *Canvas) FillText(s string, x, y float64) {
	weight := "normal"
	if c.cur.bold {
		weight = "bold"
	}
	fill, op := paint(c.cur.fill)
	style := fmt.Sprintf("font-family:%s;font-size:%spx;font-weight:%s;text-anchor:middle;dominant-baseline:hanging;fill:%s;fill-opacity:%s",
		fonts.FontFamily, num(c.cur.fontSize), weight, fill, op)
	c.doc.Text(int(math.Round(x)), int(math.Round(y)), s, style)
}

func (c *Canvas) fillStyle(col color.Color) string {
	fill, op := paint(col)
	return fmt.Sprintf("fill:%s;fill-opacity:%s;stroke:none", fill, op)
}

func (c *Canvas) strokeStyle() string {
	stroke, op := paint(c.cur.stroke)
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%s;stroke-width:%s", stroke, op, num(c.cur.lineWidth))
	if len(c.cur.dash) > 0 {
		parts := make([]string, len(c.cur.dash))
		for i, d := range c.cur.dash {
			parts[i] = num(d)
		}
		style += ";stroke-dasharray:" + strings.Join(parts, ",")
	}
	return style
}

func circlePath(x, y, r float64) string {
	return fmt.Sprintf("M%s %sa%s %s 0 1 0 %s 0a%s %s 0 1 0 %s 0z",
		num(x-r), num(y), num(r), num(r), num(2*r), num(r), num(r), num(-2*r))
}

// paint splits a color into a CSS hex value and an opacity.
func paint(col color.Color) (string, string) {
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), num(float64(n.A) / 255)
}

func num(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
