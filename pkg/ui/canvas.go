package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/glossgraph/pkg/render/raster"
)

// One terminal cell covers cellWidth x cellHeight logical pixels and shows
// two stacked device pixels through the upper half block.
const (
	cellWidth  = 8
	cellHeight = 16
	cellDPR    = 1.0 / cellWidth
	halfBlock  = "▀"
)

// cellLabel is text stamped over the pixel grid after rasterization.
type cellLabel struct {
	text     string
	col, row int
	fg       color.NRGBA
	bold     bool
}

// TermCanvas rasterizes frames with gg at one device pixel per half cell
// and keeps labels as real text, since glyphs at that size are unreadable.
type TermCanvas struct {
	*raster.Canvas

	fill   color.Color
	bold   bool
	labels []cellLabel
}

// NewTermCanvas returns a canvas covering cols x rows terminal cells.
func NewTermCanvas(cols, rows int) *TermCanvas {
	return &TermCanvas{Canvas: raster.New(cols*cellWidth, rows*cellHeight, cellDPR)}
}

// LogicalSize converts a cell area to the logical size the engine sees.
func LogicalSize(cols, rows int) (w, h int) {
	return cols * cellWidth, rows * cellHeight
}

// CellPoint maps the center of a cell to logical canvas coordinates.
func CellPoint(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * cellWidth, (float64(row) + 0.5) * cellHeight
}

// Cells reports the grid the backing buffer covers.
func (c *TermCanvas) Cells() (cols, rows int) {
	b := c.Image().Bounds()
	return b.Dx(), b.Dy() / 2
}

func (c *TermCanvas) SetFill(col color.Color) {
	c.fill = col
	c.Canvas.SetFill(col)
}

func (c *TermCanvas) SetFont(size float64, bold bool) {
	c.bold = bold
	c.Canvas.SetFont(size, bold)
}

// MeasureText returns the width of s in user units: one cell per column
// of display width.
func (c *TermCanvas) MeasureText(s string) float64 {
	scale := c.UserScale()
	if scale <= 0 {
		return 0
	}
	return float64(runewidth.StringWidth(s)) / scale
}

// FillText records s centered on x with its top at y.
func (c *TermCanvas) FillText(s string, x, y float64) {
	dx, dy := c.DevicePoint(x, y)
	w := runewidth.StringWidth(s)
	fg := color.NRGBAModel.Convert(c.fill).(color.NRGBA)
	c.labels = append(c.labels, cellLabel{
		text: s,
		col:  int(math.Round(dx - float64(w)/2)),
		row:  int(math.Floor(dy / 2)),
		fg:   fg,
		bold: c.bold,
	})
}

// Labels returns the text recorded since the last Compose.
func (c *TermCanvas) Labels() []cellLabel { return c.labels }

type cell struct {
	top, bottom color.RGBA
	ch          string // empty for pixels, text otherwise
	cont        bool   // trailing column of a wide rune
	fg          color.RGBA
	bold        bool
}

// Compose turns the backing buffer and recorded labels into styled
// terminal rows, then forgets the labels.
func (c *TermCanvas) Compose(r *lipgloss.Renderer) string {
	img := c.Image()
	cols, rows := c.Cells()
	if cols == 0 || rows == 0 {
		c.labels = c.labels[:0]
		return ""
	}

	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, cols)
		for x := range grid[y] {
			grid[y][x] = cell{top: pixel(img, x, 2*y), bottom: pixel(img, x, 2*y+1)}
		}
	}
	for _, l := range c.labels {
		if l.row < 0 || l.row >= rows {
			continue
		}
		x := l.col
		for _, ch := range l.text {
			w := runewidth.RuneWidth(ch)
			if x >= 0 && x+w <= cols {
				cl := &grid[l.row][x]
				cl.ch = string(ch)
				cl.fg = blend(l.fg, cl.top)
				cl.bold = l.bold
				for i := 1; i < w; i++ {
					grid[l.row][x+i].cont = true
				}
			}
			x += w
		}
	}
	c.labels = c.labels[:0]

	var sb strings.Builder
	for y, line := range grid {
		if y > 0 {
			sb.WriteByte('\n')
		}
		writeRow(&sb, r, line)
	}
	return sb.String()
}

// writeRow emits runs of cells that share colors as one styled segment.
func writeRow(sb *strings.Builder, r *lipgloss.Renderer, line []cell) {
	var run strings.Builder
	var cur cell
	flush := func() {
		if run.Len() == 0 {
			return
		}
		st := r.NewStyle()
		if cur.ch == "" {
			st = st.Foreground(lipgloss.Color(hexOf(cur.top))).Background(lipgloss.Color(hexOf(cur.bottom)))
		} else {
			st = st.Foreground(lipgloss.Color(hexOf(cur.fg))).Background(lipgloss.Color(hexOf(cur.top))).Bold(cur.bold)
		}
		sb.WriteString(st.Render(run.String()))
		run.Reset()
	}
	for i, cl := range line {
		if cl.cont {
			continue
		}
		if i == 0 || !sameStyle(cur, cl) {
			flush()
			cur = cl
		}
		if cl.ch == "" {
			run.WriteString(halfBlock)
		} else {
			run.WriteString(cl.ch)
		}
	}
	flush()
}

func sameStyle(a, b cell) bool {
	if (a.ch == "") != (b.ch == "") {
		return false
	}
	if a.ch == "" {
		return a.top == b.top && a.bottom == b.bottom
	}
	return a.fg == b.fg && a.top == b.top && a.bold == b.bold
}

func pixel(img *image.RGBA, x, y int) color.RGBA {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return color.RGBA{A: 0xff}
	}
	return img.RGBAAt(x, y)
}

// blend composites fg over an opaque bg.
func blend(fg color.NRGBA, bg color.RGBA) color.RGBA {
	a := float64(fg.A) / 255
	mix := func(f, b uint8) uint8 {
		return uint8(math.Round(float64(f)*a + float64(b)*(1-a)))
	}
	return color.RGBA{mix(fg.R, bg.R), mix(fg.G, bg.G), mix(fg.B, bg.B), 0xff}
}

func hexOf(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
