package render

import (
	"fmt"
	"image/color"
	"strings"
)

// Op is one recorded draw call.
type Op struct {
	Kind   string // rect, line, circle, ring, wedge, glow, text
	Args   []float64
	Text   string
	Fill   color.Color
	Stroke color.Color
	Width  float64
	Dash   []float64
	Font   float64
	Bold   bool
}

func (o Op) String() string {
	return fmt.Sprintf("%s%v%s", o.Kind, o.Args, o.Text)
}

// Recorder is a Canvas that keeps every call instead of drawing. Text is
// measured at a fixed advance per rune. It backs renderer tests and
// the debug dump of a frame.
type Recorder struct {
	W, H    float64
	Advance float64
	Ops     []Op

	fill, stroke color.Color
	width        float64
	dash         []float64
	font         float64
	bold         bool
	depth        int
	saved        []recorderState
}

type recorderState struct {
	fill, stroke color.Color
	width        float64
	dash         []float64
	font         float64
	bold         bool
}

// NewRecorder returns a recorder of the given logical size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h, Advance: 7}
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

func (r *Recorder) Save() {
	r.saved = append(r.saved, recorderState{r.fill, r.stroke, r.width, r.dash, r.font, r.bold})
	r.depth++
}

func (r *Recorder) Restore() {
	if len(r.saved) == 0 {
		return
	}
	st := r.saved[len(r.saved)-1]
	r.saved = r.saved[:len(r.saved)-1]
	r.fill, r.stroke, r.width, r.dash, r.font, r.bold = st.fill, st.stroke, st.width, st.dash, st.font, st.bold
	r.depth--
}

func (r *Recorder) Translate(x, y float64) { r.add(Op{Kind: "translate", Args: []float64{x, y}}) }
func (r *Recorder) Scale(sx, sy float64)   { r.add(Op{Kind: "scale", Args: []float64{sx, sy}}) }

func (r *Recorder) SetFill(c color.Color)   { r.fill = c }
func (r *Recorder) SetStroke(c color.Color) { r.stroke = c }
func (r *Recorder) SetLineWidth(w float64)  { r.width = w }

func (r *Recorder) SetDash(pattern ...float64) {
	r.dash = append([]float64(nil), pattern...)
}

func (r *Recorder) SetFont(size float64, bold bool) {
	r.font, r.bold = size, bold
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.add(Op{Kind: "rect", Args: []float64{x, y, w, h}, Fill: r.fill})
}

func (r *Recorder) StrokeLine(x1, y1, x2, y2 float64) {
	r.add(Op{Kind: "line", Args: []float64{x1, y1, x2, y2}, Stroke: r.stroke, Width: r.width, Dash: r.dash})
}

func (r *Recorder) FillCircle(x, y, rad float64) {
	r.add(Op{Kind: "circle", Args: []float64{x, y, rad}, Fill: r.fill})
}

func (r *Recorder) StrokeCircle(x, y, rad float64) {
	r.add(Op{Kind: "ring", Args: []float64{x, y, rad}, Stroke: r.stroke, Width: r.width})
}

func (r *Recorder) FillWedge(x, y, rad, start, end float64) {
	r.add(Op{Kind: "wedge", Args: []float64{x, y, rad, start, end}, Fill: r.fill})
}

func (r *Recorder) Glow(x, y, rad float64, c color.Color, blur float64) {
	r.add(Op{Kind: "glow", Args: []float64{x, y, rad, blur}, Fill: c})
}

func (r *Recorder) MeasureText(s string) float64 {
	return float64(len([]rune(s))) * r.Advance
}

func (r *Recorder) FillText(s string, x, y float64) {
	r.add(Op{Kind: "text", Args: []float64{x, y}, Text: s, Fill: r.fill, Font: r.font, Bold: r.bold})
}

func (r *Recorder) add(op Op) { r.Ops = append(r.Ops, op) }

// Depth is the number of unmatched Save calls.
func (r *Recorder) Depth() int { return r.depth }

// Count returns how many ops of kind were recorded.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Lines returns the recorded line ops stroked with c.
func (r *Recorder) Lines(c color.Color) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == "line" && sameColor(op.Stroke, c) {
			out = append(out, op)
		}
	}
	return out
}

// Reset drops recorded ops.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Dump renders the op list one per line.
func (r *Recorder) Dump() string {
	var sb strings.Builder
	for _, op := range r.Ops {
		sb.WriteString(op.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}
