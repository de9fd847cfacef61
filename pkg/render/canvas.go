// Package render paints a graph scene onto a Canvas: background, viewport
// transform, edges and hidden-edge trails, the selection overlay, pie-wedge
// nodes with glow and border, and labels.
package render

import "image/color"

// Canvas is the immediate-mode drawing surface the renderer targets.
// Coordinates are in logical pixels; a backend that keeps a denser backing
// buffer applies the device pixel ratio itself. Save/Restore bracket
// Translate/Scale and style state.
type Canvas interface {
	// Size reports the logical drawing area. A zero dimension means the
	// surface is not ready and nothing is drawn this frame.
	Size() (w, h float64)

	Save()
	Restore()
	Translate(x, y float64)
	Scale(sx, sy float64)

	SetFill(c color.Color)
	SetStroke(c color.Color)
	SetLineWidth(w float64)
	// SetDash sets the stroke dash pattern; no arguments means solid.
	SetDash(pattern ...float64)
	SetFont(size float64, bold bool)

	FillRect(x, y, w, h float64)
	StrokeLine(x1, y1, x2, y2 float64)
	FillCircle(x, y, r float64)
	StrokeCircle(x, y, r float64)
	// FillWedge fills the circular sector from angle start to end
	// (radians, clockwise in screen space, 0 pointing right).
	FillWedge(x, y, r, start, end float64)
	// Glow paints a soft halo of the given blur radius around a circle.
	Glow(x, y, r float64, c color.Color, blur float64)

	MeasureText(s string) float64
	// FillText draws s horizontally centered on x with its top at y.
	FillText(s string, x, y float64)
}
