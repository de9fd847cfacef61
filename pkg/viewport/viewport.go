// Package viewport maps between screen and world coordinates through a pan
// offset and a zoom factor: screen = world*zoom + pan.
package viewport

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Default zoom limits and step factors.
const (
	DefaultMinZoom = 0.5
	DefaultMaxZoom = 3.0

	WheelInFactor   = 1.1
	WheelOutFactor  = 0.9
	ButtonInFactor  = 1.2
	ButtonOutFactor = 0.8
)

// Limits bounds the zoom factor.
type Limits struct {
	MinZoom float64 `yaml:"min_zoom" json:"minZoom"`
	MaxZoom float64 `yaml:"max_zoom" json:"maxZoom"`
}

// DefaultLimits returns the [0.5, 3] zoom range.
func DefaultLimits() Limits {
	return Limits{MinZoom: DefaultMinZoom, MaxZoom: DefaultMaxZoom}
}

// Clamp bounds z to the limits.
func (l Limits) Clamp(z float64) float64 {
	return math.Max(l.MinZoom, math.Min(l.MaxZoom, z))
}

// Transform is the pan/zoom state for one view session.
type Transform struct {
	limits Limits
	zoom   float64
	pan    r2.Vec
}

// New returns an identity transform with the given limits.
func New(limits Limits) *Transform {
	if limits.MinZoom <= 0 || limits.MaxZoom < limits.MinZoom {
		limits = DefaultLimits()
	}
	return &Transform{limits: limits, zoom: 1}
}

// Zoom returns the current scale.
func (t *Transform) Zoom() float64 { return t.zoom }

// Pan returns the current screen-space offset.
func (t *Transform) Pan() r2.Vec { return t.pan }

// Limits returns the zoom bounds.
func (t *Transform) Limits() Limits { return t.limits }

// ToWorld inverts the transform for a screen point.
func (t *Transform) ToWorld(screen r2.Vec) r2.Vec {
	return r2.Scale(1/t.zoom, r2.Sub(screen, t.pan))
}

// ToScreen applies the transform to a world point.
func (t *Transform) ToScreen(world r2.Vec) r2.Vec {
	return r2.Add(r2.Scale(t.zoom, world), t.pan)
}

// SetZoom sets the scale, clamped, keeping the pan offset. It reports
// whether the zoom changed.
func (t *Transform) SetZoom(z float64) bool {
	z = t.limits.Clamp(z)
	if z == t.zoom {
		return false
	}
	t.zoom = z
	return true
}

// ZoomBy multiplies the scale by factor, clamped, keeping the pan offset.
func (t *Transform) ZoomBy(factor float64) bool {
	return t.SetZoom(t.zoom * factor)
}

// ZoomAt multiplies the scale by factor and corrects the pan so the world
// point under anchor stays under anchor.
func (t *Transform) ZoomAt(anchor r2.Vec, factor float64) bool {
	world := t.ToWorld(anchor)
	if !t.SetZoom(t.zoom * factor) {
		return false
	}
	t.pan = r2.Sub(anchor, r2.Scale(t.zoom, world))
	return true
}

// WheelFactor maps a wheel delta to a zoom step: positive deltas zoom out.
func WheelFactor(deltaY float64) float64 {
	if deltaY > 0 {
		return WheelOutFactor
	}
	return WheelInFactor
}

// PanBy adds a screen-space delta to the pan offset. It is not divided by
// zoom.
func (t *Transform) PanBy(delta r2.Vec) {
	t.pan = r2.Add(t.pan, delta)
}

// SetPan replaces the pan offset.
func (t *Transform) SetPan(p r2.Vec) { t.pan = p }

// Reset restores zoom 1 and pan (0, 0).
func (t *Transform) Reset() {
	t.zoom = 1
	t.pan = r2.Vec{}
}
