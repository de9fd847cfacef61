package render

import "image/color"

// Theme is the palette and stroke geometry of a frame.
type Theme struct {
	Background color.NRGBA

	Edge      color.NRGBA
	EdgeWidth float64

	Trail       color.NRGBA
	TrailWidth  float64
	TrailLength float64
	TrailDash   []float64

	SelectedEdge        color.NRGBA
	SelectedEdgeWidth   float64
	SelectedTrail       color.NRGBA
	SelectedTrailWidth  float64
	SelectedTrailLength float64
	SelectedTrailDash   []float64

	GlowSelected  color.NRGBA
	BlurSelected  float64
	GlowConnected color.NRGBA
	BlurConnected float64
	GlowHovered   color.NRGBA
	BlurHovered   float64

	BorderActive        color.NRGBA
	BorderIdle          color.NRGBA
	BorderSelectedWidth float64
	BorderWidth         float64

	NodeFallback color.NRGBA

	LabelBg       color.NRGBA
	LabelText     color.NRGBA
	LabelSize     float64
	LabelBoldSize float64
	// Reduced opacity used when every label is shown for orientation.
	LabelBgDim   uint8
	LabelTextDim uint8
}

// DefaultTheme is the dark parchment palette of the graph view.
func DefaultTheme() Theme {
	return Theme{
		Background: color.NRGBA{0x16, 0x1f, 0x32, 0xff},

		Edge:      rgba(255, 255, 255, 0.15),
		EdgeWidth: 1.5,

		Trail:       rgba(255, 255, 255, 0.1),
		TrailWidth:  1,
		TrailLength: 40,
		TrailDash:   []float64{3, 3},

		SelectedEdge:        rgba(194, 143, 44, 0.6),
		SelectedEdgeWidth:   2.5,
		SelectedTrail:       rgba(194, 143, 44, 0.3),
		SelectedTrailWidth:  2,
		SelectedTrailLength: 50,
		SelectedTrailDash:   []float64{5, 5},

		GlowSelected:  color.NRGBA{0xe0, 0x7a, 0x5f, 0xff},
		BlurSelected:  20,
		GlowConnected: color.NRGBA{0xf0, 0xa8, 0x96, 0xff},
		BlurConnected: 10,
		GlowHovered:   color.NRGBA{0xa0, 0xa0, 0xa0, 0xff},
		BlurHovered:   10,

		BorderActive:        color.NRGBA{0xc2, 0x8f, 0x2c, 0xff},
		BorderIdle:          rgba(255, 255, 255, 0.3),
		BorderSelectedWidth: 3,
		BorderWidth:         1.5,

		NodeFallback: color.NRGBA{0x64, 0x74, 0x8b, 0xff},

		LabelBg:       rgba(30, 45, 69, 0.95),
		LabelText:     rgba(255, 255, 255, 1),
		LabelSize:     12,
		LabelBoldSize: 14,
		LabelBgDim:    alpha(0.8),
		LabelTextDim:  alpha(0.7),
	}
}

func rgba(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: alpha(a)}
}

func alpha(a float64) uint8 {
	return uint8(a*255 + 0.5)
}

// WithAlpha returns c with its alpha replaced.
func WithAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}
