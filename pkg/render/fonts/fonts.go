// Package fonts provides the label faces shared by the raster and vector
// canvases, so both measure text the same way.
package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontFamily is the CSS family written into SVG text.
const FontFamily = `'Go', Georgia, serif`

type key struct {
	size float64
	bold bool
}

var (
	mu    sync.Mutex
	faces = map[key]font.Face{}

	parsedOnce      sync.Once
	regular, boldfc *opentype.Font
	parseErr        error
)

func parse() {
	regular, parseErr = opentype.Parse(goregular.TTF)
	if parseErr != nil {
		return
	}
	boldfc, parseErr = opentype.Parse(gobold.TTF)
}

// Face returns a cached face for the size in pixels. If the embedded fonts
// cannot be parsed it falls back to the fixed 7x13 bitmap face.
func Face(size float64, bold bool) font.Face {
	mu.Lock()
	defer mu.Unlock()
	k := key{size, bold}
	if f, ok := faces[k]; ok {
		return f
	}
	parsedOnce.Do(parse)
	var f font.Face = basicfont.Face7x13
	if parseErr == nil {
		src := regular
		if bold {
			src = boldfc
		}
		nf, err := opentype.NewFace(src, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			f = nf
		}
	}
	faces[k] = f
	return f
}

// Measure returns the advance width of s in pixels.
func Measure(s string, size float64, bold bool) float64 {
	adv := font.MeasureString(Face(size, bold), s)
	return fixedToFloat(adv)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
