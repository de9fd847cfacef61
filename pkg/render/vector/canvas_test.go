package vector

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/physics"
	"github.com/vanderheijden86/glossgraph/pkg/render"
)

func TestNum(t *testing.T) {
	cases := map[float64]string{1: "1", 1.5: "1.5", 0.126: "0.13", -2: "-2", 0: "0"}
	for in, want := range cases {
		if got := num(in); got != want {
			t.Errorf("num(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestPaint(t *testing.T) {
	hex, op := paint(color.NRGBA{0xc2, 0x8f, 0x2c, 153})
	if hex != "#c28f2c" || op != "0.6" {
		t.Errorf("paint = %s %s", hex, op)
	}
}

func TestSaveRestoreClosesGroups(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, 100, 100)
	c.Save()
	c.Translate(5, 5)
	c.Scale(2, 2)
	c.Restore()
	c.Close()
	out := buf.String()
	if strings.Count(out, "<g ") != strings.Count(out, "</g>") {
		t.Errorf("unbalanced groups:\n%s", out)
	}
	if !strings.Contains(out, `translate(5,5)`) || !strings.Contains(out, `scale(2,2)`) {
		t.Errorf("missing transforms:\n%s", out)
	}
}

func TestRenderedSceneIsSVG(t *testing.T) {
	nodes := []physics.SimNode{
		{ID: "ward", Pos: r2.Vec{X: 50, Y: 50}, Radius: 8},
		{ID: "vision", Pos: r2.Vec{X: 150, Y: 50}, Radius: 8},
	}
	terms := map[string]model.TermView{
		"ward":   {ID: "ward", Label: "Ward <&>", Tags: []string{"vision", "item"}, Links: []string{"vision", "bush"}},
		"vision": {ID: "vision", Label: "Vision", Tags: []string{"vision"}},
	}
	var buf bytes.Buffer
	c := New(&buf, 200, 120)
	stats := render.NewRenderer(render.ColorFunc(func(string) color.NRGBA {
		return color.NRGBA{0x63, 0x66, 0xf1, 0xff}
	})).Draw(c, render.Scene{Nodes: nodes, Terms: terms, Zoom: 1, Selected: "ward"})
	c.Close()

	if stats.Edges != 1 || stats.Trails["ward"] != 1 {
		t.Errorf("stats = %+v", stats)
	}
	out := buf.String()
	for _, want := range []string{"<svg", "</svg>", "#161f32", "stroke-dasharray:3,3", "stroke-dasharray:5,5", "Ward &lt;&amp;&gt;"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Count(out, "<g ") != strings.Count(out, "</g>") {
		t.Error("unbalanced groups")
	}
}
