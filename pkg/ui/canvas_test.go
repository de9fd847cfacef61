package ui

import (
	"image/color"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTermCanvasGeometry(t *testing.T) {
	c := NewTermCanvas(10, 4)

	if cols, rows := c.Cells(); cols != 10 || rows != 4 {
		t.Errorf("expected 10x4 cells, got %dx%d", cols, rows)
	}
	if w, h := LogicalSize(10, 4); w != 80 || h != 64 {
		t.Errorf("expected 80x64 logical, got %dx%d", w, h)
	}
	if x, y := CellPoint(2, 1); x != 20 || y != 24 {
		t.Errorf("expected cell center (20, 24), got (%g, %g)", x, y)
	}
	if got := c.MeasureText("hi"); got != 16 {
		t.Errorf("two columns should measure 16 units, got %g", got)
	}
}

func TestTermCanvasComposeHalfBlocks(t *testing.T) {
	c := NewTermCanvas(6, 3)
	c.Clear(color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff})

	out := c.Compose(lipgloss.NewRenderer(io.Discard))
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	for i, l := range lines {
		if n := strings.Count(l, halfBlock); n != 6 {
			t.Errorf("row %d has %d half blocks, want 6", i, n)
		}
	}
}

func TestTermCanvasStampsLabels(t *testing.T) {
	c := NewTermCanvas(10, 4)
	c.Clear(color.Black)
	c.SetFill(color.White)
	c.SetFont(12, true)
	c.FillText("hi", 40, 32)

	labels := c.Labels()
	if len(labels) != 1 {
		t.Fatalf("expected one label, got %d", len(labels))
	}
	if l := labels[0]; l.col != 4 || l.row != 2 || !l.bold {
		t.Errorf("unexpected label placement %+v", l)
	}

	out := c.Compose(lipgloss.NewRenderer(io.Discard))
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[2], "hi") {
		t.Errorf("expected label on row 2, got %q", lines[2])
	}
	if strings.Count(lines[2], halfBlock) != 8 {
		t.Errorf("label should replace two cells, got %q", lines[2])
	}
	if len(c.Labels()) != 0 {
		t.Error("compose should forget labels")
	}
}

func TestTermCanvasClipsLabels(t *testing.T) {
	c := NewTermCanvas(4, 2)
	c.SetFill(color.White)
	c.FillText("far away", 0, 100) // below the grid
	c.FillText("wide", 0, 0)       // starts left of column 0

	out := c.Compose(lipgloss.NewRenderer(io.Discard))
	if strings.Contains(out, "far") {
		t.Error("off-grid label leaked into output")
	}
	for _, l := range strings.Split(out, "\n") {
		if n := lipgloss.Width(l); n != 4 {
			t.Errorf("row width %d, want 4", n)
		}
	}
}

func TestBlend(t *testing.T) {
	bg := color.RGBA{A: 0xff}
	if got := blend(color.NRGBA{R: 200, G: 100, B: 50, A: 0xff}, bg); got != (color.RGBA{R: 200, G: 100, B: 50, A: 0xff}) {
		t.Errorf("opaque fg should win, got %v", got)
	}
	if got := blend(color.NRGBA{R: 200, A: 0x80}, bg); got.R < 99 || got.R > 101 {
		t.Errorf("half alpha should halve, got %v", got)
	}
	if got := hexOf(color.RGBA{R: 0xab, G: 0x01, B: 0xff}); got != "#ab01ff" {
		t.Errorf("unexpected hex %q", got)
	}
}
