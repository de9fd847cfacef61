// Package export writes the term graph outside the TUI: settled snapshots
// (PNG, SVG), layout JSON, and DOT or Mermaid text for other tools.
package export

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vanderheijden86/glossgraph/pkg/debug"
	"github.com/vanderheijden86/glossgraph/pkg/frame"
	"github.com/vanderheijden86/glossgraph/pkg/graphview"
	"github.com/vanderheijden86/glossgraph/pkg/metrics"
	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/render"
	"github.com/vanderheijden86/glossgraph/pkg/render/raster"
	"github.com/vanderheijden86/glossgraph/pkg/render/vector"
)

// Format is an output format.
type Format string

const (
	FormatPNG     Format = "png"
	FormatSVG     Format = "svg"
	FormatJSON    Format = "json"
	FormatDOT     Format = "dot"
	FormatMermaid Format = "mermaid"
)

// Formats lists every supported format.
var Formats = []Format{FormatPNG, FormatSVG, FormatJSON, FormatDOT, FormatMermaid}

// ErrUnknownFormat is returned for formats outside Formats.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat resolves an explicit format name, or infers one from the
// output path's extension when name is empty.
func ParseFormat(name, path string) (Format, error) {
	name = strings.ToLower(strings.TrimPrefix(name, "."))
	if name == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".png":
			return FormatPNG, nil
		case ".svg":
			return FormatSVG, nil
		case ".json":
			return FormatJSON, nil
		case ".dot", ".gv":
			return FormatDOT, nil
		case ".mmd", ".mermaid":
			return FormatMermaid, nil
		case "":
			return FormatPNG, nil
		}
		return "", fmt.Errorf("%w for %s (want one of %v)", ErrUnknownFormat, path, Formats)
	}
	for _, f := range Formats {
		if Format(name) == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q (want one of %v)", ErrUnknownFormat, name, Formats)
}

// Default snapshot geometry.
const (
	DefaultWidth  = 1200
	DefaultHeight = 800
	DefaultTicks  = 300
)

// SnapshotOptions controls a headless render.
type SnapshotOptions struct {
	Format     Format
	Width      int
	Height     int
	PixelRatio float64
	// Ticks is the number of frames drained before the final paint.
	Ticks    int
	Title    string
	Filter   render.Filter
	Selected string
	Zoom     float64
	// Engine options, e.g. physics constants or a seeded random source.
	Engine []graphview.Option
}

func (o SnapshotOptions) withDefaults() SnapshotOptions {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.PixelRatio <= 0 {
		o.PixelRatio = 1
	}
	if o.Ticks < 0 {
		o.Ticks = 0
	}
	if o.Format == "" {
		o.Format = FormatPNG
	}
	return o
}

// SnapshotResult describes a finished render.
type SnapshotResult struct {
	Format Format
	Ticks  int
	Energy float64
	Stats  render.FrameStats
	Layout Layout
}

// Settle builds an engine over terms and drains a frame queue for
// opts.Ticks frames, or until ctx is done. The engine is returned mounted
// with no canvas attached; its gravity center is the middle of the
// requested size.
func Settle(ctx context.Context, terms []model.TermView, colors render.TagColors, opts SnapshotOptions) (*graphview.Engine, int, error) {
	opts = opts.withDefaults()
	q := frame.NewQueue()
	e := graphview.New(q, colors, opts.Engine...)
	// Attaching sets the center; detaching keeps it and pauses painting
	// while the layout settles.
	e.Attach(render.NewRecorder(float64(opts.Width), float64(opts.Height)))
	e.Attach(nil)
	e.SetTerms(terms)
	e.SetFilter(opts.Filter)
	if opts.Zoom > 0 {
		e.SetZoom(opts.Zoom)
	}
	e.Mount()

	now := time.Unix(0, 0)
	ticks := 0
	for ticks < opts.Ticks {
		if err := ctx.Err(); err != nil {
			return e, ticks, err
		}
		if q.Pending() == 0 {
			break
		}
		now = now.Add(time.Second / 60)
		q.RunFrame(now)
		ticks++
	}
	// Selecting after settling keeps the layout independent of selection.
	if opts.Selected != "" {
		e.SetSelectedNode(opts.Selected)
	}
	return e, ticks, nil
}

// RenderSnapshot settles the graph and writes one frame, or a text export,
// to w.
func RenderSnapshot(ctx context.Context, w io.Writer, terms []model.TermView, colors render.TagColors, opts SnapshotOptions) (*SnapshotResult, error) {
	defer metrics.Timer(metrics.Snapshot)()
	opts = opts.withDefaults()

	res := &SnapshotResult{Format: opts.Format}
	switch opts.Format {
	case FormatDOT:
		_, err := io.WriteString(w, GenerateDOT(terms, colors))
		return res, err
	case FormatMermaid:
		_, err := io.WriteString(w, GenerateMermaid(terms, colors))
		return res, err
	case FormatPNG, FormatSVG, FormatJSON:
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, opts.Format)
	}

	e, ticks, err := Settle(ctx, terms, colors, opts)
	if err != nil {
		return nil, err
	}
	e.Unmount()
	res.Ticks = ticks
	res.Energy = e.Energy()
	res.Layout = LayoutOf(e, opts.Width, opts.Height)
	res.Layout.Ticks = ticks

	switch opts.Format {
	case FormatJSON:
		err = WriteLayout(w, res.Layout)
	case FormatSVG:
		c := vector.New(w, opts.Width, opts.Height)
		if opts.Title != "" {
			c.Title(opts.Title)
		}
		e.Attach(c)
		res.Stats = e.Draw()
		c.Close()
	case FormatPNG:
		c := raster.New(opts.Width, opts.Height, opts.PixelRatio)
		e.Attach(c)
		res.Stats = e.Draw()
		err = c.EncodePNG(w)
	}
	if err != nil {
		return nil, fmt.Errorf("writing %s: %w", opts.Format, err)
	}
	debug.With("snapshot", "format", opts.Format, "ticks", ticks, "energy", res.Energy, "visible", res.Stats.Visible)
	return res, nil
}

// SaveSnapshot renders to path, creating parent directories. The format is
// inferred from the extension when opts.Format is empty.
func SaveSnapshot(ctx context.Context, path string, terms []model.TermView, colors render.TagColors, opts SnapshotOptions) (*SnapshotResult, error) {
	if path == "" {
		return nil, fmt.Errorf("output path is required")
	}
	format, err := ParseFormat(string(opts.Format), path)
	if err != nil {
		return nil, err
	}
	opts.Format = format

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create parent dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	res, err := RenderSnapshot(ctx, bw, terms, colors, opts)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, err
	}
	return res, nil
}
