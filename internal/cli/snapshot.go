package cli

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/glossgraph/internal/datasource"
	"github.com/vanderheijden86/glossgraph/pkg/config"
	"github.com/vanderheijden86/glossgraph/pkg/discovery"
	"github.com/vanderheijden86/glossgraph/pkg/export"
	"github.com/vanderheijden86/glossgraph/pkg/graphview"
	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/render"
	"github.com/vanderheijden86/glossgraph/pkg/tags"
	"github.com/vanderheijden86/glossgraph/pkg/ui"
)

type snapshotOpts struct {
	output   string
	format   string
	width    int
	height   int
	ticks    int
	seed     int64
	zoom     float64
	dpr      float64
	title    string
	query    string
	tags     []string
	selected string
	session  bool
}

func newSnapshotCmd(g *globals) *cobra.Command {
	opts := &snapshotOpts{}
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Settle the graph headlessly and write an image or export",
		Long: `Run the force simulation without a terminal and write the result.

The format follows the output extension: .png and .svg draw the graph,
.json writes the settled node positions, .dot and .mmd write the link
structure for Graphviz and Mermaid.`,
		Example: `  glossgraph snapshot -o glossary.png
  glossgraph snapshot -o layout.json --ticks 600 --seed 7
  glossgraph snapshot -o vision.svg --tags vision --selected ward`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd, g, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "glossary.png", "output file")
	f.StringVar(&opts.format, "format", "", "png, svg, json, dot or mermaid (default: from the output extension)")
	f.IntVar(&opts.width, "width", export.DefaultWidth, "canvas width in logical pixels")
	f.IntVar(&opts.height, "height", export.DefaultHeight, "canvas height in logical pixels")
	f.IntVar(&opts.ticks, "ticks", export.DefaultTicks, "simulation frames to run before drawing")
	f.Int64Var(&opts.seed, "seed", 0, "random seed for spawn positions (default: time based)")
	f.Float64Var(&opts.zoom, "zoom", 0, "zoom factor (default: 1)")
	f.Float64Var(&opts.dpr, "dpr", 1, "device pixel ratio for png output")
	f.StringVar(&opts.title, "title", "", "svg document title")
	f.StringVarP(&opts.query, "query", "q", "", "only show terms matching this search")
	f.StringSliceVarP(&opts.tags, "tags", "t", nil, "only show terms carrying every listed tag")
	f.StringVar(&opts.selected, "selected", "", "term id to highlight")
	f.BoolVar(&opts.session, "session", false, "only draw terms discovered in the saved explore session")
	return cmd
}

func runSnapshot(cmd *cobra.Command, g *globals, opts *snapshotOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	gl, _, err := g.loadGlossary(ctx)
	if err != nil {
		return err
	}
	if opts.selected != "" && !gl.Has(opts.selected) {
		return fmt.Errorf("unknown term %q", opts.selected)
	}

	views := model.Views(gl.Terms)
	if opts.session {
		if views, err = sessionViews(ctx, gl); err != nil {
			return err
		}
	}

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	engine := append(ui.EngineOptions(g.cfg), graphview.WithRand(rand.New(rand.NewSource(seed))))

	format, err := export.ParseFormat(opts.format, opts.output)
	if err != nil {
		return err
	}

	p := newProgress(logger)
	logger.Debug("rendering snapshot", "format", format, "terms", len(views), "seed", seed)
	res, err := export.SaveSnapshot(ctx, opts.output, views, tags.NewCatalog(gl.Tags), export.SnapshotOptions{
		Format:     format,
		Width:      opts.width,
		Height:     opts.height,
		PixelRatio: opts.dpr,
		Ticks:      opts.ticks,
		Title:      opts.title,
		Filter:     render.Filter{Query: opts.query, Tags: opts.tags},
		Selected:   opts.selected,
		Zoom:       opts.zoom,
		Engine:     engine,
	})
	if err != nil {
		return err
	}
	p.done("Snapshot rendered")

	out := cmd.OutOrStdout()
	printSuccess(out, "Wrote %s", opts.output)
	switch res.Format {
	case export.FormatDOT, export.FormatMermaid:
		printKeyValue(out, 8, "terms", fmt.Sprint(len(views)))
	default:
		printKeyValue(out, 8, "ticks", fmt.Sprint(res.Ticks))
		printKeyValue(out, 8, "energy", fmt.Sprintf("%.3f", res.Energy))
		visible := 0
		for _, n := range res.Layout.Nodes {
			if n.Visible {
				visible++
			}
		}
		printKeyValue(out, 8, "visible", fmt.Sprintf("%d/%d", visible, len(res.Layout.Nodes)))
		if opts.ticks > 0 && res.Ticks == opts.ticks {
			logger.Debug("simulation still moving at the frame limit, raise --ticks for a calmer layout")
		}
	}
	return nil
}

// sessionViews restricts the glossary to what the saved explore session
// has revealed.
func sessionViews(ctx context.Context, gl *model.Glossary) ([]model.TermView, error) {
	path := filepath.Join(config.StateDir(), datasource.SessionFile)
	store, err := datasource.OpenStore(path)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	defer store.Close()
	saved, err := store.LoadSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	sess := discovery.New(gl)
	sess.Restore(saved.Discovery)
	sess.SetMode(discovery.ModeExplore)
	return sess.VisibleViews(), nil
}
