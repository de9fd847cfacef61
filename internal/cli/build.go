package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vanderheijden86/glossgraph/internal/datasource"
	"github.com/vanderheijden86/glossgraph/pkg/discovery"
	"github.com/vanderheijden86/glossgraph/pkg/loader"
	"github.com/vanderheijden86/glossgraph/pkg/model"
)

// ErrStaleBundle is returned by build --check when the bundle no longer
// matches the term files.
var ErrStaleBundle = errors.New("bundle is out of date")

type buildOpts struct {
	output string
	stats  bool
	check  bool
	json   bool
	hubs   int
}

func newBuildCmd(g *globals) *cobra.Command {
	opts := &buildOpts{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the term files into glossary.json",
		Long: `Parse every term file, detect automatic links and write a single
glossary.json bundle. The explorer prefers the bundle when it is at least
as new as the term files.`,
		Example: `  glossgraph build
  glossgraph build --check
  glossgraph build --stats --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, g, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "bundle path (default: glossary.json next to the term directory)")
	f.BoolVar(&opts.stats, "stats", false, "print link statistics instead of writing the bundle")
	f.BoolVar(&opts.check, "check", false, "fail if the existing bundle differs from the term files")
	f.BoolVar(&opts.json, "json", false, "print --stats as JSON")
	f.IntVar(&opts.hubs, "hubs", 5, "number of best connected terms listed by --stats")
	return cmd
}

func runBuild(cmd *cobra.Command, g *globals, opts *buildOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	out := cmd.OutOrStdout()

	dir := g.glossaryDir()
	if dir == "" {
		var err error
		if dir, err = loader.FindGlossaryDir(""); err != nil {
			return err
		}
	}
	if info, err := os.Stat(dir); err != nil {
		return fmt.Errorf("glossary source: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("%s is a bundle, build needs the term directory", dir)
	}

	p := newProgress(logger)
	gl, err := loader.Load(ctx, dir)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Parsed %d term files", gl.Len()))

	if opts.stats {
		return printStats(out, gl, opts)
	}

	bundle := opts.output
	if bundle == "" {
		bundle = filepath.Join(filepath.Dir(filepath.Clean(dir)), loader.BundleName)
	}

	if opts.check {
		existing, err := loader.LoadBundle(bundle)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStaleBundle, err)
		}
		diff := datasource.DetectInconsistencies(gl, existing, dir, bundle)
		if diff.HasInconsistencies() {
			printWarning(out, "%s", strings.TrimRight(diff.Summary(), "\n"))
			return ErrStaleBundle
		}
		printSuccess(out, "%s", diff.Summary())
		return nil
	}

	if err := loader.SaveBundle(bundle, gl); err != nil {
		return err
	}
	printSuccess(out, "Built %d terms", gl.Len())
	printFile(out, bundle)
	return nil
}

func printStats(out io.Writer, gl *model.Glossary, opts *buildOpts) error {
	stats := discovery.BuildGraph(gl).Stats(gl, opts.hubs)
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}
	const w = 12
	printKeyValue(out, w, "terms", fmt.Sprint(stats.Terms))
	printKeyValue(out, w, "links", fmt.Sprintf("%d (%d automatic)", stats.Links, stats.AutoLinks))
	printKeyValue(out, w, "edges", fmt.Sprint(stats.Edges))
	printKeyValue(out, w, "dangling", fmt.Sprint(stats.Dangling))
	printKeyValue(out, w, "isolated", fmt.Sprint(stats.Isolated))
	printKeyValue(out, w, "components", fmt.Sprintf("%d (largest %d)", stats.Components, stats.Largest))
	printKeyValue(out, w, "degree", fmt.Sprintf("max %d, mean %.2f", stats.MaxDegree, stats.MeanDegree))
	if len(stats.Hubs) > 0 {
		printKeyValue(out, w, "hubs", strings.Join(stats.Hubs, ", "))
	}
	return nil
}
