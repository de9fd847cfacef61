// Package cli implements the glossgraph command-line interface.
//
// The root command opens the terminal explorer. Subcommands render
// headless snapshots, build the glossary bundle, report on the tag catalog
// and scaffold new term files.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vanderheijden86/glossgraph/internal/datasource"
	"github.com/vanderheijden86/glossgraph/pkg/config"
	"github.com/vanderheijden86/glossgraph/pkg/debug"
	"github.com/vanderheijden86/glossgraph/pkg/model"
	appversion "github.com/vanderheijden86/glossgraph/pkg/version"
)

const appName = "glossgraph"

var (
	version = appversion.Version
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version. main
// calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	if v != "" {
		version = v
	}
	commit = c
	date = d
}

func versionString() string {
	s := fmt.Sprintf("%s %s\n", appName, version)
	if commit != "" {
		s += fmt.Sprintf("commit: %s\n", commit)
	}
	if date != "" {
		s += fmt.Sprintf("built: %s\n", date)
	}
	return s
}

// globals holds state shared by every command.
type globals struct {
	verbose    bool
	dir        string
	configPath string
	cfg        config.Config
}

// setup attaches the logger to the command context and loads the config.
func (g *globals) setup(cmd *cobra.Command) error {
	level := log.InfoLevel
	if g.verbose {
		level = log.DebugLevel
	}
	logger := newLogger(cmd.ErrOrStderr(), level)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, logger))

	var err error
	if g.configPath != "" {
		g.cfg, err = config.LoadFrom(g.configPath)
	} else {
		g.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := g.cfg.Validate(); err != nil {
		logger.Warn("config values outside the supported ranges", "err", err)
	}
	debug.Log("config loaded (glossary dir %q)", g.cfg.Glossary.Dir)
	return nil
}

// glossaryDir is --dir, else the configured directory. Empty means
// discover from the working directory.
func (g *globals) glossaryDir() string {
	if g.dir != "" {
		return g.dir
	}
	return g.cfg.Glossary.Dir
}

// loadGlossary loads the freshest valid glossary source.
func (g *globals) loadGlossary(ctx context.Context) (*model.Glossary, datasource.DataSource, error) {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)
	gl, src, err := datasource.LoadGlossary(ctx, g.glossaryDir())
	if err != nil {
		return nil, src, err
	}
	logger.Debug("selected source", "source", src.String())
	p.done(fmt.Sprintf("Loaded %d terms from %s", gl.Len(), src.Path))
	return gl, src, nil
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{}
	tui := &tuiOpts{}

	root := &cobra.Command{
		Use:   appName + " [dir]",
		Short: "Explore a glossary as a force-directed graph",
		Long: `glossgraph loads a directory of markdown term files (or a built glossary.json)
and lets you explore it in the terminal: a force-directed graph of terms and
their links, a searchable list, and an explore mode where terms reveal
themselves as you follow links.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				g.dir = args[0]
			}
			return runTUI(cmd.Context(), g, tui)
		},
	}
	root.SetVersionTemplate(versionString())

	pf := root.PersistentFlags()
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVarP(&g.dir, "dir", "d", "", "glossary directory or glossary.json (default: $GLOSSARY_DIR, then ./terms)")
	pf.StringVar(&g.configPath, "config", "", "config file (default: "+config.ConfigPath()+")")
	tui.bind(root.Flags())

	root.AddCommand(newTUICmd(g))
	root.AddCommand(newSnapshotCmd(g))
	root.AddCommand(newBuildCmd(g))
	root.AddCommand(newTagsCmd(g))
	root.AddCommand(newNewCmd(g))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the CLI.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), versionString())
			return err
		},
	}
}
