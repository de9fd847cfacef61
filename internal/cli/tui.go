package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vanderheijden86/glossgraph/internal/datasource"
	"github.com/vanderheijden86/glossgraph/pkg/config"
	"github.com/vanderheijden86/glossgraph/pkg/discovery"
	"github.com/vanderheijden86/glossgraph/pkg/ui"
	"github.com/vanderheijden86/glossgraph/pkg/watcher"
)

type tuiOpts struct {
	view         string
	mode         string
	noWatch      bool
	resetSession bool
	allLabels    bool
}

func (o *tuiOpts) bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.view, "view", "", "start in the graph or list view")
	fs.StringVar(&o.mode, "mode", "", "discovery mode: explore or viewAll")
	fs.BoolVar(&o.noWatch, "no-watch", false, "do not reload when term files change")
	fs.BoolVar(&o.resetSession, "reset-session", false, "forget discovered terms and start fresh")
	fs.BoolVar(&o.allLabels, "all-labels", false, "label every node, not only the selection and its neighbors")
}

func newTUICmd(g *globals) *cobra.Command {
	opts := &tuiOpts{}
	cmd := &cobra.Command{
		Use:   "tui [dir]",
		Short: "Open the interactive explorer (default command)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				g.dir = args[0]
			}
			return runTUI(cmd.Context(), g, opts)
		},
	}
	opts.bind(cmd.Flags())
	return cmd
}

func runTUI(ctx context.Context, g *globals, opts *tuiOpts) error {
	logger := loggerFromContext(ctx)

	cfg := g.cfg
	if opts.view != "" {
		switch opts.view {
		case config.ViewGraph, config.ViewList:
			cfg.UI.DefaultView = opts.view
		default:
			return fmt.Errorf("unknown view %q (want %s or %s)", opts.view, config.ViewGraph, config.ViewList)
		}
	}
	if opts.allLabels {
		cfg.Render.ShowAllLabels = true
	}

	gl, src, err := g.loadGlossary(ctx)
	if err != nil {
		return err
	}

	var (
		store ui.SessionStore
		saved datasource.Session
	)
	dbPath := filepath.Join(config.StateDir(), datasource.SessionFile)
	if s, err := datasource.OpenStore(dbPath); err != nil {
		logger.Warn("session store unavailable, progress will not be saved", "path", dbPath, "err", err)
	} else {
		defer s.Close()
		store = s
		if saved, err = s.LoadSession(ctx); err != nil {
			logger.Warn("could not read saved session", "err", err)
		}
	}

	if opts.resetSession {
		saved = datasource.Session{HasSeenHelp: saved.HasSeenHelp}
	}
	if opts.mode != "" {
		mode, err := discovery.ParseMode(opts.mode)
		if err != nil {
			return err
		}
		saved.Discovery.Mode = mode
	}

	var w *watcher.Watcher
	if !opts.noWatch {
		w, err = watcher.NewWatcher(src.Path)
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			logger.Warn("live reload disabled", "path", src.Path, "err", err)
			w = nil
		} else {
			defer w.Stop()
			logger.Debug("watching for changes", "path", w.Path(), "polling", w.IsPolling())
		}
	}

	m := ui.NewModel(ui.Options{
		Config:   cfg,
		Glossary: gl,
		Source:   src,
		Store:    store,
		Saved:    saved,
		Watcher:  w,
	})

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, tea.ErrInterrupted) {
		return fmt.Errorf("run explorer: %w", err)
	}

	if fm, ok := final.(ui.Model); ok && store != nil {
		if err := store.SaveSession(context.WithoutCancel(ctx), fm.Session()); err != nil {
			logger.Warn("could not save session", "err", err)
		}
	}
	return nil
}
