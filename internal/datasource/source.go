// Package datasource selects where a glossary is read from and keeps the
// UI session store. A glossary can live in a directory of term files, a
// built glossary.json bundle, or both; the freshest valid one wins.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/vanderheijden86/glossgraph/pkg/loader"
	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/tags"
)

// SourceType identifies the type of data source
type SourceType string

const (
	// SourceTypeDir is a directory of markdown term files.
	SourceTypeDir SourceType = "dir"
	// SourceTypeBundle is a glossary.json bundle.
	SourceTypeBundle SourceType = "bundle"
)

// Priority values for source types (higher = more authoritative)
const (
	PriorityDir    = 100
	PriorityBundle = 50
)

// DataSource represents a potential source of glossary data
type DataSource struct {
	// Type identifies the source type
	Type SourceType `json:"type"`
	// Path is the directory or bundle file
	Path string `json:"path"`
	// Priority determines preference when timestamps are equal (higher = preferred)
	Priority int `json:"priority"`
	// ModTime is the newest modification time among the source's files
	ModTime time.Time `json:"mod_time"`
	// Valid indicates whether the source passed validation
	Valid bool `json:"valid"`
	// ValidationError describes why validation failed (if Valid is false)
	ValidationError string `json:"validation_error,omitempty"`
	// TermCount is the number of terms in the source (set during validation)
	TermCount int `json:"term_count"`
}

// String returns a human-readable description of the source
func (s DataSource) String() string {
	status := "valid"
	if !s.Valid {
		status = fmt.Sprintf("invalid: %s", s.ValidationError)
	}
	return fmt.Sprintf("%s (%s, priority=%d, mod=%s, terms=%d, %s)",
		s.Path, s.Type, s.Priority, s.ModTime.Format(time.RFC3339), s.TermCount, status)
}

// ErrNoSources is returned when discovery finds nothing usable.
var ErrNoSources = errors.New("no valid glossary sources")

// DiscoveryOptions configures source discovery behavior
type DiscoveryOptions struct {
	// Dir is the glossary directory (optional, located with
	// loader.FindGlossaryDir when empty)
	Dir string
	// RepoPath is the root probed when Dir is empty (optional, uses cwd)
	RepoPath string
	// Validate loads each discovered source and records the outcome
	Validate bool
	// IncludeInvalid includes sources that failed validation in results
	IncludeInvalid bool
	// Logger receives progress messages (optional)
	Logger func(msg string)
}

// DiscoverSources finds the term directory and any bundle built next to it
// or inside it, sorted freshest first.
func DiscoverSources(ctx context.Context, opts DiscoveryOptions) ([]DataSource, error) {
	logf := func(format string, args ...any) {
		if opts.Logger != nil {
			opts.Logger(fmt.Sprintf(format, args...))
		}
	}

	root := opts.Dir
	if root == "" {
		found, err := loader.FindGlossaryDir(opts.RepoPath)
		if err != nil {
			return nil, err
		}
		root = found
	}
	logf("Discovering sources in: %s", root)

	var sources []DataSource
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("glossary source: %w", err)
	}
	if !info.IsDir() {
		sources = append(sources, DataSource{Type: SourceTypeBundle, Path: root, Priority: PriorityBundle, ModTime: info.ModTime()})
	} else {
		mod, err := newestModTime(root)
		if err != nil {
			return nil, err
		}
		sources = append(sources, DataSource{Type: SourceTypeDir, Path: root, Priority: PriorityDir, ModTime: mod})
		for _, p := range []string{filepath.Join(root, loader.BundleName), filepath.Join(filepath.Dir(root), loader.BundleName)} {
			if bi, err := os.Stat(p); err == nil && !bi.IsDir() {
				sources = append(sources, DataSource{Type: SourceTypeBundle, Path: p, Priority: PriorityBundle, ModTime: bi.ModTime()})
				logf("Found bundle: %s (mod=%s)", p, bi.ModTime().Format(time.RFC3339))
			}
		}
	}

	if opts.Validate {
		for i := range sources {
			if err := ValidateSource(ctx, &sources[i]); err != nil {
				logf("Validation failed for %s: %v", sources[i].Path, err)
			}
		}
		if !opts.IncludeInvalid {
			valid := sources[:0]
			for _, s := range sources {
				if s.Valid {
					valid = append(valid, s)
				}
			}
			sources = valid
		}
	}

	sortSources(sources)
	logf("Discovered %d sources", len(sources))
	return sources, nil
}

// newestModTime is the latest mtime among the term files and tag catalog
// of dir, so editing one term makes the directory fresher than a bundle.
func newestModTime(dir string) (time.Time, error) {
	files, err := loader.TermFiles(dir)
	if err != nil {
		return time.Time{}, err
	}
	files = append(files, filepath.Join(dir, tags.FileName))
	var newest time.Time
	for _, f := range files {
		info, err := os.Stat(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return time.Time{}, err
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
	}
	return newest, nil
}

func sortSources(sources []DataSource) {
	sort.SliceStable(sources, func(i, j int) bool {
		if sources[i].ModTime.Equal(sources[j].ModTime) {
			return sources[i].Priority > sources[j].Priority
		}
		return sources[i].ModTime.After(sources[j].ModTime)
	})
}

// ValidateSource loads the source and records whether it is usable.
func ValidateSource(ctx context.Context, s *DataSource) error {
	g, err := LoadFromSource(ctx, *s)
	if err != nil {
		s.Valid = false
		s.ValidationError = err.Error()
		return err
	}
	s.Valid = true
	s.ValidationError = ""
	s.TermCount = g.Len()
	return nil
}

// SelectBestSource returns the freshest valid source, preferring the
// directory on ties.
func SelectBestSource(sources []DataSource) (DataSource, error) {
	var valid []DataSource
	for _, s := range sources {
		if s.Valid {
			valid = append(valid, s)
		}
	}
	if len(valid) == 0 {
		return DataSource{}, ErrNoSources
	}
	sortSources(valid)
	return valid[0], nil
}

// LoadFromSource loads a glossary from a specific DataSource, dispatching to
// the appropriate reader based on source type.
func LoadFromSource(ctx context.Context, source DataSource) (*model.Glossary, error) {
	switch source.Type {
	case SourceTypeDir, SourceTypeBundle:
		return loader.Load(ctx, source.Path)
	default:
		return nil, fmt.Errorf("unknown source type: %s", source.Type)
	}
}

// LoadGlossary discovers sources for dir (or the working tree when dir is
// empty), picks the best one and loads it.
func LoadGlossary(ctx context.Context, dir string) (*model.Glossary, DataSource, error) {
	sources, err := DiscoverSources(ctx, DiscoveryOptions{Dir: dir, Validate: true})
	if err != nil {
		return nil, DataSource{}, err
	}
	best, err := SelectBestSource(sources)
	if err != nil {
		return nil, DataSource{}, fmt.Errorf("%w in %s", err, dir)
	}
	g, err := LoadFromSource(ctx, best)
	if err != nil {
		return nil, best, err
	}
	return g, best, nil
}
