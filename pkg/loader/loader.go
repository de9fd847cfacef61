// Package loader reads glossaries: directories of markdown term files with
// YAML frontmatter, or pre-built JSON bundles.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/glossgraph/pkg/debug"
	"github.com/vanderheijden86/glossgraph/pkg/metrics"
	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/tags"
)

// GlossaryDirEnvVar overrides glossary directory discovery.
const GlossaryDirEnvVar = "GLOSSARY_DIR"

// BundleName is the file `glossgraph build` writes.
const BundleName = "glossary.json"

// ErrNoTerms is returned when a glossary source holds no term files.
var ErrNoTerms = errors.New("no glossary terms found")

// ErrDuplicateID is returned when two term files share an id.
var ErrDuplicateID = errors.New("duplicate term id")

// candidateDirs are probed, in order, below the working directory.
var candidateDirs = []string{"terms", "glossary", filepath.Join("data", "terms"), filepath.Join("src", "data", "terms")}

// maxParallel bounds concurrent file parses.
const maxParallel = 32

// FindGlossaryDir returns the glossary source, respecting GLOSSARY_DIR.
// Otherwise it probes the well-known subdirectories of root (or the working
// directory when root is empty), then root itself.
func FindGlossaryDir(root string) (string, error) {
	if env := os.Getenv(GlossaryDirEnvVar); env != "" {
		return env, nil
	}
	if root == "" {
		var err error
		root, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current working directory: %w", err)
		}
	}
	for _, c := range candidateDirs {
		dir := filepath.Join(root, c)
		if hasTermFiles(dir) {
			return dir, nil
		}
	}
	if hasTermFiles(root) {
		return root, nil
	}
	if _, err := os.Stat(filepath.Join(root, BundleName)); err == nil {
		return filepath.Join(root, BundleName), nil
	}
	return "", fmt.Errorf("%w below %s (set %s)", ErrNoTerms, root, GlossaryDirEnvVar)
}

func hasTermFiles(dir string) bool {
	files, err := TermFiles(dir)
	return err == nil && len(files) > 0
}

// TermFiles lists the .md files of dir in name order. Hidden files and
// README.md are skipped.
func TermFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read glossary directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".md") || strings.HasPrefix(name, ".") {
			continue
		}
		if strings.EqualFold(name, "README.md") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

// Load reads a glossary from path: a bundle file, or a directory of term
// files plus an optional tags.toml. Directory loads get autoLinks detected.
func Load(ctx context.Context, path string) (*model.Glossary, error) {
	defer metrics.Timer(metrics.GlossaryLoad)()
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("glossary source: %w", err)
	}
	if !info.IsDir() {
		return LoadBundle(path)
	}

	terms, err := LoadDir(ctx, path)
	if err != nil {
		return nil, err
	}
	catalog, err := tags.LoadFile(filepath.Join(path, tags.FileName))
	if err != nil {
		return nil, err
	}
	return model.NewGlossary(terms, catalog.Tags()), nil
}

// LoadDir parses every term file in dir concurrently, validates ids are
// unique and fills autoLinks. Every malformed file is reported.
func LoadDir(ctx context.Context, dir string) ([]model.Term, error) {
	files, err := TermFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoTerms, dir)
	}

	terms := make([]model.Term, len(files))
	errs := make([]error, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			terms[i], errs[i] = ParseFile(path)
			// Per-file errors are collected, not fatal.
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := checkUnique(terms); err != nil {
		return nil, err
	}

	DetectAutoLinks(terms)
	debug.Log("loaded %d terms from %s", len(terms), dir)
	return terms, nil
}

func checkUnique(terms []model.Term) error {
	seen := make(map[string]string, len(terms))
	var errs []error
	for _, t := range terms {
		if prev, dup := seen[t.ID]; dup {
			errs = append(errs, fmt.Errorf("%w %q in %s and %s", ErrDuplicateID, t.ID, filepath.Base(prev), filepath.Base(t.SourcePath)))
			continue
		}
		seen[t.ID] = t.SourcePath
	}
	return errors.Join(errs...)
}
