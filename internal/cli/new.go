package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/glossgraph/pkg/loader"
	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/tags"
)

type newOpts struct {
	term       string
	id         string
	definition string
	tags       []string
	links      []string
	alternates []string
	force      bool
}

func newNewCmd(g *globals) *cobra.Command {
	opts := &newOpts{}
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a term file",
		Long: `Create a markdown term file in the glossary directory.

Without --term an interactive form asks for the name, tags, links and
definition. With --term the file is written straight from the flags.`,
		Example: `  glossgraph new
  glossgraph new --term "Last Hit" --tags fundamentals,economy --links deny`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, g, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.term, "term", "", "display name; skips the interactive form")
	f.StringVar(&opts.id, "id", "", "term id (default: derived from the name)")
	f.StringVar(&opts.definition, "definition", "", "markdown definition")
	f.StringSliceVar(&opts.tags, "tags", nil, "tags to attach")
	f.StringSliceVar(&opts.links, "links", nil, "ids of related terms")
	f.StringSliceVar(&opts.alternates, "alternates", nil, "alternate names matched by automatic links")
	f.BoolVar(&opts.force, "force", false, "overwrite an existing term file")
	return cmd
}

func runNew(cmd *cobra.Command, g *globals, opts *newOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	out := cmd.OutOrStdout()

	dir := g.glossaryDir()
	if dir == "" {
		var err error
		if dir, err = loader.FindGlossaryDir(""); err != nil {
			if !errors.Is(err, loader.ErrNoTerms) {
				return err
			}
			dir = "terms"
		}
	}
	if filepath.Ext(dir) == ".json" {
		return fmt.Errorf("%s is a bundle, new needs the term directory", dir)
	}

	// An empty or missing directory is fine for the first term.
	existing := model.NewGlossary(nil, nil)
	if gl, err := loader.Load(ctx, dir); err == nil {
		existing = gl
	} else {
		logger.Debug("no existing terms", "dir", dir, "err", err)
	}

	t := model.Term{
		ID:         opts.id,
		Term:       opts.term,
		Definition: opts.definition,
		Tags:       opts.tags,
		Links:      opts.links,
		Alternates: opts.alternates,
	}
	if opts.term == "" {
		var err error
		if t, err = termForm(ctx, t, existing); err != nil {
			return err
		}
	}
	if t.ID == "" {
		t.ID = slugify(t.Term)
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if t.Links == nil {
		t.Links = []string{}
	}
	if err := t.Validate(); err != nil {
		return err
	}
	for _, l := range t.Links {
		if !existing.Has(l) {
			printWarning(out, "link target %q does not exist yet", l)
		}
	}
	catalog := tags.NewCatalog(existing.Tags)
	for _, tag := range t.Tags {
		if catalog.Len() > 0 && !catalog.Has(tag) {
			printWarning(out, "tag %q is not in the catalog", tag)
		}
	}

	path := filepath.Join(dir, t.ID+".md")
	if _, err := os.Stat(path); err == nil && !opts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	data, err := loader.Format(t)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create glossary dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write term: %w", err)
	}
	printSuccess(out, "Created %s", t.Term)
	printFile(out, path)
	return nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form, falling back to accessible prompts without a TTY.
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

func termForm(ctx context.Context, t model.Term, existing *model.Glossary) (model.Term, error) {
	alternates := strings.Join(t.Alternates, ", ")

	var tagOpts []huh.Option[string]
	catalog := tags.NewCatalog(existing.Tags)
	if catalog.Len() == 0 {
		catalog = tags.Default()
	}
	for _, tg := range catalog.Tags() {
		tagOpts = append(tagOpts, huh.NewOption(tg.Label, tg.ID))
	}

	terms := append([]model.Term(nil), existing.Terms...)
	sort.Slice(terms, func(i, j int) bool { return terms[i].Term < terms[j].Term })
	linkOpts := make([]huh.Option[string], 0, len(terms))
	for _, et := range terms {
		linkOpts = append(linkOpts, huh.NewOption(et.Term, et.ID))
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Term").
			Value(&t.Term).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("a term needs a name")
				}
				if existing.Has(slugify(s)) {
					return fmt.Errorf("%q already exists", slugify(s))
				}
				return nil
			}),
		huh.NewInput().
			Title("Alternate names (optional)").
			Description("Comma separated; mentions of these also link here").
			Value(&alternates),
		huh.NewMultiSelect[string]().
			Title("Tags").
			Options(tagOpts...).
			Value(&t.Tags),
	}
	if len(linkOpts) > 0 {
		fields = append(fields, huh.NewMultiSelect[string]().
			Title("Related terms").
			Options(linkOpts...).
			Filterable(true).
			Value(&t.Links))
	}
	fields = append(fields, huh.NewText().
		Title("Definition").
		Description("Markdown").
		Value(&t.Definition))

	if err := newForm(huh.NewGroup(fields...)).RunWithContext(ctx); err != nil {
		return t, err
	}
	t.Term = strings.TrimSpace(t.Term)
	t.Alternates = splitList(alternates)
	return t, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// slugify turns a display name into a term id: "Last Hit" -> "last-hit".
func slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
