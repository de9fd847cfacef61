package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/tags"
)

func newTagsCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Report on the tag catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd.Context(), g, func(c *tags.Catalog, terms []model.Term) error {
				return listTags(cmd.OutOrStdout(), c, terms)
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List catalog tags with their colors and term counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd.Context(), g, func(c *tags.Catalog, terms []model.Term) error {
				return listTags(cmd.OutOrStdout(), c, terms)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "usage",
		Short: "Count the terms carrying each tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd.Context(), g, func(c *tags.Catalog, terms []model.Term) error {
				r := tags.Analyze(c, terms)
				rows := make([][]string, 0, len(r.Used))
				for _, u := range r.Used {
					defined := "yes"
					if !u.Defined {
						defined = styleWarn.Sprint("no")
					}
					rows = append(rows, []string{u.ID, fmt.Sprint(u.Count), defined})
				}
				printTable(cmd.OutOrStdout(), []string{"TAG", "TERMS", "IN CATALOG"}, rows)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "unused",
		Short: "List catalog tags no term carries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd.Context(), g, func(c *tags.Catalog, terms []model.Term) error {
				out := cmd.OutOrStdout()
				r := tags.Analyze(c, terms)
				if len(r.Unused) == 0 {
					printSuccess(out, "Every catalog tag is in use")
					return nil
				}
				for _, t := range r.Unused {
					printWarning(out, "%s (%s)", t.ID, c.Label(t.ID))
				}
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "undefined",
		Short: "List tags used by terms but missing from the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd.Context(), g, func(c *tags.Catalog, terms []model.Term) error {
				out := cmd.OutOrStdout()
				r := tags.Analyze(c, terms)
				if len(r.Undefined) == 0 {
					printSuccess(out, "Every used tag is in the catalog")
					return nil
				}
				for _, u := range r.Undefined {
					printWarning(out, "%s used by %d %s", u.ID, u.Count, plural(u.Count, "term"))
				}
				return fmt.Errorf("%d undefined %s", len(r.Undefined), plural(len(r.Undefined), "tag"))
			})
		},
	})
	return cmd
}

func withCatalog(ctx context.Context, g *globals, fn func(*tags.Catalog, []model.Term) error) error {
	gl, _, err := g.loadGlossary(ctx)
	if err != nil {
		return err
	}
	return fn(tags.NewCatalog(gl.Tags), gl.Terms)
}

func listTags(out io.Writer, c *tags.Catalog, terms []model.Term) error {
	counts := map[string]int{}
	for _, u := range tags.Analyze(c, terms).Used {
		counts[u.ID] = u.Count
	}
	order, groups := c.ByCategory()
	var rows [][]string
	for _, cat := range order {
		for _, t := range groups[cat] {
			rows = append(rows, []string{t.ID, c.Label(t.ID), cat, c.Hex(t.ID), fmt.Sprint(counts[t.ID])})
		}
	}
	printTable(out, []string{"TAG", "LABEL", "CATEGORY", "COLOR", "TERMS"}, rows)
	return nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
