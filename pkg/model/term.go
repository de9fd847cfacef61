// Package model defines the glossary value types shared by the loader, the
// discovery policy and the graph view.
package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidTerm is returned when a term is missing a required field.
var ErrInvalidTerm = errors.New("invalid term")

// Term is one glossary entry as authored in a term file.
type Term struct {
	ID         string         `json:"id" yaml:"id"`
	Term       string         `json:"term" yaml:"term"`
	Definition string         `json:"definition" yaml:"-"`
	Tags       []string       `json:"tags" yaml:"tags"`
	Links      []string       `json:"links" yaml:"links"`
	AutoLinks  []string       `json:"autoLinks,omitempty" yaml:"-"`
	Alternates []string       `json:"alternates,omitempty" yaml:"alternates,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty" yaml:"extensions,omitempty"`

	// SourcePath is the file the term was parsed from, empty for bundled terms.
	SourcePath string `json:"-" yaml:"-"`
}

// Validate checks the fields every term must carry.
func (t Term) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidTerm)
	}
	if strings.TrimSpace(t.Term) == "" {
		return fmt.Errorf("%w %q: missing term", ErrInvalidTerm, t.ID)
	}
	for _, l := range t.Links {
		if l == t.ID {
			return fmt.Errorf("%w %q: links to itself", ErrInvalidTerm, t.ID)
		}
	}
	return nil
}

// HasTag reports whether the term carries tag.
func (t Term) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}

// Degree is the number of outgoing edges, manual and detected.
func (t Term) Degree() int {
	return len(t.Links) + len(t.AutoLinks)
}

// View projects the term onto the shape the graph view consumes.
func (t Term) View() TermView {
	return TermView{
		ID:        t.ID,
		Label:     t.Term,
		Tags:      t.Tags,
		Links:     t.Links,
		AutoLinks: t.AutoLinks,
	}
}

// TermView is the read-only content side of a graph node. Physics never
// sees it; the renderer joins it to a node by ID.
type TermView struct {
	ID        string
	Label     string
	Tags      []string
	Links     []string
	AutoLinks []string
}

// Edges returns links followed by autoLinks. Duplicates are kept.
func (v TermView) Edges() []string {
	out := make([]string, 0, len(v.Links)+len(v.AutoLinks))
	out = append(out, v.Links...)
	return append(out, v.AutoLinks...)
}

// HasAllTags reports whether every tag in want is present on the view.
// An empty want matches everything.
func (v TermView) HasAllTags(want []string) bool {
	for _, w := range want {
		found := false
		for _, t := range v.Tags {
			if t == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Views projects a term slice, preserving order.
func Views(terms []Term) []TermView {
	out := make([]TermView, len(terms))
	for i, t := range terms {
		out[i] = t.View()
	}
	return out
}

// SortByTerm orders terms by display name, case-insensitively, with the
// id as a tiebreaker so the order is stable across loads.
func SortByTerm(terms []Term) {
	sort.SliceStable(terms, func(i, j int) bool {
		a, b := strings.ToLower(terms[i].Term), strings.ToLower(terms[j].Term)
		if a != b {
			return a < b
		}
		return terms[i].ID < terms[j].ID
	})
}
