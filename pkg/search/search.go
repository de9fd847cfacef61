// Package search filters and orders glossary terms for the search overlay
// and the list view.
package search

import (
	"sort"
	"strings"

	"github.com/vanderheijden86/glossgraph/pkg/model"
)

// Field records where a query matched, strongest first.
type Field int

const (
	FieldTerm Field = iota
	FieldAlternate
	FieldTag
	FieldDefinition
)

func (f Field) String() string {
	switch f {
	case FieldTerm:
		return "term"
	case FieldAlternate:
		return "alternate"
	case FieldTag:
		return "tag"
	case FieldDefinition:
		return "definition"
	default:
		return "unknown"
	}
}

// Result is one search hit.
type Result struct {
	Term  model.Term
	Field Field
	// Prefix is set when the term name starts with the query.
	Prefix bool
}

func normalize(q string) string { return strings.ToLower(strings.TrimSpace(q)) }

func contains(s, q string) bool { return strings.Contains(strings.ToLower(s), q) }

// matchField reports the strongest field of t containing q, which must
// already be lower-cased and trimmed.
func matchField(t model.Term, q string, withTags bool) (Field, bool) {
	if contains(t.Term, q) {
		return FieldTerm, true
	}
	for _, a := range t.Alternates {
		if contains(a, q) {
			return FieldAlternate, true
		}
	}
	if withTags {
		for _, tag := range t.Tags {
			if contains(tag, q) {
				return FieldTag, true
			}
		}
	}
	if contains(t.Definition, q) {
		return FieldDefinition, true
	}
	return 0, false
}

// Matches reports whether q occurs, case-insensitively, in the term name,
// an alternate, a tag or the definition.
func Matches(t model.Term, q string) bool {
	q = normalize(q)
	if q == "" {
		return true
	}
	_, ok := matchField(t, q, true)
	return ok
}

// Search returns terms matching q, best first: name prefix hits, then by
// matched field, then by name. An empty query returns nothing.
func Search(terms []model.Term, q string) []Result {
	q = normalize(q)
	if q == "" {
		return nil
	}
	var out []Result
	for _, t := range terms {
		if f, ok := matchField(t, q, true); ok {
			out = append(out, Result{Term: t, Field: f, Prefix: strings.HasPrefix(strings.ToLower(t.Term), q)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Prefix != b.Prefix {
			return a.Prefix
		}
		if a.Field != b.Field {
			return a.Field < b.Field
		}
		return strings.ToLower(a.Term.Term) < strings.ToLower(b.Term.Term)
	})
	return out
}

// List filters terms for the list view: q against name, alternates and
// definition, plus every tag in tags (AND). The result is sorted by name.
func List(terms []model.Term, q string, tags []string) []model.Term {
	q = normalize(q)
	var out []model.Term
	for _, t := range terms {
		if q != "" {
			if _, ok := matchField(t, q, false); !ok {
				continue
			}
		}
		if !t.View().HasAllTags(tags) {
			continue
		}
		out = append(out, t)
	}
	model.SortByTerm(out)
	return out
}

// Span is a half-open byte range of a match.
type Span struct{ Start, End int }

// Highlight returns the non-overlapping ranges of s that equal q, ignoring
// case. Ranges index the original string.
func Highlight(s, q string) []Span {
	q = normalize(q)
	if q == "" {
		return nil
	}
	lower := strings.ToLower(s)
	if len(lower) != len(s) {
		// Case folding changed byte lengths; offsets would not line up.
		return nil
	}
	var spans []Span
	for off := 0; off < len(lower); {
		i := strings.Index(lower[off:], q)
		if i < 0 {
			break
		}
		start := off + i
		spans = append(spans, Span{Start: start, End: start + len(q)})
		off = start + len(q)
	}
	return spans
}

// AllTags returns the distinct tags carried by terms, sorted.
func AllTags(terms []model.Term) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range terms {
		for _, tag := range t.Tags {
			if !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
	}
	sort.Strings(out)
	return out
}
