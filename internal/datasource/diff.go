package datasource

import (
	"fmt"
	"slices"
	"sort"

	"github.com/vanderheijden86/glossgraph/pkg/model"
)

// SourceDiff represents differences between two glossaries, typically a
// term directory and a bundle built from it earlier.
type SourceDiff struct {
	// SourceA is the path of the first source
	SourceA string
	// SourceB is the path of the second source
	SourceB string
	// MissingInA contains term IDs present in B but not in A
	MissingInA []string
	// MissingInB contains term IDs present in A but not in B
	MissingInB []string
	// Changed contains terms present in both whose content differs
	Changed []TermDifference
	// CountA is the number of terms in source A
	CountA int
	// CountB is the number of terms in source B
	CountB int
}

// TermDifference names the fields that differ for a single term
type TermDifference struct {
	ID     string   `json:"id"`
	Fields []string `json:"fields"`
}

// HasInconsistencies returns true if there are any differences between sources
func (d SourceDiff) HasInconsistencies() bool {
	return len(d.MissingInA) > 0 || len(d.MissingInB) > 0 || len(d.Changed) > 0
}

// Summary returns a human-readable summary of the differences
func (d SourceDiff) Summary() string {
	if !d.HasInconsistencies() {
		return fmt.Sprintf("Sources match (%d terms each)", d.CountA)
	}

	summary := fmt.Sprintf("Differences between %s and %s:\n", d.SourceA, d.SourceB)

	if d.CountA != d.CountB {
		summary += fmt.Sprintf("  - Count mismatch: %d vs %d\n", d.CountA, d.CountB)
	}
	summary += listIDs(d.MissingInA, fmt.Sprintf("terms in %s but not %s", d.SourceB, d.SourceA))
	summary += listIDs(d.MissingInB, fmt.Sprintf("terms in %s but not %s", d.SourceA, d.SourceB))

	if len(d.Changed) > 0 {
		summary += fmt.Sprintf("  - %d terms changed\n", len(d.Changed))
		if len(d.Changed) <= 5 {
			for _, c := range d.Changed {
				summary += fmt.Sprintf("    - %s: %v\n", c.ID, c.Fields)
			}
		}
	}

	return summary
}

func listIDs(ids []string, what string) string {
	if len(ids) == 0 {
		return ""
	}
	out := fmt.Sprintf("  - %d %s\n", len(ids), what)
	if len(ids) <= 5 {
		for _, id := range ids {
			out += fmt.Sprintf("    - %s\n", id)
		}
	}
	return out
}

// DetectInconsistencies compares two glossaries term by term. ID lists are
// sorted.
func DetectInconsistencies(a, b *model.Glossary, sourceA, sourceB string) SourceDiff {
	diff := SourceDiff{
		SourceA: sourceA,
		SourceB: sourceB,
		CountA:  a.Len(),
		CountB:  b.Len(),
	}

	for _, ta := range a.Terms {
		tb, ok := b.Lookup(ta.ID)
		if !ok {
			diff.MissingInB = append(diff.MissingInB, ta.ID)
			continue
		}
		if fields := changedFields(ta, tb); len(fields) > 0 {
			diff.Changed = append(diff.Changed, TermDifference{ID: ta.ID, Fields: fields})
		}
	}
	for _, tb := range b.Terms {
		if !a.Has(tb.ID) {
			diff.MissingInA = append(diff.MissingInA, tb.ID)
		}
	}

	sort.Strings(diff.MissingInA)
	sort.Strings(diff.MissingInB)
	sort.Slice(diff.Changed, func(i, j int) bool { return diff.Changed[i].ID < diff.Changed[j].ID })
	return diff
}

func changedFields(a, b model.Term) []string {
	var fields []string
	if a.Term != b.Term {
		fields = append(fields, "term")
	}
	if a.Definition != b.Definition {
		fields = append(fields, "definition")
	}
	if !slices.Equal(a.Tags, b.Tags) {
		fields = append(fields, "tags")
	}
	if !slices.Equal(a.Links, b.Links) {
		fields = append(fields, "links")
	}
	if !slices.Equal(a.AutoLinks, b.AutoLinks) {
		fields = append(fields, "autoLinks")
	}
	if !slices.Equal(a.Alternates, b.Alternates) {
		fields = append(fields, "alternates")
	}
	return fields
}
