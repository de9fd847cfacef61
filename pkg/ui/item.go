package ui

import (
	"strings"

	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/search"
)

// TermItem wraps model.Term to implement list.Item
type TermItem struct {
	Term  model.Term
	Query string // highlighted in the name
}

func (i TermItem) Title() string {
	return i.Term.Term
}

// Description is the first line of the definition.
func (i TermItem) Description() string {
	def := strings.TrimSpace(i.Term.Definition)
	if n := strings.IndexByte(def, '\n'); n >= 0 {
		def = def[:n]
	}
	return def
}

func (i TermItem) FilterValue() string {
	var sb strings.Builder
	sb.WriteString(i.Term.Term)
	for _, a := range i.Term.Alternates {
		sb.WriteString(" ")
		sb.WriteString(a)
	}
	return sb.String()
}

// highlightName splits the name into alternating plain and matched parts,
// starting with plain. Matched parts sit at odd indexes.
func highlightName(name, q string) []string {
	spans := search.Highlight(name, q)
	if len(spans) == 0 {
		return []string{name}
	}
	var parts []string
	prev := 0
	for _, s := range spans {
		parts = append(parts, name[prev:s.Start], name[s.Start:s.End])
		prev = s.End
	}
	return append(parts, name[prev:])
}
