package model

// Tag describes one category in the tag catalog.
type Tag struct {
	ID          string `json:"id" toml:"id"`
	Label       string `json:"label" toml:"label"`
	Color       string `json:"color" toml:"color"`
	Description string `json:"description,omitempty" toml:"description"`
	Category    string `json:"category,omitempty" toml:"category"`
}

// Glossary is a loaded term collection plus its tag catalog.
type Glossary struct {
	Terms []Term `json:"terms"`
	Tags  []Tag  `json:"tags,omitempty"`

	index map[string]int
}

// NewGlossary builds a glossary and indexes it by term id. Later duplicates
// of an id shadow earlier ones in lookups.
func NewGlossary(terms []Term, tags []Tag) *Glossary {
	g := &Glossary{Terms: terms, Tags: tags}
	g.Reindex()
	return g
}

// Reindex rebuilds the id index after Terms was replaced.
func (g *Glossary) Reindex() {
	g.index = make(map[string]int, len(g.Terms))
	for i, t := range g.Terms {
		g.index[t.ID] = i
	}
}

// Lookup returns the term with id.
func (g *Glossary) Lookup(id string) (Term, bool) {
	if g == nil {
		return Term{}, false
	}
	if g.index == nil {
		g.Reindex()
	}
	i, ok := g.index[id]
	if !ok {
		return Term{}, false
	}
	return g.Terms[i], true
}

// Has reports whether id names a term in the glossary.
func (g *Glossary) Has(id string) bool {
	_, ok := g.Lookup(id)
	return ok
}

// Len returns the number of terms.
func (g *Glossary) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Terms)
}

// IDs returns term ids in glossary order.
func (g *Glossary) IDs() []string {
	if g == nil {
		return nil
	}
	out := make([]string, len(g.Terms))
	for i, t := range g.Terms {
		out[i] = t.ID
	}
	return out
}
