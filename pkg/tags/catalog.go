// Package tags holds the tag catalog: display labels, node colors and
// categories for the tags terms carry.
package tags

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vanderheijden86/glossgraph/pkg/model"
)

// FileName is the catalog file looked up next to the term files.
const FileName = "tags.toml"

// FallbackColor paints tags the catalog does not know.
const FallbackColor = "#64748b"

// Uncategorized groups tags without a category.
const Uncategorized = "Uncategorized"

var fallback = color.NRGBA{0x64, 0x74, 0x8b, 0xff}

// Defaults is the catalog used when a glossary ships without tags.toml.
func Defaults() []model.Tag {
	return []model.Tag{
		{ID: "strategy", Color: "#3b82f6", Category: "Content Type", Description: "Things related to winning the game"},
		{ID: "abstract-concepts", Color: "#ec4899", Category: "Content Type", Description: "High-level ideas that span multiple systems"},
		{ID: "vernacular", Color: "#8b5cf6", Category: "Content Type", Description: "Common terminology and slang used by players"},
		{ID: "game-mechanics", Color: "#06b6d4", Category: "Content Type", Description: "Base game mechanics and rules"},
		{ID: "economy", Color: "#f59e0b", Category: "Game System"},
		{ID: "vision", Color: "#6366f1", Category: "Game System"},
		{ID: "minion", Color: "#a855f7", Category: "Game System", Description: "Minion waves and wave management"},
		{ID: "fundamentals", Color: "#10b981", Category: "Game System"},
		{ID: "stat", Color: "#eab308", Category: "Game System"},
		{ID: "jungle", Color: "#059669", Category: "Game Element", Description: "Jungle-specific concepts"},
		{ID: "item", Color: "#f97316", Category: "Game Element"},
		{ID: "role", Color: "#06b6d4", Category: "Game Element"},
		{ID: "map", Color: "#14b8a6", Category: "Game Element"},
		{ID: "summoner-spell", Color: "#d946ef", Category: "Game Element"},
	}
}

// Catalog resolves tag ids to their catalog entry and parsed color.
type Catalog struct {
	tags   []model.Tag
	index  map[string]int
	colors map[string]color.NRGBA
}

// NewCatalog indexes tags. Missing labels are derived from the id; colors
// that do not parse fall back to FallbackColor.
func NewCatalog(tags []model.Tag) *Catalog {
	c := &Catalog{
		tags:   make([]model.Tag, 0, len(tags)),
		index:  make(map[string]int, len(tags)),
		colors: make(map[string]color.NRGBA, len(tags)),
	}
	for _, t := range tags {
		if t.ID == "" {
			continue
		}
		if t.Label == "" {
			t.Label = LabelFromID(t.ID)
		}
		if i, dup := c.index[t.ID]; dup {
			c.tags[i] = t
		} else {
			c.index[t.ID] = len(c.tags)
			c.tags = append(c.tags, t)
		}
		c.colors[t.ID] = ParseColor(t.Color)
	}
	return c
}

// Default returns the built-in catalog.
func Default() *Catalog { return NewCatalog(Defaults()) }

// Tags returns catalog entries in file order.
func (c *Catalog) Tags() []model.Tag {
	return append([]model.Tag(nil), c.tags...)
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.tags) }

// Lookup returns the entry for id.
func (c *Catalog) Lookup(id string) (model.Tag, bool) {
	i, ok := c.index[id]
	if !ok {
		return model.Tag{}, false
	}
	return c.tags[i], true
}

// Has reports whether id is defined.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Color returns the node fill for tag, or the fallback gray.
func (c *Catalog) Color(tag string) color.NRGBA {
	if col, ok := c.colors[tag]; ok {
		return col
	}
	return fallback
}

// Hex returns the catalog color string for tag, or FallbackColor.
func (c *Catalog) Hex(tag string) string {
	if t, ok := c.Lookup(tag); ok && t.Color != "" {
		return t.Color
	}
	return FallbackColor
}

// Label returns the display label for tag, deriving one for unknown ids.
func (c *Catalog) Label(tag string) string {
	if t, ok := c.Lookup(tag); ok {
		return t.Label
	}
	return LabelFromID(tag)
}

// ByCategory groups entries by category. Categories keep their first
// appearance order; tags without one go to Uncategorized, listed last.
func (c *Catalog) ByCategory() ([]string, map[string][]model.Tag) {
	groups := map[string][]model.Tag{}
	var order []string
	for _, t := range c.tags {
		cat := t.Category
		if cat == "" {
			cat = Uncategorized
		}
		if _, seen := groups[cat]; !seen && cat != Uncategorized {
			order = append(order, cat)
		}
		groups[cat] = append(groups[cat], t)
	}
	if _, ok := groups[Uncategorized]; ok {
		order = append(order, Uncategorized)
	}
	return order, groups
}

// ParseColor parses a #rrggbb or #rgb color, returning the fallback gray
// for anything else.
func ParseColor(hex string) color.NRGBA {
	hex = strings.TrimSpace(hex)
	if len(hex) == 4 && hex[0] == '#' {
		hex = "#" + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2) + strings.Repeat(hex[3:4], 2)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// LabelFromID turns "summoner-spell" into "Summoner Spell".
func LabelFromID(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// file is the on-disk shape of tags.toml:
//
//	[[tag]]
//	id = "jungle"
//	label = "Jungle"
//	color = "#059669"
type file struct {
	Tags []model.Tag `toml:"tag"`
}

// Read decodes a TOML catalog.
func Read(r io.Reader) ([]model.Tag, error) {
	var f file
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode tag catalog: %w", err)
	}
	var errs []error
	seen := map[string]bool{}
	for i, t := range f.Tags {
		switch {
		case t.ID == "":
			errs = append(errs, fmt.Errorf("tag %d: missing id", i+1))
		case seen[t.ID]:
			errs = append(errs, fmt.Errorf("tag %q: defined twice", t.ID))
		}
		seen[t.ID] = true
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return f.Tags, nil
}

// Write encodes tags as a TOML catalog.
func Write(w io.Writer, tags []model.Tag) error {
	if err := toml.NewEncoder(w).Encode(file{Tags: tags}); err != nil {
		return fmt.Errorf("encode tag catalog: %w", err)
	}
	return nil
}

// LoadFile reads a catalog from path. A missing file yields the defaults.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open tag catalog: %w", err)
	}
	defer f.Close()
	tags, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewCatalog(tags), nil
}
