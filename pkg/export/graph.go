package export

import (
	"fmt"
	"hash/fnv"
	"image/color"
	"sort"
	"strings"
	"unicode"

	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/render"
)

// GenerateDOT renders the term graph as an undirected Graphviz document.
// Reciprocal links collapse into one edge; manual links are solid and
// detected autoLinks dashed. Nodes are filled with their first tag's color.
func GenerateDOT(terms []model.TermView, colors render.TagColors) string {
	var sb strings.Builder

	sb.WriteString("graph G {\n")
	sb.WriteString("    layout=neato;\n")
	sb.WriteString("    overlap=false;\n")
	sb.WriteString("    node [shape=circle, style=filled, fontname=\"Helvetica\", fontsize=10, fontcolor=\"#ffffff\"];\n")
	sb.WriteString("    edge [color=\"#64748b\"];\n")
	sb.WriteString("\n")

	sorted := sortedViews(terms)
	for _, t := range sorted {
		sb.WriteString(fmt.Sprintf("    \"%s\" [label=\"%s\", fillcolor=\"%s\"];\n",
			escapeDOTString(t.ID), escapeDOTString(truncateRunes(t.Label, 30)), nodeHex(t, colors)))
	}

	sb.WriteString("\n")

	for _, e := range undirectedEdges(sorted) {
		style := "solid"
		if e.auto {
			style = "dashed"
		}
		sb.WriteString(fmt.Sprintf("    \"%s\" -- \"%s\" [style=%s];\n",
			escapeDOTString(e.a), escapeDOTString(e.b), style))
	}

	sb.WriteString("}\n")
	return sb.String()
}

// GenerateMermaid renders the term graph as a Mermaid flowchart.
func GenerateMermaid(terms []model.TermView, colors render.TagColors) string {
	var sb strings.Builder

	sb.WriteString("graph LR\n")

	sorted := sortedViews(terms)

	// Build deterministic, collision-free Mermaid IDs
	safeIDMap := make(map[string]string)
	usedSafe := make(map[string]bool)
	getSafeID := func(orig string) string {
		if safe, ok := safeIDMap[orig]; ok {
			return safe
		}
		base := sanitizeMermaidID(orig)
		safe := base
		if usedSafe[safe] {
			// Collision: derive stable hash-based suffix
			h := fnv.New32a()
			_, _ = h.Write([]byte(orig))
			safe = fmt.Sprintf("%s_%x", base, h.Sum32())
		}
		usedSafe[safe] = true
		safeIDMap[orig] = safe
		return safe
	}
	for _, t := range sorted {
		getSafeID(t.ID)
	}

	// One class per fill color.
	classes := make(map[string]string)
	var classOrder []string
	for _, t := range sorted {
		hex := nodeHex(t, colors)
		if _, ok := classes[hex]; !ok {
			classes[hex] = fmt.Sprintf("c%d", len(classes))
			classOrder = append(classOrder, hex)
		}
	}
	for _, hex := range classOrder {
		sb.WriteString(fmt.Sprintf("    classDef %s fill:%s,stroke:#161f32,color:#fff\n", classes[hex], hex))
	}
	sb.WriteString("\n")

	for _, t := range sorted {
		safeID := getSafeID(t.ID)
		sb.WriteString(fmt.Sprintf("    %s([\"%s\"])\n", safeID, sanitizeMermaidText(t.Label)))
		sb.WriteString(fmt.Sprintf("    class %s %s\n", safeID, classes[nodeHex(t, colors)]))
	}

	sb.WriteString("\n")

	for _, e := range undirectedEdges(sorted) {
		link := "---"
		if e.auto {
			link = "-.-"
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", getSafeID(e.a), link, getSafeID(e.b)))
	}

	return sb.String()
}

type edge struct {
	a, b string
	auto bool
}

// undirectedEdges lists each visible pair once, a < b. A pair linked
// manually in either direction counts as manual.
func undirectedEdges(terms []model.TermView) []edge {
	present := make(map[string]bool, len(terms))
	for _, t := range terms {
		present[t.ID] = true
	}
	seen := make(map[[2]string]int)
	var out []edge
	add := func(from, to string, auto bool) {
		if from == to || !present[to] {
			return
		}
		a, b := from, to
		if b < a {
			a, b = b, a
		}
		key := [2]string{a, b}
		if i, ok := seen[key]; ok {
			out[i].auto = out[i].auto && auto
			return
		}
		seen[key] = len(out)
		out = append(out, edge{a: a, b: b, auto: auto})
	}
	for _, t := range terms {
		for _, l := range t.Links {
			add(t.ID, l, false)
		}
		for _, l := range t.AutoLinks {
			add(t.ID, l, true)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].a != out[j].a {
			return out[i].a < out[j].a
		}
		return out[i].b < out[j].b
	})
	return out
}

func sortedViews(terms []model.TermView) []model.TermView {
	out := make([]model.TermView, len(terms))
	copy(out, terms)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func nodeHex(t model.TermView, colors render.TagColors) string {
	c := render.DefaultTheme().NodeFallback
	if colors != nil && len(t.Tags) > 0 {
		c = colors.Color(t.Tags[0])
	}
	return hexColor(c)
}

func hexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func escapeDOTString(s string) string {
	// DOT string literals need backslashes and quotes escaped; normalize newlines.
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"\"", "\\\"",
		"\n", " ",
		"\r", " ",
	)
	return replacer.Replace(s)
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// sanitizeMermaidID ensures an ID is valid for Mermaid diagrams.
// Mermaid node IDs must be alphanumeric with hyphens/underscores.
func sanitizeMermaidID(id string) string {
	var sb strings.Builder
	for _, r := range id {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			sb.WriteRune(r)
		}
	}
	result := sb.String()
	if result == "" {
		return "node"
	}
	return result
}

// sanitizeMermaidText prepares text for use in Mermaid node labels.
func sanitizeMermaidText(text string) string {
	replacer := strings.NewReplacer(
		"\"", "'",
		"[", "(",
		"]", ")",
		"{", "(",
		"}", ")",
		"<", "&lt;",
		">", "&gt;",
		"|", "/",
		"`", "'",
		"\n", " ",
		"\r", "",
	)
	result := replacer.Replace(text)

	// Remove any remaining control characters
	result = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, result)

	return truncateRunes(strings.TrimSpace(result), 40)
}
