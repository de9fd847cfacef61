package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"github.com/vanderheijden86/glossgraph/pkg/discovery"
	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/tags"
)

// maxFollowable is how many links get a number key.
const maxFollowable = 9

// linkEntry is one outgoing edge as the info panel lists it.
type linkEntry struct {
	ID         string
	Label      string
	Auto       bool
	Discovered bool
}

// termLinks lists manual links then detected ones, skipping duplicates and
// ids the glossary does not know.
func termLinks(t model.Term, s *discovery.Session) []linkEntry {
	seen := map[string]bool{t.ID: true}
	var out []linkEntry
	add := func(ids []string, auto bool) {
		for _, id := range ids {
			if seen[id] {
				continue
			}
			target, ok := s.Glossary().Lookup(id)
			if !ok {
				continue
			}
			seen[id] = true
			out = append(out, linkEntry{
				ID:         id,
				Label:      target.Term,
				Auto:       auto,
				Discovered: s.IsDiscovered(id),
			})
		}
	}
	add(t.Links, false)
	add(t.AutoLinks, true)
	return out
}

// NewMarkdownRenderer builds a glamour renderer matching the terminal
// background. A nil return means plain text.
func NewMarkdownRenderer(width int, theme Theme) *glamour.TermRenderer {
	style := "dark"
	if theme.Renderer != nil && !theme.Renderer.HasDarkBackground() {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		return nil
	}
	return r
}

// InfoPanel is the sidebar describing the selected term.
type InfoPanel struct {
	vp      viewport.Model
	md      *glamour.TermRenderer
	mdWidth int
	theme   Theme
	catalog *tags.Catalog

	termID string
	links  []linkEntry
}

// NewInfoPanel returns an empty panel.
func NewInfoPanel(theme Theme, catalog *tags.Catalog) InfoPanel {
	return InfoPanel{
		vp:      viewport.New(40, 20),
		theme:   theme,
		catalog: catalog,
	}
}

// SetSize resizes the scroll area, rebuilding the markdown renderer when
// the wrap width changes.
func (p *InfoPanel) SetSize(width, height int) {
	p.vp.Width = width
	p.vp.Height = height
	if p.md == nil || p.mdWidth != width {
		p.md = NewMarkdownRenderer(width-2, p.theme)
		p.mdWidth = width
	}
}

// Width is the panel's content width.
func (p *InfoPanel) Width() int { return p.vp.Width }

// TermID is the term shown, empty when none.
func (p *InfoPanel) TermID() string { return p.termID }

// Links returns the followable links of the shown term.
func (p *InfoPanel) Links() []linkEntry { return p.links }

// Link returns the n-th (1-based) link.
func (p *InfoPanel) Link(n int) (linkEntry, bool) {
	if n < 1 || n > len(p.links) || n > maxFollowable {
		return linkEntry{}, false
	}
	return p.links[n-1], true
}

// Clear empties the panel.
func (p *InfoPanel) Clear() {
	p.termID = ""
	p.links = nil
	p.vp.SetContent("")
}

// Show renders t into the panel.
func (p *InfoPanel) Show(t model.Term, s *discovery.Session) {
	if p.termID != t.ID {
		p.vp.GotoTop()
	}
	p.termID = t.ID
	p.links = termLinks(t, s)
	p.vp.SetContent(p.render(t, s))
}

// ScrollUp and ScrollDown move the viewport one line.
func (p *InfoPanel) ScrollUp()   { p.vp.LineUp(1) }
func (p *InfoPanel) ScrollDown() { p.vp.LineDown(1) }

func (p *InfoPanel) render(t model.Term, s *discovery.Session) string {
	th := p.theme
	w := max(p.vp.Width, 10)
	var b strings.Builder

	b.WriteString(th.Renderer.NewStyle().Foreground(th.Accent).Bold(true).Render(truncate(t.Term, w)))
	b.WriteString("\n")
	if len(t.Alternates) > 0 {
		b.WriteString(th.MutedText.Italic(true).Render(truncate("also: "+strings.Join(t.Alternates, ", "), w)))
		b.WriteString("\n")
	}
	if len(t.Tags) > 0 {
		b.WriteString(RenderTagBadges(th.Renderer, p.catalog, t.Tags))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	def := strings.TrimSpace(t.Definition)
	if p.md != nil {
		if out, err := p.md.Render(def); err == nil {
			def = strings.Trim(out, "\n")
		}
	}
	b.WriteString(def)
	b.WriteString("\n\n")

	if len(p.links) > 0 {
		b.WriteString(th.PrimaryBold.Render("Links"))
		b.WriteString("\n")
		for i, l := range p.links {
			num := "   "
			if i < maxFollowable {
				num = itoa(i+1) + ". "
			}
			label := l.Label
			style := th.Base
			if !l.Discovered {
				style = th.Undiscovered
				label += " ✦"
			}
			suffix := ""
			if l.Auto {
				suffix = th.MutedText.Render(" (mentioned)")
			}
			b.WriteString(th.MutedText.Render(num) + style.Render(label) + suffix)
			b.WriteString("\n")
		}
	}

	if s.Mode() == discovery.ModeExplore {
		done, total := s.Progress()
		b.WriteString("\n")
		b.WriteString(RenderProgress(th, done, total, min(20, w-8)))
		b.WriteString("\n")
	}
	return b.String()
}

// View renders the panel.
func (p *InfoPanel) View() string {
	if p.termID == "" {
		return p.theme.MutedText.Italic(true).Render("Select a term to see its definition.")
	}
	return p.vp.View()
}
