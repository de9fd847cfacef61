package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/glossgraph/pkg/tags"
)

// TermDelegate renders term items in the list: a name row with tag dots
// and link count, then a muted definition preview.
type TermDelegate struct {
	Theme   Theme
	Catalog *tags.Catalog
}

func (d TermDelegate) Height() int {
	return 2
}

func (d TermDelegate) Spacing() int {
	return 1
}

func (d TermDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d TermDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(TermItem)
	if !ok {
		return
	}

	t := d.Theme
	width := m.Width()
	if width <= 0 {
		width = 80
	}
	// Reduce width by 1 to prevent terminal wrapping on the exact edge
	width = width - 1

	isSelected := index == m.Index()

	// Right side: tag dots and link count
	var dots []string
	for _, tag := range i.Term.Tags {
		dots = append(dots, RenderTagDot(t.Renderer, d.Catalog, tag))
	}
	links := fmt.Sprintf("%d↔", i.Term.Degree())
	right := strings.Join(dots, "") + " " + t.MutedText.Render(links)
	rightWidth := lipgloss.Width(right)

	prefix := "  "
	if isSelected {
		prefix = t.PrimaryBold.Render("▌ ")
	}

	nameWidth := width - 2 - rightWidth - 1
	name := truncate(i.Term.Term, nameWidth)
	nameStyle := t.Base
	if isSelected {
		nameStyle = nameStyle.Bold(true)
	}

	var nameOut strings.Builder
	for j, part := range highlightName(name, i.Query) {
		if j%2 == 1 {
			nameOut.WriteString(t.MatchText.Render(part))
		} else {
			nameOut.WriteString(nameStyle.Render(part))
		}
	}

	gap := width - 2 - runewidth.StringWidth(name) - rightWidth
	if gap < 1 {
		gap = 1
	}
	fmt.Fprint(w, prefix+nameOut.String()+strings.Repeat(" ", gap)+right+"\n")

	desc := truncate(i.Description(), width-4)
	fmt.Fprint(w, "    "+t.MutedText.Render(desc))
}
