package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

const helpIntro = `Terms start hidden. In explore mode the graph shows only what you have
discovered; follow a link from the sidebar (1-9) to reveal the term it
points to. Press m to see every term at once, r for a new starting term.

Drag a node to pin it while you hold it, drag the background to pan,
scroll to zoom around the pointer.`

// RenderHelp renders the help modal: a short introduction followed by the
// full key reference.
func RenderHelp(theme Theme, keys keyMap, width int) string {
	r := theme.Renderer

	modalWidth := 78
	if modalWidth > width-4 {
		modalWidth = width - 4
	}
	if modalWidth < 30 {
		modalWidth = 30
	}

	h := help.New()
	h.ShowAll = true
	h.Width = modalWidth - 6
	h.Styles.FullKey = r.NewStyle().Foreground(theme.Primary).Bold(true)
	h.Styles.FullDesc = r.NewStyle().Foreground(theme.Subtext)
	h.Styles.FullSeparator = r.NewStyle().Foreground(theme.Border)

	var b strings.Builder
	b.WriteString(r.NewStyle().Bold(true).Foreground(theme.Primary).Render("How to explore"))
	b.WriteString("\n")
	b.WriteString(r.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", modalWidth-6)))
	b.WriteString("\n\n")
	b.WriteString(r.NewStyle().Foreground(theme.Subtext).Width(modalWidth - 6).Render(helpIntro))
	b.WriteString("\n\n")
	b.WriteString(h.View(keys))
	b.WriteString("\n\n")
	b.WriteString(r.NewStyle().Foreground(theme.Muted).Italic(true).Render("Press ? or Esc to close"))

	modalStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(1, 2).
		Width(modalWidth)

	return modalStyle.Render(b.String())
}
