package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/search"
	"github.com/vanderheijden86/glossgraph/pkg/tags"
)

// ListPane is the alphabetical term list.
type ListPane struct {
	list  list.Model
	theme Theme
}

// NewListPane returns an empty list sized w x h.
func NewListPane(theme Theme, catalog *tags.Catalog, w, h int) ListPane {
	l := list.New(nil, TermDelegate{Theme: theme, Catalog: catalog}, w, h)
	l.Title = ""
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	// Clear all default styles that might add extra lines
	l.Styles.Title = lipgloss.NewStyle()
	l.Styles.TitleBar = lipgloss.NewStyle()
	l.Styles.StatusBar = lipgloss.NewStyle()
	l.Styles.StatusEmpty = lipgloss.NewStyle()
	l.Styles.NoItems = theme.MutedText.Italic(true).PaddingLeft(2)
	l.Styles.HelpStyle = lipgloss.NewStyle()
	l.SetStatusBarItemName("term", "terms")
	return ListPane{list: l, theme: theme}
}

// SetCatalog swaps the tag colors after a reload.
func (p *ListPane) SetCatalog(catalog *tags.Catalog) {
	p.list.SetDelegate(TermDelegate{Theme: p.theme, Catalog: catalog})
}

// SetSize resizes the list.
func (p *ListPane) SetSize(w, h int) { p.list.SetSize(w, h) }

// SetTerms filters terms by query and tags, sorts by name and keeps the
// cursor on selectedID when it survives.
func (p *ListPane) SetTerms(terms []model.Term, query string, tagFilter []string, selectedID string) {
	rows := search.List(terms, query, tagFilter)
	items := make([]list.Item, len(rows))
	cursor := 0
	for i, t := range rows {
		items[i] = TermItem{Term: t, Query: query}
		if t.ID == selectedID {
			cursor = i
		}
	}
	p.list.SetItems(items)
	p.list.Select(cursor)
}

// Len is the number of rows shown.
func (p *ListPane) Len() int { return len(p.list.Items()) }

// Selected returns the term under the cursor.
func (p *ListPane) Selected() (model.Term, bool) {
	if it, ok := p.list.SelectedItem().(TermItem); ok {
		return it.Term, true
	}
	return model.Term{}, false
}

// SelectID moves the cursor to id when it is listed.
func (p *ListPane) SelectID(id string) bool {
	for i, it := range p.list.Items() {
		if ti, ok := it.(TermItem); ok && ti.Term.ID == id {
			p.list.Select(i)
			return true
		}
	}
	return false
}

// Update forwards navigation keys to the list.
func (p *ListPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return cmd
}

// View renders the list.
func (p *ListPane) View() string { return p.list.View() }
