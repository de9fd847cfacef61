package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/search"
)

// maxSearchResults caps the dropdown under the search box.
const maxSearchResults = 8

// SearchBox is the query input with ranked results.
type SearchBox struct {
	input    textinput.Model
	results  []search.Result
	selected int
	theme    Theme
}

// NewSearchBox returns an unfocused, empty search box.
func NewSearchBox(theme Theme) SearchBox {
	ti := textinput.New()
	ti.Placeholder = "search terms..."
	ti.Prompt = "/ "
	ti.CharLimit = 80
	ti.Width = 30
	ti.PromptStyle = theme.PrimaryBold
	return SearchBox{input: ti, theme: theme}
}

// Focus starts editing.
func (s *SearchBox) Focus() tea.Cmd { return s.input.Focus() }

// Blur stops editing; the query stays.
func (s *SearchBox) Blur() { s.input.Blur() }

// Focused reports whether keys go to the box.
func (s *SearchBox) Focused() bool { return s.input.Focused() }

// Query returns the trimmed query.
func (s *SearchBox) Query() string { return strings.TrimSpace(s.input.Value()) }

// Clear drops the query and its results.
func (s *SearchBox) Clear() {
	s.input.SetValue("")
	s.results = nil
	s.selected = 0
}

// SetWidth sizes the input.
func (s *SearchBox) SetWidth(w int) { s.input.Width = max(w-4, 10) }

// Update feeds a key to the input and reruns the search over pool.
func (s *SearchBox) Update(msg tea.Msg, pool []model.Term) tea.Cmd {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.Refresh(pool)
	return cmd
}

// Refresh reruns the current query over pool.
func (s *SearchBox) Refresh(pool []model.Term) {
	s.results = search.Search(pool, s.Query())
	if s.selected >= len(s.results) {
		s.selected = max(len(s.results)-1, 0)
	}
}

// Results returns the ranked hits.
func (s *SearchBox) Results() []search.Result { return s.results }

// MoveUp and MoveDown move the highlighted result.
func (s *SearchBox) MoveUp() {
	if s.selected > 0 {
		s.selected--
	}
}

func (s *SearchBox) MoveDown() {
	if s.selected < min(len(s.results), maxSearchResults)-1 {
		s.selected++
	}
}

// Selected returns the highlighted hit.
func (s *SearchBox) Selected() (search.Result, bool) {
	if s.selected < 0 || s.selected >= len(s.results) {
		return search.Result{}, false
	}
	return s.results[s.selected], true
}

// View renders the input line.
func (s *SearchBox) View(width int) string {
	if !s.Focused() && s.Query() == "" {
		return s.theme.MutedText.Render(truncate("/ search  t tags  ? help", width))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s.input.View())
}

// ResultsView renders the ranked hits while a query is typed.
func (s *SearchBox) ResultsView(width int) string {
	t := s.theme
	if s.Query() == "" {
		return t.MutedText.Italic(true).Render("Type to search term names, alternates, tags and definitions.")
	}
	if len(s.results) == 0 {
		return t.MutedText.Italic(true).Render("No matches")
	}
	lines := []string{t.PrimaryBold.Render(plural(len(s.results), "result")), ""}
	for i, r := range s.results {
		if i >= maxSearchResults {
			lines = append(lines, t.MutedText.Render("  … "+itoa(len(s.results)-maxSearchResults)+" more"))
			break
		}
		prefix := "  "
		style := t.Base
		if i == s.selected {
			prefix = "> "
			style = t.PrimaryBold
		}
		line := prefix + style.Render(truncate(r.Term.Term, width-16))
		if r.Field != search.FieldTerm {
			line += t.MutedText.Render(" · " + r.Field.String())
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", t.MutedText.Italic(true).Render("↑/↓ choose · enter go · esc clear"))
	return strings.Join(lines, "\n")
}
