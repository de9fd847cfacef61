package ui

import (
	"sort"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/glossgraph/pkg/tags"
)

// TagPickerModel is a fuzzy search popup for toggling tag filters. Every
// checked tag must be present on a term for it to show.
type TagPickerModel struct {
	allTags       []string
	filtered      []string
	checked       map[string]bool
	input         textinput.Model
	selectedIndex int
	width         int
	height        int
	catalog       *tags.Catalog
	theme         Theme
}

// NewTagPickerModel creates a picker over tagIDs with active pre-checked.
func NewTagPickerModel(tagIDs, active []string, catalog *tags.Catalog, theme Theme) TagPickerModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.CharLimit = 50
	ti.Width = 30
	ti.Focus()

	m := TagPickerModel{
		checked: make(map[string]bool, len(active)),
		input:   ti,
		catalog: catalog,
		theme:   theme,
	}
	for _, t := range active {
		m.checked[t] = true
	}
	m.SetTags(tagIDs)
	return m
}

// SetSize updates the picker dimensions
func (m *TagPickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetTags updates the available tags
func (m *TagPickerModel) SetTags(tagIDs []string) {
	sorted := make([]string, len(tagIDs))
	copy(sorted, tagIDs)
	sort.Strings(sorted)
	m.allTags = sorted
	m.filterTags()
}

// MoveUp moves selection up
func (m *TagPickerModel) MoveUp() {
	if m.selectedIndex > 0 {
		m.selectedIndex--
	}
}

// MoveDown moves selection down
func (m *TagPickerModel) MoveDown() {
	if m.selectedIndex < len(m.filtered)-1 {
		m.selectedIndex++
	}
}

// Current returns the highlighted tag
func (m *TagPickerModel) Current() string {
	if len(m.filtered) == 0 || m.selectedIndex >= len(m.filtered) {
		return ""
	}
	return m.filtered[m.selectedIndex]
}

// Toggle flips the highlighted tag.
func (m *TagPickerModel) Toggle() {
	if t := m.Current(); t != "" {
		m.checked[t] = !m.checked[t]
	}
}

// Clear unchecks every tag.
func (m *TagPickerModel) Clear() {
	m.checked = map[string]bool{}
}

// Checked returns the checked tags in sorted order.
func (m *TagPickerModel) Checked() []string {
	var out []string
	for _, t := range m.allTags {
		if m.checked[t] {
			out = append(out, t)
		}
	}
	return out
}

// UpdateInput processes a key message for the text input
func (m *TagPickerModel) UpdateInput(msg tea.Msg) {
	m.input, _ = m.input.Update(msg)
	m.filterTags()
}

// filterTags filters the tags based on current input using fuzzy matching
func (m *TagPickerModel) filterTags() {
	query := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if query == "" {
		m.filtered = m.allTags
		m.clampSelection()
		return
	}

	type scored struct {
		tag   string
		score int
	}

	var matches []scored
	for _, tag := range m.allTags {
		score := fuzzyScore(tag, query)
		if m.catalog != nil {
			score = max(score, fuzzyScore(m.catalog.Label(tag), query))
		}
		if score > 0 {
			matches = append(matches, scored{tag, score})
		}
	}

	// Sort by score (higher is better), then alphabetically
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].tag < matches[j].tag
	})

	m.filtered = make([]string, len(matches))
	for i, match := range matches {
		m.filtered[i] = match.tag
	}
	m.clampSelection()
}

func (m *TagPickerModel) clampSelection() {
	if m.selectedIndex >= len(m.filtered) {
		m.selectedIndex = len(m.filtered) - 1
	}
	if m.selectedIndex < 0 {
		m.selectedIndex = 0
	}
}

// fuzzyScore returns a score for how well query matches label (0 = no match)
// Uses fzf-style scoring: consecutive matches, word boundary bonuses
func fuzzyScore(label, query string) int {
	label = strings.ToLower(label)
	query = strings.ToLower(query)

	if label == query {
		return 1000
	}
	if strings.HasPrefix(label, query) {
		return 500 + len(query)
	}
	if strings.Contains(label, query) {
		return 200 + len(query)
	}

	// Fuzzy subsequence match
	li, qi := 0, 0
	score := 0
	consecutive := 0
	lastMatchIdx := -1

	for li < len(label) && qi < len(query) {
		if label[li] == query[qi] {
			qi++
			matchScore := 10

			if lastMatchIdx == li-1 {
				consecutive++
				matchScore += consecutive * 5
			} else {
				consecutive = 0
			}

			if li == 0 || !unicode.IsLetter(rune(label[li-1])) {
				matchScore += 15
			}

			score += matchScore
			lastMatchIdx = li
		}
		li++
	}

	if qi == len(query) {
		return score
	}
	return 0
}

// View renders the tag picker overlay
func (m *TagPickerModel) View() string {
	if m.width == 0 {
		m.width = 60
	}
	if m.height == 0 {
		m.height = 20
	}

	t := m.theme

	boxWidth := 44
	if m.width < 54 {
		boxWidth = m.width - 10
	}
	if boxWidth < 25 {
		boxWidth = 25
	}

	maxVisible := 10
	if m.height < 15 {
		maxVisible = m.height - 7
	}
	if maxVisible < 3 {
		maxVisible = 3
	}

	var lines []string

	titleStyle := t.Renderer.NewStyle().
		Foreground(t.Primary).
		Bold(true)
	lines = append(lines, titleStyle.Render("Filter by Tag"))
	lines = append(lines, "")

	inputStyle := t.Renderer.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Secondary).
		Padding(0, 1).
		Width(boxWidth - 6)
	lines = append(lines, inputStyle.Render(m.input.View()))
	lines = append(lines, "")

	if len(m.filtered) == 0 {
		lines = append(lines, t.MutedText.Italic(true).Render("  No matching tags"))
	} else {
		start := 0
		if m.selectedIndex >= maxVisible {
			start = m.selectedIndex - maxVisible + 1
		}
		end := min(start+maxVisible, len(m.filtered))

		for i := start; i < end; i++ {
			tag := m.filtered[i]
			isSelected := i == m.selectedIndex

			itemStyle := t.Renderer.NewStyle()
			if isSelected {
				itemStyle = itemStyle.Foreground(t.Primary).Bold(true)
			} else {
				itemStyle = itemStyle.Foreground(t.Base.GetForeground())
			}

			prefix := "  "
			if isSelected {
				prefix = "> "
			}
			box := "[ ] "
			if m.checked[tag] {
				box = "[x] "
			}

			label := tag
			if m.catalog != nil {
				label = m.catalog.Label(tag)
			}
			label = truncateRunesHelper(label, boxWidth-12, "...")
			lines = append(lines, itemStyle.Render(prefix+box)+RenderTagDot(t.Renderer, m.catalog, tag)+" "+itemStyle.Render(label))
		}

		if len(m.filtered) > maxVisible {
			lines = append(lines, "")
			lines = append(lines, t.MutedText.Italic(true).Render(
				"  ("+itoa(m.selectedIndex+1)+"/"+itoa(len(m.filtered))+")",
			))
		}
	}

	lines = append(lines, "")
	footerStyle := t.Renderer.NewStyle().
		Foreground(t.Secondary).
		Italic(true)
	lines = append(lines, footerStyle.Render("↑/↓: navigate | space: toggle | ctrl+u: clear | enter: apply | esc: cancel"))

	content := strings.Join(lines, "\n")

	boxStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(boxWidth)

	return boxStyle.Render(content)
}
