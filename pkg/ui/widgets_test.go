package ui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/glossgraph/pkg/discovery"
	"github.com/vanderheijden86/glossgraph/pkg/model"
	"github.com/vanderheijden86/glossgraph/pkg/tags"
)

func testTheme() Theme { return DefaultTheme(lipgloss.NewRenderer(io.Discard)) }

func TestFuzzyScore(t *testing.T) {
	tests := []struct {
		label, query string
		check        func(int) bool
	}{
		{"economy", "economy", func(s int) bool { return s == 1000 }},
		{"economy", "eco", func(s int) bool { return s >= 500 }},
		{"jungle-camps", "camps", func(s int) bool { return s >= 200 && s < 500 }},
		{"fundamentals", "fdm", func(s int) bool { return s > 0 }},
		{"vision", "xyz", func(s int) bool { return s == 0 }},
		{"VISION", "vision", func(s int) bool { return s == 1000 }},
	}
	for _, tt := range tests {
		if got := fuzzyScore(tt.label, tt.query); !tt.check(got) {
			t.Errorf("fuzzyScore(%q, %q) = %d", tt.label, tt.query, got)
		}
	}
}

func TestTagPickerSortsAndChecks(t *testing.T) {
	p := NewTagPickerModel([]string{"vision", "economy", "jungle"}, []string{"jungle"}, tags.Default(), testTheme())

	if p.allTags[0] != "economy" || p.allTags[2] != "vision" {
		t.Errorf("expected sorted tags, got %v", p.allTags)
	}
	if got := p.Checked(); len(got) != 1 || got[0] != "jungle" {
		t.Errorf("expected active tag pre-checked, got %v", got)
	}

	p.Toggle() // economy
	p.MoveDown()
	p.MoveDown()
	p.MoveDown() // clamps at vision
	p.Toggle()
	if got := p.Checked(); strings.Join(got, ",") != "economy,jungle,vision" {
		t.Errorf("unexpected checked %v", got)
	}

	p.Clear()
	if len(p.Checked()) != 0 {
		t.Error("clear should uncheck everything")
	}
}

func TestTagPickerFilters(t *testing.T) {
	p := NewTagPickerModel([]string{"vision", "economy", "jungle"}, nil, tags.Default(), testTheme())
	p.UpdateInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("jun")})

	if p.Current() != "jungle" {
		t.Errorf("expected jungle highlighted, got %q", p.Current())
	}
	if !strings.Contains(p.View(), "space: toggle") {
		t.Error("view should show the key hints")
	}
}

func TestHighlightName(t *testing.T) {
	parts := highlightName("Last hit and last stand", "last")
	if len(parts) != 5 {
		t.Fatalf("expected 5 parts, got %q", parts)
	}
	if parts[1] != "Last" || parts[3] != "last" {
		t.Errorf("matches should sit at odd indexes, got %q", parts)
	}
	if got := highlightName("Gank", ""); len(got) != 1 || got[0] != "Gank" {
		t.Errorf("empty query should not split, got %q", got)
	}
}

func TestTermItem(t *testing.T) {
	it := TermItem{Term: model.Term{
		Term:       "Creep score",
		Definition: "  Minions killed.\nMore detail.",
		Alternates: []string{"CS"},
	}}
	if it.Title() != "Creep score" {
		t.Errorf("unexpected title %q", it.Title())
	}
	if it.Description() != "Minions killed." {
		t.Errorf("expected first definition line, got %q", it.Description())
	}
	if it.FilterValue() != "Creep score CS" {
		t.Errorf("unexpected filter value %q", it.FilterValue())
	}
}

func glossaryForLinks() *model.Glossary {
	return model.NewGlossary([]model.Term{
		{ID: "gank", Term: "Gank", Definition: "A surprise attack.", Links: []string{"jungle", "ghost", "lane"}, AutoLinks: []string{"lane", "ward"}},
		{ID: "jungle", Term: "Jungle", Definition: "x"},
		{ID: "lane", Term: "Lane", Definition: "x"},
		{ID: "ward", Term: "Ward", Definition: "x"},
	}, nil)
}

func TestTermLinksOrderAndDedup(t *testing.T) {
	g := glossaryForLinks()
	s := discovery.New(g, discovery.WithPreferredStart("gank"))
	s.Discover("lane")
	gank, _ := g.Lookup("gank")

	links := termLinks(gank, s)
	var ids []string
	for _, l := range links {
		ids = append(ids, l.ID)
	}
	if strings.Join(ids, ",") != "jungle,lane,ward" {
		t.Fatalf("expected manual links first without unknown or repeated ids, got %v", ids)
	}
	if links[0].Auto || links[1].Auto || !links[2].Auto {
		t.Errorf("only ward should be a detected link: %+v", links)
	}
	if links[0].Discovered || !links[1].Discovered {
		t.Errorf("discovered flags wrong: %+v", links)
	}
}

func TestInfoPanelShowsLinks(t *testing.T) {
	g := glossaryForLinks()
	s := discovery.New(g, discovery.WithPreferredStart("gank"))
	p := NewInfoPanel(testTheme(), tags.Default())
	p.SetSize(40, 30)

	if !strings.Contains(p.View(), "Select a term") {
		t.Error("empty panel should prompt for a selection")
	}

	gank, _ := g.Lookup("gank")
	p.Show(gank, s)
	out := p.View()
	for _, want := range []string{"Gank", "surprise", "Links", "1. ", "Jungle ✦", "(mentioned)", "1/4"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in panel:\n%s", want, out)
		}
	}
	if l, ok := p.Link(3); !ok || l.ID != "ward" {
		t.Errorf("expected link 3 to be ward, got %+v", l)
	}
	if _, ok := p.Link(4); ok {
		t.Error("link 4 does not exist")
	}

	p.Clear()
	if p.TermID() != "" || len(p.Links()) != 0 {
		t.Error("clear should forget the term")
	}
}

func TestSearchBoxRanksAndMoves(t *testing.T) {
	pool := []model.Term{
		{ID: "a", Term: "Ward", Definition: "Vision item."},
		{ID: "b", Term: "Control ward", Definition: "x"},
		{ID: "c", Term: "Sweeper", Definition: "Clears a ward."},
	}
	sb := NewSearchBox(testTheme())
	sb.Focus()
	sb.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ward")}, pool)

	if len(sb.Results()) != 3 {
		t.Fatalf("expected 3 results, got %d", len(sb.Results()))
	}
	if r, _ := sb.Selected(); r.Term.ID != "a" {
		t.Errorf("exact prefix match should rank first, got %s", r.Term.ID)
	}
	sb.MoveDown()
	sb.MoveDown()
	sb.MoveDown()
	if r, _ := sb.Selected(); r.Term.ID != "c" {
		t.Errorf("expected selection clamped at the last result, got %s", r.Term.ID)
	}
	if !strings.Contains(sb.ResultsView(40), "3 results") {
		t.Error("results view should count hits")
	}

	sb.Clear()
	if sb.Query() != "" || len(sb.Results()) != 0 {
		t.Error("clear should drop query and results")
	}
	sb.Blur()
	if !strings.Contains(sb.View(60), "/ search") {
		t.Error("idle box should show the hint")
	}
}

func TestRenderProgress(t *testing.T) {
	th := testTheme()
	out := RenderProgress(th, 1, 10, 5)
	if strings.Count(out, "▰") != 1 || strings.Count(out, "▱") != 4 {
		t.Errorf("one discovery should fill at least one segment: %q", out)
	}
	if !strings.Contains(out, "1/10") {
		t.Errorf("missing count in %q", out)
	}
	if RenderProgress(th, 0, 0, 5) != "" {
		t.Error("empty glossary renders nothing")
	}
}

func TestRenderHelpListsKeys(t *testing.T) {
	out := RenderHelp(testTheme(), defaultKeyMap(), 100)
	for _, want := range []string{"How to explore", "zoom in", "follow link", "graph/list"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in help", want)
		}
	}
}

func TestPluralAndTruncate(t *testing.T) {
	if plural(1, "term") != "1 term" || plural(3, "term") != "3 terms" {
		t.Error("plural wrong")
	}
	if got := truncate("Creep score", 6); lipgloss.Width(got) > 6 || !strings.HasSuffix(got, "…") {
		t.Errorf("unexpected truncation %q", got)
	}
}
