package discovery

import (
	"math/rand"
	"slices"
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/glossgraph/pkg/model"
)

func term(id string, links ...string) model.Term {
	return model.Term{ID: id, Term: id, Links: links}
}

// hub: last-hit links to three terms, a lone term has no links.
func sample() *model.Glossary {
	return model.NewGlossary([]model.Term{
		term("armor", "last-hit"),
		term("last-hit", "armor", "deny", "gold"),
		term("deny", "last-hit"),
		term("gold", "last-hit", "armor"),
		term("lone"),
	}, nil)
}

func seeded(g *model.Glossary, opts ...Option) *Session {
	return New(g, append([]Option{WithRand(rand.New(rand.NewSource(7)))}, opts...)...)
}

func TestNewStartsAtPreferredTerm(t *testing.T) {
	s := seeded(sample())
	if s.StartingTerm() != "last-hit" {
		t.Fatalf("StartingTerm() = %q, want last-hit", s.StartingTerm())
	}
	if got := s.Discovered(); !slices.Equal(got, []string{"last-hit"}) {
		t.Errorf("Discovered() = %v", got)
	}
	if s.Mode() != ModeExplore {
		t.Errorf("Mode() = %q, want explore", s.Mode())
	}
}

func TestNewFallsBackToFirstTerm(t *testing.T) {
	g := model.NewGlossary([]model.Term{term("b"), term("a")}, nil)
	if s := seeded(g); s.StartingTerm() != "b" {
		t.Errorf("StartingTerm() = %q, want b", s.StartingTerm())
	}
	if s := seeded(g, WithPreferredStart("a")); s.StartingTerm() != "a" {
		t.Errorf("StartingTerm() = %q, want a", s.StartingTerm())
	}
}

func TestEmptyGlossary(t *testing.T) {
	s := seeded(model.NewGlossary(nil, nil))
	if s.StartingTerm() != "" || len(s.VisibleTerms()) != 0 {
		t.Fatalf("empty glossary should have nothing visible")
	}
	if got := s.Reroll(); got != "" {
		t.Errorf("Reroll() = %q, want empty", got)
	}
}

func TestDiscoverInExplore(t *testing.T) {
	s := seeded(sample())
	if !s.Discover("deny") {
		t.Fatal("Discover(deny) = false")
	}
	if !s.IsDiscovered("deny") {
		t.Error("deny not discovered")
	}
	if s.Discover("missing") {
		t.Error("Discover(missing) = true")
	}
	n, total := s.Progress()
	if n != 2 || total != 5 {
		t.Errorf("Progress() = %d/%d, want 2/5", n, total)
	}
	ids := model.Views(s.VisibleTerms())
	if len(ids) != 2 || ids[0].ID != "last-hit" || ids[1].ID != "deny" {
		t.Errorf("VisibleTerms() = %v", ids)
	}
}

func TestViewAllShowsEverythingAndKeepsDiscoveries(t *testing.T) {
	s := seeded(sample())
	s.Discover("gold")
	if s.ToggleMode() != ModeViewAll {
		t.Fatal("toggle should switch to view-all")
	}
	if len(s.VisibleViews()) != 5 {
		t.Errorf("view-all shows %d terms, want 5", len(s.VisibleViews()))
	}
	s.Discover("lone")
	if s.IsDiscovered("lone") {
		t.Error("view-all should not record discoveries")
	}
	s.ToggleMode()
	if len(s.VisibleTerms()) != 2 {
		t.Errorf("explore shows %d terms after toggling back, want 2", len(s.VisibleTerms()))
	}
}

func TestResetKeepsStartingTerm(t *testing.T) {
	s := seeded(sample())
	s.Discover("deny")
	s.Discover("gold")
	s.Reset()
	if got := s.Discovered(); !slices.Equal(got, []string{"last-hit"}) {
		t.Errorf("Discovered() after Reset = %v", got)
	}
}

func TestRerollPicksConnectedTerm(t *testing.T) {
	s := seeded(sample())
	s.Discover("deny")
	for range 20 {
		prev := s.StartingTerm()
		got := s.Reroll()
		if got == prev {
			t.Fatalf("Reroll() returned current term %q", got)
		}
		// only last-hit and gold carry two or more links.
		if got != "last-hit" && got != "gold" {
			t.Fatalf("Reroll() = %q, below minimum connections", got)
		}
		if d := s.Discovered(); !slices.Equal(d, []string{got}) {
			t.Fatalf("Discovered() = %v after reroll to %q", d, got)
		}
	}
}

func TestRerollFallsBackToAllTerms(t *testing.T) {
	g := model.NewGlossary([]model.Term{term("a"), term("b", "a")}, nil)
	s := seeded(g, WithMinConnections(5))
	if got := s.Reroll(); got != "b" {
		t.Errorf("Reroll() = %q, want b (the only other term)", got)
	}
	single := seeded(model.NewGlossary([]model.Term{term("only")}, nil))
	if got := single.Reroll(); got != "only" {
		t.Errorf("Reroll() = %q, want only", got)
	}
}

func TestSearchPool(t *testing.T) {
	s := seeded(sample())
	if len(s.SearchPool()) != 5 {
		t.Errorf("SearchPool() defaults to all terms")
	}
	s.SetSearchOnlyDiscovered(true)
	if len(s.SearchPool()) != 1 {
		t.Errorf("SearchPool() = %d terms, want 1", len(s.SearchPool()))
	}
	s.SetMode(ModeViewAll)
	if len(s.SearchPool()) != 5 {
		t.Errorf("view-all ignores the discovered-only scope")
	}
}

func TestRestoreDropsUnknownIDs(t *testing.T) {
	s := seeded(sample())
	s.Restore(State{
		Mode:                 ModeViewAll,
		Discovered:           []string{"gold", "ghost", "armor"},
		StartingTerm:         "gold",
		SearchOnlyDiscovered: true,
	})
	if s.Mode() != ModeViewAll || s.StartingTerm() != "gold" || !s.SearchOnlyDiscovered() {
		t.Fatalf("restored state = %+v", s.State())
	}
	if got := s.Discovered(); !slices.Equal(got, []string{"armor", "gold"}) {
		t.Errorf("Discovered() = %v", got)
	}

	s.Restore(State{Mode: "bogus", Discovered: []string{"ghost"}, StartingTerm: "ghost"})
	if s.Mode() != ModeViewAll {
		t.Errorf("an unknown mode should leave the current one")
	}
	if got := s.Discovered(); !slices.Equal(got, []string{"last-hit"}) {
		t.Errorf("Discovered() = %v, want the default start", got)
	}
}

func TestRebindKeepsSurvivingState(t *testing.T) {
	s := seeded(sample())
	s.Discover("gold")
	s.Discover("deny")
	next := model.NewGlossary([]model.Term{term("last-hit"), term("gold"), term("new")}, nil)
	s.Rebind(next)
	if got := s.Discovered(); !slices.Equal(got, []string{"last-hit", "gold"}) {
		t.Errorf("Discovered() = %v", got)
	}
	if _, total := s.Progress(); total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeExplore, "explore": ModeExplore, "viewAll": ModeViewAll} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseMode("all"); err == nil {
		t.Error("ParseMode(all) should fail")
	}
}

func TestVisibleAlwaysDiscoveredSubset(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := sample()
		s := New(g, WithRand(rand.New(rand.NewSource(rapid.Int64().Draw(t, "seed")))))
		ids := append(g.IDs(), "ghost")
		for _, op := range rapid.SliceOf(rapid.IntRange(0, 3)).Draw(t, "ops") {
			switch op {
			case 0:
				s.Discover(rapid.SampledFrom(ids).Draw(t, "id"))
			case 1:
				s.Reroll()
			case 2:
				s.Reset()
			case 3:
				s.ToggleMode()
			}
		}
		if !s.IsDiscovered(s.StartingTerm()) {
			t.Fatalf("starting term %q not discovered", s.StartingTerm())
		}
		if s.Mode() == ModeExplore {
			for _, v := range s.VisibleTerms() {
				if !s.IsDiscovered(v.ID) {
					t.Fatalf("visible term %q not discovered", v.ID)
				}
			}
		}
		for _, id := range s.Discovered() {
			if !g.Has(id) {
				t.Fatalf("discovered unknown id %q", id)
			}
		}
	})
}
