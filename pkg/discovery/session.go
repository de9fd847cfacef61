// Package discovery implements the explore game: terms start hidden and
// become visible as they are discovered from already-visible ones.
package discovery

import (
	"fmt"
	"math/rand"

	"github.com/vanderheijden86/glossgraph/pkg/model"
)

// Mode selects which terms are visible.
type Mode string

const (
	// ModeExplore shows only discovered terms.
	ModeExplore Mode = "explore"
	// ModeViewAll shows every term.
	ModeViewAll Mode = "viewAll"
)

// ParseMode accepts the persisted mode names.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeExplore, ModeViewAll:
		return Mode(s), nil
	case "":
		return ModeExplore, nil
	}
	return "", fmt.Errorf("unknown discovery mode %q (want %s or %s)", s, ModeExplore, ModeViewAll)
}

// DefaultStartingTerm is tried first when picking where exploring begins.
const DefaultStartingTerm = "last-hit"

// DefaultMinConnections is the edge count a term needs to be rerolled to.
const DefaultMinConnections = 2

// State is the persisted part of a session.
type State struct {
	Mode                 Mode     `json:"viewMode"`
	Discovered           []string `json:"discoveredTerms"`
	StartingTerm         string   `json:"startingTerm"`
	SearchOnlyDiscovered bool     `json:"searchOnlyDiscovered"`
}

// Option configures a Session.
type Option func(*Session)

// WithMinConnections sets the reroll eligibility threshold.
func WithMinConnections(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.minConn = n
		}
	}
}

// WithPreferredStart names the starting term to use when it exists.
func WithPreferredStart(id string) Option {
	return func(s *Session) { s.preferred = id }
}

// WithRand makes rerolls deterministic.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// Session tracks the discovered set over one glossary.
type Session struct {
	g          *model.Glossary
	mode       Mode
	start      string
	discovered map[string]bool
	searchOnly bool

	minConn   int
	preferred string
	rng       *rand.Rand
}

// New starts an explore session at the default starting term.
func New(g *model.Glossary, opts ...Option) *Session {
	s := &Session{
		g:         g,
		mode:      ModeExplore,
		minConn:   DefaultMinConnections,
		preferred: DefaultStartingTerm,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	s.start = s.defaultStart()
	s.discovered = s.only(s.start)
	return s
}

func (s *Session) defaultStart() string {
	if s.g.Has(s.preferred) {
		return s.preferred
	}
	if s.g.Len() > 0 {
		return s.g.Terms[0].ID
	}
	return ""
}

func (s *Session) only(id string) map[string]bool {
	if id == "" {
		return map[string]bool{}
	}
	return map[string]bool{id: true}
}

// Glossary returns the glossary the session runs over.
func (s *Session) Glossary() *model.Glossary { return s.g }

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// SetMode switches modes. Discoveries are kept across switches.
func (s *Session) SetMode(m Mode) { s.mode = m }

// ToggleMode flips between explore and view-all and returns the new mode.
func (s *Session) ToggleMode() Mode {
	if s.mode == ModeExplore {
		s.mode = ModeViewAll
	} else {
		s.mode = ModeExplore
	}
	return s.mode
}

// StartingTerm is where exploring begins and what Reset returns to.
func (s *Session) StartingTerm() string { return s.start }

// SearchOnlyDiscovered reports whether search is limited to discovered terms
// in explore mode.
func (s *Session) SearchOnlyDiscovered() bool { return s.searchOnly }

// SetSearchOnlyDiscovered sets the search scope.
func (s *Session) SetSearchOnlyDiscovered(v bool) { s.searchOnly = v }

// IsDiscovered reports whether id has been discovered.
func (s *Session) IsDiscovered(id string) bool { return s.discovered[id] }

// Progress returns discovered and total term counts.
func (s *Session) Progress() (discovered, total int) {
	return len(s.discovered), s.g.Len()
}

// Discovered returns discovered ids in glossary order.
func (s *Session) Discovered() []string {
	var out []string
	for _, t := range s.g.Terms {
		if s.discovered[t.ID] {
			out = append(out, t.ID)
		}
	}
	return out
}

// Discover adds id to the discovered set in explore mode and reports whether
// the caller should select it. In view-all mode every term is already
// visible, so it only reports whether id exists.
func (s *Session) Discover(id string) bool {
	if !s.g.Has(id) {
		return false
	}
	if s.mode == ModeExplore {
		s.discovered[id] = true
	}
	return true
}

// Reset forgets every discovery except the starting term.
func (s *Session) Reset() {
	s.discovered = s.only(s.start)
}

// Eligible returns terms with at least the configured number of edges, or
// every term when none qualify.
func (s *Session) Eligible() []model.Term {
	var out []model.Term
	for _, t := range s.g.Terms {
		if t.Degree() >= s.minConn {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return s.g.Terms
	}
	return out
}

// Reroll picks a new random starting term, preferring one different from
// the current, and resets discoveries to it.
func (s *Session) Reroll() string {
	pool := s.Eligible()
	if len(pool) == 0 {
		return ""
	}
	if len(pool) > 1 {
		others := make([]model.Term, 0, len(pool))
		for _, t := range pool {
			if t.ID != s.start {
				others = append(others, t)
			}
		}
		pool = others
	}
	s.start = pool[s.rng.Intn(len(pool))].ID
	s.Reset()
	return s.start
}

// VisibleTerms is the term set the graph and list views show.
func (s *Session) VisibleTerms() []model.Term {
	if s.mode == ModeViewAll {
		return s.g.Terms
	}
	var out []model.Term
	for _, t := range s.g.Terms {
		if s.discovered[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

// VisibleViews projects VisibleTerms for the graph engine.
func (s *Session) VisibleViews() []model.TermView {
	return model.Views(s.VisibleTerms())
}

// SearchPool is the term set search runs over.
func (s *Session) SearchPool() []model.Term {
	if s.mode == ModeExplore && s.searchOnly {
		return s.VisibleTerms()
	}
	return s.g.Terms
}

// State captures the session for persistence.
func (s *Session) State() State {
	return State{
		Mode:                 s.mode,
		Discovered:           s.Discovered(),
		StartingTerm:         s.start,
		SearchOnlyDiscovered: s.searchOnly,
	}
}

// Restore applies a persisted state. Ids the glossary no longer has are
// dropped; an empty result falls back to the starting term alone.
func (s *Session) Restore(st State) {
	if m, err := ParseMode(string(st.Mode)); err == nil {
		s.mode = m
	}
	s.searchOnly = st.SearchOnlyDiscovered
	s.start = s.defaultStart()
	if s.g.Has(st.StartingTerm) {
		s.start = st.StartingTerm
	}
	s.discovered = map[string]bool{}
	for _, id := range st.Discovered {
		if s.g.Has(id) {
			s.discovered[id] = true
		}
	}
	if len(s.discovered) == 0 {
		s.discovered = s.only(s.start)
	}
}

// Rebind moves the session onto a reloaded glossary, keeping whatever state
// is still valid.
func (s *Session) Rebind(g *model.Glossary) {
	// State walks the old glossary.
	st := s.State()
	s.g = g
	s.Restore(st)
}
