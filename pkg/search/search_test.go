package search

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/glossgraph/pkg/model"
)

func fixture() []model.Term {
	return []model.Term{
		{ID: "ward", Term: "Ward", Tags: []string{"vision", "item"}, Alternates: []string{"trinket"}, Definition: "Grants vision of an area."},
		{ID: "vision", Term: "Vision", Tags: []string{"vision"}, Definition: "What your team can see."},
		{ID: "sweeper", Term: "Sweeper", Tags: []string{"item"}, Alternates: []string{"Oracle Lens"}, Definition: "Reveals nearby wards."},
		{ID: "gank", Term: "Gank", Tags: []string{"jungle", "strategy"}, Definition: "Ambush a lane, often from a ward-free angle."},
	}
}

func ids(ts []model.Term) string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return strings.Join(out, ",")
}

func TestMatches(t *testing.T) {
	terms := fixture()
	tests := []struct {
		q    string
		id   string
		want bool
	}{
		{"ward", "ward", true},
		{"TRINKET", "ward", true},
		{"item", "sweeper", true},
		{"reveals", "sweeper", true},
		{"oracle", "gank", false},
		{"  ", "gank", true},
	}
	byID := map[string]model.Term{}
	for _, tm := range terms {
		byID[tm.ID] = tm
	}
	for _, tt := range tests {
		if got := Matches(byID[tt.id], tt.q); got != tt.want {
			t.Errorf("Matches(%s, %q) = %v, want %v", tt.id, tt.q, got, tt.want)
		}
	}
}

func TestSearchRanking(t *testing.T) {
	res := Search(fixture(), "ward")
	var got []string
	for _, r := range res {
		got = append(got, r.Term.ID+":"+r.Field.String())
	}
	want := "ward:term,gank:definition,sweeper:definition"
	if strings.Join(got, ",") != want {
		t.Errorf("results = %v, want %s", got, want)
	}
	if !res[0].Prefix {
		t.Error("ward should be a prefix hit")
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	if res := Search(fixture(), " "); res != nil {
		t.Errorf("empty query returned %v", res)
	}
}

func TestListSkipsTagsInQueryAndANDsTags(t *testing.T) {
	terms := fixture()
	if got := ids(List(terms, "jungle", nil)); got != "" {
		t.Errorf("list matched on tag text: %s", got)
	}
	if got := ids(List(terms, "", []string{"vision", "item"})); got != "ward" {
		t.Errorf("AND tags = %s", got)
	}
	if got := ids(List(terms, "", nil)); got != "gank,sweeper,vision,ward" {
		t.Errorf("sorted = %s", got)
	}
}

func TestHighlight(t *testing.T) {
	spans := Highlight("Ward the ward, WARD!", "ward")
	if len(spans) != 3 || spans[1] != (Span{9, 13}) || spans[2] != (Span{15, 19}) {
		t.Errorf("spans = %v", spans)
	}
	if Highlight("abc", "") != nil {
		t.Error("empty query highlighted")
	}
}

func TestAllTags(t *testing.T) {
	if got := strings.Join(AllTags(fixture()), ","); got != "item,jungle,strategy,vision" {
		t.Errorf("tags = %s", got)
	}
}
