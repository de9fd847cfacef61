package render

import (
	"strings"

	"github.com/vanderheijden86/glossgraph/pkg/model"
)

// Filter selects the nodes a frame shows: a case-insensitive label
// substring and a tag set the node must fully contain.
type Filter struct {
	Query string
	Tags  []string
}

// Active reports whether the filter hides anything.
func (f Filter) Active() bool {
	return strings.TrimSpace(f.Query) != "" || len(f.Tags) > 0
}

// Match reports whether v passes both the search and the tag filter. Tag
// matching requires every selected tag (AND).
func (f Filter) Match(v model.TermView) bool {
	if q := strings.TrimSpace(f.Query); q != "" {
		if !strings.Contains(strings.ToLower(v.Label), strings.ToLower(q)) {
			return false
		}
	}
	return v.HasAllTags(f.Tags)
}
