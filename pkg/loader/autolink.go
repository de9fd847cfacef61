package loader

import (
	"regexp"
	"strings"

	"github.com/vanderheijden86/glossgraph/pkg/model"
)

// mentionPattern matches any of the names as a whole word, ignoring case.
// It returns nil when there is nothing to match.
func mentionPattern(names ...string) *regexp.Regexp {
	var alts []string
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			alts = append(alts, regexp.QuoteMeta(n))
		}
	}
	if len(alts) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)
}

// DetectAutoLinks sets each term's AutoLinks to the ids of other terms whose
// name or an alternate appears in its definition. Manual links and the term
// itself are excluded; ids follow the order of terms.
func DetectAutoLinks(terms []model.Term) {
	patterns := make([]*regexp.Regexp, len(terms))
	for i, t := range terms {
		patterns[i] = mentionPattern(append([]string{t.Term}, t.Alternates...)...)
	}
	for i := range terms {
		t := &terms[i]
		linked := make(map[string]bool, len(t.Links))
		for _, l := range t.Links {
			linked[l] = true
		}
		var auto []string
		for j, other := range terms {
			if other.ID == t.ID || linked[other.ID] || patterns[j] == nil {
				continue
			}
			if patterns[j].MatchString(t.Definition) {
				auto = append(auto, other.ID)
				linked[other.ID] = true
			}
		}
		t.AutoLinks = auto
	}
}
