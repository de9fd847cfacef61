package tags

import (
	"sort"

	"github.com/vanderheijden86/glossgraph/pkg/model"
)

// Usage is one tag's term count.
type Usage struct {
	ID      string
	Count   int
	Defined bool
}

// Report compares the tags terms use with the catalog.
type Report struct {
	// Used lists every tag carried by a term, most used first, ties by id.
	Used []Usage
	// Unused lists catalog tags no term carries, in catalog order.
	Unused []model.Tag
	// Undefined lists used tags missing from the catalog, most used first.
	Undefined []Usage
}

// Analyze counts tag usage across terms.
func Analyze(c *Catalog, terms []model.Term) Report {
	counts := map[string]int{}
	for _, t := range terms {
		for _, tag := range t.Tags {
			counts[tag]++
		}
	}

	var r Report
	for id, n := range counts {
		u := Usage{ID: id, Count: n, Defined: c.Has(id)}
		r.Used = append(r.Used, u)
		if !u.Defined {
			r.Undefined = append(r.Undefined, u)
		}
	}
	byCount := func(us []Usage) {
		sort.Slice(us, func(i, j int) bool {
			if us[i].Count != us[j].Count {
				return us[i].Count > us[j].Count
			}
			return us[i].ID < us[j].ID
		})
	}
	byCount(r.Used)
	byCount(r.Undefined)

	for _, t := range c.tags {
		if counts[t.ID] == 0 {
			r.Unused = append(r.Unused, t)
		}
	}
	return r
}
