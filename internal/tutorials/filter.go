package tutorials

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort keys
const (
	SortNone     = "None"
	SortTitle    = "Title"
	SortCategory = "Category"
)

// Query is the current state of the search box and the two selectors.
type Query struct {
	Search   string `form:"search" json:"search"`
	Category string `form:"category" json:"category"`
	Sort     string `form:"sort" json:"sort" binding:"omitempty,oneof=None Title Category"`
}

// DefaultQuery is the reset state: no search, every category, catalog order.
func DefaultQuery() Query {
	return Query{Search: "", Category: CategoryAll, Sort: SortNone}
}

// Filter returns the entries whose title contains q.Search (case-insensitive)
// and whose category matches q.Category, ordered by q.Sort. The catalog is
// never modified.
func Filter(catalog []Tutorial, q Query) []Tutorial {
	needle := strings.ToLower(q.Search)
	out := make([]Tutorial, 0, len(catalog))
	for _, t := range catalog {
		if !strings.Contains(strings.ToLower(t.Title), needle) {
			continue
		}
		if q.Category != "" && q.Category != CategoryAll && t.Category != q.Category {
			continue
		}
		out = append(out, t)
	}

	var key func(Tutorial) string
	switch q.Sort {
	case SortTitle:
		key = func(t Tutorial) string { return t.Title }
	case SortCategory:
		key = func(t Tutorial) string { return t.Category }
	default:
		return out
	}

	// Collator holds scratch buffers, so one per call.
	col := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(key(out[i]), key(out[j])) < 0
	})
	return out
}
