package mycarbs

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AllCategories is the Query category that filters nothing.
const AllCategories = "All"

// SortOption orders the result of a Query.
type SortOption string

const (
	SortDateDesc  SortOption = "date_desc"
	SortAlphaAsc  SortOption = "alpha_asc"
	SortCarbsHigh SortOption = "carbs_high"
	SortCarbsLow  SortOption = "carbs_low"
)

// SortOptions lists every SortOption, the default first.
var SortOptions = []SortOption{SortDateDesc, SortAlphaAsc, SortCarbsHigh, SortCarbsLow}

// Query selects and orders foods the way the library is browsed.
type Query struct {
	// Search keeps foods whose name contains it, ignoring case.
	Search string
	// Category keeps foods of that category. Empty or AllCategories keeps
	// every food.
	Category string
	// Sort defaults to SortDateDesc, newest first.
	Sort          SortOption
	FavoritesOnly bool
}

// Apply returns the foods matching q in q order. Sorting is stable and
// foods is left untouched.
func (q Query) Apply(foods []Food) []Food {
	search := strings.ToLower(q.Search)
	out := make([]Food, 0, len(foods))
	for _, f := range foods {
		if !strings.Contains(strings.ToLower(f.Name), search) {
			continue
		}
		if q.Category != "" && q.Category != AllCategories && !f.HasCategory(q.Category) {
			continue
		}
		if q.FavoritesOnly && !f.IsFavorite {
			continue
		}
		out = append(out, f)
	}

	switch q.Sort {
	case SortAlphaAsc:
		c := collate.New(language.Und, collate.IgnoreCase)
		slices.SortStableFunc(out, func(a, b Food) int { return c.CompareString(a.Name, b.Name) })
	case SortCarbsHigh:
		slices.SortStableFunc(out, func(a, b Food) int { return cmp.Compare(b.CarbsPer100g, a.CarbsPer100g) })
	case SortCarbsLow:
		slices.SortStableFunc(out, func(a, b Food) int { return cmp.Compare(a.CarbsPer100g, b.CarbsPer100g) })
	default:
		slices.SortStableFunc(out, func(a, b Food) int { return cmp.Compare(b.CreatedAt, a.CreatedAt) })
	}
	return out
}
