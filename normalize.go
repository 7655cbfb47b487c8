package mycarbs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// rawFood is every shape a food record has ever been stored in. Legacy
// fields are pointers so that their presence can be told apart from a zero
// value.
type rawFood struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	CarbsPer100g    float64   `json:"carbsPer100g"`
	Portions        []Portion `json:"portions"`
	Categories      []string  `json:"categories"`
	IsFavorite      bool      `json:"isFavorite"`
	ImageURL        string    `json:"imageUrl"`
	CreatedAt       Timestamp `json:"createdAt"`
	QuantityButtons []float64 `json:"quantityButtons"`

	// Single category records.
	Category *string `json:"category"`
	// Single portion records.
	StandardUnitName  *string  `json:"standardUnitName"`
	StandardUnitCarbs *float64 `json:"standardUnitCarbs"`
}

// NormalizeFood decodes a stored or imported food record of any known shape
// and returns it in canonical form.
//
// The rules are applied independently:
//   - no categories but a legacy "category": categories is [category].
//   - neither: categories is ["Other"].
//   - no portions but a legacy "standardUnitName": a single portion made of
//     standardUnitName and standardUnitCarbs.
//   - neither: a single {"Portion", 0} portion.
//   - quantityButtons stays absent when absent; an empty list counts as absent.
//
// Blank and repeated categories are dropped. Normalizing a normalized
// record is a no-op.
func NormalizeFood(raw []byte) (Food, error) {
	f, _, err := normalizeRaw(raw)
	return f, err
}

// normalizeRaw is NormalizeFood that also reports whether the record had to
// change shape, i.e. whether its stored form is outdated.
func normalizeRaw(data []byte) (f Food, migrated bool, err error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Food{}, false, fmt.Errorf("%w: a food record must be a JSON object, got %.20q", ErrValidationFailed, string(trimmed))
	}
	var r rawFood
	if err := json.Unmarshal(trimmed, &r); err != nil {
		return Food{}, false, fmt.Errorf("%w: cannot decode food record: %v", ErrValidationFailed, err)
	}

	f = Food{
		ID:              r.ID,
		Name:            r.Name,
		CarbsPer100g:    r.CarbsPer100g,
		Portions:        r.Portions,
		IsFavorite:      r.IsFavorite,
		ImageURL:        r.ImageURL,
		CreatedAt:       r.CreatedAt,
		QuantityButtons: r.QuantityButtons,
	}

	f.Categories = cleanCategories(r.Categories)
	if len(f.Categories) != len(r.Categories) {
		migrated = true
	}
	if len(f.Categories) == 0 {
		migrated = true
		if r.Category != nil && strings.TrimSpace(*r.Category) != "" {
			f.Categories = []string{*r.Category}
		} else {
			f.Categories = []string{DefaultCategory}
		}
	}
	if r.Category != nil {
		migrated = true
	}

	if len(f.Portions) == 0 {
		migrated = true
		switch {
		case r.StandardUnitName != nil:
			p := Portion{Name: *r.StandardUnitName}
			if r.StandardUnitCarbs != nil {
				p.Carbs = *r.StandardUnitCarbs
			}
			f.Portions = []Portion{p}
		default:
			f.Portions = []Portion{{Name: DefaultPortionName}}
		}
	}
	if r.StandardUnitName != nil || r.StandardUnitCarbs != nil {
		migrated = true
	}

	if r.QuantityButtons != nil && len(r.QuantityButtons) == 0 {
		f.QuantityButtons = nil
		migrated = true
	}
	return f, migrated, nil
}

// normalizeInput applies the food rules to a draft: default category and
// portion, no empty shortcut list, trimmed name.
func normalizeInput(in FoodInput) FoodInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Categories = cleanCategories(in.Categories)
	if len(in.Categories) == 0 {
		in.Categories = []string{DefaultCategory}
	}
	if len(in.Portions) == 0 {
		in.Portions = []Portion{{Name: DefaultPortionName}}
	}
	if len(in.QuantityButtons) == 0 {
		in.QuantityButtons = nil
	}
	return in
}

// cleanCategories returns the categories without blanks and duplicates, in
// their first appearance order.
func cleanCategories(categories []string) []string {
	out := make([]string, 0, len(categories))
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		if strings.TrimSpace(c) == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
