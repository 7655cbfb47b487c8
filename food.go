package mycarbs

import (
	"slices"
	"time"
)

// DefaultCategory is the catch-all category of foods that have none.
const DefaultCategory = "Other"

// DefaultPortionName names the placeholder portion of foods that have none.
const DefaultPortionName = "Portion"

// Timestamp is an instant in milliseconds since the Unix epoch, the way
// records have always been stored.
type Timestamp int64

// TimestampOf converts t to a Timestamp.
func TimestampOf(t time.Time) Timestamp { return Timestamp(t.UnixMilli()) }

// Time returns the Timestamp as a time.Time in the local zone.
func (t Timestamp) Time() time.Time { return time.UnixMilli(int64(t)) }

// Portion is a named serving of a food. Carbs is the absolute amount of
// carbohydrates in one unit of it, not a density.
type Portion struct {
	Name  string  `json:"name"`
	Carbs float64 `json:"carbs" validate:"gte=0,finite"`
}

// Food is a canonical food record.
//
// After normalization Portions and Categories always hold at least one
// entry. Categories behave as a set that keeps the insertion order.
// QuantityButtons is nil when the food has no shortcuts of its own.
type Food struct {
	ID              string
	Name            string
	CarbsPer100g    float64
	Portions        []Portion
	Categories      []string
	IsFavorite      bool
	ImageURL        string
	CreatedAt       Timestamp
	QuantityButtons []float64
}

// FoodInput is the user editable part of a Food: everything but the id and
// the creation time, which the repository assigns.
type FoodInput struct {
	Name            string    `json:"name" validate:"required,notblank"`
	CarbsPer100g    float64   `json:"carbsPer100g" validate:"gte=0,finite"`
	Portions        []Portion `json:"portions" validate:"min=1,dive"`
	Categories      []string  `json:"categories"`
	IsFavorite      bool      `json:"isFavorite"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	QuantityButtons []float64 `json:"quantityButtons,omitempty" validate:"omitempty,dive,gt=0,finite"`
}

// Input returns the editable fields of f.
func (f Food) Input() FoodInput {
	c := f.Clone()
	return FoodInput{
		Name:            c.Name,
		CarbsPer100g:    c.CarbsPer100g,
		Portions:        c.Portions,
		Categories:      c.Categories,
		IsFavorite:      c.IsFavorite,
		ImageURL:        c.ImageURL,
		QuantityButtons: c.QuantityButtons,
	}
}

// Clone returns a deep copy of f.
func (f Food) Clone() Food {
	f.Portions = slices.Clone(f.Portions)
	f.Categories = slices.Clone(f.Categories)
	f.QuantityButtons = slices.Clone(f.QuantityButtons)
	return f
}

// HasCategory reports whether the food belongs to category.
func (f Food) HasCategory(category string) bool {
	return slices.Contains(f.Categories, category)
}

// withCategory returns a copy of f that belongs to category. The category is
// appended at the end to keep the display order.
func (f Food) withCategory(category string) Food {
	f = f.Clone()
	if !f.HasCategory(category) {
		f.Categories = append(f.Categories, category)
	}
	return f
}

// withoutCategory returns a copy of f that no longer belongs to category.
func (f Food) withoutCategory(category string) Food {
	f = f.Clone()
	f.Categories = slices.DeleteFunc(f.Categories, func(c string) bool { return c == category })
	return f
}
