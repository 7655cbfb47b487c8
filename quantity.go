package mycarbs

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"
)

// QuantityMode discriminates the QuantitySpec variants.
type QuantityMode string

const (
	ModeUnit   QuantityMode = "unit"
	ModeWeight QuantityMode = "weight"
)

// QuantitySpec describes how much of a food is eaten. It is either [Units]
// or [Weight].
type QuantitySpec interface {
	Mode() QuantityMode
	// carbs returns the exact, unrounded carbohydrates of the quantity of f.
	carbs(f Food) (decimal.Decimal, error)
}

// Units is a number of servings of one of the food portions.
type Units struct {
	PortionIndex int
	Multiplier   float64
}

// Weight is an amount of food in grams.
type Weight struct {
	Grams float64
}

func (Units) Mode() QuantityMode  { return ModeUnit }
func (Weight) Mode() QuantityMode { return ModeWeight }

func (u Units) carbs(f Food) (decimal.Decimal, error) {
	if err := checkQuantity("multiplier", u.Multiplier); err != nil {
		return decimal.Zero, err
	}
	if u.PortionIndex < 0 || u.PortionIndex >= len(f.Portions) {
		return decimal.Zero, fmt.Errorf("%w: %d, %q has %d portion(s)", ErrInvalidPortionIndex, u.PortionIndex, f.Name, len(f.Portions))
	}
	p := f.Portions[u.PortionIndex]
	return decimal.NewFromFloat(p.Carbs).Mul(decimal.NewFromFloat(u.Multiplier)), nil
}

func (w Weight) carbs(f Food) (decimal.Decimal, error) {
	if err := checkQuantity("grams", w.Grams); err != nil {
		return decimal.Zero, err
	}
	// carbsPer100g / 100 * grams
	return decimal.NewFromFloat(f.CarbsPer100g).Mul(decimal.NewFromFloat(w.Grams)).Shift(-2), nil
}

func checkQuantity(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%w: %s must be a finite number >= 0, got %v", ErrInvalidQuantity, name, v)
	}
	return nil
}

func (u Units) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("mode", ModeUnit).
		Append("portionIndex", u.PortionIndex).
		Append("multiplier", u.Multiplier)
	return w.MarshalJSON()
}

func (g Weight) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("mode", ModeWeight).
		Append("grams", g.Grams)
	return w.MarshalJSON()
}

// DecodeQuantitySpec decodes a JSON quantity specification, dispatching on
// its "mode" property.
func DecodeQuantitySpec(data []byte) (QuantitySpec, error) {
	var identifier struct {
		Mode QuantityMode `json:"mode"`
	}
	if err := json.Unmarshal(data, &identifier); err != nil {
		return nil, fmt.Errorf("%w: could not identify quantity mode in %q: %v", ErrValidationFailed, string(data), err)
	}

	switch identifier.Mode {
	case ModeUnit:
		var temp struct {
			PortionIndex int     `json:"portionIndex"`
			Multiplier   float64 `json:"multiplier"`
		}
		if err := json.Unmarshal(data, &temp); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
		return Units{PortionIndex: temp.PortionIndex, Multiplier: temp.Multiplier}, nil
	case ModeWeight:
		var temp struct {
			Grams float64 `json:"grams"`
		}
		if err := json.Unmarshal(data, &temp); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
		return Weight{Grams: temp.Grams}, nil
	default:
		return nil, fmt.Errorf("%w: unknown quantity mode %q", ErrValidationFailed, identifier.Mode)
	}
}

// DefaultQuantities are the quantity shortcuts offered when neither the food
// nor the profile define any.
var DefaultQuantities = []float64{0.5, 1, 2, 3}

// QuantityOptions are the values a quantity shortcut can be picked from.
var QuantityOptions = []float64{0.17, 0.25, 0.33, 0.5, 0.67, 0.75, 0.83, 1, 1.5, 2, 2.5, 3, 4, 5, 6, 8, 10}

// ResolveShortcuts returns the quantity shortcuts to offer for food: its own
// quantity buttons, else the profile custom quantities, else
// DefaultQuantities. The first non empty list wins, lists are never merged.
func ResolveShortcuts(food Food, profile Profile) []float64 {
	switch {
	case len(food.QuantityButtons) > 0:
		return slices.Clone(food.QuantityButtons)
	case len(profile.CustomQuantities) > 0:
		return slices.Clone(profile.CustomQuantities)
	default:
		return slices.Clone(DefaultQuantities)
	}
}

// QuantityLabel returns the display label of a quantity shortcut: common
// fractions are spelled as such (0.5 is "1/2"), anything else is the
// shortest decimal.
func QuantityLabel(v float64) string {
	switch v {
	case 0.17:
		return "1/6"
	case 0.25:
		return "1/4"
	case 0.33:
		return "1/3"
	case 0.5:
		return "1/2"
	case 0.67:
		return "2/3"
	case 0.75:
		return "3/4"
	case 0.83:
		return "5/6"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
