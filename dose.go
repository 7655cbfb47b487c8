package mycarbs

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Insulin is a number of insulin units, or the undefined dose of a profile
// without insulin-to-carb ratio. Its zero value is the undefined dose, which
// is never the same as a computed 0.
type Insulin struct {
	units   decimal.Decimal
	defined bool
}

// InsulinUnits returns a defined dose of u units, rounded to 1 decimal.
func InsulinUnits(u decimal.Decimal) Insulin {
	return Insulin{units: u.Round(1), defined: true}
}

// Defined reports whether the dose could be computed.
func (i Insulin) Defined() bool { return i.defined }

// Units returns the dose, 0 when undefined.
func (i Insulin) Units() decimal.Decimal { return i.units }

// String returns the dose with one decimal, or "—" when undefined.
func (i Insulin) String() string {
	if !i.defined {
		return "—"
	}
	return i.units.StringFixed(1)
}

// MarshalJSON encodes a defined dose as a number with one decimal and the
// undefined dose as the string "undefined".
func (i Insulin) MarshalJSON() ([]byte, error) {
	if !i.defined {
		return []byte(`"undefined"`), nil
	}
	return []byte(i.units.StringFixed(1)), nil
}

// MaxTotalCarbs is the largest carb total, in grams, a dose is computed for.
const MaxTotalCarbs = math.MaxInt32

// Dose is the result of a dose calculation.
type Dose struct {
	TotalCarbs int     `json:"totalCarbs"`
	Insulin    Insulin `json:"insulinUnits"`
}

// ComputeDose returns the carbohydrates in the given quantity of food, as
// whole grams, and the matching insulin dose for the insulin-to-carb ratio
// icr.
//
// Carbs are rounded half away from zero on exact decimals, so 73.5 g is 74 g.
// The insulin dose is totalCarbs/icr rounded to one decimal, and undefined
// when icr is 0.
func ComputeDose(food Food, spec QuantitySpec, icr float64) (Dose, error) {
	if math.IsNaN(icr) || math.IsInf(icr, 0) || icr < 0 {
		return Dose{}, fmt.Errorf("%w: icr must be a finite number >= 0, got %v", ErrValidationFailed, icr)
	}
	if spec == nil {
		return Dose{}, fmt.Errorf("%w: missing quantity", ErrInvalidQuantity)
	}
	carbs, err := spec.carbs(food)
	if err != nil {
		return Dose{}, err
	}
	if carbs.IsNegative() {
		return Dose{}, fmt.Errorf("%w: %q has negative carbs", ErrValidationFailed, food.Name)
	}
	total := carbs.Round(0)
	if total.GreaterThan(decimal.NewFromInt(MaxTotalCarbs)) {
		return Dose{}, fmt.Errorf("%w: %s g of carbs is more than %d g", ErrInvalidQuantity, total, MaxTotalCarbs)
	}

	d := Dose{TotalCarbs: int(total.IntPart())}
	if icr > 0 {
		d.Insulin = InsulinUnits(total.Div(decimal.NewFromFloat(icr)))
	}
	return d, nil
}
