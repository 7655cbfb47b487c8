package mycarbs

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestComputeDose(t *testing.T) {
	pizza := Food{
		Name:         "Pizza Margherita",
		CarbsPer100g: 33,
		Portions:     []Portion{{Name: "1 slice", Carbs: 35}, {Name: "Whole Pizza", Carbs: 260}},
	}
	bread := Food{
		Name:         "White Bread",
		CarbsPer100g: 49,
		Portions:     []Portion{{Name: "1 slice", Carbs: 15}},
	}

	testCases := []struct {
		name        string
		food        Food
		spec        QuantitySpec
		icr         float64
		wantCarbs   int
		wantInsulin string
	}{
		{"two slices", pizza, Units{PortionIndex: 0, Multiplier: 2}, 10, 70, "7.0"},
		{"two slices without ratio", pizza, Units{PortionIndex: 0, Multiplier: 2}, 0, 70, "—"},
		{"second portion", pizza, Units{PortionIndex: 1, Multiplier: 0.5}, 10, 130, "13.0"},
		{"a third of a slice", pizza, Units{PortionIndex: 0, Multiplier: 0.33}, 10, 12, "1.2"}, // 11.55
		{"zero multiplier", pizza, Units{PortionIndex: 0, Multiplier: 0}, 10, 0, "0.0"},
		{"weight half rounds up", bread, Weight{Grams: 150}, 15, 74, "4.9"}, // 73.5 and 74/15
		{"weight", bread, Weight{Grams: 100}, 12, 49, "4.1"},
		{"zero grams", bread, Weight{Grams: 0}, 12, 0, "0.0"},
		{"zero grams without ratio", bread, Weight{Grams: 0}, 0, 0, "—"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeDose(tc.food, tc.spec, tc.icr)
			if err != nil {
				t.Fatalf("ComputeDose() unexpected error: %v", err)
			}
			if got.TotalCarbs != tc.wantCarbs {
				t.Errorf("ComputeDose().TotalCarbs = %d, want %d", got.TotalCarbs, tc.wantCarbs)
			}
			if got.Insulin.String() != tc.wantInsulin {
				t.Errorf("ComputeDose().Insulin = %s, want %s", got.Insulin, tc.wantInsulin)
			}
			if got.Insulin.Defined() != (tc.icr > 0) {
				t.Errorf("ComputeDose().Insulin.Defined() = %v, want %v", got.Insulin.Defined(), tc.icr > 0)
			}
		})
	}
}

func TestComputeDose_Errors(t *testing.T) {
	food := Food{Name: "Banana", CarbsPer100g: 23, Portions: []Portion{{Name: "1 medium", Carbs: 27}}}

	testCases := []struct {
		name string
		spec QuantitySpec
		icr  float64
		want error
	}{
		{"portion index too large", Units{PortionIndex: 1, Multiplier: 1}, 10, ErrInvalidPortionIndex},
		{"negative portion index", Units{PortionIndex: -1, Multiplier: 1}, 10, ErrInvalidPortionIndex},
		{"negative multiplier", Units{PortionIndex: 0, Multiplier: -1}, 10, ErrInvalidQuantity},
		{"NaN multiplier", Units{PortionIndex: 0, Multiplier: math.NaN()}, 10, ErrInvalidQuantity},
		{"negative grams", Weight{Grams: -5}, 10, ErrInvalidQuantity},
		{"infinite grams", Weight{Grams: math.Inf(1)}, 10, ErrInvalidQuantity},
		{"missing quantity", nil, 10, ErrInvalidQuantity},
		{"negative ratio", Weight{Grams: 5}, -1, ErrValidationFailed},
		{"NaN ratio", Weight{Grams: 5}, math.NaN(), ErrValidationFailed},
		{"huge multiplier", Units{PortionIndex: 0, Multiplier: 1e10}, 10, ErrInvalidQuantity},
		{"huge weight", Weight{Grams: 1e30}, 10, ErrInvalidQuantity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ComputeDose(food, tc.spec, tc.icr); !errors.Is(err, tc.want) {
				t.Errorf("ComputeDose() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestComputeDose_Ceiling(t *testing.T) {
	food := Food{Name: "Sugar", Portions: []Portion{{Name: "1 g", Carbs: 1}}}

	d, err := ComputeDose(food, Units{PortionIndex: 0, Multiplier: MaxTotalCarbs}, 0)
	if err != nil {
		t.Fatalf("ComputeDose() at the ceiling unexpected error: %v", err)
	}
	if d.TotalCarbs != MaxTotalCarbs {
		t.Errorf("ComputeDose().TotalCarbs = %d, want %d", d.TotalCarbs, MaxTotalCarbs)
	}

	big := Food{Name: "Bulk", Portions: []Portion{{Name: "sack", Carbs: 1e10}}}
	if _, err := ComputeDose(big, Units{PortionIndex: 0, Multiplier: 1e10}, 10); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("ComputeDose() past the ceiling error = %v, want %v", err, ErrInvalidQuantity)
	}
}

func TestDose_MarshalJSON(t *testing.T) {
	food := Food{Portions: []Portion{{Name: "p", Carbs: 35}}}
	testCases := []struct {
		icr  float64
		want string
	}{
		{10, `{"totalCarbs":70,"insulinUnits":7.0}`},
		{0, `{"totalCarbs":70,"insulinUnits":"undefined"}`},
	}
	for _, tc := range testCases {
		d, err := ComputeDose(food, Units{Multiplier: 2}, tc.icr)
		if err != nil {
			t.Fatalf("ComputeDose() unexpected error: %v", err)
		}
		got, err := json.Marshal(d)
		if err != nil {
			t.Fatalf("json.Marshal() unexpected error: %v", err)
		}
		if string(got) != tc.want {
			t.Errorf("json.Marshal(Dose) = %s, want %s", got, tc.want)
		}
	}
}
