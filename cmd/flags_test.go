package cmd

import (
	"flag"
	"testing"

	"github.com/etnz/mycarbs"
	"github.com/google/go-cmp/cmp"
)

func TestParsePortion(t *testing.T) {
	testCases := []struct {
		input   string
		want    mycarbs.Portion
		wantErr bool
	}{
		{"1 slice=15", mycarbs.Portion{Name: "1 slice", Carbs: 15}, false},
		{" 1 cup = 22.5 ", mycarbs.Portion{Name: "1 cup", Carbs: 22.5}, false},
		{"a=b=3", mycarbs.Portion{Name: "a=b", Carbs: 3}, false},
		{"slice", mycarbs.Portion{}, true},
		{"=15", mycarbs.Portion{}, true},
		{"slice=many", mycarbs.Portion{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := parsePortion(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("parsePortion(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("parsePortion(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseQuantities(t *testing.T) {
	testCases := []struct {
		input   string
		want    []float64
		wantErr bool
	}{
		{"0.5,1,2", []float64{0.5, 1, 2}, false},
		{" 0.25 , 3 ", []float64{0.25, 3}, false},
		{"", []float64{}, false},
		{"1,,2", nil, true},
		{"one", nil, true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := parseQuantities(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("parseQuantities(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("parseQuantities(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestFoodFlags(t *testing.T) {
	var c foodFlags
	f := flag.NewFlagSet("edit", flag.ContinueOnError)
	c.setFlags(f)
	err := f.Parse([]string{"-carbs", "50", "-portion", "1 slice=15", "-portion", "2 slices=30", "-c", "Breakfast", "-c", "Snack"})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	in := mycarbs.FoodInput{
		Name:         "Bread",
		CarbsPer100g: 43,
		Portions:     []mycarbs.Portion{{Name: "Portion", Carbs: 0}},
		Categories:   []string{"Other"},
		ImageURL:     "https://example.com/bread.jpg",
	}
	want := mycarbs.FoodInput{
		Name:         "Bread",
		CarbsPer100g: 50,
		Portions:     []mycarbs.Portion{{Name: "1 slice", Carbs: 15}, {Name: "2 slices", Carbs: 30}},
		Categories:   []string{"Breakfast", "Snack"},
		ImageURL:     "https://example.com/bread.jpg",
	}
	if diff := cmp.Diff(want, c.apply(f, in)); diff != "" {
		t.Errorf("apply() mismatch (-want +got):\n%s", diff)
	}
}

func TestDoseSpec(t *testing.T) {
	testCases := []struct {
		args    []string
		want    mycarbs.QuantitySpec
		wantErr bool
	}{
		{nil, mycarbs.Units{PortionIndex: 0, Multiplier: 1}, false},
		{[]string{"-p", "1", "-x", "1.5"}, mycarbs.Units{PortionIndex: 1, Multiplier: 1.5}, false},
		{[]string{"-g", "150"}, mycarbs.Weight{Grams: 150}, false},
		{[]string{"-g", "150", "-x", "2"}, nil, true},
	}
	for _, tc := range testCases {
		var c doseCmd
		f := flag.NewFlagSet("dose", flag.ContinueOnError)
		c.SetFlags(f)
		if err := f.Parse(tc.args); err != nil {
			t.Fatalf("Parse(%v) unexpected error: %v", tc.args, err)
		}
		got, err := c.spec(f)
		if (err != nil) != tc.wantErr {
			t.Errorf("spec(%v) error = %v, wantErr %v", tc.args, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("spec(%v) = %v, want %v", tc.args, got, tc.want)
		}
	}
}

func TestProfileUpdate(t *testing.T) {
	var c profileCmd
	f := flag.NewFlagSet("profile", flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse([]string{"-icr", "12", "-theme", "dark", "-quantities", ""}); err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	u, changed, err := c.update(f)
	if err != nil || !changed {
		t.Fatalf("update() = %v, %v, want a change", changed, err)
	}
	if u.ICR == nil || *u.ICR != 12 {
		t.Errorf("update().ICR = %v, want 12", u.ICR)
	}
	if u.ThemePreference == nil || *u.ThemePreference != mycarbs.ThemeDark {
		t.Errorf("update().ThemePreference = %v, want %v", u.ThemePreference, mycarbs.ThemeDark)
	}
	if u.CustomQuantities == nil || len(u.CustomQuantities) != 0 {
		t.Errorf("update().CustomQuantities = %#v, want an empty list", u.CustomQuantities)
	}
	if u.Name != nil || u.ViewMode != nil {
		t.Errorf("update() changed settings whose flag was not set")
	}

	var bad profileCmd
	f = flag.NewFlagSet("profile", flag.ContinueOnError)
	bad.SetFlags(f)
	f.Parse([]string{"-icr", "twelve"})
	if _, _, err := bad.update(f); err == nil {
		t.Errorf("update() with -icr twelve succeeded, want an error")
	}
}
