package mycarbs

// SampleFoods is a small library to start with, see [WithSeed].
func SampleFoods() []FoodInput {
	return []FoodInput{
		{
			Name:            "Medium Apple",
			CarbsPer100g:    14,
			Portions:        []Portion{{Name: "1 medium apple", Carbs: 25}},
			Categories:      []string{"Fruit", "Snack"},
			IsFavorite:      true,
			ImageURL:        "https://cdn.pixabay.com/photo/2016/11/29/03/23/apples-1867043_1280.jpg",
			QuantityButtons: []float64{0.5, 1, 2},
		},
		{
			Name:            "White Bread",
			CarbsPer100g:    49,
			Portions:        []Portion{{Name: "1 slice", Carbs: 15}, {Name: "1 loaf", Carbs: 200}},
			Categories:      []string{"Breakfast"},
			ImageURL:        "https://cdn.pixabay.com/photo/2016/07/11/17/31/bread-1510155_1280.jpg",
			QuantityButtons: []float64{1, 2, 4},
		},
		{
			Name:         "Pasta (Cooked)",
			CarbsPer100g: 31,
			Portions:     []Portion{{Name: "1 cup", Carbs: 45}},
			Categories:   []string{"Dinner", "Lunch"},
			IsFavorite:   true,
			ImageURL:     "https://cdn.pixabay.com/photo/2020/05/10/15/10/tagliatelle-5154360_1280.jpg",
		},
		{
			Name:         "Banana",
			CarbsPer100g: 23,
			Portions:     []Portion{{Name: "1 medium banana", Carbs: 27}},
			Categories:   []string{"Fruit", "Breakfast", "Snack"},
			ImageURL:     "https://cdn.pixabay.com/photo/2015/11/05/23/08/banana-1025109_1280.jpg",
		},
		{
			Name:         "Pizza Margherita",
			CarbsPer100g: 33,
			Portions:     []Portion{{Name: "1 slice", Carbs: 35}, {Name: "Whole Pizza", Carbs: 260}},
			Categories:   []string{"Dinner", "Lunch"},
			IsFavorite:   true,
			ImageURL:     "https://cdn.pixabay.com/photo/2017/12/10/14/47/pizza-3010062_1280.jpg",
		},
	}
}
