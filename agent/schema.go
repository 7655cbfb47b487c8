package agent

import (
	"fmt"
	"strings"

	"github.com/etnz/mycarbs"
	"google.golang.org/genai"
)

// foodSchema constrains the model answer to a food record.
func foodSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name": {
				Type:        genai.TypeString,
				Description: "Short name of the food, as shown in a list.",
			},
			"carbsPer100g": {
				Type:        genai.TypeNumber,
				Description: "Grams of carbohydrate in 100 g of the food.",
			},
			"portions": {
				Type:        genai.TypeArray,
				Description: "Usual servings of the food.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":  {Type: genai.TypeString, Description: "Serving, like '1 slice'."},
						"carbs": {Type: genai.TypeNumber, Description: "Grams of carbohydrate in one serving."},
					},
					Required: []string{"name", "carbs"},
				},
			},
			"categories": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required:         []string{"name", "carbsPer100g", "portions", "categories"},
		PropertyOrdering: []string{"name", "carbsPer100g", "portions", "categories"},
	}
}

// decodeEstimate reads the food record of a model answer.
func decodeEstimate(resp *genai.GenerateContentResponse) (mycarbs.FoodInput, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return mycarbs.FoodInput{}, fmt.Errorf("no response from the model")
	}
	text := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	// some models still wrap JSON in a code fence
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	f, err := mycarbs.NormalizeFood([]byte(text))
	if err != nil {
		return mycarbs.FoodInput{}, fmt.Errorf("unexpected answer %q: %w", text, err)
	}
	in := f.Input()
	if err := in.Validate(); err != nil {
		return mycarbs.FoodInput{}, err
	}
	return in, nil
}
