// Package agent estimates the carbohydrates of a food described in plain
// words, with a Gemini model.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/mycarbs"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Estimator is a chat with a model that drafts food records. The chat keeps
// its context, so a draft can be refined by further messages.
type Estimator struct {
	ModelName string                       `json:"model_name"`
	Config    *genai.GenerateContentConfig `json:"config"`
	chat      *genai.Chat
}

// NewEstimator returns an estimator filing foods into one of categories.
func NewEstimator(model string, categories []string) *Estimator {
	if model == "" {
		model = DefaultModel
	}
	return &Estimator{
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   foodSchema(),
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: fmt.Sprintf(`
			You are a nutrition assistant helping a person with diabetes fill their food library.
			For the food the user describes, estimate its carbohydrates in grams per 100 g,
			and list its usual servings with the absolute carbohydrates of one serving.
			Prefer servings people actually count: a slice, a cup, a medium piece.
			File the food in one or more of these categories: %s.
			Answer with a single food record. When the user corrects you, answer with the corrected record.
			`, strings.Join(categories, ", "))}}},
		},
	}
}

// Start opens the chat.
func (e *Estimator) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return err
	}
	e.chat = chat
	return nil
}

// Estimate sends a description, or a correction of the previous draft, and
// returns the drafted food.
func (e *Estimator) Estimate(ctx context.Context, message string) (mycarbs.FoodInput, error) {
	if e.chat == nil {
		return mycarbs.FoodInput{}, fmt.Errorf("estimator is not started")
	}
	resp, err := e.chat.Send(ctx, &genai.Part{Text: message})
	if err != nil {
		return mycarbs.FoodInput{}, err
	}
	return decodeEstimate(resp)
}

const prompt = "refine> "

// Run drafts a food for description, then lets the user refine it from r
// until they accept it with an empty line. show prints a draft. Run returns
// io.EOF if the user leaves with "bye" or end of input.
func (e *Estimator) Run(ctx context.Context, w io.Writer, r io.Reader, description string, show func(mycarbs.FoodInput)) (mycarbs.FoodInput, error) {
	in, err := e.Estimate(ctx, description)
	if err != nil {
		return mycarbs.FoodInput{}, err
	}
	show(in)

	br := bufio.NewReader(r)
	for {
		fmt.Fprint(w, prompt)
		line, err := br.ReadString('\n')
		if err != nil && line == "" {
			return mycarbs.FoodInput{}, io.EOF
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			return in, nil
		case "bye":
			return mycarbs.FoodInput{}, io.EOF
		}

		in, err = e.Estimate(ctx, line)
		if err != nil {
			return mycarbs.FoodInput{}, err
		}
		show(in)
	}
}
