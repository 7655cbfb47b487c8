package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/mycarbs"
	"github.com/etnz/mycarbs/agent"
	"github.com/etnz/mycarbs/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type suggestCmd struct {
	interactive bool
	save        bool
}

func (*suggestCmd) Name() string     { return "suggest" }
func (*suggestCmd) Synopsis() string { return "estimate the carbohydrates of a food with Gemini" }
func (*suggestCmd) Usage() string {
	return `mycarbs suggest [-i] [-save] <description>

  Asks a Gemini model for the carbohydrates and usual portions of the
  described food. The estimate is only a draft: check it against the
  nutrition label when there is one.

  With -i, corrections can be typed until the draft is accepted with an
  empty line. With -save, the accepted draft is added to the library.

  Needs GEMINI_API_KEY in the environment or in .env.

Usage Examples:
$ mycarbs suggest -i -save "homemade pancake, 15 cm"
`
}

func (c *suggestCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.interactive, "i", false, "Refine the estimate interactively")
	f.BoolVar(&c.save, "save", false, "Add the estimated food to the library")
}

// draftMarkdown renders a draft as if it were a stored food.
func draftMarkdown(in mycarbs.FoodInput, profile mycarbs.Profile) string {
	f := mycarbs.Food{
		Name:            in.Name,
		CarbsPer100g:    in.CarbsPer100g,
		Portions:        in.Portions,
		Categories:      in.Categories,
		QuantityButtons: in.QuantityButtons,
	}
	return renderer.FoodMarkdown(f, mycarbs.ResolveShortcuts(f, profile))
}

func (c *suggestCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	description := strings.TrimSpace(strings.Join(f.Args(), " "))
	if description == "" {
		fmt.Fprintln(os.Stderr, "Error: suggest takes a description of the food.")
		return subcommands.ExitUsageError
	}
	app, cfg, done, err := openSession(ctx)
	if err != nil {
		return fail("opening the session", err)
	}
	defer done()
	profile, err := app.Profile()
	if err != nil {
		return fail("opening the session", err)
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fail("initializing Gemini's client", err)
	}
	estimator := agent.NewEstimator(cfg.GeminiModel, profile.Categories)
	if err := estimator.Start(ctx, client); err != nil {
		return fail("starting the estimator", err)
	}

	show := func(in mycarbs.FoodInput) { printMarkdown(draftMarkdown(in, profile)) }
	var draft mycarbs.FoodInput
	if c.interactive {
		draft, err = estimator.Run(ctx, os.Stdout, os.Stdin, description, show)
		if errors.Is(err, io.EOF) {
			fmt.Println("Draft dropped.")
			return subcommands.ExitSuccess
		}
	} else {
		draft, err = estimator.Estimate(ctx, description)
		if err == nil {
			show(draft)
		}
	}
	if err != nil {
		return fail("estimating", err)
	}

	if !c.save {
		return subcommands.ExitSuccess
	}
	food, err := app.Foods().Add(ctx, draft)
	if err != nil {
		return fail("adding the food", err)
	}
	fmt.Printf("✅ Added %s (%s).\n", food.Name, food.ID)
	return subcommands.ExitSuccess
}
