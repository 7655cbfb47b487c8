package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/mycarbs"
	"github.com/etnz/mycarbs/renderer"
	"github.com/google/subcommands"
)

// foodFlags are the flags shared by add and edit.
type foodFlags struct {
	name       string
	carbs      float64
	image      string
	favorite   bool
	portions   portionsFlag
	categories listFlag
	buttons    quantitiesFlag
}

func (c *foodFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the food")
	f.Float64Var(&c.carbs, "carbs", 0, "Grams of carbohydrate per 100 g")
	f.StringVar(&c.image, "image", "", "URL of a picture")
	f.BoolVar(&c.favorite, "fav", false, "Mark the food as a favorite")
	f.Var(&c.portions, "portion", "A portion as name=carbs, like '1 slice=15' (repeatable)")
	f.Var(&c.categories, "c", "A category of the food (repeatable)")
	f.Var(&c.buttons, "quantities", "Comma separated quantity shortcuts of this food, empty for the profile ones")
}

// apply overwrites the fields of in whose flag was set.
func (c *foodFlags) apply(f *flag.FlagSet, in mycarbs.FoodInput) mycarbs.FoodInput {
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			in.Name = c.name
		case "carbs":
			in.CarbsPer100g = c.carbs
		case "image":
			in.ImageURL = c.image
		case "fav":
			in.IsFavorite = c.favorite
		case "portion":
			in.Portions = []mycarbs.Portion(c.portions)
		case "c":
			in.Categories = []string(c.categories)
		case "quantities":
			in.QuantityButtons = c.buttons.values
		}
	})
	return in
}

type addCmd struct {
	foodFlags
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a food to the library" }
func (*addCmd) Usage() string {
	return `mycarbs add -name <name> -carbs <g/100g> [-portion <name=carbs>]... [-c <category>]... [-image <url>] [-fav] [-quantities <list>]

  Adds a food. Without -portion, the food gets a single "Portion" of 0 g.
  Without -c, it is filed in "Other".

Usage Examples:
$ mycarbs add -name "Whole Wheat Bread" -carbs 43 -portion "1 slice=15" -portion "2 slices=30" -c Breakfast
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name is required.")
		return subcommands.ExitUsageError
	}
	app, _, done, err := openSession(ctx)
	if err != nil {
		return fail("opening the session", err)
	}
	defer done()

	food, err := app.Foods().Add(ctx, c.apply(f, mycarbs.FoodInput{}))
	if err != nil {
		return fail("adding the food", err)
	}
	shortcuts, err := app.Shortcuts(ctx, food.ID)
	if err != nil {
		return fail("loading the food", err)
	}
	printMarkdown(renderer.FoodMarkdown(food, shortcuts))
	return subcommands.ExitSuccess
}

type editCmd struct {
	foodFlags
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change a food" }
func (*editCmd) Usage() string {
	return `mycarbs edit [-name <name>] [-carbs <g/100g>] [-portion <name=carbs>]... [-c <category>]... [-image <url>] [-fav=<bool>] [-quantities <list>] <id>

  Changes the given fields of a food. -portion and -c replace the whole list.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: edit takes exactly one food id.")
		return subcommands.ExitUsageError
	}
	app, _, done, err := openSession(ctx)
	if err != nil {
		return fail("opening the session", err)
	}
	defer done()

	food, err := app.Foods().Get(ctx, f.Arg(0))
	if err != nil {
		return fail("loading the food", err)
	}
	in := c.apply(f, food.Input())
	food.Name, food.CarbsPer100g, food.Portions = in.Name, in.CarbsPer100g, in.Portions
	food.Categories, food.IsFavorite, food.ImageURL = in.Categories, in.IsFavorite, in.ImageURL
	food.QuantityButtons = in.QuantityButtons

	food, err = app.Foods().Update(ctx, food)
	if err != nil {
		return fail("saving the food", err)
	}
	shortcuts, err := app.Shortcuts(ctx, food.ID)
	if err != nil {
		return fail("loading the food", err)
	}
	printMarkdown(renderer.FoodMarkdown(food, shortcuts))
	return subcommands.ExitSuccess
}
