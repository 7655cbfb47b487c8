package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/etnz/mycarbs"
	"github.com/etnz/mycarbs/renderer"
	"github.com/google/subcommands"
)

type listCmd struct {
	search    string
	category  string
	sort      string
	favorites bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the foods of the library" }
func (*listCmd) Usage() string {
	return `mycarbs list [-q <text>] [-c <category>] [-sort <order>] [-fav]

  Lists the foods matching every given filter.
  Orders: date_desc (newest first, default), alpha_asc, carbs_high, carbs_low.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.search, "q", "", "Keep foods whose name contains the text, ignoring case")
	f.StringVar(&c.category, "c", mycarbs.AllCategories, "Keep foods of the category")
	f.StringVar(&c.sort, "sort", string(mycarbs.SortDateDesc), "Order of the list")
	f.BoolVar(&c.favorites, "fav", false, "Keep favorite foods only")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	q := mycarbs.Query{
		Search:        c.search,
		Category:      c.category,
		Sort:          mycarbs.SortOption(c.sort),
		FavoritesOnly: c.favorites,
	}
	if !slices.Contains(mycarbs.SortOptions, q.Sort) {
		fmt.Fprintf(os.Stderr, "Error: unknown order %q.\n", c.sort)
		return subcommands.ExitUsageError
	}

	app, _, done, err := openSession(ctx)
	if err != nil {
		return fail("opening the session", err)
	}
	defer done()

	foods, err := app.Foods().List(ctx)
	if err != nil {
		return fail("loading foods", err)
	}
	title := "Foods"
	if q.Category != mycarbs.AllCategories && q.Category != "" {
		title = q.Category
	}
	printMarkdown(renderer.FoodsMarkdown(title, q.Apply(foods)))
	return subcommands.ExitSuccess
}

type showCmd struct{}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show a food" }
func (*showCmd) Usage() string {
	return `mycarbs show <id>

  Shows a food, its portions and the quantity shortcuts of the calculator.
`
}

func (*showCmd) SetFlags(f *flag.FlagSet) {}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: show takes exactly one food id.")
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
	shortcuts, err := app.Shortcuts(ctx, food.ID)
	if err != nil {
		return fail("loading the food", err)
	}
	printMarkdown(renderer.FoodMarkdown(food, shortcuts))
	return subcommands.ExitSuccess
}
