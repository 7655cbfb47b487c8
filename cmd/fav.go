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

type favCmd struct{}

func (*favCmd) Name() string     { return "fav" }
func (*favCmd) Synopsis() string { return "toggle the favorite mark of foods" }
func (*favCmd) Usage() string {
	return `mycarbs fav <id>...

  Marks, or unmarks, foods as favorites and lists the favorites.
`
}

func (*favCmd) SetFlags(f *flag.FlagSet) {}

func (c *favCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: fav takes at least one food id.")
		return subcommands.ExitUsageError
	}
	app, _, done, err := openSession(ctx)
	if err != nil {
		return fail("opening the session", err)
	}
	defer done()

	var foods []mycarbs.Food
	for _, id := range f.Args() {
		foods, err = app.Foods().ToggleFavorite(ctx, id)
		if err != nil {
			return fail("updating the food", err)
		}
	}
	q := mycarbs.Query{FavoritesOnly: true}
	printMarkdown(renderer.FoodsMarkdown("Favorites", q.Apply(foods)))
	return subcommands.ExitSuccess
}

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete foods" }
func (*rmCmd) Usage() string {
	return `mycarbs rm <id>...

  Deletes foods from the library. Unknown ids are ignored.
`
}

func (*rmCmd) SetFlags(f *flag.FlagSet) {}

func (c *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: rm takes at least one food id.")
		return subcommands.ExitUsageError
	}
	app, _, done, err := openSession(ctx)
	if err != nil {
		return fail("opening the session", err)
	}
	defer done()

	before, err := app.Foods().List(ctx)
	if err != nil {
		return fail("loading foods", err)
	}
	after := before
	for _, id := range f.Args() {
		after, err = app.Foods().Remove(ctx, id)
		if err != nil {
			return fail("deleting the food", err)
		}
	}
	fmt.Printf("✅ Deleted %d food(s).\n", len(before)-len(after))
	return subcommands.ExitSuccess
}

type memberCmd struct {
	category string
	remove   bool
	unlist   bool
}

func (*memberCmd) Name() string     { return "member" }
func (*memberCmd) Synopsis() string { return "add foods to a category, or remove them from it" }
func (*memberCmd) Usage() string {
	return `mycarbs member -c <category> [-remove | -unlist] <id>...

  Without -remove or -unlist, files every food in the category. Nothing is
  changed if one id is unknown.

  -remove takes foods out of the category but refuses to leave a food
  without any category. -unlist takes them out regardless, a food left
  without category is then shown in "Other".
`
}

func (c *memberCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "c", "", "Category (required)")
	f.BoolVar(&c.remove, "remove", false, "Remove the foods from the category, keeping at least one category")
	f.BoolVar(&c.unlist, "unlist", false, "Remove the foods from the category")
}

// apply changes the membership of the foods in ids.
func (c *memberCmd) apply(ctx context.Context, r *mycarbs.Repository, ids []string) error {
	if !c.remove && !c.unlist {
		_, err := r.AddToList(ctx, c.category, ids...)
		return err
	}
	for _, id := range ids {
		var err error
		if c.remove {
			_, err = r.SetCategoryMembership(ctx, id, c.category, false)
		} else {
			_, err = r.RemoveFromList(ctx, id, c.category)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *memberCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.category == "" || f.NArg() == 0 || (c.remove && c.unlist) {
		fmt.Fprintln(os.Stderr, "Error: member takes -c, at most one of -remove and -unlist, and at least one food id.")
		return subcommands.ExitUsageError
	}
	app, _, done, err := openSession(ctx)
	if err != nil {
		return fail("opening the session", err)
	}
	defer done()

	if err := c.apply(ctx, app.Foods(), f.Args()); err != nil {
		return fail("changing the category", err)
	}
	foods, err := app.Foods().List(ctx)
	if err != nil {
		return fail("loading foods", err)
	}
	q := mycarbs.Query{Category: c.category}
	printMarkdown(renderer.FoodsMarkdown(c.category, q.Apply(foods)))
	return subcommands.ExitSuccess
}
