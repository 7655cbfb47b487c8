package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/mycarbs"
	"github.com/etnz/mycarbs/renderer"
	"github.com/google/subcommands"
)

type categoryCmd struct{}

func (*categoryCmd) Name() string     { return "category" }
func (*categoryCmd) Synopsis() string { return "manage the food categories" }
func (*categoryCmd) Usage() string {
	return `mycarbs category [add <name> | rename <from> <to> | delete <name> | move <name> <index>]

  Without arguments, lists the categories.

  - add: appends a category, nothing happens if it exists.
  - rename: renames a category, in the profile and in every food filed in it.
  - delete: deletes a category and removes every food from it. Foods left
    without a category are shown in "Other".
  - move: moves a category to a 0-based position.
`
}

func (*categoryCmd) SetFlags(f *flag.FlagSet) {}

// runCategory applies a category action to the session.
func runCategory(ctx context.Context, app *mycarbs.App, args []string) (mycarbs.Profile, error) {
	if len(args) == 0 {
		return app.Profile()
	}
	want := map[string]int{"add": 2, "rename": 3, "delete": 2, "move": 3}
	n, ok := want[args[0]]
	if !ok {
		return mycarbs.Profile{}, fmt.Errorf("unknown category action %q", args[0])
	}
	if len(args) != n {
		return mycarbs.Profile{}, fmt.Errorf("%s takes %d argument(s)", args[0], n-1)
	}

	switch args[0] {
	case "add":
		return app.AddCategory(ctx, args[1])
	case "rename":
		return app.RenameCategory(ctx, args[1], args[2])
	case "delete":
		return app.DeleteCategory(ctx, args[1])
	default:
		i, err := strconv.Atoi(args[2])
		if err != nil {
			return mycarbs.Profile{}, fmt.Errorf("invalid index %q: %w", args[2], err)
		}
		return app.MoveCategory(ctx, args[1], i)
	}
}

func (c *categoryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, _, done, err := openSession(ctx)
	if err != nil {
		return fail("opening the session", err)
	}
	defer done()

	p, err := runCategory(ctx, app, f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ProfileMarkdown(p))
	return subcommands.ExitSuccess
}
