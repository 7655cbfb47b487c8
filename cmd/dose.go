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

type doseCmd struct {
	portion    int
	multiplier float64
	grams      float64
}

func (*doseCmd) Name() string     { return "dose" }
func (*doseCmd) Synopsis() string { return "compute the carbohydrates and insulin of a meal" }
func (*doseCmd) Usage() string {
	return `mycarbs dose [-p <portion>] [-x <multiplier>] <id>
mycarbs dose -g <grams> <id>

  Computes the carbohydrates of a quantity of food, and the insulin units
  that cover them with the insulin-to-carb ratio of the profile.

  A quantity is either a number of portions (-p selects the portion by its
  position, -x the number of them) or a weight in grams (-g).

Usage Examples:
# One and a half of the second portion.
$ mycarbs dose -p 1 -x 1.5 3f2a...

# 150 g.
$ mycarbs dose -g 150 3f2a...
`
}

func (c *doseCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.portion, "p", 0, "Position of the portion, starting at 0")
	f.Float64Var(&c.multiplier, "x", 1, "Number of portions")
	f.Float64Var(&c.grams, "g", 0, "Weight in grams")
}

// spec returns the quantity described by the flags.
func (c *doseCmd) spec(f *flag.FlagSet) (mycarbs.QuantitySpec, error) {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	if set["g"] {
		if set["p"] || set["x"] {
			return nil, fmt.Errorf("-g cannot be combined with -p or -x")
		}
		return mycarbs.Weight{Grams: c.grams}, nil
	}
	return mycarbs.Units{PortionIndex: c.portion, Multiplier: c.multiplier}, nil
}

func (c *doseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	spec, err := c.spec(f)
	if err != nil || f.NArg() != 1 {
		if err == nil {
			err = fmt.Errorf("dose takes exactly one food id")
		}
		fmt.Fprintf(os.Stderr, "Error: %v.\n", err)
		return subcommands.ExitUsageError
	}
	app, _, done, err := openSession(ctx)
	if err != nil {
		return fail("opening the session", err)
	}
	defer done()

	food, dose, err := app.Dose(ctx, f.Arg(0), spec)
	if err != nil {
		return fail("computing the dose", err)
	}
	printMarkdown(renderer.DoseMarkdown(food, spec, dose))
	return subcommands.ExitSuccess
}
