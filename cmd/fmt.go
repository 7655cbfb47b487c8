package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/mycarbs"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "rewrites the stored data in canonical form"
}
func (*fmtCmd) Usage() string {
	return `mycarbs fmt

  Reads the profile and every food, upgrades records written by older
  versions (single category, standard unit) and writes them back in
  canonical form. Data is upgraded when read anyway, fmt just does it now.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, _, done, err := openApp(ctx)
	if err != nil {
		return fail("opening the store", err)
	}
	defer done()

	// resuming loads, and upgrades, the profile
	if _, err := app.Resume(ctx); err != nil && !errors.Is(err, mycarbs.ErrNoSession) {
		return fail("formatting the profile", err)
	}
	n, err := app.Foods().Migrate(ctx)
	if err != nil {
		return fail("formatting foods", err)
	}
	fmt.Fprintf(os.Stderr, "✅ Upgraded %d food record(s).\n", n)
	return subcommands.ExitSuccess
}
