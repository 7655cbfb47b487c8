package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type signupCmd struct{}

func (*signupCmd) Name() string     { return "signup" }
func (*signupCmd) Synopsis() string { return "create a profile and open a session" }
func (*signupCmd) Usage() string {
	return `mycarbs signup <email>

  Creates a new profile for <email>, with the default categories and settings,
  and opens a session on it. The food library is kept.
`
}

func (*signupCmd) SetFlags(f *flag.FlagSet) {}

func (c *signupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: signup takes exactly one email.")
		return subcommands.ExitUsageError
	}
	app, _, done, err := openApp(ctx)
	if err != nil {
		return fail("opening the store", err)
	}
	defer done()

	p, err := app.SignUp(ctx, f.Arg(0))
	if err != nil {
		return fail("signing up", err)
	}
	fmt.Printf("✅ Signed up as %s.\n", p.Email)
	return subcommands.ExitSuccess
}

type signinCmd struct{}

func (*signinCmd) Name() string     { return "signin" }
func (*signinCmd) Synopsis() string { return "open a session on the stored profile" }
func (*signinCmd) Usage() string {
	return `mycarbs signin <email>

  Opens a session on the stored profile if its email matches <email>,
  ignoring case. Use 'mycarbs signup' to create a profile.
`
}

func (*signinCmd) SetFlags(f *flag.FlagSet) {}

func (c *signinCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: signin takes exactly one email.")
		return subcommands.ExitUsageError
	}
	app, _, done, err := openApp(ctx)
	if err != nil {
		return fail("opening the store", err)
	}
	defer done()

	p, err := app.SignIn(ctx, f.Arg(0))
	if err != nil {
		return fail("signing in", err)
	}
	fmt.Printf("✅ Signed in as %s.\n", p.Email)
	return subcommands.ExitSuccess
}

type guestCmd struct{}

func (*guestCmd) Name() string     { return "guest" }
func (*guestCmd) Synopsis() string { return "open a session without an account" }
func (*guestCmd) Usage() string {
	return `mycarbs guest

  Creates a guest profile and opens a session on it.
`
}

func (*guestCmd) SetFlags(f *flag.FlagSet) {}

func (c *guestCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, _, done, err := openApp(ctx)
	if err != nil {
		return fail("opening the store", err)
	}
	defer done()

	if _, err := app.Guest(ctx); err != nil {
		return fail("starting a guest session", err)
	}
	fmt.Println("✅ Started a guest session.")
	return subcommands.ExitSuccess
}

type signoutCmd struct {
	deleteAccount bool
}

func (*signoutCmd) Name() string     { return "signout" }
func (*signoutCmd) Synopsis() string { return "close the session" }
func (*signoutCmd) Usage() string {
	return `mycarbs signout [-delete]

  Closes the session. The profile is forgotten, the food library is kept.
  With -delete, the food library is erased too.
`
}

func (c *signoutCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.deleteAccount, "delete", false, "Also erase the food library")
}

func (c *signoutCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, _, done, err := openApp(ctx)
	if err != nil {
		return fail("opening the store", err)
	}
	defer done()

	if c.deleteAccount {
		if err := app.DeleteAccount(ctx); err != nil {
			return fail("deleting the account", err)
		}
		fmt.Println("✅ Account and food library deleted.")
		return subcommands.ExitSuccess
	}
	if err := app.SignOut(ctx); err != nil {
		return fail("signing out", err)
	}
	fmt.Println("✅ Signed out.")
	return subcommands.ExitSuccess
}
