package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/mycarbs"
	"github.com/etnz/mycarbs/renderer"
	"github.com/google/subcommands"
)

type profileCmd struct {
	name       string
	email      string
	icr        string
	theme      string
	accent     string
	view       string
	quantities quantitiesFlag
}

func (*profileCmd) Name() string     { return "profile" }
func (*profileCmd) Synopsis() string { return "show or change the profile settings" }
func (*profileCmd) Usage() string {
	return `mycarbs profile [-name <name>] [-email <email>] [-icr <grams>] [-theme <theme>] [-accent <color>] [-view <mode>] [-quantities <list>]

  Without flags, shows the profile of the session. Otherwise changes the
  given settings only.

Usage Examples:
# One unit of insulin covers 12 g of carbohydrate.
$ mycarbs profile -icr 12

# Offer 1/2, 1 and 2 servings in the calculator.
$ mycarbs profile -quantities 0.5,1,2

# Back to the built-in quantity shortcuts.
$ mycarbs profile -quantities ""
`
}

func (c *profileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Display name")
	f.StringVar(&c.email, "email", "", "Email")
	f.StringVar(&c.icr, "icr", "", "Grams of carbohydrate covered by one unit of insulin, 0 disables doses")
	f.StringVar(&c.theme, "theme", "", "Theme: system, light or dark")
	f.StringVar(&c.accent, "accent", "", "Accent color: "+accents())
	f.StringVar(&c.view, "view", "", "Food list view: grid or list")
	f.Var(&c.quantities, "quantities", "Comma separated quantity shortcuts, empty for the defaults")
}

func accents() string {
	names := make([]string, len(mycarbs.Accents))
	for i, a := range mycarbs.Accents {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

// update builds the profile change from the flags that were set.
func (c *profileCmd) update(f *flag.FlagSet) (u mycarbs.ProfileUpdate, changed bool, err error) {
	f.Visit(func(fl *flag.Flag) {
		changed = true
		switch fl.Name {
		case "name":
			u.Name = &c.name
		case "email":
			u.Email = &c.email
		case "icr":
			icr, perr := strconv.ParseFloat(c.icr, 64)
			if perr != nil {
				err = fmt.Errorf("invalid -icr %q: %w", c.icr, perr)
			}
			u.ICR = &icr
		case "theme":
			t := mycarbs.Theme(c.theme)
			u.ThemePreference = &t
		case "accent":
			a := mycarbs.Accent(c.accent)
			u.AccentColor = &a
		case "view":
			v := mycarbs.ViewMode(c.view)
			u.ViewMode = &v
		case "quantities":
			u.CustomQuantities = c.quantities.values
		}
	})
	return u, changed, err
}

func (c *profileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	u, changed, err := c.update(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	app, _, done, err := openSession(ctx)
	if err != nil {
		return fail("opening the session", err)
	}
	defer done()

	p, err := app.Profile()
	if changed {
		p, err = app.UpdateProfile(ctx, u)
	}
	if err != nil {
		return fail("updating the profile", err)
	}
	printMarkdown(renderer.ProfileMarkdown(p))
	return subcommands.ExitSuccess
}
