// Package cmd implements the mycarbs command line application.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/mycarbs"
	"github.com/etnz/mycarbs/config"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&signupCmd{}, "session")
	c.Register(&signinCmd{}, "session")
	c.Register(&guestCmd{}, "session")
	c.Register(&signoutCmd{}, "session")
	c.Register(&profileCmd{}, "session")
	c.Register(&categoryCmd{}, "session")

	c.Register(&listCmd{}, "foods")
	c.Register(&showCmd{}, "foods")
	c.Register(&addCmd{}, "foods")
	c.Register(&editCmd{}, "foods")
	c.Register(&favCmd{}, "foods")
	c.Register(&rmCmd{}, "foods")
	c.Register(&memberCmd{}, "foods")
	c.Register(&suggestCmd{}, "foods")

	c.Register(&doseCmd{}, "dose")

	c.Register(&exportCmd{}, "data")
	c.Register(&importCmd{}, "data")
	c.Register(&fmtCmd{}, "data")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", envOr(EnvConfigFile, config.DefaultFile), "Path to the YAML configuration file")
var storeKind = flag.String("store", "", "Store backend: file, sqlite, s3 or memory (overrides the configuration)")
var dataDir = flag.String("data-dir", "", "Directory of the file and sqlite stores (overrides the configuration)")
var Verbose = flag.Bool("v", false, "Print diagnostics")

func envOr(name, value string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return value
}

// loadConfig reads the configuration, then applies the global flags.
func loadConfig() (config.Config, error) {
	c, err := config.Load(*configFile)
	if err != nil {
		return c, err
	}
	if *storeKind != "" {
		c.Store = *storeKind
	}
	if *dataDir != "" {
		c.DataDir = *dataDir
	}
	if *Verbose {
		c.Verbose = true
	}
	return c, c.Validate()
}

// openApp opens the configured store, without a session. Call done to release
// it.
func openApp(ctx context.Context) (app *mycarbs.App, cfg config.Config, done func(), err error) {
	cfg, err = loadConfig()
	if err != nil {
		return nil, cfg, nil, err
	}
	if cfg.Verbose {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	store, closer, err := cfg.OpenStore(ctx)
	if err != nil {
		return nil, cfg, nil, fmt.Errorf("cannot open %s store: %w", cfg.Store, err)
	}
	var opts []mycarbs.RepositoryOption
	if cfg.SampleFoods {
		opts = append(opts, mycarbs.WithSeed(mycarbs.SampleFoods()))
	}
	done = func() {
		if err := closer(); err != nil {
			log.Printf("closing store: %v", err)
		}
	}
	return mycarbs.NewApp(store, opts...), cfg, done, nil
}

// openSession opens the store and resumes the stored session.
func openSession(ctx context.Context) (*mycarbs.App, config.Config, func(), error) {
	app, cfg, done, err := openApp(ctx)
	if err != nil {
		return nil, cfg, nil, err
	}
	if _, err := app.Resume(ctx); err != nil {
		done()
		if errors.Is(err, mycarbs.ErrNoSession) {
			return nil, cfg, nil, fmt.Errorf("%w: run 'mycarbs signin <email>' or 'mycarbs guest' first", err)
		}
		return nil, cfg, nil, err
	}
	return app, cfg, done, nil
}

// printMarkdown renders markdown to the terminal, or prints it as is if it
// cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// fail reports err on stderr.
func fail(doing string, err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", doing, err)
	return subcommands.ExitFailure
}
