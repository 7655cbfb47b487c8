// Command mycarbs keeps a library of foods and their carbohydrates, and
// computes the insulin dose of a meal.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/mycarbs/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion.
func completion(commander *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flags(flag.CommandLine),
	}
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		root.Sub[c.Name()] = &complete.Command{Flags: flags(fs), Args: predict.Files("*.json")}
	})
	return root
}

func flags(fs *flag.FlagSet) map[string]complete.Predictor {
	m := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[f.Name] = predict.Nothing
			return
		}
		m[f.Name] = predict.Something
	})
	return m
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, "mycarbs")
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	completion(commander).Complete("mycarbs")

	flag.Parse()

	if name := flag.Arg(0); name != "" {
		known := false
		commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
			known = known || c.Name() == name
		})
		if !known {
			if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
				os.Exit(code)
			}
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
