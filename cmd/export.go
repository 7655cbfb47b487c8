package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/mycarbs"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the food library to a JSON file" }
func (*exportCmd) Usage() string {
	return `mycarbs export [-o <file>]

  Writes every food, in canonical form, as an indented JSON array.
  The file can be edited and read back with 'mycarbs import'.
  Use -o - to write to the standard output.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", mycarbs.ExportFilename, "Output file, - for the standard output")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, _, done, err := openApp(ctx)
	if err != nil {
		return fail("opening the store", err)
	}
	defer done()

	foods, err := app.Foods().ExportAll(ctx)
	if err != nil {
		return fail("loading foods", err)
	}

	var w io.Writer = os.Stdout
	if c.output != "-" {
		file, err := os.Create(c.output)
		if err != nil {
			return fail("creating the export file", err)
		}
		defer file.Close()
		w = file
	}
	if err := mycarbs.EncodeExport(w, foods); err != nil {
		return fail("writing the export file", err)
	}
	if c.output != "-" {
		fmt.Fprintf(os.Stderr, "✅ Exported %d food(s) to %s.\n", len(foods), c.output)
	}
	return subcommands.ExitSuccess
}

type importCmd struct {
	path string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "add the foods of a JSON file to the library" }
func (*importCmd) Usage() string {
	return `mycarbs import [-path <jsonpath>] <file>

  Adds every food of the file as a new food. Ids and creation times of the
  file are ignored. Records without a name or carbsPer100g, or invalid ones,
  are skipped (run with -v to see why).

  By default the file is a JSON array of foods, like the one written by
  'mycarbs export'. -path selects the foods in another document.

Usage Examples:
$ mycarbs import mycarbs_foods.json
$ mycarbs import -path '$.data.foods' backup.json
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.path, "path", "$", "JSONPath of the foods in the document")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: import takes exactly one file.")
		return subcommands.ExitUsageError
	}
	file, err := os.Open(f.Arg(0))
	if err != nil {
		return fail("opening the import file", err)
	}
	defer file.Close()

	records, err := mycarbs.DecodeImport(file, c.path)
	if err != nil {
		return fail("reading the import file", err)
	}

	app, _, done, err := openApp(ctx)
	if err != nil {
		return fail("opening the store", err)
	}
	defer done()

	res, err := app.Foods().ImportBatch(ctx, records)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Imported %d food(s) before the failure.\n", res.Imported)
		return fail("importing", err)
	}
	fmt.Printf("✅ Imported %d food(s), skipped %d.\n", res.Imported, res.Skipped)
	return subcommands.ExitSuccess
}
