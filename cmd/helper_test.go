package cmd

import (
	"flag"
	"testing"

	"github.com/google/subcommands"
)

// setFlag sets a global flag and returns a function restoring it.
func setFlag(t *testing.T, name, value string) func() {
	t.Helper()
	old := flag.Lookup(name).Value.String()
	if err := flag.Set(name, value); err != nil {
		t.Fatalf("cannot set -%s: %v", name, err)
	}
	return func() { flag.Set(name, old) }
}

// useDir points the global flags to a file store in a temporary directory.
func useDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Cleanup(setFlag(t, "config", ""))
	t.Cleanup(setFlag(t, "store", "file"))
	t.Cleanup(setFlag(t, "data-dir", dir))
	return dir
}

// run executes the command line args like the mycarbs binary does.
func run(t *testing.T, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet("mycarbs", flag.ContinueOnError)
	commander := subcommands.NewCommander(fs, "mycarbs")
	Register(commander)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("cannot parse %v: %v", args, err)
	}
	return commander.Execute(t.Context())
}
