package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/mycarbs"
	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"
)

// library reads the foods stored in dir.
func library(t *testing.T, dir string) []mycarbs.Food {
	t.Helper()
	store, err := mycarbs.NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() unexpected error: %v", err)
	}
	foods, err := mycarbs.NewRepository(store).List(t.Context())
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	return foods
}

func TestCommands(t *testing.T) {
	dir := useDir(t)

	if got := run(t, "list"); got != subcommands.ExitFailure {
		t.Errorf("list without session = %v, want %v", got, subcommands.ExitFailure)
	}
	if got := run(t, "guest"); got != subcommands.ExitSuccess {
		t.Fatalf("guest = %v, want success", got)
	}
	if got := run(t, "add", "-name", "Whole Wheat Bread", "-carbs", "43", "-portion", "1 slice=15", "-c", "Breakfast"); got != subcommands.ExitSuccess {
		t.Fatalf("add = %v, want success", got)
	}

	foods := library(t, dir)
	if len(foods) != 1 {
		t.Fatalf("after add, library has %d foods, want 1", len(foods))
	}
	id := foods[0].ID
	if diff := cmp.Diff([]mycarbs.Portion{{Name: "1 slice", Carbs: 15}}, foods[0].Portions); diff != "" {
		t.Errorf("added portions mismatch (-want +got):\n%s", diff)
	}

	steps := []struct {
		args []string
		want subcommands.ExitStatus
	}{
		{[]string{"member", "-c", "Snack", id}, subcommands.ExitSuccess},
		{[]string{"fav", id}, subcommands.ExitSuccess},
		{[]string{"dose", "-p", "0", "-x", "2", id}, subcommands.ExitSuccess},
		{[]string{"dose", "-g", "100", "-x", "2", id}, subcommands.ExitUsageError},
		{[]string{"dose", "unknown-id"}, subcommands.ExitFailure},
		{[]string{"list", "-sort", "random"}, subcommands.ExitUsageError},
		{[]string{"list", "-c", "Snack", "-fav"}, subcommands.ExitSuccess},
		{[]string{"show", id}, subcommands.ExitSuccess},
		{[]string{"profile", "-icr", "10"}, subcommands.ExitSuccess},
		{[]string{"category", "rename", "Snack", "Snacks"}, subcommands.ExitSuccess},
		{[]string{"category", "fly", "away"}, subcommands.ExitFailure},
		{[]string{"fmt"}, subcommands.ExitSuccess},
		{[]string{"topic", "dose"}, subcommands.ExitSuccess},
		{[]string{"topic", "nowhere"}, subcommands.ExitFailure},
	}
	for _, step := range steps {
		if got := run(t, step.args...); got != step.want {
			t.Errorf("%v = %v, want %v", step.args, got, step.want)
		}
	}

	foods = library(t, dir)
	if diff := cmp.Diff([]string{"Breakfast", "Snacks"}, foods[0].Categories); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
	if !foods[0].IsFavorite {
		t.Errorf("fav did not mark the food as a favorite")
	}

	export := filepath.Join(t.TempDir(), "export.json")
	if got := run(t, "export", "-o", export); got != subcommands.ExitSuccess {
		t.Fatalf("export = %v, want success", got)
	}
	data, err := os.ReadFile(export)
	if err != nil {
		t.Fatalf("cannot read export: %v", err)
	}
	var exported []mycarbs.Food
	if err := json.Unmarshal(data, &exported); err != nil {
		t.Fatalf("export is not a food array: %v", err)
	}
	if diff := cmp.Diff(foods, exported); diff != "" {
		t.Errorf("exported foods mismatch (-want +got):\n%s", diff)
	}

	if got := run(t, "rm", id); got != subcommands.ExitSuccess {
		t.Fatalf("rm = %v, want success", got)
	}
	if got := len(library(t, dir)); got != 0 {
		t.Errorf("after rm, library has %d foods, want 0", got)
	}
	if got := run(t, "import", export); got != subcommands.ExitSuccess {
		t.Fatalf("import = %v, want success", got)
	}
	imported := library(t, dir)
	if len(imported) != 1 || imported[0].Name != "Whole Wheat Bread" || imported[0].ID == id {
		t.Errorf("import gave %v, want the bread back under a new id", imported)
	}

	if got := run(t, "signout", "-delete"); got != subcommands.ExitSuccess {
		t.Fatalf("signout -delete = %v, want success", got)
	}
	if got := len(library(t, dir)); got != 0 {
		t.Errorf("after signout -delete, library has %d foods, want 0", got)
	}
	if got := run(t, "show", id); got != subcommands.ExitFailure {
		t.Errorf("show after signout = %v, want %v", got, subcommands.ExitFailure)
	}
}
