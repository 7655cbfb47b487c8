package mycarbs

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func ptr[T any](v T) *T { return &v }

func TestProfileStore_SignUpSignIn(t *testing.T) {
	ctx := context.Background()
	s := NewProfileStore(NewMemoryStore())

	if _, err := s.SignIn(ctx, "bob@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SignIn() without profile error = %v, want %v", err, ErrNotFound)
	}

	p, err := s.SignUp(ctx, " Bob@Example.com ")
	if err != nil {
		t.Fatalf("SignUp() unexpected error: %v", err)
	}
	want := Profile{
		Email:            "Bob@Example.com",
		Name:             "Bob",
		ICR:              15,
		Categories:       []string{"Breakfast", "Lunch", "Dinner", "Snack", "Drink", "Fruit", "Sweet", "Other"},
		ThemePreference:  ThemeSystem,
		AccentColor:      "cyan",
		ViewMode:         ViewList,
		CustomQuantities: []float64{0.5, 1, 2, 3},
	}
	if diff := cmp.Diff(want, p, cmpopts.IgnoreFields(Profile{}, "ID")); diff != "" {
		t.Errorf("SignUp() mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(p.ID, "user_") {
		t.Errorf("SignUp().ID = %q, want a user_ prefix", p.ID)
	}

	got, err := s.SignIn(ctx, "bob@EXAMPLE.com")
	if err != nil {
		t.Fatalf("SignIn() unexpected error: %v", err)
	}
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("SignIn() mismatch (-want +got):\n%s", diff)
	}
	if _, err := s.SignIn(ctx, "alice@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SignIn() with another email error = %v, want %v", err, ErrNotFound)
	}

	if _, err := s.SignUp(ctx, "  "); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("SignUp() blank email error = %v, want %v", err, ErrValidationFailed)
	}
}

func TestProfileStore_GuestSignOutDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := NewProfileStore(store)

	g, err := s.Guest(ctx)
	if err != nil {
		t.Fatalf("Guest() unexpected error: %v", err)
	}
	if g.Email != GuestEmail || g.Name != "Guest" || !strings.HasPrefix(g.ID, "guest_") {
		t.Errorf("Guest() = %+v, want a guest profile", g)
	}

	store.Put(ctx, FoodsKey, []byte(`[]`))
	if err := s.SignOut(ctx); err != nil {
		t.Fatalf("SignOut() unexpected error: %v", err)
	}
	if _, err := s.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() after SignOut() error = %v, want %v", err, ErrNotFound)
	}
	if _, err := store.Get(ctx, FoodsKey); err != nil {
		t.Errorf("SignOut() removed the foods: %v", err)
	}

	s.Guest(ctx)
	if err := s.DeleteAccount(ctx); err != nil {
		t.Fatalf("DeleteAccount() unexpected error: %v", err)
	}
	for _, key := range []string{UserKey, FoodsKey} {
		if _, err := store.Get(ctx, key); !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("Get(%q) after DeleteAccount() error = %v, want %v", key, err, ErrKeyNotFound)
		}
	}
}

func TestProfileStore_LegacyMigration(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{Store: storeWith(t, UserKey, `{"id":"u1","email":"old@example.com","name":"old","icr":12,"customCategories":["Keto","Snack"]}`)}
	s := NewProfileStore(store)

	p, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	want := Profile{
		ID:               "u1",
		Email:            "old@example.com",
		Name:             "old",
		ICR:              12,
		Categories:       []string{"Breakfast", "Lunch", "Dinner", "Snack", "Drink", "Fruit", "Sweet", "Other", "Keto"},
		ThemePreference:  ThemeSystem,
		AccentColor:      "cyan",
		ViewMode:         ViewList,
		CustomQuantities: []float64{0.5, 1, 2, 3},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if store.puts != 1 {
		t.Errorf("Load() wrote %d time(s), want the migrated profile written once", store.puts)
	}
	data, _ := store.Get(ctx, UserKey)
	if strings.Contains(string(data), "customCategories") {
		t.Errorf("stored profile still has customCategories: %s", data)
	}

	if _, err := s.Load(ctx); err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if store.puts != 1 {
		t.Errorf("Load() rewrote an up to date profile")
	}
}

func TestProfileStore_KeepsExplicitSettings(t *testing.T) {
	stored := `{"id":"u1","email":"a@b.c","name":"a","icr":0,"categories":[],"themePreference":"dark","accentColor":"rose","viewMode":"grid","customQuantities":[1,5]}`
	p, err := NewProfileStore(storeWith(t, UserKey, stored)).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if len(p.Categories) != 0 || p.ThemePreference != ThemeDark || p.AccentColor != "rose" || p.ViewMode != ViewGrid || p.ICR != 0 {
		t.Errorf("Load() = %+v, want the stored settings", p)
	}
	if diff := cmp.Diff([]float64{1, 5}, p.CustomQuantities); diff != "" {
		t.Errorf("Load() quantities mismatch (-want +got):\n%s", diff)
	}
}

func TestProfileStore_Corrupted(t *testing.T) {
	s := NewProfileStore(storeWith(t, UserKey, `{"email":`))
	if _, err := s.Load(context.Background()); !errors.Is(err, ErrStoreCorrupted) {
		t.Errorf("Load() error = %v, want %v", err, ErrStoreCorrupted)
	}
	s = NewProfileStore(&failingStore{Store: NewMemoryStore(), failGet: true})
	if _, err := s.Load(context.Background()); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Load() error = %v, want %v", err, ErrStoreUnavailable)
	}
}

func TestProfileStore_Update(t *testing.T) {
	ctx := context.Background()
	s := NewProfileStore(NewMemoryStore())
	if _, err := s.Update(ctx, ProfileUpdate{ICR: ptr(10.0)}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() without profile error = %v, want %v", err, ErrNotFound)
	}
	s.SignUp(ctx, "a@b.c")

	p, err := s.Update(ctx, ProfileUpdate{
		ICR:              ptr(10.0),
		ViewMode:         ptr(ViewGrid),
		CustomQuantities: []float64{0.25, 1},
		Categories:       []string{" Lunch ", "Lunch", "", "Dinner"},
	})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if p.ICR != 10 || p.ViewMode != ViewGrid || p.ThemePreference != ThemeSystem {
		t.Errorf("Update() = %+v, want icr 10, grid view and system theme", p)
	}
	if diff := cmp.Diff([]string{"Lunch", "Dinner"}, p.Categories); diff != "" {
		t.Errorf("Update() categories mismatch (-want +got):\n%s", diff)
	}
	loaded, _ := s.Load(ctx)
	if diff := cmp.Diff(p, loaded); diff != "" {
		t.Errorf("Load() after Update() mismatch (-want +got):\n%s", diff)
	}

	invalid := []ProfileUpdate{
		{ICR: ptr(-1.0)},
		{Email: ptr(" ")},
		{ThemePreference: ptr(Theme("neon"))},
		{AccentColor: ptr(Accent("gold"))},
		{ViewMode: ptr(ViewMode("table"))},
		{CustomQuantities: []float64{1, -2}},
	}
	for _, u := range invalid {
		if _, err := s.Update(ctx, u); !errors.Is(err, ErrValidationFailed) {
			t.Errorf("Update(%+v) error = %v, want %v", u, err, ErrValidationFailed)
		}
	}
	after, _ := s.Load(ctx)
	if diff := cmp.Diff(p, after); diff != "" {
		t.Errorf("invalid updates changed the profile (-want +got):\n%s", diff)
	}
}

func TestProfileStore_Categories(t *testing.T) {
	ctx := context.Background()
	s := NewProfileStore(NewMemoryStore())
	s.SignUp(ctx, "a@b.c")
	s.Update(ctx, ProfileUpdate{Categories: []string{"Breakfast", "Lunch", "Dinner"}})

	steps := []struct {
		name string
		do   func() (Profile, error)
		want []string
		err  error
	}{
		{"add", func() (Profile, error) { return s.AddCategory(ctx, " Keto ") }, []string{"Breakfast", "Lunch", "Dinner", "Keto"}, nil},
		{"add existing", func() (Profile, error) { return s.AddCategory(ctx, "Lunch") }, []string{"Breakfast", "Lunch", "Dinner", "Keto"}, nil},
		{"add blank", func() (Profile, error) { return s.AddCategory(ctx, "  ") }, nil, ErrValidationFailed},
		{"rename", func() (Profile, error) { return s.RenameCategory(ctx, "Lunch", "Brunch") }, []string{"Breakfast", "Brunch", "Dinner", "Keto"}, nil},
		{"rename onto existing", func() (Profile, error) { return s.RenameCategory(ctx, "Brunch", "Dinner") }, nil, ErrValidationFailed},
		{"rename unknown", func() (Profile, error) { return s.RenameCategory(ctx, "Tea", "Coffee") }, nil, ErrNotFound},
		{"move", func() (Profile, error) { return s.MoveCategory(ctx, "Keto", 0) }, []string{"Keto", "Breakfast", "Brunch", "Dinner"}, nil},
		{"move out of range", func() (Profile, error) { return s.MoveCategory(ctx, "Keto", 4) }, nil, ErrValidationFailed},
		{"delete", func() (Profile, error) { return s.DeleteCategory(ctx, "Brunch") }, []string{"Keto", "Breakfast", "Dinner"}, nil},
		{"delete unknown", func() (Profile, error) { return s.DeleteCategory(ctx, "Brunch") }, nil, ErrNotFound},
	}
	for _, step := range steps {
		p, err := step.do()
		if step.err != nil {
			if !errors.Is(err, step.err) {
				t.Errorf("%s: error = %v, want %v", step.name, err, step.err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", step.name, err)
		}
		if diff := cmp.Diff(step.want, p.Categories); diff != "" {
			t.Errorf("%s: categories mismatch (-want +got):\n%s", step.name, diff)
		}
	}
}
