package mycarbs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// App is the application state: one store, the food library and the
// profile kept in it, and the profile of the current session.
//
// Only the session needs an App; the Normalizer and the Dose Calculator are
// plain functions.
type App struct {
	foods    *Repository
	profiles *ProfileStore

	mu      sync.Mutex
	profile *Profile
}

// NewApp returns an App over store, with no active session. opts configure
// the food library.
func NewApp(store Store, opts ...RepositoryOption) *App {
	return &App{
		foods:    NewRepository(store, opts...),
		profiles: NewProfileStore(store),
	}
}

// Foods returns the food library.
func (a *App) Foods() *Repository { return a.foods }

func (a *App) setSession(p Profile) Profile {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.profile = &p
	return p.Clone()
}

func (a *App) clearSession() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.profile = nil
}

// Resume opens a session on the stored profile, if any.
func (a *App) Resume(ctx context.Context) (Profile, error) {
	p, err := a.profiles.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		return Profile{}, ErrNoSession
	}
	if err != nil {
		return Profile{}, err
	}
	return a.setSession(p), nil
}

// SignUp creates a profile and opens a session on it.
func (a *App) SignUp(ctx context.Context, email string) (Profile, error) {
	p, err := a.profiles.SignUp(ctx, email)
	if err != nil {
		return Profile{}, err
	}
	return a.setSession(p), nil
}

// SignIn opens a session on the stored profile of email.
func (a *App) SignIn(ctx context.Context, email string) (Profile, error) {
	p, err := a.profiles.SignIn(ctx, email)
	if err != nil {
		return Profile{}, err
	}
	return a.setSession(p), nil
}

// Guest creates a guest profile and opens a session on it.
func (a *App) Guest(ctx context.Context) (Profile, error) {
	p, err := a.profiles.Guest(ctx)
	if err != nil {
		return Profile{}, err
	}
	return a.setSession(p), nil
}

// SignOut closes the session and forgets the stored profile.
func (a *App) SignOut(ctx context.Context) error {
	if err := a.profiles.SignOut(ctx); err != nil {
		return err
	}
	a.clearSession()
	return nil
}

// DeleteAccount closes the session and deletes the profile and the food
// library.
func (a *App) DeleteAccount(ctx context.Context) error {
	if err := a.profiles.DeleteAccount(ctx); err != nil {
		return err
	}
	a.clearSession()
	return nil
}

// Profile returns the profile of the current session.
func (a *App) Profile() (Profile, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.profile == nil {
		return Profile{}, ErrNoSession
	}
	return a.profile.Clone(), nil
}

// withProfile runs a profile store change within the session and keeps the
// session profile in sync.
func (a *App) withProfile(fn func() (Profile, error)) (Profile, error) {
	if _, err := a.Profile(); err != nil {
		return Profile{}, err
	}
	p, err := fn()
	if err != nil {
		return Profile{}, err
	}
	return a.setSession(p), nil
}

// UpdateProfile applies u to the session profile and persists it.
func (a *App) UpdateProfile(ctx context.Context, u ProfileUpdate) (Profile, error) {
	return a.withProfile(func() (Profile, error) { return a.profiles.Update(ctx, u) })
}

// AddCategory adds a category to the session profile.
func (a *App) AddCategory(ctx context.Context, name string) (Profile, error) {
	return a.withProfile(func() (Profile, error) { return a.profiles.AddCategory(ctx, name) })
}

// MoveCategory moves a category of the session profile.
func (a *App) MoveCategory(ctx context.Context, name string, index int) (Profile, error) {
	return a.withProfile(func() (Profile, error) { return a.profiles.MoveCategory(ctx, name, index) })
}

// RenameCategory renames a category of the session profile and of every
// food in it.
func (a *App) RenameCategory(ctx context.Context, from, to string) (Profile, error) {
	p, err := a.withProfile(func() (Profile, error) { return a.profiles.RenameCategory(ctx, from, to) })
	if err != nil {
		return Profile{}, err
	}
	if _, err := a.foods.RenameCategory(ctx, from, strings.TrimSpace(to)); err != nil {
		return Profile{}, fmt.Errorf("renaming %q in foods: %w", from, err)
	}
	return p, nil
}

// DeleteCategory removes a category from the session profile and takes
// every food out of it. Foods left without category end up in
// DefaultCategory.
func (a *App) DeleteCategory(ctx context.Context, name string) (Profile, error) {
	p, err := a.withProfile(func() (Profile, error) { return a.profiles.DeleteCategory(ctx, name) })
	if err != nil {
		return Profile{}, err
	}
	foods, err := a.foods.List(ctx)
	if err != nil {
		return Profile{}, err
	}
	for _, f := range foods {
		if !f.HasCategory(name) {
			continue
		}
		if _, err := a.foods.RemoveFromList(ctx, f.ID, name); err != nil {
			return Profile{}, fmt.Errorf("removing %q from %q: %w", name, f.Name, err)
		}
	}
	return p, nil
}

// Dose computes the dose for a quantity of a food with the session
// insulin-to-carb ratio.
func (a *App) Dose(ctx context.Context, id string, spec QuantitySpec) (Food, Dose, error) {
	p, err := a.Profile()
	if err != nil {
		return Food{}, Dose{}, err
	}
	f, err := a.foods.Get(ctx, id)
	if err != nil {
		return Food{}, Dose{}, err
	}
	d, err := ComputeDose(f, spec, p.ICR)
	if err != nil {
		return Food{}, Dose{}, err
	}
	return f, d, nil
}

// Shortcuts returns the quantity shortcuts offered for a food in the
// current session.
func (a *App) Shortcuts(ctx context.Context, id string) ([]float64, error) {
	p, err := a.Profile()
	if err != nil {
		return nil, err
	}
	f, err := a.foods.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ResolveShortcuts(f, p), nil
}
