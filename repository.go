package mycarbs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository is the food library of a profile, persisted as a single JSON
// array under FoodsKey.
//
// Every mutation reads the whole collection, applies one change and writes
// the whole collection back. Mutations from the same Repository are
// serialized; across processes the last writer wins.
type Repository struct {
	store Store
	mu    sync.Mutex
	seed  []FoodInput
	now   func() time.Time
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithSeed sets the foods a library starts with when nothing was ever
// stored.
func WithSeed(foods []FoodInput) RepositoryOption {
	return func(r *Repository) { r.seed = foods }
}

// WithClock sets the clock used to timestamp new foods.
func WithClock(now func() time.Time) RepositoryOption {
	return func(r *Repository) { r.now = now }
}

// NewRepository returns the food library kept in store.
func NewRepository(store Store, opts ...RepositoryOption) *Repository {
	r := &Repository{store: store, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// load reads and normalizes the collection. Outdated records are written
// back in canonical form. It returns the number of records that were
// migrated.
func (r *Repository) load(ctx context.Context) ([]Food, int, error) {
	data, err := r.store.Get(ctx, FoodsKey)
	if errors.Is(err, ErrKeyNotFound) {
		if len(r.seed) == 0 {
			return []Food{}, 0, nil
		}
		foods, err := r.seedFoods()
		if err != nil {
			return nil, 0, err
		}
		return foods, 0, r.save(ctx, foods)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, 0, fmt.Errorf("%w: %s is not a JSON array: %v", ErrStoreCorrupted, FoodsKey, err)
	}
	foods := make([]Food, 0, len(raws))
	migrated := 0
	for i, raw := range raws {
		f, changed, err := normalizeRaw(raw)
		if err == nil {
			err = validateStored(f)
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%w: record #%d: %w", ErrStoreCorrupted, i, err)
		}
		if changed {
			migrated++
		}
		foods = append(foods, f)
	}
	if migrated > 0 {
		log.Printf("migrating %d outdated food record(s)", migrated)
		if err := r.save(ctx, foods); err != nil {
			return nil, 0, err
		}
	}
	return foods, migrated, nil
}

func (r *Repository) save(ctx context.Context, foods []Food) error {
	data, err := json.Marshal(nonNil(foods))
	if err != nil {
		return fmt.Errorf("encoding foods: %w", err)
	}
	if err := r.store.Put(ctx, FoodsKey, data); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (r *Repository) seedFoods() ([]Food, error) {
	now := r.now()
	foods := make([]Food, 0, len(r.seed))
	for i, in := range r.seed {
		in = normalizeInput(in)
		if err := in.Validate(); err != nil {
			return nil, fmt.Errorf("seed food #%d: %w", i, err)
		}
		// newest first
		foods = append(foods, newFood(in, now.Add(-time.Duration(i)*10*time.Second)))
	}
	return foods, nil
}

func newFood(in FoodInput, createdAt time.Time) Food {
	return Food{
		ID:              uuid.NewString(),
		Name:            in.Name,
		CarbsPer100g:    in.CarbsPer100g,
		Portions:        slices.Clone(in.Portions),
		Categories:      slices.Clone(in.Categories),
		IsFavorite:      in.IsFavorite,
		ImageURL:        in.ImageURL,
		CreatedAt:       TimestampOf(createdAt),
		QuantityButtons: slices.Clone(in.QuantityButtons),
	}
}

func indexOf(foods []Food, id string) int {
	return slices.IndexFunc(foods, func(f Food) bool { return f.ID == id })
}

// List returns every food, newest first.
func (r *Repository) List(ctx context.Context) ([]Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	foods, _, err := r.load(ctx)
	return foods, err
}

// Get returns the food with the given id.
func (r *Repository) Get(ctx context.Context, id string) (Food, error) {
	foods, err := r.List(ctx)
	if err != nil {
		return Food{}, err
	}
	i := indexOf(foods, id)
	if i < 0 {
		return Food{}, fmt.Errorf("food %q: %w", id, ErrNotFound)
	}
	return foods[i], nil
}

// Migrate rewrites the whole collection in canonical form and returns the
// number of records that were outdated.
func (r *Repository) Migrate(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	foods, migrated, err := r.load(ctx)
	if err != nil {
		return 0, err
	}
	return migrated, r.save(ctx, foods)
}

// Add creates a food from a draft, with a fresh id and the current time,
// and puts it first in the collection.
func (r *Repository) Add(ctx context.Context, in FoodInput) (Food, error) {
	in = normalizeInput(in)
	if err := in.Validate(); err != nil {
		return Food{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	foods, _, err := r.load(ctx)
	if err != nil {
		return Food{}, err
	}
	f := newFood(in, r.now())
	foods = slices.Insert(foods, 0, f)
	if err := r.save(ctx, foods); err != nil {
		return Food{}, err
	}
	return f.Clone(), nil
}

// Update replaces the food with the same id as f. The id and creation time
// of the stored record are kept. Like Add, a food without category is filed
// in DefaultCategory, but it must keep at least one portion.
func (r *Repository) Update(ctx context.Context, f Food) (Food, error) {
	in := f.Input()
	if len(in.Portions) == 0 {
		return Food{}, fmt.Errorf("%w: Portions needs at least 1 entries", ErrValidationFailed)
	}
	in = normalizeInput(in)
	if err := in.Validate(); err != nil {
		return Food{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	foods, _, err := r.load(ctx)
	if err != nil {
		return Food{}, err
	}
	i := indexOf(foods, f.ID)
	if i < 0 {
		return Food{}, fmt.Errorf("food %q: %w", f.ID, ErrNotFound)
	}
	updated := newFood(in, foods[i].CreatedAt.Time())
	updated.ID = foods[i].ID
	updated.CreatedAt = foods[i].CreatedAt
	foods[i] = updated
	if err := r.save(ctx, foods); err != nil {
		return Food{}, err
	}
	return updated.Clone(), nil
}

// ToggleFavorite flips the favorite flag of the food with the given id and
// returns the whole collection. An unknown id leaves the collection
// untouched and is not an error.
func (r *Repository) ToggleFavorite(ctx context.Context, id string) ([]Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	foods, _, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(foods, id)
	if i < 0 {
		return foods, nil
	}
	foods[i].IsFavorite = !foods[i].IsFavorite
	if err := r.save(ctx, foods); err != nil {
		return nil, err
	}
	return foods, nil
}

// Remove deletes the food with the given id and returns the remaining
// collection. An unknown id is not an error.
func (r *Repository) Remove(ctx context.Context, id string) ([]Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	foods, _, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(foods, id)
	if i < 0 {
		return foods, nil
	}
	foods = slices.Delete(foods, i, i+1)
	if err := r.save(ctx, foods); err != nil {
		return nil, err
	}
	return foods, nil
}

// modify applies fn to the food with the given id and saves the result.
func (r *Repository) modify(ctx context.Context, id string, fn func(Food) (Food, error)) (Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	foods, _, err := r.load(ctx)
	if err != nil {
		return Food{}, err
	}
	i := indexOf(foods, id)
	if i < 0 {
		return Food{}, fmt.Errorf("food %q: %w", id, ErrNotFound)
	}
	f, err := fn(foods[i])
	if err != nil {
		return Food{}, err
	}
	foods[i] = f
	if err := r.save(ctx, foods); err != nil {
		return Food{}, err
	}
	return f.Clone(), nil
}

func checkCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("%w: category is required", ErrValidationFailed)
	}
	return nil
}

// SetCategoryMembership adds the food to category, or removes it from it.
// A food never loses its last category this way: such a removal fails with
// ErrCannotRemoveLastCategory and the food is left unchanged.
func (r *Repository) SetCategoryMembership(ctx context.Context, id, category string, present bool) (Food, error) {
	if err := checkCategory(category); err != nil {
		return Food{}, err
	}
	return r.modify(ctx, id, func(f Food) (Food, error) {
		if present {
			return f.withCategory(category), nil
		}
		if f.HasCategory(category) && len(f.Categories) == 1 {
			return Food{}, fmt.Errorf("%q from %q: %w", category, f.Name, ErrCannotRemoveLastCategory)
		}
		return f.withoutCategory(category), nil
	})
}

// RemoveFromList takes the food out of the category list it is shown in.
// Unlike SetCategoryMembership it may leave the food without any category;
// such a food is filed under DefaultCategory the next time it is read.
func (r *Repository) RemoveFromList(ctx context.Context, id, category string) (Food, error) {
	return r.modify(ctx, id, func(f Food) (Food, error) {
		return f.withoutCategory(category), nil
	})
}

// AddToList adds category to every food in ids that is not in it yet and
// returns the whole collection. Nothing is written if an id is unknown.
func (r *Repository) AddToList(ctx context.Context, category string, ids ...string) ([]Food, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	foods, _, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	changed := false
	for _, id := range ids {
		i := indexOf(foods, id)
		if i < 0 {
			return nil, fmt.Errorf("food %q: %w", id, ErrNotFound)
		}
		if !foods[i].HasCategory(category) {
			foods[i] = foods[i].withCategory(category)
			changed = true
		}
	}
	if changed {
		if err := r.save(ctx, foods); err != nil {
			return nil, err
		}
	}
	return foods, nil
}

// RenameCategory moves every food of category from to category to, in
// place, and returns the whole collection.
func (r *Repository) RenameCategory(ctx context.Context, from, to string) ([]Food, error) {
	if err := checkCategory(to); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	foods, _, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	changed := false
	for i, f := range foods {
		j := slices.Index(f.Categories, from)
		if j < 0 || from == to {
			continue
		}
		f = f.Clone()
		f.Categories[j] = to
		f.Categories = cleanCategories(f.Categories)
		foods[i] = f
		changed = true
	}
	if changed {
		if err := r.save(ctx, foods); err != nil {
			return nil, err
		}
	}
	return foods, nil
}

// Clear deletes the whole collection.
func (r *Repository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Delete(ctx, FoodsKey); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}
