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

	"github.com/google/uuid"
)

// Theme is the preferred color scheme.
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

// Accent is the preferred accent color.
type Accent string

// Accents lists every valid Accent.
var Accents = []Accent{"blue", "emerald", "violet", "rose", "amber", "cyan", "teal", "fuchsia", "lime", "slate"}

// ViewMode is the preferred layout of the food library.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// DefaultICR is the insulin-to-carb ratio of new profiles.
const DefaultICR = 15

// GuestEmail is the email of guest profiles.
const GuestEmail = "guest@mycarbs.app"

// DefaultCategories returns the categories new profiles start with.
func DefaultCategories() []string {
	return []string{"Breakfast", "Lunch", "Dinner", "Snack", "Drink", "Fruit", "Sweet", DefaultCategory}
}

// Profile holds the user settings.
//
// ICR is the insulin-to-carb ratio, grams of carbohydrate covered by one
// unit of insulin. 0 means the ratio is not configured and no insulin dose
// can be computed.
type Profile struct {
	ID               string    `json:"id"`
	Email            string    `json:"email" validate:"required,notblank"`
	Name             string    `json:"name"`
	PhotoURL         string    `json:"photoUrl,omitempty"`
	ICR              float64   `json:"icr" validate:"gte=0,finite"`
	Categories       []string  `json:"categories"`
	ThemePreference  Theme     `json:"themePreference" validate:"oneof=system light dark"`
	AccentColor      Accent    `json:"accentColor" validate:"oneof=blue emerald violet rose amber cyan teal fuchsia lime slate"`
	ViewMode         ViewMode  `json:"viewMode" validate:"oneof=grid list"`
	CustomQuantities []float64 `json:"customQuantities" validate:"dive,gt=0,finite"`
}

func newProfile(id, email, name string) Profile {
	return Profile{
		ID:               id,
		Email:            email,
		Name:             name,
		ICR:              DefaultICR,
		Categories:       DefaultCategories(),
		ThemePreference:  ThemeSystem,
		AccentColor:      "cyan",
		ViewMode:         ViewList,
		CustomQuantities: slices.Clone(DefaultQuantities),
	}
}

// Clone returns a deep copy of p.
func (p Profile) Clone() Profile {
	p.Categories = slices.Clone(p.Categories)
	p.CustomQuantities = slices.Clone(p.CustomQuantities)
	return p
}

// decodeProfile decodes a stored profile, filling the settings older
// versions did not have. It reports whether the stored form is outdated.
func decodeProfile(data []byte) (Profile, bool, error) {
	var raw struct {
		Profile
		// shadow the embedded fields to tell absent from empty
		Categories       []string  `json:"categories"`
		CustomQuantities []float64 `json:"customQuantities"`
		CustomCategories []string  `json:"customCategories"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Profile{}, false, err
	}
	p := raw.Profile
	p.Categories = raw.Categories
	p.CustomQuantities = raw.CustomQuantities

	migrated := false
	if p.Categories == nil {
		p.Categories = cleanCategories(append(DefaultCategories(), raw.CustomCategories...))
		migrated = true
	}
	if raw.CustomCategories != nil {
		migrated = true
	}
	if p.ThemePreference == "" {
		p.ThemePreference = ThemeSystem
		migrated = true
	}
	if p.AccentColor == "" {
		p.AccentColor = "cyan"
		migrated = true
	}
	if p.ViewMode == "" {
		p.ViewMode = ViewList
		migrated = true
	}
	if p.CustomQuantities == nil {
		p.CustomQuantities = slices.Clone(DefaultQuantities)
		migrated = true
	}
	return p, migrated, nil
}

// ProfileStore persists the single profile of a store under UserKey. Every
// change is written immediately.
type ProfileStore struct {
	store Store
	mu    sync.Mutex
}

// NewProfileStore returns the profile store kept in store.
func NewProfileStore(store Store) *ProfileStore {
	return &ProfileStore{store: store}
}

func (s *ProfileStore) load(ctx context.Context) (Profile, error) {
	data, err := s.store.Get(ctx, UserKey)
	if errors.Is(err, ErrKeyNotFound) {
		return Profile{}, fmt.Errorf("profile: %w", ErrNotFound)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	p, migrated, err := decodeProfile(data)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %s: %v", ErrStoreCorrupted, UserKey, err)
	}
	if migrated {
		log.Printf("migrating outdated profile %q", p.Email)
		if err := s.save(ctx, p); err != nil {
			return Profile{}, err
		}
	}
	return p, nil
}

func (s *ProfileStore) save(ctx context.Context, p Profile) error {
	p.Categories = nonNil(p.Categories)
	p.CustomQuantities = nonNil(p.CustomQuantities)
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := s.store.Put(ctx, UserKey, data); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// Load returns the stored profile, or an error wrapping ErrNotFound.
func (s *ProfileStore) Load(ctx context.Context) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// SignUp creates a profile for email with default settings, replacing any
// stored one.
func (s *ProfileStore) SignUp(ctx context.Context, email string) (Profile, error) {
	email = strings.TrimSpace(email)
	name, _, _ := strings.Cut(email, "@")
	p := newProfile("user_"+uuid.NewString(), email, name)
	if err := validateStruct(p); err != nil {
		return Profile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(ctx, p); err != nil {
		return Profile{}, err
	}
	return p.Clone(), nil
}

// SignIn returns the stored profile if its email matches, ignoring case.
func (s *ProfileStore) SignIn(ctx context.Context, email string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load(ctx)
	if err != nil {
		return Profile{}, err
	}
	if !strings.EqualFold(p.Email, strings.TrimSpace(email)) {
		return Profile{}, fmt.Errorf("profile %q: %w", email, ErrNotFound)
	}
	return p, nil
}

// Guest creates a guest profile, replacing any stored one.
func (s *ProfileStore) Guest(ctx context.Context) (Profile, error) {
	p := newProfile("guest_"+uuid.NewString(), GuestEmail, "Guest")

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(ctx, p); err != nil {
		return Profile{}, err
	}
	return p.Clone(), nil
}

// SignOut forgets the stored profile. The food library is kept.
func (s *ProfileStore) SignOut(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, UserKey); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteAccount deletes the stored profile and the food library.
func (s *ProfileStore) DeleteAccount(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, UserKey); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if err := s.store.Delete(ctx, FoodsKey); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// ProfileUpdate is a partial update of a Profile. Nil fields are left
// unchanged.
type ProfileUpdate struct {
	Email            *string
	Name             *string
	PhotoURL         *string
	ICR              *float64
	Categories       []string
	ThemePreference  *Theme
	AccentColor      *Accent
	ViewMode         *ViewMode
	CustomQuantities []float64
}

func (u ProfileUpdate) apply(p Profile) Profile {
	p = p.Clone()
	if u.Email != nil {
		p.Email = strings.TrimSpace(*u.Email)
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.PhotoURL != nil {
		p.PhotoURL = *u.PhotoURL
	}
	if u.ICR != nil {
		p.ICR = *u.ICR
	}
	if u.Categories != nil {
		p.Categories = trimCategories(u.Categories)
	}
	if u.ThemePreference != nil {
		p.ThemePreference = *u.ThemePreference
	}
	if u.AccentColor != nil {
		p.AccentColor = *u.AccentColor
	}
	if u.ViewMode != nil {
		p.ViewMode = *u.ViewMode
	}
	if u.CustomQuantities != nil {
		p.CustomQuantities = slices.Clone(u.CustomQuantities)
	}
	return p
}

func trimCategories(categories []string) []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = strings.TrimSpace(c)
	}
	return cleanCategories(out)
}

// modify applies fn to the stored profile, validates and saves the result.
func (s *ProfileStore) modify(ctx context.Context, fn func(Profile) (Profile, error)) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load(ctx)
	if err != nil {
		return Profile{}, err
	}
	p, err = fn(p.Clone())
	if err != nil {
		return Profile{}, err
	}
	if err := validateStruct(p); err != nil {
		return Profile{}, err
	}
	if err := s.save(ctx, p); err != nil {
		return Profile{}, err
	}
	return p.Clone(), nil
}

// Update applies u to the stored profile.
func (s *ProfileStore) Update(ctx context.Context, u ProfileUpdate) (Profile, error) {
	return s.modify(ctx, func(p Profile) (Profile, error) {
		return u.apply(p), nil
	})
}

// AddCategory appends a category to the profile. Adding an existing
// category is a no-op.
func (s *ProfileStore) AddCategory(ctx context.Context, name string) (Profile, error) {
	name = strings.TrimSpace(name)
	if err := checkCategory(name); err != nil {
		return Profile{}, err
	}
	return s.modify(ctx, func(p Profile) (Profile, error) {
		if !slices.Contains(p.Categories, name) {
			p.Categories = append(p.Categories, name)
		}
		return p, nil
	})
}

// RenameCategory renames a category of the profile in place.
func (s *ProfileStore) RenameCategory(ctx context.Context, from, to string) (Profile, error) {
	to = strings.TrimSpace(to)
	if err := checkCategory(to); err != nil {
		return Profile{}, err
	}
	return s.modify(ctx, func(p Profile) (Profile, error) {
		i := slices.Index(p.Categories, from)
		if i < 0 {
			return Profile{}, fmt.Errorf("category %q: %w", from, ErrNotFound)
		}
		if from != to && slices.Contains(p.Categories, to) {
			return Profile{}, fmt.Errorf("%w: category %q already exists", ErrValidationFailed, to)
		}
		p.Categories[i] = to
		return p, nil
	})
}

// DeleteCategory removes a category from the profile. Foods are not
// changed, see [App.DeleteCategory] for that.
func (s *ProfileStore) DeleteCategory(ctx context.Context, name string) (Profile, error) {
	return s.modify(ctx, func(p Profile) (Profile, error) {
		i := slices.Index(p.Categories, name)
		if i < 0 {
			return Profile{}, fmt.Errorf("category %q: %w", name, ErrNotFound)
		}
		p.Categories = slices.Delete(p.Categories, i, i+1)
		return p, nil
	})
}

// MoveCategory moves a category to position index of the profile list.
func (s *ProfileStore) MoveCategory(ctx context.Context, name string, index int) (Profile, error) {
	return s.modify(ctx, func(p Profile) (Profile, error) {
		i := slices.Index(p.Categories, name)
		if i < 0 {
			return Profile{}, fmt.Errorf("category %q: %w", name, ErrNotFound)
		}
		if index < 0 || index >= len(p.Categories) {
			return Profile{}, fmt.Errorf("%w: position %d out of [0, %d)", ErrValidationFailed, index, len(p.Categories))
		}
		p.Categories = slices.Delete(p.Categories, i, i+1)
		p.Categories = slices.Insert(p.Categories, index, name)
		return p, nil
	})
}
