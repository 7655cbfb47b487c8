package mycarbs

import (
	"context"
	"errors"
	"testing"
	"time"
)

// testNow is the clock of every test repository.
var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// errDisk is the failure of a failingStore.
var errDisk = errors.New("disk full")

// failingStore wraps a Store and fails the operations that are switched on.
type failingStore struct {
	Store
	failGet, failPut bool
	puts             int
}

func (s *failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.failGet {
		return nil, errDisk
	}
	return s.Store.Get(ctx, key)
}

func (s *failingStore) Put(ctx context.Context, key string, value []byte) error {
	if s.failPut {
		return errDisk
	}
	s.puts++
	return s.Store.Put(ctx, key, value)
}

// storeWith returns a memory store where key holds value.
func storeWith(t *testing.T, key, value string) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	if err := s.Put(context.Background(), key, []byte(value)); err != nil {
		t.Fatalf("Put() unexpected error: %v", err)
	}
	return s
}

// mustAdd adds a food or fails the test.
func mustAdd(t *testing.T, r *Repository, in FoodInput) Food {
	t.Helper()
	f, err := r.Add(context.Background(), in)
	if err != nil {
		t.Fatalf("Add(%q) unexpected error: %v", in.Name, err)
	}
	return f
}

// names returns the names of foods in order.
func names(foods []Food) []string {
	out := make([]string, len(foods))
	for i, f := range foods {
		out[i] = f.Name
	}
	return out
}
