package idgen

import (
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
)

func TestV7_NewID(t *testing.T) {
	t.Run("generates valid UUID v7", func(t *testing.T) {
		id, err := NewV7(1).NewID()
		if err != nil {
			t.Fatalf("NewID() unexpected error: %v", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			t.Fatalf("NewID() = %q, not a UUID: %v", id, err)
		}
		if parsed.Version() != 7 {
			t.Fatalf("UUID version = %d, want 7", parsed.Version())
		}
	})

	t.Run("values sort in generation order", func(t *testing.T) {
		gen := NewV7(0)
		ids := make([]string, 0, 100)
		seen := make(map[string]struct{}, 100)
		for range 100 {
			id, err := gen.NewID()
			if err != nil {
				t.Fatalf("NewID() unexpected error: %v", err)
			}
			if _, dup := seen[id]; dup {
				t.Fatalf("duplicate id %q", id)
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
		if !sort.StringsAreSorted(ids) {
			t.Error("v7 ids are not sorted in generation order")
		}
	})

	t.Run("negative retries are clamped", func(t *testing.T) {
		g, ok := NewV7(-3).(*v7Gen)
		if !ok {
			t.Fatal("NewV7() did not return *v7Gen")
		}
		if g.retries != 0 {
			t.Errorf("retries = %d, want 0", g.retries)
		}
	})
}

func TestFunc(t *testing.T) {
	wantErr := errors.New("no entropy")
	calls := 0
	gen := Func(func() (string, error) {
		calls++
		if calls == 2 {
			return "", wantErr
		}
		return "fixed-id", nil
	})

	id, err := gen.NewID()
	if err != nil || id != "fixed-id" {
		t.Fatalf("NewID() = %q, %v; want fixed-id, nil", id, err)
	}
	if _, err := gen.NewID(); !errors.Is(err, wantErr) {
		t.Fatalf("NewID() error = %v, want %v", err, wantErr)
	}
}
