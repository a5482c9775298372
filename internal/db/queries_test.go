package db

import (
	"context"
	"errors"
	"testing"
)

// linkQueries is the query set shared by both drivers.
type linkQueries interface {
	Migrate(ctx context.Context) error
	ListLinks(ctx context.Context) ([]Link, error)
	CountLinks(ctx context.Context) (int64, error)
	CreateLink(ctx context.Context, arg CreateLinkParams) (Link, error)
	ImportLinks(ctx context.Context, args []CreateLinkParams, replace bool) ([]Link, error)
	UpdateLink(ctx context.Context, arg UpdateLinkParams) (Link, error)
	DeleteLink(ctx context.Context, id string) error
}

var (
	_ linkQueries = (*Queries)(nil)
	_ linkQueries = (*SQLiteQueries)(nil)
)

func strPtr(s string) *string { return &s }
func int32Ptr(n int32) *int32 { return &n }

// runQueryContract exercises the behaviour both drivers must share.
func runQueryContract(t *testing.T, q linkQueries) {
	t.Helper()
	ctx := context.Background()

	if err := q.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error: %v", err)
	}
	// Migrations are idempotent.
	if err := q.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate() error: %v", err)
	}

	t.Run("empty list is not nil", func(t *testing.T) {
		links, err := q.ListLinks(ctx)
		if err != nil {
			t.Fatalf("ListLinks() error: %v", err)
		}
		if links == nil || len(links) != 0 {
			t.Fatalf("ListLinks() = %#v, want empty slice", links)
		}
	})

	t.Run("create returns the stored row", func(t *testing.T) {
		got, err := q.CreateLink(ctx, CreateLinkParams{
			ID: "01-a", Name: "A", URL: "https://a.com", Description: "d",
			SortOrder: 2, CreatedAt: 1000,
		})
		if err != nil {
			t.Fatalf("CreateLink() error: %v", err)
		}
		if got.ID != "01-a" || got.Name != "A" || got.Tag != nil {
			t.Errorf("CreateLink() = %+v", got)
		}
		if got.CreatedAt != 1000 || got.UpdatedAt != 1000 {
			t.Errorf("timestamps = %d/%d, want 1000/1000", got.CreatedAt, got.UpdatedAt)
		}
	})

	t.Run("list sorts by order then insertion", func(t *testing.T) {
		for _, p := range []CreateLinkParams{
			{ID: "02-b", Name: "B", URL: "https://b.com", Description: "d", Tag: strPtr("new"), SortOrder: 0, CreatedAt: 1001},
			{ID: "03-c", Name: "C", URL: "https://c.com", Description: "d", SortOrder: 2, CreatedAt: 1001},
			{ID: "04-d", Name: "D", URL: "https://d.com", Description: "d", SortOrder: 2, CreatedAt: 1001},
		} {
			if _, err := q.CreateLink(ctx, p); err != nil {
				t.Fatalf("CreateLink(%s) error: %v", p.ID, err)
			}
		}

		links, err := q.ListLinks(ctx)
		if err != nil {
			t.Fatalf("ListLinks() error: %v", err)
		}
		want := []string{"02-b", "01-a", "03-c", "04-d"}
		if len(links) != len(want) {
			t.Fatalf("len(ListLinks()) = %d, want %d", len(links), len(want))
		}
		for i, id := range want {
			if links[i].ID != id {
				t.Errorf("links[%d].ID = %s, want %s", i, links[i].ID, id)
			}
		}
		if links[0].Tag == nil || *links[0].Tag != "new" {
			t.Errorf("links[0].Tag = %v, want new", links[0].Tag)
		}
	})

	t.Run("update applies only provided columns", func(t *testing.T) {
		got, err := q.UpdateLink(ctx, UpdateLinkParams{
			ID: "01-a", SortOrder: int32Ptr(9), UpdatedAt: 5000,
		})
		if err != nil {
			t.Fatalf("UpdateLink() error: %v", err)
		}
		if got.SortOrder != 9 || got.Name != "A" || got.URL != "https://a.com" || got.Tag != nil {
			t.Errorf("UpdateLink() = %+v", got)
		}
		if got.UpdatedAt != 5000 || got.CreatedAt != 1000 {
			t.Errorf("timestamps = %d/%d, want 1000/5000", got.CreatedAt, got.UpdatedAt)
		}
	})

	t.Run("update moves updated_at forward on a stale clock", func(t *testing.T) {
		got, err := q.UpdateLink(ctx, UpdateLinkParams{ID: "01-a", UpdatedAt: 10})
		if err != nil {
			t.Fatalf("UpdateLink() error: %v", err)
		}
		if got.UpdatedAt != 5001 {
			t.Errorf("UpdatedAt = %d, want 5001", got.UpdatedAt)
		}
	})

	t.Run("update sets and clears tag", func(t *testing.T) {
		got, err := q.UpdateLink(ctx, UpdateLinkParams{ID: "01-a", SetTag: true, Tag: strPtr("hot"), UpdatedAt: 6000})
		if err != nil {
			t.Fatalf("UpdateLink() error: %v", err)
		}
		if got.Tag == nil || *got.Tag != "hot" {
			t.Fatalf("Tag = %v, want hot", got.Tag)
		}

		got, err = q.UpdateLink(ctx, UpdateLinkParams{ID: "01-a", SetTag: true, UpdatedAt: 7000})
		if err != nil {
			t.Fatalf("UpdateLink() error: %v", err)
		}
		if got.Tag != nil {
			t.Fatalf("Tag = %q, want nil", *got.Tag)
		}
	})

	t.Run("update of missing id returns ErrNoRows", func(t *testing.T) {
		_, err := q.UpdateLink(ctx, UpdateLinkParams{ID: "missing", Name: strPtr("x"), UpdatedAt: 1})
		if !errors.Is(err, ErrNoRows) {
			t.Fatalf("UpdateLink() error = %v, want ErrNoRows", err)
		}
	})

	t.Run("delete is unconditional", func(t *testing.T) {
		if err := q.DeleteLink(ctx, "04-d"); err != nil {
			t.Fatalf("DeleteLink() error: %v", err)
		}
		if err := q.DeleteLink(ctx, "04-d"); err != nil {
			t.Fatalf("second DeleteLink() error: %v", err)
		}
		n, err := q.CountLinks(ctx)
		if err != nil {
			t.Fatalf("CountLinks() error: %v", err)
		}
		if n != 3 {
			t.Errorf("CountLinks() = %d, want 3", n)
		}
	})

	t.Run("import appends atomically", func(t *testing.T) {
		_, err := q.ImportLinks(ctx, []CreateLinkParams{
			{ID: "10-x", Name: "X", URL: "https://x.com", Description: "d", CreatedAt: 2000},
			{ID: "02-b", Name: "dup", URL: "https://dup.com", Description: "d", CreatedAt: 2000},
		}, false)
		if err == nil {
			t.Fatal("ImportLinks() with duplicate id expected error, got nil")
		}
		n, err := q.CountLinks(ctx)
		if err != nil {
			t.Fatalf("CountLinks() error: %v", err)
		}
		if n != 3 {
			t.Errorf("CountLinks() after failed import = %d, want 3", n)
		}
	})

	t.Run("import with replace", func(t *testing.T) {
		got, err := q.ImportLinks(ctx, []CreateLinkParams{
			{ID: "20-p", Name: "P", URL: "https://p.com", Description: "d", SortOrder: 0, CreatedAt: 3000},
			{ID: "21-q", Name: "Q", URL: "https://q.com", Description: "d", SortOrder: 1, CreatedAt: 3000},
		}, true)
		if err != nil {
			t.Fatalf("ImportLinks() error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("len(ImportLinks()) = %d, want 2", len(got))
		}
		links, err := q.ListLinks(ctx)
		if err != nil {
			t.Fatalf("ListLinks() error: %v", err)
		}
		if len(links) != 2 || links[0].ID != "20-p" || links[1].ID != "21-q" {
			t.Errorf("ListLinks() after replace = %+v", links)
		}
	})
}
