package links

import (
	"context"
	"time"
)

// Repository is the Link Store. Implementations never cache.
type Repository interface {
	// List returns every link ordered by Order, then creation time.
	List(ctx context.Context) ([]Link, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, link Link) (Link, error)
	// Import stores all links or none. With replace the existing links are
	// removed in the same transaction.
	Import(ctx context.Context, links []Link, replace bool) ([]Link, error)
	// Update applies p to the link with id and stamps it with at, moved
	// forward if needed so UpdatedAt always increases.
	Update(ctx context.Context, id string, p Patch, at time.Time) (Link, error)
	// Delete removes the link with id. A missing id is not an error.
	Delete(ctx context.Context, id string) error
}
