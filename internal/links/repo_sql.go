package links

import (
	"context"
	"errors"
	"time"

	"github.com/sundayezeilo/linkbio/internal/db"
	"github.com/sundayezeilo/linkbio/internal/errx"
	"github.com/sundayezeilo/linkbio/internal/idgen"
)

// querier is satisfied by *db.Queries and *db.SQLiteQueries.
type querier interface {
	ListLinks(ctx context.Context) ([]db.Link, error)
	CountLinks(ctx context.Context) (int64, error)
	CreateLink(ctx context.Context, arg db.CreateLinkParams) (db.Link, error)
	ImportLinks(ctx context.Context, args []db.CreateLinkParams, replace bool) ([]db.Link, error)
	UpdateLink(ctx context.Context, arg db.UpdateLinkParams) (db.Link, error)
	DeleteLink(ctx context.Context, id string) error
}

type repo struct {
	q   querier
	ids idgen.Generator
	now func() time.Time
}

// RepositoryConfig holds configuration for the repository
type RepositoryConfig struct {
	IDGenerator idgen.Generator
	Now         func() time.Time
}

// NewRepository creates a Repository backed by q.
func NewRepository(q querier, config *RepositoryConfig) Repository {
	if config == nil {
		config = &RepositoryConfig{}
	}

	// UUIDv7 so that ids sort by creation time.
	ids := config.IDGenerator
	if ids == nil {
		ids = idgen.NewV7(1)
	}

	now := config.Now
	if now == nil {
		now = time.Now
	}

	return &repo{q: q, ids: ids, now: now}
}

func toDomainLink(x db.Link) Link {
	return Link{
		ID:          x.ID,
		Name:        x.Name,
		URL:         x.URL,
		Description: x.Description,
		Tag:         x.Tag,
		Order:       int(x.SortOrder),
		CreatedAt:   time.UnixMilli(x.CreatedAt).UTC(),
		UpdatedAt:   time.UnixMilli(x.UpdatedAt).UTC(),
	}
}

func toDomainLinks(rows []db.Link) []Link {
	out := make([]Link, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainLink(row))
	}
	return out
}

func mapRepoError(op string, err error) error {
	switch {
	case errors.Is(err, db.ErrNoRows):
		return errx.E(op, errx.NotFound, err)
	default:
		return errx.E(op, errx.Unavailable, err)
	}
}

func (r *repo) createParams(link Link) (db.CreateLinkParams, error) {
	if link.ID == "" {
		id, err := r.ids.NewID()
		if err != nil {
			return db.CreateLinkParams{}, err
		}
		link.ID = id
	}
	if link.CreatedAt.IsZero() {
		link.CreatedAt = r.now()
	}

	return db.CreateLinkParams{
		ID:          link.ID,
		Name:        link.Name,
		URL:         link.URL,
		Description: link.Description,
		Tag:         link.Tag,
		SortOrder:   int32(link.Order),
		CreatedAt:   link.CreatedAt.UnixMilli(),
	}, nil
}

func (r *repo) List(ctx context.Context) ([]Link, error) {
	const op = "links.repo.List"

	rows, err := r.q.ListLinks(ctx)
	if err != nil {
		return nil, mapRepoError(op, err)
	}
	return toDomainLinks(rows), nil
}

func (r *repo) Count(ctx context.Context) (int, error) {
	const op = "links.repo.Count"

	n, err := r.q.CountLinks(ctx)
	if err != nil {
		return 0, mapRepoError(op, err)
	}
	return int(n), nil
}

func (r *repo) Create(ctx context.Context, link Link) (Link, error) {
	const op = "links.repo.Create"

	params, err := r.createParams(link)
	if err != nil {
		return Link{}, errx.E(op, errx.Unavailable, err)
	}

	row, err := r.q.CreateLink(ctx, params)
	if err != nil {
		return Link{}, mapRepoError(op, err)
	}
	return toDomainLink(row), nil
}

func (r *repo) Import(ctx context.Context, links []Link, replace bool) ([]Link, error) {
	const op = "links.repo.Import"

	params := make([]db.CreateLinkParams, 0, len(links))
	for _, link := range links {
		p, err := r.createParams(link)
		if err != nil {
			return nil, errx.E(op, errx.Unavailable, err)
		}
		params = append(params, p)
	}

	rows, err := r.q.ImportLinks(ctx, params, replace)
	if err != nil {
		return nil, mapRepoError(op, err)
	}
	return toDomainLinks(rows), nil
}

func (r *repo) Update(ctx context.Context, id string, p Patch, at time.Time) (Link, error) {
	const op = "links.repo.Update"

	params := db.UpdateLinkParams{
		ID:        id,
		SetTag:    p.Tag.Set,
		UpdatedAt: at.UnixMilli(),
	}
	if p.Name.Set {
		params.Name = &p.Name.Value
	}
	if p.URL.Set {
		params.URL = &p.URL.Value
	}
	if p.Description.Set {
		params.Description = &p.Description.Value
	}
	if p.Tag.Set && !p.ClearsTag() {
		tag := p.Tag.Value
		params.Tag = &tag
	}
	if p.Order.Set {
		order := int32(p.Order.Value)
		params.SortOrder = &order
	}

	row, err := r.q.UpdateLink(ctx, params)
	if err != nil {
		return Link{}, mapRepoError(op, err)
	}
	return toDomainLink(row), nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	const op = "links.repo.Delete"

	if err := r.q.DeleteLink(ctx, id); err != nil {
		return mapRepoError(op, err)
	}
	return nil
}
