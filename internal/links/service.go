package links

import (
	"context"
	"errors"
	"time"

	"github.com/sundayezeilo/linkbio/internal/errx"
)

var (
	// ErrMissingFields is returned by Create when name, url or description is empty.
	ErrMissingFields = errors.New("missing required fields: name, url, description")
	// ErrMissingID is returned by Update and Delete when no id is given.
	ErrMissingID = errors.New("missing link id")
)

// CreateLinkRequest represents the parameters for creating a new link.
type CreateLinkRequest struct {
	Name        string
	URL         string
	Description string
	Tag         *string // nil or "" stores no tag
	Order       *int    // nil stores 0
}

// Service defines the Links API operations.
type Service interface {
	List(ctx context.Context) ([]Link, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, req CreateLinkRequest) (Link, error)
	Update(ctx context.Context, id string, p Patch) (Link, error)
	Delete(ctx context.Context, id string) error
	// Import creates every link in one transaction; see Repository.Import.
	Import(ctx context.Context, reqs []CreateLinkRequest, replace bool) ([]Link, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// ServiceConfig holds configuration for the service.
type ServiceConfig struct {
	Now func() time.Time
}

// NewService creates a new service instance.
func NewService(repo Repository, config *ServiceConfig) Service {
	if config == nil {
		config = &ServiceConfig{}
	}

	now := config.Now
	if now == nil {
		now = time.Now
	}

	return &service{repo: repo, now: now}
}

func (s *service) List(ctx context.Context) ([]Link, error) {
	const op = "links.service.List"

	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, errx.Wrap(op, err)
	}
	return out, nil
}

func (s *service) Count(ctx context.Context) (int, error) {
	const op = "links.service.Count"

	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, errx.Wrap(op, err)
	}
	return n, nil
}

func (s *service) Create(ctx context.Context, req CreateLinkRequest) (Link, error) {
	const op = "links.service.Create"

	link, err := s.newLink(req, s.now())
	if err != nil {
		return Link{}, errx.E(op, errx.Invalid, err)
	}

	created, err := s.repo.Create(ctx, link)
	if err != nil {
		return Link{}, errx.Wrap(op, err)
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, p Patch) (Link, error) {
	const op = "links.service.Update"

	if id == "" {
		return Link{}, errx.E(op, errx.Invalid, ErrMissingID)
	}
	if err := p.Validate(); err != nil {
		return Link{}, errx.E(op, errx.Invalid, err)
	}

	updated, err := s.repo.Update(ctx, id, p, s.now())
	if err != nil {
		return Link{}, errx.Wrap(op, err)
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	const op = "links.service.Delete"

	if id == "" {
		return errx.E(op, errx.Invalid, ErrMissingID)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errx.Wrap(op, err)
	}
	return nil
}

func (s *service) Import(ctx context.Context, reqs []CreateLinkRequest, replace bool) ([]Link, error) {
	const op = "links.service.Import"

	now := s.now()
	batch := make([]Link, 0, len(reqs))
	for _, req := range reqs {
		link, err := s.newLink(req, now)
		if err != nil {
			return nil, errx.E(op, errx.Invalid, err)
		}
		batch = append(batch, link)
	}

	created, err := s.repo.Import(ctx, batch, replace)
	if err != nil {
		return nil, errx.Wrap(op, err)
	}
	return created, nil
}

func (s *service) newLink(req CreateLinkRequest, now time.Time) (Link, error) {
	if req.Name == "" || req.URL == "" || req.Description == "" {
		return Link{}, ErrMissingFields
	}

	link := Link{
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Tag != nil && *req.Tag != "" {
		tag := *req.Tag
		link.Tag = &tag
	}
	if req.Order != nil {
		if err := checkOrder(*req.Order); err != nil {
			return Link{}, err
		}
		link.Order = *req.Order
	}
	return link, nil
}
