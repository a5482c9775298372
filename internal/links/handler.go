package links

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sundayezeilo/linkbio/internal/auth"
	"github.com/sundayezeilo/linkbio/internal/errx"
	"github.com/sundayezeilo/linkbio/internal/httpx"
)

// HTTPCreateLinkRequest is the JSON body of POST /api/links.
type HTTPCreateLinkRequest struct {
	Name        string  `json:"name"`
	URL         string  `json:"url"`
	Description string  `json:"description"`
	Tag         *string `json:"tag"`
	Order       *int    `json:"order"`
}

// HTTPUpdateLinkRequest is the JSON body of PUT /api/links: the id plus any
// subset of the editable fields.
type HTTPUpdateLinkRequest struct {
	ID string `json:"id"`
	Patch
}

// LinkResponse is the JSON form of a Link. Timestamps are Unix milliseconds.
type LinkResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Tag         string `json:"tag,omitempty"`
	Order       int    `json:"order"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

// DeleteLinkResponse is returned by DELETE /api/links.
type DeleteLinkResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

func toLinkResponse(l Link) LinkResponse {
	resp := LinkResponse{
		ID:          l.ID,
		Name:        l.Name,
		URL:         l.URL,
		Description: l.Description,
		Order:       l.Order,
		CreatedAt:   l.CreatedAt.UnixMilli(),
		UpdatedAt:   l.UpdatedAt.UnixMilli(),
	}
	if l.Tag != nil {
		resp.Tag = *l.Tag
	}
	return resp
}

// Handler provides the HTTP handlers of the Links API. Authorization is
// applied by the router before the mutating handlers run.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// HandlerConfig holds configuration for the handler.
type HandlerConfig struct {
	Service Service
	Logger  *slog.Logger
}

// NewHandler creates a new Handler instance.
func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		service: cfg.Service,
		logger:  logger,
	}
}

func (h *Handler) requestLogger(r *http.Request) *slog.Logger {
	logger := h.logger.With(
		"request_id", httpx.GetRequestID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
	)
	if id, ok := auth.IdentityFrom(r.Context()); ok {
		logger = logger.With("admin_email", id.Email)
	}
	return logger
}

// ListLinks handles GET /api/links.
func (h *Handler) ListLinks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	all, err := h.service.List(ctx)
	if err != nil {
		h.handleServiceError(ctx, logger, w, err, "Failed to fetch links")
		return
	}

	resp := make([]LinkResponse, 0, len(all))
	for _, l := range all {
		resp = append(resp, toLinkResponse(l))
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// CreateLink handles POST /api/links.
func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	req, err := httpx.DecodeJSON[HTTPCreateLinkRequest](w, r)
	if err != nil {
		logger.WarnContext(ctx, "failed to decode request", "error", err.Error())
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	link, err := h.service.Create(ctx, CreateLinkRequest{
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
		Tag:         req.Tag,
		Order:       req.Order,
	})
	if err != nil {
		h.handleServiceError(ctx, logger, w, err, "Failed to create link")
		return
	}

	logger.InfoContext(ctx, "link created", "link_id", link.ID, "order", link.Order)

	httpx.WriteJSON(w, http.StatusCreated, toLinkResponse(link))
}

// UpdateLink handles PUT /api/links.
func (h *Handler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	req, err := httpx.DecodeJSON[HTTPUpdateLinkRequest](w, r)
	if err != nil {
		logger.WarnContext(ctx, "failed to decode request", "error", err.Error())
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	link, err := h.service.Update(ctx, req.ID, req.Patch)
	if err != nil {
		h.handleServiceError(ctx, logger, w, err, "Failed to update link")
		return
	}

	logger.InfoContext(ctx, "link updated", "link_id", link.ID)

	httpx.WriteJSON(w, http.StatusOK, toLinkResponse(link))
}

// DeleteLink handles DELETE /api/links?id=<id>.
func (h *Handler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	id := r.URL.Query().Get("id")
	if err := h.service.Delete(ctx, id); err != nil {
		h.handleServiceError(ctx, logger, w, err, "Failed to delete link")
		return
	}

	logger.InfoContext(ctx, "link deleted", "link_id", id)

	httpx.WriteJSON(w, http.StatusOK, DeleteLinkResponse{Success: true, ID: id})
}

// handleServiceError writes the response for an error returned by the
// service. Persistence failures of any kind are reported as internal_error
// with failMessage.
func (h *Handler) handleServiceError(ctx context.Context, logger *slog.Logger, w http.ResponseWriter, err error, failMessage string) {
	kind := errx.KindOf(err)

	logAttrs := []any{
		"error", err.Error(),
		"error_kind", kind,
		"operation", errx.OpOf(err),
	}

	switch {
	case errors.Is(err, ErrMissingFields):
		logger.WarnContext(ctx, "missing required fields", logAttrs...)
		httpx.WriteError(w, http.StatusBadRequest, "missing_fields",
			"Missing required fields: name, url, description")

	case errors.Is(err, ErrMissingID):
		logger.WarnContext(ctx, "missing link id", logAttrs...)
		httpx.WriteError(w, http.StatusBadRequest, "missing_id", "Missing link ID")

	case errx.Is(err, errx.Invalid):
		logger.WarnContext(ctx, "invalid link request", logAttrs...)
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", causeMessage(err))

	case errx.Is(err, errx.NotFound):
		logger.WarnContext(ctx, "link not found", logAttrs...)
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Link not found")

	default:
		logger.ErrorContext(ctx, "link store operation failed", logAttrs...)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", failMessage)
	}
}

// causeMessage returns the message of the error wrapped by the outermost
// errx.Error, without the operation prefix.
func causeMessage(err error) string {
	var e *errx.Error
	if errors.As(err, &e) && e.Err != nil {
		return e.Err.Error()
	}
	return err.Error()
}
