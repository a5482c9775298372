package auth

import (
	"log/slog"
	"net/http"

	"github.com/sundayezeilo/linkbio/internal/errx"
	"github.com/sundayezeilo/linkbio/internal/httpx"
)

// Guard runs the Verifier and the Gate for a request.
type Guard struct {
	verifier Verifier
	gate     Gate
	logger   *slog.Logger
}

func NewGuard(verifier Verifier, gate Gate, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{verifier: verifier, gate: gate, logger: logger}
}

// Authorize returns the request's identity, or an errx error of kind
// Unauthorized (no or bad token) or Forbidden (not the admin).
func (g *Guard) Authorize(r *http.Request) (Identity, error) {
	const op = "auth.guard.Authorize"

	raw, err := BearerToken(r)
	if err != nil {
		return Identity{}, errx.E(op, errx.Unauthorized, err)
	}

	id, err := g.verifier.Verify(r.Context(), raw)
	if err != nil {
		return Identity{}, errx.E(op, errx.Unauthorized, err)
	}

	if !g.gate.Allow(id) {
		return id, errx.E(op, errx.Forbidden, ErrForbidden)
	}
	return id, nil
}

// RequireAdmin rejects requests that Authorize does not accept and stores
// the identity in the context of those it does.
func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, err := g.Authorize(r)
		if err != nil {
			kind := errx.KindOf(err)
			g.logger.WarnContext(ctx, "request not authorized",
				"request_id", httpx.GetRequestID(ctx),
				"method", r.Method,
				"path", r.URL.Path,
				"error", err.Error(),
				"error_kind", kind,
				"email", id.Email,
			)

			message := "a valid bearer token is required"
			if kind == errx.Forbidden {
				message = "this account is not allowed to modify links"
			}
			httpx.WriteKindError(w, kind, message)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, id)))
	})
}
