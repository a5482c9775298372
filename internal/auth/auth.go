// Package auth verifies bearer tokens and decides whether the identity they
// carry may modify links.
//
// A Verifier turns a raw token into an Identity. The Gate compares that
// identity with the configured admin email, and Guard combines both into
// HTTP middleware for the mutating routes.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrMissingToken means the request carried no Authorization header.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken means the header was malformed or the token was rejected.
	ErrInvalidToken = errors.New("invalid bearer token")
	// ErrForbidden means the token was valid but its identity is not the admin.
	ErrForbidden = errors.New("identity is not allowed to modify links")
)

// Identity is the verified subject of a bearer token.
type Identity struct {
	Email     string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Verifier validates a raw bearer token. Errors wrap ErrInvalidToken.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (Identity, error)
}

// VerifierFunc adapts a function to Verifier.
type VerifierFunc func(ctx context.Context, rawToken string) (Identity, error)

func (f VerifierFunc) Verify(ctx context.Context, rawToken string) (Identity, error) {
	return f(ctx, rawToken)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", ErrMissingToken
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidToken
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidToken
	}
	return token, nil
}

type identityContextKey struct{}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFrom returns the identity stored by RequireAdmin, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}
