package auth

import (
	"context"
	"crypto"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// OIDCVerifier validates ID tokens from an OpenID Connect issuer such as
// Firebase Authentication (https://securetoken.google.com/<project>).
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

type oidcClaims struct {
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified"`
}

// NewOIDCVerifier discovers the issuer's signing keys and returns a verifier
// that requires audience in the aud claim.
func NewOIDCVerifier(ctx context.Context, issuer, audience string) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	return &OIDCVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: audience}),
	}, nil
}

// NewOIDCVerifierWithKeys skips discovery and checks signatures against keys.
func NewOIDCVerifierWithKeys(issuer, audience string, keys ...crypto.PublicKey) *OIDCVerifier {
	keySet := &oidc.StaticKeySet{PublicKeys: keys}
	return &OIDCVerifier{
		verifier: oidc.NewVerifier(issuer, keySet, &oidc.Config{ClientID: audience}),
	}
}

func (v *OIDCVerifier) Verify(ctx context.Context, rawToken string) (Identity, error) {
	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var claims oidcClaims
	if err := token.Claims(&claims); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Email == "" {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, errors.New("token has no email claim"))
	}
	if claims.EmailVerified != nil && !*claims.EmailVerified {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, errors.New("email is not verified"))
	}

	return Identity{
		Email:     claims.Email,
		Subject:   token.Subject,
		IssuedAt:  token.IssuedAt,
		ExpiresAt: token.Expiry,
	}, nil
}
