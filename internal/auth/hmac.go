package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of self-issued HS256 tokens.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// HMACVerifier validates HS256 tokens signed with a shared secret. It is
// meant for development and tests where no identity provider is running.
//
// A token without an email claim is identified by its subject, so a token
// whose sub equals ADMIN_EMAIL passes the Gate. Only holders of the secret
// can mint one.
type HMACVerifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewHMACVerifier returns a verifier for secret. Empty issuer or audience
// disables the corresponding check.
func NewHMACVerifier(secret, issuer, audience string) *HMACVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}

	return &HMACVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(opts...),
	}
}

func (v *HMACVerifier) Verify(_ context.Context, rawToken string) (Identity, error) {
	claims := &Claims{}
	_, err := v.parser.ParseWithClaims(rawToken, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	email := claims.Email
	if email == "" {
		email = claims.Subject
	}
	if email == "" {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, errors.New("token has no email claim"))
	}

	id := Identity{Email: email, Subject: claims.Subject}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

// HMACIssuer mints tokens that HMACVerifier accepts.
type HMACIssuer struct {
	secret   []byte
	issuer   string
	audience string
	now      func() time.Time
}

func NewHMACIssuer(secret, issuer, audience string) *HMACIssuer {
	return &HMACIssuer{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		now:      time.Now,
	}
}

// Issue returns a signed token for email valid for ttl.
func (i *HMACIssuer) Issue(email string, ttl time.Duration) (string, error) {
	if email == "" {
		return "", errors.New("email is required")
	}
	if ttl <= 0 {
		return "", errors.New("ttl must be positive")
	}

	now := i.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if i.audience != "" {
		claims.Audience = jwt.ClaimStrings{i.audience}
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}
