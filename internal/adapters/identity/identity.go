// Package identity resolves the caller identity recorded on pauses and
// documentation entries.
package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stempel/internal/ports"
)

var errMissingSubject = errors.New("identity token has no subject")

// Static is a fixed identity, used by tests and single-user CLI setups
type Static struct {
	ID string
}

// Verify interface compliance at compile time
var _ ports.IdentityProvider = Static{}

func (s Static) CurrentInitiator() (string, error) {
	if s.ID == "" {
		return "", errors.New("no identity configured")
	}
	return s.ID, nil
}

// TokenProvider yields the subject of a signed identity token. The token is
// verified once at construction; CurrentInitiator never touches the network.
type TokenProvider struct {
	subject string
}

// Verify interface compliance at compile time
var _ ports.IdentityProvider = (*TokenProvider)(nil)

// NewTokenProvider verifies an HS256 token against the shared secret and
// captures its subject
func NewTokenProvider(token string, secret []byte) (*TokenProvider, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("failed to verify identity token: %w", err)
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("failed to read token subject: %w", err)
	}
	if subject == "" {
		return nil, errMissingSubject
	}

	return &TokenProvider{subject: subject}, nil
}

func (p *TokenProvider) CurrentInitiator() (string, error) {
	return p.subject, nil
}

// IssueToken signs an identity token for the given subject. Used by admin
// tooling to hand out per-employee tokens.
func IssueToken(secret []byte, subject string, ttl time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	return token.SignedString(secret)
}
