// Package auth issues session tokens and verifies the credentials attached to requests
package auth

import (
	"context"
	"errors"
)

// Strategy names, used in logs and in Principal.Strategy
const (
	StrategySessionCookie = "session-cookie"
	StrategyBearer        = "bearer"
)

var (
	// ErrMissingCredential is returned when the request carries no credential
	ErrMissingCredential = errors.New("missing credential")
	// ErrInvalidToken is returned when a credential fails signature, issuer or identity checks
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned when a session token is past its expiry
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenRevoked is returned when a session token was revoked by logout
	ErrTokenRevoked = errors.New("token revoked")
	// ErrUpstream is returned when the identity provider could not be reached or misbehaved
	ErrUpstream = errors.New("identity provider unavailable")
)

// Principal is the verified identity associated with an inbound request
type Principal struct {
	Email    string
	Strategy string
	// Claims is set by the session cookie strategy only
	Claims *SessionClaims
}

// Verifier turns a raw credential into a Principal, or fails
type Verifier interface {
	Verify(ctx context.Context, credential string) (Principal, error)
}

// VerifierFunc adapts a function to Verifier
type VerifierFunc func(ctx context.Context, credential string) (Principal, error)

// Verify calls f
func (f VerifierFunc) Verify(ctx context.Context, credential string) (Principal, error) {
	return f(ctx, credential)
}
