package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// SessionClaims are the claims carried by a session cookie
type SessionClaims struct {
	Email    string                 `json:"email"`
	Identity map[string]interface{} `json:"identity,omitempty"`
	jwt.RegisteredClaims
}

// SessionManager signs and verifies HS256 session tokens
type SessionManager struct {
	secret    []byte
	issuer    string
	ttl       time.Duration
	blacklist JwtBlacklistStore
}

var _ Verifier = (*SessionManager)(nil)

// NewSessionManager creates a SessionManager. blacklist may be nil when logout revocation is not needed.
func NewSessionManager(secret string, issuer string, ttl time.Duration, blacklist JwtBlacklistStore) *SessionManager {
	return &SessionManager{
		secret:    []byte(secret),
		issuer:    issuer,
		ttl:       ttl,
		blacklist: blacklist,
	}
}

// TTL returns how long issued tokens stay valid
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a session token for email. identity holds the posted identity payload.
func (m *SessionManager) Issue(email string, identity map[string]interface{}) (string, *SessionClaims, error) {
	return m.IssueWithDuration(email, identity, m.ttl)
}

// IssueWithDuration signs a session token that expires after d
func (m *SessionManager) IssueWithDuration(email string, identity map[string]interface{}, d time.Duration) (string, *SessionClaims, error) {
	now := time.Now()
	claims := &SessionClaims{
		Email:    email,
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims, nil
}

// Parse checks signature, algorithm, expiry and issuer of a session token
func (m *SessionManager) Parse(encoded string) (*SessionClaims, error) {
	if encoded == "" {
		return nil, ErrMissingCredential
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(encoded, claims, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyIssuer(m.issuer, true) {
		return nil, fmt.Errorf("%w: invalid token issuer", ErrInvalidToken)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: no email claim", ErrInvalidToken)
	}
	return claims, nil
}

// Verify parses the token and rejects it when it was revoked
func (m *SessionManager) Verify(_ context.Context, encoded string) (Principal, error) {
	claims, err := m.Parse(encoded)
	if err != nil {
		return Principal{}, err
	}

	if m.blacklist != nil {
		revoked, err := m.blacklist.IsBlacklisted(claims.ID)
		if err != nil {
			return Principal{}, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return Principal{}, ErrTokenRevoked
		}
	}

	return Principal{
		Email:    claims.Email,
		Strategy: StrategySessionCookie,
		Claims:   claims,
	}, nil
}

// Revoke blacklists the token described by claims until it expires
func (m *SessionManager) Revoke(claims *SessionClaims) error {
	if m.blacklist == nil {
		return nil
	}
	exp := time.Now().Add(m.ttl)
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return m.blacklist.AddToBlacklist(claims.ID, exp)
}
