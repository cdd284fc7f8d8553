// Package middleware contain the gin middleware shared by every route
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ismail-dev-code/career-linker-server/internal/auth"
	"github.com/ismail-dev-code/career-linker-server/internal/utilities"
)

// Context keys set by the credential strategies. The two are never set on the same route.
const (
	SessionKey       = "session"
	VerifiedEmailKey = "verifiedEmail"
)

// CredentialStrategy extracts a credential from a request, verifies it and
// attaches the resulting principal to the gin context
type CredentialStrategy interface {
	auth.Verifier
	Name() string
	Extract(c *gin.Context) (string, error)
	Attach(c *gin.Context, principal auth.Principal)
}

// Authenticate rejects the request unless strategy yields a principal.
// Rejected requests never reach the next handler.
func Authenticate(strategy CredentialStrategy) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		credential, err := strategy.Extract(c)
		if err != nil {
			auth.LogAttempt(ctx, strategy.Name(), "", err)
			utilities.AbortWithMessage(c, http.StatusUnauthorized, "unauthorized access")
			return
		}

		principal, err := strategy.Verify(ctx, credential)
		if err != nil {
			auth.LogAttempt(ctx, strategy.Name(), "", err)
			switch {
			case errors.Is(err, auth.ErrUpstream):
				utilities.AbortWithMessage(c, http.StatusBadGateway, "identity provider unavailable")
			case errors.Is(err, auth.ErrTokenExpired):
				utilities.AbortWithMessage(c, http.StatusUnauthorized, "session expired")
			case errors.Is(err, auth.ErrTokenRevoked):
				utilities.AbortWithMessage(c, http.StatusUnauthorized, "session revoked")
			case errors.Is(err, auth.ErrMissingCredential), errors.Is(err, auth.ErrInvalidToken):
				utilities.AbortWithMessage(c, http.StatusUnauthorized, "unauthorized access")
			default:
				utilities.AbortWithError(c, http.StatusInternalServerError, "failed to verify credential")
			}
			return
		}

		auth.LogAttempt(ctx, strategy.Name(), principal.Email, nil)
		strategy.Attach(c, principal)
		c.Next()
	}
}

type sessionCookie struct {
	*auth.SessionManager
	cookieName string
}

// SessionCookie verifies the signed session token stored in cookieName
func SessionCookie(manager *auth.SessionManager, cookieName string) CredentialStrategy {
	return sessionCookie{SessionManager: manager, cookieName: cookieName}
}

func (s sessionCookie) Name() string { return auth.StrategySessionCookie }

func (s sessionCookie) Extract(c *gin.Context) (string, error) {
	token, err := utilities.ExtractCookie(c, s.cookieName)
	if err != nil {
		return "", auth.ErrMissingCredential
	}
	return token, nil
}

func (s sessionCookie) Attach(c *gin.Context, principal auth.Principal) {
	c.Set(SessionKey, principal.Claims)
}

type bearerToken struct {
	auth.Verifier
}

// BearerToken forwards the Authorization bearer token to verifier
func BearerToken(verifier auth.Verifier) CredentialStrategy {
	return bearerToken{Verifier: verifier}
}

func (b bearerToken) Name() string { return auth.StrategyBearer }

func (b bearerToken) Extract(c *gin.Context) (string, error) {
	token, err := utilities.ExtractBearerToken(c)
	if err != nil {
		return "", auth.ErrMissingCredential
	}
	return token, nil
}

func (b bearerToken) Attach(c *gin.Context, principal auth.Principal) {
	c.Set(VerifiedEmailKey, principal.Email)
}

// SessionClaims returns the claims attached by the session cookie strategy
func SessionClaims(c *gin.Context) (*auth.SessionClaims, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.SessionClaims)
	return claims, ok && claims != nil
}

// VerifiedEmail returns the email attached by the bearer token strategy
func VerifiedEmail(c *gin.Context) (string, bool) {
	email := c.GetString(VerifiedEmailKey)
	return email, email != ""
}
