package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/ismail-dev-code/career-linker-server/internal/model"
)

// DefaultUserInfoEndpoint is Google's OpenID Connect userinfo endpoint
const DefaultUserInfoEndpoint = "https://openidconnect.googleapis.com/v1/userinfo"

// IdentityOracle verifies third-party bearer tokens by presenting them to a userinfo endpoint
type IdentityOracle struct {
	Endpoint string
	Timeout  time.Duration
	// HTTPClient is used as the base transport when set. Tests point it at an httptest server.
	HTTPClient *http.Client
}

var _ Verifier = (*IdentityOracle)(nil)

// NewIdentityOracle creates an oracle for endpoint. An empty endpoint uses Google's.
func NewIdentityOracle(endpoint string, timeout time.Duration) *IdentityOracle {
	if endpoint == "" {
		endpoint = DefaultUserInfoEndpoint
	}
	return &IdentityOracle{
		Endpoint: endpoint,
		Timeout:  timeout,
	}
}

// Verify asks the identity provider who owns token
func (o *IdentityOracle) Verify(ctx context.Context, token string) (Principal, error) {
	if token == "" {
		return Principal{}, ErrMissingCredential
	}

	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}
	if o.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, o.HTTPClient)
	}

	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.Endpoint, nil)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %s", ErrUpstream, err.Error())
	}
	resp, err := client.Do(req)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %s", ErrUpstream, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return Principal{}, fmt.Errorf("%w: identity provider rejected token", ErrInvalidToken)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Principal{}, fmt.Errorf("%w: userinfo endpoint returned status=%d body=%s", ErrUpstream, resp.StatusCode, string(body))
	}

	var uInfo model.IdentityUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&uInfo); err != nil {
		return Principal{}, fmt.Errorf("%w: failed to decode user info: %s", ErrUpstream, err.Error())
	}
	if uInfo.Email == "" {
		return Principal{}, fmt.Errorf("%w: identity has no email", ErrInvalidToken)
	}
	if uInfo.EmailVerified != nil && !*uInfo.EmailVerified {
		return Principal{}, fmt.Errorf("%w: email not verified", ErrInvalidToken)
	}

	return Principal{
		Email:    uInfo.Email,
		Strategy: StrategyBearer,
	}, nil
}
