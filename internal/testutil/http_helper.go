// Package testutil provides utility functions for testing HTTP handlers.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequestOption adjusts a request before it is served
type RequestOption func(*http.Request)

// WithBearer sets an Authorization bearer header
func WithBearer(token string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

// WithCookie attaches a cookie
func WithCookie(cookie *http.Cookie) RequestOption {
	return func(r *http.Request) {
		r.AddCookie(cookie)
	}
}

// MakeJSONRequest serves a request against h. A nil body sends no payload.
func MakeJSONRequest(h http.Handler, method string, endpoint string, body interface{}, options ...RequestOption) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		if raw, ok := body.(string); ok {
			payload = []byte(raw)
		} else {
			payload, _ = json.Marshal(body)
		}
	}

	req := httptest.NewRequest(method, endpoint, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, option := range options {
		option(req)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// DecodeJSON unmarshals the recorded body into T, failing the test on error
func DecodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}
