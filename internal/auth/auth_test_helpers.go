package auth

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/ismail-dev-code/career-linker-server/internal/utilities"
)

// GetSessionCookie posts email to the session handler and returns the cookie it sets.
func GetSessionCookie(t *testing.T, controller *SessionController, email string) (*http.Cookie, error) {
	t.Helper()
	rec, _, err := utilities.SimulateAPICall(controller.IssueHandler, "/jwt", http.MethodPost, map[string]string{
		"email": email,
	})
	if err != nil {
		return nil, err
	}
	if rec.Code != http.StatusOK {
		return nil, fmt.Errorf("session issue failed: status %d, body: %s", rec.Code, rec.Body.String())
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == controller.CookieName {
			return cookie, nil
		}
	}
	return nil, fmt.Errorf("no %s cookie in response", controller.CookieName)
}
