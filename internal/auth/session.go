package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ismail-dev-code/career-linker-server/internal/model"
	"github.com/ismail-dev-code/career-linker-server/internal/utilities"
)

// SessionController issues and clears session cookies
type SessionController struct {
	Manager    *SessionManager
	CookieName string
	Secure     bool
}

// NewSessionController creates a new instance of SessionController
func NewSessionController(manager *SessionManager, cookieName string, secure bool) *SessionController {
	return &SessionController{
		Manager:    manager,
		CookieName: cookieName,
		Secure:     secure,
	}
}

func (sc *SessionController) setCookie(c *gin.Context, value string, maxAge int) {
	if sc.Secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
	c.SetCookie(sc.CookieName, value, maxAge, "/", "", sc.Secure, true)
}

// IssueHandler signs a session token for the posted identity and sets it as a cookie.
// @Summary      Issue a session cookie
// @Description  Signs a session token for the posted identity and sets it as an HttpOnly cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        identity  body      map[string]interface{}  true  "Identity payload, must contain email"
// @Success      200       {object}  model.SessionResponse
// @Failure      400       {object}  utilities.ErrorResponse
// @Failure      500       {object}  utilities.ErrorResponse
// @Router       /jwt [post]
func (sc *SessionController) IssueHandler(c *gin.Context) {
	var identity map[string]interface{}
	if err := c.ShouldBindJSON(&identity); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body"})
		return
	}

	email, _ := identity["email"].(string)
	if email == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "email is required"})
		return
	}

	token, _, err := sc.Manager.Issue(email, identity)
	if err != nil {
		LogAttempt(c.Request.Context(), StrategySessionCookie, email, err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to issue session"})
		return
	}

	sc.setCookie(c, token, int(sc.Manager.TTL().Seconds()))
	LogAttempt(c.Request.Context(), StrategySessionCookie, email, nil)
	c.JSON(http.StatusOK, model.SessionResponse{Success: true})
}

// LogoutHandler revokes the session cookie token and clears the cookie.
// @Summary      Clear the session cookie
// @Description  Revokes the current session token when it is still valid and clears the cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Failure      500  {object}  utilities.ErrorResponse
// @Router       /logout [post]
func (sc *SessionController) LogoutHandler(c *gin.Context) {
	if token, err := utilities.ExtractCookie(c, sc.CookieName); err == nil {
		if claims, err := sc.Manager.Parse(token); err == nil {
			if err := sc.Manager.Revoke(claims); err != nil {
				c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to logout"})
				return
			}
		}
	}

	sc.setCookie(c, "", -1)
	c.JSON(http.StatusOK, model.SessionResponse{Success: true})
}
