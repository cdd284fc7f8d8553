package utilities

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrInvalidAuthorizationHeader is returned when the Authorization header is missing or not a bearer credential
var ErrInvalidAuthorizationHeader = errors.New("Invalid authorization header")

// ExtractBearerToken returns the token of an "Authorization: Bearer <token>" header
func ExtractBearerToken(c *gin.Context) (string, error) {
	const bearerSchema = "Bearer "
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))

	if len(authHeader) <= len(bearerSchema) || !strings.EqualFold(authHeader[:len(bearerSchema)], bearerSchema) {
		return "", ErrInvalidAuthorizationHeader
	}

	token := strings.TrimSpace(authHeader[len(bearerSchema):])
	if token == "" {
		return "", ErrInvalidAuthorizationHeader
	}
	return token, nil
}

// ExtractCookie returns the value of the named cookie, or an error when absent or blank
func ExtractCookie(c *gin.Context, name string) (string, error) {
	value, err := c.Cookie(name)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(value) == "" {
		return "", errors.New("empty cookie")
	}
	return value, nil
}
