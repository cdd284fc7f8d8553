// Package utilities contain utility code that use across the package
package utilities

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body returned when a request or store operation fails
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body returned when authentication or authorization fails
type MessageResponse struct {
	Message string `json:"message"`
}

// AbortWithMessage stops the handler chain with a MessageResponse body
func AbortWithMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, MessageResponse{Message: message})
}

// AbortWithError stops the handler chain with an ErrorResponse body
func AbortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}
