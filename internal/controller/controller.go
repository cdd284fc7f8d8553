// Package controller holds the response helpers shared by the request handlers
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ismail-dev-code/career-linker-server/internal/database"
	"github.com/ismail-dev-code/career-linker-server/internal/model"
	"github.com/ismail-dev-code/career-linker-server/internal/utilities"
)

// RespondStoreError writes the response for a failed store call.
// Malformed ids map to 400, missing documents to 404 and everything else to 500.
func RespondStoreError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, database.ErrInvalidID):
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid id"})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Not found"})
	default:
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("action", action).Msg("store operation failed")
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to " + action})
	}
}

// RespondList writes docs as a JSON array, never null
func RespondList(c *gin.Context, docs []model.Document) {
	if docs == nil {
		docs = []model.Document{}
	}
	c.JSON(http.StatusOK, docs)
}

// BindDocument reads the request body as a JSON object.
// It writes a 400 response and returns false when the body is not one.
func BindDocument(c *gin.Context) (model.Document, bool) {
	var doc model.Document
	if err := c.ShouldBindJSON(&doc); err != nil || doc == nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Request body must be a JSON object"})
		return nil, false
	}
	return doc, true
}
