package controller

import (
	"ctchen222/bucketlist/internal/api/apperr"
	"ctchen222/bucketlist/internal/api/response"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// writeError maps a service error onto an HTTP status and message.
// Anything outside the taxonomy is logged and reported as a bare
// internal error so storage details never reach a response body.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "Invalid credentials. Log in again.")
	case errors.Is(err, apperr.ErrEmailTaken):
		response.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrDuplicateName):
		response.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrEmptyName),
		errors.Is(err, apperr.ErrNoChanges):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrWrongPassword):
		response.Error(c, http.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrNotOwned),
		errors.Is(err, apperr.ErrItemNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	default:
		slog.ErrorContext(c.Request.Context(), "request failed", "error", err)
		response.Error(c, http.StatusInternalServerError, "internal server error")
	}
}
