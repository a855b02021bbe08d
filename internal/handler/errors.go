package handler

import (
	"errors"
	"net/http"

	"explorer/internal/domain"
	"explorer/internal/httputil"
)

// errorsIsClient reports whether err maps to a 4xx response, so handlers
// can skip error-level logging for expected client mistakes.
func errorsIsClient(err error) bool {
	return errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound)
}

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, httputil.CodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, httputil.CodeNotFound, err.Error())
	default:
		// ErrDataIntegrity and ErrUnavailable land here too: both are
		// server-side failures whose detail stays in the logs.
		httputil.RespondError(w, http.StatusInternalServerError, httputil.CodeInternalError, "internal server error")
	}
}
