// Package handlers implements the HTTP endpoints served by the tool
// server: the migration tool surface, health probes, and version info.
package handlers

import (
	"net/http"

	apperrors "github.com/seamlabs/codeshift/internal/errors"
)

// httpErrorResponder writes an error to the client. It is pluggable so
// embedders can swap the envelope without forking the handlers.
var httpErrorResponder = defaultHTTPErrorResponder

func defaultHTTPErrorResponder(w http.ResponseWriter, r *http.Request, err error) {
	apperrors.RespondWithError(w, r, err)
}

// SetHTTPErrorResponder installs a custom error responder. Passing nil
// restores the default.
func SetHTTPErrorResponder(responder func(http.ResponseWriter, *http.Request, error)) {
	if responder == nil {
		httpErrorResponder = defaultHTTPErrorResponder
		return
	}
	httpErrorResponder = responder
}

// ResetHTTPErrorResponder restores the default error responder.
func ResetHTTPErrorResponder() {
	httpErrorResponder = defaultHTTPErrorResponder
}

func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	httpErrorResponder(w, r, err)
}
