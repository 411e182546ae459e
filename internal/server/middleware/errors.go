// Package middleware holds the HTTP middleware chain for the tool server.
package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/seamlabs/codeshift/internal/errors"
	"github.com/seamlabs/codeshift/internal/observability"
)

// ErrorResponse mirrors the standard JSON error envelope for decoding in
// tests and clients.
type ErrorResponse struct {
	Error struct {
		Code      string         `json:"code"`
		Message   string         `json:"message"`
		RequestID string         `json:"request_id,omitempty"`
		Details   map[string]any `json:"details,omitempty"`
	} `json:"error"`
}

// Recovery converts handler panics into the standard 500 envelope. The
// server must keep serving after any single request's fault.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				observability.ServerLogger.Error("handler panic",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path))
				writeErrorResponse(w,
					apperrors.CodeInternal,
					fmt.Sprintf("panic: %v", rec),
					GetRequestID(r),
					http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// ErrorHandler is an alias for Recovery kept for route setup readability.
func ErrorHandler(next http.Handler) http.Handler {
	return Recovery(next)
}

func writeErrorResponse(w http.ResponseWriter, code, message, requestID string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.RequestID = requestID
	_ = json.NewEncoder(w).Encode(resp)
}
