package errors

import (
	"encoding/json"
	"net/http"
)

// HTTPErrorResponse is the JSON error envelope every non-2xx response
// carries. The shape is part of the stable tool contract.
type HTTPErrorResponse struct {
	Error HTTPErrorBody `json:"error"`
}

type HTTPErrorBody struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	RequestID string         `json:"request_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// statusFor maps stable codes to HTTP statuses.
func statusFor(code string) int {
	switch code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeMethodNotAllow:
		return http.StatusMethodNotAllowed
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeExternalService:
		return http.StatusBadGateway
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithError writes err as the standard JSON envelope.
func RespondWithError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := AsAppError(err)
	WriteHTTPError(w, appErr.Code, appErr.Message, requestIDFrom(r), appErr.Details)
}

// WriteHTTPError writes the envelope for an explicit code and message.
func WriteHTTPError(w http.ResponseWriter, code, message, requestID string, details map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(code))
	_ = json.NewEncoder(w).Encode(HTTPErrorResponse{Error: HTTPErrorBody{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Details:   details,
	}})
}

func requestIDFrom(r *http.Request) string {
	if r == nil {
		return ""
	}
	return r.Header.Get("X-Request-ID")
}
