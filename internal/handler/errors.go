package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/status-bot/internal/domain"
)

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail as {"error": {...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// requestError writes a 422 for input rejected before reaching the service layer.
func requestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: message}})
}

// writeError maps a service error to a status code and error body:
//
//	domain.ErrNotFound                                       → 404
//	domain.ErrTransport                                      → 502
//	domain.ErrValidation, ErrInvalidTripName, ErrMissingStatus → 422
//	anything else                                            → 500
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, body := http.StatusInternalServerError, ErrorDetail{Code: "internal_error", Message: err.Error()}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		code, body.Code = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrTransport):
		code, body.Code = http.StatusBadGateway, "upstream_error"
	case errors.Is(err, domain.ErrValidation):
		code, body = http.StatusUnprocessableEntity, ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)}
	case errors.Is(err, domain.ErrInvalidTripName), errors.Is(err, domain.ErrMissingStatus):
		code, body.Code = http.StatusUnprocessableEntity, "invalid_input"
	}
	if code >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, code, ErrorResponse{Error: body})
}

// unwrapMessage extracts the human-readable part from a wrapped validation error.
// e.g. "service.AdHocService.Post: validation error: expiration "x" is not a duration"
// → `expiration "x" is not a duration`
func unwrapMessage(err error) string {
	msg := err.Error()
	prefix := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}
