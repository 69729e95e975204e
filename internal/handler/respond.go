// Package handler provides shared HTTP response helpers for the JSON API.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rmoralesp/bodega/internal/domain"
)

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests
	case domain.ENOTIMPL:
		return http.StatusNotImplemented
	case domain.EINTERNAL:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// errorBody is the JSON error envelope returned to API clients.
type errorBody struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

// ErrorResponse writes err as a JSON error envelope. Internal error details
// never reach the client; domain.ErrorMessage substitutes a generic message.
func ErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)

	if domain.IsCode(err, domain.EINTERNAL) {
		slog.Error("internal error",
			"op", domain.ErrorOp(err),
			"error", err.Error(),
			"request_id", domain.RequestIDFromContext(r.Context()),
		)
	}

	var body errorBody
	body.Error.Code = code
	body.Error.Message = domain.ErrorMessage(err)
	body.Error.RequestID = domain.RequestIDFromContext(r.Context())

	JSON(w, ErrorCodeToHTTPStatus(code), body)
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// Decode reads a JSON request body into v, returning an EINVALID domain
// error on malformed input.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &domain.Error{
			Code:    domain.EINVALID,
			Message: "Invalid request body",
			Err:     err,
		}
	}
	return nil
}
