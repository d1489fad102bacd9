// Package handler exposes the catalog/cart/order services as a JSON API.
// Handlers stay thin: decode, call the service, map domain errors to HTTP.
package handler

import (
	"encoding/json"
	"net/http"

	"shopcore/internal/domain"
	"shopcore/internal/middleware"
)

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// errorBody is the wire shape of every failure response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// RespondError maps a domain error to an HTTP status and writes a
// structured JSON body. Server-side failures are logged with the
// request-scoped logger; client errors at info level.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := errorCodeToHTTPStatus(code)

	logger := middleware.GetLogger(r.Context())
	attrs := []any{
		"error", err.Error(),
		"code", code,
		"status", status,
	}
	if op := domain.ErrorOp(err); op != "" {
		attrs = append(attrs, "op", op)
	}
	if status >= 500 {
		logger.Error("request failed", attrs...)
	} else {
		logger.Info("request rejected", attrs...)
	}

	RespondJSON(w, status, errorBody{Error: errorDetail{
		Code:    code,
		Message: domain.ErrorMessage(err),
		Fields:  domain.GetValidationFields(err),
	}})
}

// errorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func errorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID, domain.ETOTALMISMATCH:
		return http.StatusBadRequest // 400
	case domain.ENOTFOUND:
		return http.StatusNotFound // 404
	case domain.ECONFLICT:
		return http.StatusConflict // 409
	case domain.ESTORE, domain.EINTERNAL:
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}

// decodeJSON decodes a request body into dst. Unknown fields (such as a
// caller-supplied availability flag) are ignored, matching the
// partial-update contract.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Invalid("", "invalid JSON body")
	}
	return nil
}
