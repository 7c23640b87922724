package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	apperrors "github.com/merchspace/storefront/pkg/errors"
	"github.com/merchspace/storefront/pkg/logger"
	"github.com/merchspace/storefront/pkg/validator"
)

// ErrorResponse is the error body shape for the storefront API.
// Errors are surfaced to clients as a single human-readable message.
type ErrorResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
// If encoding fails, headers are already sent so nothing can be done.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes a plain {"message": ...} body with the given status.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Message: message})
}

// WriteError writes a standardized error response based on the error type.
// AppError and the standard sentinels map to their HTTP status; anything else
// is a 500 whose detail is logged but never sent to the client. It prefers the
// request-scoped logger from context over the fallback logger.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	status := apperrors.HTTPStatus(err)
	message := "an internal error occurred"

	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		message = appErr.Message
	case errors.Is(err, apperrors.ErrNotFound):
		message = "resource not found"
	case errors.Is(err, apperrors.ErrAlreadyExists):
		message = "resource already exists"
	case errors.Is(err, apperrors.ErrInvalidInput):
		message = err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		message = "unauthorized"
	case errors.Is(err, apperrors.ErrServiceUnavail):
		message = "upstream service unavailable"
	}

	if status >= http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		message = "an internal error occurred"
	}

	WriteJSON(w, status, ErrorResponse{Message: message})
}

// WriteValidationError writes a 400 response for a failed request validation.
// The message falls back to the validation detail when no override is given.
func WriteValidationError(w http.ResponseWriter, err error, message string) {
	if message == "" {
		var valErr *validator.ValidationError
		if errors.As(err, &valErr) {
			message = valErr.Error()
		} else {
			message = "invalid request"
		}
	}
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: message})
}

// ParseID validates that the given route parameter is a positive integer
// identifier. If malformed, it writes a 400 response and returns false,
// signaling the caller to return early.
func ParseID(w http.ResponseWriter, param string) (int64, bool) {
	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil || id < 1 {
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid id: " + param})
		return 0, false
	}
	return id, true
}
