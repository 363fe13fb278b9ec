package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blogi/blogi-api/internal/logger"
	"github.com/blogi/blogi-api/internal/models"
	"github.com/blogi/blogi-api/internal/services"
)

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes the structured error envelope.
func writeError(w http.ResponseWriter, status int, errorType, message string, details ...models.ErrorDetail) {
	writeJSON(w, status, models.ErrorResponse{
		StatusCode: status,
		ErrorType:  errorType,
		Message:    message,
		Details:    details,
	})
}

// writeServiceError maps a service error to its HTTP response. Unknown
// errors degrade to a generic 500 carrying no internal detail.
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, "bad_request", vErr.Error(), vErr.Details...)
	case errors.Is(err, services.ErrUsernameTaken):
		writeError(w, http.StatusBadRequest, "conflict", "Username already registered",
			models.ErrorDetail{Field: "username", Message: "Username already registered", Code: models.CodeConflict})
	case errors.Is(err, services.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "conflict", "Email already registered",
			models.ErrorDetail{Field: "email", Message: "Email already registered", Code: models.CodeConflict})
	case errors.Is(err, services.ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, "unauthorized", "Incorrect username or password")
	case errors.Is(err, services.ErrPostNotFound):
		writeError(w, http.StatusNotFound, "not_found", "Blog post not found",
			models.ErrorDetail{Field: "post", Message: "Blog post not found", Code: models.CodeNotFound})
	case errors.Is(err, services.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "not_found", "User not found",
			models.ErrorDetail{Field: "user", Message: "User not found", Code: models.CodeNotFound})
	case errors.Is(err, services.ErrNotPostOwner):
		writeError(w, http.StatusForbidden, "forbidden", "Not authorized to modify this blog post",
			models.ErrorDetail{Message: "Not authorized to modify this blog post", Code: models.CodePermissionDenied})
	default:
		logger.Log.Errorw("internal server error", "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "Internal server error")
	}
}
