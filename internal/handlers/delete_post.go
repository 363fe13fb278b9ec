package handlers

import (
	"context"
	"net/http"

	"github.com/blogi/blogi-api/internal/middlewares"
	"github.com/blogi/blogi-api/internal/models"
)

// PostDeleter defines the interface that the service must implement.
type PostDeleter interface {
	Delete(ctx context.Context, identity models.Identity, id int64) error
}

// MessageResponse carries a simple confirmation message
// swagger:model MessageResponse
type MessageResponse struct {
	Message string `json:"message"`
}

// NewDeletePostHandler returns an HTTP handler for deleting a blog post.
// Only the post's owner may delete it.
// @Summary Delete a blog post
// @Description Hard-deletes a post owned by the authenticated user.
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post id"
// @Success 200 {object} handlers.MessageResponse "Deletion confirmation"
// @Failure 401 {object} models.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} models.ErrorResponse "Not the owner"
// @Failure 404 {object} models.ErrorResponse "Post not found"
// @Router /api/blogs/{id} [delete]
func NewDeletePostHandler(svc PostDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middlewares.GetIdentityFromContext(r.Context())
		if identity == nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
			return
		}

		id, ok := parsePostID(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), *identity, id); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{
			Message: "Blog post deleted successfully",
		})
	}
}
