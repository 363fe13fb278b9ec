package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/blogi/blogi-api/internal/middlewares"
	"github.com/blogi/blogi-api/internal/models"
)

// PostUpdater defines the interface that the service must implement.
type PostUpdater interface {
	Update(ctx context.Context, identity models.Identity, id int64, title, content, imageURL *string) (*models.PostView, error)
}

// UpdatePostRequest represents the JSON body for updating a blog post.
// Absent fields are left untouched.
// swagger:model UpdatePostRequest
type UpdatePostRequest struct {
	// New title, 1-100 characters
	Title *string `json:"title"`

	// New content, non-empty
	Content *string `json:"content"`

	// New image URL
	ImageURL *string `json:"image_url"`
}

// NewUpdatePostHandler returns an HTTP handler for updating a blog post.
// Only the post's owner may update it.
// @Summary Update a blog post
// @Description Applies the supplied fields to a post owned by the authenticated user. Unset fields are left untouched.
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post id"
// @Param updatePostRequest body handlers.UpdatePostRequest true "Fields to update"
// @Success 200 {object} models.PostView "Updated post"
// @Failure 400 {object} models.ErrorResponse "Validation failure"
// @Failure 401 {object} models.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} models.ErrorResponse "Not the owner"
// @Failure 404 {object} models.ErrorResponse "Post not found"
// @Router /api/blogs/{id} [put]
func NewUpdatePostHandler(svc PostUpdater) http.HandlerFunc {
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

		var req UpdatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
			return
		}

		view, err := svc.Update(r.Context(), *identity, id, req.Title, req.Content, req.ImageURL)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}
