package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/blogi/blogi-api/internal/middlewares"
	"github.com/blogi/blogi-api/internal/models"
)

// PostCreator defines the interface that the service must implement.
type PostCreator interface {
	Create(ctx context.Context, identity models.Identity, title, content string, imageURL *string) (*models.PostView, error)
}

// CreatePostRequest represents the JSON body for creating a blog post
// swagger:model CreatePostRequest
type CreatePostRequest struct {
	// Title, 1-100 characters
	// required: true
	Title string `json:"title"`

	// Content, non-empty
	// required: true
	Content string `json:"content"`

	// Optional image URL
	ImageURL *string `json:"image_url"`
}

// NewCreatePostHandler returns an HTTP handler for creating a blog post.
// @Summary Create a blog post
// @Description Creates a post owned by the authenticated user. Title and content are trimmed and validated.
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param createPostRequest body handlers.CreatePostRequest true "Post to create"
// @Success 201 {object} models.PostView "Created post with author username"
// @Failure 400 {object} models.ErrorResponse "Validation failure"
// @Failure 401 {object} models.ErrorResponse "Missing or invalid token"
// @Router /api/blogs/ [post]
func NewCreatePostHandler(svc PostCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middlewares.GetIdentityFromContext(r.Context())
		if identity == nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
			return
		}

		var req CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
			return
		}

		view, err := svc.Create(r.Context(), *identity, req.Title, req.Content, req.ImageURL)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, view)
	}
}
