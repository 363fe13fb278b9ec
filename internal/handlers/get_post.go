package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/blogi/blogi-api/internal/models"
)

// PostGetter defines the interface that the service must implement.
type PostGetter interface {
	Get(ctx context.Context, id int64) (*models.PostView, error)
}

// parsePostID extracts the {id} URL parameter. A non-integer id is reported
// to the caller as a bad request.
func parsePostID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid post id")
		return 0, false
	}
	return id, true
}

// NewGetPostHandler returns an HTTP handler for reading a single post.
// Reads are not ownership-restricted.
// @Summary Get a blog post
// @Description Returns a post by id, denormalized with the author's username.
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post id"
// @Success 200 {object} models.PostView "The post"
// @Failure 401 {object} models.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} models.ErrorResponse "Post not found"
// @Router /api/blogs/{id} [get]
func NewGetPostHandler(svc PostGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parsePostID(w, r)
		if !ok {
			return
		}

		view, err := svc.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}
