package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/blogi/blogi-api/internal/models"
)

// PostLister defines the interface that the service must implement.
type PostLister interface {
	List(ctx context.Context, page, size int, search string) (*models.PaginatedPosts, error)
}

// NewListPostsHandler returns an HTTP handler for the paginated listing.
// page must be >= 1; size defaults to defaultSize and is clamped to
// [1, maxSize]; an empty search applies no filter.
// @Summary List blog posts
// @Description Returns one page of posts, most recent first, optionally filtered by a case-insensitive substring search over title and content.
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, starting at 1"
// @Param size query int false "Items per page"
// @Param search query string false "Search term for title or content"
// @Success 200 {object} models.PaginatedPosts "One page of posts"
// @Failure 400 {object} models.ErrorResponse "Invalid page or size"
// @Failure 401 {object} models.ErrorResponse "Missing or invalid token"
// @Router /api/blogs/ [get]
func NewListPostsHandler(svc PostLister, defaultSize, maxSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		page := 1
		if raw := q.Get("page"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				writeError(w, http.StatusBadRequest, "bad_request", "Page must be a positive integer")
				return
			}
			page = parsed
		}

		size := defaultSize
		if raw := q.Get("size"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "bad_request", "Size must be an integer")
				return
			}
			size = parsed
		}
		if size < 1 {
			size = 1
		}
		if size > maxSize {
			size = maxSize
		}

		result, err := svc.List(r.Context(), page, size, q.Get("search"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}
