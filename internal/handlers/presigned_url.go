package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/blogi/blogi-api/internal/models"
)

// PresignedURLCreator defines the interface that the service must implement.
type PresignedURLCreator interface {
	CreatePresignedURL(ctx context.Context, fileName, fileType string) (*models.PresignedURL, error)
}

// PresignedURLRequest represents the JSON body for requesting an upload URL
// swagger:model PresignedURLRequest
type PresignedURLRequest struct {
	// Name of the file to upload; only its extension is used
	// required: true
	FileName string `json:"file_name"`

	// MIME type, one of image/jpeg, image/jpg, image/png, image/gif
	// required: true
	FileType string `json:"file_type"`
}

// NewPresignedURLHandler returns an HTTP handler that mints presigned
// upload URLs. Each call generates a fresh object key.
// @Summary Get a presigned upload URL
// @Description Returns a presigned PUT URL valid for one hour and the public URL the object will be readable from.
// @Tags uploads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param presignedUrlRequest body handlers.PresignedURLRequest true "File name and type"
// @Success 200 {object} models.PresignedURL "Upload and file URLs"
// @Failure 400 {object} models.ErrorResponse "Unsupported file type"
// @Failure 401 {object} models.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} models.ErrorResponse "Storage provider failure"
// @Router /api/uploads/presigned-url [post]
func NewPresignedURLHandler(svc PresignedURLCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PresignedURLRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body")
			return
		}

		result, err := svc.CreatePresignedURL(r.Context(), req.FileName, req.FileType)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}
