package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/blogi/blogi-api/internal/logger"
	"github.com/blogi/blogi-api/internal/models"
)

// Presigner mints presigned upload URLs against the object store.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string) (string, error)
	FileURL(key string) string
}

// allowedFileTypes are the content types accepted for upload.
var allowedFileTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
}

// UploadService issues presigned upload URLs under collision-resistant keys.
type UploadService struct {
	presigner Presigner
}

// NewUploadService creates a new UploadService.
func NewUploadService(presigner Presigner) *UploadService {
	return &UploadService{presigner: presigner}
}

// CreatePresignedURL validates the content type and returns a presigned PUT
// URL plus the public read URL. The object key is generated, never derived
// from the client file name, so repeated calls never overwrite each other.
func (s *UploadService) CreatePresignedURL(ctx context.Context, fileName, fileType string) (*models.PresignedURL, error) {
	if _, ok := allowedFileTypes[fileType]; !ok {
		return nil, NewValidationError(models.ErrorDetail{
			Field:   "file_type",
			Message: "File type must be one of image/jpeg, image/jpg, image/png, image/gif",
			Code:    models.CodeInvalidFileType,
		})
	}

	parts := strings.Split(fileName, ".")
	ext := parts[len(parts)-1]
	key := fmt.Sprintf("uploads/%s.%s", uuid.NewString(), ext)

	uploadURL, err := s.presigner.PresignPut(ctx, key, fileType)
	if err != nil {
		logger.Log.Errorw("failed to presign upload", "key", key, "error", err)
		return nil, err
	}

	return &models.PresignedURL{
		UploadURL: uploadURL,
		FileURL:   s.presigner.FileURL(key),
	}, nil
}
