package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/blogi/blogi-api/internal/logger"
	"github.com/blogi/blogi-api/internal/models"
	"github.com/blogi/blogi-api/internal/validation"
)

// PostReader defines read operations for posts.
type PostReader interface {
	GetByID(ctx context.Context, id int64) (*models.PostView, error)
	List(ctx context.Context, userID *int64, offset, limit int, search string) ([]models.PostView, int64, error)
}

// PostWriter defines write operations for posts.
type PostWriter interface {
	Save(ctx context.Context, title, content string, imageURL *string, userID int64) (*models.PostDB, error)
	Update(ctx context.Context, id int64, title, content, imageURL *string) (*models.PostDB, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// PostCache caches post views by id.
type PostCache interface {
	Get(ctx context.Context, id int64) (*models.PostView, error)
	Set(ctx context.Context, view *models.PostView) error
	Delete(ctx context.Context, id int64) error
}

// UserGetter looks up users by id.
type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// PostService enforces ownership on post mutations and composes the
// searchable, paginated listing. Both cache and kafkaWriter may be nil.
type PostService struct {
	readRepo    PostReader
	writeRepo   PostWriter
	cache       PostCache
	users       UserGetter
	kafkaWriter KafkaWriter
}

// NewPostService creates a new PostService.
func NewPostService(
	readRepo PostReader,
	writeRepo PostWriter,
	cache PostCache,
	users UserGetter,
	kafkaWriter KafkaWriter,
) *PostService {
	return &PostService{
		readRepo:    readRepo,
		writeRepo:   writeRepo,
		cache:       cache,
		users:       users,
		kafkaWriter: kafkaWriter,
	}
}

// publishEvent publishes a post lifecycle event to Kafka. Failures are
// logged and never fail the request.
func (s *PostService) publishEvent(ctx context.Context, eventType string, postID, userID int64) {
	if s.kafkaWriter == nil {
		return
	}

	event := models.PostEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		PostID:    postID,
		UserID:    userID,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal post event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(postID, 10)),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish post event", "event_id", event.EventID, "type", eventType, "error", err)
	}
}

// invalidate drops the cached view of a mutated post.
func (s *PostService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		logger.Log.Errorw("failed to invalidate post cache", "post_id", id, "error", err)
	}
}

// Create validates title and content, persists a post owned by the caller,
// and returns a view denormalized with the caller's username.
func (s *PostService) Create(ctx context.Context, identity models.Identity, title, content string, imageURL *string) (*models.PostView, error) {
	var details []models.ErrorDetail
	title, detail := validation.Title(title)
	if detail != nil {
		details = append(details, *detail)
	}
	content, detail = validation.Content(content)
	if detail != nil {
		details = append(details, *detail)
	}
	if len(details) > 0 {
		return nil, NewValidationError(details...)
	}

	post, err := s.writeRepo.Save(ctx, title, content, imageURL, identity.ID)
	if err != nil {
		logger.Log.Errorw("failed to save post", "user_id", identity.ID, "error", err)
		return nil, err
	}

	s.publishEvent(ctx, models.PostCreated, post.ID, identity.ID)

	return &models.PostView{
		ID:             post.ID,
		Title:          post.Title,
		Content:        post.Content,
		ImageURL:       post.ImageURL,
		UserID:         post.UserID,
		AuthorUsername: identity.Username,
		CreatedAt:      post.CreatedAt,
		UpdatedAt:      post.UpdatedAt,
	}, nil
}

// Get returns a post by id. Reads are not ownership-restricted.
func (s *PostService) Get(ctx context.Context, id int64) (*models.PostView, error) {
	if s.cache != nil {
		view, err := s.cache.Get(ctx, id)
		if err != nil {
			logger.Log.Errorw("post cache read failed", "post_id", id, "error", err)
		} else if view != nil {
			return view, nil
		}
	}

	view, err := s.readRepo.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get post", "post_id", id, "error", err)
		return nil, err
	}
	if view == nil {
		return nil, ErrPostNotFound
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, view); err != nil {
			logger.Log.Errorw("post cache write failed", "post_id", id, "error", err)
		}
	}

	return view, nil
}

// List returns one page of posts, most recent first, optionally filtered by
// a case-insensitive substring search over title and content. The caller is
// expected to have validated page >= 1 and clamped size.
func (s *PostService) List(ctx context.Context, page, size int, search string) (*models.PaginatedPosts, error) {
	return s.list(ctx, nil, page, size, search)
}

// ListByUser is List restricted to a single author. The user must exist.
func (s *PostService) ListByUser(ctx context.Context, userID int64, page, size int, search string) (*models.PaginatedPosts, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.list(ctx, &userID, page, size, search)
}

func (s *PostService) list(ctx context.Context, userID *int64, page, size int, search string) (*models.PaginatedPosts, error) {
	offset := (page - 1) * size

	items, total, err := s.readRepo.List(ctx, userID, offset, size, search)
	if err != nil {
		logger.Log.Errorw("failed to list posts", "page", page, "size", size, "error", err)
		return nil, err
	}

	var pages int
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}

	return &models.PaginatedPosts{
		Items: items,
		Total: total,
		Page:  page,
		Size:  size,
		Pages: pages,
	}, nil
}

// Update applies the supplied fields to a post the caller owns. Existence is
// checked before ownership, and ownership before any write.
func (s *PostService) Update(ctx context.Context, identity models.Identity, id int64, title, content, imageURL *string) (*models.PostView, error) {
	existing, err := s.readRepo.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get post", "post_id", id, "error", err)
		return nil, err
	}
	if existing == nil {
		return nil, ErrPostNotFound
	}
	if existing.UserID != identity.ID {
		return nil, ErrNotPostOwner
	}

	var details []models.ErrorDetail
	if title != nil {
		trimmed, detail := validation.Title(*title)
		if detail != nil {
			details = append(details, *detail)
		} else {
			title = &trimmed
		}
	}
	if content != nil {
		trimmed, detail := validation.Content(*content)
		if detail != nil {
			details = append(details, *detail)
		} else {
			content = &trimmed
		}
	}
	if len(details) > 0 {
		return nil, NewValidationError(details...)
	}

	post, err := s.writeRepo.Update(ctx, id, title, content, imageURL)
	if err != nil {
		logger.Log.Errorw("failed to update post", "post_id", id, "error", err)
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	s.invalidate(ctx, id)
	s.publishEvent(ctx, models.PostUpdated, id, identity.ID)

	return &models.PostView{
		ID:             post.ID,
		Title:          post.Title,
		Content:        post.Content,
		ImageURL:       post.ImageURL,
		UserID:         post.UserID,
		AuthorUsername: existing.AuthorUsername,
		CreatedAt:      post.CreatedAt,
		UpdatedAt:      post.UpdatedAt,
	}, nil
}

// Delete hard-deletes a post the caller owns.
func (s *PostService) Delete(ctx context.Context, identity models.Identity, id int64) error {
	existing, err := s.readRepo.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get post", "post_id", id, "error", err)
		return err
	}
	if existing == nil {
		return ErrPostNotFound
	}
	if existing.UserID != identity.ID {
		return ErrNotPostOwner
	}

	deleted, err := s.writeRepo.Delete(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to delete post", "post_id", id, "error", err)
		return err
	}
	if !deleted {
		return ErrPostNotFound
	}

	s.invalidate(ctx, id)
	s.publishEvent(ctx, models.PostDeleted, id, identity.ID)

	return nil
}
