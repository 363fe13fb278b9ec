package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/blogi/blogi-api/internal/logger"
	"github.com/blogi/blogi-api/internal/models"
)

// PostCacheRepository caches post views by id in Redis.
type PostCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration for cached views
}

// NewPostCacheRepository creates a new cache repository with the given TTL.
func NewPostCacheRepository(client *redis.Client, expiration time.Duration) *PostCacheRepository {
	return &PostCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func postKey(id int64) string {
	return fmt.Sprintf("post:%d", id)
}

// Get fetches a cached post view. A cache miss returns nil, nil.
func (r *PostCacheRepository) Get(ctx context.Context, id int64) (*models.PostView, error) {
	key := postKey(id)

	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		logger.Log.Infow("cache get",
			"key", key,
			"error", err,
		)
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var view models.PostView
	if err := json.Unmarshal(val, &view); err != nil {
		logger.Log.Errorw("cache get: corrupt entry", "key", key, "error", err)
		return nil, err
	}

	logger.Log.Infow("cache get",
		"key", key,
		"result", view.ID,
		"error", nil,
	)

	return &view, nil
}

// Set caches a post view with the configured expiration.
func (r *PostCacheRepository) Set(ctx context.Context, view *models.PostView) error {
	key := postKey(view.ID)

	data, err := json.Marshal(view)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow("cache set",
		"key", key,
		"error", err,
	)

	return err
}

// Delete drops a cached post view. Called on every mutation of the post.
func (r *PostCacheRepository) Delete(ctx context.Context, id int64) error {
	key := postKey(id)

	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow("cache delete",
		"key", key,
		"error", err,
	)

	return err
}
