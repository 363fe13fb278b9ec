package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/blogi/blogi-api/internal/logger"
	"github.com/blogi/blogi-api/internal/models"
)

// PostReadRepository handles post read operations, including the joined,
// searchable, paginated listing query.
type PostReadRepository struct {
	db *sqlx.DB
}

func NewPostReadRepository(db *sqlx.DB) *PostReadRepository {
	return &PostReadRepository{db: db}
}

// GetByID returns a post joined with its author's username, or nil if absent.
// A missing author record is substituted with a sentinel rather than failing.
func (r *PostReadRepository) GetByID(ctx context.Context, id int64) (*models.PostView, error) {
	const query = `
		SELECT p.id, p.title, p.content, p.image_url, p.user_id,
		       COALESCE(u.username, 'Unknown') AS author_username,
		       p.created_at, p.updated_at
		FROM posts p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`

	var view models.PostView
	err := r.db.GetContext(ctx, &view, query, id)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// List returns one page of posts joined with author usernames, plus the total
// count of rows matching the filter before pagination. An empty search means
// no filter; otherwise title OR content must contain the substring,
// case-insensitively. When userID is non-nil only that user's posts match.
// Ordering is most recent first, ties broken by insertion order.
func (r *PostReadRepository) List(ctx context.Context, userID *int64, offset, limit int, search string) ([]models.PostView, int64, error) {
	const countQuery = `
		SELECT COUNT(*)
		FROM posts p
		WHERE ($1::BIGINT IS NULL OR p.user_id = $1)
		  AND ($2 = '' OR p.title ILIKE '%' || $2 || '%' OR p.content ILIKE '%' || $2 || '%')
	`

	var total int64
	err := r.db.GetContext(ctx, &total, countQuery, userID, search)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(countQuery), " "),
		"args", []any{userID, search},
		"error", err,
	)

	if err != nil {
		return nil, 0, err
	}

	const listQuery = `
		SELECT p.id, p.title, p.content, p.image_url, p.user_id,
		       COALESCE(u.username, 'Unknown') AS author_username,
		       p.created_at, p.updated_at
		FROM posts p
		LEFT JOIN users u ON u.id = p.user_id
		WHERE ($1::BIGINT IS NULL OR p.user_id = $1)
		  AND ($2 = '' OR p.title ILIKE '%' || $2 || '%' OR p.content ILIKE '%' || $2 || '%')
		ORDER BY p.created_at DESC, p.id ASC
		OFFSET $3 LIMIT $4
	`

	items := []models.PostView{}
	err = r.db.SelectContext(ctx, &items, listQuery, userID, search, offset, limit)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(listQuery), " "),
		"args", []any{userID, search, offset, limit},
		"error", err,
	)

	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// PostWriteRepository handles post write operations.
type PostWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewPostWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *PostWriteRepository {
	return &PostWriteRepository{db: db, txGetter: txGetter}
}

func (r *PostWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new post owned by userID and returns the stored row.
func (r *PostWriteRepository) Save(ctx context.Context, title, content string, imageURL *string, userID int64) (*models.PostDB, error) {
	const query = `
		INSERT INTO posts (title, content, image_url, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, title, content, image_url, user_id, created_at, updated_at
	`
	args := []any{title, content, imageURL, userID}

	var post models.PostDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &post, query, args...)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Update applies only the supplied fields; nil arguments leave the stored
// column untouched. user_id is never updated. Returns nil if the id is absent.
func (r *PostWriteRepository) Update(ctx context.Context, id int64, title, content, imageURL *string) (*models.PostDB, error) {
	const query = `
		UPDATE posts
		SET title = COALESCE($2, title),
		    content = COALESCE($3, content),
		    image_url = COALESCE($4, image_url),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, title, content, image_url, user_id, created_at, updated_at
	`
	args := []any{id, title, content, imageURL}

	var post models.PostDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &post, query, args...)

	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes a post row. Returns false if the id was absent.
func (r *PostWriteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM posts WHERE id = $1`

	res, err := r.executor(ctx).ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("query",
		"sql", query,
		"args", []any{id},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

// DeleteByUserID removes all posts owned by userID. Issued explicitly when a
// user account is deleted, before the user row itself is removed.
func (r *PostWriteRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	const query = `DELETE FROM posts WHERE user_id = $1`

	res, err := r.executor(ctx).ExecContext(ctx, query, userID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("query",
		"sql", query,
		"args", []any{userID},
		"result", rowsAffected,
		"error", err,
	)

	return err
}
