// Copyright (c) 2026 TrendHive. All rights reserved.

package social

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trendhive/trendhive/internal/platform/apperr"
)

// PostgresPostRepository implements [PostRepository] using pgx.
type PostgresPostRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository creates a new PostgreSQL implementation of [PostRepository].
func NewPostRepository(pool *pgxpool.Pool) *PostgresPostRepository {
	return &PostgresPostRepository{pool: pool}
}

/*
Create persists a new post record into the social.post table.

Parameters:
  - ctx: context.Context
  - post: *Post

Returns:
  - error: Storage failures
*/
func (repository *PostgresPostRepository) Create(ctx context.Context, post *Post) error {
	const query = `
		INSERT INTO social.post (id, authorid, groupid, content, imageurl, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	var groupID *string
	if post.GroupID != "" {
		groupID = &post.GroupID
	}

	_, err := repository.pool.Exec(ctx, query,
		post.ID,
		post.AuthorID,
		groupID,
		post.Content,
		post.ImageURL,
		post.CreatedAt,
		post.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_post_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID resolves a post with its likes and comments hydrated.

Parameters:
  - ctx: context.Context
  - id: string

Returns:
  - *Post: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresPostRepository) FindByID(ctx context.Context, id string) (*Post, error) {
	const query = `
		SELECT id, authorid, groupid, content, imageurl, createdat, updatedat
		FROM social.post
		WHERE id = $1`

	post := &Post{}
	var groupID *string
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&post.ID,
		&post.AuthorID,
		&groupID,
		&post.Content,
		&post.ImageURL,
		&post.CreatedAt,
		&post.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Post")
		}
		return nil, fmt.Errorf("postgres_post_repo_find_failed: %w", err)
	}

	if groupID != nil {
		post.GroupID = *groupID
	}

	posts := []Post{*post}
	if err := repository.hydrate(ctx, posts); err != nil {
		return nil, err
	}

	return &posts[0], nil
}

/*
List returns a page of posts, optionally filtered by author and/or group.

Parameters:
  - ctx: context.Context
  - authorID, groupID: string (either may be empty)
  - limit, offset: int

Returns:
  - []Post, int: Hydrated page and total match count
  - error: Execution errors
*/
func (repository *PostgresPostRepository) List(ctx context.Context, authorID, groupID string, limit, offset int) ([]Post, int, error) {
	const query = `
		SELECT id, authorid, groupid, content, imageurl, createdat, updatedat,
		       count(*) OVER() AS totalcount
		FROM social.post
		WHERE ($1 = '' OR authorid = $1)
		  AND ($2 = '' OR groupid = $2)
		ORDER BY createdat DESC
		LIMIT $3 OFFSET $4`

	return repository.queryPage(ctx, query, authorID, groupID, limit, offset)
}

/*
Feed returns the personal feed: the user's own posts plus posts from every
group they joined, newest first.

Parameters:
  - ctx: context.Context
  - userID: string
  - limit, offset: int

Returns:
  - []Post, int: Hydrated page and total match count
  - error: Execution errors
*/
func (repository *PostgresPostRepository) Feed(ctx context.Context, userID string, limit, offset int) ([]Post, int, error) {
	const query = `
		SELECT p.id, p.authorid, p.groupid, p.content, p.imageurl, p.createdat, p.updatedat,
		       count(*) OVER() AS totalcount
		FROM social.post p
		WHERE p.authorid = $1
		   OR p.groupid IN (SELECT m.groupid FROM social.community_member m WHERE m.userid = $1)
		ORDER BY p.createdat DESC
		LIMIT $2 OFFSET $3`

	return repository.queryPage(ctx, query, userID, limit, offset)
}

/*
Update persists the mutable post fields.

Parameters:
  - ctx: context.Context
  - post: *Post

Returns:
  - error: apperr.NotFound or update failures
*/
func (repository *PostgresPostRepository) Update(ctx context.Context, post *Post) error {
	const query = `
		UPDATE social.post
		SET content = $2, imageurl = $3, updatedat = $4
		WHERE id = $1`

	post.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(ctx, query, post.ID, post.Content, post.ImageURL, post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Post")
	}

	return nil
}

/*
Delete removes the post. Likes and comments cascade via foreign keys.

Parameters:
  - ctx: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresPostRepository) Delete(ctx context.Context, id string) error {
	const query = "DELETE FROM social.post WHERE id = $1"

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Post")
	}

	return nil
}

// # Likes

// HasLiked reports whether the user currently likes the post.
func (repository *PostgresPostRepository) HasLiked(ctx context.Context, postID, userID string) (bool, error) {
	const query = "SELECT EXISTS (SELECT 1 FROM social.post_like WHERE postid = $1 AND userid = $2)"

	var liked bool
	if err := repository.pool.QueryRow(ctx, query, postID, userID).Scan(&liked); err != nil {
		return false, fmt.Errorf("postgres_post_repo_has_liked_failed: %w", err)
	}
	return liked, nil
}

// AddLike records a like. ON CONFLICT makes re-liking a no-op.
func (repository *PostgresPostRepository) AddLike(ctx context.Context, postID, userID string) error {
	const query = `
		INSERT INTO social.post_like (postid, userid, createdat)
		VALUES ($1, $2, $3)
		ON CONFLICT (postid, userid) DO NOTHING`

	if _, err := repository.pool.Exec(ctx, query, postID, userID, time.Now()); err != nil {
		return fmt.Errorf("postgres_post_repo_add_like_failed: %w", err)
	}
	return nil
}

// RemoveLike withdraws a like. Removing an absent like is a no-op.
func (repository *PostgresPostRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	const query = "DELETE FROM social.post_like WHERE postid = $1 AND userid = $2"

	if _, err := repository.pool.Exec(ctx, query, postID, userID); err != nil {
		return fmt.Errorf("postgres_post_repo_remove_like_failed: %w", err)
	}
	return nil
}

// # Comments

// AddComment appends a comment to a post.
func (repository *PostgresPostRepository) AddComment(ctx context.Context, comment *Comment) error {
	const query = `
		INSERT INTO social.comment (id, postid, authorid, content, createdat)
		VALUES ($1, $2, $3, $4, $5)`

	comment.CreatedAt = time.Now()
	if _, err := repository.pool.Exec(ctx, query,
		comment.ID, comment.PostID, comment.AuthorID, comment.Content, comment.CreatedAt,
	); err != nil {
		return fmt.Errorf("postgres_post_repo_add_comment_failed: %w", err)
	}
	return nil
}

// FindComment resolves a single comment.
func (repository *PostgresPostRepository) FindComment(ctx context.Context, commentID string) (*Comment, error) {
	const query = `
		SELECT id, postid, authorid, content, createdat
		FROM social.comment
		WHERE id = $1`

	comment := &Comment{}
	err := repository.pool.QueryRow(ctx, query, commentID).Scan(
		&comment.ID, &comment.PostID, &comment.AuthorID, &comment.Content, &comment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("postgres_post_repo_find_comment_failed: %w", err)
	}

	return comment, nil
}

// DeleteComment removes a comment.
func (repository *PostgresPostRepository) DeleteComment(ctx context.Context, commentID string) error {
	const query = "DELETE FROM social.comment WHERE id = $1"

	tag, err := repository.pool.Exec(ctx, query, commentID)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_delete_comment_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

// # Hydration Helpers

// queryPage scans a paginated post query and hydrates likes and comments.
func (repository *PostgresPostRepository) queryPage(ctx context.Context, query string, args ...any) ([]Post, int, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_page_failed: %w", err)
	}
	defer rows.Close()

	var posts []Post
	var total int
	for rows.Next() {
		var post Post
		var groupID *string
		err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&groupID,
			&post.Content,
			&post.ImageURL,
			&post.CreatedAt,
			&post.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_post_repo_page_scan_failed: %w", err)
		}
		if groupID != nil {
			post.GroupID = *groupID
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_post_repo_page_rows_failed: %w", err)
	}

	if err := repository.hydrate(ctx, posts); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// hydrate attaches likes and comments to a page of posts with two batched
// queries instead of 2N single lookups.
func (repository *PostgresPostRepository) hydrate(ctx context.Context, posts []Post) error {
	if len(posts) == 0 {
		return nil
	}

	index := make(map[string]*Post, len(posts))
	postIDs := make([]string, 0, len(posts))
	for i := range posts {
		posts[i].Likes = []string{}
		posts[i].Comments = []Comment{}
		index[posts[i].ID] = &posts[i]
		postIDs = append(postIDs, posts[i].ID)
	}

	likeRows, err := repository.pool.Query(ctx,
		"SELECT postid, userid FROM social.post_like WHERE postid = ANY($1) ORDER BY createdat", postIDs)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_hydrate_likes_failed: %w", err)
	}
	defer likeRows.Close()

	for likeRows.Next() {
		var postID, userID string
		if err := likeRows.Scan(&postID, &userID); err != nil {
			return fmt.Errorf("postgres_post_repo_hydrate_likes_scan_failed: %w", err)
		}
		if post, ok := index[postID]; ok {
			post.Likes = append(post.Likes, userID)
		}
	}
	if err := likeRows.Err(); err != nil {
		return fmt.Errorf("postgres_post_repo_hydrate_likes_rows_failed: %w", err)
	}

	commentRows, err := repository.pool.Query(ctx,
		"SELECT id, postid, authorid, content, createdat FROM social.comment WHERE postid = ANY($1) ORDER BY createdat", postIDs)
	if err != nil {
		return fmt.Errorf("postgres_post_repo_hydrate_comments_failed: %w", err)
	}
	defer commentRows.Close()

	for commentRows.Next() {
		var comment Comment
		if err := commentRows.Scan(
			&comment.ID, &comment.PostID, &comment.AuthorID, &comment.Content, &comment.CreatedAt,
		); err != nil {
			return fmt.Errorf("postgres_post_repo_hydrate_comments_scan_failed: %w", err)
		}
		if post, ok := index[comment.PostID]; ok {
			post.Comments = append(post.Comments, comment)
		}
	}
	if err := commentRows.Err(); err != nil {
		return fmt.Errorf("postgres_post_repo_hydrate_comments_rows_failed: %w", err)
	}

	return nil
}
