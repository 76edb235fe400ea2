// Copyright (c) 2026 TrendHive. All rights reserved.

package social

import "context"

// GroupRepository defines the persistence contract for groups and their
// memberships.
type GroupRepository interface {
	// Create persists a new group. A duplicate name surfaces as Conflict.
	Create(ctx context.Context, group *Group) error

	// FindByID resolves a group by primary key, with its member count.
	FindByID(ctx context.Context, id string) (*Group, error)

	// List returns a page of groups matching a free-text query over name
	// and description, newest first.
	List(ctx context.Context, search string, limit, offset int) ([]Group, int, error)

	// Update persists the mutable group fields.
	Update(ctx context.Context, group *Group) error

	// Delete removes the group; posts and memberships cascade.
	Delete(ctx context.Context, id string) error

	// AddMember enrolls a user. A duplicate membership surfaces as Conflict.
	AddMember(ctx context.Context, groupID, userID string) error

	// RemoveMember drops a membership.
	RemoveMember(ctx context.Context, groupID, userID string) error

	// IsMember reports whether the user belongs to the group.
	IsMember(ctx context.Context, groupID, userID string) (bool, error)

	// MemberGroupIDs lists the ids of every group the user has joined.
	MemberGroupIDs(ctx context.Context, userID string) ([]string, error)
}

// PostRepository defines the persistence contract for posts, likes, and
// comments.
type PostRepository interface {
	// Create persists a new post.
	Create(ctx context.Context, post *Post) error

	// FindByID resolves a post with its likes and comments hydrated.
	FindByID(ctx context.Context, id string) (*Post, error)

	// List returns a page of posts, optionally filtered by author and/or
	// group, newest first.
	List(ctx context.Context, authorID, groupID string, limit, offset int) ([]Post, int, error)

	// Feed returns the personal feed page: the user's own posts plus posts
	// from every group they joined, newest first.
	Feed(ctx context.Context, userID string, limit, offset int) ([]Post, int, error)

	// Update persists the mutable post fields.
	Update(ctx context.Context, post *Post) error

	// Delete removes the post; likes and comments cascade.
	Delete(ctx context.Context, id string) error

	// HasLiked reports whether the user currently likes the post.
	HasLiked(ctx context.Context, postID, userID string) (bool, error)

	// AddLike records a like. Adding an existing like is a no-op.
	AddLike(ctx context.Context, postID, userID string) error

	// RemoveLike withdraws a like. Removing an absent like is a no-op.
	RemoveLike(ctx context.Context, postID, userID string) error

	// AddComment appends a comment to a post.
	AddComment(ctx context.Context, comment *Comment) error

	// FindComment resolves a single comment.
	FindComment(ctx context.Context, commentID string) (*Comment, error)

	// DeleteComment removes a comment.
	DeleteComment(ctx context.Context, commentID string) error
}
