// Copyright (c) 2026 TrendHive. All rights reserved.

package social

import (
	"context"

	"github.com/trendhive/trendhive/internal/platform/apperr"
	"github.com/trendhive/trendhive/internal/platform/validate"
	"github.com/trendhive/trendhive/pkg/pagination"
	"github.com/trendhive/trendhive/pkg/uuidv7"
)

// # Posts

// PostInput holds the writable post fields.
type PostInput struct {
	Content  string
	ImageURL string
	GroupID  string
}

func (input PostInput) validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldContent, input.Content).
		MaxLen(FieldContent, input.Content, 5000)
	return validator.Err()
}

/*
ListPosts returns a page of posts with optional author and group filters.

Parameters:
  - ctx: context.Context
  - authorID, groupID: string (either may be empty)
  - params: pagination.Params

Returns:
  - []Post, int: Hydrated page and total match count
  - error: Storage errors
*/
func (service *Service) ListPosts(ctx context.Context, authorID, groupID string, params pagination.Params) ([]Post, int, error) {
	return service.postRepository.List(ctx, authorID, groupID, params.Limit, params.Offset())
}

/*
GetPost resolves a post with likes and comments.

Parameters:
  - ctx: context.Context
  - postID: string

Returns:
  - *Post: Hydrated entity
  - error: apperr.NotFound or storage errors
*/
func (service *Service) GetPost(ctx context.Context, postID string) (*Post, error) {
	return service.postRepository.FindByID(ctx, postID)
}

/*
CreatePost publishes a post, personal or inside a group.

Description: Posting into a group requires membership.

Parameters:
  - ctx: context.Context
  - authorID: string
  - input: PostInput

Returns:
  - *Post: Created post
  - error: Validation, Forbidden (non-member group post), apperr.NotFound
    (unknown group), or storage errors
*/
func (service *Service) CreatePost(ctx context.Context, authorID string, input PostInput) (*Post, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	if input.GroupID != "" {
		if _, err := service.groupRepository.FindByID(ctx, input.GroupID); err != nil {
			return nil, err
		}

		isMember, err := service.groupRepository.IsMember(ctx, input.GroupID, authorID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, apperr.Forbidden("Join the group to post in it")
		}
	}

	post := &Post{
		ID:       uuidv7.New(),
		AuthorID: authorID,
		GroupID:  input.GroupID,
		Content:  input.Content,
		ImageURL: input.ImageURL,
		Likes:    []string{},
		Comments: []Comment{},
	}

	if err := service.postRepository.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

/*
UpdatePost edits a post. Author only; the group binding is immutable.

Parameters:
  - ctx: context.Context
  - actorID, postID: string
  - input: PostInput

Returns:
  - *Post: Updated post
  - error: Forbidden, validation, apperr.NotFound, or storage errors
*/
func (service *Service) UpdatePost(ctx context.Context, actorID, postID string, input PostInput) (*Post, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	post, err := service.postRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != actorID {
		return nil, apperr.Forbidden("Only the author can edit the post")
	}

	post.Content = input.Content
	post.ImageURL = input.ImageURL

	if err := service.postRepository.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

/*
DeletePost removes a post with its likes and comments. Author only.

Parameters:
  - ctx: context.Context
  - actorID, postID: string

Returns:
  - error: Forbidden, apperr.NotFound, or storage errors
*/
func (service *Service) DeletePost(ctx context.Context, actorID, postID string) error {
	post, err := service.postRepository.FindByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != actorID {
		return apperr.Forbidden("Only the author can delete the post")
	}

	return service.postRepository.Delete(ctx, postID)
}

/*
ToggleLike flips the user's like on a post.

Parameters:
  - ctx: context.Context
  - userID, postID: string

Returns:
  - *Post: Post with refreshed likes
  - error: apperr.NotFound or storage errors
*/
func (service *Service) ToggleLike(ctx context.Context, userID, postID string) (*Post, error) {
	if _, err := service.postRepository.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	liked, err := service.postRepository.HasLiked(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	if liked {
		err = service.postRepository.RemoveLike(ctx, postID, userID)
	} else {
		err = service.postRepository.AddLike(ctx, postID, userID)
	}
	if err != nil {
		return nil, err
	}

	return service.postRepository.FindByID(ctx, postID)
}

/*
AddComment appends a comment to a post.

Parameters:
  - ctx: context.Context
  - authorID, postID: string
  - content: string

Returns:
  - *Post: Post with refreshed comments
  - error: Validation, apperr.NotFound, or storage errors
*/
func (service *Service) AddComment(ctx context.Context, authorID, postID, content string) (*Post, error) {
	validator := &validate.Validator{}
	validator.Required(FieldContent, content).
		MaxLen(FieldContent, content, 2000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.postRepository.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:       uuidv7.New(),
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}

	if err := service.postRepository.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	return service.postRepository.FindByID(ctx, postID)
}

/*
DeleteComment removes a comment. Comment author only.

Parameters:
  - ctx: context.Context
  - actorID, postID, commentID: string

Returns:
  - error: Forbidden, apperr.NotFound (post, comment, or mismatched pair),
    or storage errors
*/
func (service *Service) DeleteComment(ctx context.Context, actorID, postID, commentID string) error {
	comment, err := service.postRepository.FindComment(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.PostID != postID {
		return apperr.NotFound("Comment")
	}

	if comment.AuthorID != actorID {
		return apperr.Forbidden("Only the comment author can delete the comment")
	}

	return service.postRepository.DeleteComment(ctx, commentID)
}

/*
PersonalFeed returns the user's own posts plus posts from joined groups.

Parameters:
  - ctx: context.Context
  - userID: string
  - params: pagination.Params

Returns:
  - []Post, int: Hydrated page and total match count
  - error: Storage errors
*/
func (service *Service) PersonalFeed(ctx context.Context, userID string, params pagination.Params) ([]Post, int, error) {
	return service.postRepository.Feed(ctx, userID, params.Limit, params.Offset())
}
