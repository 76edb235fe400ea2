// Copyright (c) 2026 TrendHive. All rights reserved.

package social

import (
	"net/http"

	requestutil "github.com/trendhive/trendhive/internal/platform/request"
	"github.com/trendhive/trendhive/internal/platform/respond"
	"github.com/trendhive/trendhive/internal/platform/validate"
	"github.com/trendhive/trendhive/pkg/pagination"
)

type postRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
	GroupID  string `json:"group_id"`
}

func (input postRequest) toInput() PostInput {
	return PostInput{
		Content:  input.Content,
		ImageURL: input.ImageURL,
		GroupID:  input.GroupID,
	}
}

type commentRequest struct {
	Content string `json:"content"`
}

/*
ListPosts returns a page of posts, optionally filtered by author or group.

GET /api/posts?author=&group=&page=&limit=

Response:
  - 200: []Post + pagination meta
*/
func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	posts, total, err := handler.socialService.ListPosts(
		request.Context(), query.Get("author"), query.Get("group"), params,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GetPost fetches a single post with likes and comments.

GET /api/posts/{id}

Response:
  - 200: Post
  - 404: ErrNotFound: Unknown post id
*/
func (handler *Handler) getPost(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.socialService.GetPost(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

/*
CreatePost publishes a post, personal or into a group.

POST /api/posts

Response:
  - 201: Post
  - 403: ErrForbidden: Group post by a non-member
  - 404: ErrNotFound: Unknown group id
*/
func (handler *Handler) createPost(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input postRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	post, err := handler.socialService.CreatePost(request.Context(), userID, input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

/*
UpdatePost edits a post. Author only.

PUT /api/posts/{id}

Response:
  - 200: Post
  - 403: ErrForbidden: Caller is not the author
*/
func (handler *Handler) updatePost(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input postRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	post, err := handler.socialService.UpdatePost(
		request.Context(), userID, requestutil.Param(request, "id"), input.toInput(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

/*
DeletePost removes a post with its likes and comments. Author only.

DELETE /api/posts/{id}

Response:
  - 200: Success message
  - 403: ErrForbidden: Caller is not the author
*/
func (handler *Handler) deletePost(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.socialService.DeletePost(request.Context(), userID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Post deleted",
	})
}

/*
ToggleLike flips the caller's like on a post.

POST /api/posts/{id}/like

Response:
  - 200: Post with refreshed likes
  - 404: ErrNotFound: Unknown post id
*/
func (handler *Handler) toggleLike(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.socialService.ToggleLike(request.Context(), userID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

/*
AddComment appends a comment to a post.

POST /api/posts/{id}/comment

Response:
  - 200: Post with refreshed comments
  - 404: ErrNotFound: Unknown post id
*/
func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	post, err := handler.socialService.AddComment(
		request.Context(), userID, requestutil.Param(request, "id"), input.Content,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

/*
DeleteComment removes a comment from a post. Comment author only.

DELETE /api/posts/{postID}/comment/{commentID}

Response:
  - 200: Success message
  - 403: ErrForbidden: Caller did not write the comment
  - 404: ErrNotFound: Unknown post/comment pair
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.socialService.DeleteComment(
		request.Context(), userID,
		requestutil.Param(request, "postID"), requestutil.Param(request, "commentID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Comment deleted",
	})
}

/*
PersonalFeed returns the caller's own posts plus posts from joined groups.

GET /api/posts/feed?page=&limit=

Response:
  - 200: []Post + pagination meta
*/
func (handler *Handler) personalFeed(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	posts, total, err := handler.socialService.PersonalFeed(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(params.Page, params.Limit, total))
}
