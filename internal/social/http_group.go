// Copyright (c) 2026 TrendHive. All rights reserved.

package social

import (
	"net/http"

	requestutil "github.com/trendhive/trendhive/internal/platform/request"
	"github.com/trendhive/trendhive/internal/platform/respond"
	"github.com/trendhive/trendhive/internal/platform/validate"
	"github.com/trendhive/trendhive/pkg/pagination"
)

type groupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (input groupRequest) toInput() GroupInput {
	return GroupInput{
		Name:        input.Name,
		Description: input.Description,
	}
}

/*
ListGroups returns a page of the group directory.

GET /api/groups?q=&page=&limit=

Response:
  - 200: []Group + pagination meta
*/
func (handler *Handler) listGroups(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	groups, total, err := handler.socialService.ListGroups(
		request.Context(), request.URL.Query().Get("q"), params,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, groups, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GetGroup fetches a single group with its member count.

GET /api/groups/{id}

Response:
  - 200: Group
  - 404: ErrNotFound: Unknown group id
*/
func (handler *Handler) getGroup(writer http.ResponseWriter, request *http.Request) {
	group, err := handler.socialService.GetGroup(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, group)
}

/*
CreateGroup creates a group. The caller becomes creator and first member.

POST /api/groups

Response:
  - 201: Group
  - 409: ErrConflict: Group name already taken
*/
func (handler *Handler) createGroup(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input groupRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	group, err := handler.socialService.CreateGroup(request.Context(), userID, input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, group)
}

/*
UpdateGroup edits a group. Creator only.

PUT /api/groups/{id}

Response:
  - 200: Group
  - 403: ErrForbidden: Caller is not the creator
*/
func (handler *Handler) updateGroup(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input groupRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	group, err := handler.socialService.UpdateGroup(
		request.Context(), userID, requestutil.Param(request, "id"), input.toInput(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, group)
}

/*
DeleteGroup removes a group with its memberships and posts. Creator only.

DELETE /api/groups/{id}

Response:
  - 200: Success message
  - 403: ErrForbidden: Caller is not the creator
*/
func (handler *Handler) deleteGroup(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.socialService.DeleteGroup(request.Context(), userID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Group deleted",
	})
}

/*
JoinGroup adds the caller to a group and sends a welcome mail.

POST /api/groups/{id}/join

Response:
  - 200: Group with refreshed member count
  - 409: ErrConflict: Already a member
*/
func (handler *Handler) joinGroup(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	group, err := handler.socialService.JoinGroup(request.Context(), userID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, group)
}

/*
LeaveGroup removes the caller's membership.

POST /api/groups/{id}/leave

Response:
  - 200: Success message
  - 403: ErrForbidden: The creator cannot leave
  - 404: ErrNotFound: Caller was not a member
*/
func (handler *Handler) leaveGroup(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.socialService.LeaveGroup(request.Context(), userID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Left the group",
	})
}

/*
GroupFeed returns a page of the group's posts. Members only.

GET /api/groups/{id}/feed?page=&limit=

Response:
  - 200: []Post + pagination meta
  - 403: ErrForbidden: Caller is not a member
*/
func (handler *Handler) groupFeed(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	posts, total, err := handler.socialService.GroupFeed(
		request.Context(), userID, requestutil.Param(request, "id"), params,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(params.Page, params.Limit, total))
}
