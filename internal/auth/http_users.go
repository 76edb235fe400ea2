// Copyright (c) 2026 TrendHive. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/trendhive/trendhive/internal/platform/request"
	"github.com/trendhive/trendhive/internal/platform/respond"
	"github.com/trendhive/trendhive/internal/platform/validate"
	"github.com/trendhive/trendhive/pkg/pagination"
)

// UserRoutes returns the /api/users router. All routes require a session.
//
// # Endpoints
//   - GET    /search          : Paginated directory search.
//   - GET    /download/{type} : Self-service account data export.
//   - GET    /{id}            : Fetch a single account.
//   - PUT    /{id}            : Edit (owner only).
//   - DELETE /{id}            : Remove (owner only).
func (handler *Handler) UserRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(handler.authenticator.RequireAuth)

	// Static segments before the {id} wildcard.
	router.Get("/search", handler.searchUsers)
	router.Get("/download/{type}", handler.downloadData)

	router.Get("/{id}", handler.getUser)
	router.Put("/{id}", handler.updateUser)
	router.Delete("/{id}", handler.deleteUser)

	return router
}

/*
SearchUsers lists accounts matching a free-text query.

GET /api/users/search?q=&page=&limit=

Response:
  - 200: []User + pagination meta
*/
func (handler *Handler) searchUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query().Get("q")

	users, total, err := handler.authService.SearchUsers(request.Context(), query, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GetUser fetches a single account by id.

GET /api/users/{id}

Response:
  - 200: User
  - 404: ErrNotFound: Unknown account id
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.authService.GetUser(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdateUser edits an account. Owner only.

PUT /api/users/{id}

Response:
  - 200: User: Updated profile
  - 403: ErrForbidden: Editing a foreign account
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input profileUpdateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.authService.UpdateUser(request.Context(), actorID, requestutil.Param(request, "id"), ProfileUpdateInput{
		Name:        input.Name,
		Username:    input.Username,
		PhoneNumber: input.PhoneNumber,
		ProfilePic:  input.ProfilePic,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DeleteUser removes an account. Owner only.

DELETE /api/users/{id}

Response:
  - 200: Success message
  - 403: ErrForbidden: Deleting a foreign account
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.DeleteUser(request.Context(), actorID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Account deleted",
	})
}

/*
DownloadData exports the caller's own account data.

GET /api/users/download/{type}

Response:
  - 200: DataExport: Snapshot of the stored account data
  - 404: ErrNotFound: Account vanished mid-session
*/
func (handler *Handler) downloadData(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	export, err := handler.authService.ExportData(request.Context(), userID, requestutil.Param(request, "type"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, export)
}
