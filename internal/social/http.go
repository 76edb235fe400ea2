// Copyright (c) 2026 TrendHive. All rights reserved.

package social

import (
	"github.com/go-chi/chi/v5"

	"github.com/trendhive/trendhive/internal/platform/middleware"
)

// Handler implements the social feed HTTP endpoints.
//
// # Scope
//
// Groups under /api/groups, posts under /api/posts. Every route requires a
// session; the social graph has no anonymous surface.
type Handler struct {
	socialService *Service
	authenticator *middleware.Authenticator
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, authenticator *middleware.Authenticator) *Handler {
	return &Handler{
		socialService: service,
		authenticator: authenticator,
	}
}

// GroupRoutes returns the /api/groups router.
//
// # Endpoints
//   - GET  /            : Paginated group directory with search.
//   - POST /            : Create a group (creator auto-joins).
//   - GET/PUT/DELETE /{id}
//   - POST /{id}/join, /{id}/leave
//   - GET  /{id}/feed   : Member-only group feed.
func (handler *Handler) GroupRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(handler.authenticator.RequireAuth)

	router.Get("/", handler.listGroups)
	router.Post("/", handler.createGroup)
	router.Get("/{id}", handler.getGroup)
	router.Put("/{id}", handler.updateGroup)
	router.Delete("/{id}", handler.deleteGroup)
	router.Post("/{id}/join", handler.joinGroup)
	router.Post("/{id}/leave", handler.leaveGroup)
	router.Get("/{id}/feed", handler.groupFeed)

	return router
}

// PostRoutes returns the /api/posts router.
//
// # Endpoints
//   - GET  /            : Paginated post list with author/group filters.
//   - POST /            : Publish a post (group posts require membership).
//   - GET  /feed        : Personal feed (own posts + joined groups).
//   - GET/PUT/DELETE /{id}
//   - POST /{id}/like   : Toggle the caller's like.
//   - POST /{id}/comment
//   - DELETE /{postID}/comment/{commentID}
func (handler *Handler) PostRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(handler.authenticator.RequireAuth)

	// Static segment before the {id} wildcard.
	router.Get("/feed", handler.personalFeed)

	router.Get("/", handler.listPosts)
	router.Post("/", handler.createPost)
	router.Get("/{id}", handler.getPost)
	router.Put("/{id}", handler.updatePost)
	router.Delete("/{id}", handler.deletePost)
	router.Post("/{id}/like", handler.toggleLike)
	router.Post("/{id}/comment", handler.addComment)
	router.Delete("/{postID}/comment/{commentID}", handler.deleteComment)

	return router
}
