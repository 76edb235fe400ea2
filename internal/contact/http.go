// Copyright (c) 2026 TrendHive. All rights reserved.

package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trendhive/trendhive/internal/platform/middleware"
	requestutil "github.com/trendhive/trendhive/internal/platform/request"
	"github.com/trendhive/trendhive/internal/platform/respond"
	"github.com/trendhive/trendhive/internal/platform/validate"
	"github.com/trendhive/trendhive/pkg/pagination"
)

// Handler implements the /api/contact endpoints.
type Handler struct {
	contactService *Service
	authenticator  *middleware.Authenticator
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, authenticator *middleware.Authenticator) *Handler {
	return &Handler{
		contactService: service,
		authenticator:  authenticator,
	}
}

// Routes returns the /api/contact router. Submitting is public; reading
// the inbox requires a session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.submit)

	router.Group(func(protected chi.Router) {
		protected.Use(handler.authenticator.RequireAuth)
		protected.Get("/", handler.listSubmissions)
		protected.Get("/{id}", handler.getSubmission)
		protected.Delete("/{id}", handler.deleteSubmission)
	})

	return router
}

type submissionRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
}

/*
Submit accepts a contact form entry.

POST /api/contact

Response:
  - 201: Submission
  - 400: ErrInvalidJSON / validation failure
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	var input submissionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	submission, err := handler.contactService.Submit(request.Context(), SubmissionInput{
		Name:        input.Name,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Subject:     input.Subject,
		Message:     input.Message,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, submission)
}

/*
ListSubmissions returns a page of the contact inbox, newest first.

GET /api/contact?page=&limit=

Response:
  - 200: []Submission + pagination meta
*/
func (handler *Handler) listSubmissions(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	submissions, total, err := handler.contactService.ListSubmissions(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, submissions, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GetSubmission fetches a single inbox entry.

GET /api/contact/{id}

Response:
  - 200: Submission
  - 404: ErrNotFound: Unknown submission id
*/
func (handler *Handler) getSubmission(writer http.ResponseWriter, request *http.Request) {
	submission, err := handler.contactService.GetSubmission(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, submission)
}

/*
DeleteSubmission removes a handled entry from the inbox.

DELETE /api/contact/{id}

Response:
  - 200: Success message
  - 404: ErrNotFound: Unknown submission id
*/
func (handler *Handler) deleteSubmission(writer http.ResponseWriter, request *http.Request) {
	if err := handler.contactService.DeleteSubmission(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Contact submission deleted",
	})
}
