// Copyright (c) 2026 TrendHive. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trendhive/trendhive/internal/platform/middleware"
	requestutil "github.com/trendhive/trendhive/internal/platform/request"
	"github.com/trendhive/trendhive/internal/platform/respond"
	"github.com/trendhive/trendhive/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the authentication and user-directory HTTP endpoints.
//
// # Scope
//
// Everything related to the account lifecycle entry points (registration,
// login, verification, recovery) plus profile and directory management.
type Handler struct {
	authService   *Service
	authenticator *middleware.Authenticator
	secureCookies bool
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, authenticator *middleware.Authenticator, secureCookies bool) *Handler {
	return &Handler{
		authService:   service,
		authenticator: authenticator,
		secureCookies: secureCookies,
	}
}

// Routes returns the /api/auth router.
//
// # Endpoints
//   - POST /register            : Creates an account and opens a session.
//   - POST /login               : Authenticates and sets the session cookie.
//   - GET  /verify/{id}         : Activates the referenced account.
//   - POST /forgot-password     : Emails a reset link.
//   - POST /reset-password/{id}/{token} : Completes the reset flow.
//   - POST /logout, GET+PUT /profile, POST /onboarding : session required.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Get("/verify/{id}", handler.verifyEmail)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password/{id}/{token}", handler.resetPassword)

	// Protected endpoints
	router.Group(func(protected chi.Router) {
		protected.Use(handler.authenticator.RequireAuth)
		protected.Post("/logout", handler.logout)
		protected.Get("/profile", handler.profile)
		protected.Put("/profile", handler.updateProfile)
		protected.Post("/onboarding", handler.onboarding)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

type profileUpdateRequest struct {
	Name        string `json:"name"`
	Username    string `json:"username"`
	PhoneNumber string `json:"phone_number"`
	ProfilePic  string `json:"profile_pic"`
}

type onboardingRequest struct {
	Colors    []string `json:"colors"`
	FavCelebs []string `json:"fav_celebs"`
}

/*
Register handles the creation of a new account.

POST /api/auth/register

Description: Validates input, checks for identity conflicts, persists the
account, opens a session, and sets the `jwt` cookie.

Request:
  - Body: registerRequest (Name, Email, Password, PhoneNumber)

Response:
  - 201: Session: Created profile plus token (session cookie attached)
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Name:        input.Name,
		Email:       input.Email,
		Password:    input.Password,
		PhoneNumber: input.PhoneNumber,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The token rides in the body too so non-browser clients can
	// authenticate with a Bearer header instead of the cookie.
	middleware.SetSessionCookie(writer, session.Token, handler.secureCookies)
	respond.Created(writer, session)
}

/*
Login authenticates a user and establishes a session.

POST /api/auth/login

Description: Verifies credentials, issues a 7-day JWT, and injects it as the
httpOnly `jwt` cookie.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: Session: Sanitized profile plus token (session cookie attached)
  - 401: ErrUnauthorized: Invalid credentials or account not activated
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	middleware.SetSessionCookie(writer, session.Token, handler.secureCookies)
	respond.OK(writer, session)
}

/*
Logout terminates the current session.

POST /api/auth/logout

Description: Tokens are stateless, so logout is purely clearing the `jwt`
cookie on the client.

Response:
  - 200: Success message
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	middleware.ClearSessionCookie(writer, handler.secureCookies)

	respond.OK(writer, map[string]string{
		FieldMessage: "Logged out successfully",
	})
}

/*
VerifyEmail activates the account referenced by the verification link.

GET /api/auth/verify/{id}

Response:
  - 200: Success message
  - 404: ErrNotFound: Unknown account id
*/
func (handler *Handler) verifyEmail(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "id")

	if err := handler.authService.VerifyEmail(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Email verified successfully",
	})
}

/*
ForgotPassword initiates the password recovery flow.

POST /api/auth/forgot-password

Request:
  - Body: forgotPasswordRequest (Email)

Response:
  - 200: Success: Reset link sent
  - 404: ErrNotFound: No account owns this email
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ForgotPassword(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "A password reset link has been sent to your email",
	})
}

/*
ResetPassword completes the password recovery flow.

POST /api/auth/reset-password/{id}/{token}

Request:
  - Body: resetPasswordRequest (Password)

Response:
  - 200: Success: Password updated
  - 400: ErrInvalidJSON: Invalid/expired token or weak password
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "id")
	token := requestutil.Param(request, "token")

	var input resetPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), userID, token, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Password updated successfully",
	})
}

/*
Profile returns the authenticated user's own account.

GET /api/auth/profile

Response:
  - 200: User: Sanitized profile
  - 401: ErrUnauthorized: Session invalid
*/
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Profile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdateProfile applies edits to the authenticated user's own profile.

PUT /api/auth/profile

Request:
  - Body: profileUpdateRequest

Response:
  - 200: User: Updated profile
  - 400: ErrInvalidJSON: Validation failure
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input profileUpdateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.authService.UpdateProfile(request.Context(), userID, ProfileUpdateInput{
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
Onboarding stores the post-signup preference answers.

POST /api/auth/onboarding

Request:
  - Body: onboardingRequest (Colors, FavCelebs)

Response:
  - 200: User: Updated profile with onboarded=true
  - 400: ErrInvalidJSON: Empty preferences
*/
func (handler *Handler) onboarding(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input onboardingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.authService.CompleteOnboarding(request.Context(), userID, input.Colors, input.FavCelebs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
