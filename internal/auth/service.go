// Copyright (c) 2026 TrendHive. All rights reserved.

/*
Package auth implements the account and session lifecycle.

It handles everything from registration and secure password hashing to login,
email verification, and the hashed-token password-reset flow.

Architecture:

  - Service: Orchestrates business logic (Register, Login, Reset).
  - Repository: Abstracted PostgreSQL persistence for accounts.
  - Security: bcrypt hashing and HS256-signed session JWTs.

Sessions are stateless: the JWT in the `jwt` cookie is the whole session, and
logout is purely a cookie clear. The authentication gate compensates by
re-loading the account on every request, so deactivated or deleted accounts
are locked out even while their token is still cryptographically valid.
*/
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/trendhive/trendhive/internal/platform/apperr"
	"github.com/trendhive/trendhive/internal/platform/constants"
	"github.com/trendhive/trendhive/internal/platform/ctxutil"
	"github.com/trendhive/trendhive/internal/platform/mail"
	"github.com/trendhive/trendhive/internal/platform/sec"
	"github.com/trendhive/trendhive/internal/platform/validate"
	"github.com/trendhive/trendhive/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for issuing session tokens.
type TokenProvider interface {
	// GenerateToken creates a signed JWT string for the given user.
	GenerateToken(userID string, timeToLive time.Duration) (string, error)
}

// Service implements the account lifecycle use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, login, or
// reset logic must be reviewed before merging.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
	mailer         mail.Sender
	frontendURL    string

	// accountActiveDefault controls whether new accounts can log in
	// immediately or must verify their email first.
	accountActiveDefault bool
}

// NewService constructs a new auth [Service] with its dependencies.
func NewService(
	userRepo UserRepository,
	tokenProv TokenProvider,
	mailer mail.Sender,
	frontendURL string,
	accountActiveDefault bool,
) *Service {
	return &Service{
		userRepository:       userRepo,
		tokenProvider:        tokenProv,
		mailer:               mailer,
		frontendURL:          frontendURL,
		accountActiveDefault: accountActiveDefault,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
}

// Session pairs a sanitized user with their freshly issued token.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

/*
Register validates, hashes, and persists a brand new account, then opens a
session for it.

Description: Deep-enrollment of a new member. The password is bcrypt-hashed
before any persistence; the verification email is dispatched fire-and-forget
so a broken mail relay never blocks a signup.

Parameters:
  - ctx: context.Context
  - input: RegisterInput

Returns:
  - *Session: Token plus created user
  - error: Validation, Conflict (duplicate email), or storage errors
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {

	// ── 1. Validate input ──
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		Password(FieldPassword, input.Password)

	if input.PhoneNumber != "" {
		validator.Phone(FieldPhoneNumber, input.PhoneNumber)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// ── 2. Enforce email uniqueness ──
	if _, err := service.userRepository.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// ── 3. Hash the password ──
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 4. Persist the account ──
	user := &User{
		ID:           uuidv7.New(),
		Name:         input.Name,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		PasswordHash: hashedPassword,
		Active:       service.accountActiveDefault,
	}

	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	// ── 5. Open the session ──
	token, err := service.tokenProvider.GenerateToken(user.ID, constants.SessionTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_register_token_failed: %w", err)
	}

	// ── 6. Dispatch the verification email (fire-and-forget) ──
	verifyToken, err := service.tokenProvider.GenerateToken(user.ID, constants.VerifyTokenTTL)
	if err == nil {
		service.mailer.SendAsync(ctx, mail.VerificationMessage(
			user.Email, user.Name, service.frontendURL, user.ID, verifyToken,
		))
	} else {
		ctxutil.GetLogger(ctx).Error("auth_verify_token_generation_failed", "error", err)
	}

	return &Session{Token: token, User: user}, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates credentials and issues a session token.

Description: The lookup failure and the password mismatch share one generic
"Invalid credentials" response so the endpoint cannot be used to enumerate
registered emails. An inactive account with correct credentials gets its own
distinct failure so the frontend can prompt for verification.

Parameters:
  - ctx: context.Context
  - input: LoginInput

Returns:
  - *Session: Token plus sanitized user
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Generic message on unknown email to prevent enumeration.
	user, err := service.userRepository.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	// Constant-time comparison inside bcrypt.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	// Credentials are right but the account is still pending verification.
	if !user.Active {
		return nil, apperr.Unauthorized("Account is not activated")
	}

	token, err := service.tokenProvider.GenerateToken(user.ID, constants.SessionTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_login_token_failed: %w", err)
	}

	return &Session{Token: token, User: user}, nil
}

/*
VerifyEmail activates the account referenced by the verification link.

Description: Flips active to true for the given account id.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - error: apperr.NotFound when the id does not resolve
*/
func (service *Service) VerifyEmail(ctx context.Context, userID string) error {
	return service.userRepository.MarkActive(ctx, userID)
}

/*
CheckActiveUser confirms that an account still exists and may hold a session.

Description: Called by the authentication gate on every protected request,
which is what makes the stateless tokens revocable in practice.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - error: NotFound or Unauthorized when the session must be rejected
*/
func (service *Service) CheckActiveUser(ctx context.Context, userID string) error {
	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.Active {
		return apperr.Unauthorized("Account is not activated")
	}

	return nil
}

// # Password Recovery

/*
ForgotPassword initiates the reset flow for the given email.

Description: Generates a 32-byte random token, stores only its SHA-256 hash
with a 10-minute expiry on the account row, and emails the plaintext token as
a link. The plaintext never touches storage.

Parameters:
  - ctx: context.Context
  - email: string

Returns:
  - error: apperr.NotFound when no account owns the email, or storage errors
*/
func (service *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := service.userRepository.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := sec.GenerateSecureToken(constants.PasswordResetTokenBytes)
	if err != nil {
		return fmt.Errorf("auth_service_reset_token_generation_failed: %w", err)
	}

	expiresAt := time.Now().Add(constants.PasswordResetTTL)
	if err := service.userRepository.SetResetToken(ctx, user.ID, sec.HashToken(token), expiresAt); err != nil {
		return err
	}

	service.mailer.SendAsync(ctx, mail.PasswordResetMessage(user.Email, service.frontendURL, user.ID, token))
	return nil
}

/*
ResetPassword completes the reset flow.

Description: Hashes the presented token and compares it against the stored
hash; a mismatch or a past expiry both fail with the same client error. On
success the new password is bcrypt-hashed and the reset fields are cleared in
the same update, so the token is strictly single-use.

Parameters:
  - ctx: context.Context
  - userID: string
  - token: string (plaintext from the emailed link)
  - newPassword: string

Returns:
  - error: Validation failure on bad token/weak password, or storage errors
*/
func (service *Service) ResetPassword(ctx context.Context, userID, token, newPassword string) error {
	validator := &validate.Validator{}
	validator.Required(FieldToken, token).
		Required(FieldPassword, newPassword).
		Password(FieldPassword, newPassword)

	if err := validator.Err(); err != nil {
		return err
	}

	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.HasValidResetToken(sec.HashToken(token), time.Now()) {
		return apperr.ValidationError("Invalid or expired reset token")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_hash_failed: %w", err)
	}

	// UpdatePassword clears resettokenhash/resettokenexpiresat atomically.
	return service.userRepository.UpdatePassword(ctx, user.ID, hashedPassword)
}
