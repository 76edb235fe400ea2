// Copyright (c) 2026 TrendHive. All rights reserved.

package auth

import (
	"context"
	"time"

	"github.com/trendhive/trendhive/internal/platform/apperr"
	"github.com/trendhive/trendhive/internal/platform/validate"
	"github.com/trendhive/trendhive/pkg/pagination"
)

// # Profile & Onboarding

/*
Profile returns the authenticated user's own account.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - *User: Sanitized account entity
  - error: apperr.NotFound or storage errors
*/
func (service *Service) Profile(ctx context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(ctx, userID)
}

// ProfileUpdateInput holds the editable profile fields.
type ProfileUpdateInput struct {
	Name        string
	Username    string
	PhoneNumber string
	ProfilePic  string
}

/*
UpdateProfile applies profile edits to the authenticated user's own account.

Parameters:
  - ctx: context.Context
  - userID: string
  - input: ProfileUpdateInput

Returns:
  - *User: Updated entity
  - error: Validation, Conflict (username taken), or storage errors
*/
func (service *Service) UpdateProfile(ctx context.Context, userID string, input ProfileUpdateInput) (*User, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100)

	if input.Username != "" {
		validator.Username(FieldUsername, input.Username)
	}
	if input.PhoneNumber != "" {
		validator.Phone(FieldPhoneNumber, input.PhoneNumber)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Username = input.Username
	user.PhoneNumber = input.PhoneNumber
	user.ProfilePic = input.ProfilePic

	if err := service.userRepository.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

/*
CompleteOnboarding stores the post-signup preference answers.

Description: Records favorite colors and celebrities and marks the account
as onboarded so the frontend stops showing the wizard.

Parameters:
  - ctx: context.Context
  - userID: string
  - colors, favCelebs: []string

Returns:
  - *User: Updated entity
  - error: Validation or storage errors
*/
func (service *Service) CompleteOnboarding(ctx context.Context, userID string, colors, favCelebs []string) (*User, error) {
	if len(colors) == 0 && len(favCelebs) == 0 {
		return nil, apperr.ValidationError("At least one preference is required")
	}

	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FavColors = colors
	user.FavCelebs = favCelebs
	user.Onboarded = true

	if err := service.userRepository.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # User Directory

/*
SearchUsers lists accounts matching a free-text query, paginated.

Parameters:
  - ctx: context.Context
  - query: string (empty lists everyone)
  - params: pagination.Params

Returns:
  - []User: Matching page
  - int: Total match count
  - error: Storage errors
*/
func (service *Service) SearchUsers(ctx context.Context, query string, params pagination.Params) ([]User, int, error) {
	return service.userRepository.Search(ctx, query, params.Limit, params.Offset())
}

/*
GetUser resolves a single account by id.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - *User: Account entity
  - error: apperr.NotFound or storage errors
*/
func (service *Service) GetUser(ctx context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(ctx, userID)
}

/*
UpdateUser applies profile edits to an arbitrary account.

Description: Only the account owner may edit themselves; a foreign principal
is rejected with Forbidden.

Parameters:
  - ctx: context.Context
  - actorID: string (authenticated principal)
  - targetID: string (account being edited)
  - input: ProfileUpdateInput

Returns:
  - *User: Updated entity
  - error: Forbidden, validation, or storage errors
*/
func (service *Service) UpdateUser(ctx context.Context, actorID, targetID string, input ProfileUpdateInput) (*User, error) {
	if actorID != targetID {
		return nil, apperr.Forbidden("You can only edit your own account")
	}
	return service.UpdateProfile(ctx, targetID, input)
}

/*
DeleteUser permanently removes an account.

Description: Owner-only. Cart, wishlist, memberships, posts, and comments
are removed by cascading foreign keys.

Parameters:
  - ctx: context.Context
  - actorID, targetID: string

Returns:
  - error: Forbidden, apperr.NotFound, or storage errors
*/
func (service *Service) DeleteUser(ctx context.Context, actorID, targetID string) error {
	if actorID != targetID {
		return apperr.Forbidden("You can only delete your own account")
	}
	return service.userRepository.Delete(ctx, targetID)
}

// # Data Export

// DataExport is the self-service snapshot of an account's stored data.
type DataExport struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Type        string    `json:"type"`
}

/*
ExportData assembles the caller's account data for download.

Description: Self-service export of the data held about the account. The
export never includes password or reset-token material.

Parameters:
  - ctx: context.Context
  - userID: string (authenticated principal)
  - exportType: string (free-form label echoed back, e.g. "profile")

Returns:
  - *DataExport: Snapshot of the stored account data
  - error: Validation, apperr.NotFound, or storage errors
*/
func (service *Service) ExportData(ctx context.Context, userID, exportType string) (*DataExport, error) {
	validator := &validate.Validator{}
	validator.Required("type", exportType)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &DataExport{
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		CreatedAt:   user.CreatedAt,
		Type:        exportType,
	}, nil
}
