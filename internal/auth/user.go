// Copyright (c) 2026 TrendHive. All rights reserved.

package auth

import "time"

// # Field Identifiers (JSON + validation)

const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldUsername    = "username"
	FieldPassword    = "password"
	FieldPhoneNumber = "phone_number"
	FieldToken       = "token"
	FieldMessage     = "message"
	FieldColors      = "colors"
	FieldCelebs      = "fav_celebs"
)

// User is the account entity shared by the auth lifecycle and the user
// directory.
//
// # Security
//
// PasswordHash and the reset-token pair are never serialized; every handler
// response carries the entity itself, so the `json:"-"` tags are the single
// enforcement point for the "no password ever leaves the API" rule.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Username    string `json:"username,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	ProfilePic  string `json:"profile_pic,omitempty"`

	PasswordHash string `json:"-"`

	// Active gates login. Accounts start active or verification-pending
	// depending on ACCOUNT_ACTIVE_DEFAULT.
	Active bool `json:"active"`

	// Onboarding state captured by the post-signup preference flow.
	Onboarded bool     `json:"onboarded"`
	FavColors []string `json:"fav_colors,omitempty"`
	FavCelebs []string `json:"fav_celebs,omitempty"`

	// Password-reset state. Only the SHA-256 hash of the token is stored;
	// the plaintext exists solely inside the reset email.
	ResetTokenHash      string     `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasValidResetToken reports whether the stored reset token hash matches the
// given hash and has not expired yet.
func (user *User) HasValidResetToken(tokenHash string, now time.Time) bool {
	if user.ResetTokenHash == "" || user.ResetTokenExpiresAt == nil {
		return false
	}
	if user.ResetTokenHash != tokenHash {
		return false
	}
	return now.Before(*user.ResetTokenExpiresAt)
}
