// Copyright (c) 2026 TrendHive. All rights reserved.

package auth

import (
	"context"
	"time"
)

// UserRepository defines the persistence contract for account entities.
//
// # Implementations
//
//   - [PostgresUserRepository]: production storage.
//   - In-memory fakes in the test suite.
type UserRepository interface {
	// Create persists a brand new account.
	Create(ctx context.Context, user *User) error

	// FindByID resolves an account by primary key. Returns apperr.NotFound
	// when the id does not exist.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail resolves an account by unique email address.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Search lists accounts matching the query against name, email, and
	// username, newest first. An empty query lists everyone.
	Search(ctx context.Context, query string, limit, offset int) ([]User, int, error)

	// Update persists the mutable profile and onboarding fields.
	Update(ctx context.Context, user *User) error

	// UpdatePassword replaces the password hash and clears any pending
	// reset-token state.
	UpdatePassword(ctx context.Context, userID, newHash string) error

	// SetResetToken stores the hashed password-reset token and its expiry.
	SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error

	// MarkActive flips the account to active. Returns apperr.NotFound when
	// the id does not exist.
	MarkActive(ctx context.Context, userID string) error

	// Delete permanently removes the account.
	Delete(ctx context.Context, userID string) error
}
