// Copyright (c) 2026 TrendHive. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trendhive/trendhive/internal/platform/apperr"
	"github.com/trendhive/trendhive/internal/platform/dberr"
)

// accountColumns is the SELECT list shared by every account lookup.
const accountColumns = `
	id, name, email, username, phonenumber, profilepic, passwordhash,
	active, onboarded, favcolors, favcelebs,
	resettokenhash, resettokenexpiresat, createdat, updatedat`

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new account record into the users.account table.

Description: Deep-persists account metadata, initializing timestamps.
A unique-constraint violation on email or username surfaces as a Conflict.

Parameters:
  - ctx: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate identity, or storage failures
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, name, email, username, phonenumber, profilepic, passwordhash,
			active, onboarded, favcolors, favcelebs, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		nullableText(user.Username),
		nullableText(user.PhoneNumber),
		nullableText(user.ProfilePic),
		user.PasswordHash,
		user.Active,
		user.Onboarded,
		user.FavColors,
		user.FavCelebs,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_create")
	}

	return nil
}

/*
FindByID resolves an account by its primary key.

Parameters:
  - ctx: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := "SELECT " + accountColumns + " FROM users.account WHERE id = $1"
	return repository.scanOne(ctx, query, id)
}

/*
FindByEmail resolves an account by its unique email address.

Parameters:
  - ctx: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := "SELECT " + accountColumns + " FROM users.account WHERE lower(email) = lower($1)"
	return repository.scanOne(ctx, query, email)
}

/*
Search lists accounts matching the query string, newest first.

Description: Case-insensitive substring match against name, email, and
username. An empty query lists every account, paginated.

Parameters:
  - ctx: context.Context
  - searchQuery: string
  - limit, offset: int

Returns:
  - []User: Matching page of accounts
  - int: Total match count across all pages
  - error: Execution errors
*/
func (repository *PostgresUserRepository) Search(ctx context.Context, searchQuery string, limit, offset int) ([]User, int, error) {
	const query = `
		SELECT ` + accountColumns + `, count(*) OVER() AS totalcount
		FROM users.account
		WHERE $1 = ''
		   OR name ILIKE '%' || $1 || '%'
		   OR email ILIKE '%' || $1 || '%'
		   OR coalesce(username, '') ILIKE '%' || $1 || '%'
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(ctx, query, searchQuery, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_user_repo_search_failed: %w", err)
	}
	defer rows.Close()

	var users []User
	var total int
	for rows.Next() {
		var user User
		if err := scanUser(rows, &user, &total); err != nil {
			return nil, 0, fmt.Errorf("postgres_user_repo_search_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_user_repo_search_rows_failed: %w", err)
	}

	return users, total, nil
}

/*
Update persists the mutable profile and onboarding fields.

Parameters:
  - ctx: context.Context
  - user: *User

Returns:
  - error: apperr.NotFound when the id does not exist, or update failures
*/
func (repository *PostgresUserRepository) Update(ctx context.Context, user *User) error {
	const query = `
		UPDATE users.account
		SET name = $2, username = $3, phonenumber = $4, profilepic = $5,
		    onboarded = $6, favcolors = $7, favcelebs = $8, updatedat = $9
		WHERE id = $1`

	user.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		nullableText(user.Username),
		nullableText(user.PhoneNumber),
		nullableText(user.ProfilePic),
		user.Onboarded,
		user.FavColors,
		user.FavCelebs,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
UpdatePassword replaces the password hash and clears any pending reset token.

Description: Completing a password rotation always invalidates the reset
token in the same statement, so a used token can never be replayed.

Parameters:
  - ctx: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) UpdatePassword(ctx context.Context, userID, newHash string) error {
	const query = `
		UPDATE users.account
		SET passwordhash = $2, resettokenhash = NULL, resettokenexpiresat = NULL, updatedat = $3
		WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, userID, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
SetResetToken stores the hashed password-reset token and its expiry.

Parameters:
  - ctx: context.Context
  - userID: string
  - tokenHash: string (SHA-256 hex of the plaintext token)
  - expiresAt: time.Time

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	const query = `
		UPDATE users.account
		SET resettokenhash = $2, resettokenexpiresat = $3, updatedat = $4
		WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, userID, tokenHash, expiresAt, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_set_reset_token_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
MarkActive flips the account to active.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - error: apperr.NotFound when the id does not exist, or execution errors
*/
func (repository *PostgresUserRepository) MarkActive(ctx context.Context, userID string) error {
	const query = "UPDATE users.account SET active = TRUE, updatedat = $2 WHERE id = $1"

	tag, err := repository.pool.Exec(ctx, query, userID, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_mark_active_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
Delete permanently removes the account.

Description: Hard deletion. Bag, wishlist, membership, and social rows are
removed by ON DELETE CASCADE foreign keys.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) Delete(ctx context.Context, userID string) error {
	const query = "DELETE FROM users.account WHERE id = $1"

	tag, err := repository.pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

// scanOne runs a single-row account query and hydrates the entity.
func (repository *PostgresUserRepository) scanOne(ctx context.Context, query string, args ...any) (*User, error) {
	row := repository.pool.QueryRow(ctx, query, args...)

	user := &User{}
	var username, phoneNumber, profilePic, resetTokenHash *string
	var resetTokenExpiresAt *time.Time

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&username,
		&phoneNumber,
		&profilePic,
		&user.PasswordHash,
		&user.Active,
		&user.Onboarded,
		&user.FavColors,
		&user.FavCelebs,
		&resetTokenHash,
		&resetTokenExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_failed: %w", err)
	}

	applyNullable(user, username, phoneNumber, profilePic, resetTokenHash, resetTokenExpiresAt)
	return user, nil
}

// scanUser hydrates one row of a multi-row account query, including the
// windowed total count column.
func scanUser(rows pgx.Rows, user *User, total *int) error {
	var username, phoneNumber, profilePic, resetTokenHash *string
	var resetTokenExpiresAt *time.Time

	err := rows.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&username,
		&phoneNumber,
		&profilePic,
		&user.PasswordHash,
		&user.Active,
		&user.Onboarded,
		&user.FavColors,
		&user.FavCelebs,
		&resetTokenHash,
		&resetTokenExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
		total,
	)
	if err != nil {
		return err
	}

	applyNullable(user, username, phoneNumber, profilePic, resetTokenHash, resetTokenExpiresAt)
	return nil
}

// applyNullable copies nullable columns onto the entity.
func applyNullable(user *User, username, phoneNumber, profilePic, resetTokenHash *string, resetTokenExpiresAt *time.Time) {
	if username != nil {
		user.Username = *username
	}
	if phoneNumber != nil {
		user.PhoneNumber = *phoneNumber
	}
	if profilePic != nil {
		user.ProfilePic = *profilePic
	}
	if resetTokenHash != nil {
		user.ResetTokenHash = *resetTokenHash
	}
	user.ResetTokenExpiresAt = resetTokenExpiresAt
}

// nullableText maps an empty string to SQL NULL so partial unique indexes
// on username stay meaningful.
func nullableText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
