// Copyright (c) 2026 TrendHive. All rights reserved.

package contact

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

// PostgresSubmissionRepository implements [SubmissionRepository] using pgx.
type PostgresSubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new PostgreSQL implementation of
// [SubmissionRepository].
func NewSubmissionRepository(pool *pgxpool.Pool) *PostgresSubmissionRepository {
	return &PostgresSubmissionRepository{pool: pool}
}

/*
Create persists a new submission into the support.issue table.

Parameters:
  - ctx: context.Context
  - submission: *Submission

Returns:
  - error: Storage failures
*/
func (repository *PostgresSubmissionRepository) Create(ctx context.Context, submission *Submission) error {
	const query = `
		INSERT INTO support.issue (id, name, email, phonenumber, subject, message, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	submission.CreatedAt = time.Now()

	_, err := repository.pool.Exec(ctx, query,
		submission.ID,
		submission.Name,
		submission.Email,
		submission.PhoneNumber,
		submission.Subject,
		submission.Message,
		submission.CreatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_contact_repo_create")
	}

	return nil
}

/*
List returns a page of submissions, newest first.

Parameters:
  - ctx: context.Context
  - limit, offset: int

Returns:
  - []Submission, int: Page plus total row count
  - error: Execution errors
*/
func (repository *PostgresSubmissionRepository) List(ctx context.Context, limit, offset int) ([]Submission, int, error) {
	const query = `
		SELECT id, name, email, phonenumber, subject, message, createdat,
		       count(*) OVER() AS totalcount
		FROM support.issue
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_contact_repo_list")
	}
	defer rows.Close()

	var (
		submissions []Submission
		total       int
	)
	for rows.Next() {
		var submission Submission
		if err := rows.Scan(
			&submission.ID,
			&submission.Name,
			&submission.Email,
			&submission.PhoneNumber,
			&submission.Subject,
			&submission.Message,
			&submission.CreatedAt,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "postgres_contact_repo_list_scan")
		}
		submissions = append(submissions, submission)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_contact_repo_list_rows")
	}

	return submissions, total, nil
}

/*
FindByID resolves a single submission by primary key.

Parameters:
  - ctx: context.Context
  - id: string

Returns:
  - *Submission: Hydrated entry
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresSubmissionRepository) FindByID(ctx context.Context, id string) (*Submission, error) {
	const query = `
		SELECT id, name, email, phonenumber, subject, message, createdat
		FROM support.issue
		WHERE id = $1`

	submission := &Submission{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&submission.ID,
		&submission.Name,
		&submission.Email,
		&submission.PhoneNumber,
		&submission.Subject,
		&submission.Message,
		&submission.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Contact submission")
		}
		return nil, fmt.Errorf("postgres_contact_repo_find_failed: %w", err)
	}

	return submission, nil
}

/*
Delete removes a handled submission.

Parameters:
  - ctx: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresSubmissionRepository) Delete(ctx context.Context, id string) error {
	const query = "DELETE FROM support.issue WHERE id = $1"

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres_contact_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Contact submission")
	}

	return nil
}
