// Copyright (c) 2026 TrendHive. All rights reserved.

package contact

import "context"

// SubmissionRepository defines the persistence contract for contact form
// entries.
type SubmissionRepository interface {
	// Create persists a new submission.
	Create(ctx context.Context, submission *Submission) error

	// List returns a page of submissions, newest first.
	List(ctx context.Context, limit, offset int) ([]Submission, int, error)

	// FindByID resolves a single submission.
	FindByID(ctx context.Context, id string) (*Submission, error)

	// Delete removes a handled submission.
	Delete(ctx context.Context, id string) error
}
