// Copyright (c) 2026 TrendHive. All rights reserved.

package contact

import (
	"context"

	"github.com/trendhive/trendhive/internal/platform/mail"
	"github.com/trendhive/trendhive/internal/platform/validate"
	"github.com/trendhive/trendhive/pkg/pagination"
	"github.com/trendhive/trendhive/pkg/uuidv7"
)

// Service implements the contact form use cases.
type Service struct {
	submissionRepository SubmissionRepository
	mailer               mail.Sender
	supportAddress       string
}

// NewService constructs a new contact [Service] with its dependencies.
func NewService(repo SubmissionRepository, mailer mail.Sender, supportAddress string) *Service {
	return &Service{
		submissionRepository: repo,
		mailer:               mailer,
		supportAddress:       supportAddress,
	}
}

// SubmissionInput holds the writable contact form fields.
type SubmissionInput struct {
	Name        string
	Email       string
	PhoneNumber string
	Subject     string
	Message     string
}

func (input SubmissionInput) validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Required(FieldMessage, input.Message).
		MaxLen(FieldName, input.Name, 100).
		MaxLen(FieldSubject, input.Subject, 200).
		MaxLen(FieldMessage, input.Message, 5000)
	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}
	if input.PhoneNumber != "" {
		validator.Phone(FieldPhone, input.PhoneNumber)
	}
	return validator.Err()
}

/*
Submit persists a contact form entry and dispatches the notifications.

Description: The submitter gets a receipt, the support address gets the
full entry. Both mails are fire-and-forget; delivery failures never block
the submission.

Parameters:
  - ctx: context.Context
  - input: SubmissionInput

Returns:
  - *Submission: Persisted entry
  - error: Validation or storage errors
*/
func (service *Service) Submit(ctx context.Context, input SubmissionInput) (*Submission, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	submission := &Submission{
		ID:          uuidv7.New(),
		Name:        input.Name,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Subject:     input.Subject,
		Message:     input.Message,
	}

	if err := service.submissionRepository.Create(ctx, submission); err != nil {
		return nil, err
	}

	service.mailer.SendAsync(ctx, mail.ContactReceiptMessage(submission.Email, submission.Name))
	if service.supportAddress != "" {
		service.mailer.SendAsync(ctx, mail.ContactAlertMessage(
			service.supportAddress,
			submission.Name,
			submission.Email,
			submission.PhoneNumber,
			submission.Message,
		))
	}

	return submission, nil
}

/*
ListSubmissions returns a page of contact form entries, newest first.

Parameters:
  - ctx: context.Context
  - params: pagination.Params

Returns:
  - []Submission, int: Page and total row count
  - error: Storage errors
*/
func (service *Service) ListSubmissions(ctx context.Context, params pagination.Params) ([]Submission, int, error) {
	return service.submissionRepository.List(ctx, params.Limit, params.Offset())
}

/*
GetSubmission resolves a single contact form entry.

Parameters:
  - ctx: context.Context
  - submissionID: string

Returns:
  - *Submission: Entry
  - error: apperr.NotFound or storage errors
*/
func (service *Service) GetSubmission(ctx context.Context, submissionID string) (*Submission, error) {
	return service.submissionRepository.FindByID(ctx, submissionID)
}

/*
DeleteSubmission removes a handled entry from the inbox.

Parameters:
  - ctx: context.Context
  - submissionID: string

Returns:
  - error: apperr.NotFound or storage errors
*/
func (service *Service) DeleteSubmission(ctx context.Context, submissionID string) error {
	return service.submissionRepository.Delete(ctx, submissionID)
}
