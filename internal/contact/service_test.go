// Copyright (c) 2026 TrendHive. All rights reserved.

package contact

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendhive/trendhive/internal/platform/apperr"
	"github.com/trendhive/trendhive/internal/platform/mail"
)

type fakeSubmissionRepository struct {
	submissions []Submission
}

func (repo *fakeSubmissionRepository) Create(_ context.Context, submission *Submission) error {
	repo.submissions = append(repo.submissions, *submission)
	return nil
}

func (repo *fakeSubmissionRepository) List(_ context.Context, limit, offset int) ([]Submission, int, error) {
	total := len(repo.submissions)
	if offset > total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return append([]Submission{}, repo.submissions[offset:end]...), total, nil
}

func (repo *fakeSubmissionRepository) FindByID(_ context.Context, id string) (*Submission, error) {
	for _, submission := range repo.submissions {
		if submission.ID == id {
			clone := submission
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Contact submission")
}

func (repo *fakeSubmissionRepository) Delete(_ context.Context, id string) error {
	for index, submission := range repo.submissions {
		if submission.ID == id {
			repo.submissions = append(repo.submissions[:index], repo.submissions[index+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Contact submission")
}

type recordingMailer struct {
	mu       sync.Mutex
	messages []mail.Message
}

func (m *recordingMailer) Send(_ context.Context, message mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
	return nil
}

func (m *recordingMailer) SendAsync(ctx context.Context, message mail.Message) {
	_ = m.Send(ctx, message)
}

func (m *recordingMailer) sent() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mail.Message{}, m.messages...)
}

func TestSubmit_PersistsAndNotifiesBothSides(t *testing.T) {
	repo := &fakeSubmissionRepository{}
	mailer := &recordingMailer{}
	service := NewService(repo, mailer, "support@trendhive.example")

	submission, err := service.Submit(context.Background(), SubmissionInput{
		Name:    "Dana",
		Email:   "dana@example.com",
		Message: "My order never arrived",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, submission.ID)
	require.Len(t, repo.submissions, 1)

	messages := mailer.sent()
	require.Len(t, messages, 2)
	assert.Equal(t, "dana@example.com", messages[0].To)
	assert.Equal(t, "support@trendhive.example", messages[1].To)
	assert.Contains(t, messages[1].HTMLBody, "My order never arrived")
}

func TestSubmit_RequiresEmailAndMessage(t *testing.T) {
	service := NewService(&fakeSubmissionRepository{}, &recordingMailer{}, "")

	_, err := service.Submit(context.Background(), SubmissionInput{Name: "Dana"})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	fields := make(map[string]bool)
	for _, detail := range appErr.Details {
		fields[detail.Field] = true
	}
	assert.True(t, fields[FieldEmail])
	assert.True(t, fields[FieldMessage])
}

func TestSubmit_NoSupportAddressSkipsAlert(t *testing.T) {
	mailer := &recordingMailer{}
	service := NewService(&fakeSubmissionRepository{}, mailer, "")

	_, err := service.Submit(context.Background(), SubmissionInput{
		Email:   "dana@example.com",
		Message: "Hello",
	})
	require.NoError(t, err)
	require.Len(t, mailer.sent(), 1)
	assert.Equal(t, "dana@example.com", mailer.sent()[0].To)
}

func TestGetAndDeleteSubmission(t *testing.T) {
	repo := &fakeSubmissionRepository{}
	service := NewService(repo, &recordingMailer{}, "")

	submitted, err := service.Submit(context.Background(), SubmissionInput{
		Email:   "dana@example.com",
		Message: "Where is my refund?",
	})
	require.NoError(t, err)

	found, err := service.GetSubmission(context.Background(), submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, "Where is my refund?", found.Message)

	require.NoError(t, service.DeleteSubmission(context.Background(), submitted.ID))

	_, err = service.GetSubmission(context.Background(), submitted.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	err = service.DeleteSubmission(context.Background(), submitted.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
