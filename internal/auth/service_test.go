// Copyright (c) 2026 TrendHive. All rights reserved.

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendhive/trendhive/internal/platform/apperr"
	"github.com/trendhive/trendhive/internal/platform/mail"
	"github.com/trendhive/trendhive/internal/platform/sec"
)

// # Test Doubles

type fakeUserRepository struct {
	users map[string]*User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*User)}
}

func (repo *fakeUserRepository) Create(_ context.Context, user *User) error {
	for _, existing := range repo.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return apperr.Conflict("Email is already registered")
		}
	}
	clone := *user
	repo.users[user.ID] = &clone
	return nil
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	user, ok := repo.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *user
	return &clone, nil
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range repo.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) Search(_ context.Context, query string, limit, offset int) ([]User, int, error) {
	var matches []User
	for _, user := range repo.users {
		if query == "" || strings.Contains(strings.ToLower(user.Name), strings.ToLower(query)) {
			matches = append(matches, *user)
		}
	}
	total := len(matches)
	if offset > total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matches[offset:end], total, nil
}

func (repo *fakeUserRepository) Update(_ context.Context, user *User) error {
	if _, ok := repo.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	clone := *user
	repo.users[user.ID] = &clone
	return nil
}

func (repo *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := repo.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	user.ResetTokenHash = ""
	user.ResetTokenExpiresAt = nil
	return nil
}

func (repo *fakeUserRepository) SetResetToken(_ context.Context, userID, tokenHash string, expiresAt time.Time) error {
	user, ok := repo.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.ResetTokenHash = tokenHash
	user.ResetTokenExpiresAt = &expiresAt
	return nil
}

func (repo *fakeUserRepository) MarkActive(_ context.Context, userID string) error {
	user, ok := repo.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.Active = true
	return nil
}

func (repo *fakeUserRepository) Delete(_ context.Context, userID string) error {
	if _, ok := repo.users[userID]; !ok {
		return apperr.NotFound("User")
	}
	delete(repo.users, userID)
	return nil
}

type fakeTokenProvider struct {
	issued int
}

func (provider *fakeTokenProvider) GenerateToken(userID string, _ time.Duration) (string, error) {
	provider.issued++
	return fmt.Sprintf("token-%s-%d", userID, provider.issued), nil
}

type recordingMailer struct {
	sent []mail.Message
}

func (mailer *recordingMailer) Send(_ context.Context, message mail.Message) error {
	mailer.sent = append(mailer.sent, message)
	return nil
}

func (mailer *recordingMailer) SendAsync(ctx context.Context, message mail.Message) {
	_ = mailer.Send(ctx, message)
}

func newTestService(activeDefault bool) (*Service, *fakeUserRepository, *recordingMailer) {
	repo := newFakeUserRepository()
	mailer := &recordingMailer{}
	service := NewService(repo, &fakeTokenProvider{}, mailer, "http://localhost:3000", activeDefault)
	return service, repo, mailer
}

const strongPassword = "Sup3r$ecret"

// # Registration

func TestRegister_HashesPasswordAndStripsItFromJSON(t *testing.T) {
	service, repo, mailer := newTestService(true)

	session, err := service.Register(context.Background(), RegisterInput{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: strongPassword,
	})
	require.NoError(t, err)
	require.NotNil(t, session.User)
	assert.NotEmpty(t, session.Token)

	// Stored hash must never equal the plaintext.
	stored := repo.users[session.User.ID]
	assert.NotEqual(t, strongPassword, stored.PasswordHash)
	assert.True(t, sec.CheckPasswordHash(strongPassword, stored.PasswordHash))

	// Serialized user must not contain any password material.
	serialized, err := json.Marshal(session.User)
	require.NoError(t, err)
	assert.NotContains(t, strings.ToLower(string(serialized)), "password")
	assert.NotContains(t, string(serialized), stored.PasswordHash)

	// Verification email dispatched fire-and-forget.
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ada@example.com", mailer.sent[0].To)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	service, _, _ := newTestService(true)

	_, err := service.Register(context.Background(), RegisterInput{
		Name: "First", Email: "dup@example.com", Password: strongPassword,
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), RegisterInput{
		Name: "Second", Email: "dup@example.com", Password: strongPassword,
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestRegister_RejectsWeakPassword(t *testing.T) {
	service, _, _ := newTestService(true)

	_, err := service.Register(context.Background(), RegisterInput{
		Name: "Weak", Email: "weak@example.com", Password: "password",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

// # Login

func TestLogin_UnknownEmailAndWrongPasswordShareOneMessage(t *testing.T) {
	service, _, _ := newTestService(true)

	_, err := service.Register(context.Background(), RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: strongPassword,
	})
	require.NoError(t, err)

	_, unknownErr := service.Login(context.Background(), LoginInput{
		Email: "nobody@example.com", Password: strongPassword,
	})
	_, wrongErr := service.Login(context.Background(), LoginInput{
		Email: "ada@example.com", Password: "Wr0ng$pass",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)

	// Identical responses prevent email enumeration.
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	assert.Equal(t, "Invalid credentials", unknownErr.Error())
}

func TestLogin_InactiveAccountGetsDistinctErrorAndNoToken(t *testing.T) {
	service, _, _ := newTestService(false)

	_, err := service.Register(context.Background(), RegisterInput{
		Name: "Pending", Email: "pending@example.com", Password: strongPassword,
	})
	require.NoError(t, err)

	session, err := service.Login(context.Background(), LoginInput{
		Email: "pending@example.com", Password: strongPassword,
	})
	require.Error(t, err)
	assert.Nil(t, session)
	assert.Equal(t, "Account is not activated", err.Error())
}

func TestVerifyEmail_ActivatesAccount(t *testing.T) {
	service, repo, _ := newTestService(false)

	session, err := service.Register(context.Background(), RegisterInput{
		Name: "Pending", Email: "pending@example.com", Password: strongPassword,
	})
	require.NoError(t, err)

	require.NoError(t, service.VerifyEmail(context.Background(), session.User.ID))
	assert.True(t, repo.users[session.User.ID].Active)

	// Login now succeeds.
	_, err = service.Login(context.Background(), LoginInput{
		Email: "pending@example.com", Password: strongPassword,
	})
	assert.NoError(t, err)
}

func TestVerifyEmail_UnknownID(t *testing.T) {
	service, _, _ := newTestService(false)

	err := service.VerifyEmail(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Password Recovery

func TestResetPassword_TokenMismatchAndExpiry(t *testing.T) {
	service, repo, mailer := newTestService(true)

	session, err := service.Register(context.Background(), RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: strongPassword,
	})
	require.NoError(t, err)
	userID := session.User.ID

	require.NoError(t, service.ForgotPassword(context.Background(), "ada@example.com"))

	// Only the hash is stored; the reset email carries the plaintext.
	stored := repo.users[userID]
	require.NotEmpty(t, stored.ResetTokenHash)
	require.Len(t, mailer.sent, 2) // verification + reset
	resetMail := mailer.sent[1]
	assert.NotContains(t, resetMail.HTMLBody, stored.ResetTokenHash)

	// A token that does not hash to the stored value fails even though the
	// stored token is still fresh.
	err = service.ResetPassword(context.Background(), userID, "f00dfeed", "N3w$ecret1")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// Pull the real token out of the emailed link, then expire it.
	realToken := extractResetToken(t, resetMail.HTMLBody, userID)
	expired := time.Now().Add(-time.Minute)
	stored.ResetTokenExpiresAt = &expired

	err = service.ResetPassword(context.Background(), userID, realToken, "N3w$ecret1")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestResetPassword_HappyPathIsSingleUse(t *testing.T) {
	service, repo, mailer := newTestService(true)

	session, err := service.Register(context.Background(), RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: strongPassword,
	})
	require.NoError(t, err)
	userID := session.User.ID

	require.NoError(t, service.ForgotPassword(context.Background(), "ada@example.com"))
	realToken := extractResetToken(t, mailer.sent[1].HTMLBody, userID)

	require.NoError(t, service.ResetPassword(context.Background(), userID, realToken, "N3w$ecret1"))

	// New password works, old one does not.
	_, err = service.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: "N3w$ecret1"})
	assert.NoError(t, err)
	_, err = service.Login(context.Background(), LoginInput{Email: "ada@example.com", Password: strongPassword})
	assert.Error(t, err)

	// Reset state is cleared, so the token cannot be replayed.
	assert.Empty(t, repo.users[userID].ResetTokenHash)
	err = service.ResetPassword(context.Background(), userID, realToken, "An0ther$1x")
	assert.Error(t, err)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	service, _, mailer := newTestService(true)

	err := service.ForgotPassword(context.Background(), "ghost@example.com")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	assert.Empty(t, mailer.sent)
}

// # Data Export

func TestExportData_SnapshotWithoutSecrets(t *testing.T) {
	service, _, _ := newTestService(true)

	session, err := service.Register(context.Background(), RegisterInput{
		Name:        "Ada Lovelace",
		Email:       "ada@example.com",
		Password:    strongPassword,
		PhoneNumber: "5551234567",
	})
	require.NoError(t, err)

	export, err := service.ExportData(context.Background(), session.User.ID, "profile")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", export.Name)
	assert.Equal(t, "ada@example.com", export.Email)
	assert.Equal(t, "profile", export.Type)

	serialized, err := json.Marshal(export)
	require.NoError(t, err)
	assert.NotContains(t, strings.ToLower(string(serialized)), "password")

	_, err = service.ExportData(context.Background(), session.User.ID, "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = service.ExportData(context.Background(), "ghost", "profile")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// extractResetToken pulls the plaintext token out of the reset-link HTML.
func extractResetToken(t *testing.T, htmlBody, userID string) string {
	t.Helper()

	marker := "/reset-password/" + userID + "/"
	start := strings.Index(htmlBody, marker)
	require.GreaterOrEqual(t, start, 0, "reset link not found in email body")

	rest := htmlBody[start+len(marker):]
	end := strings.IndexAny(rest, `"<`)
	require.Greater(t, end, 0)
	return rest[:end]
}
