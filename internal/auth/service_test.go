// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/bookhaven/internal/core"
)

type stubUsers struct {
	byEmail map[string]*UserInfo
	nextID  int64
}

func newStubUsers() *stubUsers {
	return &stubUsers{byEmail: make(map[string]*UserInfo), nextID: 1}
}

func (s *stubUsers) GetByEmail(
	_ context.Context,
	email string,
) (*UserInfo, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (s *stubUsers) GetByID(_ context.Context, id int64) (*UserInfo, error) {
	for _, user := range s.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (s *stubUsers) Create(
	_ context.Context,
	name, email, passwordHash string,
) (*UserInfo, error) {
	if _, ok := s.byEmail[email]; ok {
		return nil, fmt.Errorf("create user: %w", core.ErrDuplicateKey)
	}

	user := &UserInfo{
		ID:           s.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
	s.nextID++
	s.byEmail[email] = user

	copied := *user
	return &copied, nil
}

func (s *stubUsers) UpdatePasswordByEmail(
	_ context.Context,
	email, passwordHash string,
) error {
	user, ok := s.byEmail[email]
	if !ok {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}
	user.PasswordHash = passwordHash
	return nil
}

type captureMailer struct {
	to   string
	code string
}

func (m *captureMailer) SendResetCode(to, code string) error {
	m.to = to
	m.code = code
	return nil
}

func newTestService(t *testing.T) (*Service, *stubUsers, *captureMailer) {
	t.Helper()

	users := newStubUsers()
	mailer := &captureMailer{}
	svc := NewService(
		users,
		newTestTokenService(t, time.Hour),
		NewMemoryResetStore(),
		mailer,
		10*time.Minute,
		6,
	)

	return svc, users, mailer
}

func signupReader(t *testing.T, svc *Service) *AuthResult {
	t.Helper()

	result, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Jane Reader",
		Email:    "jane@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return result
}

func TestService_Signup(t *testing.T) {
	svc, users, _ := newTestService(t)

	result := signupReader(t, svc)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, int64(1), result.User.ID)
	assert.Equal(t, "Jane Reader", result.User.Name)
	assert.Equal(t, "jane@example.com", result.User.Email)
	assert.False(t, result.User.IsAdmin)

	// Stored hash is bcrypt, never the raw password.
	stored := users.byEmail["jane@example.com"]
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestService_Signup_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	signupReader(t, svc)

	_, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Second Jane",
		Email:    "jane@example.com",
		Password: "different456",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestService_Login(t *testing.T) {
	svc, _, _ := newTestService(t)
	signupReader(t, svc)

	result, err := svc.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "jane@example.com", result.User.Email)
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	signupReader(t, svc)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "not-the-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	// Same error as wrong password; responses must not reveal which.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_RequestReset(t *testing.T) {
	svc, _, mailer := newTestService(t)
	signupReader(t, svc)

	code, err := svc.RequestReset(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.Equal(t, "jane@example.com", mailer.to)
	assert.Equal(t, code, mailer.code)
}

func TestService_RequestReset_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.RequestReset(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUnknownEmail)
}

func TestService_RequestReset_OverwritesPrevious(t *testing.T) {
	svc, _, _ := newTestService(t)
	signupReader(t, svc)
	ctx := context.Background()

	first, err := svc.RequestReset(ctx, "jane@example.com")
	require.NoError(t, err)

	second, err := svc.RequestReset(ctx, "jane@example.com")
	require.NoError(t, err)

	if first != second {
		err = svc.VerifyResetCode(ctx, "jane@example.com", first)
		assert.ErrorIs(t, err, ErrCodeMismatch)
	}

	assert.NoError(t, svc.VerifyResetCode(ctx, "jane@example.com", second))
}

func TestService_VerifyResetCode_NoPendingRequest(t *testing.T) {
	svc, _, _ := newTestService(t)
	signupReader(t, svc)

	err := svc.VerifyResetCode(context.Background(), "jane@example.com", "123456")
	assert.ErrorIs(t, err, ErrNoPendingReset)
}

func TestService_VerifyResetCode_Expired(t *testing.T) {
	svc, _, _ := newTestService(t)
	signupReader(t, svc)
	ctx := context.Background()

	store := NewMemoryResetStore()
	svc.resets = store
	require.NoError(t, store.Put(ctx, "jane@example.com", ResetEntry{
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Second),
	}))

	err := svc.VerifyResetCode(ctx, "jane@example.com", "123456")
	assert.ErrorIs(t, err, ErrResetCodeExpired)

	// Expired entry is consumed; the next attempt sees nothing pending.
	err = svc.VerifyResetCode(ctx, "jane@example.com", "123456")
	assert.ErrorIs(t, err, ErrNoPendingReset)
}

func TestService_VerifyResetCode_Mismatch(t *testing.T) {
	svc, _, _ := newTestService(t)
	signupReader(t, svc)
	ctx := context.Background()

	code, err := svc.RequestReset(ctx, "jane@example.com")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	err = svc.VerifyResetCode(ctx, "jane@example.com", wrong)
	assert.ErrorIs(t, err, ErrCodeMismatch)

	// A mismatch does not consume the entry.
	assert.NoError(t, svc.VerifyResetCode(ctx, "jane@example.com", code))
}

func TestService_ResetPassword_FullFlow(t *testing.T) {
	svc, _, _ := newTestService(t)
	signupReader(t, svc)
	ctx := context.Background()

	code, err := svc.RequestReset(ctx, "jane@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.VerifyResetCode(ctx, "jane@example.com", code))

	err = svc.ResetPassword(ctx, "jane@example.com", code, "newsecret456")
	require.NoError(t, err)

	// Old password no longer works, new one does.
	_, err = svc.Login(ctx, LoginRequest{
		Email:    "jane@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{
		Email:    "jane@example.com",
		Password: "newsecret456",
	})
	assert.NoError(t, err)

	// The entry is gone; the code cannot be replayed.
	err = svc.ResetPassword(ctx, "jane@example.com", code, "another789")
	assert.ErrorIs(t, err, ErrNotVerified)
}

func TestService_ResetPassword_WithoutVerification(t *testing.T) {
	svc, _, _ := newTestService(t)
	signupReader(t, svc)
	ctx := context.Background()

	code, err := svc.RequestReset(ctx, "jane@example.com")
	require.NoError(t, err)

	err = svc.ResetPassword(ctx, "jane@example.com", code, "newsecret456")
	assert.ErrorIs(t, err, ErrNotVerified)
}

func TestService_ResetPassword_TooShort(t *testing.T) {
	svc, _, _ := newTestService(t)
	signupReader(t, svc)
	ctx := context.Background()

	code, err := svc.RequestReset(ctx, "jane@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.VerifyResetCode(ctx, "jane@example.com", code))

	err = svc.ResetPassword(ctx, "jane@example.com", code, "short")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestMemoryResetStore(t *testing.T) {
	store := NewMemoryResetStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "jane@example.com")
	assert.True(t, errors.Is(err, core.ErrNotFound))

	entry := ResetEntry{
		Code:      "654321",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	require.NoError(t, store.Put(ctx, "jane@example.com", entry))

	got, err := store.Get(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "654321", got.Code)
	assert.False(t, got.Verified)

	require.NoError(t, store.MarkVerified(ctx, "jane@example.com"))

	got, err = store.Get(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.True(t, got.Verified)

	require.NoError(t, store.Delete(ctx, "jane@example.com"))

	_, err = store.Get(ctx, "jane@example.com")
	assert.True(t, errors.Is(err, core.ErrNotFound))
}
