// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carterperez-dev/bookhaven/internal/core"
	"github.com/carterperez-dev/bookhaven/internal/middleware"
)

var (
	// ErrInvalidCredentials deliberately covers both unknown-email and
	// wrong-password so login responses cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already registered")
	ErrUnknownEmail       = errors.New("no account with this email")
	ErrNoPendingReset     = errors.New("no pending reset request")
	ErrResetCodeExpired   = errors.New("reset code expired")
	ErrCodeMismatch       = errors.New("invalid verification code")
	ErrNotVerified        = errors.New("reset code not verified")
	ErrWeakPassword       = errors.New("password too short")
)

type UserInfo struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id int64) (*UserInfo, error)
	Create(ctx context.Context, name, email, passwordHash string) (*UserInfo, error)
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
}

type Service struct {
	users       UserProvider
	tokens      *TokenService
	resets      ResetStore
	mailer      Mailer
	codeExpire  time.Duration
	minPassword int
}

func NewService(
	users UserProvider,
	tokens *TokenService,
	resets ResetStore,
	mailer Mailer,
	codeExpire time.Duration,
	minPassword int,
) *Service {
	return &Service{
		users:       users,
		tokens:      tokens,
		resets:      resets,
		mailer:      mailer,
		codeExpire:  codeExpire,
		minPassword: minPassword,
	}
}

func (s *Service) Signup(
	ctx context.Context,
	req SignupRequest,
) (*AuthResult, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req.Name, req.Email, passwordHash)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issueFor(user)
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // burn a hash comparison so unknown emails take as long as wrong passwords
			_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, &user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	return s.issueFor(user)
}

// RequestReset starts the three-step reset flow. The generated code is
// returned so development mode can echo it; callers must not expose it
// outside of that.
func (s *Service) RequestReset(
	ctx context.Context,
	email string,
) (string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return "", ErrUnknownEmail
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	code, err := core.GenerateResetCode()
	if err != nil {
		return "", err
	}

	entry := ResetEntry{
		Code:      code,
		ExpiresAt: time.Now().Add(s.codeExpire),
		Verified:  false,
	}

	if err := s.resets.Put(ctx, email, entry); err != nil {
		return "", fmt.Errorf("store reset code: %w", err)
	}

	if err := s.mailer.SendResetCode(email, code); err != nil {
		// The entry is already stored; a delivery hiccup should not force
		// the user to restart the flow.
		slog.Warn("reset code delivery failed", "email", email, "error", err)
	}

	return code, nil
}

func (s *Service) VerifyResetCode(
	ctx context.Context,
	email, code string,
) error {
	entry, err := s.resets.Get(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNoPendingReset
		}
		return fmt.Errorf("get reset entry: %w", err)
	}

	if entry.IsExpired() {
		//nolint:errcheck // expired entry cleanup is best-effort
		_ = s.resets.Delete(ctx, email)
		return ErrResetCodeExpired
	}

	if entry.Code != code {
		return ErrCodeMismatch
	}

	if err := s.resets.MarkVerified(ctx, email); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}

	return nil
}

func (s *Service) ResetPassword(
	ctx context.Context,
	email, code, newPassword string,
) error {
	if len(newPassword) < s.minPassword {
		return ErrWeakPassword
	}

	entry, err := s.resets.Get(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNotVerified
		}
		return fmt.Errorf("get reset entry: %w", err)
	}

	if !entry.Verified {
		return ErrNotVerified
	}

	// Re-checked even though verification already matched it.
	if entry.Code != code {
		return ErrCodeMismatch
	}

	passwordHash, err := core.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePasswordByEmail(ctx, email, passwordHash); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrUnknownEmail
		}
		return fmt.Errorf("update password: %w", err)
	}

	if err := s.resets.Delete(ctx, email); err != nil {
		return fmt.Errorf("delete reset entry: %w", err)
	}

	return nil
}

func (s *Service) issueFor(user *UserInfo) (*AuthResult, error) {
	token, err := s.tokens.Issue(middleware.Identity{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResult{
		Token: token,
		User: UserResponse{
			ID:      user.ID,
			Name:    user.Name,
			Email:   user.Email,
			IsAdmin: user.IsAdmin,
		},
	}, nil
}
