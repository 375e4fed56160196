// AngelaMos | 2026
// service.go

package user

import (
	"context"

	"github.com/carterperez-dev/bookhaven/internal/auth"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Email lookups are exact-match; the storefront has always treated addresses
// as case-sensitive and the unique index matches that.
func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id int64,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	name, email, passwordHash string,
) (*auth.UserInfo, error) {
	user := &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		IsAdmin:      false,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePasswordByEmail(
	ctx context.Context,
	email, passwordHash string,
) error {
	return s.repo.UpdatePasswordByEmail(ctx, email, passwordHash)
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
	}
}

var _ auth.UserProvider = (*Service)(nil)
