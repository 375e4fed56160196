// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/bookhaven/internal/config"
	"github.com/carterperez-dev/bookhaven/internal/core"
	"github.com/carterperez-dev/bookhaven/internal/middleware"
)

func newTestTokenService(
	t *testing.T,
	expire time.Duration,
) *TokenService {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")

	require.NoError(t, GenerateKeyPair(privatePath, publicPath))

	svc, err := NewTokenService(config.JWTConfig{
		PrivateKeyPath: privatePath,
		PublicKeyPath:  publicPath,
		TokenExpire:    expire,
		Issuer:         "bookhaven",
		Audience:       "bookhaven-api",
	})
	require.NoError(t, err)

	return svc
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	token, err := svc.Issue(middleware.Identity{
		UserID:  7,
		Email:   "reader@example.com",
		IsAdmin: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := svc.Verify(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, int64(7), identity.UserID)
	assert.Equal(t, "reader@example.com", identity.Email)
	assert.True(t, identity.IsAdmin)
}

func TestTokenService_VerifyExpired(t *testing.T) {
	svc := newTestTokenService(t, -time.Minute)

	token, err := svc.Issue(middleware.Identity{
		UserID: 1,
		Email:  "reader@example.com",
	})
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrTokenExpired))
}

func TestTokenService_VerifyGarbage(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	_, err := svc.Verify(context.Background(), "not.a.token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrTokenInvalid))
}

func TestTokenService_VerifyForeignKey(t *testing.T) {
	issuer := newTestTokenService(t, time.Hour)
	verifier := newTestTokenService(t, time.Hour)

	token, err := issuer.Issue(middleware.Identity{
		UserID: 3,
		Email:  "reader@example.com",
	})
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrTokenInvalid))
}

func TestTokenService_KeyID(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)
	assert.Len(t, svc.KeyID(), 8)
}
