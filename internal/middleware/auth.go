// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/carterperez-dev/bookhaven/internal/core"
)

const IdentityKey contextKey = "identity"

// Identity is the set of claims recovered from a verified session token.
type Identity struct {
	UserID  int64
	Email   string
	IsAdmin bool
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Authenticator rejects requests without a usable token: absent tokens get
// 401, tokens that fail verification (bad signature, expired) get 403.
func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)

			if token == "" {
				core.JSONError(
					w,
					core.UnauthorizedError("Access token required"),
				)
				return
			}

			identity, err := verifier.Verify(r.Context(), token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin re-checks the is_admin claim server-side. The storefront UI
// hides admin routes from regular users, but that is a convenience, not the
// security boundary.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := GetIdentity(r.Context())

		if identity == nil {
			core.JSONError(
				w,
				core.UnauthorizedError("Access token required"),
			)
			return
		}

		if !identity.IsAdmin {
			core.JSONError(
				w,
				core.ForbiddenError("Admin access required"),
			)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	default:
		core.JSONError(w, core.TokenInvalidError())
	}
}

func GetIdentity(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(IdentityKey).(*Identity); ok {
		return identity
	}
	return nil
}

func GetUserID(ctx context.Context) int64 {
	if identity := GetIdentity(ctx); identity != nil {
		return identity.UserID
	}
	return 0
}

func IsAuthenticated(ctx context.Context) bool {
	return GetIdentity(ctx) != nil
}

func IsAdmin(ctx context.Context) bool {
	if identity := GetIdentity(ctx); identity != nil {
		return identity.IsAdmin
	}
	return false
}
