// AngelaMos | 2026
// dto.go

package auth

type SignupRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Code  string `json:"code"  validate:"required,len=6,numeric"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"       validate:"required,email,max=255"`
	Code        string `json:"code"        validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,max=128"`
}

// UserResponse is what the SPA persists in local storage next to the token;
// the password hash never leaves the server.
type UserResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

type AuthResult struct {
	Token string
	User  UserResponse
}
