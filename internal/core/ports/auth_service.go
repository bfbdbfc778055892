package ports

import (
	"context"
	"time"

	"github.com/jobboard/job-portal/internal/core/domain"
)

// RegisterInput carries the fields accepted at sign-up.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // empty means jobseeker
	Company  string
}

// PasswordResetRequest is the outcome of a forgot-password call. Token is
// empty when the email is unknown.
type PasswordResetRequest struct {
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	ForgotPassword(ctx context.Context, email string) (*PasswordResetRequest, error)
	ResetPassword(ctx context.Context, token, password string) (string, *domain.User, error)
}
