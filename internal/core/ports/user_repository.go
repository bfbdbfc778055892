package ports

import (
	"context"
	"time"

	"github.com/jobboard/job-portal/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// FindByID and FindByEmail never populate PasswordHash; only
// FindCredentials does.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindCredentials(ctx context.Context, email string) (*domain.User, error)

	// SetResetToken stores the hashed reset token and its expiry.
	SetResetToken(ctx context.Context, userID, tokenHash string, expires time.Time) error
	// FindByResetToken returns the user whose unexpired reset token matches.
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)
	// ConsumeResetToken sets a new password hash on the user holding the
	// unexpired token and clears the token in the same write, so a token
	// works at most once. It returns ErrUserNotFound when no user matches.
	ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) (*domain.User, error)
}
