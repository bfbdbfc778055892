package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobboard/job-portal/internal/core/domain"
	"github.com/jobboard/job-portal/internal/core/ports"
)

const (
	defaultTokenTTL      = 30 * 24 * time.Hour
	defaultResetTokenTTL = 10 * time.Minute
	resetTokenBytes      = 20
)

// AuthOptions tunes token lifetimes. Zero values fall back to the defaults.
type AuthOptions struct {
	JWTSecret     string
	TokenTTL      time.Duration
	ResetTokenTTL time.Duration
}

// AuthService implements registration, login, logout and password reset.
type AuthService struct {
	repo          ports.UserRepository
	denylist      ports.TokenDenylist
	jwtSecret     string
	tokenTTL      time.Duration
	resetTokenTTL time.Duration
	logger        zerolog.Logger
	now           func() time.Time
}

func NewAuthService(repo ports.UserRepository, denylist ports.TokenDenylist, opts AuthOptions, logger zerolog.Logger) *AuthService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}
	if opts.ResetTokenTTL <= 0 {
		opts.ResetTokenTTL = defaultResetTokenTTL
	}
	return &AuthService{
		repo:          repo,
		denylist:      denylist,
		jwtSecret:     opts.JWTSecret,
		tokenTTL:      opts.TokenTTL,
		resetTokenTTL: opts.ResetTokenTTL,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = domain.RoleJobSeeker
	}
	email := domain.NormalizeEmail(in.Email)

	if err := domain.ValidateRegistration(in.Name, email, in.Password, role, in.Company); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Company:      strings.TrimSpace(in.Company),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindCredentials(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	user.PasswordHash = ""
	return token, user, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.FindByID(ctx, userID)
}

// Logout revokes the token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return domain.ErrUnauthorized
	}
	if !expiresAt.After(s.now()) {
		return nil
	}
	if err := s.denylist.Revoke(ctx, tokenID, expiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.logger.Info().Str("token_id", tokenID).Msg("token revoked")
	return nil
}

// ForgotPassword issues a reset token for a known email. Unknown emails yield
// an empty request and no error so callers cannot probe for accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (*ports.PasswordResetRequest, error) {
	user, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return &ports.PasswordResetRequest{}, nil
		}
		return nil, err
	}

	raw, err := newResetToken()
	if err != nil {
		return nil, err
	}
	expires := s.now().Add(s.resetTokenTTL)

	if err := s.repo.SetResetToken(ctx, user.ID, hashResetToken(raw), expires); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Time("expires_at", expires).Msg("password reset requested")
	return &ports.PasswordResetRequest{Token: raw, ExpiresAt: expires}, nil
}

// ResetPassword consumes a reset token and returns a fresh session token.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) (string, *domain.User, error) {
	if token == "" {
		return "", nil, domain.ErrInvalidResetToken
	}
	if err := domain.ValidatePassword(password); err != nil {
		return "", nil, err
	}

	tokenHash := hashResetToken(token)
	if _, err := s.repo.FindByResetToken(ctx, tokenHash, s.now()); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidResetToken
		}
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	// The lookup may be stale by now; only the conditional write consumes the token.
	user, err := s.repo.ConsumeResetToken(ctx, tokenHash, string(hash), s.now())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidResetToken
		}
		return "", nil, err
	}

	jwtToken, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password reset")
	return jwtToken, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"id":   user.ID,
		"role": user.Role,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func newResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
