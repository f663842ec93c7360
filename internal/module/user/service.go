package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/problemhub/server/internal/module/auth"
	"github.com/problemhub/server/internal/shared/metrics"
)

// Service provides user account operations.
type Service struct {
	repo    Repository
	jwt     *auth.JWTManager
	limiter *auth.LoginLimiter
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewService creates a new user service. The limiter and metrics may
// be nil; a nil limiter means login attempts are not throttled.
func NewService(repo Repository, jwt *auth.JWTManager, limiter *auth.LoginLimiter, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		jwt:     jwt,
		limiter: limiter,
		metrics: m,
		logger:  logger,
	}
}

// Register creates a new account and logs it in.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if len(req.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		// The unique index on email is the source of truth, not a
		// prior read, so concurrent registrations cannot both win.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.recordEvent("registered")
	s.logger.Info("user registered",
		zap.String("user_id", u.ID.String()),
		zap.String("email", u.Email),
	)

	return s.issueToken(u)
}

// Login authenticates an account with email and password.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if s.limiter != nil {
		result, err := s.limiter.Allow(ctx, email)
		if err != nil {
			s.logger.Warn("login rate limit check failed", zap.Error(err))
		} else if !result.Allowed {
			s.recordEvent("login_throttled")
			return nil, ErrTooManyAttempts
		}
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.recordEvent("login_failed")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.recordEvent("login_failed")
		return nil, ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.logger.Warn("login rate limit reset failed", zap.Error(err))
		}
	}

	s.recordEvent("login")
	return s.issueToken(u)
}

// GetProfile returns the user's profile.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

// UpdateProfile updates the user's name and avatar.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.AvatarURL != nil {
		u.AvatarURL = *req.AvatarURL
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// ChangePassword changes the user's password after verifying the
// current one.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrIncorrectPassword
	}
	if len(req.NewPassword) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	u.PasswordHash = string(hash)
	if err := s.repo.Update(ctx, u); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("password changed", zap.String("user_id", userID.String()))
	return nil
}

// IsAdmin implements auth.AdminChecker.
func (s *Service) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.IsAdmin, nil
}

func (s *Service) recordEvent(event string) {
	if s.metrics != nil {
		s.metrics.RecordAuthEvent(event)
	}
}

func (s *Service) issueToken(u *User) (*AuthResponse, error) {
	token, expiresAt, err := s.jwt.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResponse{
		User:        u.ToResponse(),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
