package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/app/models/dto"
	"github.com/yigit/placement-portal/internal/app/repositories"
	"github.com/yigit/placement-portal/internal/pkg/apperrors"
	"github.com/yigit/placement-portal/internal/pkg/auth"
	"github.com/yigit/placement-portal/internal/pkg/logger"
)

// Credentials are the configured passwords accepted at login
type Credentials struct {
	AdminEmail      string
	AdminPassword   string
	StudentPassword string
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo    repositories.IUserRepository
	jwtService  *auth.JWTService
	credentials Credentials
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	jwtService *auth.JWTService,
	credentials Credentials,
	logger zerolog.Logger,
) *AuthService {
	credentials.AdminEmail = repositories.NormalizeEmail(credentials.AdminEmail)
	return &AuthService{
		userRepo:    userRepo,
		jwtService:  jwtService,
		credentials: credentials,
		logger:      logger,
	}
}

// Login authenticates the configured administrator or a student. Students
// share one configured password and get an account on their first login.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := repositories.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		user, err = s.provision(ctx, email, req.Password)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("failed to load account: %w", err)
	default:
		if err := s.verify(user, req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.FromContext(ctx, &s.logger).Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record last login")
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	logger.FromContext(ctx, &s.logger).Info().Str("email", user.Email).Str("role", string(user.RoleType)).Msg("User logged in")
	return &dto.LoginResponse{
		Role:      user.RoleType,
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresIn,
	}, nil
}

// GetCurrentUser returns the account behind a verified token
func (s *AuthService) GetCurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	if userID <= 0 {
		return nil, apperrors.ErrTokenInvalid
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// verify checks a login against an existing account. Passwords owned by
// configuration are compared with the current configured value, so rotating
// them takes effect without touching stored hashes.
func (s *AuthService) verify(user *models.User, password string) error {
	if !user.IsActive {
		return apperrors.ErrAccountDisabled
	}
	if configured, ok := s.configuredPassword(user); ok {
		if configured == "" || subtle.ConstantTimeCompare([]byte(password), []byte(configured)) != 1 {
			return apperrors.ErrInvalidCredentials
		}
		return nil
	}
	if !auth.CheckPassword(user.Password, password) {
		return apperrors.ErrInvalidCredentials
	}
	return nil
}

// configuredPassword returns the password configuration dictates for user.
// Other accounts fall back to their stored hash.
func (s *AuthService) configuredPassword(user *models.User) (string, bool) {
	switch {
	case user.RoleType == models.RoleAdmin && repositories.NormalizeEmail(user.Email) == s.credentials.AdminEmail:
		return s.credentials.AdminPassword, true
	case user.RoleType == models.RoleStudent:
		return s.credentials.StudentPassword, true
	}
	return "", false
}

// provision creates the account for a first login with a configured password.
func (s *AuthService) provision(ctx context.Context, email, password string) (*models.User, error) {
	role := models.RoleStudent
	switch {
	case email == s.credentials.AdminEmail:
		if s.credentials.AdminPassword == "" || password != s.credentials.AdminPassword {
			return nil, apperrors.ErrInvalidCredentials
		}
		role = models.RoleAdmin
	case s.credentials.StudentPassword == "" || password != s.credentials.StudentPassword:
		return nil, apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Email: email, Password: hash, RoleType: role, IsActive: true}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			return nil, fmt.Errorf("user creation error: %w", err)
		}
		// Created by a concurrent login.
		existing, getErr := s.userRepo.GetByEmail(ctx, email)
		if getErr != nil {
			return nil, fmt.Errorf("failed to load account: %w", getErr)
		}
		if err := s.verify(existing, password); err != nil {
			return nil, err
		}
		return existing, nil
	}

	logger.FromContext(ctx, &s.logger).Info().Str("email", email).Str("role", string(role)).Msg("Account created on first login")
	return user, nil
}
