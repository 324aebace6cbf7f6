package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	domain "github.com/BrunoReiis/nexustaskmanager/domain/user"
	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidEmail is returned when email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrWeakPassword is returned when password is too weak.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	// ErrPasswordTooLong is returned when password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
	// ErrAccountDisabled is returned when the account has been disabled.
	ErrAccountDisabled = errors.New("this account has been disabled")
)

// resetTokenTTL is how long a password reset token stays valid.
const resetTokenTTL = time.Hour

// AuthService handles authentication business logic.
type AuthService struct {
	repo   *UserRepository
	hasher *PasswordHasher
	jwt    *JWTManager
	mailer EmailSender
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *UserRepository, hasher *PasswordHasher, jwt *JWTManager, mailer EmailSender) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		jwt:    jwt,
		mailer: mailer,
	}
}

// Register creates a new user account.
func (s *AuthService) Register(_ context.Context, email, password, displayName string) (*domain.User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	if err := validatePassword(password); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns tokens.
func (s *AuthService) Login(_ context.Context, email, password string) (*domain.TokenPair, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if user.Disabled {
		return nil, ErrAccountDisabled
	}

	return s.generateTokenPair(user)
}

// RefreshTokens generates new access and refresh tokens.
func (s *AuthService) RefreshTokens(_ context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	user, err := s.repo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.Disabled {
		return nil, ErrAccountDisabled
	}

	return s.generateTokenPair(user)
}

// ValidateToken validates an access token and returns claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	return &domain.Claims{
		UserID:      claims.UserID,
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
	}, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(_ context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(userID)
}

// UpdateProfile updates the display name and photo URL of a user and
// returns the updated record.
func (s *AuthService) UpdateProfile(_ context.Context, userID, displayName, photoURL string) (*domain.User, error) {
	if err := s.repo.UpdateProfile(userID, displayName, photoURL); err != nil {
		return nil, err
	}
	return s.repo.FindByID(userID)
}

// RequestPasswordReset issues a single-use reset token for the account
// and dispatches it through the configured email sender.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return err
	}

	reset := &domain.PasswordReset{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(resetTokenTTL),
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreatePasswordReset(reset); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, reset.Token); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}

// ResetPassword consumes a reset token and sets a new password.
func (s *AuthService) ResetPassword(_ context.Context, token, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	reset, err := s.repo.FindPasswordReset(token)
	if err != nil {
		return err
	}
	if reset.Used || time.Now().After(reset.ExpiresAt) {
		return ErrResetTokenInvalid
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePasswordHash(reset.UserID, passwordHash); err != nil {
		return err
	}

	if err := s.repo.MarkPasswordResetUsed(token); err != nil {
		return fmt.Errorf("failed to mark reset token used: %w", err)
	}

	return nil
}

// generateTokenPair generates both access and refresh tokens.
func (s *AuthService) generateTokenPair(user *domain.User) (*domain.TokenPair, error) {
	subject := TokenSubject{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}

	accessToken, err := s.jwt.GenerateAccessToken(subject)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwt.GenerateRefreshToken(subject)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.jwt.AccessTokenDuration(),
		TokenType:    "Bearer",
	}, nil
}

// validatePassword enforces the password length bounds (bcrypt caps
// input at 72 bytes).
func validatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}
	return nil
}
