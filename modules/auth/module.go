package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	domain "github.com/BrunoReiis/nexustaskmanager/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AuthModule provides authentication and profile services.
type AuthModule struct {
	db      *gorm.DB
	service *AuthService
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule.
func NewModule() *AuthModule {
	dbPath := os.Getenv("AUTH_DB_PATH")
	if dbPath == "" {
		dbPath = "nexustask_auth.db"
	}
	return &AuthModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Start initializes the auth module.
func (m *AuthModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.User{}, &domain.PasswordReset{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	repo := NewUserRepository(db)
	hasher := NewPasswordHasher()
	jwtManager := NewJWTManager(loadJWTConfig())
	mailer := NewLogEmailSender(getEnv("APP_BASE_URL", "http://localhost:3000"))

	m.service = NewAuthService(repo, hasher, jwtManager, mailer)

	log.Printf("[auth] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *AuthModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[auth] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AuthModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	services := []struct {
		name     string
		register func() error
	}{
		{"register", func() error {
			return helper.RegisterTypedRequestReplyService(container, "register", json.Unmarshal, json.Marshal, m.handleRegister)
		}},
		{"login", func() error {
			return helper.RegisterTypedRequestReplyService(container, "login", json.Unmarshal, json.Marshal, m.handleLogin)
		}},
		{"refresh-token", func() error {
			return helper.RegisterTypedRequestReplyService(container, "refresh-token", json.Unmarshal, json.Marshal, m.handleRefresh)
		}},
		{"validate-token", func() error {
			return helper.RegisterTypedRequestReplyService(container, "validate-token", json.Unmarshal, json.Marshal, m.handleValidateToken)
		}},
		{"get-user", func() error {
			return helper.RegisterTypedRequestReplyService(container, "get-user", json.Unmarshal, json.Marshal, m.handleGetUser)
		}},
		{"update-profile", func() error {
			return helper.RegisterTypedRequestReplyService(container, "update-profile", json.Unmarshal, json.Marshal, m.handleUpdateProfile)
		}},
		{"request-password-reset", func() error {
			return helper.RegisterTypedRequestReplyService(container, "request-password-reset", json.Unmarshal, json.Marshal, m.handleRequestPasswordReset)
		}},
		{"reset-password", func() error {
			return helper.RegisterTypedRequestReplyService(container, "reset-password", json.Unmarshal, json.Marshal, m.handleResetPassword)
		}},
	}

	for _, svc := range services {
		if err := svc.register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", svc.name, err)
		}
	}

	log.Printf("[auth] Registered services: register, login, refresh-token, validate-token, get-user, update-profile, request-password-reset, reset-password")
	return nil
}

// handleRegister handles user registration.
func (m *AuthModule) handleRegister(ctx context.Context, req RegisterRequest, _ *mono.Msg) (RegisterResponse, error) {
	user, err := m.service.Register(ctx, req.Email, req.Password, req.DisplayName)
	if err != nil {
		return RegisterResponse{}, err
	}

	return RegisterResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}, nil
}

// handleLogin handles user login.
func (m *AuthModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	tokens, err := m.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		return LoginResponse{}, err
	}

	return LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		TokenType:    tokens.TokenType,
	}, nil
}

// handleRefresh handles token refresh.
func (m *AuthModule) handleRefresh(ctx context.Context, req RefreshRequest, _ *mono.Msg) (RefreshResponse, error) {
	tokens, err := m.service.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		return RefreshResponse{}, err
	}

	return RefreshResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		TokenType:    tokens.TokenType,
	}, nil
}

// handleValidateToken handles token validation.
func (m *AuthModule) handleValidateToken(ctx context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	claims, err := m.service.ValidateToken(ctx, req.Token)
	if err != nil {
		errMsg := "invalid token"
		if errors.Is(err, ErrExpiredToken) {
			errMsg = "token expired"
		}
		return ValidateTokenResponse{
			Valid: false,
			Error: errMsg,
		}, nil // Return response, not error, for validation failures
	}

	return ValidateTokenResponse{
		Valid:       true,
		UserID:      claims.UserID,
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
	}, nil
}

// handleGetUser handles get user requests.
func (m *AuthModule) handleGetUser(ctx context.Context, req GetUserRequest, _ *mono.Msg) (GetUserResponse, error) {
	user, err := m.service.GetUser(ctx, req.UserID)
	if err != nil {
		return GetUserResponse{}, err
	}

	return GetUserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
		CreatedAt:   user.CreatedAt,
	}, nil
}

// handleUpdateProfile handles profile updates.
func (m *AuthModule) handleUpdateProfile(ctx context.Context, req UpdateProfileRequest, _ *mono.Msg) (UpdateProfileResponse, error) {
	user, err := m.service.UpdateProfile(ctx, req.UserID, req.DisplayName, req.PhotoURL)
	if err != nil {
		return UpdateProfileResponse{}, err
	}

	return UpdateProfileResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
		UpdatedAt:   user.UpdatedAt,
	}, nil
}

// handleRequestPasswordReset handles password reset email requests.
func (m *AuthModule) handleRequestPasswordReset(ctx context.Context, req RequestPasswordResetRequest, _ *mono.Msg) (RequestPasswordResetResponse, error) {
	if err := m.service.RequestPasswordReset(ctx, req.Email); err != nil {
		return RequestPasswordResetResponse{}, err
	}
	return RequestPasswordResetResponse{Sent: true}, nil
}

// handleResetPassword handles password reset confirmations.
func (m *AuthModule) handleResetPassword(ctx context.Context, req ResetPasswordRequest, _ *mono.Msg) (ResetPasswordResponse, error) {
	if err := m.service.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		return ResetPasswordResponse{}, err
	}
	return ResetPasswordResponse{Reset: true}, nil
}

// loadJWTConfig loads JWT configuration from environment variables.
func loadJWTConfig() JWTConfig {
	config := DefaultJWTConfig()

	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		config.SecretKey = secret
	}

	if issuer := os.Getenv("JWT_ISSUER"); issuer != "" {
		config.Issuer = issuer
	}

	return config
}

// getEnv returns the value of an environment variable or a fallback.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
