package api

import (
	"encoding/json"
	"log"
	"strings"

	domain "github.com/BrunoReiis/nexustaskmanager/domain/user"
	"github.com/BrunoReiis/nexustaskmanager/modules/auth"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	authContainer  mono.ServiceContainer
	tasksContainer mono.ServiceContainer
	authAdapter    auth.AuthPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer, tasksContainer mono.ServiceContainer, authAdapter auth.AuthPort) *Handlers {
	return &Handlers{
		authContainer:  authContainer,
		tasksContainer: tasksContainer,
		authAdapter:    authAdapter,
	}
}

// currentClaims returns the authenticated user's claims, set by the
// auth middleware.
func currentClaims(c *fiber.Ctx) (*domain.Claims, bool) {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	return claims, ok
}

// callAuth invokes a request-reply service on the auth module.
func (h *Handlers) callAuth(c *fiber.Ctx, service string, req, resp any) error {
	return helper.CallRequestReplyService[any, any](
		c.UserContext(),
		h.authContainer,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	)
}

// callTasks invokes a request-reply service on the tasks module.
func (h *Handlers) callTasks(c *fiber.Ctx, service string, req, resp any) error {
	return helper.CallRequestReplyService[any, any](
		c.UserContext(),
		h.tasksContainer,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	)
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	authReq := auth.RegisterRequest{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	}
	var resp auth.RegisterResponse

	if err := h.callAuth(c, "register", &authReq, &resp); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(UserResponse{
		ID:          resp.ID,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
		CreatedAt:   resp.CreatedAt,
	})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	authReq := auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	}
	var resp auth.LoginResponse

	if err := h.callAuth(c, "login", &authReq, &resp); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		TokenType:    resp.TokenType,
	})
}

// Refresh handles token refresh.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.RefreshToken == "" {
		return badRequest(c, "Refresh token is required")
	}

	authReq := auth.RefreshRequest{
		RefreshToken: req.RefreshToken,
	}
	var resp auth.RefreshResponse

	if err := h.callAuth(c, "refresh-token", &authReq, &resp); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid or expired refresh token",
		})
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		TokenType:    resp.TokenType,
	})
}

// RequestPasswordReset handles password reset email requests. The
// response is identical whether or not the email exists.
func (h *Handlers) RequestPasswordReset(c *fiber.Ctx) error {
	var req PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" {
		return badRequest(c, "Email is required")
	}

	authReq := auth.RequestPasswordResetRequest{Email: req.Email}
	var resp auth.RequestPasswordResetResponse

	if err := h.callAuth(c, "request-password-reset", &authReq, &resp); err != nil {
		log.Printf("[api] Password reset request failed: %v", err)
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "If the email exists, a reset link has been sent",
	})
}

// ConfirmPasswordReset handles password reset confirmations.
func (h *Handlers) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Token == "" || req.NewPassword == "" {
		return badRequest(c, "Token and new password are required")
	}

	authReq := auth.ResetPasswordRequest{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	}
	var resp auth.ResetPasswordResponse

	if err := h.callAuth(c, "reset-password", &authReq, &resp); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: "Password has been reset",
	})
}

// Profile handles getting the current user's profile.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	user, err := h.authAdapter.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to retrieve user profile",
		})
	}

	return c.Status(fiber.StatusOK).JSON(ProfileResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
		CreatedAt:   user.CreatedAt,
	})
}

// UpdateProfile handles updating the current user's display name and photo.
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthorized(c, "User not authenticated")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	authReq := auth.UpdateProfileRequest{
		UserID:      claims.UserID,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
	}
	var resp auth.UpdateProfileResponse

	if err := h.callAuth(c, "update-profile", &authReq, &resp); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(ProfileResponse{
		ID:          resp.ID,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
		PhotoURL:    resp.PhotoURL,
	})
}

// badRequest writes a 400 response.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

// unauthorized writes a 401 response.
func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}

// handleAuthError maps auth service errors to HTTP responses. Errors
// cross the service boundary as messages, so matching is by substring.
func (h *Handlers) handleAuthError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "invalid email or password"):
		return unauthorized(c, "Invalid email or password")
	case strings.Contains(errStr, "account has been disabled"):
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
			Error:   "forbidden",
			Message: "This account has been disabled",
		})
	case strings.Contains(errStr, "user with this email already exists"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "User with this email already exists",
		})
	case strings.Contains(errStr, "invalid email format"):
		return badRequest(c, "Invalid email format")
	case strings.Contains(errStr, "password must be at least"):
		return badRequest(c, "Password must be at least 8 characters")
	case strings.Contains(errStr, "password must be at most"):
		return badRequest(c, "Password must be at most 72 characters")
	case strings.Contains(errStr, "invalid or expired reset token"):
		return badRequest(c, "Invalid or expired reset token")
	case strings.Contains(errStr, "user not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "User not found",
		})
	default:
		// Log the actual error but don't expose it to the client
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}
