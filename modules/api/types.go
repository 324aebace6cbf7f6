package api

import "time"

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// PasswordResetRequest asks for a reset email.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest redeems a reset token.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// TokenResponse represents an authentication token response.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// UserResponse represents a user response.
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProfileResponse represents a user profile response.
type ProfileResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	PhotoURL    string    `json:"photo_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// UpdateProfileRequest represents a profile update request.
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
}

// CreateTaskBody is the request body for creating a task. The owner
// comes from the authenticated user, never from the body.
type CreateTaskBody struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	ProjectID   string     `json:"project_id"`
	Tags        []string   `json:"tags"`
	AssignedTo  string     `json:"assigned_to"`
}

// UpdateTaskBody is the request body for a partial task update.
type UpdateTaskBody struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Priority     *string    `json:"priority"`
	Status       *string    `json:"status"`
	DueDate      *time.Time `json:"due_date"`
	ClearDueDate bool       `json:"clear_due_date"`
	ProjectID    *string    `json:"project_id"`
	Tags         *[]string  `json:"tags"`
	AssignedTo   *string    `json:"assigned_to"`
}

// CreateProjectBody is the request body for creating a project.
type CreateProjectBody struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// MessageResponse represents a simple confirmation response.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
