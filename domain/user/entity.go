package user

import (
	"time"
)

// User represents a user account.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Email        string `gorm:"uniqueIndex;not null;type:text"`
	PasswordHash string `gorm:"not null;type:text"`
	DisplayName  string `gorm:"type:text"`
	PhotoURL     string `gorm:"type:text"`
	Disabled     bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// PasswordReset represents a pending single-use password reset token.
type PasswordReset struct {
	Token     string `gorm:"primaryKey;type:text"`
	UserID    string `gorm:"not null;index;type:text"`
	ExpiresAt time.Time
	Used      bool `gorm:"not null;default:false"`
	CreatedAt time.Time
}

// TableName returns the table name for the PasswordReset entity.
func (PasswordReset) TableName() string {
	return "password_resets"
}

// TokenPair represents access and refresh tokens.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// Claims represents JWT claims.
type Claims struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}
