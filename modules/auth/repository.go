package auth

import (
	"errors"

	domain "github.com/BrunoReiis/nexustaskmanager/domain/user"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when a user already exists.
	ErrUserExists = errors.New("user with this email already exists")
	// ErrResetTokenInvalid is returned when a password reset token is
	// unknown, expired, or already used.
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
)

// UserRepository handles user persistence using GORM.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *UserRepository) Create(user *domain.User) error {
	result := r.db.Create(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return result.Error
	}
	return nil
}

// FindByID finds a user by ID.
func (r *UserRepository) FindByID(id string) (*domain.User, error) {
	var user domain.User
	result := r.db.First(&user, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// FindByEmail finds a user by email.
func (r *UserRepository) FindByEmail(email string) (*domain.User, error) {
	var user domain.User
	result := r.db.First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// EmailExists checks if a user with the given email exists.
func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int64
	result := r.db.Model(&domain.User{}).Where("email = ?", email).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// UpdateProfile updates the display name and photo URL of a user.
func (r *UserRepository) UpdateProfile(id, displayName, photoURL string) error {
	result := r.db.Model(&domain.User{}).Where("id = ?", id).Updates(map[string]any{
		"display_name": displayName,
		"photo_url":    photoURL,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdatePasswordHash replaces the stored password hash of a user.
func (r *UserRepository) UpdatePasswordHash(id, passwordHash string) error {
	result := r.db.Model(&domain.User{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// CreatePasswordReset stores a pending password reset token.
func (r *UserRepository) CreatePasswordReset(reset *domain.PasswordReset) error {
	return r.db.Create(reset).Error
}

// FindPasswordReset finds a password reset record by token.
func (r *UserRepository) FindPasswordReset(token string) (*domain.PasswordReset, error) {
	var reset domain.PasswordReset
	result := r.db.First(&reset, "token = ?", token)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrResetTokenInvalid
		}
		return nil, result.Error
	}
	return &reset, nil
}

// MarkPasswordResetUsed marks a reset token as consumed.
func (r *UserRepository) MarkPasswordResetUsed(token string) error {
	return r.db.Model(&domain.PasswordReset{}).Where("token = ?", token).Update("used", true).Error
}
