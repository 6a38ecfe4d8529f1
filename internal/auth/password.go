package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials, please try again with correct password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrUserExists         = errors.New("email or mobile number already in use")
	ErrMissingFields      = errors.New("name, email, password & mobile fields are required")
	ErrMissingLogin       = errors.New("please provide either email or mobile and password")
	ErrMissingSearch      = errors.New("please provide either email or mobile to search")
)

// UserStorage defines the interface for user persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmailOrMobile(ctx context.Context, email, mobile string) (*models.User, error)
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage UserStorage
}

// Ensure PasswordAuthenticator implements Authenticator
var _ Authenticator = (*PasswordAuthenticator)(nil)

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
	}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new user account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, reg Registration) (*models.User, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	reg.Mobile = strings.TrimSpace(reg.Mobile)
	if reg.Name == "" || reg.Email == "" || reg.Mobile == "" || reg.Password == "" {
		return nil, ErrMissingFields
	}

	if err := a.ValidateCredential(reg.Password); err != nil {
		return nil, err
	}

	// Either a colliding email or a colliding mobile blocks registration.
	_, err := a.storage.FindUserByEmailOrMobile(ctx, reg.Email, reg.Mobile)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(reg.Name, reg.Email, reg.Mobile, string(hashedPassword))

	// The unique constraints still guard against a concurrent registration.
	if err := a.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the password of the user found by email or mobile.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, mobile, credential string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	mobile = strings.TrimSpace(mobile)
	if (email == "" && mobile == "") || credential == "" {
		return nil, ErrMissingLogin
	}

	user, err := a.storage.FindUserByEmailOrMobile(ctx, email, mobile)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// SearchUser finds a user by email or mobile.
func (a *PasswordAuthenticator) SearchUser(ctx context.Context, email, mobile string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	mobile = strings.TrimSpace(mobile)
	if email == "" && mobile == "" {
		return nil, ErrMissingSearch
	}
	return a.storage.FindUserByEmailOrMobile(ctx, email, mobile)
}

// GetUser returns the user with the given ID.
func (a *PasswordAuthenticator) GetUser(ctx context.Context, id string) (*models.User, error) {
	return a.storage.GetUserByID(ctx, id)
}
