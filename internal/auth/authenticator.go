package auth

import (
	"context"

	"github.com/mmynk/splitledger/internal/models"
)

// Registration is the input to Authenticator.Register.
type Registration struct {
	Name     string
	Email    string
	Mobile   string
	Password string
}

// Authenticator defines the interface for account implementations.
// This abstraction allows swapping between different auth methods
// without changing the service layer code.
type Authenticator interface {
	// Register creates a new user account. Email and mobile must both be unused.
	Register(ctx context.Context, reg Registration) (*models.User, error)

	// Authenticate verifies the credential of the user identified by email or mobile.
	Authenticate(ctx context.Context, email, mobile, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
